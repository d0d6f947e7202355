package audio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"go.uber.org/zap"

	"github.com/handiism/bandcamp-player/internal/model"
)

var (
	// ErrResourceNotFound is returned by Load when the track's file ID
	// cannot be resolved to an audio resource.
	ErrResourceNotFound = errors.New("audio resource not found")

	// ErrDecodeFailed is returned by Load when the resource is malformed
	// or in an unsupported format. The wrapped error carries the reason.
	ErrDecodeFailed = errors.New("audio decode failed")
)

const (
	// MinVolume and MaxVolume bound the engine volume, in powers of two
	// relative to the source level (0 is unchanged, -1 is half).
	MinVolume = -8.0
	MaxVolume = 0.0

	resampleQuality = 4
)

// Resolver maps a file ID to an open audio resource.
//
// The returned name is used to pick a decoder by extension. A missing
// resource should be reported with an error wrapping fs.ErrNotExist.
type Resolver interface {
	OpenAudio(fileID string) (io.ReadSeekCloser, string, error)
}

// stream bundles all resources of the loaded track.
type stream struct {
	id       uint64
	track    model.Track
	file     io.Closer
	decoder  beep.StreamSeekCloser
	format   beep.Format
	duration float64
	playing  bool

	// Guarded by the output lock once attached.
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	attached bool
}

// close releases the decoder and the underlying file.
func (s *stream) close() {
	if s.decoder != nil {
		s.decoder.Close()
	}
	if s.file != nil {
		s.file.Close()
	}
}

// Engine plays one track at a time through an Output.
//
// Engine holds at most one session. Load replaces it, releasing the
// previous decoder and file; a failed Load keeps the previous session.
// Position is always read from the live decoder cursor.
//
// Engine is meant to be driven from a single goroutine (the player
// controller). It synchronizes with the output's streaming goroutine
// through the output lock.
//
// Example:
//
//	engine := audio.NewEngine(out, store, logger)
//	session, err := engine.Load(track)
//	if errors.Is(err, audio.ErrResourceNotFound) {
//	    // report missing file
//	}
//	engine.Play()
//	fmt.Println(model.FormatTime(engine.Position()))
type Engine struct {
	out      Output
	resolver Resolver
	log      *zap.Logger

	current *stream
	lastID  uint64

	volume float64
	muted  bool
}

// NewEngine creates an Engine. A nil logger discards log output.
func NewEngine(out Output, resolver Resolver, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		out:      out,
		resolver: resolver,
		log:      log,
	}
}

// Load opens and decodes the track's audio resource and makes it the
// current session, positioned at 0 and paused.
//
// Returns ErrResourceNotFound or ErrDecodeFailed (wrapped with details)
// on failure, in which case the engine state is unchanged.
func (e *Engine) Load(track model.Track) (model.Session, error) {
	rc, name, err := e.resolver.OpenAudio(track.FileID)
	if err != nil {
		return model.Session{}, fmt.Errorf("%w: %q: %w", ErrResourceNotFound, track.FileID, err)
	}

	decoder, format, err := decode(rc, name)
	if err != nil {
		rc.Close()
		return model.Session{}, fmt.Errorf("%w: %q: %w", ErrDecodeFailed, track.FileID, err)
	}

	e.release()

	e.lastID++
	e.current = &stream{
		id:       e.lastID,
		track:    track,
		file:     rc,
		decoder:  decoder,
		format:   format,
		duration: format.SampleRate.D(decoder.Len()).Seconds(),
	}

	e.log.Debug("track loaded",
		zap.Uint64("session", e.lastID),
		zap.String("file_id", track.FileID),
		zap.Int("sample_rate", int(format.SampleRate)),
		zap.Float64("duration", e.current.duration))

	session, _ := e.Session()
	return session, nil
}

// Play starts or resumes output. No-op without a session.
func (e *Engine) Play() {
	s := e.current
	if s == nil {
		return
	}
	s.playing = true

	e.out.Lock()
	if s.attached {
		s.ctrl.Paused = false
		e.out.Unlock()
		return
	}
	e.out.Unlock()

	e.attach(s)
}

// attach hands a fresh streamer chain for s to the output. The chain is
// rebuilt every time because the output drops a streamer once it drains.
func (e *Engine) attach(s *stream) {
	var src beep.Streamer = s.decoder
	if rate := e.out.SampleRate(); rate != s.format.SampleRate {
		src = beep.Resample(resampleQuality, s.format.SampleRate, rate, src)
	}

	e.out.Lock()
	s.volume = &effects.Volume{Streamer: src, Base: 2, Volume: e.volume, Silent: e.muted}
	s.ctrl = &beep.Ctrl{Streamer: s.volume}
	s.attached = true
	e.out.Unlock()

	// The callback runs on the output goroutine with the output lock held.
	e.out.Play(beep.Seq(s.ctrl, beep.Callback(func() {
		s.attached = false
	})))
}

// Pause stops output, keeping the position. No-op without a session.
func (e *Engine) Pause() {
	s := e.current
	if s == nil {
		return
	}
	s.playing = false

	e.out.Lock()
	if s.ctrl != nil {
		s.ctrl.Paused = true
	}
	e.out.Unlock()
}

// Seek moves the playback cursor to seconds, clamped to [0, Duration].
func (e *Engine) Seek(seconds float64) error {
	s := e.current
	if s == nil {
		return nil
	}

	seconds = clamp(seconds, 0, s.duration)
	samples := s.format.SampleRate.N(time.Duration(seconds * float64(time.Second)))
	if n := s.decoder.Len(); samples > n {
		samples = n
	}

	e.out.Lock()
	defer e.out.Unlock()
	if err := s.decoder.Seek(samples); err != nil {
		return fmt.Errorf("seek %q to %.3fs: %w", s.track.FileID, seconds, err)
	}
	return nil
}

// Position returns the elapsed seconds of the current session, read from
// the decoder cursor. Returns 0 without a session.
func (e *Engine) Position() float64 {
	s := e.current
	if s == nil {
		return 0
	}

	e.out.Lock()
	pos := s.decoder.Position()
	e.out.Unlock()

	return clamp(s.format.SampleRate.D(pos).Seconds(), 0, s.duration)
}

// Duration returns the total seconds of the current session, or 0.
func (e *Engine) Duration() float64 {
	if e.current == nil {
		return 0
	}
	return e.current.duration
}

// Playing reports whether output is running.
func (e *Engine) Playing() bool {
	return e.current != nil && e.current.playing
}

// SessionID returns the ID of the current session, or 0 if none is loaded.
func (e *Engine) SessionID() uint64 {
	if e.current == nil {
		return 0
	}
	return e.current.id
}

// Session returns a snapshot of the current session. The boolean is false
// when no track is loaded.
func (e *Engine) Session() (model.Session, bool) {
	s := e.current
	if s == nil {
		return model.Session{}, false
	}
	return model.Session{
		ID:       s.id,
		Track:    s.track,
		Position: e.Position(),
		Duration: s.duration,
		Playing:  s.playing,
	}, true
}

// SetVolume sets the output volume, clamped to [MinVolume, MaxVolume],
// and returns the applied value. The level carries over to later sessions.
func (e *Engine) SetVolume(level float64) float64 {
	e.volume = clamp(level, MinVolume, MaxVolume)
	e.applyVolume()
	return e.volume
}

// SetMuted silences or restores output.
func (e *Engine) SetMuted(muted bool) {
	e.muted = muted
	e.applyVolume()
}

// Volume returns the current volume level and mute flag.
func (e *Engine) Volume() (float64, bool) {
	return e.volume, e.muted
}

func (e *Engine) applyVolume() {
	s := e.current
	if s == nil {
		return
	}
	e.out.Lock()
	if s.volume != nil {
		s.volume.Volume = e.volume
		s.volume.Silent = e.muted
	}
	e.out.Unlock()
}

// Close releases the current session.
func (e *Engine) Close() error {
	e.release()
	return nil
}

// release detaches and closes the current session, if any.
func (e *Engine) release() {
	s := e.current
	if s == nil {
		return
	}
	e.current = nil
	e.out.Clear()
	s.close()

	e.log.Debug("track released", zap.Uint64("session", s.id), zap.String("file_id", s.track.FileID))
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
