package player

import (
	"context"

	"go.uber.org/zap"

	"github.com/handiism/bandcamp-player/internal/clock"
	"github.com/handiism/bandcamp-player/internal/model"
)

// VolumeStep is the volume change of one VolumeUp or VolumeDown command.
const VolumeStep = 0.5

// Engine is the playback primitive driven by the controller.
// *audio.Engine implements it.
type Engine interface {
	Load(track model.Track) (model.Session, error)
	Play()
	Pause()
	Seek(seconds float64) error
	Position() float64
	Duration() float64
	Playing() bool
	SessionID() uint64
	SetVolume(level float64) float64
	SetMuted(muted bool)
	Volume() (float64, bool)
	Close() error
}

// Options configures a Controller.
type Options struct {
	Logger *zap.Logger

	// AutoAdvance plays the next track when the current one ends instead
	// of rewinding it.
	AutoAdvance bool

	// NewTicker overrides the clock's ticker factory.
	NewTicker clock.TickerFunc
}

// Controller reacts to commands and clock events.
type Controller struct {
	playlist    *model.Playlist
	engine      Engine
	clock       *clock.Clock
	log         *zap.Logger
	onEvent     func(Event)
	autoAdvance bool

	// session is the ID of the session the display is bound to, 0 when
	// the last load failed or nothing was loaded yet.
	session uint64

	commands chan Command
	done     chan struct{}
}

// NewController creates a controller over playlist and engine. onEvent
// is called on the controller goroutine and must not block.
func NewController(playlist *model.Playlist, engine Engine, onEvent func(Event), opts Options) *Controller {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	c := &Controller{
		playlist:    playlist,
		engine:      engine,
		log:         log,
		onEvent:     onEvent,
		autoAdvance: opts.AutoAdvance,
		commands:    make(chan Command, 16),
		done:        make(chan struct{}),
	}
	c.clock = clock.New(engine, c.onClock, opts.NewTicker)
	return c
}

// Start loads the current playlist entry without starting output.
// Call it once, before Run.
func (c *Controller) Start() {
	c.load(c.playlist.Current(), false)
}

// Run processes commands and clock ticks until ctx is cancelled or a Quit
// command arrives. On return the clock is stopped and the engine closed.
func (c *Controller) Run(ctx context.Context) error {
	defer close(c.done)
	defer c.shutdown()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd := <-c.commands:
			if _, ok := cmd.(Quit); ok {
				return nil
			}
			c.handle(cmd)
		case <-c.clock.C():
			c.clock.Tick()
		}
	}
}

// Send delivers cmd to the Run loop. It reports false once Run has
// returned.
func (c *Controller) Send(cmd Command) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.commands <- cmd:
		return true
	case <-c.done:
		return false
	}
}

// Done is closed when Run returns.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

func (c *Controller) handle(cmd Command) {
	switch cmd := cmd.(type) {
	case TogglePlayPause:
		c.onPlayPause()
	case Next:
		c.onNext()
	case Previous:
		c.onPrevious()
	case Seek:
		c.onSeek(cmd.Seconds)
	case Select:
		c.onSelect(cmd.Index)
	case VolumeUp:
		c.changeVolume(VolumeStep)
	case VolumeDown:
		c.changeVolume(-VolumeStep)
	case ToggleMute:
		c.toggleMute()
	default:
		c.log.Warn("unknown command", zap.Any("command", cmd))
	}
}

func (c *Controller) onPlayPause() {
	if c.session == 0 {
		// Nothing usable is loaded; treat play as a retry of the current entry.
		c.loadAndAutoplay(c.playlist.Current())
		return
	}

	if c.engine.Playing() {
		c.engine.Pause()
		c.clock.Stop()
		c.emit(Transport{Icon: IconPlay})
		return
	}

	c.engine.Play()
	c.clock.Start(c.session)
	c.emit(Transport{Icon: IconPause})
}

func (c *Controller) onNext() {
	c.loadAndAutoplay(c.playlist.Advance())
}

func (c *Controller) onPrevious() {
	c.loadAndAutoplay(c.playlist.Retreat())
}

func (c *Controller) onSelect(index int) {
	track, err := c.playlist.Select(index)
	if err != nil {
		c.log.Warn("select ignored", zap.Int("index", index), zap.Error(err))
		return
	}
	c.loadAndAutoplay(track)
}

func (c *Controller) onSeek(seconds float64) {
	if c.session == 0 {
		return
	}
	if err := c.engine.Seek(seconds); err != nil {
		c.log.Warn("seek failed", zap.Float64("seconds", seconds), zap.Error(err))
	}
	c.emitProgress(c.engine.Position())
}

func (c *Controller) loadAndAutoplay(track model.Track) {
	c.load(track, true)
}

func (c *Controller) load(track model.Track, autoplay bool) {
	c.clock.Stop()

	session, err := c.engine.Load(track)
	if err != nil {
		c.session = 0
		c.engine.Pause()
		c.log.Warn("load failed",
			zap.String("file_id", track.FileID),
			zap.String("title", track.Title),
			zap.Error(err))
		c.emit(LoadFailed{Track: track, Index: c.playlist.Index(), Err: err})
		c.emit(Transport{Icon: IconPlay})
		return
	}

	c.session = session.ID
	c.log.Debug("track loaded",
		zap.Uint64("session", session.ID),
		zap.String("file_id", track.FileID),
		zap.Float64("duration", session.Duration))

	c.emit(TrackLoaded{
		Track:         track,
		Index:         c.playlist.Index(),
		Total:         c.playlist.Len(),
		Duration:      session.Duration,
		DurationLabel: model.FormatTime(session.Duration),
	})
	c.emitProgress(0)

	if !autoplay {
		c.emit(Transport{Icon: IconPlay})
		return
	}
	c.engine.Play()
	c.clock.Start(session.ID)
	c.emit(Transport{Icon: IconPause})
}

func (c *Controller) onClock(e clock.Event) {
	switch e := e.(type) {
	case clock.Tick:
		if e.SessionID != c.session {
			return
		}
		c.emitProgress(e.Position)
	case clock.EndOfTrack:
		if e.SessionID != c.session {
			return
		}
		c.onEndOfTrack()
	}
}

func (c *Controller) onEndOfTrack() {
	if c.autoAdvance {
		c.onNext()
		return
	}

	c.engine.Pause()
	if err := c.engine.Seek(0); err != nil {
		c.log.Warn("rewind failed", zap.Error(err))
	}
	c.emitProgress(0)
	c.emit(Transport{Icon: IconPlay})
}

func (c *Controller) changeVolume(delta float64) {
	level, muted := c.engine.Volume()
	level = c.engine.SetVolume(level + delta)
	c.emit(VolumeChanged{Level: level, Muted: muted})
}

func (c *Controller) toggleMute() {
	level, muted := c.engine.Volume()
	c.engine.SetMuted(!muted)
	c.emit(VolumeChanged{Level: level, Muted: !muted})
}

func (c *Controller) shutdown() {
	c.clock.Stop()
	if err := c.engine.Close(); err != nil {
		c.log.Warn("engine close failed", zap.Error(err))
	}
}

func (c *Controller) emitProgress(position float64) {
	c.emit(Progress{Position: position, Label: model.FormatTime(position)})
}

func (c *Controller) emit(e Event) {
	if c.onEvent != nil {
		c.onEvent(e)
	}
}
