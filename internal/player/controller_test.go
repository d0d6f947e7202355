package player

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/handiism/bandcamp-player/internal/clock"
	"github.com/handiism/bandcamp-player/internal/model"
)

var errNotFound = errors.New("not found")

type fakeEngine struct {
	durations map[string]float64
	missing   map[string]bool

	loads   []string
	lastID  uint64
	current *model.Session
	volume  float64
	muted   bool
	closed  bool
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		durations: map[string]float64{},
		missing:   map[string]bool{},
	}
}

func (e *fakeEngine) Load(track model.Track) (model.Session, error) {
	e.loads = append(e.loads, track.FileID)
	if e.missing[track.FileID] {
		return model.Session{}, fmt.Errorf("load %q: %w", track.FileID, errNotFound)
	}
	dur, ok := e.durations[track.FileID]
	if !ok {
		dur = 180
	}
	e.lastID++
	e.current = &model.Session{ID: e.lastID, Track: track, Duration: dur}
	return *e.current, nil
}

func (e *fakeEngine) Play() {
	if e.current != nil {
		e.current.Playing = true
	}
}

func (e *fakeEngine) Pause() {
	if e.current != nil {
		e.current.Playing = false
	}
}

func (e *fakeEngine) Seek(seconds float64) error {
	if e.current == nil {
		return nil
	}
	e.current.Position = max(0, min(seconds, e.current.Duration))
	return nil
}

func (e *fakeEngine) Position() float64 {
	if e.current == nil {
		return 0
	}
	return e.current.Position
}

func (e *fakeEngine) Duration() float64 {
	if e.current == nil {
		return 0
	}
	return e.current.Duration
}

func (e *fakeEngine) Playing() bool {
	return e.current != nil && e.current.Playing
}

func (e *fakeEngine) SessionID() uint64 {
	if e.current == nil {
		return 0
	}
	return e.current.ID
}

func (e *fakeEngine) SetVolume(level float64) float64 {
	e.volume = max(-8, min(level, 0))
	return e.volume
}

func (e *fakeEngine) SetMuted(muted bool)     { e.muted = muted }
func (e *fakeEngine) Volume() (float64, bool) { return e.volume, e.muted }
func (e *fakeEngine) Close() error {
	e.closed = true
	return nil
}

type fakeTicker struct {
	ch      chan time.Time
	stopped bool
}

func (f *fakeTicker) C() <-chan time.Time { return f.ch }
func (f *fakeTicker) Stop()               { f.stopped = true }

type tickers struct {
	made []*fakeTicker
}

func (ts *tickers) New(time.Duration) clock.Ticker {
	t := &fakeTicker{ch: make(chan time.Time, 1)}
	ts.made = append(ts.made, t)
	return t
}

func (ts *tickers) live() int {
	n := 0
	for _, t := range ts.made {
		if !t.stopped {
			n++
		}
	}
	return n
}

type recorder struct {
	events []Event
}

func (r *recorder) record(e Event) { r.events = append(r.events, e) }

func (r *recorder) reset() { r.events = nil }

func (r *recorder) count(match func(Event) bool) int {
	n := 0
	for _, e := range r.events {
		if match(e) {
			n++
		}
	}
	return n
}

func (r *recorder) lastIcon() (Icon, bool) {
	for i := len(r.events) - 1; i >= 0; i-- {
		if t, ok := r.events[i].(Transport); ok {
			return t.Icon, true
		}
	}
	return 0, false
}

func (r *recorder) lastProgress() (Progress, bool) {
	for i := len(r.events) - 1; i >= 0; i-- {
		if p, ok := r.events[i].(Progress); ok {
			return p, true
		}
	}
	return Progress{}, false
}

func isLoaded(e Event) bool {
	_, ok := e.(TrackLoaded)
	return ok
}

func isFailed(e Event) bool {
	_, ok := e.(LoadFailed)
	return ok
}

func testTracks() []model.Track {
	tracks := make([]model.Track, 5)
	for i := range tracks {
		n := i + 1
		tracks[i] = model.NewTrack(fmt.Sprintf("Song %d", n), "Artist", fmt.Sprintf("track%d", n), fmt.Sprintf("cover%d", n))
	}
	return tracks
}

type fixture struct {
	ctrl    *Controller
	engine  *fakeEngine
	tickers *tickers
	rec     *recorder
	list    *model.Playlist
}

func newFixture(t *testing.T, autoAdvance bool) *fixture {
	t.Helper()
	list, err := model.NewPlaylist(testTracks())
	if err != nil {
		t.Fatal(err)
	}
	f := &fixture{
		engine:  newFakeEngine(),
		tickers: &tickers{},
		rec:     &recorder{},
		list:    list,
	}
	f.ctrl = NewController(list, f.engine, f.rec.record, Options{
		AutoAdvance: autoAdvance,
		NewTicker:   f.tickers.New,
	})
	return f
}

func TestStartDoesNotAutoplay(t *testing.T) {
	f := newFixture(t, false)
	f.ctrl.Start()

	if got := f.engine.loads; len(got) != 1 || got[0] != "track1" {
		t.Fatalf("loads = %v, want [track1]", got)
	}
	if f.engine.Playing() {
		t.Error("engine should not play after Start")
	}
	if f.ctrl.clock.State() != clock.Stopped {
		t.Error("clock should be stopped after Start")
	}

	loaded, ok := f.rec.events[0].(TrackLoaded)
	if !ok {
		t.Fatalf("first event = %#v, want TrackLoaded", f.rec.events[0])
	}
	if loaded.Index != 0 || loaded.Total != 5 || loaded.DurationLabel != "3:00" {
		t.Errorf("TrackLoaded = %+v", loaded)
	}
	if icon, _ := f.rec.lastIcon(); icon != IconPlay {
		t.Errorf("icon = %v, want play", icon)
	}
}

func TestPlayPauseToggle(t *testing.T) {
	f := newFixture(t, false)
	f.ctrl.Start()

	f.ctrl.onPlayPause()
	if !f.engine.Playing() || f.ctrl.clock.State() != clock.Running {
		t.Fatal("first toggle should start playback and the clock")
	}
	if icon, _ := f.rec.lastIcon(); icon != IconPause {
		t.Errorf("icon = %v, want pause", icon)
	}

	f.ctrl.onPlayPause()
	if f.engine.Playing() || f.ctrl.clock.State() != clock.Stopped {
		t.Fatal("second toggle should stop playback and the clock")
	}
	if icon, _ := f.rec.lastIcon(); icon != IconPlay {
		t.Errorf("icon = %v, want play", icon)
	}
}

func TestNextWrapsAround(t *testing.T) {
	f := newFixture(t, false)
	f.ctrl.Start()
	f.rec.reset()

	for i := 0; i < 5; i++ {
		f.ctrl.onNext()
	}

	if got := f.rec.count(isLoaded); got != 5 {
		t.Errorf("TrackLoaded events = %d, want 5", got)
	}
	if f.list.Index() != 0 {
		t.Errorf("index = %d, want 0", f.list.Index())
	}
	want := []string{"track1", "track2", "track3", "track4", "track5", "track1"}
	if fmt.Sprint(f.engine.loads) != fmt.Sprint(want) {
		t.Errorf("loads = %v, want %v", f.engine.loads, want)
	}
	if !f.engine.Playing() {
		t.Error("next should autoplay")
	}
}

func TestPreviousFromFirst(t *testing.T) {
	f := newFixture(t, false)
	f.ctrl.Start()
	f.ctrl.onPrevious()

	if f.list.Index() != 4 {
		t.Errorf("index = %d, want 4", f.list.Index())
	}
	if last := f.engine.loads[len(f.engine.loads)-1]; last != "track5" {
		t.Errorf("loaded %q, want track5", last)
	}
}

func TestSelect(t *testing.T) {
	f := newFixture(t, false)
	f.ctrl.Start()

	f.ctrl.onSelect(3)
	if f.list.Index() != 3 || !f.engine.Playing() {
		t.Errorf("index = %d, playing = %v", f.list.Index(), f.engine.Playing())
	}

	loads := len(f.engine.loads)
	f.ctrl.onSelect(9)
	if len(f.engine.loads) != loads || f.list.Index() != 3 {
		t.Error("out of range select should be ignored")
	}
}

func TestLoadFailure(t *testing.T) {
	f := newFixture(t, false)
	f.engine.missing["track2"] = true
	f.ctrl.Start()
	f.ctrl.onPlayPause()
	f.rec.reset()

	f.ctrl.onNext()

	if f.rec.count(isLoaded) != 0 {
		t.Error("failed load must not emit TrackLoaded")
	}
	if f.rec.count(isFailed) != 1 {
		t.Fatalf("LoadFailed events = %d, want 1", f.rec.count(isFailed))
	}
	failed := f.rec.events[0].(LoadFailed)
	if failed.Track.FileID != "track2" || failed.Index != 1 || !errors.Is(failed.Err, errNotFound) {
		t.Errorf("LoadFailed = %+v", failed)
	}
	if icon, _ := f.rec.lastIcon(); icon != IconPlay {
		t.Errorf("icon = %v, want play", icon)
	}
	if f.engine.Playing() {
		t.Error("transport should be stopped after a failed load")
	}
	if f.ctrl.clock.State() != clock.Stopped || f.tickers.live() != 0 {
		t.Error("clock should be stopped after a failed load")
	}

	// Seek without a usable session is ignored.
	f.rec.reset()
	f.ctrl.onSeek(10)
	if len(f.rec.events) != 0 {
		t.Errorf("seek emitted %v", f.rec.events)
	}

	// Next still works from the failed entry.
	f.ctrl.onNext()
	if f.list.Index() != 2 || !f.engine.Playing() {
		t.Errorf("index = %d, playing = %v", f.list.Index(), f.engine.Playing())
	}
}

func TestPlayRetriesFailedLoad(t *testing.T) {
	f := newFixture(t, false)
	f.engine.missing["track1"] = true
	f.ctrl.Start()

	delete(f.engine.missing, "track1")
	f.ctrl.onPlayPause()

	if len(f.engine.loads) != 2 || !f.engine.Playing() {
		t.Errorf("loads = %v, playing = %v", f.engine.loads, f.engine.Playing())
	}
}

func TestSingleTickerAcrossLoads(t *testing.T) {
	f := newFixture(t, false)
	f.ctrl.Start()
	f.ctrl.onPlayPause()

	for i := 0; i < 3; i++ {
		f.ctrl.onNext()
		if f.tickers.live() != 1 || f.ctrl.clock.Active() != 1 {
			t.Fatalf("after next %d: live tickers = %d, active = %d", i, f.tickers.live(), f.ctrl.clock.Active())
		}
	}
	f.ctrl.onPrevious()
	if f.tickers.live() != 1 {
		t.Errorf("live tickers = %d, want 1", f.tickers.live())
	}
}

func TestStaleTickIgnored(t *testing.T) {
	f := newFixture(t, false)
	f.ctrl.Start()
	f.ctrl.onPlayPause()
	old := f.engine.SessionID()
	f.ctrl.onNext()
	f.rec.reset()

	f.ctrl.onClock(clock.Tick{SessionID: old, Position: 42})
	f.ctrl.onClock(clock.EndOfTrack{SessionID: old})

	if len(f.rec.events) != 0 {
		t.Errorf("stale clock events produced %v", f.rec.events)
	}
	if !f.engine.Playing() {
		t.Error("stale end-of-track must not pause the new session")
	}
}

func TestSeekClamps(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  float64
		label string
	}{
		{"inside", 65, 65, "1:05"},
		{"negative", -5, 0, "0:00"},
		{"past end", 1000, 200, "3:20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, false)
			f.engine.durations["track1"] = 200
			f.ctrl.Start()
			f.rec.reset()

			f.ctrl.onSeek(tt.value)

			p, ok := f.rec.lastProgress()
			if !ok {
				t.Fatal("no progress event")
			}
			if p.Position != tt.want || p.Label != tt.label {
				t.Errorf("progress = %+v, want {%v %s}", p, tt.want, tt.label)
			}
		})
	}
}

func TestPlayToEnd(t *testing.T) {
	f := newFixture(t, false)
	f.engine.durations["track1"] = 200
	f.ctrl.Start()
	f.ctrl.onPlayPause()
	f.rec.reset()

	for i := 1; i <= 200; i++ {
		f.engine.current.Position = float64(i)
		f.ctrl.clock.Tick()
	}

	progress := 0
	for _, e := range f.rec.events {
		if _, ok := e.(Progress); ok {
			progress++
		}
	}
	// 199 ticks plus the rewind.
	if progress != 200 {
		t.Errorf("progress events = %d, want 200", progress)
	}

	p, _ := f.rec.lastProgress()
	if p.Position != 0 || p.Label != "0:00" {
		t.Errorf("final progress = %+v, want 0:00", p)
	}
	if icon, _ := f.rec.lastIcon(); icon != IconPlay {
		t.Errorf("icon = %v, want play", icon)
	}
	if f.engine.Playing() || f.engine.Position() != 0 {
		t.Errorf("playing = %v, position = %v", f.engine.Playing(), f.engine.Position())
	}
	if f.ctrl.clock.State() != clock.Stopped {
		t.Error("clock should stop at end of track")
	}
	if f.list.Index() != 0 || len(f.engine.loads) != 1 {
		t.Error("end of track must not change tracks")
	}
}

func TestAutoAdvance(t *testing.T) {
	f := newFixture(t, true)
	f.engine.durations["track1"] = 2
	f.ctrl.Start()
	f.ctrl.onPlayPause()

	f.engine.current.Position = 2
	f.ctrl.clock.Tick()

	if f.list.Index() != 1 {
		t.Errorf("index = %d, want 1", f.list.Index())
	}
	if !f.engine.Playing() || f.ctrl.clock.State() != clock.Running {
		t.Error("next track should be playing")
	}
}

func TestVolume(t *testing.T) {
	f := newFixture(t, false)
	f.ctrl.Start()
	f.rec.reset()

	f.ctrl.handle(VolumeDown{})
	f.ctrl.handle(VolumeDown{})
	f.ctrl.handle(VolumeUp{})
	f.ctrl.handle(ToggleMute{})

	want := []VolumeChanged{
		{Level: -0.5},
		{Level: -1},
		{Level: -0.5},
		{Level: -0.5, Muted: true},
	}
	if len(f.rec.events) != len(want) {
		t.Fatalf("events = %v", f.rec.events)
	}
	for i, e := range f.rec.events {
		if e != Event(want[i]) {
			t.Errorf("event %d = %#v, want %#v", i, e, want[i])
		}
	}

	f.ctrl.handle(VolumeUp{})
	f.ctrl.handle(VolumeUp{})
	if f.engine.volume != 0 {
		t.Errorf("volume = %v, want clamped to 0", f.engine.volume)
	}
}

func TestRun(t *testing.T) {
	f := newFixture(t, false)
	f.ctrl.Start()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	errc := make(chan error, 1)
	go func() { errc <- f.ctrl.Run(ctx) }()

	f.ctrl.Send(Next{})
	f.ctrl.Send(Seek{Seconds: 30})
	f.ctrl.Send(Quit{})

	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-ctx.Done():
		t.Fatal("Run did not return")
	}

	if f.list.Index() != 1 {
		t.Errorf("index = %d, want 1", f.list.Index())
	}
	if p, _ := f.rec.lastProgress(); p.Position != 30 {
		t.Errorf("progress = %+v, want 30", p)
	}
	if !f.engine.closed {
		t.Error("engine should be closed when Run returns")
	}
	if f.tickers.live() != 0 {
		t.Error("clock should be stopped when Run returns")
	}
	if f.ctrl.Send(Next{}) {
		t.Error("Send after Run returned should report false")
	}
}

func TestRunCancelled(t *testing.T) {
	f := newFixture(t, false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := f.ctrl.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	<-f.ctrl.Done()
}
