package clock

import "time"

// Period is the fixed sampling interval of the progress clock.
const Period = time.Second

// State is the lifecycle state of a Clock.
type State int

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// Source is what the clock samples: the playback engine.
type Source interface {
	Position() float64
	Duration() float64
	SessionID() uint64
}

// Event is emitted by the clock on every tick.
type Event interface {
	isClockEvent()
}

// Tick reports the sampled position of a running session.
type Tick struct {
	SessionID uint64
	Position  float64
}

// EndOfTrack reports that the session reached its duration. The clock
// has already stopped when it is emitted.
type EndOfTrack struct {
	SessionID uint64
}

func (Tick) isClockEvent()       {}
func (EndOfTrack) isClockEvent() {}

// Clock samples a Source once per Period while running.
//
// The clock does not run its own goroutine. The owner selects on C and
// calls Tick for every value received, which keeps all state changes on
// the owner's goroutine:
//
//	for {
//	    select {
//	    case <-clk.C():
//	        clk.Tick()
//	    case cmd := <-commands:
//	        handle(cmd)
//	    }
//	}
//
// At most one ticker is live at a time: Start discards the previous one.
// A clock is bound to the session it was started for; ticks arriving
// after the source switched sessions are dropped and stop the clock.
type Clock struct {
	source    Source
	emit      func(Event)
	newTicker TickerFunc

	ticker   Ticker
	session  uint64
	reported float64
	active   int
}

// New creates a stopped clock sampling source and passing events to emit.
// A nil newTicker uses NewTicker.
func New(source Source, emit func(Event), newTicker TickerFunc) *Clock {
	if newTicker == nil {
		newTicker = NewTicker
	}
	return &Clock{
		source:    source,
		emit:      emit,
		newTicker: newTicker,
	}
}

// Start (re)starts the clock for the given session.
func (c *Clock) Start(sessionID uint64) {
	c.Stop()
	c.session = sessionID
	c.ticker = c.newTicker(Period)
	c.active++
}

// Stop stops the clock. Stopping a stopped clock is a no-op.
func (c *Clock) Stop() {
	if c.ticker == nil {
		return
	}
	c.ticker.Stop()
	c.ticker = nil
	c.active--
}

// C returns the channel delivering tick times, or nil when stopped.
// Receiving from a nil channel blocks forever, so a select on a stopped
// clock simply never fires.
func (c *Clock) C() <-chan time.Time {
	if c.ticker == nil {
		return nil
	}
	return c.ticker.C()
}

// Tick samples the source once and emits the result.
func (c *Clock) Tick() {
	if c.ticker == nil {
		return
	}
	if c.source.SessionID() != c.session {
		c.Stop()
		return
	}

	pos := c.source.Position()
	if pos >= c.source.Duration() {
		c.Stop()
		c.reported = 0
		c.emit(EndOfTrack{SessionID: c.session})
		return
	}

	c.reported = pos
	c.emit(Tick{SessionID: c.session, Position: pos})
}

// State returns Running while a ticker is live.
func (c *Clock) State() State {
	if c.ticker == nil {
		return Stopped
	}
	return Running
}

// Reported returns the last position the clock reported; 0 after
// end-of-track.
func (c *Clock) Reported() float64 {
	return c.reported
}

// Active returns the number of live tickers owned by the clock.
func (c *Clock) Active() int {
	return c.active
}
