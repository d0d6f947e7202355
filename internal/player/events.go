package player

import "github.com/handiism/bandcamp-player/internal/model"

// Event is published by the controller to the presentation layer.
type Event interface {
	isPlayerEvent()
}

// Icon is the transport button state.
type Icon int

const (
	// IconPlay is shown while output is stopped.
	IconPlay Icon = iota
	// IconPause is shown while output is running.
	IconPause
)

func (i Icon) String() string {
	if i == IconPause {
		return "⏸"
	}
	return "▶"
}

// TrackLoaded announces a new session: metadata and seek bounds.
type TrackLoaded struct {
	Track         model.Track
	Index         int
	Total         int
	Duration      float64
	DurationLabel string
}

// Progress moves the seek bar and the elapsed label.
type Progress struct {
	Position float64
	Label    string
}

// Transport switches the transport icon.
type Transport struct {
	Icon Icon
}

// LoadFailed reports a track that could not be loaded. Transport stays
// stopped.
type LoadFailed struct {
	Track model.Track
	Index int
	Err   error
}

// VolumeChanged reports the engine volume after a volume command.
type VolumeChanged struct {
	Level float64
	Muted bool
}

func (TrackLoaded) isPlayerEvent()   {}
func (Progress) isPlayerEvent()      {}
func (Transport) isPlayerEvent()     {}
func (LoadFailed) isPlayerEvent()    {}
func (VolumeChanged) isPlayerEvent() {}

// Command is a user intent delivered to the controller.
type Command interface {
	isCommand()
}

type (
	TogglePlayPause struct{}
	Next            struct{}
	Previous        struct{}
	VolumeUp        struct{}
	VolumeDown      struct{}
	ToggleMute      struct{}
	Quit            struct{}

	// Seek moves playback to Seconds, clamped to the track bounds.
	Seek struct {
		Seconds float64
	}

	// Select jumps to the playlist entry at Index and plays it.
	Select struct {
		Index int
	}
)

func (TogglePlayPause) isCommand() {}
func (Next) isCommand()            {}
func (Previous) isCommand()        {}
func (VolumeUp) isCommand()        {}
func (VolumeDown) isCommand()      {}
func (ToggleMute) isCommand()      {}
func (Quit) isCommand()            {}
func (Seek) isCommand()            {}
func (Select) isCommand()          {}
