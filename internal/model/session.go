package model

// Session is a snapshot of the playback state bound to a loaded track.
//
// A new session, with a new ID, is created by every successful load.
// Position and Duration are in seconds and satisfy
// 0 <= Position <= Duration.
type Session struct {
	ID       uint64
	Track    Track
	Position float64
	Duration float64
	Playing  bool
}
