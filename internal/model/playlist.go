package model

import "errors"

var (
	ErrEmptyPlaylist   = errors.New("playlist has no tracks")
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Playlist is a fixed, ordered list of tracks with a cursor.
//
// The cursor always points at a valid track: Advance and Retreat wrap
// around both ends, and Select rejects out-of-range indices without
// moving. Playlist is not safe for concurrent use; it is owned by the
// player controller, which touches it from a single goroutine.
type Playlist struct {
	tracks []Track
	index  int
}

// NewPlaylist creates a playlist positioned on the first track.
// The tracks are copied; an empty list returns ErrEmptyPlaylist.
func NewPlaylist(tracks []Track) (*Playlist, error) {
	if len(tracks) == 0 {
		return nil, ErrEmptyPlaylist
	}
	owned := make([]Track, len(tracks))
	copy(owned, tracks)
	return &Playlist{tracks: owned}, nil
}

// Current returns the track under the cursor.
func (p *Playlist) Current() Track {
	return p.tracks[p.index]
}

// Advance moves the cursor forward, wrapping from the last track to the
// first, and returns the new current track.
func (p *Playlist) Advance() Track {
	p.index = (p.index + 1) % len(p.tracks)
	return p.Current()
}

// Retreat moves the cursor backward, wrapping from the first track to the
// last, and returns the new current track.
func (p *Playlist) Retreat() Track {
	p.index = (p.index - 1 + len(p.tracks)) % len(p.tracks)
	return p.Current()
}

// Select moves the cursor to index.
func (p *Playlist) Select(index int) (Track, error) {
	if index < 0 || index >= len(p.tracks) {
		return Track{}, ErrIndexOutOfRange
	}
	p.index = index
	return p.Current(), nil
}

// Index returns the cursor position.
func (p *Playlist) Index() int {
	return p.index
}

// Len returns the number of tracks.
func (p *Playlist) Len() int {
	return len(p.tracks)
}

// Tracks returns a copy of all tracks.
func (p *Playlist) Tracks() []Track {
	result := make([]Track, len(p.tracks))
	copy(result, p.tracks)
	return result
}
