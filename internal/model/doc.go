// Package model defines the core data structures of the player.
//
// # Track
//
// Track is an immutable description of one playable item:
//
//	track := model.NewTrack("Intro", "Artist", "Album/01 Intro.mp3", "Album/cover")
//	fmt.Println(track.DisplayName()) // "Artist - Intro"
//
// # Playlist
//
// Playlist owns the ordered track list and the current-index cursor.
// The cursor wraps around on both ends:
//
//	pl, _ := model.NewPlaylist(tracks)
//	pl.Advance() // next track, first after last
//	pl.Retreat() // previous track, last before first
//
// # Session
//
// Session is a snapshot of the playback state of the loaded track,
// handed out by the audio engine.
//
// # Time formatting
//
// FormatTime renders elapsed and total durations as "M:SS".
package model
