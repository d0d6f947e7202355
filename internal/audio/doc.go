// Package audio provides the playback engine and audio file services.
//
// # Playback
//
// Engine decodes one track at a time with beep and feeds it to an Output:
//
//	engine := audio.NewEngine(out, store, logger)
//	if _, err := engine.Load(track); err != nil {
//	    // errors.Is(err, audio.ErrResourceNotFound) or audio.ErrDecodeFailed
//	}
//	engine.Play()
//	engine.Seek(42)
//
// Supported formats: MP3, WAV, FLAC, Ogg Vorbis.
//
// # ID3 Tags
//
// TagReader reads title, artist and album from MP3 files for library scans.
//
// # Playlists
//
// PlaylistCreator writes M3U, PLS, WPL and ZPL playlists, and
// ParsePlaylist reads M3U and PLS back into tracks:
//
//	tracks, err := audio.ParsePlaylist(f, audio.FormatFromName(path))
package audio
