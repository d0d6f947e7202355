// Package library decides which tracks the player starts with.
//
// Tracks come from a playlist file, a scan of the library directory, or
// the list in the settings, in that order of preference. Scans read ID3
// tags with bounded concurrency and report progress through a callback:
//
//	mgr := library.NewManager(settings, func(e library.ProgressEvent) {
//	    fmt.Println(e.Message)
//	})
//	tracks, err := mgr.LoadTracks(ctx)
package library
