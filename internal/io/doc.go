// Package ioutils provides the file-system side of the player: the asset
// store that resolves track and cover identifiers inside a library
// directory, cover thumbnail scaling, and small file helpers.
//
// Missing assets are reported with errors wrapping fs.ErrNotExist so
// callers can tell them apart from decode or permission failures:
//
//	rc, name, err := store.OpenAudio("track1")
//	if ioutils.IsNotFound(err) {
//	    // report "resource not found"
//	}
package ioutils
