package model

import (
	"path"
	"strings"
)

// Track describes one playable item of the playlist.
//
// Track is an immutable value: it is created once when the playlist is
// built and never modified afterwards. FileID and CoverID are opaque
// identifiers resolved by the asset store; they are usually paths relative
// to the library root, with or without extension.
//
// Example:
//
//	track := model.Track{
//	    Title:   "Training Season",
//	    Artist:  "Dua Lipa",
//	    FileID:  "track1",
//	    CoverID: "cover1",
//	}
type Track struct {
	// Title is the track title shown on screen.
	Title string `json:"title"`

	// Artist is the performing artist (may list several names).
	Artist string `json:"artist"`

	// FileID identifies the audio resource in the asset store.
	FileID string `json:"file_id"`

	// CoverID identifies the cover image in the asset store.
	// Empty string means the track has no cover.
	CoverID string `json:"cover_id,omitempty"`
}

// NewTrack creates a Track, deriving a title from the file ID when
// title is empty.
//
// The derived title is the base name of fileID without its extension,
// so "Album/01 Intro.mp3" becomes "01 Intro".
func NewTrack(title, artist, fileID, coverID string) Track {
	if strings.TrimSpace(title) == "" {
		title = TitleFromFileID(fileID)
	}
	return Track{
		Title:   title,
		Artist:  artist,
		FileID:  fileID,
		CoverID: coverID,
	}
}

// HasCover reports whether the track references a cover image.
func (t Track) HasCover() bool {
	return t.CoverID != ""
}

// DisplayName returns "Artist - Title", or just the title when the
// artist is unknown.
func (t Track) DisplayName() string {
	if t.Artist == "" {
		return t.Title
	}
	return t.Artist + " - " + t.Title
}

// TitleFromFileID returns the base name of a file ID without extension.
func TitleFromFileID(fileID string) string {
	base := path.Base(strings.ReplaceAll(fileID, "\\", "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}
