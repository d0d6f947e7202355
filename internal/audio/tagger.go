package audio

import (
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2"
)

// Tags holds the metadata the player shows for a track.
type Tags struct {
	Title  string
	Artist string
	Album  string
}

// TagReader reads ID3 tags from MP3 files.
//
// Only the frames the player displays are parsed, which keeps scanning
// large libraries cheap. Files without an ID3 tag, and files in other
// formats, yield empty Tags and no error.
//
// Example:
//
//	tags, err := NewTagReader().ReadTags("/music/Album/01 Song.mp3")
//	if err == nil && tags.Title != "" {
//	    title = tags.Title
//	}
type TagReader struct {
	frames []string
}

// NewTagReader creates a TagReader for title, artist and album frames.
func NewTagReader() *TagReader {
	return &TagReader{frames: []string{"Title", "Artist", "Album/Movie/Show title"}}
}

// ReadTags returns the tags of the file at path.
func (r *TagReader) ReadTags(path string) (Tags, error) {
	if strings.ToLower(filepath.Ext(path)) != ".mp3" {
		return Tags{}, nil
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true, ParseFrames: r.frames})
	if err != nil {
		return Tags{}, err
	}
	defer tag.Close()

	return Tags{
		Title:  strings.TrimSpace(tag.Title()),
		Artist: strings.TrimSpace(tag.Artist()),
		Album:  strings.TrimSpace(tag.Album()),
	}, nil
}
