package ioutils

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// AudioExtensions lists the audio file extensions the player can decode,
// in the order they are tried when a file ID has no extension.
var AudioExtensions = []string{".mp3", ".wav", ".flac", ".ogg"}

// CoverExtensions lists the image extensions tried for cover IDs.
var CoverExtensions = []string{".jpg", ".jpeg", ".png"}

// DirStore is the asset store backed by a library directory.
//
// File IDs and cover IDs are slash-separated paths relative to the root.
// An ID may carry its extension ("Album/01 Intro.mp3") or omit it
// ("track1"), in which case the known extensions are tried in order.
// IDs that would escape the root are treated as missing.
//
// Example:
//
//	store := NewDirStore("/home/me/Music")
//	rc, name, err := store.OpenAudio("Album/01 Intro")
//	if errors.Is(err, fs.ErrNotExist) {
//	    // asset missing
//	}
//	defer rc.Close()
type DirStore struct {
	root string
}

// NewDirStore creates a DirStore rooted at root.
func NewDirStore(root string) *DirStore {
	return &DirStore{root: root}
}

// Root returns the library directory.
func (s *DirStore) Root() string {
	return s.root
}

// OpenAudio opens the audio resource for fileID.
//
// It returns the open file together with its resolved name, whose
// extension tells the caller which decoder to use. A missing asset
// yields an error wrapping fs.ErrNotExist.
func (s *DirStore) OpenAudio(fileID string) (io.ReadSeekCloser, string, error) {
	path, err := s.resolve(fileID, AudioExtensions)
	if err != nil {
		return nil, "", fmt.Errorf("audio asset %q: %w", fileID, err)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("audio asset %q: %w", fileID, err)
	}
	return f, path, nil
}

// OpenCover reads the cover image for coverID.
// A missing cover yields an error wrapping fs.ErrNotExist.
func (s *DirStore) OpenCover(coverID string) ([]byte, error) {
	path, err := s.resolve(coverID, CoverExtensions)
	if err != nil {
		return nil, fmt.Errorf("cover asset %q: %w", coverID, err)
	}
	return os.ReadFile(path)
}

// resolve maps an ID to an existing regular file below the root.
func (s *DirStore) resolve(id string, exts []string) (string, error) {
	rel := filepath.FromSlash(id)
	if id == "" || !filepath.IsLocal(rel) {
		return "", fs.ErrNotExist
	}
	base := filepath.Join(s.root, rel)

	if hasExtension(base, exts) && isRegular(base) {
		return base, nil
	}
	for _, ext := range exts {
		if candidate := base + ext; isRegular(candidate) {
			return candidate, nil
		}
	}
	return "", fs.ErrNotExist
}

// IsAudioFile reports whether path has a supported audio extension.
func IsAudioFile(path string) bool {
	return hasExtension(path, AudioExtensions)
}

// IsCoverFile reports whether path has a supported cover image extension.
func IsCoverFile(path string) bool {
	return hasExtension(path, CoverExtensions)
}

func hasExtension(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

func isRegular(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// IsNotFound reports whether err means an asset is missing.
func IsNotFound(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// SanitizeFileName removes or replaces characters that are invalid in file/folder names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars 0x00-0x1f) → underscore
//   - Trailing dots → removed (Windows limitation)
//   - Multiple whitespace → single space
//   - Trailing whitespace → removed
//
// Example:
//
//	SanitizeFileName("Mix: Part 1/2") // Returns "Mix_ Part 1_2"
func SanitizeFileName(name string) string {
	name = invalidChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = whitespace.ReplaceAllString(name, " ")
	return strings.TrimRight(name, " ")
}

var (
	invalidChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots = regexp.MustCompile(`\.+$`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// WriteFile writes data to path, creating parent directories as needed.
// The file is created with mode 0644 and truncated if it exists.
func WriteFile(path string, data []byte) error {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// EnsureDir creates a directory and all parent directories if they don't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
