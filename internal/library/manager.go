package library

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/handiism/bandcamp-player/internal/audio"
	"github.com/handiism/bandcamp-player/internal/config"
	ioutils "github.com/handiism/bandcamp-player/internal/io"
	"github.com/handiism/bandcamp-player/internal/model"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a library progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// coverNames are the base names recognised as folder artwork.
var coverNames = []string{"cover", "folder"}

// Manager builds the track list the player starts with.
type Manager struct {
	settings *config.Settings
	tags     *audio.TagReader

	scanned int32

	onProgress func(ProgressEvent)
}

// NewManager creates a new library Manager.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent)) *Manager {
	return &Manager{
		settings:   settings,
		tags:       audio.NewTagReader(),
		onProgress: onProgress,
	}
}

// LoadTracks returns the playlist for the session. A playlist file wins
// over a library scan, which wins over the tracks listed in the settings.
func (m *Manager) LoadTracks(ctx context.Context) ([]model.Track, error) {
	switch {
	case m.settings.PlaylistPath != "":
		tracks, err := m.ReadPlaylist(m.settings.PlaylistPath)
		if err != nil {
			return nil, err
		}
		m.progress(ProgressEvent{Message: fmt.Sprintf("Loaded %d tracks from %s", len(tracks), m.settings.PlaylistPath), Level: LevelInfo})
		return tracks, nil
	case m.settings.ScanLibrary:
		return m.Scan(ctx, m.settings.LibraryPath)
	default:
		return append([]model.Track(nil), m.settings.Tracks...), nil
	}
}

// ReadPlaylist parses an .m3u or .pls file.
func (m *Manager) ReadPlaylist(file string) ([]model.Track, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tracks, err := audio.ParsePlaylist(f, audio.FormatFromName(file))
	if err != nil {
		return nil, fmt.Errorf("playlist %s: %w", file, err)
	}
	if len(tracks) == 0 {
		return nil, fmt.Errorf("playlist %s: %w", file, model.ErrEmptyPlaylist)
	}
	return tracks, nil
}

// WritePlaylist saves tracks to file in the format given by its extension.
func (m *Manager) WritePlaylist(file, title string, tracks []model.Track) error {
	creator := audio.NewPlaylistCreator(audio.FormatFromName(file), true)
	content := creator.CreatePlaylist(title, tracks)
	if err := ioutils.WriteFile(file, []byte(content)); err != nil {
		return err
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Created playlist %s (%d tracks)", file, len(tracks)), Level: LevelSuccess})
	return nil
}

// Scan walks root for audio files and reads their tags concurrently.
//
// File IDs are slash-separated paths relative to root. A cover or folder
// image next to a file becomes its cover ID. Tracks are sorted by file ID.
func (m *Manager) Scan(ctx context.Context, root string) ([]model.Track, error) {
	var files []string
	covers := map[string]string{}

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		switch {
		case ioutils.IsAudioFile(p):
			files = append(files, rel)
		case isCover(rel):
			dir := path.Dir(rel)
			if _, ok := covers[dir]; !ok {
				covers[dir] = rel
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Found %d audio files in %s", len(files), root), Level: LevelInfo})
	atomic.StoreInt32(&m.scanned, 0)

	tracks := make([]model.Track, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, m.settings.ScanConcurrency))

	for i, rel := range files {
		i, rel := i, rel
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			tags, err := m.tags.ReadTags(filepath.Join(root, filepath.FromSlash(rel)))
			if err != nil {
				m.progress(ProgressEvent{Message: fmt.Sprintf("Error reading tags of %s: %v", rel, err), Level: LevelWarning})
			}

			tracks[i] = model.NewTrack(tags.Title, tags.Artist, rel, covers[path.Dir(rel)])
			atomic.AddInt32(&m.scanned, 1)
			m.progress(ProgressEvent{Message: fmt.Sprintf("Scanned: %s", rel), Level: LevelVerbose})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(tracks, func(i, j int) bool { return tracks[i].FileID < tracks[j].FileID })

	if len(tracks) == 0 {
		return nil, fmt.Errorf("scan %s: %w", root, model.ErrEmptyPlaylist)
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Scanned %d tracks", len(tracks)), Level: LevelSuccess})
	return tracks, nil
}

// Scanned returns how many files the running or last scan has tagged.
func (m *Manager) Scanned() int32 {
	return atomic.LoadInt32(&m.scanned)
}

func isCover(rel string) bool {
	if !ioutils.IsCoverFile(rel) {
		return false
	}
	name := strings.ToLower(strings.TrimSuffix(path.Base(rel), path.Ext(rel)))
	for _, n := range coverNames {
		if name == n {
			return true
		}
	}
	return false
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
