package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"time"

	"github.com/gopxl/beep/v2"
	"go.uber.org/zap"

	"github.com/handiism/bandcamp-player/internal/audio"
	"github.com/handiism/bandcamp-player/internal/audio/device"
	"github.com/handiism/bandcamp-player/internal/config"
	ioutils "github.com/handiism/bandcamp-player/internal/io"
	"github.com/handiism/bandcamp-player/internal/library"
	"github.com/handiism/bandcamp-player/internal/logger"
	"github.com/handiism/bandcamp-player/internal/model"
	"github.com/handiism/bandcamp-player/internal/player"
)

// Options configures New.
type Options struct {
	// Console receives log lines; nil logs to the configured file only.
	Console io.Writer

	// Output overrides the sound device.
	Output audio.Output

	// OnEvent receives controller events on the controller goroutine.
	OnEvent func(player.Event)

	// OnProgress receives library scan progress.
	OnProgress func(library.ProgressEvent)
}

// App holds the wired player components.
type App struct {
	Settings   *config.Settings
	Log        *zap.Logger
	Store      *ioutils.DirStore
	Library    *library.Manager
	Engine     *audio.Engine
	Playlist   *model.Playlist
	Controller *player.Controller

	images *ioutils.ImageService
}

// New builds the logger, asset store, output device, engine, playlist and
// controller described by settings, and loads the first track.
func New(ctx context.Context, settings *config.Settings, opts Options) (*App, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	log, err := logger.New(settings.ToLoggerConfig(opts.Console))
	if err != nil {
		return nil, err
	}

	lib := library.NewManager(settings, opts.OnProgress)
	tracks, err := lib.LoadTracks(ctx)
	if err != nil {
		return nil, err
	}
	playlist, err := model.NewPlaylist(tracks)
	if err != nil {
		return nil, err
	}

	out := opts.Output
	if out == nil {
		rate := beep.SampleRate(settings.SampleRate)
		out, err = device.Open(rate, time.Duration(settings.BufferMs)*time.Millisecond)
		if err != nil {
			return nil, fmt.Errorf("open audio device: %w", err)
		}
		if !device.Available {
			log.Warn("built without audio device support, playback is silent")
		}
	}

	store := ioutils.NewDirStore(settings.LibraryPath)
	engine := audio.NewEngine(out, store, log.Named("engine"))
	ctrl := player.NewController(playlist, engine, opts.OnEvent, player.Options{
		Logger:      log.Named("player"),
		AutoAdvance: settings.AutoAdvance,
	})

	log.Info("player ready",
		zap.String("library", settings.LibraryPath),
		zap.Int("tracks", playlist.Len()),
		zap.Bool("auto_advance", settings.AutoAdvance))

	ctrl.Start()

	return &App{
		Settings:   settings,
		Log:        log,
		Store:      store,
		Library:    lib,
		Engine:     engine,
		Playlist:   playlist,
		Controller: ctrl,
		images:     ioutils.NewImageService(),
	}, nil
}

// Cover loads and scales the cover of track to fit width x height pixels.
func (a *App) Cover(ctx context.Context, track model.Track, width, height int) (image.Image, error) {
	if !track.HasCover() {
		return nil, errors.New("track has no cover")
	}
	data, err := a.Store.OpenCover(track.CoverID)
	if err != nil {
		return nil, err
	}
	return a.images.Thumbnail(ctx, data, width, height)
}

// Close flushes the logger. The engine is closed by the controller when
// its Run loop returns.
func (a *App) Close() {
	// Sync reports EINVAL for terminals and pipes; there is nothing to do about it.
	_ = a.Log.Sync()
}
