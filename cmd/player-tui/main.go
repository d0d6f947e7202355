package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/handiism/bandcamp-player/internal/app"
	"github.com/handiism/bandcamp-player/internal/config"
	"github.com/handiism/bandcamp-player/internal/library"
	"github.com/handiism/bandcamp-player/internal/player"
	"github.com/handiism/bandcamp-player/internal/tui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath, envFile, libraryPath, playlistPath string

	cmd := &cobra.Command{
		Use:           "player-tui",
		Short:         "Terminal audio player",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Resolve(configPath, envFile)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if libraryPath != "" {
				settings.LibraryPath = libraryPath
			}
			if playlistPath != "" {
				settings.PlaylistPath = playlistPath
			}
			return run(cmd.Context(), settings)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to settings file (default: user config dir)")
	cmd.Flags().StringVar(&envFile, "env", ".env", "dotenv file with PLAYER_* overrides")
	cmd.Flags().StringVar(&libraryPath, "library", "", "library directory (overrides settings)")
	cmd.Flags().StringVar(&playlistPath, "playlist", "", "playlist file to play (.m3u or .pls)")
	return cmd
}

func run(ctx context.Context, settings *config.Settings) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan player.Event, 64)
	a, err := app.New(ctx, settings, app.Options{
		OnEvent: func(e player.Event) {
			select {
			case events <- e:
			case <-ctx.Done():
			}
		},
		OnProgress: func(e library.ProgressEvent) {
			if e.Level == library.LevelError {
				fmt.Fprintln(os.Stderr, e.Message)
			}
		},
	})
	if err != nil {
		return err
	}
	defer a.Close()

	go func() {
		_ = a.Controller.Run(ctx)
	}()

	err = tui.Run(ctx, a.Controller, events, a.Playlist.Tracks(), a.Cover, settings.CoverSize)
	cancel()
	<-a.Controller.Done()

	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
