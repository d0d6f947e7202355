package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/handiism/bandcamp-player/internal/config"
	"github.com/handiism/bandcamp-player/internal/library"
)

type globalFlags struct {
	config   string
	envFile  string
	library  string
	playlist string
	verbose  bool
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "player-cli",
		Short:         "Play a fixed playlist of local audio files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.config, "config", "", "path to settings file (default: user config dir)")
	pf.StringVar(&flags.envFile, "env", ".env", "dotenv file with PLAYER_* overrides")
	pf.StringVar(&flags.library, "library", "", "library directory (overrides settings)")
	pf.StringVar(&flags.playlist, "playlist", "", "playlist file to play (.m3u or .pls)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "show verbose output and debug logs")

	root.AddCommand(
		newPlayCmd(flags),
		newScanCmd(flags),
		newProbeCmd(flags),
	)
	return root
}

// settings resolves the settings file, environment and flag overrides.
func (f *globalFlags) settings() (*config.Settings, error) {
	settings, err := config.Resolve(f.config, f.envFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if f.library != "" {
		settings.LibraryPath = f.library
	}
	if f.playlist != "" {
		settings.PlaylistPath = f.playlist
	}
	if f.verbose {
		settings.LogLevel = "debug"
	}
	return settings, nil
}

// printProgress prints library progress the way the downloader did.
func (f *globalFlags) printProgress(event library.ProgressEvent) {
	if event.Level == library.LevelVerbose && !f.verbose {
		return
	}

	prefix := ""
	switch event.Level {
	case library.LevelError:
		prefix = "✗ "
	case library.LevelWarning:
		prefix = "! "
	case library.LevelSuccess:
		prefix = "✓ "
	case library.LevelInfo:
		prefix = "› "
	default:
		prefix = "  "
	}

	fmt.Println(prefix + event.Message)
}
