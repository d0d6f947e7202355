package main

import (
	"fmt"

	"github.com/gopxl/beep/v2"
	"github.com/spf13/cobra"

	"github.com/handiism/bandcamp-player/internal/audio"
	ioutils "github.com/handiism/bandcamp-player/internal/io"
	"github.com/handiism/bandcamp-player/internal/model"
)

func newProbeCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "probe <fileID>...",
		Short: "Load tracks from the library and print their durations",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := flags.settings()
			if err != nil {
				return err
			}

			store := ioutils.NewDirStore(settings.LibraryPath)
			engine := audio.NewEngine(audio.NewNullOutput(beep.SampleRate(settings.SampleRate)), store, nil)
			defer engine.Close()
			tags := audio.NewTagReader()

			out := cmd.OutOrStdout()
			failed := 0
			for _, id := range args {
				session, err := engine.Load(model.NewTrack("", "", id, ""))
				if err != nil {
					fmt.Fprintf(out, "✗ %s: %v\n", id, err)
					failed++
					continue
				}

				line := fmt.Sprintf("✓ %s  %s", id, model.FormatTime(session.Duration))
				if rc, path, err := store.OpenAudio(id); err == nil {
					rc.Close()
					if t, err := tags.ReadTags(path); err == nil && t.Title != "" {
						line += fmt.Sprintf("  %s - %s", t.Artist, t.Title)
					}
				}
				fmt.Fprintln(out, line)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d files could not be loaded", failed, len(args))
			}
			return nil
		},
	}
}
