package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/handiism/bandcamp-player/internal/library"
)

func newScanCmd(flags *globalFlags) *cobra.Command {
	var (
		out   string
		title string
	)

	cmd := &cobra.Command{
		Use:   "scan <dir>",
		Short: "Scan a directory for audio files and write a playlist",
		Long: "Scan walks <dir>, reads ID3 tags and writes a playlist whose entries are " +
			"relative to <dir>. The format follows the output extension: .m3u, .pls, .wpl or .zpl.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := flags.settings()
			if err != nil {
				return err
			}

			root := args[0]
			mgr := library.NewManager(settings, flags.printProgress)
			tracks, err := mgr.Scan(cmd.Context(), root)
			if err != nil {
				return err
			}

			if out == "" {
				out = filepath.Join(root, "playlist.m3u")
			}
			if title == "" {
				title = filepath.Base(root)
			}
			if err := mgr.WritePlaylist(out, title, tracks); err != nil {
				return fmt.Errorf("writing playlist: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Play it with: player-cli play --library %s --playlist %s\n", root, out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "playlist file to write (default: <dir>/playlist.m3u)")
	cmd.Flags().StringVar(&title, "title", "", "playlist title for .wpl and .zpl (default: directory name)")
	return cmd
}
