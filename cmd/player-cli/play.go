package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/handiism/bandcamp-player/internal/app"
	"github.com/handiism/bandcamp-player/internal/player"
)

const playHelp = `Commands (one per line):
  <enter>, space   play/pause
  n                next track
  p                previous track
  s <seconds>      seek
  g <number>       jump to track number
  +, -             volume up/down
  m                mute/unmute
  q                quit`

func newPlayCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play the playlist, controlled from stdin",
		Long:  "Play the playlist headless. Progress is printed to stdout.\n\n" + playHelp,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := flags.settings()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var console io.Writer
			if flags.verbose {
				console = os.Stderr
			}

			out := cmd.OutOrStdout()
			a, err := app.New(ctx, settings, app.Options{
				Console:    console,
				OnEvent:    func(e player.Event) { printEvent(out, e) },
				OnProgress: flags.printProgress,
			})
			if err != nil {
				return err
			}
			defer a.Close()

			fmt.Fprintln(out, playHelp)
			go readCommands(cmd.InOrStdin(), a.Controller)

			if err := a.Controller.Run(ctx); err != nil && ctx.Err() == nil {
				return err
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}

// readCommands turns stdin lines into controller commands until EOF.
func readCommands(r io.Reader, ctrl *player.Controller) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		cmd, ok := parseCommand(scanner.Text())
		if !ok {
			continue
		}
		if !ctrl.Send(cmd) {
			return
		}
	}
	ctrl.Send(player.Quit{})
}

func parseCommand(line string) (player.Command, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return player.TogglePlayPause{}, true
	}

	switch fields[0] {
	case "space", "play", "pause":
		return player.TogglePlayPause{}, true
	case "n", "next":
		return player.Next{}, true
	case "p", "prev", "previous":
		return player.Previous{}, true
	case "+":
		return player.VolumeUp{}, true
	case "-":
		return player.VolumeDown{}, true
	case "m", "mute":
		return player.ToggleMute{}, true
	case "q", "quit":
		return player.Quit{}, true
	case "s", "seek":
		if len(fields) < 2 {
			return nil, false
		}
		seconds, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, false
		}
		return player.Seek{Seconds: seconds}, true
	case "g", "go":
		if len(fields) < 2 {
			return nil, false
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, false
		}
		return player.Select{Index: n - 1}, true
	}
	return nil, false
}

func printEvent(w io.Writer, e player.Event) {
	switch e := e.(type) {
	case player.TrackLoaded:
		fmt.Fprintf(w, "\n♪ [%d/%d] %s (%s)\n", e.Index+1, e.Total, e.Track.DisplayName(), e.DurationLabel)
	case player.Progress:
		fmt.Fprintf(w, "\r%s ", e.Label)
	case player.Transport:
		fmt.Fprintf(w, "\r%s ", e.Icon)
	case player.LoadFailed:
		fmt.Fprintf(w, "\n✗ [%d] %s: %v\n", e.Index+1, e.Track.DisplayName(), e.Err)
	case player.VolumeChanged:
		if e.Muted {
			fmt.Fprintf(w, "\nvolume muted\n")
		} else {
			fmt.Fprintf(w, "\nvolume %+.1f\n", e.Level)
		}
	}
}
