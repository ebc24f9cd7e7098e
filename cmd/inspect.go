package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/jsphweid/scof/chord"
	"github.com/jsphweid/scof/constants"
	"github.com/jsphweid/scof/document"
	"github.com/jsphweid/scof/model"
	"github.com/jsphweid/scof/note"
	"github.com/jsphweid/scof/score"
	"github.com/jsphweid/scof/util"
	"github.com/spf13/cobra"
)

var inspectChords bool

func init() {
	inspectCmd.Flags().BoolVar(&inspectChords, "chords", false, "list the sounding MIDI keys wherever they change instead")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect MOVEMENT",
	Short: "Walks a movement",
	Long:  `Walks every channel of a movement file marking by marking.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := document.LoadScore(args[0])
		if err != nil {
			return err
		}
		if inspectChords {
			return inspectSonorities(cmd.OutOrStdout(), s.Movement[0])
		}
		inspect(cmd.OutOrStdout(), s)
		return nil
	},
}

func inspect(w io.Writer, s *model.Score) {
	bars := s.Movement[0].Bar
	chans := 0
	for _, bar := range bars {
		chans = util.Max(chans, len(bar.Chan))
	}
	for ch := 0; ch < chans; ch++ {
		fmt.Fprintf(w, "chan %d\n", ch)
		// every stored marking, including those after one that doesn't parse
		for m, bar := range bars {
			if ch >= len(bar.Chan) {
				continue
			}
			for c := score.NewCursor(m, ch, 0); c.Marking < len(bar.Chan[ch].Notes); c.RightUnchecked() {
				n, err := score.Note(s, c)
				var pe *note.ParseError
				switch {
				case err == nil:
					fmt.Fprintf(w, "  %d:%d  %-8s visual distance %d\n", c.Measure, c.Marking, n, n.VisualDistance())
				case errors.As(err, &pe):
					fmt.Fprintf(w, "  %d:%d  %v\n", c.Measure, c.Marking, err)
				}
			}
		}
	}
}

func inspectSonorities(w io.Writer, m model.Movement) error {
	chords, err := chord.Movement(m)
	if err != nil {
		return err
	}
	for _, c := range chords {
		beat := float64(c.Tick) / constants.TicksPerQuarter
		fmt.Fprintf(w, "%8.2f  %s\n", beat, c)
	}
	return nil
}
