package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jsphweid/scof/note"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(parseCmd)
}

var parseCmd = &cobra.Command{
	Use:   "parse MARKING...",
	Short: "Parses note markings",
	Long:  `Parses note markings such as "3/8C#4" and prints what they hold.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := 0
		for _, arg := range args {
			if err := describe(cmd.OutOrStdout(), arg); err != nil {
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d markings did not parse", failed, len(args))
		}
		return nil
	},
}

func describe(w io.Writer, marking string) error {
	n, err := note.Parse(marking)
	if err != nil {
		var offset int
		var pe *note.ParseError
		if errors.As(err, &pe) {
			offset = pe.Offset
		}
		fmt.Fprintf(w, "%s\n%s^ %v\n", marking, strings.Repeat(" ", offset), err)
		return err
	}

	fmt.Fprintf(w, "%s\n", n)
	fmt.Fprintf(w, "  duration: %s\n", n.Duration)
	if n.IsRest() {
		fmt.Fprintf(w, "  rest\n")
	} else {
		fmt.Fprintf(w, "  pitch: %s\n", n.Pitch)
	}
	for _, a := range n.Articulation {
		if mark, ok := a.Mark(); ok {
			fmt.Fprintf(w, "  articulation: %c\n", mark)
		}
	}
	fmt.Fprintf(w, "  visual distance: %d\n", n.VisualDistance())
	return nil
}
