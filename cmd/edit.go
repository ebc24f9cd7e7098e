package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/jsphweid/scof/check"
	"github.com/jsphweid/scof/document"
	"github.com/jsphweid/scof/duration"
	"github.com/jsphweid/scof/fraction"
	"github.com/jsphweid/scof/model"
	"github.com/jsphweid/scof/note"
	"github.com/jsphweid/scof/pitch"
	"github.com/jsphweid/scof/score"
	"github.com/spf13/cobra"
)

var (
	cursorMeasure int
	cursorChan    int
	cursorMarking int
	durationIndex int
	createPitch   string
)

func init() {
	f := editCmd.PersistentFlags()
	f.IntVarP(&cursorMeasure, "measure", "m", 0, "cursor measure")
	f.IntVarP(&cursorChan, "chan", "c", 0, "cursor channel")
	f.IntVarP(&cursorMarking, "marking", "k", 0, "cursor marking")

	editDurationCmd.Flags().IntVar(&durationIndex, "index", -1, "denomination index, 0 for a 128th through 9 for a quadruple whole")
	editStepCmd.Flags().StringVar(&createPitch, "create", "C4", "pitch a rest becomes")

	editCmd.AddCommand(editInsertCmd, editRemoveCmd, editPitchCmd, editDurationCmd, editDotCmd, editStepCmd, editNewMeasureCmd)
	rootCmd.AddCommand(editCmd)
}

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edits a movement file in place",
}

func cursor() score.Cursor {
	return score.NewCursor(cursorMeasure, cursorChan, cursorMarking)
}

// editMovement loads path, applies fn and writes the movement back.
func editMovement(path string, fn func(*model.Score) error) error {
	s, err := document.LoadScore(path)
	if err != nil {
		return err
	}
	if err := fn(s); err != nil {
		return err
	}
	if err := document.SaveMovement(path, s.Movement[0]); err != nil {
		return err
	}
	slog.Debug("Saved movement", "path", path, "measures", len(s.Movement[0].Bar))
	return nil
}

var editInsertCmd = &cobra.Command{
	Use:   "insert MOVEMENT MARKING",
	Short: "Inserts a marking after the cursor",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := note.Parse(args[1])
		if err != nil {
			return err
		}
		return editMovement(args[0], func(s *model.Score) error {
			return score.InsertAfter(s, cursor(), n)
		})
	},
}

var editRemoveCmd = &cobra.Command{
	Use:   "remove MOVEMENT",
	Short: "Removes the marking after the cursor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editMovement(args[0], func(s *model.Score) error {
			removed, err := score.RemoveAfter(s, cursor())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", removed)
			return nil
		})
	},
}

var editPitchCmd = &cobra.Command{
	Use:   "pitch MOVEMENT PITCH",
	Short: "Sets the pitch of the marking at the cursor",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := pitch.Parse(args[1])
		if err != nil {
			return err
		}
		return editMovement(args[0], func(s *model.Score) error {
			return score.SetPitch(s, cursor(), p)
		})
	},
}

var editDurationCmd = &cobra.Command{
	Use:   "duration MOVEMENT [NUM/DEN | LETTER[.]]",
	Short: "Sets the duration of the marking at the cursor",
	Long: `Sets the duration of the marking at the cursor, either as a fraction of a
whole note ("3/8") or as a denomination letter with dots ("Q." is a dotted
quarter). Letters from shortest to longest are O X Y S T Q U W V L.`,
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if durationIndex >= 0 {
			return editMovement(args[0], func(s *model.Score) error {
				return score.SetDurationIndexed(s, cursor(), durationIndex)
			})
		}
		if len(args) != 2 {
			return fmt.Errorf("need a NUM/DEN or letter duration, or --index")
		}
		d, err := parseDuration(args[1])
		if err != nil {
			return err
		}
		return editMovement(args[0], func(s *model.Score) error {
			return score.SetDuration(s, cursor(), d)
		})
	},
}

// parseDuration reads "3/8" as a fraction, anything else as a letter form.
func parseDuration(s string) (fraction.Fraction, error) {
	if strings.Contains(s, "/") {
		return check.ParseTime(s)
	}
	return duration.ParseLength(s)
}

var editDotCmd = &cobra.Command{
	Use:       "dot MOVEMENT add|remove",
	Short:     "Adds or removes an augmentation dot on the marking at the cursor",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"add", "remove"},
	RunE: func(cmd *cobra.Command, args []string) error {
		var fn func(*model.Score, score.Cursor) error
		switch args[1] {
		case "add":
			fn = score.Augment
		case "remove":
			fn = score.Diminish
		default:
			return fmt.Errorf("unknown dot edit %q", args[1])
		}
		return editMovement(args[0], func(s *model.Score) error {
			return fn(s, cursor())
		})
	},
}

var editStepCmd = &cobra.Command{
	Use:       "step MOVEMENT up|down",
	Short:     "Moves the marking at the cursor a step up or down",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"up", "down"},
	RunE: func(cmd *cobra.Command, args []string) error {
		create, err := pitch.Parse(createPitch)
		if err != nil {
			return err
		}
		var fn func(note.Note, pitch.Pitch) note.Note
		switch args[1] {
		case "up":
			fn = note.Note.StepUp
		case "down":
			fn = note.Note.StepDown
		default:
			return fmt.Errorf("unknown direction %q", args[1])
		}
		return editMovement(args[0], func(s *model.Score) error {
			return score.Step(s, cursor(), create, fn)
		})
	},
}

var editNewMeasureCmd = &cobra.Command{
	Use:   "new-measure MOVEMENT",
	Short: "Appends a resting measure",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editMovement(args[0], score.NewMeasure)
	},
}
