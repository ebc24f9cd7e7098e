package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jsphweid/scof/constants"
	"github.com/jsphweid/scof/document"
	"github.com/jsphweid/scof/midi"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var exportOut string

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file, defaults to the movement name with .mid under SCOF_PATH")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export MOVEMENT",
	Short: "Exports a movement to MIDI",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := exportOut
		if out == "" {
			base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			out = filepath.Join(constants.GetScoreDir(), base+".mid")
		}
		return export(args[0], out)
	},
}

func export(in, out string) error {
	m, err := document.LoadMovement(in)
	if err != nil {
		return err
	}
	f, err := os.Create(out)
	if err != nil {
		return errors.Wrap(err, "could not create midi file")
	}
	defer f.Close()
	if err := midi.WriteMovement(f, m); err != nil {
		return err
	}
	slog.Info("Exported movement", "in", in, "out", out)
	return f.Close()
}
