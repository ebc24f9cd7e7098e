package cmd

import (
	"fmt"
	"io"

	"github.com/jsphweid/scof/check"
	"github.com/jsphweid/scof/document"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// checkParallel bounds how many movement files are read at once.
const checkParallel = 8

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check MOVEMENT...",
	Short: "Lints movement files",
	Long:  `Reports markings that don't parse, bars that don't fill their time signature, and bad signature or repeat references.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		total, err := checkFiles(cmd.OutOrStdout(), args)
		if err != nil {
			return err
		}
		if total > 0 {
			return fmt.Errorf("found %d problems", total)
		}
		return nil
	},
}

// checkFiles lints paths concurrently and prints problems in argument order.
func checkFiles(w io.Writer, paths []string) (int, error) {
	found := make([][]check.Problem, len(paths))
	var g errgroup.Group
	g.SetLimit(checkParallel)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			m, err := document.LoadMovement(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			found[i] = check.Movement(m)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	total := 0
	for i, problems := range found {
		for _, p := range problems {
			fmt.Fprintf(w, "%s: %s\n", paths[i], p)
		}
		total += len(problems)
	}
	return total, nil
}

func checkFile(w io.Writer, path string) (int, error) {
	return checkFiles(w, []string{path})
}
