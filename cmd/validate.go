package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ptrumpis-ups/loader-quiz-app/internal/questions"
)

var validateCmd = &cobra.Command{
	Use:   "validate PATH...",
	Short: "Check question files against the question schema",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return validateFiles(cmd.OutOrStdout(), args)
	},
}

// validateFiles loads each file in turn and stops at the first invalid one.
func validateFiles(w io.Writer, paths []string) error {
	for _, path := range paths {
		bank, err := questions.Load(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s: %d questions, %d points (%s)\n",
			path, bank.Len(), bank.MaxScore(), bank.Title())
	}
	return nil
}
