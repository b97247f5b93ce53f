package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quizsmith/quizsmith/internal/player"
)

var takeCmd = &cobra.Command{
	Use:   "take <quiz.json>",
	Short: "Take a saved quiz in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := player.Load(args[0])
		if err != nil {
			return fmt.Errorf("load quiz: %w", err)
		}

		res, err := player.Run(q)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Score: %d/%d (%.0f%%)\n", res.Correct, res.Total, res.Percent)
		return nil
	},
}
