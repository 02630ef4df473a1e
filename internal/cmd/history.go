package cmd

import (
	"fmt"
	"time"

	"github.com/jordanbtucker/video-clerk/internal/log"
	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent rename sessions",
	Args:  cobra.NoArgs,
	RunE:  runHistoryCommand,
}

func runHistoryCommand(cmd *cobra.Command, args []string) error {
	summaries, err := log.Summaries(historyLimit, time.Now())
	if err != nil {
		return fmt.Errorf("failed to read log sessions: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(summaries) == 0 {
		fmt.Fprintln(out, "No operation sessions found.")
		return nil
	}

	for _, summary := range summaries {
		s := summary.Session
		fmt.Fprintf(out, "%s %s - %s (%d ops", summary.Icon, s.Mode, summary.When, len(s.Operations))
		if _, failed := s.Counts(); failed > 0 {
			fmt.Fprintf(out, ", %d failed", failed)
		}
		fmt.Fprintln(out, ")")
	}
	return nil
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Number of sessions to list, 0 for all")
	rootCmd.AddCommand(historyCmd)
}
