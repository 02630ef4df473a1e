package cmd

import (
	"errors"
	"fmt"

	"github.com/jordanbtucker/video-clerk/internal/log"
	"github.com/spf13/cobra"
)

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Undo the most recent rename session",
	Long: `Move the files of the most recent session back where they came from and
remove the folders it created, if they are empty again.

Running undo again reverts the session before it.`,
	Args: cobra.NoArgs,
	RunE: runUndoCommand,
}

func runUndoCommand(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	session, err := log.LatestSession()
	if errors.Is(err, log.ErrNoSessions) {
		fmt.Fprintln(out, "No operation sessions found to undo.")
		return nil
	}
	if err != nil {
		return err
	}

	applied, _ := session.Counts()
	ok, err := newPrompter().Confirm(cmd.Context(),
		fmt.Sprintf("Undo %s session %s (%d operations)?", session.Mode, session.ID, applied))
	if err != nil || !ok {
		return err
	}

	reverted, errs := log.Undo(session)
	for _, err := range errs {
		log.Logger().WithError(err).Warn("undo failed")
	}
	fmt.Fprintf(out, "%d operations undone, %d failed\n", reverted, len(errs))

	if len(errs) > 0 {
		return fmt.Errorf("%d operations could not be undone, session kept in %s", len(errs), session.Path())
	}
	return log.RemoveSession(session)
}

func init() {
	rootCmd.AddCommand(undoCmd)
}
