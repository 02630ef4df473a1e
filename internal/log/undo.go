package log

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// ErrNoSessions is returned when there is no session log to act on.
var ErrNoSessions = errors.New("no sessions found")

// LatestSession returns the newest readable session.
func LatestSession() (*Session, error) {
	sessions, err := ReadSessions(1)
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions: %w", err)
	}
	if len(sessions) == 0 {
		return nil, ErrNoSessions
	}
	return sessions[0], nil
}

// Undo reverts the applied operations of s, newest first. Failed
// operations are ignored. It returns how many operations were reverted
// and why the others could not be.
func Undo(s *Session) (reverted int, errs []error) {
	for i := len(s.Operations) - 1; i >= 0; i-- {
		op := s.Operations[i]
		if !op.Applied() {
			continue
		}
		if err := revert(op); err != nil {
			errs = append(errs, err)
			continue
		}
		reverted++
	}
	return reverted, errs
}

// revert moves a renamed file back to its source, or removes a created
// directory once it is empty again. A directory that is already gone
// counts as reverted.
func revert(op Operation) error {
	switch op.Type {
	case OpRename:
		if op.Source == "" || op.Target == "" {
			return fmt.Errorf("cannot undo rename: path missing")
		}
		if _, err := os.Lstat(op.Target); os.IsNotExist(err) {
			return fmt.Errorf("cannot undo rename: file %s not found", op.Target)
		}
		if _, err := os.Lstat(op.Source); err == nil {
			return fmt.Errorf("cannot undo rename: original path %s already exists", op.Source)
		}
		if err := os.Rename(op.Target, op.Source); err != nil {
			return fmt.Errorf("failed to move %s back: %w", op.Target, err)
		}
		return nil

	case OpCreateDir:
		if op.Target == "" {
			return fmt.Errorf("cannot undo directory creation: path missing")
		}
		entries, err := os.ReadDir(op.Target)
		switch {
		case os.IsNotExist(err):
			return nil
		case err != nil:
			return fmt.Errorf("failed to read %s: %w", op.Target, err)
		case len(entries) > 0:
			return fmt.Errorf("cannot remove %s: directory is not empty", op.Target)
		}
		if err := os.Remove(op.Target); err != nil {
			return fmt.Errorf("failed to remove %s: %w", op.Target, err)
		}
		return nil
	}
	return fmt.Errorf("unknown operation type: %s", op.Type)
}

// Summary is one line of the session history.
type Summary struct {
	Session *Session
	When    string
	Icon    string
}

// Summaries describes up to limit sessions, newest first, relative to now.
func Summaries(limit int, now time.Time) ([]Summary, error) {
	sessions, err := ReadSessions(limit)
	if err != nil {
		return nil, err
	}
	summaries := make([]Summary, 0, len(sessions))
	for _, s := range sessions {
		summaries = append(summaries, Summary{
			Session: s,
			When:    formatRelativeTime(s.Started, now),
			Icon:    modeIcon(s.Mode),
		})
	}
	return summaries, nil
}

func formatRelativeTime(t, now time.Time) string {
	duration := now.Sub(t)
	switch {
	case duration < time.Minute:
		return "just now"
	case duration < time.Hour:
		mins := int(duration.Minutes())
		return fmt.Sprintf("%d minute%s ago", mins, plural(mins))
	case duration < 24*time.Hour:
		hours := int(duration.Hours())
		return fmt.Sprintf("%d hour%s ago", hours, plural(hours))
	case duration < 7*24*time.Hour:
		days := int(duration.Hours() / 24)
		return fmt.Sprintf("%d day%s ago", days, plural(days))
	}
	return t.Format("Jan 2, 2006")
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func modeIcon(mode string) string {
	switch mode {
	case "shows":
		return "📺"
	case "movies":
		return "🎬"
	}
	return "📝"
}
