package core

import "fmt"

// SkipReason explains why a file was left untouched.
type SkipReason string

const (
	SkipNoTitle  SkipReason = "no title entered"
	SkipNoMatch  SkipReason = "no catalog match"
	SkipCanceled SkipReason = "selection canceled"
	SkipNotFound SkipReason = "missing from catalog"
	SkipDeclined SkipReason = "rename declined"
)

// Skip is returned by a pipeline stage to stop processing a file without
// failing the run.
type Skip struct {
	Reason SkipReason
	Detail string
}

func (s *Skip) Error() string {
	if s.Detail == "" {
		return fmt.Sprintf("skipped: %s", s.Reason)
	}
	return fmt.Sprintf("skipped: %s: %s", s.Reason, s.Detail)
}

func skipf(reason SkipReason, format string, args ...any) *Skip {
	return &Skip{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}
