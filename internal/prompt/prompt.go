// Package prompt asks the user questions in the terminal.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jordanbtucker/video-clerk/internal/tui/theme"
)

// ErrInterrupted is returned when the user presses Ctrl+C in a prompt.
var ErrInterrupted = errors.New("interrupted")

// Prompter is the question surface the renamer depends on. A false ok is
// an explicit cancellation: the user pressed Esc, entered a blank answer,
// or there was nothing to choose from.
type Prompter interface {
	// Input asks for free text.
	Input(ctx context.Context, message string) (string, bool, error)

	// Select asks for one of choices and returns its index.
	Select(ctx context.Context, message string, choices []string) (int, bool, error)

	// Confirm asks a yes/no question.
	Confirm(ctx context.Context, message string) (bool, error)
}

// TeaPrompter implements Prompter with bubbletea programs, one per
// question.
type TeaPrompter struct {
	theme  theme.Theme
	input  io.Reader
	output io.Writer
}

var _ Prompter = (*TeaPrompter)(nil)

// Option configures a TeaPrompter.
type Option func(*TeaPrompter)

// WithInput reads key presses from r instead of stdin.
func WithInput(r io.Reader) Option {
	return func(p *TeaPrompter) { p.input = r }
}

// WithOutput renders to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(p *TeaPrompter) { p.output = w }
}

// WithTheme overrides the default theme.
func WithTheme(th theme.Theme) Option {
	return func(p *TeaPrompter) { p.theme = th }
}

// New creates a prompter.
func New(opts ...Option) *TeaPrompter {
	p := &TeaPrompter{theme: theme.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Input asks for free text. A blank answer is a cancellation.
func (p *TeaPrompter) Input(ctx context.Context, message string) (string, bool, error) {
	m, err := p.run(ctx, newInputModel(p.theme, message))
	if err != nil {
		return "", false, err
	}
	im := m.(*inputModel)
	if im.state == stateInterrupted {
		return "", false, ErrInterrupted
	}
	if im.state != stateAnswered || im.value == "" {
		return "", false, nil
	}
	return im.value, true, nil
}

// Select asks for one of choices. An empty choice list is a cancellation.
func (p *TeaPrompter) Select(ctx context.Context, message string, choices []string) (int, bool, error) {
	if len(choices) == 0 {
		return 0, false, nil
	}
	m, err := p.run(ctx, newSelectModel(p.theme, message, choices))
	if err != nil {
		return 0, false, err
	}
	sm := m.(*selectModel)
	if sm.state == stateInterrupted {
		return 0, false, ErrInterrupted
	}
	if sm.state != stateAnswered {
		return 0, false, nil
	}
	return sm.cursor, true, nil
}

// Confirm asks a yes/no question. Enter accepts the default of yes.
func (p *TeaPrompter) Confirm(ctx context.Context, message string) (bool, error) {
	m, err := p.run(ctx, newConfirmModel(p.theme, message))
	if err != nil {
		return false, err
	}
	cm := m.(*confirmModel)
	if cm.state == stateInterrupted {
		return false, ErrInterrupted
	}
	return cm.state == stateAnswered && cm.value, nil
}

// MultiSelect asks for any number of choices and returns their indexes in
// order. Submitting without a selection returns an empty slice and ok.
func (p *TeaPrompter) MultiSelect(ctx context.Context, message string, choices []string) ([]int, bool, error) {
	if len(choices) == 0 {
		return nil, true, nil
	}
	m, err := p.run(ctx, newMultiSelectModel(p.theme, message, choices))
	if err != nil {
		return nil, false, err
	}
	mm := m.(*multiSelectModel)
	if mm.state == stateInterrupted {
		return nil, false, ErrInterrupted
	}
	if mm.state != stateAnswered {
		return nil, false, nil
	}
	return mm.Selected(), true, nil
}

func (p *TeaPrompter) run(ctx context.Context, model tea.Model) (tea.Model, error) {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if p.input != nil {
		opts = append(opts, tea.WithInput(p.input))
	}
	if p.output != nil {
		opts = append(opts, tea.WithOutput(p.output))
	}

	final, err := tea.NewProgram(model, opts...).Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		return nil, fmt.Errorf("prompt failed: %w", err)
	}
	return final, nil
}

// answerState tracks how a prompt ended.
type answerState int

const (
	statePending answerState = iota
	stateAnswered
	stateCanceled
	stateInterrupted
)

// finish handles the keys every prompt shares. It reports whether the key
// ended the prompt.
func finish(state *answerState, msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyCtrlC:
		*state = stateInterrupted
		return true
	case tea.KeyEsc:
		*state = stateCanceled
		return true
	}
	return false
}
