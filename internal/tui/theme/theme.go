package theme

import (
	"os"
	"runtime"

	"github.com/charmbracelet/lipgloss"
)

// IconSet represents a collection of glyphs keyed by semantic usage.
type IconSet map[string]string

// clone returns a copy of the icon set to avoid shared mutation across themes.
func (s IconSet) clone() IconSet {
	if s == nil {
		return nil
	}
	clone := make(IconSet, len(s))
	for k, v := range s {
		clone[k] = v
	}
	return clone
}

// Colors holds the palette shared by every prompt.
type Colors struct {
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Muted   lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color
}

// Theme centralizes palette and glyph configuration for the prompts.
type Theme struct {
	colors   Colors
	icons    IconSet
	fallback IconSet
}

// Option configures a Theme during construction.
type Option func(*Theme)

// WithIconSet overrides the glyphs used by the theme.
func WithIconSet(set IconSet) Option {
	return func(t *Theme) {
		t.icons = set.clone()
	}
}

// WithColors overrides the base color palette.
func WithColors(colors Colors) Option {
	return func(t *Theme) {
		t.colors = colors
	}
}

// New constructs a Theme with optional overrides applied.
func New(opts ...Option) Theme {
	defaults := []Option{
		WithColors(Colors{
			Primary: lipgloss.Color("#3a6b4a"),
			Accent:  lipgloss.Color("#8fc279"),
			Muted:   lipgloss.Color("#9ba8c0"),
			Success: lipgloss.Color("#5dc796"),
			Error:   lipgloss.Color("#f04c56"),
		}),
		WithIconSet(defaultIconSet()),
	}

	t := Theme{fallback: asciiIcons.clone()}

	for _, opt := range append(defaults, opts...) {
		opt(&t)
	}

	if t.icons == nil {
		t.icons = defaultIconSet()
	}

	return t
}

// Default returns the default Theme configuration.
func Default() Theme {
	return New()
}

// Colors exposes the theme color palette.
func (t Theme) Colors() Colors {
	return t.colors
}

// Icon returns a themed glyph with ASCII fallback if unavailable.
func (t Theme) Icon(name string) string {
	if icon, ok := t.icons[name]; ok {
		return icon
	}
	if icon, ok := t.fallback[name]; ok {
		return icon
	}
	return ""
}

// IconSet returns a defensive copy of the themed glyph map.
func (t Theme) IconSet() IconSet {
	return t.icons.clone()
}

// QuestionStyle renders the prompt message.
func (t Theme) QuestionStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true)
}

// MarkerStyle renders the leading question mark.
func (t Theme) MarkerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.colors.Success).Bold(true)
}

// AnswerStyle renders a submitted answer.
func (t Theme) AnswerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.colors.Accent)
}

// CursorStyle renders the highlighted choice.
func (t Theme) CursorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.colors.Primary).Bold(true)
}

// HelpStyle renders key hints.
func (t Theme) HelpStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.colors.Muted)
}

// ErrorStyle renders failure notes.
func (t Theme) ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.colors.Error)
}

// defaultIconSet chooses the best glyphs for the current terminal.
func defaultIconSet() IconSet {
	if isLimitedTerminal() {
		return asciiIcons.clone()
	}
	return unicodeIcons.clone()
}

// isLimitedTerminal detects environments where ASCII glyphs are preferable.
func isLimitedTerminal() bool {
	if os.Getenv("SSH_CLIENT") != "" || os.Getenv("SSH_TTY") != "" || os.Getenv("SSH_CONNECTION") != "" {
		return true
	}
	return runtime.GOOS == "windows"
}

var unicodeIcons = IconSet{
	"question":  "?",
	"pointer":   "❯",
	"checked":   "◉",
	"unchecked": "◯",
	"movie":     "🎬",
	"show":      "📺",
	"success":   "✔",
	"skip":      "»",
	"error":     "✖",
}

var asciiIcons = IconSet{
	"question":  "?",
	"pointer":   ">",
	"checked":   "[x]",
	"unchecked": "[ ]",
	"movie":     "[M]",
	"show":      "[TV]",
	"success":   "[v]",
	"skip":      "[-]",
	"error":     "[!]",
}
