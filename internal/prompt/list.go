package prompt

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
)

const (
	defaultWidth = 80
	pageSize     = 10
)

// list is the cursor and viewport state shared by the choice prompts.
type list struct {
	choices []string
	cursor  int
	offset  int
	width   int
}

func newList(choices []string) list {
	return list{choices: choices, width: defaultWidth}
}

// handle moves the cursor for navigation keys and window resizes. It
// reports whether msg was consumed.
func (l *list) handle(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			l.width = msg.Width
		}
		return true
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k", "shift+tab":
			l.move(-1)
			return true
		case "down", "j", "tab":
			l.move(1)
			return true
		case "home", "g":
			l.move(-len(l.choices))
			return true
		case "end", "G":
			l.move(len(l.choices))
			return true
		case "pgup":
			l.move(-pageSize)
			return true
		case "pgdown":
			l.move(pageSize)
			return true
		}
	}
	return false
}

func (l *list) move(delta int) {
	l.cursor += delta
	if l.cursor < 0 {
		l.cursor = 0
	}
	if l.cursor > len(l.choices)-1 {
		l.cursor = len(l.choices) - 1
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+pageSize {
		l.offset = l.cursor - pageSize + 1
	}
}

// visible returns the index range of the rows inside the viewport.
func (l list) visible() (int, int) {
	end := l.offset + pageSize
	if end > len(l.choices) {
		end = len(l.choices)
	}
	return l.offset, end
}

// row truncates a choice so prefix plus choice fits the terminal width.
func (l list) row(prefix string, i int) string {
	avail := l.width - runewidth.StringWidth(prefix) - 1
	if avail < 1 {
		avail = 1
	}
	return prefix + runewidth.Truncate(l.choices[i], avail, "…")
}

// more renders the scroll hint when rows are hidden.
func (l list) more() string {
	if len(l.choices) <= pageSize {
		return ""
	}
	start, end := l.visible()
	var parts []string
	if start > 0 {
		parts = append(parts, "↑ more")
	}
	if end < len(l.choices) {
		parts = append(parts, "↓ more")
	}
	return strings.Join(parts, " ")
}
