package prompt

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jordanbtucker/video-clerk/internal/tui/theme"
)

type selectModel struct {
	list
	theme   theme.Theme
	message string
	state   answerState
}

func newSelectModel(th theme.Theme, message string, choices []string) *selectModel {
	return &selectModel{list: newList(choices), theme: th, message: message}
}

func (m *selectModel) Init() tea.Cmd {
	return nil
}

func (m *selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		if finish(&m.state, key) {
			return m, tea.Quit
		}
		if key.Type == tea.KeyEnter {
			m.state = stateAnswered
			return m, tea.Quit
		}
	}
	m.handle(msg)
	return m, nil
}

func (m *selectModel) View() string {
	var b strings.Builder
	b.WriteString(header(m.theme, m.message))
	if m.state == stateAnswered {
		b.WriteString(" ")
		b.WriteString(m.theme.AnswerStyle().Render(m.choices[m.cursor]))
		b.WriteString("\n")
		return b.String()
	}
	if m.state != statePending {
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString("\n")

	pointer := m.theme.Icon("pointer")
	blank := strings.Repeat(" ", len([]rune(pointer)))
	start, end := m.visible()
	for i := start; i < end; i++ {
		if i == m.cursor {
			b.WriteString(m.theme.CursorStyle().Render(m.row(pointer+" ", i)))
		} else {
			b.WriteString(m.row(blank+" ", i))
		}
		b.WriteString("\n")
	}
	if more := m.more(); more != "" {
		b.WriteString(m.theme.HelpStyle().Render(more))
		b.WriteString("\n")
	}
	b.WriteString(m.theme.HelpStyle().Render("↑/↓ move • enter select • esc skip"))
	b.WriteString("\n")
	return b.String()
}
