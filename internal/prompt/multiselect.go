package prompt

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jordanbtucker/video-clerk/internal/tui/theme"
)

type multiSelectModel struct {
	list
	theme    theme.Theme
	message  string
	selected map[int]bool
	state    answerState
}

func newMultiSelectModel(th theme.Theme, message string, choices []string) *multiSelectModel {
	return &multiSelectModel{
		list:     newList(choices),
		theme:    th,
		message:  message,
		selected: make(map[int]bool, len(choices)),
	}
}

// Selected returns the chosen indexes in ascending order.
func (m *multiSelectModel) Selected() []int {
	out := make([]int, 0, len(m.selected))
	for i := range m.choices {
		if m.selected[i] {
			out = append(out, i)
		}
	}
	return out
}

func (m *multiSelectModel) Init() tea.Cmd {
	return nil
}

func (m *multiSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		if finish(&m.state, key) {
			return m, tea.Quit
		}
		switch key.String() {
		case "enter":
			m.state = stateAnswered
			return m, tea.Quit
		case " ":
			m.selected[m.cursor] = !m.selected[m.cursor]
			return m, nil
		case "a":
			all := len(m.Selected()) < len(m.choices)
			for i := range m.choices {
				m.selected[i] = all
			}
			return m, nil
		case "i":
			for i := range m.choices {
				m.selected[i] = !m.selected[i]
			}
			return m, nil
		}
	}
	m.handle(msg)
	return m, nil
}

func (m *multiSelectModel) View() string {
	var b strings.Builder
	b.WriteString(header(m.theme, m.message))
	if m.state == stateAnswered {
		names := make([]string, 0, len(m.selected))
		for _, i := range m.Selected() {
			names = append(names, m.choices[i])
		}
		b.WriteString(" ")
		b.WriteString(m.theme.AnswerStyle().Render(strings.Join(names, ", ")))
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
		box := m.theme.Icon("unchecked")
		if m.selected[i] {
			box = m.theme.Icon("checked")
		}
		if i == m.cursor {
			b.WriteString(m.theme.CursorStyle().Render(m.row(pointer+" "+box+" ", i)))
		} else {
			b.WriteString(m.row(blank+" "+box+" ", i))
		}
		b.WriteString("\n")
	}
	if more := m.more(); more != "" {
		b.WriteString(m.theme.HelpStyle().Render(more))
		b.WriteString("\n")
	}
	b.WriteString(m.theme.HelpStyle().Render("space toggle • a all • i invert • enter submit • esc cancel"))
	b.WriteString("\n")
	return b.String()
}
