package prompt

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jordanbtucker/video-clerk/internal/tui/theme"
)

type confirmModel struct {
	theme   theme.Theme
	message string
	value   bool
	state   answerState
}

func newConfirmModel(th theme.Theme, message string) *confirmModel {
	return &confirmModel{theme: th, message: message, value: true}
}

func (m *confirmModel) Init() tea.Cmd {
	return nil
}

func (m *confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if finish(&m.state, key) {
		m.value = false
		return m, tea.Quit
	}

	switch strings.ToLower(key.String()) {
	case "enter":
		m.state = stateAnswered
		return m, tea.Quit
	case "y":
		m.value = true
		m.state = stateAnswered
		return m, tea.Quit
	case "n":
		m.value = false
		m.state = stateAnswered
		return m, tea.Quit
	}
	return m, nil
}

func (m *confirmModel) View() string {
	var b strings.Builder
	b.WriteString(header(m.theme, m.message))
	b.WriteString(" ")
	if m.state == statePending {
		b.WriteString(m.theme.HelpStyle().Render("(Y/n)"))
		b.WriteString("\n")
		return b.String()
	}
	answer := "No"
	if m.value {
		answer = "Yes"
	}
	b.WriteString(m.theme.AnswerStyle().Render(answer))
	b.WriteString("\n")
	return b.String()
}
