package prompt

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jordanbtucker/video-clerk/internal/tui/theme"
)

type inputModel struct {
	theme   theme.Theme
	message string
	input   textinput.Model
	value   string
	state   answerState
}

func newInputModel(th theme.Theme, message string) *inputModel {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Focus()
	return &inputModel{theme: th, message: message, input: ti}
}

func (m *inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		if finish(&m.state, key) {
			return m, tea.Quit
		}
		if key.Type == tea.KeyEnter {
			m.value = strings.TrimSpace(m.input.Value())
			m.state = stateAnswered
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *inputModel) View() string {
	var b strings.Builder
	b.WriteString(header(m.theme, m.message))
	b.WriteString(" ")
	if m.state != statePending {
		b.WriteString(m.theme.AnswerStyle().Render(m.value))
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.theme.HelpStyle().Render("enter submit • esc skip"))
	b.WriteString("\n")
	return b.String()
}

func header(th theme.Theme, message string) string {
	return th.MarkerStyle().Render(th.Icon("question")) + " " + th.QuestionStyle().Render(message)
}
