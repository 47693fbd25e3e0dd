package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/baharkarakas/contact-manager/internal/dashboard"
	"github.com/baharkarakas/contact-manager/internal/models"
)

const (
	fieldName = iota
	fieldEmail
	fieldPhone
	fieldMessage
	fieldCount
)

var fieldLabels = [fieldCount]string{"name", "email", "phone", "message"}

// formModel edits one contact. It never talks to the API; submit hands the
// full field set back to the root model.
type formModel struct {
	inputs [fieldCount]textinput.Model
	focus  int
	target models.Contact
	errs   map[string]string
}

// submitEditMsg carries the edited fields for target.
type submitEditMsg struct {
	id string
	in models.ContactInput
}

type cancelEditMsg struct{}

func newFormModel(c models.Contact) formModel {
	var inputs [fieldCount]textinput.Model
	for i := 0; i < fieldCount; i++ {
		ti := textinput.New()
		ti.CharLimit = 500
		ti.Width = 50
		ti.Prompt = ""
		inputs[i] = ti
	}
	inputs[fieldName].SetValue(c.Name)
	inputs[fieldEmail].SetValue(c.Email)
	inputs[fieldPhone].SetValue(c.Phone)
	inputs[fieldMessage].SetValue(c.Message)
	inputs[fieldPhone].CharLimit = 10

	m := formModel{inputs: inputs, target: c}
	m.inputs[m.focus].Focus()
	return m
}

func (m formModel) input() models.ContactInput {
	return models.ContactInput{
		Name:    m.inputs[fieldName].Value(),
		Email:   m.inputs[fieldEmail].Value(),
		Phone:   m.inputs[fieldPhone].Value(),
		Message: m.inputs[fieldMessage].Value(),
	}
}

func (m formModel) Update(msg tea.Msg) (formModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case msg.Type == tea.KeyCtrlC:
			return m, tea.Quit
		case key.Matches(msg, keyBack):
			return m, func() tea.Msg { return cancelEditMsg{} }
		case key.Matches(msg, keyTab):
			return m.move(1), textinput.Blink
		case key.Matches(msg, keyBackTab):
			return m.move(-1), textinput.Blink
		case key.Matches(msg, keyEnter):
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m formModel) move(delta int) formModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + fieldCount) % fieldCount
	m.inputs[m.focus].Focus()
	return m
}

func (m formModel) submit() (formModel, tea.Cmd) {
	in := m.input()
	m.errs = dashboard.ValidateForm(in)
	if len(m.errs) > 0 {
		return m, nil
	}
	id := m.target.ID
	return m, func() tea.Msg { return submitEditMsg{id: id, in: in} }
}

func (m formModel) View() string {
	var b strings.Builder
	b.WriteString("\n  " + mutedText.Render("editing ") + m.target.Name + "\n\n")
	for i := 0; i < fieldCount; i++ {
		label := fieldLabels[i]
		if i == m.focus {
			b.WriteString("  " + activeField.Render("▸ "+padRight(label, 8)))
		} else {
			b.WriteString("    " + mutedText.Render(padRight(label, 8)))
		}
		b.WriteString(" " + m.inputs[i].View() + "\n")
		if msg, ok := m.errs[label]; ok {
			b.WriteString("             " + statusErr.Render(msg) + "\n")
		}
	}
	return b.String()
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}
