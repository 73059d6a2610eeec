package app

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/registrar/internal/ui/styles"
)

// fieldSpec describes one text input in a form.
type fieldSpec struct {
	label       string
	placeholder string
	secret      bool
}

// formState is a small vertical form of text inputs with one focused
// field at a time. Enter on the last field submits.
type formState struct {
	title  string
	labels []string
	inputs []textinput.Model
	focus  int
	errMsg string
}

func newFormState(title string, fields []fieldSpec) formState {
	f := formState{title: title}
	for i, spec := range fields {
		in := textinput.New()
		in.Placeholder = spec.placeholder
		in.CharLimit = 64
		in.Width = 32
		if spec.secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		if i == 0 {
			in.Focus()
		}
		f.labels = append(f.labels, spec.label)
		f.inputs = append(f.inputs, in)
	}
	return f
}

func (f formState) value(i int) string {
	return f.inputs[i].Value()
}

func (f formState) setFocus(i int) formState {
	for j := range f.inputs {
		if j == i {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
	f.focus = i
	return f
}

// update advances the form; submit is true when the user confirmed the
// last field.
func (f formState) update(msg tea.KeyMsg, km formKeys) (formState, bool) {
	switch {
	case km.nextMatch(msg):
		return f.setFocus((f.focus + 1) % len(f.inputs)), false
	case km.prevMatch(msg):
		return f.setFocus((f.focus - 1 + len(f.inputs)) % len(f.inputs)), false
	case km.enterMatch(msg):
		if f.focus < len(f.inputs)-1 {
			return f.setFocus(f.focus + 1), false
		}
		return f, true
	}
	var cmdIgnored tea.Cmd
	f.inputs[f.focus], cmdIgnored = f.inputs[f.focus].Update(msg)
	_ = cmdIgnored // cursor blink commands are dropped; forms are static enough
	return f, false
}

func (f formState) view() string {
	lines := []string{styles.Title.Render(f.title), ""}
	for i := range f.inputs {
		lines = append(lines,
			styles.FormLabel.Render(f.labels[i]),
			f.inputs[i].View(),
			"")
	}
	if f.errMsg != "" {
		lines = append(lines, styles.ErrorText.Render(f.errMsg))
	}
	lines = append(lines, styles.HelpHint.Render("tab next field · enter submit · esc back"))
	return lipgloss.NewStyle().Padding(1, 2).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// formKeys adapts the app keymap to the formState update contract.
type formKeys struct {
	next, prev, enter key.Binding
}

func (k formKeys) nextMatch(msg tea.KeyMsg) bool  { return key.Matches(msg, k.next) }
func (k formKeys) prevMatch(msg tea.KeyMsg) bool  { return key.Matches(msg, k.prev) }
func (k formKeys) enterMatch(msg tea.KeyMsg) bool { return key.Matches(msg, k.enter) }

func (m Model) formKeys() formKeys {
	return formKeys{next: m.keys.Next, prev: m.keys.Prev, enter: m.keys.Enter}
}
