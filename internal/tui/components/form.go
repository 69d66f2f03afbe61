package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/inmocalc/internal/tui/tuistyles"
)

var (
	nextFieldKey = key.NewBinding(key.WithKeys("tab", "down"))
	prevFieldKey = key.NewBinding(key.WithKeys("shift+tab", "up"))
)

// Field is one labelled text input of a Form.
type Field struct {
	Key   string
	Label string
	Input textinput.Model
}

// Form is a vertical list of fields with a single focused input.
type Form struct {
	fields []*Field
	focus  int
}

// NewField creates a field with an initial value.
func NewField(key, label, value, placeholder string) *Field {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = placeholder
	in.CharLimit = 32
	in.Width = 20
	in.SetValue(value)
	return &Field{Key: key, Label: label, Input: in}
}

// NewForm creates a form focused on its first field.
func NewForm(fields ...*Field) *Form {
	f := &Form{fields: fields}
	if len(fields) > 0 {
		fields[0].Input.Focus()
	}
	return f
}

// Value returns the trimmed content of the field with the given key.
func (f *Form) Value(k string) string {
	for _, fld := range f.fields {
		if fld.Key == k {
			return strings.TrimSpace(fld.Input.Value())
		}
	}
	return ""
}

// SetValue replaces the content of the field with the given key.
func (f *Form) SetValue(k, v string) {
	for _, fld := range f.fields {
		if fld.Key == k {
			fld.Input.SetValue(v)
			return
		}
	}
}

// Focused returns the key of the focused field.
func (f *Form) Focused() string {
	if len(f.fields) == 0 {
		return ""
	}
	return f.fields[f.focus].Key
}

// Update moves focus on tab/shift+tab and forwards everything else to the
// focused input. changed reports whether the focused value was edited.
func (f *Form) Update(msg tea.Msg) (changed bool, cmd tea.Cmd) {
	if len(f.fields) == 0 {
		return false, nil
	}
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, nextFieldKey):
			return false, f.move(1)
		case key.Matches(km, prevFieldKey):
			return false, f.move(-1)
		}
	}

	in := &f.fields[f.focus].Input
	before := in.Value()
	*in, cmd = in.Update(msg)
	return in.Value() != before, cmd
}

func (f *Form) move(delta int) tea.Cmd {
	f.fields[f.focus].Input.Blur()
	f.focus = (f.focus + delta + len(f.fields)) % len(f.fields)
	return f.fields[f.focus].Input.Focus()
}

// View renders one "label  input" line per field.
func (f *Form) View() string {
	lines := make([]string, 0, len(f.fields))
	for i, fld := range f.fields {
		label := tuistyles.LabelStyle.Render(fld.Label)
		if i == f.focus {
			label = tuistyles.FocusedLabelStyle.Render(fld.Label)
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, label, fld.Input.View()))
	}
	return strings.Join(lines, "\n")
}
