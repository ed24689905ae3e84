package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// FormSubmitMsg is sent when the user submits a form.
type FormSubmitMsg struct{}

// Form is a vertical stack of text inputs. Tab and arrow keys move
// between fields; Enter on the last field (or Ctrl+S anywhere) submits.
type Form struct {
	Fields  []TextInput
	Focused int
}

// NewForm creates a form over fields and focuses the first one.
func NewForm(fields ...TextInput) Form {
	f := Form{Fields: fields}
	if len(f.Fields) > 0 {
		f.Fields[0].Focus()
	}
	return f
}

// Init starts the cursor blink on the focused field.
func (f Form) Init() tea.Cmd {
	if len(f.Fields) == 0 {
		return nil
	}
	return f.Fields[f.Focused].Focus()
}

// Update routes keys to the focused field.
func (f Form) Update(msg tea.Msg) (Form, tea.Cmd) {
	if len(f.Fields) == 0 {
		return f, nil
	}
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "tab", "down":
			return f, f.move(1)
		case "shift+tab", "up":
			return f, f.move(-1)
		case "ctrl+s":
			return f, submit
		case "enter":
			if f.Focused == len(f.Fields)-1 {
				return f, submit
			}
			return f, f.move(1)
		}
	}

	var cmd tea.Cmd
	f.Fields[f.Focused], cmd = f.Fields[f.Focused].Update(msg)
	return f, cmd
}

func (f *Form) move(delta int) tea.Cmd {
	f.Fields[f.Focused].Blur()
	f.Focused = (f.Focused + delta + len(f.Fields)) % len(f.Fields)
	return f.Fields[f.Focused].Focus()
}

func submit() tea.Msg { return FormSubmitMsg{} }

// Value returns the trimmed value of field i.
func (f Form) Value(i int) string {
	if i < 0 || i >= len(f.Fields) {
		return ""
	}
	return strings.TrimSpace(f.Fields[i].Value())
}

// Clear empties every field.
func (f *Form) Clear() {
	for i := range f.Fields {
		f.Fields[i].SetValue("")
	}
}

// SetWidth sets the width of every field.
func (f *Form) SetWidth(w int) {
	for i := range f.Fields {
		f.Fields[i].SetWidth(w)
	}
}

// View renders the fields one under another.
func (f Form) View() string {
	parts := make([]string, len(f.Fields))
	for i, field := range f.Fields {
		parts[i] = field.View()
	}
	return strings.Join(parts, "\n\n")
}

// FocusField moves focus to field i.
func (f *Form) FocusField(i int) tea.Cmd {
	if i < 0 || i >= len(f.Fields) {
		return nil
	}
	for j := range f.Fields {
		f.Fields[j].Blur()
	}
	f.Focused = i
	return f.Fields[i].Focus()
}
