package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"shiguang/internal/adapters/tui/styles"
)

// InputFormKeyMap defines key bindings for input forms
type InputFormKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
	Next   key.Binding
	Prev   key.Binding
}

// DefaultInputFormKeys returns the default input form key bindings
var DefaultInputFormKeys = InputFormKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Next: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous field"),
	),
}

// InputField represents a single input field with label and textinput
type InputField struct {
	Label string
	Input textinput.Model
}

// NewInputField creates a new input field with the given label and placeholder
func NewInputField(label, placeholder string, charLimit int) InputField {
	input := textinput.New()
	input.Placeholder = placeholder
	if charLimit > 0 {
		input.CharLimit = charLimit
	}
	return InputField{
		Label: label,
		Input: input,
	}
}

// InputForm manages text input fields. FocusedField is -1 while focus sits
// on a widget outside the form.
type InputForm struct {
	Fields       []InputField
	FocusedField int
	Keys         InputFormKeyMap
}

// NewInputForm creates a form with the first field focused
func NewInputForm(fields ...InputField) *InputForm {
	form := &InputForm{
		Fields:       fields,
		FocusedField: -1,
		Keys:         DefaultInputFormKeys,
	}
	form.SetFocus(0)
	return form
}

// Init returns the blink command for the focused input
func (f *InputForm) Init() tea.Cmd {
	return textinput.Blink
}

// Update forwards msg to the focused input
func (f *InputForm) Update(msg tea.Msg) tea.Cmd {
	if !f.HasFocus() {
		return nil
	}
	var cmd tea.Cmd
	f.Fields[f.FocusedField].Input, cmd = f.Fields[f.FocusedField].Input.Update(msg)
	return cmd
}

// HasFocus reports whether one of the form's fields is focused
func (f *InputForm) HasFocus() bool {
	return f.FocusedField >= 0 && f.FocusedField < len(f.Fields)
}

// SetFocus focuses a field by index; an out-of-range index blurs the form
func (f *InputForm) SetFocus(index int) {
	f.Blur()
	if index < 0 || index >= len(f.Fields) {
		return
	}
	f.FocusedField = index
	f.Fields[index].Input.Focus()
}

// Blur removes focus from every field
func (f *InputForm) Blur() {
	if f.HasFocus() {
		f.Fields[f.FocusedField].Input.Blur()
	}
	f.FocusedField = -1
}

// Value returns the trimmed value of a field by index
func (f *InputForm) Value(index int) string {
	if index < 0 || index >= len(f.Fields) {
		return ""
	}
	return strings.TrimSpace(f.Fields[index].Input.Value())
}

// SetValue sets the value of a field by index
func (f *InputForm) SetValue(index int, value string) {
	if index < 0 || index >= len(f.Fields) {
		return
	}
	f.Fields[index].Input.SetValue(value)
}

// Reset clears every field and focuses the first one
func (f *InputForm) Reset() {
	for i := range f.Fields {
		f.Fields[i].Input.SetValue("")
	}
	f.SetFocus(0)
}

// RenderField renders a single field with appropriate styling
func (f *InputForm) RenderField(index int) string {
	if index < 0 || index >= len(f.Fields) {
		return ""
	}

	field := f.Fields[index]
	style := styles.InputField
	if index == f.FocusedField {
		style = styles.InputFocused
	}
	return styles.InputLabel.Render(field.Label) + "\n" + style.Render(field.Input.View())
}
