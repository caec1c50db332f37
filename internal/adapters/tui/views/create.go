package views

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"shiguang/internal/adapters/tui/styles"
	"shiguang/internal/application/commands"
	"shiguang/internal/domain"
)

// CreateKeyMap defines key bindings for the create view
type CreateKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
	Next   key.Binding
	Prev   key.Binding
	Left   key.Binding
	Right  key.Binding
}

var CreateKeys = CreateKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "save"),
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
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("←/→", "choose"),
	),
}

// Text fields of the create form
const (
	fieldTitle = iota
	fieldDescription
	fieldParticipants
)

// Focus order of the create view
const (
	focusTitle = iota
	focusType
	focusCategory
	focusReminder
	focusDate
	focusDescription
	focusParticipants
	focusCount
)

// choice is a left/right selector over fixed values.
type choice struct {
	label  string
	values []string
	labels []string
	index  int
}

func (c *choice) move(delta int) {
	n := len(c.values)
	c.index = ((c.index+delta)%n + n) % n
}

func (c *choice) value() string {
	return c.values[c.index]
}

func (c *choice) view(focused bool) string {
	text := "‹ " + c.labels[c.index] + " ›"
	style := styles.InputField
	if focused {
		style = styles.InputFocused
	}
	return styles.InputLabel.Render(c.label) + "\n" + style.Render(text)
}

// CreateModel is the model for the new-event form
type CreateModel struct {
	ViewState
	deps     Deps
	form     *InputForm
	picker   *DatePicker
	kind     choice
	category choice
	reminder choice
	focus    int
}

// NewCreateModel creates a new create view model
func NewCreateModel(deps Deps) *CreateModel {
	m := &CreateModel{deps: deps}
	m.Reset()
	return m
}

// Reset clears the form and restarts the picker at today
func (m *CreateModel) Reset() {
	m.form = NewInputForm(
		NewInputField("标题", "结婚纪念日", 50),
		NewInputField("描述", "optional", 200),
		NewInputField("参与者", "comma separated", 200),
	)
	m.picker = NewDatePicker(m.deps)
	m.kind = choice{
		label:  "类型",
		values: []string{string(domain.EventCountdown), string(domain.EventAnniversary)},
		labels: []string{"倒数日", "纪念日"},
	}
	m.category = choice{label: "分类", values: domain.Categories, labels: domain.Categories}
	m.category.index = len(domain.Categories) - 1

	m.reminder = choice{label: "提醒"}
	for _, r := range domain.Reminders() {
		m.reminder.values = append(m.reminder.values, string(r))
		m.reminder.labels = append(m.reminder.labels, r.Label())
	}
	m.focus = focusTitle
	m.ClearMessage()
}

// Focus returns the focused field
func (m *CreateModel) Focus() int {
	return m.focus
}

// Picker exposes the date picker
func (m *CreateModel) Picker() *DatePicker {
	return m.picker
}

// Form exposes the text fields
func (m *CreateModel) Form() *InputForm {
	return m.form
}

// Init initializes the create view
func (m *CreateModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m *CreateModel) setFocus(focus int) {
	m.focus = (focus + focusCount) % focusCount
	switch m.focus {
	case focusTitle:
		m.form.SetFocus(fieldTitle)
	case focusDescription:
		m.form.SetFocus(fieldDescription)
	case focusParticipants:
		m.form.SetFocus(fieldParticipants)
	default:
		m.form.Blur()
	}
}

func (m *CreateModel) focusedChoice() *choice {
	switch m.focus {
	case focusType:
		return &m.kind
	case focusCategory:
		return &m.category
	case focusReminder:
		return &m.reminder
	}
	return nil
}

// Update handles messages for the create view
func (m *CreateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case CreateErrMsg:
		m.SetMessage(msg.Err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, CreateKeys.Cancel):
			return m, func() tea.Msg { return SwitchToListMsg{} }
		case key.Matches(msg, CreateKeys.Next):
			m.setFocus(m.focus + 1)
			return m, nil
		case key.Matches(msg, CreateKeys.Prev):
			m.setFocus(m.focus - 1)
			return m, nil
		case key.Matches(msg, CreateKeys.Submit):
			return m, m.save
		}

		if c := m.focusedChoice(); c != nil {
			switch {
			case key.Matches(msg, CreateKeys.Left):
				c.move(-1)
			case key.Matches(msg, CreateKeys.Right):
				c.move(1)
			}
			return m, nil
		}
		if m.focus == focusDate {
			m.picker.Update(msg)
			return m, nil
		}
	}

	return m, m.form.Update(msg)
}

// Event assembles the event from the form fields.
func (m *CreateModel) Event() (domain.Event, error) {
	date, err := m.picker.Date()
	if err != nil {
		return domain.Event{}, err
	}
	return domain.Event{
		Title:        m.form.Value(fieldTitle),
		Date:         date,
		Type:         domain.EventType(m.kind.value()),
		Category:     m.category.value(),
		Reminder:     domain.Reminder(m.reminder.value()),
		Description:  m.form.Value(fieldDescription),
		Participants: splitParticipants(m.form.Value(fieldParticipants)),
	}, nil
}

func (m *CreateModel) save() tea.Msg {
	e, err := m.Event()
	if err != nil {
		return CreateErrMsg{Err: err}
	}

	ctx := context.Background()
	e.OwnerID = m.deps.currentUserID(ctx)
	result, err := commands.NewAddEventCommand(m.deps.Store, m.deps.Cal, m.deps.Env.Clock, e).Execute(ctx)
	if err != nil {
		return CreateErrMsg{Err: err}
	}
	return CreateSuccessMsg{Message: result.Message}
}

func splitParticipants(s string) []string {
	var out []string
	for _, p := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '，' || r == '、' }) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// CreateSuccessMsg indicates successful creation
type CreateSuccessMsg struct {
	Message string
}

// CreateErrMsg indicates an error during creation
type CreateErrMsg struct {
	Err error
}

// View renders the create view
func (m *CreateModel) View() string {
	var b strings.Builder
	b.WriteString(m.form.RenderField(fieldTitle))
	b.WriteString("\n")
	b.WriteString(m.kind.view(m.focus == focusType))
	b.WriteString("\n")
	b.WriteString(m.category.view(m.focus == focusCategory))
	b.WriteString("\n")
	b.WriteString(m.reminder.view(m.focus == focusReminder))
	b.WriteString("\n")
	b.WriteString(m.picker.View(m.focus == focusDate))
	b.WriteString("\n")
	b.WriteString(m.form.RenderField(fieldDescription))
	b.WriteString("\n")
	b.WriteString(m.form.RenderField(fieldParticipants))

	help := []key.Binding{CreateKeys.Next, CreateKeys.Submit, CreateKeys.Cancel}
	switch {
	case m.focusedChoice() != nil:
		help = append([]key.Binding{CreateKeys.Right}, help...)
	case m.focus == focusDate:
		help = append([]key.Binding{m.picker.Keys.Up, m.picker.Keys.Left, m.picker.Keys.Calendar}, help...)
	}

	return NewViewBuilder().
		Title("新建时光").
		Message(m.Message, m.MessageErr).
		Line(b.String()).
		BlankLine().
		Help(help...).
		String()
}
