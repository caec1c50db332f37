package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"shiguang/internal/adapters/tui/styles"
	"shiguang/internal/application/commands"
	"shiguang/internal/domain"
)

// DetailKeyMap defines key bindings for the event detail view
type DetailKeyMap struct {
	Back   key.Binding
	Delete key.Binding
	Copy   key.Binding
}

var DetailKeys = DetailKeyMap{
	Back: key.NewBinding(
		key.WithKeys("esc", "q"),
		key.WithHelp("esc", "back"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy"),
	),
}

// DetailModel shows one event with its live countdown and almanac
type DetailModel struct {
	ViewState
	deps    Deps
	event   *domain.Event
	status  *domain.EventStatus
	almanac *domain.Almanac
}

// NewDetailModel creates a new detail view model
func NewDetailModel(deps Deps) *DetailModel {
	return &DetailModel{deps: deps}
}

// SetEvent selects the event to show
func (m *DetailModel) SetEvent(e *domain.Event) {
	m.event = e
	m.almanac = nil
	m.ClearMessage()
	if a, err := m.deps.Cal.Almanac(e.Date); err == nil {
		m.almanac = &a
	}
	m.Refresh()
}

// Refresh recomputes the countdown
func (m *DetailModel) Refresh() {
	if m.event == nil {
		return
	}
	st, err := commands.Status(m.deps.Cal, m.deps.Env, m.event)
	if err != nil {
		m.status = nil
		m.SetMessage(err.Error(), true)
		return
	}
	m.status = &st
}

// Init initializes the detail view
func (m *DetailModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the detail view
func (m *DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		m.Refresh()
		return m, nil

	case errMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case successMsg:
		m.SetMessage(msg.message, false)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, DetailKeys.Back):
			return m, func() tea.Msg { return SwitchToListMsg{} }
		case key.Matches(msg, DetailKeys.Delete) && m.event != nil:
			e := m.event
			return m, func() tea.Msg { return SwitchToDeleteMsg{Event: e} }
		case key.Matches(msg, DetailKeys.Copy) && m.status != nil:
			return m, copyCmd(m.deps.Clipboard, ShareText(*m.status), "Copied")
		}
	}

	return m, nil
}

// View renders the detail view
func (m *DetailModel) View() string {
	if m.event == nil {
		return NewViewBuilder().Muted("No event selected").String()
	}
	e := m.event

	v := NewViewBuilder().
		Title(e.Title).
		Message(m.Message, m.MessageErr)

	if st := m.status; st != nil {
		v.Line(styles.Countdown.Render(st.Delta.Formatted))
		if st.Next != nil {
			style := styles.Countdown
			if st.Next.TotalDays == 0 {
				style = styles.Today
			}
			v.Line(RenderLabelValue("下一次", fmt.Sprintf("%s  %s", st.Next.Text, style.Render(st.Next.Formatted))))
		}
		v.BlankLine()
		v.Line(RenderLabelValue("公历", st.SolarDate.String()))
	}
	if e.Date.Kind == domain.KindLunar {
		if text, err := m.deps.Cal.Format(e.Date, false); err == nil {
			v.Line(RenderLabelValue("农历", text))
		}
	}

	typeLabel := "倒数日"
	if e.Type == domain.EventAnniversary {
		typeLabel = "纪念日"
	}
	v.Line(RenderLabelValue("类型", typeLabel))
	v.Line(RenderLabelValue("分类", RenderCategory(e.Category)))
	v.Line(RenderLabelValue("提醒", e.Reminder.Label()))
	if len(e.Participants) > 0 {
		v.Line(RenderLabelValue("参与者", strings.Join(e.Participants, "、")))
	}
	if e.Description != "" {
		v.BlankLine().Line(e.Description)
	}

	if a := m.almanac; a != nil {
		v.BlankLine()
		facts := []string{a.Week, a.Zodiac, a.LunarText}
		if a.SolarTerm != "" {
			facts = append(facts, a.SolarTerm)
		}
		facts = append(facts, a.Festivals...)
		v.Muted(strings.Join(facts, " · "))
	}

	v.BlankLine()
	v.Help(DetailKeys.Copy, DetailKeys.Delete, DetailKeys.Back)
	return v.String()
}
