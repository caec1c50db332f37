package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"shiguang/internal/adapters/tui/styles"
	"shiguang/internal/application/commands"
	"shiguang/internal/domain"
)

// EventListKeyMap defines key bindings for the event list
type EventListKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Open     key.Binding
	New      key.Binding
	Delete   key.Binding
	Copy     key.Binding
	Filter   key.Binding
	Remind   key.Binding
	Messages key.Binding
	Rewards  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var EventListKeys = EventListKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("h", "left", "pgup"),
		key.WithHelp("h/←", "prev page"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("l", "right", "pgdown"),
		key.WithHelp("l/→", "next page"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy"),
	),
	Filter: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "category"),
	),
	Remind: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "check reminders"),
	),
	Messages: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "messages"),
	),
	Rewards: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rewards"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// EventListModel is the home view: every event with its live countdown,
// soonest first.
type EventListModel struct {
	ViewState
	deps      Deps
	events    []*domain.Event
	statuses  []domain.EventStatus
	paginator *Paginator
	category  int // index into domain.Categories, -1 for all
	unread    int
	loaded    bool
}

// NewEventListModel creates a new event list model
func NewEventListModel(deps Deps) *EventListModel {
	return &EventListModel{
		deps:      deps,
		paginator: NewPaginator(10),
		category:  -1,
	}
}

type eventsLoadedMsg struct {
	events []*domain.Event
	unread int
}

// Init loads the events
func (m *EventListModel) Init() tea.Cmd {
	return m.load
}

// Reload reloads the events from the store
func (m *EventListModel) Reload() tea.Cmd {
	return m.load
}

func (m *EventListModel) load() tea.Msg {
	ctx := context.Background()
	filter := domain.EventFilter{}
	if m.category >= 0 {
		filter.Category = domain.Categories[m.category]
	}
	events, err := m.deps.Store.ListEvents(ctx, filter)
	if err != nil {
		return errMsg{err}
	}
	unread, err := m.deps.Store.UnreadCount(ctx)
	if err != nil {
		return errMsg{err}
	}
	return eventsLoadedMsg{events: events, unread: unread}
}

// Refresh recomputes every countdown against the clock.
func (m *EventListModel) Refresh() {
	var selectedID string
	if st := m.Selected(); st != nil {
		selectedID = st.Event.ID
	}

	statuses := make([]domain.EventStatus, 0, len(m.events))
	for _, e := range m.events {
		st, err := commands.Status(m.deps.Cal, m.deps.Env, e)
		if err != nil {
			continue
		}
		statuses = append(statuses, st)
	}
	commands.SortByNextDue(statuses)
	m.statuses = statuses
	m.paginator.SetTotal(len(statuses))

	for i, st := range statuses {
		if st.Event.ID == selectedID {
			m.paginator.SetCursor(i)
			break
		}
	}
}

// Statuses returns the rows in display order
func (m *EventListModel) Statuses() []domain.EventStatus {
	return m.statuses
}

// Selected returns the row under the cursor, or nil
func (m *EventListModel) Selected() *domain.EventStatus {
	i := m.paginator.Cursor()
	if i < 0 || i >= len(m.statuses) {
		return nil
	}
	return &m.statuses[i]
}

// SetSize updates the dimensions and the page size
func (m *EventListModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	// title, subtitle, footer and padding take about ten lines
	m.paginator.SetPageSize(height - 10)
}

// Update handles messages for the event list
func (m *EventListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case eventsLoadedMsg:
		m.events = msg.events
		m.unread = msg.unread
		m.loaded = true
		m.Refresh()
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

	case remindersSentMsg:
		m.SetMessage(fmt.Sprintf("%d reminder(s) sent", msg.count), false)
		return m, m.Reload()

	case tea.KeyMsg:
		m.ClearMessage()
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *EventListModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, EventListKeys.Quit):
		return tea.Quit
	case key.Matches(msg, EventListKeys.Up):
		m.paginator.Up()
	case key.Matches(msg, EventListKeys.Down):
		m.paginator.Down()
	case key.Matches(msg, EventListKeys.PrevPage):
		m.paginator.PrevPage()
	case key.Matches(msg, EventListKeys.NextPage):
		m.paginator.NextPage()
	case key.Matches(msg, EventListKeys.New):
		return func() tea.Msg { return SwitchToCreateMsg{} }
	case key.Matches(msg, EventListKeys.Messages):
		return func() tea.Msg { return SwitchToMessagesMsg{} }
	case key.Matches(msg, EventListKeys.Rewards):
		return func() tea.Msg { return SwitchToRewardsMsg{} }
	case key.Matches(msg, EventListKeys.Help):
		return func() tea.Msg { return SwitchToHelpMsg{} }
	case key.Matches(msg, EventListKeys.Remind):
		return m.runReminders
	case key.Matches(msg, EventListKeys.Filter):
		m.category++
		if m.category >= len(domain.Categories) {
			m.category = -1
		}
		m.paginator.SetCursor(0)
		return m.Reload()
	}

	st := m.Selected()
	if st == nil {
		return nil
	}
	switch {
	case key.Matches(msg, EventListKeys.Open):
		return func() tea.Msg { return SwitchToDetailMsg{Event: st.Event} }
	case key.Matches(msg, EventListKeys.Delete):
		return func() tea.Msg { return SwitchToDeleteMsg{Event: st.Event} }
	case key.Matches(msg, EventListKeys.Copy):
		return copyCmd(m.deps.Clipboard, ShareText(*st), "Copied "+st.Event.Title)
	}
	return nil
}

type remindersSentMsg struct {
	count int
}

func (m *EventListModel) runReminders() tea.Msg {
	sent, err := commands.NewDueRemindersCommand(m.deps.Store, m.deps.Cal, m.deps.Env).Execute(context.Background())
	if err != nil {
		return errMsg{err}
	}
	return remindersSentMsg{count: len(sent)}
}

// ShareText is the line copied to the clipboard for an event.
func ShareText(st domain.EventStatus) string {
	return fmt.Sprintf("%s · %s · %s", st.Event.Title, st.Event.Date, st.Summary)
}

// View renders the event list
func (m *EventListModel) View() string {
	v := NewViewBuilder().Title("时光刻")

	scope := "全部"
	if m.category >= 0 {
		scope = domain.Categories[m.category]
	}
	subtitle := fmt.Sprintf("%s · %d events", scope, len(m.statuses))
	if m.unread > 0 {
		subtitle += " · " + styles.Unread.Render(fmt.Sprintf("%d unread", m.unread))
	}
	v.Subtitle(subtitle)
	v.Message(m.Message, m.MessageErr)

	switch {
	case !m.loaded:
		v.Muted("Loading...")
	case len(m.statuses) == 0:
		v.Muted("No events yet. Press n to record one.")
	default:
		start, end := m.paginator.Visible()
		for i := start; i < end; i++ {
			v.Line(m.renderRow(m.statuses[i], i == m.paginator.Cursor()))
		}
		if ind := m.paginator.Indicator(); ind != "" {
			v.BlankLine().Muted(ind)
		}
	}

	v.BlankLine()
	k := EventListKeys
	v.Help(k.Open, k.New, k.Delete, k.Copy, k.Filter, k.Messages, k.Help, k.Quit)
	return v.String()
}

func (m *EventListModel) renderRow(st domain.EventStatus, selected bool) string {
	title := st.Event.Title
	if selected {
		title = styles.ItemSelected.Render(" " + title + " ")
	} else {
		title = styles.Item.Render(" " + title + " ")
	}

	kind := ""
	if st.Event.Date.Kind == domain.KindLunar {
		kind = "农"
	}
	date := styles.MutedText.Render(fmt.Sprintf("%-14s%s", st.SolarDate, kind))

	row := lipgloss.JoinHorizontal(lipgloss.Top,
		padRight(title, 24), " ", date, " ", RenderCategory(st.Event.Category), "  ", RenderSummary(st),
	)
	return strings.TrimRight(row, " ")
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
