package views

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"shiguang/internal/adapters/tui/styles"
	"shiguang/internal/application/commands"
	"shiguang/internal/domain"
)

// MessagesKeyMap defines key bindings for the message feed
type MessagesKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Read key.Binding
	Back key.Binding
}

var MessagesKeys = MessagesKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Read: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "mark read"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "q"),
		key.WithHelp("esc", "back"),
	),
}

// MessagesModel lists reminders and notifications, newest first
type MessagesModel struct {
	ViewState
	deps      Deps
	feed      *commands.MessageFeed
	paginator *Paginator
}

// NewMessagesModel creates a new message feed view
func NewMessagesModel(deps Deps) *MessagesModel {
	return &MessagesModel{deps: deps, paginator: NewPaginator(8)}
}

type feedLoadedMsg struct {
	feed *commands.MessageFeed
}

// Init loads the feed
func (m *MessagesModel) Init() tea.Cmd {
	m.paginator.SetCursor(0)
	return m.load
}

func (m *MessagesModel) load() tea.Msg {
	feed, err := commands.NewListMessagesCommand(m.deps.Store).Execute(context.Background())
	if err != nil {
		return errMsg{err}
	}
	return feedLoadedMsg{feed}
}

func (m *MessagesModel) markRead(id string) tea.Cmd {
	return func() tea.Msg {
		if err := commands.NewMarkMessageReadCommand(m.deps.Store, id).Execute(context.Background()); err != nil {
			return errMsg{err}
		}
		return m.load()
	}
}

// Update handles messages for the feed view
func (m *MessagesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case feedLoadedMsg:
		m.feed = msg.feed
		m.paginator.SetTotal(len(msg.feed.Messages))
		return m, nil

	case errMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, MessagesKeys.Back):
			return m, func() tea.Msg { return SwitchToListMsg{} }
		case key.Matches(msg, MessagesKeys.Up):
			m.paginator.Up()
		case key.Matches(msg, MessagesKeys.Down):
			m.paginator.Down()
		case key.Matches(msg, MessagesKeys.Read):
			if sel := m.selected(); sel != nil && !sel.IsRead {
				return m, m.markRead(sel.ID)
			}
		}
	}
	return m, nil
}

func (m *MessagesModel) selected() *domain.Message {
	if m.feed == nil {
		return nil
	}
	i := m.paginator.Cursor()
	if i < 0 || i >= len(m.feed.Messages) {
		return nil
	}
	return m.feed.Messages[i]
}

// View renders the feed
func (m *MessagesModel) View() string {
	v := NewViewBuilder().Title("消息")
	if m.feed == nil {
		return v.Muted("Loading...").String()
	}
	v.Subtitle(fmt.Sprintf("%d unread", m.feed.Unread))
	v.Message(m.Message, m.MessageErr)

	if len(m.feed.Messages) == 0 {
		v.Muted("No messages.")
	}
	start, end := m.paginator.Visible()
	for i := start; i < end; i++ {
		msg := m.feed.Messages[i]
		marker := "  "
		if !msg.IsRead {
			marker = styles.Unread.Render("● ")
		}
		title := msg.Title
		if i == m.paginator.Cursor() {
			title = styles.ItemSelected.Render(title)
		}
		v.Line(marker + title + "  " + styles.MutedText.Render(msg.Timestamp.In(m.deps.Env.Loc()).Format("2006-01-02 15:04")))
		v.Line("    " + msg.Content)
	}
	if ind := m.paginator.Indicator(); ind != "" {
		v.Muted(ind)
	}

	v.BlankLine()
	v.Help(MessagesKeys.Up, MessagesKeys.Down, MessagesKeys.Read, MessagesKeys.Back)
	return v.String()
}
