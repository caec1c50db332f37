package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"shiguang/internal/adapters/tui/styles"
	"shiguang/internal/adapters/tui/views"
	"shiguang/internal/application/commands"
	"shiguang/internal/domain"
)

// ViewState represents the current view
type ViewState int

const (
	ViewList ViewState = iota
	ViewDetail
	ViewCreate
	ViewDelete
	ViewMessages
	ViewRewards
	ViewHelp
)

// App is the main TUI application model
type App struct {
	deps views.Deps

	state    ViewState
	list     *views.EventListModel
	detail   *views.DetailModel
	create   *views.CreateModel
	delete   *views.DeleteModel
	messages *views.MessagesModel
	rewards  *views.RewardsModel
	help     *views.HelpModel
}

// NewApp creates a new TUI application
func NewApp(deps views.Deps) *App {
	return &App{
		deps:     deps,
		state:    ViewList,
		list:     views.NewEventListModel(deps),
		detail:   views.NewDetailModel(deps),
		create:   views.NewCreateModel(deps),
		delete:   views.NewDeleteModel(deps),
		messages: views.NewMessagesModel(deps),
		rewards:  views.NewRewardsModel(deps),
		help:     views.NewHelpModel(),
	}
}

// State returns the active view
func (a *App) State() ViewState {
	return a.state
}

type settingsLoadedMsg struct {
	settings domain.Settings
}

// Init loads the settings and the events and starts the countdown ticker
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadSettings, a.list.Init(), views.Tick())
}

func (a *App) loadSettings() tea.Msg {
	s, err := commands.NewGetSettingsCommand(a.deps.Store).Execute(context.Background())
	if err != nil {
		return nil
	}
	return settingsLoadedMsg{s}
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.list.SetSize(msg.Width, msg.Height)
		a.detail.SetSize(msg.Width, msg.Height)
		a.create.SetSize(msg.Width, msg.Height)
		a.delete.SetSize(msg.Width, msg.Height)
		a.messages.SetSize(msg.Width, msg.Height)
		a.rewards.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case settingsLoadedMsg:
		styles.Apply(msg.settings)
		return a, nil

	case views.TickMsg:
		// Both views keep counting even when hidden
		a.list.Update(msg)
		a.detail.Update(msg)
		return a, views.Tick()

	// View switching messages
	case views.SwitchToListMsg:
		a.state = ViewList
		return a, a.list.Reload()

	case views.SwitchToDetailMsg:
		a.state = ViewDetail
		a.detail.SetEvent(msg.Event)
		return a, nil

	case views.SwitchToCreateMsg:
		a.state = ViewCreate
		a.create.Reset()
		return a, a.create.Init()

	case views.SwitchToDeleteMsg:
		a.state = ViewDelete
		a.delete.SetTarget(msg.Event)
		return a, nil

	case views.SwitchToMessagesMsg:
		a.state = ViewMessages
		return a, a.messages.Init()

	case views.SwitchToRewardsMsg:
		a.state = ViewRewards
		return a, a.rewards.Init()

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	// Results that return to the list
	case views.CreateSuccessMsg:
		a.state = ViewList
		a.list.SetMessage(msg.Message, false)
		return a, a.list.Reload()

	case views.DeleteSuccessMsg:
		a.state = ViewList
		a.list.SetMessage(msg.Message, false)
		return a, a.list.Reload()
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewList:
		_, cmd = a.list.Update(msg)
	case ViewDetail:
		_, cmd = a.detail.Update(msg)
	case ViewCreate:
		_, cmd = a.create.Update(msg)
	case ViewDelete:
		_, cmd = a.delete.Update(msg)
	case ViewMessages:
		_, cmd = a.messages.Update(msg)
	case ViewRewards:
		_, cmd = a.rewards.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewDetail:
		return a.detail.View()
	case ViewCreate:
		return a.create.View()
	case ViewDelete:
		return a.delete.View()
	case ViewMessages:
		return a.messages.View()
	case ViewRewards:
		return a.rewards.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.list.View()
	}
}
