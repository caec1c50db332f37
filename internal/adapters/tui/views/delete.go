package views

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"shiguang/internal/adapters/tui/styles"
	"shiguang/internal/application/commands"
)

// DeleteModel is the model for the delete confirmation view
type DeleteModel struct {
	ConfirmationModel
	deps Deps
}

// NewDeleteModel creates a new delete view model
func NewDeleteModel(deps Deps) *DeleteModel {
	return &DeleteModel{
		ConfirmationModel: NewConfirmationModel(),
		deps:              deps,
	}
}

// Init initializes the delete view
func (m *DeleteModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the delete view
func (m *DeleteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case DeleteErrMsg:
		m.SetMessage(msg.Err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg,
			m.doDelete,
			func() tea.Msg { return SwitchToListMsg{} },
		)
		if handled {
			return m, cmd
		}
	}

	return m, nil
}

func (m *DeleteModel) doDelete() tea.Msg {
	if m.Target == nil {
		return DeleteErrMsg{Err: fmt.Errorf("no event selected")}
	}

	result, err := commands.NewDeleteEventCommand(m.deps.Store, m.Target.ID).Execute(context.Background())
	if err != nil {
		return DeleteErrMsg{Err: err}
	}
	return DeleteSuccessMsg{Message: result.Message}
}

// DeleteSuccessMsg indicates successful deletion
type DeleteSuccessMsg struct {
	Message string
}

// DeleteErrMsg indicates an error during deletion
type DeleteErrMsg struct {
	Err error
}

// View renders the delete confirmation view
func (m *DeleteModel) View() string {
	return NewViewBuilder().
		Title("删除时光").
		Line(styles.ErrorMsg.Render("This action cannot be undone!")).
		BlankLine().
		Line(RenderTargetInfo(m.Target, "Delete")).
		BlankLine().
		Message(m.Message, m.MessageErr).
		Line(RenderConfirmPrompt("Are you sure?")).
		String()
}
