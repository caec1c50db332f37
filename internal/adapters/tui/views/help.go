package views

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"shiguang/internal/adapters/tui/styles"
)

var helpClose = key.NewBinding(
	key.WithKeys("esc", "q", "?"),
	key.WithHelp("esc/q/?", "close"),
)

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if key.Matches(msg, helpClose) {
			return m, func() tea.Msg { return SwitchToListMsg{} }
		}
	}
	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	v := NewViewBuilder().
		Title("时光刻 Help").
		Subtitle("Countdowns and anniversaries on the solar and lunar calendars")

	v.Line(styles.InputLabel.Render("Events"))
	v.Raw(helpLine("j / k / ↑ / ↓", "Move up/down"))
	v.Raw(helpLine("h / l / ← / →", "Previous/next page"))
	v.Raw(helpLine("enter", "Open event"))
	v.Raw(helpLine("n", "New event"))
	v.Raw(helpLine("d", "Delete event"))
	v.Raw(helpLine("y", "Copy countdown to clipboard"))
	v.Raw(helpLine("f", "Cycle category filter"))
	v.Raw(helpLine("R", "Check due reminders"))
	v.BlankLine()

	v.Line(styles.InputLabel.Render("Date picker"))
	v.Raw(helpLine("← / →", "Year, month, day column"))
	v.Raw(helpLine("↑ / ↓", "Change value"))
	v.Raw(helpLine("c", "Switch 公历/农历"))
	v.Muted("  Changing the year resets month and day; changing the month clamps the day.")
	v.Muted("  闰 marks a lunar leap month.")
	v.BlankLine()

	v.Line(styles.InputLabel.Render("General"))
	v.Raw(helpLine("m", "Messages"))
	v.Raw(helpLine("r", "Rewards"))
	v.Raw(helpLine("?", "Toggle help"))
	v.Raw(helpLine("q / Ctrl+C", "Quit"))
	v.BlankLine()

	v.Help(helpClose)
	return v.String()
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 20)) + styles.HelpDesc.Render(desc) + "\n"
}
