package styles

import (
	"github.com/charmbracelet/lipgloss"

	"shiguang/internal/domain"
)

// Accent colors selectable in settings
var accents = map[string]lipgloss.Color{
	"pink":  lipgloss.Color("#EC4899"),
	"sky":   lipgloss.Color("#0EA5E9"),
	"cream": lipgloss.Color("#D4A373"),
	"green": lipgloss.Color("#10B981"),
}

// Category colors
var categoryColors = map[string]lipgloss.Color{
	"节日":  lipgloss.Color("#EF4444"), // Red
	"爱情":  lipgloss.Color("#EC4899"), // Pink
	"旅行":  lipgloss.Color("#0EA5E9"), // Sky
	"工作":  lipgloss.Color("#6366F1"), // Indigo
	"学习":  lipgloss.Color("#8B5CF6"), // Violet
	"生日":  lipgloss.Color("#F97316"), // Orange
	"纪念日": lipgloss.Color("#D4A373"), // Cream
}

var (
	// Colors
	Primary   = accents["pink"]
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")
	Black     = lipgloss.Color("#000000")

	// Text is the body color of the active theme
	Text = lipgloss.Color("#1F2937")

	App           lipgloss.Style
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Item          lipgloss.Style
	ItemSelected  lipgloss.Style
	ItemPast      lipgloss.Style
	Countdown     lipgloss.Style
	Today         lipgloss.Style
	Badge         lipgloss.Style
	Unread        lipgloss.Style
	StatusBar     lipgloss.Style
	StatusKey     lipgloss.Style
	InputLabel    lipgloss.Style
	InputField    lipgloss.Style
	InputFocused  lipgloss.Style
	PickerColumn  lipgloss.Style
	PickerFocused lipgloss.Style
	HelpKey       lipgloss.Style
	HelpDesc      lipgloss.Style
	HelpSeparator lipgloss.Style
	Success       lipgloss.Style
	ErrorMsg      lipgloss.Style
	MutedText     lipgloss.Style
)

func init() {
	build()
}

// Apply switches the palette to the user's theme and accent color.
// Unknown values keep the current palette.
func Apply(s domain.Settings) {
	if c, ok := accents[s.PrimaryColor]; ok {
		Primary = c
	}
	switch s.Theme {
	case domain.ThemeDark:
		Text = lipgloss.Color("#E5E7EB")
	case domain.ThemeLight:
		Text = lipgloss.Color("#1F2937")
	}
	build()
}

func build() {
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
		Foreground(Muted).
		Italic(true)

	Item = lipgloss.NewStyle().
		Foreground(Text)

	ItemSelected = lipgloss.NewStyle().
		Background(Primary).
		Foreground(White).
		Bold(true)

	ItemPast = lipgloss.NewStyle().
		Foreground(Muted).
		Italic(true)

	Countdown = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	Today = lipgloss.NewStyle().
		Foreground(Warning).
		Bold(true)

	Badge = lipgloss.NewStyle().
		Background(Primary).
		Foreground(White).
		Padding(0, 1).
		MarginRight(1)

	Unread = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	StatusBar = lipgloss.NewStyle().
		Background(lipgloss.Color("#1F2937")).
		Foreground(White).
		Padding(0, 1)

	StatusKey = lipgloss.NewStyle().
		Background(Primary).
		Foreground(White).
		Padding(0, 1).
		MarginRight(1)

	InputLabel = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	InputField = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(0, 1)

	InputFocused = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Padding(0, 1)

	PickerColumn = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(0, 1).
		MarginRight(1)

	PickerFocused = PickerColumn.
		BorderForeground(Primary)

	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
		Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
		Foreground(Muted).
		SetString(" • ")

	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	MutedText = lipgloss.NewStyle().
		Foreground(Muted)
}

// CategoryColor returns the color for an event category
func CategoryColor(category string) lipgloss.Color {
	if c, ok := categoryColors[category]; ok {
		return c
	}
	return Muted
}
