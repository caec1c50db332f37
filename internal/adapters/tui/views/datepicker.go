package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"shiguang/internal/adapters/tui/styles"
	"shiguang/internal/application/cascade"
	"shiguang/internal/domain"
)

// dateController is the behavior shared by the lunar and solar cascades.
type dateController interface {
	SetYear(year int)
	SetMonth(month int)
	SetDay(day int)
	Current() domain.CalendarDate
	Date() (domain.CalendarDate, error)
	YearOptions(start, end int) []domain.Option
	MonthOptions() []domain.Option
	DayOptions() []domain.Option
	String() string
	TimeFromNow() (domain.TimeDelta, error)
}

// Picker columns
const (
	columnYear = iota
	columnMonth
	columnDay
)

// visibleOptions is how many rows each picker column shows
const visibleOptions = 5

// DatePickerKeyMap defines key bindings for the date picker
type DatePickerKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Calendar key.Binding
}

// DatePickerKeys are the default date picker bindings
var DatePickerKeys = DatePickerKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("↑/↓", "change"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("←/→", "column"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
	),
	Calendar: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "公历/农历"),
	),
}

// DatePicker is a three-column cascading date selector over either
// calendar. Changing the year resets month and day; changing the month
// clamps the day.
type DatePicker struct {
	deps   Deps
	lunar  *cascade.Lunar
	solar  *cascade.Solar
	kind   domain.CalendarKind
	column int
	Keys   DatePickerKeyMap
}

// NewDatePicker starts both calendars at today, showing the solar one.
func NewDatePicker(deps Deps) *DatePicker {
	lunar, err := cascade.NewLunar(deps.Cal, deps.Env)
	if err != nil {
		lunar = cascade.NewLunarAt(deps.Cal, deps.Env, domain.DefaultEndYear, 1, 1)
	}
	return &DatePicker{
		deps:  deps,
		lunar: lunar,
		solar: cascade.NewSolar(deps.Cal, deps.Env),
		kind:  domain.KindSolar,
		Keys:  DatePickerKeys,
	}
}

func (p *DatePicker) active() dateController {
	if p.kind == domain.KindLunar {
		return p.lunar
	}
	return p.solar
}

// Kind returns the calendar being edited
func (p *DatePicker) Kind() domain.CalendarKind {
	return p.kind
}

// Column returns the focused column
func (p *DatePicker) Column() int {
	return p.column
}

// Current returns the selected triple, which may not exist
func (p *DatePicker) Current() domain.CalendarDate {
	return p.active().Current()
}

// Date returns the selected date, or ErrInvalidDate
func (p *DatePicker) Date() (domain.CalendarDate, error) {
	return p.active().Date()
}

// ToggleCalendar switches calendars, carrying the selected day over when
// it converts.
func (p *DatePicker) ToggleCalendar() {
	if p.kind == domain.KindLunar {
		if d, err := p.lunar.ToSolar(); err == nil {
			p.solar = cascade.NewSolarAt(p.deps.Cal, p.deps.Env, d.Year, d.Month, d.Day)
		}
		p.kind = domain.KindSolar
		return
	}
	if d, err := p.solar.ToLunar(); err == nil {
		p.lunar = cascade.NewLunarAt(p.deps.Cal, p.deps.Env, d.Year, d.Month, d.Day)
	}
	p.kind = domain.KindLunar
}

// MoveColumn shifts focus between year, month and day
func (p *DatePicker) MoveColumn(delta int) {
	p.column = max(columnYear, min(columnDay, p.column+delta))
}

func (p *DatePicker) columnOptions(column int) ([]domain.Option, int) {
	c := p.active()
	cur := c.Current()
	switch column {
	case columnYear:
		start, end := p.deps.yearRange(p.kind)
		return c.YearOptions(start, end), cur.Year
	case columnMonth:
		return c.MonthOptions(), cur.Month
	default:
		return c.DayOptions(), cur.Day
	}
}

// Step moves the focused column's selection by delta options. A value
// outside the column (e.g. a day past a shorter month) snaps to the nearest
// end.
func (p *DatePicker) Step(delta int) {
	opts, value := p.columnOptions(p.column)
	if len(opts) == 0 {
		return
	}
	i := domain.IndexOf(opts, value)
	switch {
	case i < 0 && delta < 0:
		i = len(opts) - 1
	case i < 0:
		i = 0
	default:
		i = max(0, min(len(opts)-1, i+delta))
	}

	c := p.active()
	switch p.column {
	case columnYear:
		c.SetYear(opts[i].Value)
	case columnMonth:
		c.SetMonth(opts[i].Value)
	default:
		c.SetDay(opts[i].Value)
	}
}

// Update handles picker keys; it reports whether the key was consumed.
func (p *DatePicker) Update(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, p.Keys.Up):
		p.Step(-1)
	case key.Matches(msg, p.Keys.Down):
		p.Step(1)
	case key.Matches(msg, p.Keys.Left):
		p.MoveColumn(-1)
	case key.Matches(msg, p.Keys.Right):
		p.MoveColumn(1)
	case key.Matches(msg, p.Keys.Calendar):
		p.ToggleCalendar()
	default:
		return false
	}
	return true
}

// View renders the three columns and a preview line. focused highlights
// the active column.
func (p *DatePicker) View(focused bool) string {
	var cols []string
	for column := columnYear; column <= columnDay; column++ {
		opts, value := p.columnOptions(column)
		style := styles.PickerColumn
		if focused && column == p.column {
			style = styles.PickerFocused
		}
		cols = append(cols, style.Render(renderColumn(opts, value)))
	}

	var b strings.Builder
	kindLabel := "公历"
	if p.kind == domain.KindLunar {
		kindLabel = "农历"
	}
	b.WriteString(styles.InputLabel.Render("日期 · " + kindLabel))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	b.WriteString("\n")
	b.WriteString(p.preview())
	return b.String()
}

func (p *DatePicker) preview() string {
	c := p.active()
	if _, err := c.Date(); err != nil {
		return styles.ErrorMsg.Render(err.Error())
	}
	delta, err := c.TimeFromNow()
	if err != nil {
		return styles.ErrorMsg.Render(err.Error())
	}
	return c.String() + "  " + styles.Countdown.Render(delta.Formatted)
}

// renderColumn shows a window of options centered on the selection.
func renderColumn(opts []domain.Option, value int) string {
	sel := domain.IndexOf(opts, value)
	if sel < 0 {
		sel = 0
	}
	start := max(0, min(sel-visibleOptions/2, len(opts)-visibleOptions))
	end := min(len(opts), start+visibleOptions)

	lines := make([]string, 0, visibleOptions)
	for i := start; i < end; i++ {
		label := opts[i].Label
		if opts[i].Value == value {
			lines = append(lines, styles.ItemSelected.Render(label))
		} else {
			lines = append(lines, styles.Item.Render(label))
		}
	}
	return strings.Join(lines, "\n")
}
