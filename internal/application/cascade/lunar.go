package cascade

import (
	"fmt"

	"shiguang/internal/domain"
	"shiguang/internal/ports"
)

// Lunar is the cascading lunar date picker state.
type Lunar struct {
	cal   ports.Calendar
	env   Env
	year  int
	month int
	day   int
}

// NewLunar starts at today's lunar date.
func NewLunar(cal ports.Calendar, env Env) (*Lunar, error) {
	today, err := cal.ToLunar(domain.SolarFromTime(env.now()))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve today's lunar date: %w", err)
	}
	return NewLunarAt(cal, env, today.Year, today.Month, today.Day), nil
}

// NewLunarAt starts at the given lunar date without validating it.
func NewLunarAt(cal ports.Calendar, env Env, year, month, day int) *Lunar {
	return &Lunar{cal: cal, env: env, year: year, month: month, day: day}
}

// SetYear selects a year and resets month and day to 1.
func (c *Lunar) SetYear(year int) {
	c.year = year
	c.month = 1
	c.day = 1
}

// SetMonth selects a month and clamps the day to the month's length.
func (c *Lunar) SetMonth(month int) {
	c.month = month
	if n := LunarDayCount(c.cal, c.year, month); c.day > n {
		c.day = n
	}
}

// SetDay selects a day. It is not checked against the month.
func (c *Lunar) SetDay(day int) {
	c.day = day
}

// Current returns the selected triple.
func (c *Lunar) Current() domain.CalendarDate {
	return domain.Lunar(c.year, c.month, c.day)
}

// Date returns the selected date if it exists.
func (c *Lunar) Date() (domain.CalendarDate, error) {
	d := c.Current()
	if err := c.cal.Validate(d); err != nil {
		return domain.CalendarDate{}, err
	}
	return d, nil
}

// ToSolar converts the selection to the solar calendar.
func (c *Lunar) ToSolar() (domain.CalendarDate, error) {
	return c.cal.ToSolar(c.Current())
}

// YearOptions lists the years start..end.
func (c *Lunar) YearOptions(start, end int) []domain.Option {
	return LunarYears(c.cal, start, end)
}

// MonthOptions lists the months of the selected year.
func (c *Lunar) MonthOptions() []domain.Option {
	return LunarMonths(c.cal, c.year)
}

// DayOptions lists the days of the selected month.
func (c *Lunar) DayOptions() []domain.Option {
	return LunarDays(c.cal, c.year, c.month)
}

// AllOptions recomputes every column plus the selection.
func (c *Lunar) AllOptions(start, end int) domain.Options {
	return domain.Options{
		Years:   c.YearOptions(start, end),
		Months:  c.MonthOptions(),
		Days:    c.DayOptions(),
		Current: c.Current(),
	}
}

// HasLeapMonth reports whether the selected year has a leap month.
func (c *Lunar) HasLeapMonth() bool {
	return c.LeapMonth() > 0
}

// LeapMonth returns the leap month of the selected year, 0 if none.
func (c *Lunar) LeapMonth() int {
	return c.cal.LeapMonth(c.year)
}

// String renders the selection, e.g. "二〇二四年正月初一".
func (c *Lunar) String() string {
	s, err := c.cal.Format(c.Current(), false)
	if err != nil {
		return c.Current().String()
	}
	return s
}

// FullString renders the selection with the library's full detail.
func (c *Lunar) FullString() string {
	s, err := c.cal.Format(c.Current(), true)
	if err != nil {
		return c.Current().String()
	}
	return s
}

// TimeFromNow measures the selected date's solar midnight against now.
func (c *Lunar) TimeFromNow() (domain.TimeDelta, error) {
	solar, err := c.ToSolar()
	if err != nil {
		return domain.TimeDelta{}, err
	}
	return c.env.delta(solar), nil
}

// TimeToNextOccurrence finds the next instance of the selected month/day.
// It reports false when the month/day exists in neither this lunar year
// nor the next.
func (c *Lunar) TimeToNextOccurrence() (domain.Occurrence, bool) {
	return NextLunarOccurrence(c.cal, c.env, c.month, c.day)
}
