package cascade

import (
	"shiguang/internal/domain"
	"shiguang/internal/ports"
)

// Solar is the cascading Gregorian date picker state.
type Solar struct {
	cal   ports.Calendar
	env   Env
	year  int
	month int
	day   int
}

// NewSolar starts at today.
func NewSolar(cal ports.Calendar, env Env) *Solar {
	today := domain.SolarFromTime(env.now())
	return NewSolarAt(cal, env, today.Year, today.Month, today.Day)
}

// NewSolarAt starts at the given date without validating it.
func NewSolarAt(cal ports.Calendar, env Env, year, month, day int) *Solar {
	return &Solar{cal: cal, env: env, year: year, month: month, day: day}
}

// SetYear selects a year and resets month and day to 1.
func (c *Solar) SetYear(year int) {
	c.year = year
	c.month = 1
	c.day = 1
}

// SetMonth selects a month and clamps the day to the month's length.
func (c *Solar) SetMonth(month int) {
	c.month = month
	if n := domain.DaysInSolarMonth(c.year, month); n > 0 && c.day > n {
		c.day = n
	}
}

// SetDay selects a day. It is not checked against the month.
func (c *Solar) SetDay(day int) {
	c.day = day
}

// Current returns the selected triple.
func (c *Solar) Current() domain.CalendarDate {
	return domain.Solar(c.year, c.month, c.day)
}

// Date returns the selected date if it exists.
func (c *Solar) Date() (domain.CalendarDate, error) {
	d := c.Current()
	if err := c.cal.Validate(d); err != nil {
		return domain.CalendarDate{}, err
	}
	return d, nil
}

// ToLunar converts the selection to the lunar calendar.
func (c *Solar) ToLunar() (domain.CalendarDate, error) {
	return c.cal.ToLunar(c.Current())
}

// YearOptions lists the years start..end.
func (c *Solar) YearOptions(start, end int) []domain.Option {
	return SolarYears(start, end)
}

// MonthOptions lists the twelve months.
func (c *Solar) MonthOptions() []domain.Option {
	return SolarMonths()
}

// DayOptions lists the days of the selected month.
func (c *Solar) DayOptions() []domain.Option {
	return SolarDays(c.year, c.month)
}

// AllOptions recomputes every column plus the selection.
func (c *Solar) AllOptions(start, end int) domain.Options {
	return domain.Options{
		Years:   c.YearOptions(start, end),
		Months:  c.MonthOptions(),
		Days:    c.DayOptions(),
		Current: c.Current(),
	}
}

// IsLeapYear reports whether the selected year is a Gregorian leap year.
func (c *Solar) IsLeapYear() bool {
	return domain.IsLeapYear(c.year)
}

// DaysInMonth returns the length of the selected month.
func (c *Solar) DaysInMonth() int {
	return domain.DaysInSolarMonth(c.year, c.month)
}

// Almanac describes the selected day: week day, zodiac sign, festivals and
// solar term.
func (c *Solar) Almanac() (domain.Almanac, error) {
	return c.cal.Almanac(c.Current())
}

// String renders the selection as "2024-02-10".
func (c *Solar) String() string {
	s, err := c.cal.Format(c.Current(), false)
	if err != nil {
		return c.Current().String()
	}
	return s
}

// FullString renders the selection with week day, festivals and zodiac.
func (c *Solar) FullString() string {
	s, err := c.cal.Format(c.Current(), true)
	if err != nil {
		return c.Current().String()
	}
	return s
}

// TimeFromNow measures the selected date's midnight against now.
func (c *Solar) TimeFromNow() (domain.TimeDelta, error) {
	d, err := c.Date()
	if err != nil {
		return domain.TimeDelta{}, err
	}
	return c.env.delta(d), nil
}

// TimeToNextOccurrence finds the next instance of the selected month/day.
// Feb 29 resolves to Feb 28 in common years. It reports false only for a
// month outside 1..12 or a day below 1.
func (c *Solar) TimeToNextOccurrence() (domain.Occurrence, bool) {
	return NextSolarOccurrence(c.cal, c.env, c.month, c.day)
}
