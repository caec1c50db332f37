package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Supported year range for both calendar systems.
const (
	MinYear = 1900
	MaxYear = 2100
)

// Default year ranges offered by the date pickers.
const (
	DefaultLunarStartYear = 1920
	DefaultSolarStartYear = 1900
	DefaultEndYear        = 2100
)

// ErrInvalidDate is returned when a (year, month, day) triple does not exist
// in the requested calendar system.
var ErrInvalidDate = errors.New("invalid calendar date")

// CalendarKind identifies the calendar system a date is interpreted under.
type CalendarKind int

const (
	KindSolar CalendarKind = iota
	KindLunar
)

func (k CalendarKind) String() string {
	switch k {
	case KindSolar:
		return "solar"
	case KindLunar:
		return "lunar"
	default:
		return "unknown"
	}
}

// ParseCalendarKind accepts "solar"/"lunar" and the Chinese 公历/农历.
func ParseCalendarKind(s string) (CalendarKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "solar", "gregorian", "公历", "阳历":
		return KindSolar, nil
	case "lunar", "农历", "阴历":
		return KindLunar, nil
	}
	return KindSolar, fmt.Errorf("unknown calendar kind: %q", s)
}

// CalendarDate is a (year, month, day) triple. For lunar dates a negative
// month denotes the leap month with ordinal -Month.
type CalendarDate struct {
	Kind  CalendarKind `json:"kind"`
	Year  int          `json:"year"`
	Month int          `json:"month"`
	Day   int          `json:"day"`
}

// Solar builds a solar CalendarDate.
func Solar(year, month, day int) CalendarDate {
	return CalendarDate{Kind: KindSolar, Year: year, Month: month, Day: day}
}

// Lunar builds a lunar CalendarDate.
func Lunar(year, month, day int) CalendarDate {
	return CalendarDate{Kind: KindLunar, Year: year, Month: month, Day: day}
}

// SolarFromTime returns the solar date of t in t's location.
func SolarFromTime(t time.Time) CalendarDate {
	return Solar(t.Year(), int(t.Month()), t.Day())
}

// IsLeapMonth reports whether the date falls in a lunar leap month.
func (d CalendarDate) IsLeapMonth() bool {
	return d.Kind == KindLunar && d.Month < 0
}

// MonthOrdinal returns the month magnitude.
func (d CalendarDate) MonthOrdinal() int {
	if d.Month < 0 {
		return -d.Month
	}
	return d.Month
}

// Midnight returns local midnight of a solar date in loc.
func (d CalendarDate) Midnight(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, loc)
}

// DaysBetween counts calendar days from one solar date to another. It is
// independent of any zone, so daylight saving shifts do not change it.
func DaysBetween(from, to CalendarDate) int {
	return int(to.Midnight(time.UTC).Sub(from.Midnight(time.UTC)).Hours()) / 24
}

// String renders the date as "2024-08-15", prefixed with "L" for lunar dates
// and with "闰" before the month for leap months.
func (d CalendarDate) String() string {
	var b strings.Builder
	if d.Kind == KindLunar {
		b.WriteString("L")
	}
	fmt.Fprintf(&b, "%04d-", d.Year)
	if d.IsLeapMonth() {
		b.WriteString("闰")
	}
	fmt.Fprintf(&b, "%02d-%02d", d.MonthOrdinal(), d.Day)
	return b.String()
}

var datePattern = regexp.MustCompile(`^(L)?(\d{4})-(闰|-)?(\d{1,2})-(\d{1,2})$`)

// ParseCalendarDate parses the format produced by CalendarDate.String.
// "2024-08-15" is solar, "L2024-08-15" lunar, "L2023-闰02-10" (or
// "L2023--2-10") a lunar leap month. Only the shape is checked here.
func ParseCalendarDate(s string) (CalendarDate, error) {
	m := datePattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return CalendarDate{}, fmt.Errorf("%w: cannot parse %q", ErrInvalidDate, s)
	}

	year, _ := strconv.Atoi(m[2])
	month, _ := strconv.Atoi(m[4])
	day, _ := strconv.Atoi(m[5])

	d := CalendarDate{Kind: KindSolar, Year: year, Month: month, Day: day}
	if m[1] == "L" {
		d.Kind = KindLunar
		if m[3] != "" {
			d.Month = -month
		}
	} else if m[3] != "" {
		return CalendarDate{}, fmt.Errorf("%w: solar dates have no leap month: %q", ErrInvalidDate, s)
	}

	if err := CheckRange(d); err != nil {
		return CalendarDate{}, err
	}
	return d, nil
}

// CheckRange validates the year range, month magnitude and day lower bound.
// Upper day bounds depend on the calendar and are checked by the adapter.
// Lunar years start one year earlier: January 1900 is still lunar 1899.
func CheckRange(d CalendarDate) error {
	minYear := MinYear
	if d.Kind == KindLunar {
		minYear = MinYear - 1
	}
	if d.Year < minYear || d.Year > MaxYear {
		return fmt.Errorf("%w: year %d outside %d-%d", ErrInvalidDate, d.Year, minYear, MaxYear)
	}
	if m := d.MonthOrdinal(); m < 1 || m > 12 {
		return fmt.Errorf("%w: month %d", ErrInvalidDate, d.Month)
	}
	if d.Kind == KindSolar && d.Month < 0 {
		return fmt.Errorf("%w: solar month %d", ErrInvalidDate, d.Month)
	}
	if d.Day < 1 {
		return fmt.Errorf("%w: day %d", ErrInvalidDate, d.Day)
	}
	return nil
}

// IsLeapYear reports whether a Gregorian year has 366 days.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

var monthDays = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DaysInSolarMonth returns the Gregorian length of month in year.
func DaysInSolarMonth(year, month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	if month == 2 && IsLeapYear(year) {
		return 29
	}
	return monthDays[month-1]
}

// Option is one selectable entry of a date picker column.
type Option struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// IndexOf returns the position of value in opts, or -1.
func IndexOf(opts []Option, value int) int {
	for i, o := range opts {
		if o.Value == value {
			return i
		}
	}
	return -1
}

// Options bundles the three picker columns with the current selection.
type Options struct {
	Years   []Option     `json:"years"`
	Months  []Option     `json:"months"`
	Days    []Option     `json:"days"`
	Current CalendarDate `json:"current"`
}

// Almanac carries the descriptive facts of a solar day.
type Almanac struct {
	Solar      CalendarDate `json:"solar"`
	Lunar      CalendarDate `json:"lunar"`
	LunarText  string       `json:"lunarText"`
	Week       string       `json:"week"`
	Zodiac     string       `json:"zodiac"`
	Festivals  []string     `json:"festivals"`
	SolarTerm  string       `json:"solarTerm,omitempty"`
	IsLeapYear bool         `json:"isLeapYear"`
}
