package ports

import "shiguang/internal/domain"

// Calendar is the calendrical capability the cascades are built on:
// construction checks, conversion, leap lookup and rendering. Every method
// that constructs a date fails with an error wrapping domain.ErrInvalidDate
// when the date does not exist.
type Calendar interface {
	// Validate checks that d exists in its calendar system
	Validate(d domain.CalendarDate) error

	// Conversion
	ToSolar(d domain.CalendarDate) (domain.CalendarDate, error)
	ToLunar(d domain.CalendarDate) (domain.CalendarDate, error)

	// LeapMonth returns the leap month ordinal of a lunar year, 0 if none
	LeapMonth(lunarYear int) int

	// Labels used by the option generators
	LunarYearLabel(lunarYear int) string
	LunarMonthLabel(lunarYear, month int) string
	LunarDayLabel(lunarYear, month, day int) string

	// Format renders d in the library's short or full form
	Format(d domain.CalendarDate, full bool) (string, error)

	// Almanac describes the solar day of d
	Almanac(d domain.CalendarDate) (domain.Almanac, error)
}
