package application

import "shiguang/internal/domain"

// Re-export domain types for use by adapters
type (
	CalendarDate = domain.CalendarDate
	CalendarKind = domain.CalendarKind
	Event        = domain.Event
	EventStatus  = domain.EventStatus
	Message      = domain.Message
	Profile      = domain.Profile
	Settings     = domain.Settings
	TimeDelta    = domain.TimeDelta
	Occurrence   = domain.Occurrence
)

const (
	KindSolar = domain.KindSolar
	KindLunar = domain.KindLunar
)

// ParseDate parses "2024-08-15" (solar) or "L2024-08-15" (lunar).
func ParseDate(s string) (CalendarDate, error) {
	return domain.ParseCalendarDate(s)
}

// ParseDateAs parses s and reinterprets it under kind when s carries no
// "L" prefix, so "2024-08-15" with KindLunar means lunar 2024/8/15.
func ParseDateAs(s string, kind CalendarKind) (CalendarDate, error) {
	d, err := domain.ParseCalendarDate(s)
	if err != nil {
		return d, err
	}
	if kind == domain.KindLunar && d.Kind == domain.KindSolar {
		d.Kind = domain.KindLunar
	}
	return d, nil
}
