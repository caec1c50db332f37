package cascade

import (
	"shiguang/internal/domain"
	"shiguang/internal/ports"
)

// NextLunarOccurrence resolves lunar month/day in the current lunar year,
// or in the next one when this year's instance is missing or already past.
// The next year is tried once; if it is missing too there is no result.
func NextLunarOccurrence(cal ports.Calendar, env Env, month, day int) (domain.Occurrence, bool) {
	now := env.now()
	today, err := cal.ToLunar(domain.SolarFromTime(now))
	if err != nil {
		return domain.Occurrence{}, false
	}

	year := today.Year
	target := domain.Lunar(year, month, day)
	solar, err := cal.ToSolar(target)
	if err != nil || solar.Midnight(env.Loc()).Before(now) {
		year++
		target = domain.Lunar(year, month, day)
		solar, err = cal.ToSolar(target)
		if err != nil {
			return domain.Occurrence{}, false
		}
	}

	return occurrence(cal, env, year, target, solar), true
}

// NextSolarOccurrence resolves month/day in the current year, or the next
// one when already past. The day is clamped to the month's length in the
// candidate year, so Feb 29 falls on Feb 28 in common years.
func NextSolarOccurrence(cal ports.Calendar, env Env, month, day int) (domain.Occurrence, bool) {
	if month < 1 || month > 12 || day < 1 {
		return domain.Occurrence{}, false
	}

	now := env.now()
	year := now.Year()
	target := clampSolar(year, month, day)
	if target.Midnight(env.Loc()).Before(now) {
		year++
		target = clampSolar(year, month, day)
	}

	return occurrence(cal, env, year, target, target), true
}

func clampSolar(year, month, day int) domain.CalendarDate {
	if n := domain.DaysInSolarMonth(year, month); day > n {
		day = n
	}
	return domain.Solar(year, month, day)
}

func occurrence(cal ports.Calendar, env Env, year int, target, solar domain.CalendarDate) domain.Occurrence {
	text, err := cal.Format(target, false)
	if err != nil {
		text = target.String()
	}
	return domain.Occurrence{
		TimeDelta: env.delta(solar),
		Year:      year,
		Date:      target,
		Text:      text,
	}
}

// NextOccurrence dispatches to the resolver of kind.
func NextOccurrence(cal ports.Calendar, env Env, kind domain.CalendarKind, month, day int) (domain.Occurrence, bool) {
	if kind == domain.KindLunar {
		return NextLunarOccurrence(cal, env, month, day)
	}
	return NextSolarOccurrence(cal, env, month, day)
}

// TimeFromNow measures a date of either calendar against now.
func TimeFromNow(cal ports.Calendar, env Env, d domain.CalendarDate) (domain.TimeDelta, error) {
	if d.Kind == domain.KindLunar {
		return NewLunarAt(cal, env, d.Year, d.Month, d.Day).TimeFromNow()
	}
	return NewSolarAt(cal, env, d.Year, d.Month, d.Day).TimeFromNow()
}
