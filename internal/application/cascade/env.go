package cascade

import (
	"time"

	"shiguang/internal/domain"
	"shiguang/internal/ports"
)

// Env carries the ambient inputs of the date arithmetic. Zero fields fall
// back to the wall clock, time.Local and the Chinese locale.
type Env struct {
	Clock    ports.Clock
	Location *time.Location
	Locale   domain.Locale
}

func (e Env) now() time.Time {
	if e.Clock == nil {
		return time.Now().In(e.Loc())
	}
	return e.Clock.Now().In(e.Loc())
}

// Loc returns the configured location, time.Local when unset.
func (e Env) Loc() *time.Location {
	if e.Location == nil {
		return time.Local
	}
	return e.Location
}

func (e Env) locale() domain.Locale {
	if e.Locale.Name == "" {
		return domain.LocaleZH
	}
	return e.Locale
}

// delta measures a solar date's local midnight against now.
func (e Env) delta(solar domain.CalendarDate) domain.TimeDelta {
	return domain.NewTimeDelta(solar.Midnight(e.Loc()), e.now(), e.locale())
}
