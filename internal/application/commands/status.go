package commands

import (
	"fmt"
	"sort"
	"time"

	"shiguang/internal/application/cascade"
	"shiguang/internal/domain"
	"shiguang/internal/ports"
)

// Status computes the live countdown of an event. Countdowns measure the
// distance to the date; anniversaries also resolve the next recurrence of
// the date's month and day.
func Status(cal ports.Calendar, env cascade.Env, e *domain.Event) (domain.EventStatus, error) {
	solar, err := cal.ToSolar(e.Date)
	if err != nil {
		return domain.EventStatus{}, fmt.Errorf("failed to resolve %s: %w", e.Date, err)
	}

	var (
		delta domain.TimeDelta
		next  domain.Occurrence
		ok    bool
	)
	switch e.Date.Kind {
	case domain.KindLunar:
		c := cascade.NewLunarAt(cal, env, e.Date.Year, e.Date.Month, e.Date.Day)
		delta, err = c.TimeFromNow()
		next, ok = c.TimeToNextOccurrence()
	default:
		c := cascade.NewSolarAt(cal, env, e.Date.Year, e.Date.Month, e.Date.Day)
		delta, err = c.TimeFromNow()
		next, ok = c.TimeToNextOccurrence()
	}
	if err != nil {
		return domain.EventStatus{}, err
	}

	st := domain.EventStatus{
		Event:     e,
		Delta:     delta,
		SolarDate: solar,
		Summary:   delta.Formatted,
	}
	if ok {
		st.Next = &next
	}

	if e.Type == domain.EventAnniversary && delta.IsPast && st.Next != nil {
		st.Summary = fmt.Sprintf("%s · %s", delta.Formatted, next.Formatted)
	}
	return st, nil
}

// SortByNextDue orders statuses by days until the next due date; events
// with nothing upcoming go last, most recent first.
func SortByNextDue(statuses []domain.EventStatus) {
	sort.SliceStable(statuses, func(i, j int) bool {
		di, dj := statuses[i].DaysUntilNext(), statuses[j].DaysUntilNext()
		switch {
		case di < 0 && dj < 0:
			return statuses[i].Delta.TotalDays < statuses[j].Delta.TotalDays
		case di < 0:
			return false
		case dj < 0:
			return true
		}
		return di < dj
	})
}

// fixedInstant is a ports.Clock stopped at one instant.
type fixedInstant time.Time

func (f fixedInstant) Now() time.Time { return time.Time(f) }
