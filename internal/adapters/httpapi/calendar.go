package httpapi

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"shiguang/internal/application/cascade"
	"shiguang/internal/domain"
)

// picker is the part of the cascade controllers the options endpoint uses.
type picker interface {
	SetYear(int)
	SetMonth(int)
	SetDay(int)
	AllOptions(start, end int) domain.Options
}

func intParam(q url.Values, name string) (int, bool, error) {
	s := q.Get(name)
	if s == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false, badRequest(name, "must be an integer")
	}
	return n, true, nil
}

// calendarOptions replays year, month and day selections on a picker that
// starts at today, so the response reflects the cascade resets and clamps.
func (s *Server) calendarOptions(w http.ResponseWriter, r *http.Request) {
	kind, _ := domain.ParseCalendarKind(mux.Vars(r)["kind"])

	var (
		p     picker
		start = s.deps.YearStart
		end   = s.deps.YearEnd
	)
	if kind == domain.KindLunar {
		lp, err := cascade.NewLunar(s.deps.Cal, s.deps.Env)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		p = lp
		if start == 0 {
			start = domain.DefaultLunarStartYear
		}
	} else {
		p = cascade.NewSolar(s.deps.Cal, s.deps.Env)
		if start == 0 {
			start = domain.DefaultSolarStartYear
		}
	}
	if end == 0 {
		end = domain.DefaultEndYear
	}

	q := r.URL.Query()
	for _, sel := range []struct {
		name string
		set  func(int)
	}{
		{"year", p.SetYear},
		{"month", p.SetMonth},
		{"day", p.SetDay},
	} {
		v, ok, err := intParam(q, sel.name)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		if ok {
			sel.set(v)
		}
	}

	opts := p.AllOptions(start, end)
	if err := s.deps.Cal.Validate(opts.Current); err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, opts)
}

type conversion struct {
	From domain.CalendarDate `json:"from"`
	To   domain.CalendarDate `json:"to"`
	Text string              `json:"text"`
}

func (s *Server) convertDate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, err := parseDateField(q.Get("date"), q.Get("calendar"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var to domain.CalendarDate
	if from.Kind == domain.KindLunar {
		to, err = s.deps.Cal.ToSolar(from)
	} else {
		to, err = s.deps.Cal.ToLunar(from)
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}

	text, err := s.deps.Cal.Format(to, true)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, conversion{From: from, To: to, Text: text})
}

func (s *Server) nextOccurrence(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	kind, err := domain.ParseCalendarKind(q.Get("calendar"))
	if err != nil {
		s.fail(w, r, badRequest("calendar", err.Error()))
		return
	}
	month, _, err := intParam(q, "month")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	day, _, err := intParam(q, "day")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	occ, ok := cascade.NextOccurrence(s.deps.Cal, s.deps.Env, kind, month, day)
	if !ok {
		WriteMessage(w, http.StatusNotFound, "no upcoming occurrence")
		return
	}
	WriteJSON(w, http.StatusOK, occ)
}

func (s *Server) countdown(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	date, err := parseDateField(q.Get("date"), q.Get("calendar"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	delta, err := cascade.TimeFromNow(s.deps.Cal, s.deps.Env, date)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, delta)
}

func (s *Server) almanac(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	date, err := parseDateField(q.Get("date"), q.Get("calendar"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	a, err := s.deps.Cal.Almanac(date)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, a)
}
