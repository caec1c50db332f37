package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"shiguang/internal/application"
	"shiguang/internal/application/commands"
	"shiguang/internal/domain"
)

// eventRequest is the body of POST /api/events. Date uses the
// CalendarDate text form; Calendar=lunar makes an unprefixed date lunar.
type eventRequest struct {
	Title        string   `json:"title"`
	Date         string   `json:"date"`
	Calendar     string   `json:"calendar"`
	Type         string   `json:"type"`
	Category     string   `json:"category"`
	Description  string   `json:"description"`
	CoverImage   string   `json:"coverImage"`
	Reminder     string   `json:"reminder"`
	Participants []string `json:"participants"`
	IsShared     bool     `json:"isShared"`
}

// eventPatchRequest is the body of PATCH /api/events/{id}.
type eventPatchRequest struct {
	Title        *string   `json:"title"`
	Date         *string   `json:"date"`
	Calendar     string    `json:"calendar"`
	Type         *string   `json:"type"`
	Category     *string   `json:"category"`
	Description  *string   `json:"description"`
	CoverImage   *string   `json:"coverImage"`
	Reminder     *string   `json:"reminder"`
	Participants *[]string `json:"participants"`
	IsShared     *bool     `json:"isShared"`
}

func parseDateField(s, calendar string) (domain.CalendarDate, error) {
	kind, err := domain.ParseCalendarKind(calendar)
	if err != nil {
		return domain.CalendarDate{}, badRequest("calendar", err.Error())
	}
	d, err := application.ParseDateAs(s, kind)
	if err != nil {
		return domain.CalendarDate{}, badRequest("date", err.Error())
	}
	return d, nil
}

func (req eventRequest) toEvent() (domain.Event, error) {
	date, err := parseDateField(req.Date, req.Calendar)
	if err != nil {
		return domain.Event{}, err
	}
	kind, err := domain.ParseEventType(req.Type)
	if err != nil {
		return domain.Event{}, badRequest("type", err.Error())
	}
	reminder, err := domain.ParseReminder(req.Reminder)
	if err != nil {
		return domain.Event{}, badRequest("reminder", err.Error())
	}
	return domain.Event{
		Title:        req.Title,
		Date:         date,
		Type:         kind,
		Category:     req.Category,
		Description:  req.Description,
		CoverImage:   req.CoverImage,
		Reminder:     reminder,
		Participants: req.Participants,
		IsShared:     req.IsShared,
	}, nil
}

func (req eventPatchRequest) toPatch() (commands.EventPatch, error) {
	p := commands.EventPatch{
		Title:        req.Title,
		Category:     req.Category,
		Description:  req.Description,
		CoverImage:   req.CoverImage,
		Participants: req.Participants,
		IsShared:     req.IsShared,
	}
	if req.Date != nil {
		date, err := parseDateField(*req.Date, req.Calendar)
		if err != nil {
			return p, err
		}
		p.Date = &date
	}
	if req.Type != nil {
		kind, err := domain.ParseEventType(*req.Type)
		if err != nil {
			return p, badRequest("type", err.Error())
		}
		p.Type = &kind
	}
	if req.Reminder != nil {
		reminder, err := domain.ParseReminder(*req.Reminder)
		if err != nil {
			return p, badRequest("reminder", err.Error())
		}
		p.Reminder = &reminder
	}
	return p, nil
}

func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.EventFilter{
		OwnerID:  q.Get("owner"),
		Category: q.Get("category"),
	}
	if t := q.Get("type"); t != "" {
		kind, err := domain.ParseEventType(t)
		if err != nil {
			s.fail(w, r, badRequest("type", err.Error()))
			return
		}
		filter.Type = kind
	}

	statuses, err := commands.NewListEventsCommand(s.deps.Store, s.deps.Cal, s.deps.Env, filter).Execute(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, statuses)
}

func (s *Server) createEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	e, err := req.toEvent()
	if err != nil {
		s.fail(w, r, err)
		return
	}

	// Events created while logged in belong to the session user.
	if u, err := commands.NewCurrentUserCommand(s.deps.Store, s.deps.Store).Execute(r.Context()); err == nil {
		e.OwnerID = u.ID
	}

	res, err := commands.NewAddEventCommand(s.deps.Store, s.deps.Cal, s.deps.Env.Clock, e).Execute(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, res.Event)
}

func (s *Server) getEvent(w http.ResponseWriter, r *http.Request) {
	e, err := s.deps.Store.GetEvent(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, e)
}

func (s *Server) updateEvent(w http.ResponseWriter, r *http.Request) {
	var req eventPatchRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	patch, err := req.toPatch()
	if err != nil {
		s.fail(w, r, err)
		return
	}

	res, err := commands.NewUpdateEventCommand(s.deps.Store, s.deps.Cal, mux.Vars(r)["id"], patch).Execute(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, res.Event)
}

func (s *Server) deleteEvent(w http.ResponseWriter, r *http.Request) {
	res, err := commands.NewDeleteEventCommand(s.deps.Store, mux.Vars(r)["id"]).Execute(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteMessage(w, http.StatusOK, res.Message)
}

func (s *Server) eventStatus(w http.ResponseWriter, r *http.Request) {
	st, err := commands.NewEventStatusCommand(s.deps.Store, s.deps.Cal, s.deps.Env, mux.Vars(r)["id"]).Execute(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, st)
}

func (s *Server) runReminders(w http.ResponseWriter, r *http.Request) {
	sent, err := commands.NewDueRemindersCommand(s.deps.Store, s.deps.Cal, s.deps.Env).Execute(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	msgs := make([]*domain.Message, 0, len(sent))
	for _, rem := range sent {
		msgs = append(msgs, rem.Message)
	}
	WriteJSON(w, http.StatusOK, msgs)
}
