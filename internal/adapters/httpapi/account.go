package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"shiguang/internal/application/commands"
	"shiguang/internal/domain"
)

func (s *Server) listMessages(w http.ResponseWriter, r *http.Request) {
	feed, err := commands.NewListMessagesCommand(s.deps.Store).Execute(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, feed)
}

type messageRequest struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Avatar  string `json:"avatar"`
}

func (s *Server) addMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	m := domain.Message{
		Type:    domain.MessageType(req.Type),
		Title:   req.Title,
		Content: req.Content,
		Avatar:  req.Avatar,
	}
	created, err := commands.NewAddMessageCommand(s.deps.Store, s.deps.Env.Clock, m).Execute(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, created)
}

func (s *Server) markMessageRead(w http.ResponseWriter, r *http.Request) {
	if err := commands.NewMarkMessageReadCommand(s.deps.Store, mux.Vars(r)["id"]).Execute(r.Context()); err != nil {
		s.fail(w, r, err)
		return
	}
	WriteMessage(w, http.StatusOK, "ok")
}

type credentials struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	u, err := commands.NewRegisterCommand(s.authDeps(), req.Name, req.Email, req.Password).Execute(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, u)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	u, err := commands.NewLoginCommand(s.authDeps(), req.Email, req.Password).Execute(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, u)
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if err := commands.NewLogoutCommand(s.deps.Store).Execute(r.Context()); err != nil {
		s.fail(w, r, err)
		return
	}
	WriteMessage(w, http.StatusOK, "logged out")
}

func (s *Server) currentUser(w http.ResponseWriter, r *http.Request) {
	u, err := commands.NewCurrentUserCommand(s.deps.Store, s.deps.Store).Execute(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, u)
}

func (s *Server) getSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := commands.NewGetSettingsCommand(s.deps.Store).Execute(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, settings)
}

type settingsRequest struct {
	Theme        string `json:"theme"`
	PrimaryColor string `json:"primaryColor"`
	Locale       string `json:"locale"`
}

func (s *Server) updateSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	settings, err := commands.NewUpdateSettingsCommand(s.deps.Store, req.Theme, req.PrimaryColor, req.Locale).Execute(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, settings)
}

func (s *Server) rewards(w http.ResponseWriter, r *http.Request) {
	p, err := commands.NewRewardsCommand(s.deps.Store, s.deps.Store, s.deps.Store, s.deps.Env.Clock).Execute(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, p)
}
