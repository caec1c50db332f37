// Package httpapi serves the event store and the calendar tools as a JSON
// API.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"shiguang/internal/application/cascade"
	"shiguang/internal/application/commands"
	"shiguang/internal/ports"
)

// Deps are the collaborators behind the handlers. Env.Clock must be set.
type Deps struct {
	Store  ports.Store
	Cal    ports.Calendar
	Env    cascade.Env
	Hasher ports.PasswordHasher
	// DBPath is watched for the change stream; empty disables it.
	DBPath    string
	YearStart int
	YearEnd   int
}

// Server routes API requests.
type Server struct {
	deps   Deps
	logger *zap.Logger
	router *mux.Router
}

// New builds the router.
func New(deps Deps, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{deps: deps, logger: logger, router: mux.NewRouter()}
	s.routes()
	return s
}

// Handler returns the router wrapped in request logging.
func (s *Server) Handler() http.Handler {
	return logRequest(s.logger, s.router)
}

func (s *Server) routes() {
	r := s.router
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		WriteMessage(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		WriteMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Path("/healthcheck").HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	api := r.PathPrefix("/api").Subrouter()

	api.Path("/events").HandlerFunc(s.listEvents).Methods(http.MethodGet)
	api.Path("/events").HandlerFunc(s.createEvent).Methods(http.MethodPost)
	api.Path("/events/{id}").HandlerFunc(s.getEvent).Methods(http.MethodGet)
	api.Path("/events/{id}").HandlerFunc(s.updateEvent).Methods(http.MethodPatch)
	api.Path("/events/{id}").HandlerFunc(s.deleteEvent).Methods(http.MethodDelete)
	api.Path("/events/{id}/status").HandlerFunc(s.eventStatus).Methods(http.MethodGet)
	api.Path("/reminders/run").HandlerFunc(s.runReminders).Methods(http.MethodPost)

	api.Path("/calendar/{kind:solar|lunar}/options").HandlerFunc(s.calendarOptions).Methods(http.MethodGet)
	api.Path("/calendar/convert").HandlerFunc(s.convertDate).Methods(http.MethodGet)
	api.Path("/calendar/next").HandlerFunc(s.nextOccurrence).Methods(http.MethodGet)
	api.Path("/calendar/countdown").HandlerFunc(s.countdown).Methods(http.MethodGet)
	api.Path("/calendar/almanac").HandlerFunc(s.almanac).Methods(http.MethodGet)

	api.Path("/messages").HandlerFunc(s.listMessages).Methods(http.MethodGet)
	api.Path("/messages").HandlerFunc(s.addMessage).Methods(http.MethodPost)
	api.Path("/messages/{id}/read").HandlerFunc(s.markMessageRead).Methods(http.MethodPost)

	api.Path("/auth/register").HandlerFunc(s.register).Methods(http.MethodPost)
	api.Path("/auth/login").HandlerFunc(s.login).Methods(http.MethodPost)
	api.Path("/auth/logout").HandlerFunc(s.logout).Methods(http.MethodPost)
	api.Path("/auth/me").HandlerFunc(s.currentUser).Methods(http.MethodGet)

	api.Path("/settings").HandlerFunc(s.getSettings).Methods(http.MethodGet)
	api.Path("/settings").HandlerFunc(s.updateSettings).Methods(http.MethodPut)
	api.Path("/rewards").HandlerFunc(s.rewards).Methods(http.MethodGet)

	r.Path(streamPath).HandlerFunc(s.stream).Methods(http.MethodGet)
}

// ListenAndServe runs the server until ctx is cancelled, then shuts it
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	s.logger.Info("server listening", zap.String("addr", addr))

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}

func (s *Server) authDeps() commands.AuthDeps {
	return commands.AuthDeps{
		Users:    s.deps.Store,
		Settings: s.deps.Store,
		Hasher:   s.deps.Hasher,
		Clock:    s.deps.Env.Clock,
	}
}

// fail writes err as a JSON message, logging errors that are not the
// client's fault.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if code := statusFor(err); code != 0 {
		WriteMessage(w, code, err.Error())
		return
	}
	s.logger.Error("request failed", zap.String("uri", r.RequestURI), zap.Error(err))
	OurFault(w)
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return badRequest("body", fmt.Sprintf("invalid JSON: %v", err))
	}
	return nil
}
