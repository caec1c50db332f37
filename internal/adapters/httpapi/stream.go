package httpapi

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const streamPath = "/api/stream"

// Writes within this window are reported as one change.
const streamDebounce = 200 * time.Millisecond

// stream is a server-sent event feed that emits "change" whenever the
// database file or its WAL is written, so clients know to refetch.
func (s *Server) stream(w http.ResponseWriter, r *http.Request) {
	if s.deps.DBPath == "" || s.deps.DBPath == ":memory:" {
		WriteMessage(w, http.StatusNotImplemented, "change stream unavailable for this database")
		return
	}
	rc := http.NewResponseController(w)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		s.fail(w, r, fmt.Errorf("creating watcher: %w", err))
		return
	}
	defer watcher.Close()

	// The directory is watched because SQLite writes land in the -wal file.
	if err := watcher.Add(filepath.Dir(s.deps.DBPath)); err != nil {
		s.fail(w, r, fmt.Errorf("watching %s: %w", s.deps.DBPath, err))
		return
	}
	base := filepath.Base(s.deps.DBPath)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "retry:3000\n\n")
	_ = rc.Flush()

	s.logger.Info("stream client connected", zap.String("remote_addr", r.RemoteAddr))
	defer s.logger.Info("stream client disconnected", zap.String("remote_addr", r.RemoteAddr))

	keepalive := time.NewTicker(25 * time.Second)
	defer keepalive.Stop()

	debounce := time.NewTimer(streamDebounce)
	debounce.Stop()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !strings.HasPrefix(filepath.Base(event.Name), base) || !event.Has(fsnotify.Write) {
				continue
			}
			debounce.Reset(streamDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("stream watcher error", zap.Error(err))

		case <-debounce.C:
			if _, err := fmt.Fprintf(w, "event: change\ndata: {\"at\":%q}\n\n", time.Now().UTC().Format(time.RFC3339)); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}

		case <-keepalive.C:
			if _, err := fmt.Fprint(w, ":ping\n\n"); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}

		case <-r.Context().Done():
			return
		}
	}
}
