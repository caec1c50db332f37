package httpapi

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiguang/internal/adapters/clock"
	"shiguang/internal/adapters/lunar"
	"shiguang/internal/adapters/password"
	"shiguang/internal/adapters/sqlite"
	"shiguang/internal/application/cascade"
	"shiguang/internal/application/commands"
	"shiguang/internal/domain"
)

func newTestServer(t *testing.T) (*Server, *sqlite.Store) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "api.db")
	store, err := sqlite.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return New(Deps{
		Store: store,
		Cal:   lunar.New(),
		Env: cascade.Env{
			Clock:    clock.NewFixed(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)),
			Location: time.UTC,
			Locale:   domain.LocaleZH,
		},
		Hasher: password.NewBcrypt(4),
		DBPath: dbPath,
	}, nil), store
}

func do(t *testing.T, s *Server, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthcheck(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/healthcheck", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestEventLifecycle(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/events", map[string]any{
		"title":    "中秋",
		"date":     "2024-08-15",
		"calendar": "lunar",
		"type":     "anniversary",
		"category": "节日",
		"reminder": "3d",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[domain.Event](t, rec)
	assert.Equal(t, domain.Lunar(2024, 8, 15), created.Date)

	rec = do(t, s, http.MethodGet, "/api/events/"+created.ID+"/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	st := decode[domain.EventStatus](t, rec)
	assert.Equal(t, domain.Solar(2024, 9, 17), st.SolarDate)
	assert.False(t, st.Delta.IsPast)

	rec = do(t, s, http.MethodPatch, "/api/events/"+created.ID, map[string]any{"title": "中秋团圆"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "中秋团圆", decode[domain.Event](t, rec).Title)

	rec = do(t, s, http.MethodGet, "/api/events?category=节日", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.EventStatus](t, rec), 1)

	rec = do(t, s, http.MethodDelete, "/api/events/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/events/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateEvent_Errors(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name string
		body any
		code int
	}{
		{"missing title", map[string]any{"date": "2024-08-15"}, http.StatusBadRequest},
		{"nonexistent date", map[string]any{"title": "x", "date": "2023-02-29"}, http.StatusBadRequest},
		{"missing leap month", map[string]any{"title": "x", "date": "L2024-闰02-01"}, http.StatusBadRequest},
		{"unknown field", map[string]any{"title": "x", "date": "2024-08-15", "color": "red"}, http.StatusBadRequest},
		{"bad reminder", map[string]any{"title": "x", "date": "2024-08-15", "reminder": "2h"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/api/events", tt.body)
			assert.Equal(t, tt.code, rec.Code, rec.Body.String())
		})
	}
}

func TestCalendarOptions(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/calendar/lunar/options?year=2023&month=-2", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	opts := decode[domain.Options](t, rec)
	assert.Equal(t, domain.Lunar(2023, -2, 1), opts.Current)
	assert.Len(t, opts.Months, 13)
	assert.Equal(t, domain.DefaultLunarStartYear, opts.Years[0].Value)

	rec = do(t, s, http.MethodGet, "/api/calendar/solar/options?year=2023&month=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	opts = decode[domain.Options](t, rec)
	assert.Len(t, opts.Days, 28)

	rec = do(t, s, http.MethodGet, "/api/calendar/lunar/options?year=2024&month=-2", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/calendar/lunar/options?year=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/calendar/julian/options", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCalendarTools(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/calendar/convert?date=2024-02-10", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	conv := decode[conversion](t, rec)
	assert.Equal(t, domain.Lunar(2024, 1, 1), conv.To)

	rec = do(t, s, http.MethodGet, "/api/calendar/next?calendar=lunar&month=8&day=15", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	occ := decode[domain.Occurrence](t, rec)
	assert.Equal(t, 2024, occ.Year)

	rec = do(t, s, http.MethodGet, "/api/calendar/next?month=13&day=1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/calendar/countdown?date=2024-06-11", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(9), decode[domain.TimeDelta](t, rec).TotalDays)

	rec = do(t, s, http.MethodGet, "/api/calendar/almanac?date=2024-10-01", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decode[domain.Almanac](t, rec).Festivals, "国庆节")
}

func TestAuthSettingsRewards(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	creds := map[string]string{"name": "小明", "email": "ming@example.com", "password": "secret1"}
	rec = do(t, s, http.MethodPost, "/api/auth/register", creds)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "secret1")

	rec = do(t, s, http.MethodPost, "/api/auth/register", creds)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/events", map[string]any{"title": "生日", "date": "2024-07-01", "category": "生日"})
	require.Equal(t, http.StatusCreated, rec.Code)
	me := decode[domain.Event](t, rec)
	assert.NotEmpty(t, me.OwnerID)

	rec = do(t, s, http.MethodGet, "/api/rewards", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decode[domain.Profile](t, rec).Badges, "新手入门")

	rec = do(t, s, http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/auth/login", map[string]string{"email": "ming@example.com", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, s, http.MethodPut, "/api/settings", map[string]string{"theme": "dark", "primaryColor": "sky"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.ThemeDark, decode[domain.Settings](t, rec).Theme)

	rec = do(t, s, http.MethodPut, "/api/settings", map[string]string{"primaryColor": "purple"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMessagesAndReminders(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/events", map[string]any{"title": "考试", "date": "2024-06-03", "reminder": "3d"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/reminders/run", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.Message](t, rec), 1)

	rec = do(t, s, http.MethodPost, "/api/reminders/run", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]domain.Message](t, rec))

	rec = do(t, s, http.MethodGet, "/api/messages", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	feed := decode[commands.MessageFeed](t, rec)
	require.Len(t, feed.Messages, 1)
	assert.Equal(t, 1, feed.Unread)

	rec = do(t, s, http.MethodPost, "/api/messages/"+feed.Messages[0].ID+"/read", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/messages/missing/read", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStream_NotifiesOnWrite(t *testing.T) {
	s, store := newTestServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+streamPath, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Skipf("file watching unavailable: %s", resp.Status)
	}

	lines := make(chan string, 64)
	go func() {
		sc := bufio.NewScanner(resp.Body)
		for sc.Scan() {
			lines <- sc.Text()
		}
		close(lines)
	}()

	// wait for the retry preamble so the watcher is in place
	for line := range lines {
		if strings.HasPrefix(line, "retry:") {
			break
		}
	}

	require.NoError(t, store.SetSetting(ctx, "theme", "dark"))

	for {
		select {
		case line, ok := <-lines:
			require.True(t, ok, "stream closed before a change event")
			if line == "event: change" {
				return
			}
		case <-ctx.Done():
			t.Fatal("no change event received")
		}
	}
}
