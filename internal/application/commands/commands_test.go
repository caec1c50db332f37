package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiguang/internal/adapters/clock"
	"shiguang/internal/adapters/lunar"
	"shiguang/internal/adapters/password"
	"shiguang/internal/application"
	"shiguang/internal/application/cascade"
	"shiguang/internal/domain"
)

var testNow = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func testEnv(clk *clock.Fixed) cascade.Env {
	return cascade.Env{Clock: clk, Location: time.UTC, Locale: domain.LocaleZH}
}

func addEvent(t *testing.T, store *memStore, clk *clock.Fixed, e domain.Event) *domain.Event {
	t.Helper()
	res, err := NewAddEventCommand(store, lunar.New(), clk, e).Execute(context.Background())
	require.NoError(t, err)
	return res.Event
}

func TestAddEventCommand_Validate(t *testing.T) {
	tests := []struct {
		name  string
		event domain.Event
		field string
	}{
		{
			name:  "missing title",
			event: domain.Event{Title: "  ", Date: domain.Solar(2024, 6, 1)},
			field: "title",
		},
		{
			name:  "nonexistent date",
			event: domain.Event{Title: "生日", Date: domain.Solar(2023, 2, 29)},
			field: "date",
		},
		{
			name:  "missing leap month",
			event: domain.Event{Title: "生日", Date: domain.Lunar(2024, -2, 1)},
			field: "date",
		},
		{
			name:  "unknown category",
			event: domain.Event{Title: "生日", Date: domain.Solar(2024, 6, 1), Category: "购物"},
			field: "category",
		},
		{
			name:  "unknown type",
			event: domain.Event{Title: "生日", Date: domain.Solar(2024, 6, 1), Type: "weekly"},
			field: "type",
		},
		{
			name:  "unknown reminder",
			event: domain.Event{Title: "生日", Date: domain.Solar(2024, 6, 1), Reminder: "2h"},
			field: "reminder",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			_, err := NewAddEventCommand(store, lunar.New(), clock.NewFixed(testNow), tt.event).Execute(context.Background())
			require.Error(t, err)

			var valErr *application.ValidationError
			require.True(t, errors.As(err, &valErr), "expected ValidationError, got %T", err)
			assert.Equal(t, tt.field, valErr.Field)
			assert.Empty(t, store.events)
		})
	}
}

func TestAddEventCommand_Execute(t *testing.T) {
	store := newMemStore()
	clk := clock.NewFixed(testNow)

	e := addEvent(t, store, clk, domain.Event{Title: " 毕业旅行 ", Date: domain.Solar(2024, 7, 1)})

	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "毕业旅行", e.Title)
	assert.Equal(t, testNow, e.CreatedAt)
	assert.Equal(t, domain.DefaultCategory, e.Category)
	assert.Equal(t, domain.EventCountdown, e.Type)
	assert.Equal(t, domain.ReminderNone, e.Reminder)

	stored, err := store.GetEvent(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Equal(t, e.Title, stored.Title)
}

func TestUpdateEventCommand(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	clk := clock.NewFixed(testNow)
	e := addEvent(t, store, clk, domain.Event{Title: "见面", Date: domain.Solar(2024, 7, 1)})

	title := "第一次见面"
	kind := domain.EventAnniversary
	res, err := NewUpdateEventCommand(store, lunar.New(), e.ID, EventPatch{Title: &title, Type: &kind}).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, title, res.Event.Title)
	assert.Equal(t, domain.EventAnniversary, res.Event.Type)
	assert.Equal(t, e.Date, res.Event.Date)

	bad := domain.Lunar(2024, -2, 1)
	_, err = NewUpdateEventCommand(store, lunar.New(), e.ID, EventPatch{Date: &bad}).Execute(ctx)
	require.Error(t, err)
	stored, _ := store.GetEvent(ctx, e.ID)
	assert.Equal(t, domain.Solar(2024, 7, 1), stored.Date)

	_, err = NewUpdateEventCommand(store, lunar.New(), "missing", EventPatch{Title: &title}).Execute(ctx)
	assert.ErrorIs(t, err, application.ErrNotFound)
}

func TestDeleteEventCommand(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	e := addEvent(t, store, clock.NewFixed(testNow), domain.Event{Title: "搬家", Date: domain.Solar(2024, 8, 1)})

	_, err := NewDeleteEventCommand(store, e.ID).Execute(ctx)
	require.NoError(t, err)
	assert.Empty(t, store.events)

	_, err = NewDeleteEventCommand(store, e.ID).Execute(ctx)
	assert.ErrorIs(t, err, application.ErrNotFound)

	_, err = NewDeleteEventCommand(store, "").Execute(ctx)
	var valErr *application.ValidationError
	assert.True(t, errors.As(err, &valErr))
}

func TestListEventsCommand_SortsByNextDue(t *testing.T) {
	store := newMemStore()
	clk := clock.NewFixed(testNow)

	addEvent(t, store, clk, domain.Event{Title: "old", Date: domain.Solar(2020, 1, 1)})
	addEvent(t, store, clk, domain.Event{Title: "later", Date: domain.Solar(2024, 6, 10)})
	addEvent(t, store, clk, domain.Event{Title: "soon", Date: domain.Solar(2024, 6, 3)})

	statuses, err := NewListEventsCommand(store, lunar.New(), testEnv(clk), domain.EventFilter{}).Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, statuses, 3)

	var titles []string
	for _, st := range statuses {
		titles = append(titles, st.Event.Title)
	}
	assert.Equal(t, []string{"soon", "later", "old"}, titles)
	assert.False(t, statuses[0].Delta.IsPast)
	assert.True(t, statuses[2].Delta.IsPast)
}

func TestEventStatusCommand_Anniversary(t *testing.T) {
	store := newMemStore()
	clk := clock.NewFixed(testNow)
	e := addEvent(t, store, clk, domain.Event{
		Title: "结婚纪念日",
		Date:  domain.Solar(2020, 5, 20),
		Type:  domain.EventAnniversary,
	})

	st, err := NewEventStatusCommand(store, lunar.New(), testEnv(clk), e.ID).Execute(context.Background())
	require.NoError(t, err)

	require.NotNil(t, st.Next)
	assert.Equal(t, domain.Solar(2025, 5, 20), st.Next.Date)
	assert.True(t, st.Delta.IsPast)
	assert.Contains(t, st.Summary, " · ")
	assert.Contains(t, st.Summary, st.Next.Formatted)
}

func TestDueRemindersCommand(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	clk := clock.NewFixed(testNow)

	addEvent(t, store, clk, domain.Event{Title: "考试", Date: domain.Solar(2024, 6, 3), Reminder: domain.ReminderThree})
	addEvent(t, store, clk, domain.Event{Title: "远方", Date: domain.Solar(2024, 6, 20), Reminder: domain.ReminderWeek})
	addEvent(t, store, clk, domain.Event{Title: "安静", Date: domain.Solar(2024, 6, 1)})
	addEvent(t, store, clk, domain.Event{
		Title:    "妈妈生日",
		Date:     domain.Solar(1965, 6, 1),
		Type:     domain.EventAnniversary,
		Reminder: domain.ReminderSameDay,
	})

	cmd := NewDueRemindersCommand(store, lunar.New(), testEnv(clk))

	sent, err := cmd.Execute(ctx)
	require.NoError(t, err)
	require.Len(t, sent, 2)

	byTitle := map[string]Reminder{}
	for _, r := range sent {
		byTitle[r.Event.Title] = r
		require.NotNil(t, r.Message)
		assert.Equal(t, domain.MessageEventReminder, r.Message.Type)
	}
	assert.Equal(t, 2, byTitle["考试"].DaysTo)
	assert.Equal(t, 0, byTitle["妈妈生日"].DaysTo)
	assert.Equal(t, domain.Solar(2024, 6, 1), byTitle["妈妈生日"].Due)
	assert.Contains(t, byTitle["妈妈生日"].Message.Content, "今天")

	again, err := cmd.Execute(ctx)
	require.NoError(t, err)
	assert.Empty(t, again)

	unread, err := store.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, unread)
}

func TestDueRemindersCommand_LunarAnniversary(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	// 2024-09-16 is lunar 2024-08-14, the day before mid-autumn
	clk := clock.NewFixed(time.Date(2024, 9, 16, 8, 0, 0, 0, time.UTC))

	addEvent(t, store, clk, domain.Event{
		Title:    "中秋",
		Date:     domain.Lunar(2000, 8, 15),
		Type:     domain.EventAnniversary,
		Reminder: domain.ReminderOneDay,
	})

	sent, err := NewDueRemindersCommand(store, lunar.New(), testEnv(clk)).Execute(ctx)
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, domain.Solar(2024, 9, 17), sent[0].Due)
	assert.Equal(t, 1, sent[0].DaysTo)
}

func TestDueRemindersCommand_DaylightSaving(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	ctx := context.Background()
	store := newMemStore()
	// clocks spring forward on 2024-03-10, so the day is 23 hours long
	clk := clock.NewFixed(time.Date(2024, 3, 10, 9, 0, 0, 0, ny))
	env := cascade.Env{Clock: clk, Location: ny, Locale: domain.LocaleZH}

	addEvent(t, store, clk, domain.Event{Title: "明天", Date: domain.Solar(2024, 3, 11), Reminder: domain.ReminderSameDay})
	addEvent(t, store, clk, domain.Event{Title: "后天", Date: domain.Solar(2024, 3, 12), Reminder: domain.ReminderOneDay})

	sent, err := NewDueRemindersCommand(store, lunar.New(), env).Execute(ctx)
	require.NoError(t, err)
	assert.Empty(t, sent)

	clk.Set(time.Date(2024, 3, 11, 9, 0, 0, 0, ny))
	sent, err = NewDueRemindersCommand(store, lunar.New(), env).Execute(ctx)
	require.NoError(t, err)
	require.Len(t, sent, 2)

	byTitle := map[string]Reminder{}
	for _, r := range sent {
		byTitle[r.Event.Title] = r
	}
	assert.Equal(t, 0, byTitle["明天"].DaysTo)
	assert.Contains(t, byTitle["明天"].Message.Content, "今天是")
	assert.Equal(t, 1, byTitle["后天"].DaysTo)
}

func TestMessageCommands(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	clk := clock.NewFixed(testNow)

	_, err := NewAddMessageCommand(store, clk, domain.Message{Title: ""}).Execute(ctx)
	require.Error(t, err)

	first, err := NewAddMessageCommand(store, clk, domain.Message{Title: "小红更新了相册"}).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.MessageFriendUpdate, first.Type)

	clk.Advance(time.Minute)
	second, err := NewAddMessageCommand(store, clk, domain.Message{Title: "邀请", Type: domain.MessageInvitation}).Execute(ctx)
	require.NoError(t, err)

	feed, err := NewListMessagesCommand(store).Execute(ctx)
	require.NoError(t, err)
	require.Len(t, feed.Messages, 2)
	assert.Equal(t, second.ID, feed.Messages[0].ID)
	assert.Equal(t, 2, feed.Unread)

	require.NoError(t, NewMarkMessageReadCommand(store, first.ID).Execute(ctx))
	feed, err = NewListMessagesCommand(store).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, feed.Unread)

	err = NewMarkMessageReadCommand(store, "missing").Execute(ctx)
	assert.ErrorIs(t, err, application.ErrNotFound)
}

func authDeps(store *memStore) AuthDeps {
	return AuthDeps{
		Users:    store,
		Settings: store,
		Hasher:   password.NewBcrypt(4),
		Clock:    clock.NewFixed(testNow),
	}
}

func TestRegisterCommand_Validate(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		email    string
		password string
		wantErr  bool
	}{
		{"valid", "小明", "ming@example.com", "secret1", false},
		{"missing name", "", "ming@example.com", "secret1", true},
		{"bad email", "小明", "ming", "secret1", true},
		{"short password", "小明", "ming@example.com", "12345", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewRegisterCommand(AuthDeps{}, tt.userName, tt.email, tt.password).Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAuthFlow(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	deps := authDeps(store)

	_, err := NewCurrentUserCommand(store, store).Execute(ctx)
	assert.ErrorIs(t, err, application.ErrUnauthorized)

	u, err := NewRegisterCommand(deps, "小明", " Ming@Example.com ", "secret1").Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ming@example.com", u.Email)
	assert.Equal(t, []string{domain.InitialBadge}, u.Badges)
	assert.NotEqual(t, "secret1", u.PasswordHash)

	current, err := NewCurrentUserCommand(store, store).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, u.ID, current.ID)

	_, err = NewRegisterCommand(deps, "小明", "ming@example.com", "another1").Execute(ctx)
	assert.ErrorIs(t, err, application.ErrAlreadyExists)

	require.NoError(t, NewLogoutCommand(store).Execute(ctx))
	_, err = NewCurrentUserCommand(store, store).Execute(ctx)
	assert.ErrorIs(t, err, application.ErrUnauthorized)

	_, err = NewLoginCommand(deps, "ming@example.com", "wrong-pass").Execute(ctx)
	var authErr *application.AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, "wrong password", authErr.Reason)

	_, err = NewLoginCommand(deps, "nobody@example.com", "secret1").Execute(ctx)
	assert.ErrorIs(t, err, application.ErrUnauthorized)

	logged, err := NewLoginCommand(deps, "MING@example.com", "secret1").Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, u.ID, logged.ID)
}

func TestSettingsCommands(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()

	s, err := NewGetSettingsCommand(store).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), s)

	s, err = NewUpdateSettingsCommand(store, "dark", "", "en").Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeDark, s.Theme)
	assert.Equal(t, domain.DefaultSettings().PrimaryColor, s.PrimaryColor)
	assert.Equal(t, "en", s.Locale)

	tests := []struct {
		name                 string
		theme, color, locale string
		field                string
	}{
		{"bad theme", "sepia", "", "", "theme"},
		{"bad color", "", "purple", "", "primaryColor"},
		{"bad locale", "", "", "fr", "locale"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewUpdateSettingsCommand(store, tt.theme, tt.color, tt.locale).Execute(ctx)
			var valErr *application.ValidationError
			require.True(t, errors.As(err, &valErr))
			assert.Equal(t, tt.field, valErr.Field)
		})
	}
}

func TestRewardsCommand(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	clk := clock.NewFixed(testNow)

	u, err := NewRegisterCommand(authDeps(store), "小明", "ming@example.com", "secret1").Execute(ctx)
	require.NoError(t, err)

	addEvent(t, store, clk, domain.Event{Title: "mine", Date: domain.Solar(2024, 7, 1), OwnerID: u.ID})
	addEvent(t, store, clk, domain.Event{Title: "other", Date: domain.Solar(2024, 7, 1), OwnerID: "someone-else"})

	p, err := NewRewardsCommand(store, store, store, clk).Execute(ctx)
	require.NoError(t, err)
	require.NotNil(t, p.User)
	assert.Equal(t, u.ID, p.User.ID)
	assert.Equal(t, 1, p.ActivityLevel)
	assert.Contains(t, p.Badges, "新手入门")

	require.NoError(t, NewLogoutCommand(store).Execute(ctx))
	p, err = NewRewardsCommand(store, store, store, clk).Execute(ctx)
	require.NoError(t, err)
	assert.Nil(t, p.User)
	assert.Equal(t, 2, p.ActivityLevel)
}
