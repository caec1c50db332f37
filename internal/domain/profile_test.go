package domain

import (
	"testing"
	"time"
)

func eventsCreatedOn(days ...time.Time) []*Event {
	events := make([]*Event, len(days))
	for i, d := range days {
		events[i] = &Event{ID: d.Format("20060102") + string(rune('a'+i)), CreatedAt: d}
	}
	return events
}

func TestLongestStreak(t *testing.T) {
	d := func(day int) time.Time { return time.Date(2024, 3, day, 10, 0, 0, 0, time.UTC) }

	tests := []struct {
		name   string
		events []*Event
		want   int
	}{
		{"none", nil, 0},
		{"single", eventsCreatedOn(d(1)), 1},
		{"same day twice", eventsCreatedOn(d(1), d(1)), 1},
		{"three in a row", eventsCreatedOn(d(3), d(1), d(2)), 3},
		{"gap resets", eventsCreatedOn(d(1), d(2), d(4), d(5), d(6), d(7)), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LongestStreak(tt.events, time.UTC); got != tt.want {
				t.Errorf("LongestStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBuildProfile(t *testing.T) {
	now := time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)
	user := &User{
		ID:       "u1",
		Name:     "小明",
		JoinDate: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		Badges:   []string{InitialBadge},
	}

	var events []*Event
	for i := 0; i < 12; i++ {
		events = append(events, &Event{
			ID:        string(rune('a' + i)),
			CreatedAt: now.AddDate(0, 0, -i),
		})
	}
	events[0].Participants = []string{"阿花", "阿草"}
	events[1].Participants = []string{"阿花", "阿木"}

	p := BuildProfile(user, events, now)

	if p.TotalDays != 30 {
		t.Errorf("TotalDays = %d, want 30", p.TotalDays)
	}
	if p.ActivityLevel != 10 {
		t.Errorf("ActivityLevel = %d, want 10", p.ActivityLevel)
	}
	if p.Streak != 12 {
		t.Errorf("Streak = %d, want 12", p.Streak)
	}

	want := map[string]struct {
		progress int
		unlocked bool
	}{
		"first_event":  {100, true},
		"ten_events":   {100, true},
		"social":       {100, true},
		"streak_30":    {40, false},
		"fifty_events": {24, false},
	}
	if len(p.Achievements) != len(want) {
		t.Fatalf("got %d achievements, want %d", len(p.Achievements), len(want))
	}
	for _, a := range p.Achievements {
		w, ok := want[a.ID]
		if !ok {
			t.Errorf("unexpected achievement %s", a.ID)
			continue
		}
		if a.Progress != w.progress || a.Unlocked != w.unlocked {
			t.Errorf("%s: progress=%d unlocked=%v, want %d %v", a.ID, a.Progress, a.Unlocked, w.progress, w.unlocked)
		}
	}

	wantBadges := []string{InitialBadge, "新手入门", "记录达人", "社交达人"}
	if len(p.Badges) != len(wantBadges) {
		t.Fatalf("Badges = %v, want %v", p.Badges, wantBadges)
	}
	for i, b := range wantBadges {
		if p.Badges[i] != b {
			t.Errorf("Badges[%d] = %q, want %q", i, p.Badges[i], b)
		}
	}
}

func TestBuildProfile_TotalDaysAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// 2024-03-10 is 23 hours long in New York
	user := &User{ID: "u1", JoinDate: time.Date(2024, 3, 10, 8, 0, 0, 0, ny)}
	now := time.Date(2024, 3, 11, 9, 0, 0, 0, ny)

	if got := BuildProfile(user, nil, now).TotalDays; got != 1 {
		t.Errorf("TotalDays = %d, want 1", got)
	}
}

func TestBuildProfile_NoUser(t *testing.T) {
	p := BuildProfile(nil, nil, time.Now())
	if p.TotalDays != 0 || p.ActivityLevel != 0 || len(p.Badges) != 0 {
		t.Errorf("unexpected profile for anonymous user: %+v", p)
	}
	for _, a := range p.Achievements {
		if a.Unlocked || a.Progress != 0 {
			t.Errorf("%s should be locked at 0%%", a.ID)
		}
	}
}
