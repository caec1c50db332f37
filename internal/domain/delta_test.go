package domain

import (
	"strings"
	"testing"
	"time"
)

func TestNewTimeDelta(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	tests := []struct {
		name      string
		target    time.Time
		wantPast  bool
		wantDays  int64
		want      Breakdown
		formatted string
	}{
		{
			name:      "same instant",
			target:    now,
			formatted: "还有0秒",
		},
		{
			name:      "sub-second past",
			target:    now.Add(-500 * time.Millisecond),
			wantPast:  true,
			formatted: "0秒前",
		},
		{
			name:      "hours minutes seconds",
			target:    now.Add(2*time.Hour + 30*time.Minute + 15*time.Second),
			want:      Breakdown{Hours: 2, Minutes: 30, Seconds: 15},
			formatted: "还有2小时30分钟15秒",
		},
		{
			name:      "days drop seconds",
			target:    now.Add(3*day + 4*time.Hour + 5*time.Minute + 6*time.Second),
			wantDays:  3,
			want:      Breakdown{Days: 3, Hours: 4, Minutes: 5, Seconds: 6},
			formatted: "还有3天4小时5分钟",
		},
		{
			name:      "months drop minutes",
			target:    now.Add(-(45*day + 5*time.Hour + 10*time.Minute)),
			wantPast:  true,
			wantDays:  45,
			want:      Breakdown{Months: 1, Days: 15, Hours: 5, Minutes: 10},
			formatted: "1个月15天5小时前",
		},
		{
			name:      "years drop hours",
			target:    now.Add(400*day + 3*time.Hour),
			wantDays:  400,
			want:      Breakdown{Years: 1, Months: 1, Days: 10, Hours: 3},
			formatted: "还有1年1个月10天",
		},
		{
			name:      "exactly 365 days keeps fixed-width remainder",
			target:    now.Add(365 * day),
			wantDays:  365,
			want:      Breakdown{Years: 1, Days: 5},
			formatted: "还有1年5天",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewTimeDelta(tt.target, now, LocaleZH)

			if got.IsPast != tt.wantPast {
				t.Errorf("IsPast = %v, want %v", got.IsPast, tt.wantPast)
			}
			if got.TotalDays != tt.wantDays {
				t.Errorf("TotalDays = %d, want %d", got.TotalDays, tt.wantDays)
			}
			if got.Breakdown != tt.want {
				t.Errorf("Breakdown = %+v, want %+v", got.Breakdown, tt.want)
			}
			if got.Formatted != tt.formatted {
				t.Errorf("Formatted = %q, want %q", got.Formatted, tt.formatted)
			}
		})
	}
}

func TestNewTimeDelta_Totals(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	target := now.Add(49*time.Hour + 30*time.Minute + 999*time.Millisecond)

	got := NewTimeDelta(target, now, LocaleZH)

	if got.Milliseconds != target.Sub(now).Milliseconds() {
		t.Errorf("Milliseconds = %d", got.Milliseconds)
	}
	if got.TotalHours != 49 {
		t.Errorf("TotalHours = %d, want 49", got.TotalHours)
	}
	if got.TotalMinutes != 49*60+30 {
		t.Errorf("TotalMinutes = %d, want %d", got.TotalMinutes, 49*60+30)
	}
}

func TestNewTimeDelta_Direction(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	future := NewTimeDelta(now.AddDate(0, 0, 10), now, LocaleZH)
	if future.IsPast || !strings.HasPrefix(future.Formatted, "还有") {
		t.Errorf("future delta = %+v", future)
	}

	past := NewTimeDelta(now.AddDate(0, 0, -10), now, LocaleZH)
	if !past.IsPast || !strings.HasSuffix(past.Formatted, "前") {
		t.Errorf("past delta = %+v", past)
	}

	en := NewTimeDelta(now.AddDate(0, 0, -10), now, LocaleEN)
	if en.Formatted != "10 days ago" {
		t.Errorf("english past = %q, want %q", en.Formatted, "10 days ago")
	}

	enFuture := NewTimeDelta(now.Add(26*time.Hour), now, LocaleEN)
	if enFuture.Formatted != "still 1 days 2 hours" {
		t.Errorf("english future = %q", enFuture.Formatted)
	}
}

func TestLocaleByName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"en", "en"},
		{"en-US", "en"},
		{"zh", "zh"},
		{"", "zh"},
		{"fr", "zh"},
	}
	for _, tt := range tests {
		if got := LocaleByName(tt.in).Name; got != tt.want {
			t.Errorf("LocaleByName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
