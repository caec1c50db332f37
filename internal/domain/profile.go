package domain

import (
	"sort"
	"time"
)

// InitialBadge is granted on registration.
const InitialBadge = "新手"

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

// User is a registered account. PasswordHash never leaves the store layer
// in responses.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Avatar       string    `json:"avatar,omitempty"`
	PasswordHash string    `json:"-"`
	JoinDate     time.Time `json:"joinDate"`
	Badges       []string  `json:"badges"`
}

// Achievement is one entry of the rewards page.
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Progress    int    `json:"progress"`
	Unlocked    bool   `json:"unlocked"`
}

// Profile is the computed rewards view of a user.
type Profile struct {
	User          *User         `json:"user"`
	TotalDays     int           `json:"totalDays"`
	ActivityLevel int           `json:"activityLevel"`
	Streak        int           `json:"streak"`
	Badges        []string      `json:"badges"`
	Achievements  []Achievement `json:"achievements"`
}

type achievementRule struct {
	id, name, description string
	target                int
	measure               func(s activity) int
}

type activity struct {
	events       int
	participants int
	streak       int
}

var achievementRules = []achievementRule{
	{"first_event", "新手入门", "创建第一个时光记录", 1, func(a activity) int { return a.events }},
	{"ten_events", "记录达人", "创建10个时光记录", 10, func(a activity) int { return a.events }},
	{"social", "社交达人", "邀请3位好友参与", 3, func(a activity) int { return a.participants }},
	{"streak_30", "时光守护者", "连续记录30天", 30, func(a activity) int { return a.streak }},
	{"fifty_events", "回忆收藏家", "记录50个重要时刻", 50, func(a activity) int { return a.events }},
}

// BuildProfile computes achievements and stats for user from their events.
func BuildProfile(user *User, events []*Event, now time.Time) Profile {
	loc := now.Location()
	a := activity{
		events:       len(events),
		participants: countParticipants(events),
		streak:       LongestStreak(events, loc),
	}

	p := Profile{
		User:   user,
		Streak: a.streak,
	}

	badges := map[string]bool{}
	if user != nil {
		for _, b := range user.Badges {
			badges[b] = true
			p.Badges = append(p.Badges, b)
		}
		if !user.JoinDate.IsZero() {
			joined := SolarFromTime(user.JoinDate.In(loc))
			p.TotalDays = DaysBetween(joined, SolarFromTime(now))
		}
	}

	for _, r := range achievementRules {
		got := r.measure(a)
		progress := got * 100 / r.target
		if progress > 100 {
			progress = 100
		}
		ach := Achievement{
			ID:          r.id,
			Name:        r.name,
			Description: r.description,
			Progress:    progress,
			Unlocked:    got >= r.target,
		}
		p.Achievements = append(p.Achievements, ach)
		if ach.Unlocked && !badges[r.name] {
			badges[r.name] = true
			p.Badges = append(p.Badges, r.name)
		}
	}

	cutoff := now.AddDate(0, 0, -30)
	for _, e := range events {
		if e.CreatedAt.After(cutoff) {
			p.ActivityLevel++
		}
	}
	if p.ActivityLevel > 10 {
		p.ActivityLevel = 10
	}

	return p
}

func countParticipants(events []*Event) int {
	seen := map[string]bool{}
	for _, e := range events {
		for _, name := range e.Participants {
			seen[name] = true
		}
	}
	return len(seen)
}

// LongestStreak returns the longest run of consecutive calendar days on
// which at least one event was created.
func LongestStreak(events []*Event, loc *time.Location) int {
	if len(events) == 0 {
		return 0
	}

	days := map[time.Time]bool{}
	for _, e := range events {
		days[SolarFromTime(e.CreatedAt.In(loc)).Midnight(loc)] = true
	}

	sorted := make([]time.Time, 0, len(days))
	for d := range days {
		sorted = append(sorted, d)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	best, run := 1, 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].AddDate(0, 0, 1).Equal(sorted[i]) {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return best
}
