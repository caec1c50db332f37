package domain

import (
	"fmt"
	"strings"
	"time"
)

// EventType distinguishes counting toward a date from counting since one.
type EventType string

const (
	EventCountdown   EventType = "countdown"
	EventAnniversary EventType = "anniversary"
)

// ParseEventType accepts the English names and the Chinese 倒数日/纪念日.
func ParseEventType(s string) (EventType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "countdown", "倒数日", "倒计时":
		return EventCountdown, nil
	case "anniversary", "纪念":
		return EventAnniversary, nil
	}
	return "", fmt.Errorf("unknown event type: %q", s)
}

// Categories offered when creating an event.
var Categories = []string{"节日", "爱情", "旅行", "工作", "学习", "生日", "纪念日", "其他"}

// DefaultCategory is used when none is given.
const DefaultCategory = "其他"

// IsCategory reports whether c is one of Categories.
func IsCategory(c string) bool {
	for _, known := range Categories {
		if known == c {
			return true
		}
	}
	return false
}

// Reminder is how long before an event a reminder fires.
type Reminder string

const (
	ReminderNone    Reminder = "none"
	ReminderSameDay Reminder = "same_day"
	ReminderOneDay  Reminder = "1d"
	ReminderThree   Reminder = "3d"
	ReminderWeek    Reminder = "1w"
	ReminderMonth   Reminder = "1m"
)

var reminderLabels = []struct {
	r     Reminder
	label string
	lead  int
}{
	{ReminderNone, "无提醒", -1},
	{ReminderSameDay, "当天", 0},
	{ReminderOneDay, "1天前", 1},
	{ReminderThree, "3天前", 3},
	{ReminderWeek, "1周前", 7},
	{ReminderMonth, "1个月前", 30},
}

// Reminders lists every reminder in menu order.
func Reminders() []Reminder {
	out := make([]Reminder, len(reminderLabels))
	for i, r := range reminderLabels {
		out[i] = r.r
	}
	return out
}

// ParseReminder accepts a key or its Chinese label.
func ParseReminder(s string) (Reminder, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ReminderNone, nil
	}
	for _, r := range reminderLabels {
		if string(r.r) == s || r.label == s {
			return r.r, nil
		}
	}
	return "", fmt.Errorf("unknown reminder: %q", s)
}

// Label returns the Chinese menu label.
func (r Reminder) Label() string {
	for _, rl := range reminderLabels {
		if rl.r == r {
			return rl.label
		}
	}
	return string(r)
}

// LeadDays returns the number of days before the event the reminder fires,
// or -1 for no reminder.
func (r Reminder) LeadDays() int {
	for _, rl := range reminderLabels {
		if rl.r == r {
			return rl.lead
		}
	}
	return -1
}

// Event is a recorded countdown or anniversary.
type Event struct {
	ID           string       `json:"id"`
	OwnerID      string       `json:"ownerId,omitempty"`
	Title        string       `json:"title"`
	Date         CalendarDate `json:"date"`
	Type         EventType    `json:"type"`
	Category     string       `json:"category"`
	Description  string       `json:"description,omitempty"`
	CoverImage   string       `json:"coverImage,omitempty"`
	Reminder     Reminder     `json:"reminder"`
	Participants []string     `json:"participants,omitempty"`
	IsShared     bool         `json:"isShared"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// EventFilter narrows ListEvents. Zero values match everything.
type EventFilter struct {
	OwnerID  string
	Category string
	Type     EventType
}

// Matches reports whether e passes the filter.
func (f EventFilter) Matches(e *Event) bool {
	if f.OwnerID != "" && e.OwnerID != f.OwnerID {
		return false
	}
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	if f.Type != "" && e.Type != f.Type {
		return false
	}
	return true
}

// EventStatus is the live view of an event relative to now.
type EventStatus struct {
	Event *Event `json:"event"`
	// Delta is the distance to the event date itself.
	Delta TimeDelta `json:"delta"`
	// Next is the next recurrence of the event's month/day; nil when it
	// cannot be resolved (lunar leap months that do not recur).
	Next *Occurrence `json:"next,omitempty"`
	// SolarDate is the event date on the solar calendar.
	SolarDate CalendarDate `json:"solarDate"`
	Summary   string       `json:"summary"`
}

// DaysUntilNext returns the whole days to the next recurrence, or to the
// event itself when it has not happened yet.
func (s EventStatus) DaysUntilNext() int64 {
	if !s.Delta.IsPast {
		return s.Delta.TotalDays
	}
	if s.Next != nil {
		return s.Next.TotalDays
	}
	return -1
}
