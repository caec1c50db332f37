package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"shiguang/internal/application/cascade"
	"shiguang/internal/domain"
	"shiguang/internal/ports"
)

// Reminder is a reminder delivered by DueRemindersCommand
type Reminder struct {
	Event   *domain.Event
	Due     domain.CalendarDate
	DaysTo  int
	Message *domain.Message
}

// DueRemindersCommand posts an event_reminder message for every event
// whose reminder window contains today. Each event occurrence is reminded
// at most once.
type DueRemindersCommand struct {
	store ports.Store
	cal   ports.Calendar
	env   cascade.Env
}

// NewDueRemindersCommand creates a new DueRemindersCommand
func NewDueRemindersCommand(store ports.Store, cal ports.Calendar, env cascade.Env) *DueRemindersCommand {
	return &DueRemindersCommand{store: store, cal: cal, env: env}
}

// Execute runs the due reminders command
func (c *DueRemindersCommand) Execute(ctx context.Context) ([]Reminder, error) {
	events, err := c.store.ListEvents(ctx, domain.EventFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	now := c.now()
	todayDate := domain.SolarFromTime(now)
	today := todayDate.Midnight(now.Location())

	var due []Reminder
	for _, e := range events {
		lead := e.Reminder.LeadDays()
		if lead < 0 {
			continue
		}
		date, ok := c.dueDate(e, today)
		if !ok {
			continue
		}
		days := domain.DaysBetween(todayDate, date)
		if days < 0 || days > lead {
			continue
		}
		due = append(due, Reminder{Event: e, Due: date, DaysTo: days})
	}
	if len(due) == 0 {
		return nil, nil
	}

	tx, err := c.store.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var sent []Reminder
	for _, r := range due {
		fresh, err := tx.MarkReminderSent(r.Event.ID, r.Due, now)
		if err != nil {
			return nil, fmt.Errorf("failed to record reminder for %s: %w", r.Event.ID, err)
		}
		if !fresh {
			continue
		}

		r.Message = &domain.Message{
			ID:        uuid.NewString(),
			Type:      domain.MessageEventReminder,
			Title:     "事件提醒",
			Content:   reminderText(r),
			Timestamp: now,
		}
		if err := tx.AddMessage(r.Message); err != nil {
			return nil, fmt.Errorf("failed to post reminder for %s: %w", r.Event.ID, err)
		}
		sent = append(sent, r)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit reminders: %w", err)
	}
	return sent, nil
}

// dueDate returns the solar date the event next falls on, counting today.
// Countdowns fall on their date once; anniversaries recur yearly.
func (c *DueRemindersCommand) dueDate(e *domain.Event, today time.Time) (domain.CalendarDate, bool) {
	if e.Type == domain.EventCountdown {
		solar, err := c.cal.ToSolar(e.Date)
		if err != nil {
			return domain.CalendarDate{}, false
		}
		return solar, true
	}

	// Resolve from just before midnight so today's occurrence is not past.
	env := c.env
	env.Clock = fixedInstant(today.Add(-time.Millisecond))
	env.Location = today.Location()

	occ, ok := cascade.NextOccurrence(c.cal, env, e.Date.Kind, e.Date.Month, e.Date.Day)
	if !ok {
		return domain.CalendarDate{}, false
	}
	solar, err := c.cal.ToSolar(occ.Date)
	if err != nil {
		return domain.CalendarDate{}, false
	}
	return solar, true
}

func (c *DueRemindersCommand) now() time.Time {
	now := time.Now()
	if c.env.Clock != nil {
		now = c.env.Clock.Now()
	}
	if c.env.Location != nil {
		now = now.In(c.env.Location)
	}
	return now
}

func reminderText(r Reminder) string {
	if r.DaysTo == 0 {
		return fmt.Sprintf("今天是「%s」", r.Event.Title)
	}
	return fmt.Sprintf("距离「%s」还有%d天（%s）", r.Event.Title, r.DaysTo, r.Due)
}
