package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"shiguang/internal/application"
	"shiguang/internal/application/cascade"
	"shiguang/internal/domain"
	"shiguang/internal/ports"
)

// EventResult contains the result of an event mutation
type EventResult struct {
	Event   *domain.Event
	Message string
}

// AddEventCommand records a new countdown or anniversary
type AddEventCommand struct {
	repo  ports.EventRepository
	cal   ports.Calendar
	clock ports.Clock
	Event domain.Event
}

// NewAddEventCommand creates a new AddEventCommand
func NewAddEventCommand(repo ports.EventRepository, cal ports.Calendar, clock ports.Clock, e domain.Event) *AddEventCommand {
	return &AddEventCommand{repo: repo, cal: cal, clock: clock, Event: e}
}

// Validate checks the event fields and that its date exists
func (c *AddEventCommand) Validate() error {
	return validateEvent(c.cal, &c.Event)
}

// Execute runs the add event command
func (c *AddEventCommand) Execute(ctx context.Context) (*EventResult, error) {
	normalizeEvent(&c.Event)
	if err := c.Validate(); err != nil {
		return nil, err
	}

	e := c.Event
	e.ID = uuid.NewString()
	e.CreatedAt = c.clock.Now()

	if err := c.repo.CreateEvent(ctx, &e); err != nil {
		return nil, fmt.Errorf("failed to add event: %w", err)
	}

	return &EventResult{
		Event:   &e,
		Message: fmt.Sprintf("Added %s (%s)", e.Title, e.Date),
	}, nil
}

// EventPatch holds the fields to change; nil fields are left alone
type EventPatch struct {
	Title        *string
	Date         *domain.CalendarDate
	Type         *domain.EventType
	Category     *string
	Description  *string
	CoverImage   *string
	Reminder     *domain.Reminder
	Participants *[]string
	IsShared     *bool
}

// UpdateEventCommand applies a partial update to an event
type UpdateEventCommand struct {
	repo    ports.EventRepository
	cal     ports.Calendar
	EventID string
	Patch   EventPatch
}

// NewUpdateEventCommand creates a new UpdateEventCommand
func NewUpdateEventCommand(repo ports.EventRepository, cal ports.Calendar, eventID string, patch EventPatch) *UpdateEventCommand {
	return &UpdateEventCommand{repo: repo, cal: cal, EventID: eventID, Patch: patch}
}

// Validate checks the update operation is valid
func (c *UpdateEventCommand) Validate() error {
	return application.ValidateRequired("eventID", c.EventID)
}

// Execute runs the update event command
func (c *UpdateEventCommand) Execute(ctx context.Context) (*EventResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	e, err := c.repo.GetEvent(ctx, c.EventID)
	if err != nil {
		return nil, fmt.Errorf("failed to load event %s: %w", c.EventID, err)
	}

	p := c.Patch
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Type != nil {
		e.Type = *p.Type
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.CoverImage != nil {
		e.CoverImage = *p.CoverImage
	}
	if p.Reminder != nil {
		e.Reminder = *p.Reminder
	}
	if p.Participants != nil {
		e.Participants = *p.Participants
	}
	if p.IsShared != nil {
		e.IsShared = *p.IsShared
	}

	normalizeEvent(e)
	if err := validateEvent(c.cal, e); err != nil {
		return nil, err
	}

	if err := c.repo.UpdateEvent(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to update event %s: %w", c.EventID, err)
	}

	return &EventResult{
		Event:   e,
		Message: fmt.Sprintf("Updated %s", e.Title),
	}, nil
}

// DeleteEventCommand removes an event
type DeleteEventCommand struct {
	repo    ports.EventRepository
	EventID string
}

// NewDeleteEventCommand creates a new DeleteEventCommand
func NewDeleteEventCommand(repo ports.EventRepository, eventID string) *DeleteEventCommand {
	return &DeleteEventCommand{repo: repo, EventID: eventID}
}

// Validate checks if the delete operation is valid
func (c *DeleteEventCommand) Validate() error {
	return application.ValidateRequired("eventID", c.EventID)
}

// Execute runs the delete event command
func (c *DeleteEventCommand) Execute(ctx context.Context) (*EventResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := c.repo.DeleteEvent(ctx, c.EventID); err != nil {
		return nil, fmt.Errorf("failed to delete %s: %w", c.EventID, err)
	}

	return &EventResult{Message: fmt.Sprintf("Deleted %s", c.EventID)}, nil
}

// EventStatusCommand loads an event and computes its live status
type EventStatusCommand struct {
	repo    ports.EventRepository
	cal     ports.Calendar
	env     cascade.Env
	EventID string
}

// NewEventStatusCommand creates a new EventStatusCommand
func NewEventStatusCommand(repo ports.EventRepository, cal ports.Calendar, env cascade.Env, eventID string) *EventStatusCommand {
	return &EventStatusCommand{repo: repo, cal: cal, env: env, EventID: eventID}
}

// Execute runs the event status command
func (c *EventStatusCommand) Execute(ctx context.Context) (*domain.EventStatus, error) {
	if err := application.ValidateRequired("eventID", c.EventID); err != nil {
		return nil, err
	}

	e, err := c.repo.GetEvent(ctx, c.EventID)
	if err != nil {
		return nil, fmt.Errorf("failed to load event %s: %w", c.EventID, err)
	}

	st, err := Status(c.cal, c.env, e)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// ListEventsCommand lists events with their live status, soonest first
type ListEventsCommand struct {
	repo   ports.EventRepository
	cal    ports.Calendar
	env    cascade.Env
	Filter domain.EventFilter
}

// NewListEventsCommand creates a new ListEventsCommand
func NewListEventsCommand(repo ports.EventRepository, cal ports.Calendar, env cascade.Env, filter domain.EventFilter) *ListEventsCommand {
	return &ListEventsCommand{repo: repo, cal: cal, env: env, Filter: filter}
}

// Execute runs the list events command
func (c *ListEventsCommand) Execute(ctx context.Context) ([]domain.EventStatus, error) {
	events, err := c.repo.ListEvents(ctx, c.Filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	statuses := make([]domain.EventStatus, 0, len(events))
	for _, e := range events {
		st, err := Status(c.cal, c.env, e)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, st)
	}

	SortByNextDue(statuses)
	return statuses, nil
}

func normalizeEvent(e *domain.Event) {
	e.Title = strings.TrimSpace(e.Title)
	if e.Type == "" {
		e.Type = domain.EventCountdown
	}
	if e.Category == "" {
		e.Category = domain.DefaultCategory
	}
	if e.Reminder == "" {
		e.Reminder = domain.ReminderNone
	}
}

func validateEvent(cal ports.Calendar, e *domain.Event) error {
	if err := application.ValidateRequired("title", e.Title); err != nil {
		return err
	}
	if err := application.ValidateDate(cal, "date", e.Date); err != nil {
		return err
	}
	if e.Type != domain.EventCountdown && e.Type != domain.EventAnniversary {
		return &application.ValidationError{
			Field:   "type",
			Message: fmt.Sprintf("unknown event type: %s", e.Type),
		}
	}
	if !domain.IsCategory(e.Category) {
		return &application.ValidationError{
			Field:   "category",
			Message: fmt.Sprintf("unknown category: %s (expected one of %s)", e.Category, strings.Join(domain.Categories, ", ")),
		}
	}
	if e.Reminder.LeadDays() < 0 && e.Reminder != domain.ReminderNone {
		return &application.ValidationError{
			Field:   "reminder",
			Message: fmt.Sprintf("unknown reminder: %s", e.Reminder),
		}
	}
	return nil
}
