package commands

import (
	"context"
	"errors"
	"fmt"

	"shiguang/internal/application"
	"shiguang/internal/domain"
	"shiguang/internal/ports"
)

// RewardsCommand computes achievements and stats for the current user
type RewardsCommand struct {
	events   ports.EventRepository
	users    ports.UserRepository
	settings ports.SettingsRepository
	clock    ports.Clock
}

// NewRewardsCommand creates a new RewardsCommand
func NewRewardsCommand(events ports.EventRepository, users ports.UserRepository, settings ports.SettingsRepository, clock ports.Clock) *RewardsCommand {
	return &RewardsCommand{events: events, users: users, settings: settings, clock: clock}
}

// Execute runs the rewards command. Without a session the profile covers
// every event and has no user.
func (c *RewardsCommand) Execute(ctx context.Context) (*domain.Profile, error) {
	user, err := NewCurrentUserCommand(c.users, c.settings).Execute(ctx)
	if err != nil && !errors.Is(err, application.ErrUnauthorized) {
		return nil, err
	}

	filter := domain.EventFilter{}
	if user != nil {
		filter.OwnerID = user.ID
	}
	events, err := c.events.ListEvents(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	p := domain.BuildProfile(user, events, c.clock.Now())
	return &p, nil
}
