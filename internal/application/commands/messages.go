package commands

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"shiguang/internal/application"
	"shiguang/internal/domain"
	"shiguang/internal/ports"
)

// AddMessageCommand posts a message to the feed
type AddMessageCommand struct {
	repo    ports.MessageRepository
	clock   ports.Clock
	Message domain.Message
}

// NewAddMessageCommand creates a new AddMessageCommand
func NewAddMessageCommand(repo ports.MessageRepository, clock ports.Clock, m domain.Message) *AddMessageCommand {
	return &AddMessageCommand{repo: repo, clock: clock, Message: m}
}

// Validate checks if the message is valid
func (c *AddMessageCommand) Validate() error {
	if err := application.ValidateRequired("title", c.Message.Title); err != nil {
		return err
	}
	if _, err := domain.ParseMessageType(string(c.Message.Type)); err != nil {
		return &application.ValidationError{Field: "type", Message: err.Error()}
	}
	return nil
}

// Execute runs the add message command
func (c *AddMessageCommand) Execute(ctx context.Context) (*domain.Message, error) {
	if c.Message.Type == "" {
		c.Message.Type = domain.MessageFriendUpdate
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	m := c.Message
	m.ID = uuid.NewString()
	m.Timestamp = c.clock.Now()
	m.IsRead = false

	if err := c.repo.AddMessage(ctx, &m); err != nil {
		return nil, fmt.Errorf("failed to add message: %w", err)
	}
	return &m, nil
}

// MarkMessageReadCommand marks one message as read
type MarkMessageReadCommand struct {
	repo      ports.MessageRepository
	MessageID string
}

// NewMarkMessageReadCommand creates a new MarkMessageReadCommand
func NewMarkMessageReadCommand(repo ports.MessageRepository, messageID string) *MarkMessageReadCommand {
	return &MarkMessageReadCommand{repo: repo, MessageID: messageID}
}

// Execute runs the mark message read command
func (c *MarkMessageReadCommand) Execute(ctx context.Context) error {
	if err := application.ValidateRequired("messageID", c.MessageID); err != nil {
		return err
	}
	if err := c.repo.MarkMessageRead(ctx, c.MessageID); err != nil {
		return fmt.Errorf("failed to mark %s read: %w", c.MessageID, err)
	}
	return nil
}

// MessageFeed is the message list with its unread count
type MessageFeed struct {
	Messages []*domain.Message `json:"messages"`
	Unread   int               `json:"unread"`
}

// ListMessagesCommand lists the feed, newest first
type ListMessagesCommand struct {
	repo ports.MessageRepository
}

// NewListMessagesCommand creates a new ListMessagesCommand
func NewListMessagesCommand(repo ports.MessageRepository) *ListMessagesCommand {
	return &ListMessagesCommand{repo: repo}
}

// Execute runs the list messages command
func (c *ListMessagesCommand) Execute(ctx context.Context) (*MessageFeed, error) {
	msgs, err := c.repo.ListMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	unread, err := c.repo.UnreadCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return &MessageFeed{Messages: msgs, Unread: unread}, nil
}
