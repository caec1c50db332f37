package domain

import (
	"fmt"
	"time"
)

// MessageType classifies feed entries.
type MessageType string

const (
	MessageFriendUpdate  MessageType = "friend_update"
	MessageEventReminder MessageType = "event_reminder"
	MessageInvitation    MessageType = "invitation"
)

// ParseMessageType validates a message type string.
func ParseMessageType(s string) (MessageType, error) {
	switch t := MessageType(s); t {
	case MessageFriendUpdate, MessageEventReminder, MessageInvitation:
		return t, nil
	}
	return "", fmt.Errorf("unknown message type: %q", s)
}

// Message is one entry in the user's feed.
type Message struct {
	ID        string      `json:"id"`
	Type      MessageType `json:"type"`
	Title     string      `json:"title"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
	IsRead    bool        `json:"isRead"`
	Avatar    string      `json:"avatar,omitempty"`
}
