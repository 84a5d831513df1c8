// Package entity defines the domain entities for the chat feature.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Message roles within a conversation.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single turn in a conversation.
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Conversation holds the message history for one email thread, used as
// context for reply generation. Conversations are owned by the user who
// created them.
type Conversation struct {
	ID         string    `json:"id"`
	UserID     uint      `json:"user_id"`
	BusinessID string    `json:"business_id,omitempty"`
	Messages   []Message `json:"messages"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewConversation creates an empty conversation for the given user.
func NewConversation(userID uint, businessID string) *Conversation {
	now := time.Now().UTC()
	return &Conversation{
		ID:         uuid.NewString(),
		UserID:     userID,
		BusinessID: businessID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// AddMessage appends a message and bumps the updated timestamp.
func (c *Conversation) AddMessage(role, content string) {
	c.Messages = append(c.Messages, Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	})
	c.UpdatedAt = time.Now().UTC()
}

// RecentMessages returns the last count messages, oldest first.
func (c *Conversation) RecentMessages(count int) []Message {
	if count <= 0 || len(c.Messages) <= count {
		return c.Messages
	}
	return c.Messages[len(c.Messages)-count:]
}
