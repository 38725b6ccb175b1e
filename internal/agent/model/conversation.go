package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MessageRole identifies who authored a persisted message.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleSystem    MessageRole = "system"
)

// Message is one persisted conversation turn. Messages are opaque to the
// workflow; only the store reads them back.
type Message struct {
	ID             string      `json:"id"`
	Content        string      `json:"content"`
	Role           MessageRole `json:"role"`
	UserID         string      `json:"user_id"`
	ConversationID string      `json:"conversation_id"`
	AgentName      string      `json:"agent_name,omitempty"`
	Timestamp      time.Time   `json:"timestamp"`
}

// NewMessage builds a message with a fresh id and timestamp.
func NewMessage(role MessageRole, content, userID, conversationID string) *Message {
	return &Message{
		ID:             uuid.NewString(),
		Content:        content,
		Role:           role,
		UserID:         userID,
		ConversationID: conversationID,
		Timestamp:      time.Now().UTC(),
	}
}

// ConversationStore persists conversation history keyed by conversation id.
// Implementations must be safe for concurrent use by multiple workflow runs.
type ConversationStore interface {
	// AddMessage appends a message to the conversation history.
	AddMessage(ctx context.Context, conversationID string, message *Message) error

	// RecentMessages returns up to limit messages, newest first.
	RecentMessages(ctx context.Context, conversationID string, limit int) ([]*Message, error)

	// ClearHistory removes all conversation history for a conversation.
	ClearHistory(ctx context.Context, conversationID string) error

	// MessageCount returns the number of messages in the conversation.
	MessageCount(ctx context.Context, conversationID string) (int, error)
}
