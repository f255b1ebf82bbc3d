// Package chatsync is the pull-based chat client: it polls the chat endpoints on a fixed
// interval and derives new-message notifications and unread badges from what it sees.
package chatsync

import (
	"context"
	"time"

	"github.com/google/uuid"

	"vitrina/internal/domain/entity"
)

const (
	// DefaultConversationInterval is the refresh period of an open conversation.
	DefaultConversationInterval = 5 * time.Second
	// DefaultInboxInterval is the refresh period of the new-message check.
	DefaultInboxInterval = 15 * time.Second
)

// API is the subset of the HTTP API the pollers need.
type API interface {
	ListConversations(ctx context.Context, userID uuid.UUID) ([]*entity.Conversation, error)
	ListMessages(ctx context.Context, conversationID uuid.UUID) ([]*entity.ChatMessage, error)
	SendMessage(ctx context.Context, conversationID uuid.UUID, content string) (*entity.ChatMessage, error)
	MarkRead(ctx context.Context, conversationID uuid.UUID) (*entity.Conversation, error)
}

// Viewer identifies who is polling. Unread counters are read from the viewer's side.
type Viewer struct {
	UserID uuid.UUID
	Role   entity.Role
}

// Unread returns the viewer's side counter of c.
func (v Viewer) Unread(c *entity.Conversation) int {
	if v.Role == entity.RoleMerchant {
		return c.UnreadBusiness
	}

	return c.UnreadClient
}

// UnreadTotal sums the viewer's side counters over all conversations.
func (v Viewer) UnreadTotal(conversations []*entity.Conversation) int {
	total := 0
	for _, c := range conversations {
		total += v.Unread(c)
	}

	return total
}
