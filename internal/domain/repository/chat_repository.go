package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"vitrina/internal/domain/entity"
)

// ErrConversationNotFound is returned when a conversation is not found.
var ErrConversationNotFound = errors.New("conversation not found")

// ConversationRepository defines persistence for chat threads.
type ConversationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Conversation, error)

	// FindByPair returns the conversation between a client and a business.
	FindByPair(ctx context.Context, clientID, businessID uuid.UUID) (*entity.Conversation, error)

	// ListByParticipant returns conversations where userID is the client or the owning merchant.
	ListByParticipant(ctx context.Context, userID uuid.UUID) ([]*entity.Conversation, error)

	List(ctx context.Context) ([]*entity.Conversation, error)

	Create(ctx context.Context, conversation *entity.Conversation) error

	// Update applies mutate to the stored conversation atomically and returns the result.
	Update(ctx context.Context, id uuid.UUID, mutate func(*entity.Conversation) error) (*entity.Conversation, error)
}

// MessageRepository defines persistence for chat messages.
type MessageRepository interface {
	// ListByConversation returns messages oldest first.
	ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]*entity.ChatMessage, error)

	List(ctx context.Context) ([]*entity.ChatMessage, error)

	Create(ctx context.Context, message *entity.ChatMessage) error

	// MarkRead flags as read every message of the conversation not sent by readerID.
	// It returns how many messages changed state.
	MarkRead(ctx context.Context, conversationID, readerID uuid.UUID) (int, error)
}
