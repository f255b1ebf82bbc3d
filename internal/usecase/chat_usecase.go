package usecase

import (
	"context"

	"github.com/google/uuid"

	"vitrina/internal/domain/entity"
)

// SendMessageInput is a chat message posted by a participant.
type SendMessageInput struct {
	ConversationID uuid.UUID
	SenderID       uuid.UUID
	Content        string
}

// ChatUsecase is the server side of the pull-based chat: clients poll it and
// unread counters are kept per side of each conversation.
type ChatUsecase interface {
	// StartConversation returns the conversation of the pair, creating it when missing.
	StartConversation(ctx context.Context, clientID, businessID uuid.UUID) (*entity.Conversation, error)

	// ListConversations returns the user's conversations, most recent activity first.
	ListConversations(ctx context.Context, userID uuid.UUID) ([]*entity.Conversation, error)

	// ListMessages returns the conversation's messages oldest first; actorID must participate.
	ListMessages(ctx context.Context, actorID, conversationID uuid.UUID) ([]*entity.ChatMessage, error)

	SendMessage(ctx context.Context, input *SendMessageInput) (*entity.ChatMessage, error)

	// MarkRead clears the reader's unread state for the conversation. Repeating it is a no-op.
	MarkRead(ctx context.Context, conversationID, readerID uuid.UUID) (*entity.Conversation, error)
}
