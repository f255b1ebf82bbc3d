package impl

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	"vitrina/internal/domain/entity"
	domainerrors "vitrina/internal/domain/errors"
	"vitrina/internal/domain/repository"
	"vitrina/internal/infra/metrics"
	"vitrina/internal/usecase"
)

type chatService struct {
	conversationRepo repository.ConversationRepository
	messageRepo      repository.MessageRepository
	businessRepo     repository.BusinessRepository
	merchantRepo     repository.MerchantRepository
	publicUserRepo   repository.PublicUserRepository
	logger           *slog.Logger
	now              func() time.Time
}

// ChatServiceParams holds dependencies for ChatService, injected by Fx.
type ChatServiceParams struct {
	fx.In

	ConversationRepo repository.ConversationRepository
	MessageRepo      repository.MessageRepository
	BusinessRepo     repository.BusinessRepository
	MerchantRepo     repository.MerchantRepository
	PublicUserRepo   repository.PublicUserRepository
	Logger           *slog.Logger
}

// NewChatService is the constructor for chatService.
func NewChatService(params ChatServiceParams) usecase.ChatUsecase {
	return &chatService{
		conversationRepo: params.ConversationRepo,
		messageRepo:      params.MessageRepo,
		businessRepo:     params.BusinessRepo,
		merchantRepo:     params.MerchantRepo,
		publicUserRepo:   params.PublicUserRepo,
		logger:           params.Logger,
		now:              time.Now,
	}
}

// StartConversation returns the conversation between the client and the business,
// creating it on first contact.
func (srv *chatService) StartConversation(ctx context.Context, clientID, businessID uuid.UUID) (*entity.Conversation, error) {
	client, err := srv.publicUserRepo.FindByID(ctx, clientID)
	if err != nil {
		return nil, translate(err, "failed to find client")
	}

	business, err := srv.businessRepo.FindByID(ctx, businessID)
	if err != nil {
		return nil, translate(err, "failed to find business")
	}

	existing, err := srv.conversationRepo.FindByPair(ctx, clientID, businessID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrConversationNotFound) {
		return nil, errors.Wrap(err, "failed to find conversation")
	}

	now := srv.now()
	conversation := &entity.Conversation{
		ID:            uuid.New(),
		ClientID:      client.ID,
		BusinessID:    business.ID,
		OwnerID:       business.OwnerID,
		ClientName:    client.DisplayName(),
		BusinessName:  business.Name,
		BusinessImage: business.Image,
		LastMessageAt: now,
		CreatedAt:     now,
	}
	if err := srv.conversationRepo.Create(ctx, conversation); err != nil {
		return nil, translate(err, "failed to create conversation")
	}

	requestLogger(ctx, srv.logger).Info("Conversation started",
		slog.String("conversation_id", conversation.ID.String()),
		slog.String("business_id", business.ID.String()),
	)

	return conversation, nil
}

// ListConversations returns the user's inbox, most recent activity first. Merchants see every
// conversation of the businesses they own; public users see the ones they started.
func (srv *chatService) ListConversations(ctx context.Context, userID uuid.UUID) ([]*entity.Conversation, error) {
	var conversations []*entity.Conversation

	_, err := srv.merchantRepo.FindByID(ctx, userID)
	switch {
	case err == nil:
		conversations, err = srv.merchantConversations(ctx, userID)
		if err != nil {
			return nil, err
		}
	case errors.Is(err, repository.ErrMerchantNotFound):
		if _, err := srv.publicUserRepo.FindByID(ctx, userID); err != nil {
			if errors.Is(err, repository.ErrPublicUserNotFound) {
				return nil, domainerrors.ErrNotFound.WithDetails("unknown user")
			}

			return nil, errors.Wrap(err, "failed to find public user")
		}
		all, err := srv.conversationRepo.ListByParticipant(ctx, userID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to list conversations")
		}
		conversations = slices.DeleteFunc(all, func(c *entity.Conversation) bool { return c.ClientID != userID })
	default:
		return nil, errors.Wrap(err, "failed to find merchant")
	}

	slices.SortStableFunc(conversations, func(a, b *entity.Conversation) int {
		return b.LastMessageAt.Compare(a.LastMessageAt)
	})

	return conversations, nil
}

func (srv *chatService) merchantConversations(ctx context.Context, merchantID uuid.UUID) ([]*entity.Conversation, error) {
	owned, err := srv.businessRepo.ListByOwner(ctx, merchantID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list businesses")
	}

	ids := make(map[uuid.UUID]struct{}, len(owned))
	for _, b := range owned {
		ids[b.ID] = struct{}{}
	}

	all, err := srv.conversationRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list conversations")
	}

	out := make([]*entity.Conversation, 0)
	for _, c := range all {
		if _, ok := ids[c.BusinessID]; ok {
			out = append(out, c)
		}
	}

	return out, nil
}

// ListMessages returns the conversation history, oldest first.
func (srv *chatService) ListMessages(ctx context.Context, actorID, conversationID uuid.UUID) ([]*entity.ChatMessage, error) {
	conversation, err := srv.conversationRepo.FindByID(ctx, conversationID)
	if err != nil {
		return nil, translate(err, "failed to find conversation")
	}
	if _, ok := conversation.SideOf(actorID); !ok {
		return nil, domainerrors.ErrNotAParticipant
	}

	messages, err := srv.messageRepo.ListByConversation(ctx, conversationID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list messages")
	}

	slices.SortStableFunc(messages, func(a, b *entity.ChatMessage) int {
		return cmp.Compare(a.CreatedAt.UnixNano(), b.CreatedAt.UnixNano())
	})

	return messages, nil
}

// SendMessage appends a message, updates the conversation preview and bumps the recipient's
// unread counters.
func (srv *chatService) SendMessage(ctx context.Context, input *usecase.SendMessageInput) (*entity.ChatMessage, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("message content is required")
	}

	conversation, err := srv.conversationRepo.FindByID(ctx, input.ConversationID)
	if err != nil {
		return nil, translate(err, "failed to find conversation")
	}
	side, ok := conversation.SideOf(input.SenderID)
	if !ok {
		return nil, domainerrors.ErrNotAParticipant
	}

	message := &entity.ChatMessage{
		ID:             uuid.New(),
		ConversationID: conversation.ID,
		SenderID:       input.SenderID,
		Content:        content,
		CreatedAt:      srv.now(),
	}
	if err := srv.messageRepo.Create(ctx, message); err != nil {
		return nil, translate(err, "failed to create message")
	}
	metrics.ChatMessagesTotal.WithLabelValues(string(side)).Inc()

	updated, err := srv.conversationRepo.Update(ctx, conversation.ID, func(c *entity.Conversation) error {
		c.LastMessage = content
		c.LastMessageAt = message.CreatedAt
		c.LastSenderID = input.SenderID
		if side == entity.SideClient {
			c.UnreadBusiness++
		} else {
			c.UnreadClient++
		}

		return nil
	})
	if err != nil {
		return nil, translate(err, "failed to update conversation")
	}

	recipient := updated.Counterpart(side)
	if err := srv.adjustUnread(ctx, side == entity.SideClient, recipient, 1); err != nil {
		return nil, err
	}

	return message, nil
}

// MarkRead marks the counterpart's messages read and clears the reader's side counter.
// Calling it twice is a no-op.
func (srv *chatService) MarkRead(ctx context.Context, conversationID, readerID uuid.UUID) (*entity.Conversation, error) {
	conversation, err := srv.conversationRepo.FindByID(ctx, conversationID)
	if err != nil {
		return nil, translate(err, "failed to find conversation")
	}
	side, ok := conversation.SideOf(readerID)
	if !ok {
		return nil, domainerrors.ErrNotAParticipant
	}

	if _, err := srv.messageRepo.MarkRead(ctx, conversationID, readerID); err != nil {
		return nil, errors.Wrap(err, "failed to mark messages read")
	}

	var cleared int
	updated, err := srv.conversationRepo.Update(ctx, conversationID, func(c *entity.Conversation) error {
		cleared = c.UnreadFor(side)
		if side == entity.SideClient {
			c.UnreadClient = 0
		} else {
			c.UnreadBusiness = 0
		}

		return nil
	})
	if err != nil {
		return nil, translate(err, "failed to update conversation")
	}

	if cleared > 0 {
		if err := srv.adjustUnread(ctx, side == entity.SideBusiness, readerID, -cleared); err != nil {
			return nil, err
		}
	}

	return updated, nil
}

// adjustUnread adds delta to a user's global unread counter, never going below zero.
func (srv *chatService) adjustUnread(ctx context.Context, merchant bool, userID uuid.UUID, delta int) error {
	if merchant {
		_, err := srv.merchantRepo.Update(ctx, userID, func(m *entity.Merchant) error {
			m.UnreadMessages = max(0, m.UnreadMessages+delta)

			return nil
		})

		return translate(err, "failed to update merchant unread counter")
	}

	_, err := srv.publicUserRepo.Update(ctx, userID, func(u *entity.PublicUser) error {
		u.UnreadMessages = max(0, u.UnreadMessages+delta)

		return nil
	})

	return translate(err, "failed to update public user unread counter")
}
