package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"vitrina/internal/domain/entity"
	"vitrina/internal/domain/repository"
)

type conversationRepository struct {
	s *Store
}

func (r *conversationRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Conversation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, c := range r.s.conversations {
		if c.ID == id {
			out := *c

			return &out, nil
		}
	}

	return nil, repository.ErrConversationNotFound
}

func (r *conversationRepository) FindByPair(_ context.Context, clientID, businessID uuid.UUID) (*entity.Conversation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, c := range r.s.conversations {
		if c.ClientID == clientID && c.BusinessID == businessID {
			out := *c

			return &out, nil
		}
	}

	return nil, repository.ErrConversationNotFound
}

func (r *conversationRepository) ListByParticipant(_ context.Context, userID uuid.UUID) ([]*entity.Conversation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*entity.Conversation, 0)
	for _, c := range r.s.conversations {
		if c.ClientID == userID || c.OwnerID == userID {
			cp := *c
			out = append(out, &cp)
		}
	}

	return out, nil
}

func (r *conversationRepository) List(_ context.Context) ([]*entity.Conversation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*entity.Conversation, 0, len(r.s.conversations))
	for _, c := range r.s.conversations {
		cp := *c
		out = append(out, &cp)
	}

	return out, nil
}

func (r *conversationRepository) Create(_ context.Context, conversation *entity.Conversation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c := *conversation
	r.s.conversations = append(r.s.conversations, &c)

	return nil
}

func (r *conversationRepository) Update(_ context.Context, id uuid.UUID, mutate func(*entity.Conversation) error) (*entity.Conversation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, c := range r.s.conversations {
		if c.ID != id {
			continue
		}

		next := *c
		if err := mutate(&next); err != nil {
			return nil, err
		}
		r.s.conversations[i] = &next
		out := next

		return &out, nil
	}

	return nil, repository.ErrConversationNotFound
}

type messageRepository struct {
	s *Store
}

func (r *messageRepository) ListByConversation(_ context.Context, conversationID uuid.UUID) ([]*entity.ChatMessage, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*entity.ChatMessage, 0)
	for _, m := range r.s.messages {
		if m.ConversationID == conversationID {
			c := *m
			out = append(out, &c)
		}
	}

	return out, nil
}

func (r *messageRepository) List(_ context.Context) ([]*entity.ChatMessage, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*entity.ChatMessage, 0, len(r.s.messages))
	for _, m := range r.s.messages {
		c := *m
		out = append(out, &c)
	}

	return out, nil
}

func (r *messageRepository) Create(_ context.Context, message *entity.ChatMessage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c := *message
	r.s.messages = append(r.s.messages, &c)

	return nil
}

func (r *messageRepository) MarkRead(_ context.Context, conversationID, readerID uuid.UUID) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	changed := 0
	for i, m := range r.s.messages {
		if m.ConversationID != conversationID || m.SenderID == readerID || m.Read {
			continue
		}
		c := *m
		c.Read = true
		r.s.messages[i] = &c
		changed++
	}

	return changed, nil
}

type trackingRepository struct {
	s *Store
}

func (r *trackingRepository) Create(_ context.Context, event *entity.TrackingEvent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c := *event
	r.s.events = append(r.s.events, &c)

	return nil
}

func (r *trackingRepository) ListSince(_ context.Context, since time.Time, businessID *uuid.UUID) ([]*entity.TrackingEvent, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*entity.TrackingEvent, 0)
	for _, e := range r.s.events {
		if e.At.Before(since) {
			continue
		}
		if businessID != nil && (e.BusinessID == nil || *e.BusinessID != *businessID) {
			continue
		}
		c := *e
		out = append(out, &c)
	}

	return out, nil
}
