package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"vitrina/internal/domain/entity"
	"vitrina/internal/domain/repository"
	"vitrina/internal/infra/persistence/model"
)

type conversationRepository struct {
	db *gorm.DB
}

func (r *conversationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Conversation, error) {
	return r.first(r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *conversationRepository) FindByPair(ctx context.Context, clientID, businessID uuid.UUID) (*entity.Conversation, error) {
	return r.first(r.db.WithContext(ctx).Where("client_id = ? AND business_id = ?", clientID, businessID))
}

func (r *conversationRepository) first(q *gorm.DB) (*entity.Conversation, error) {
	var m model.ConversationModel
	if err := q.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrConversationNotFound
		}

		return nil, errors.Wrap(err, "failed to find conversation")
	}

	return toConversationDomain(&m), nil
}

func (r *conversationRepository) ListByParticipant(ctx context.Context, userID uuid.UUID) ([]*entity.Conversation, error) {
	var models []model.ConversationModel
	if err := r.db.WithContext(ctx).Where("client_id = ? OR owner_id = ?", userID, userID).Order("seq").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list conversations")
	}

	return mapAll(models, toConversationDomain), nil
}

func (r *conversationRepository) List(ctx context.Context) ([]*entity.Conversation, error) {
	var models []model.ConversationModel
	if err := r.db.WithContext(ctx).Order("seq").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list conversations")
	}

	return mapAll(models, toConversationDomain), nil
}

func (r *conversationRepository) Create(ctx context.Context, conversation *entity.Conversation) error {
	if err := r.db.WithContext(ctx).Create(toConversationModel(conversation)).Error; err != nil {
		return errors.Wrap(err, "failed to create conversation")
	}

	return nil
}

func (r *conversationRepository) Update(ctx context.Context, id uuid.UUID, mutate func(*entity.Conversation) error) (*entity.Conversation, error) {
	var out *entity.Conversation
	err := inTx(ctx, r.db, func(tx *gorm.DB) error {
		var current model.ConversationModel
		if err := forUpdate(tx).Where("id = ?", id).First(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrConversationNotFound
			}

			return errors.Wrap(err, "failed to lock conversation")
		}

		next := toConversationDomain(&current)
		if err := mutate(next); err != nil {
			return err
		}

		m := toConversationModel(next)
		m.Seq = current.Seq
		if err := tx.Save(m).Error; err != nil {
			return errors.Wrap(err, "failed to update conversation")
		}
		out = next

		return nil
	})

	return out, err
}

type messageRepository struct {
	db *gorm.DB
}

func (r *messageRepository) ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]*entity.ChatMessage, error) {
	var models []model.MessageModel
	if err := r.db.WithContext(ctx).Where("conversation_id = ?", conversationID).Order("seq").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list messages")
	}

	return mapAll(models, toMessageDomain), nil
}

func (r *messageRepository) List(ctx context.Context) ([]*entity.ChatMessage, error) {
	var models []model.MessageModel
	if err := r.db.WithContext(ctx).Order("seq").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list messages")
	}

	return mapAll(models, toMessageDomain), nil
}

func (r *messageRepository) Create(ctx context.Context, message *entity.ChatMessage) error {
	if err := r.db.WithContext(ctx).Create(toMessageModel(message)).Error; err != nil {
		return errors.Wrap(err, "failed to create message")
	}

	return nil
}

func (r *messageRepository) MarkRead(ctx context.Context, conversationID, readerID uuid.UUID) (int, error) {
	result := r.db.WithContext(ctx).Model(&model.MessageModel{}).
		Where("conversation_id = ? AND sender_id <> ? AND read = ?", conversationID, readerID, false).
		Update("read", true)
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to mark messages read")
	}

	return int(result.RowsAffected), nil
}

type trackingRepository struct {
	db *gorm.DB
}

func (r *trackingRepository) Create(ctx context.Context, event *entity.TrackingEvent) error {
	if err := r.db.WithContext(ctx).Create(toTrackingEventModel(event)).Error; err != nil {
		return errors.Wrap(err, "failed to create tracking event")
	}

	return nil
}

func (r *trackingRepository) ListSince(ctx context.Context, since time.Time, businessID *uuid.UUID) ([]*entity.TrackingEvent, error) {
	q := r.db.WithContext(ctx).Where("at >= ?", since)
	if businessID != nil {
		q = q.Where("business_id = ?", *businessID)
	}

	var models []model.TrackingEventModel
	if err := q.Order("at").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list tracking events")
	}

	return mapAll(models, toTrackingEventDomain), nil
}
