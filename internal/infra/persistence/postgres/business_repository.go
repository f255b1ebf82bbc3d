package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vitrina/internal/domain/entity"
	"vitrina/internal/domain/repository"
	"vitrina/internal/infra/persistence/model"
)

type businessRepository struct {
	db *gorm.DB
}

func (r *businessRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Business, error) {
	var m model.BusinessModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBusinessNotFound
		}

		return nil, errors.Wrap(err, "failed to find business by id")
	}

	return toBusinessDomain(&m), nil
}

func (r *businessRepository) List(ctx context.Context) ([]*entity.Business, error) {
	var models []model.BusinessModel
	if err := r.db.WithContext(ctx).Order("seq").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list businesses")
	}

	return mapAll(models, toBusinessDomain), nil
}

func (r *businessRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Business, error) {
	var models []model.BusinessModel
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("seq").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list businesses by owner")
	}

	return mapAll(models, toBusinessDomain), nil
}

func (r *businessRepository) Create(ctx context.Context, business *entity.Business) error {
	if err := r.db.WithContext(ctx).Create(toBusinessModel(business)).Error; err != nil {
		return businessConstraints.translate(err, "failed to create business")
	}

	return nil
}

func (r *businessRepository) Update(ctx context.Context, id uuid.UUID, mutate func(*entity.Business) error) (*entity.Business, error) {
	var out *entity.Business
	err := inTx(ctx, r.db, func(tx *gorm.DB) error {
		var current model.BusinessModel
		if err := forUpdate(tx).Where("id = ?", id).First(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrBusinessNotFound
			}

			return errors.Wrap(err, "failed to lock business")
		}

		next := toBusinessDomain(&current)
		if err := mutate(next); err != nil {
			return err
		}

		m := toBusinessModel(next)
		m.Seq = current.Seq
		if err := tx.Save(m).Error; err != nil {
			return businessConstraints.translate(err, "failed to update business")
		}
		out = next

		return nil
	})

	return out, err
}

func (r *businessRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.BusinessModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete business")
	}
	if result.RowsAffected == 0 {
		return repository.ErrBusinessNotFound
	}

	return nil
}

type bannerRepository struct {
	db *gorm.DB
}

func (r *bannerRepository) List(ctx context.Context) ([]*entity.Banner, error) {
	var models []model.BannerModel
	if err := r.db.WithContext(ctx).Order("seq").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list banners")
	}

	return mapAll(models, toBannerDomain), nil
}

func (r *bannerRepository) Upsert(ctx context.Context, banner *entity.Banner) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "business_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"business_name", "image", "tier", "expires_at"}),
	}).Create(toBannerModel(banner)).Error
	if err != nil {
		return errors.Wrap(err, "failed to upsert banner")
	}

	return nil
}

func (r *bannerRepository) DeleteByBusiness(ctx context.Context, businessID uuid.UUID) error {
	if err := r.db.WithContext(ctx).Where("business_id = ?", businessID).Delete(&model.BannerModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete banner")
	}

	return nil
}

type paymentRepository struct {
	db *gorm.DB
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	if err := r.db.WithContext(ctx).Create(toPaymentModel(payment)).Error; err != nil {
		return errors.Wrap(err, "failed to create payment")
	}

	return nil
}

func (r *paymentRepository) FindByPreferenceID(ctx context.Context, preferenceID string) (*entity.Payment, error) {
	var m model.PaymentModel
	if err := r.db.WithContext(ctx).Where("preference_id = ?", preferenceID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPaymentNotFound
		}

		return nil, errors.Wrap(err, "failed to find payment")
	}

	return toPaymentDomain(&m), nil
}

func (r *paymentRepository) Save(ctx context.Context, payment *entity.Payment) error {
	result := r.db.WithContext(ctx).Model(&model.PaymentModel{}).Where("id = ?", payment.ID).Updates(map[string]any{
		"status":      string(payment.Status),
		"level":       int(payment.Level),
		"amount":      payment.Amount,
		"approved_at": payment.ApprovedAt,
	})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to save payment")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPaymentNotFound
	}

	return nil
}

func (r *paymentRepository) List(ctx context.Context) ([]*entity.Payment, error) {
	var models []model.PaymentModel
	if err := r.db.WithContext(ctx).Order("seq").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list payments")
	}

	return mapAll(models, toPaymentDomain), nil
}
