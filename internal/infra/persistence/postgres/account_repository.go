package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"vitrina/internal/domain/entity"
	"vitrina/internal/domain/repository"
	"vitrina/internal/infra/persistence/model"
)

type merchantRepository struct {
	db *gorm.DB
}

func (r *merchantRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Merchant, error) {
	var m model.MerchantModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrMerchantNotFound
		}

		return nil, errors.Wrap(err, "failed to find merchant by id")
	}

	return toMerchantDomain(&m), nil
}

func (r *merchantRepository) FindByEmail(ctx context.Context, email string) (*entity.Merchant, error) {
	var m model.MerchantModel
	if err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrMerchantNotFound
		}

		return nil, errors.Wrap(err, "failed to find merchant by email")
	}

	return toMerchantDomain(&m), nil
}

func (r *merchantRepository) List(ctx context.Context) ([]*entity.Merchant, error) {
	var models []model.MerchantModel
	if err := r.db.WithContext(ctx).Order("seq").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list merchants")
	}

	return mapAll(models, toMerchantDomain), nil
}

func (r *merchantRepository) Create(ctx context.Context, merchant *entity.Merchant) error {
	if _, err := r.FindByEmail(ctx, merchant.Email); err == nil {
		return repository.ErrDuplicateEmail
	}

	if err := r.db.WithContext(ctx).Create(toMerchantModel(merchant)).Error; err != nil {
		return accountConstraints.translate(err, "failed to create merchant")
	}

	return nil
}

func (r *merchantRepository) Update(ctx context.Context, id uuid.UUID, mutate func(*entity.Merchant) error) (*entity.Merchant, error) {
	var out *entity.Merchant
	err := inTx(ctx, r.db, func(tx *gorm.DB) error {
		var current model.MerchantModel
		if err := forUpdate(tx).Where("id = ?", id).First(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrMerchantNotFound
			}

			return errors.Wrap(err, "failed to lock merchant")
		}

		next := toMerchantDomain(&current)
		if err := mutate(next); err != nil {
			return err
		}

		m := toMerchantModel(next)
		m.Seq = current.Seq
		if err := tx.Save(m).Error; err != nil {
			return errors.Wrap(err, "failed to update merchant")
		}
		out = next

		return nil
	})

	return out, err
}

type publicUserRepository struct {
	db *gorm.DB
}

func (r *publicUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.PublicUser, error) {
	var m model.PublicUserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPublicUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find public user by id")
	}

	return toPublicUserDomain(&m), nil
}

func (r *publicUserRepository) FindByEmail(ctx context.Context, email string) (*entity.PublicUser, error) {
	var m model.PublicUserModel
	if err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPublicUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find public user by email")
	}

	return toPublicUserDomain(&m), nil
}

func (r *publicUserRepository) List(ctx context.Context) ([]*entity.PublicUser, error) {
	var models []model.PublicUserModel
	if err := r.db.WithContext(ctx).Order("seq").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list public users")
	}

	return mapAll(models, toPublicUserDomain), nil
}

func (r *publicUserRepository) Create(ctx context.Context, user *entity.PublicUser) error {
	if _, err := r.FindByEmail(ctx, user.Email); err == nil {
		return repository.ErrDuplicateEmail
	}

	if err := r.db.WithContext(ctx).Create(toPublicUserModel(user)).Error; err != nil {
		return accountConstraints.translate(err, "failed to create public user")
	}

	return nil
}

func (r *publicUserRepository) Update(ctx context.Context, id uuid.UUID, mutate func(*entity.PublicUser) error) (*entity.PublicUser, error) {
	var out *entity.PublicUser
	err := inTx(ctx, r.db, func(tx *gorm.DB) error {
		var current model.PublicUserModel
		if err := forUpdate(tx).Where("id = ?", id).First(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrPublicUserNotFound
			}

			return errors.Wrap(err, "failed to lock public user")
		}

		next := toPublicUserDomain(&current)
		if err := mutate(next); err != nil {
			return err
		}

		m := toPublicUserModel(next)
		m.Seq = current.Seq
		if err := tx.Save(m).Error; err != nil {
			return errors.Wrap(err, "failed to update public user")
		}
		out = next

		return nil
	})

	return out, err
}
