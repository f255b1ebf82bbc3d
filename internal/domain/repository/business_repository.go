package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"vitrina/internal/domain/entity"
)

// ErrBusinessNotFound is returned when a business is not found.
var ErrBusinessNotFound = errors.New("business not found")

// BusinessRepository defines persistence for businesses and their embedded opinions.
type BusinessRepository interface {
	// FindByID retrieves a single business.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Business, error)

	// List returns every business in insertion order. Ranking relies on this order for stable ties.
	List(ctx context.Context) ([]*entity.Business, error)

	// ListByOwner returns the businesses of a merchant.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Business, error)

	Create(ctx context.Context, business *entity.Business) error

	// Update applies mutate to the stored business atomically and returns the result.
	Update(ctx context.Context, id uuid.UUID, mutate func(*entity.Business) error) (*entity.Business, error)

	Delete(ctx context.Context, id uuid.UUID) error
}

// BannerRepository stores the banner records derived from tier 5 and 6 businesses.
type BannerRepository interface {
	List(ctx context.Context) ([]*entity.Banner, error)

	// Upsert replaces the banner of banner.BusinessID.
	Upsert(ctx context.Context, banner *entity.Banner) error

	// DeleteByBusiness removes the banner of a business, if any.
	DeleteByBusiness(ctx context.Context, businessID uuid.UUID) error
}
