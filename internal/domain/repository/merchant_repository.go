package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"vitrina/internal/domain/entity"
)

var (
	// ErrMerchantNotFound is returned when a merchant is not found.
	ErrMerchantNotFound = errors.New("merchant not found")
	// ErrDuplicateEmail is returned when an account with the same e-mail already exists.
	ErrDuplicateEmail = errors.New("email already registered")
)

// MerchantRepository defines the standard operations for merchant persistence.
type MerchantRepository interface {
	// FindByID retrieves a single merchant by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Merchant, error)

	// FindByEmail retrieves a merchant by e-mail, compared case-insensitively.
	FindByEmail(ctx context.Context, email string) (*entity.Merchant, error)

	// List returns every merchant in insertion order.
	List(ctx context.Context) ([]*entity.Merchant, error)

	// Create persists a new merchant, failing with ErrDuplicateEmail on e-mail collision.
	Create(ctx context.Context, merchant *entity.Merchant) error

	// Update applies mutate to the stored merchant atomically and returns the result.
	Update(ctx context.Context, id uuid.UUID, mutate func(*entity.Merchant) error) (*entity.Merchant, error)
}
