package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"vitrina/internal/domain/entity"
)

// ErrPublicUserNotFound is returned when a public user is not found.
var ErrPublicUserNotFound = errors.New("public user not found")

// PublicUserRepository defines persistence for consumer accounts.
type PublicUserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.PublicUser, error)

	// FindByEmail compares case-insensitively.
	FindByEmail(ctx context.Context, email string) (*entity.PublicUser, error)

	List(ctx context.Context) ([]*entity.PublicUser, error)

	// Create fails with ErrDuplicateEmail on e-mail collision.
	Create(ctx context.Context, user *entity.PublicUser) error

	// Update applies mutate to the stored user atomically and returns the result.
	Update(ctx context.Context, id uuid.UUID, mutate func(*entity.PublicUser) error) (*entity.PublicUser, error)
}
