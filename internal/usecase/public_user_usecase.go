package usecase

import (
	"context"

	"github.com/google/uuid"

	"vitrina/internal/domain/entity"
)

// RegisterPublicUserInput defines the data required to register a consumer account.
type RegisterPublicUserInput struct {
	Name     string
	Surname  string
	Email    string
	Password string
}

// UpdatePublicUserInput lists the editable consumer fields; nil leaves a field unchanged.
type UpdatePublicUserInput struct {
	Name     *string
	Surname  *string
	Password *string
}

// PublicSession is returned by consumer registration and login.
type PublicSession struct {
	User  *entity.PublicUser
	Token string
}

// FavoriteOutput reports the favorite state after a toggle.
type FavoriteOutput struct {
	User     *entity.PublicUser
	Favorite bool
}

// PublicUserUsecase defines consumer accounts, favorites, history and recommendations.
type PublicUserUsecase interface {
	Register(ctx context.Context, input *RegisterPublicUserInput) (*PublicSession, error)
	Login(ctx context.Context, input *LoginInput) (*PublicSession, error)
	Get(ctx context.Context, actorID, userID uuid.UUID) (*entity.PublicUser, error)
	Update(ctx context.Context, actorID, userID uuid.UUID, input *UpdatePublicUserInput) (*entity.PublicUser, error)

	// ToggleFavorite flips businessID in the favorites set; adding records a favorite interaction.
	ToggleFavorite(ctx context.Context, actorID, userID, businessID uuid.UUID) (*FavoriteOutput, error)

	// RecordView prepends a view interaction to the bounded history.
	RecordView(ctx context.Context, actorID, userID, businessID uuid.UUID) (*entity.PublicUser, error)

	// Recommendations returns up to four businesses scored against the user's history.
	Recommendations(ctx context.Context, userID uuid.UUID) ([]*entity.Business, error)
}
