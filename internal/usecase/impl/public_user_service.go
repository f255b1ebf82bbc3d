package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	"vitrina/internal/domain/entity"
	domainerrors "vitrina/internal/domain/errors"
	"vitrina/internal/domain/recommend"
	"vitrina/internal/domain/repository"
	"vitrina/internal/domain/service"
	"vitrina/internal/usecase"
)

type publicUserService struct {
	publicUserRepo repository.PublicUserRepository
	businessRepo   repository.BusinessRepository
	hasher         service.PasswordHasher
	tokenService   service.TokenService
	logger         *slog.Logger
	now            func() time.Time
}

// PublicUserServiceParams holds dependencies for PublicUserService, injected by Fx.
type PublicUserServiceParams struct {
	fx.In

	PublicUserRepo repository.PublicUserRepository
	BusinessRepo   repository.BusinessRepository
	Hasher         service.PasswordHasher
	TokenService   service.TokenService
	Logger         *slog.Logger
}

// NewPublicUserService is the constructor for publicUserService.
func NewPublicUserService(params PublicUserServiceParams) usecase.PublicUserUsecase {
	return &publicUserService{
		publicUserRepo: params.PublicUserRepo,
		businessRepo:   params.BusinessRepo,
		hasher:         params.Hasher,
		tokenService:   params.TokenService,
		logger:         params.Logger,
		now:            time.Now,
	}
}

// Register creates a public account and signs it in right away.
func (srv *publicUserService) Register(ctx context.Context, input *usecase.RegisterPublicUserInput) (*usecase.PublicSession, error) {
	email := normalizeEmail(input.Email)
	if strings.TrimSpace(input.Name) == "" || email == "" || input.Password == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("name, email and password are required")
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, domainerrors.ErrPasswordHashFailed
	}

	user := &entity.PublicUser{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(input.Name),
		Surname:   strings.TrimSpace(input.Surname),
		Email:     email,
		Password:  hash,
		Favorites: []uuid.UUID{},
		History:   []entity.Interaction{},
		CreatedAt: srv.now(),
	}
	if err := srv.publicUserRepo.Create(ctx, user); err != nil {
		return nil, translate(err, "failed to create public user")
	}

	requestLogger(ctx, srv.logger).Info("Public user registered", slog.String("user_id", user.ID.String()))

	return srv.session(user)
}

// Login checks credentials and issues a session token.
func (srv *publicUserService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.PublicSession, error) {
	user, err := srv.publicUserRepo.FindByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, repository.ErrPublicUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find public user")
	}

	if !srv.hasher.Check(input.Password, user.Password) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	return srv.session(user)
}

func (srv *publicUserService) session(user *entity.PublicUser) (*usecase.PublicSession, error) {
	token, err := srv.tokenService.GenerateToken(user.ID, entity.RolePublic)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token")
	}

	return &usecase.PublicSession{User: user, Token: token}, nil
}

// Get returns the caller's own profile.
func (srv *publicUserService) Get(ctx context.Context, actorID, userID uuid.UUID) (*entity.PublicUser, error) {
	if actorID != userID {
		return nil, domainerrors.ErrForbidden
	}

	user, err := srv.publicUserRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, translate(err, "failed to find public user")
	}

	return user, nil
}

// Update edits the caller's own profile.
func (srv *publicUserService) Update(ctx context.Context, actorID, userID uuid.UUID, input *usecase.UpdatePublicUserInput) (*entity.PublicUser, error) {
	if actorID != userID {
		return nil, domainerrors.ErrForbidden
	}

	var hash string
	if input.Password != nil {
		if *input.Password == "" {
			return nil, domainerrors.ErrValidationFailed.WithDetails("password cannot be empty")
		}
		h, err := srv.hasher.Hash(*input.Password)
		if err != nil {
			return nil, domainerrors.ErrPasswordHashFailed
		}
		hash = h
	}

	user, err := srv.publicUserRepo.Update(ctx, userID, func(u *entity.PublicUser) error {
		if input.Name != nil {
			name := strings.TrimSpace(*input.Name)
			if name == "" {
				return domainerrors.ErrValidationFailed.WithDetails("name cannot be empty")
			}
			u.Name = name
		}
		if input.Surname != nil {
			u.Surname = strings.TrimSpace(*input.Surname)
		}
		if hash != "" {
			u.Password = hash
		}

		return nil
	})
	if err != nil {
		return nil, translate(err, "failed to update public user")
	}

	return user, nil
}

// ToggleFavorite adds or removes a favorite. Adding one is also recorded in the history.
func (srv *publicUserService) ToggleFavorite(ctx context.Context, actorID, userID, businessID uuid.UUID) (*usecase.FavoriteOutput, error) {
	if actorID != userID {
		return nil, domainerrors.ErrForbidden
	}

	business, err := srv.businessRepo.FindByID(ctx, businessID)
	if err != nil {
		return nil, translate(err, "failed to find business")
	}

	now := srv.now()
	var favorite bool
	user, err := srv.publicUserRepo.Update(ctx, userID, func(u *entity.PublicUser) error {
		favorite = u.ToggleFavorite(businessID)
		if favorite {
			u.RecordInteraction(entity.Interaction{
				BusinessID:   business.ID,
				Type:         entity.InteractionFavorite,
				At:           now,
				BusinessName: business.Name,
			})
		}

		return nil
	})
	if err != nil {
		return nil, translate(err, "failed to toggle favorite")
	}

	return &usecase.FavoriteOutput{User: user, Favorite: favorite}, nil
}

// RecordView prepends a view to the user's history.
func (srv *publicUserService) RecordView(ctx context.Context, actorID, userID, businessID uuid.UUID) (*entity.PublicUser, error) {
	if actorID != userID {
		return nil, domainerrors.ErrForbidden
	}

	business, err := srv.businessRepo.FindByID(ctx, businessID)
	if err != nil {
		return nil, translate(err, "failed to find business")
	}

	user, err := srv.publicUserRepo.Update(ctx, userID, func(u *entity.PublicUser) error {
		u.RecordInteraction(entity.Interaction{
			BusinessID:   business.ID,
			Type:         entity.InteractionView,
			At:           srv.now(),
			BusinessName: business.Name,
		})

		return nil
	})
	if err != nil {
		return nil, translate(err, "failed to record view")
	}

	return user, nil
}

// Recommendations scores the directory against the user's interactions.
func (srv *publicUserService) Recommendations(ctx context.Context, userID uuid.UUID) ([]*entity.Business, error) {
	user, err := srv.publicUserRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, translate(err, "failed to find public user")
	}

	businesses, err := srv.businessRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list businesses")
	}

	return recommend.Recommend(user, businesses, recommend.DefaultLimit), nil
}
