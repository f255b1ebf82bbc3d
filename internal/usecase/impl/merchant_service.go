// Package impl contains the implementation of the application's business logic.
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
	"vitrina/internal/domain/repository"
	"vitrina/internal/domain/service"
	"vitrina/internal/usecase"
)

// merchantService implements the MerchantUsecase interface.
type merchantService struct {
	merchantRepo repository.MerchantRepository
	businessRepo repository.BusinessRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
	now          func() time.Time
}

// MerchantServiceParams holds dependencies for MerchantService, injected by Fx.
type MerchantServiceParams struct {
	fx.In

	MerchantRepo repository.MerchantRepository
	BusinessRepo repository.BusinessRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewMerchantService is the constructor for merchantService.
func NewMerchantService(params MerchantServiceParams) usecase.MerchantUsecase {
	return &merchantService{
		merchantRepo: params.MerchantRepo,
		businessRepo: params.BusinessRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
		now:          time.Now,
	}
}

// Register creates an unverified merchant and returns its verification code.
func (srv *merchantService) Register(ctx context.Context, input *usecase.RegisterMerchantInput) (*usecase.RegisterMerchantOutput, error) {
	email := normalizeEmail(input.Email)
	if strings.TrimSpace(input.Name) == "" || email == "" || input.Password == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("name, email and password are required")
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, domainerrors.ErrPasswordHashFailed
	}

	code, err := newVerificationCode()
	if err != nil {
		return nil, err
	}

	merchant := &entity.Merchant{
		ID:               uuid.New(),
		Name:             strings.TrimSpace(input.Name),
		Email:            email,
		Password:         hash,
		Phone:            strings.TrimSpace(input.Phone),
		VerificationCode: code,
		CreatedAt:        srv.now(),
	}
	if err := srv.merchantRepo.Create(ctx, merchant); err != nil {
		return nil, translate(err, "failed to create merchant")
	}

	requestLogger(ctx, srv.logger).Info("Merchant registered", slog.String("merchant_id", merchant.ID.String()))

	return &usecase.RegisterMerchantOutput{User: merchant, VerificationCode: code}, nil
}

// Verify marks the account verified when the code matches. Verifying twice is a no-op.
func (srv *merchantService) Verify(ctx context.Context, input *usecase.VerifyMerchantInput) (*entity.Merchant, error) {
	merchant, err := srv.merchantRepo.FindByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		return nil, translate(err, "failed to find merchant")
	}
	if merchant.Verified {
		return merchant, nil
	}

	updated, err := srv.merchantRepo.Update(ctx, merchant.ID, func(m *entity.Merchant) error {
		if m.Verified {
			return nil
		}
		if m.VerificationCode == "" || strings.TrimSpace(input.Code) != m.VerificationCode {
			return domainerrors.ErrInvalidVerificationCode
		}
		m.Verified = true
		m.VerificationCode = ""

		return nil
	})
	if err != nil {
		return nil, translate(err, "failed to verify merchant")
	}

	return updated, nil
}

// Login checks the credentials of a verified merchant and issues a session token.
func (srv *merchantService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.MerchantSession, error) {
	merchant, err := srv.merchantRepo.FindByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, repository.ErrMerchantNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find merchant")
	}

	if !srv.hasher.Check(input.Password, merchant.Password) {
		return nil, domainerrors.ErrInvalidCredentials
	}
	if !merchant.Verified {
		return nil, domainerrors.ErrAccountNotVerified
	}

	token, err := srv.tokenService.GenerateToken(merchant.ID, entity.RoleMerchant)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token")
	}

	return &usecase.MerchantSession{User: merchant, Token: token}, nil
}

// Update edits the merchant's own profile.
func (srv *merchantService) Update(ctx context.Context, actorID, merchantID uuid.UUID, input *usecase.UpdateMerchantInput) (*entity.Merchant, error) {
	if actorID != merchantID {
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

	updated, err := srv.merchantRepo.Update(ctx, merchantID, func(m *entity.Merchant) error {
		if input.Name != nil {
			name := strings.TrimSpace(*input.Name)
			if name == "" {
				return domainerrors.ErrValidationFailed.WithDetails("name cannot be empty")
			}
			m.Name = name
		}
		if input.Phone != nil {
			m.Phone = strings.TrimSpace(*input.Phone)
		}
		if hash != "" {
			m.Password = hash
		}

		return nil
	})
	if err != nil {
		return nil, translate(err, "failed to update merchant")
	}

	return updated, nil
}

// ListBusinesses returns the merchant's listings.
func (srv *merchantService) ListBusinesses(ctx context.Context, merchantID uuid.UUID) ([]*entity.Business, error) {
	if _, err := srv.merchantRepo.FindByID(ctx, merchantID); err != nil {
		return nil, translate(err, "failed to find merchant")
	}

	businesses, err := srv.businessRepo.ListByOwner(ctx, merchantID)
	if err != nil {
		return nil, translate(err, "failed to list businesses")
	}

	return businesses, nil
}
