// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"vitrina/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterMerchantInput defines the data required to register a merchant account.
type RegisterMerchantInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// VerifyMerchantInput carries the code returned at registration.
type VerifyMerchantInput struct {
	Email string
	Code  string
}

// LoginInput defines the data required for an account to log in.
type LoginInput struct {
	Email    string
	Password string
}

// UpdateMerchantInput lists the editable merchant fields; nil leaves a field unchanged.
type UpdateMerchantInput struct {
	Name     *string
	Phone    *string
	Password *string
}

// --- Output DTOs ---

// RegisterMerchantOutput returns the new account and its verification code.
// The code is returned directly because no out-of-band delivery channel exists.
type RegisterMerchantOutput struct {
	User             *entity.Merchant
	VerificationCode string
}

// MerchantSession is returned by a successful merchant login.
type MerchantSession struct {
	User  *entity.Merchant
	Token string
}

// MerchantUsecase defines the merchant identity lifecycle.
type MerchantUsecase interface {
	Register(ctx context.Context, input *RegisterMerchantInput) (*RegisterMerchantOutput, error)
	Verify(ctx context.Context, input *VerifyMerchantInput) (*entity.Merchant, error)
	Login(ctx context.Context, input *LoginInput) (*MerchantSession, error)

	// Update edits the merchant's own account; actorID must equal merchantID.
	Update(ctx context.Context, actorID, merchantID uuid.UUID, input *UpdateMerchantInput) (*entity.Merchant, error)

	// ListBusinesses returns the businesses owned by the merchant.
	ListBusinesses(ctx context.Context, merchantID uuid.UUID) ([]*entity.Business, error)
}
