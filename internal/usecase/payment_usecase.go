package usecase

import (
	"context"

	"github.com/google/uuid"

	"vitrina/internal/domain/entity"
)

// CreatePreferenceInput selects the tier to buy for a business.
type CreatePreferenceInput struct {
	BusinessID uuid.UUID
	Level      int
}

// PreferenceOutput mimics a checkout preference.
type PreferenceOutput struct {
	PreferenceID string  `json:"preferenceId"`
	InitPoint    string  `json:"initPoint"`
	Amount       float64 `json:"amount"`
}

// ConfirmPaymentInput confirms either a stored preference or a direct business/level pair.
type ConfirmPaymentInput struct {
	PreferenceID string
	BusinessID   uuid.UUID
	Level        int
}

// PaymentUsecase is the simulated checkout. Confirmation applies the tier without
// contacting any payment provider.
type PaymentUsecase interface {
	CreatePreference(ctx context.Context, actorID uuid.UUID, input *CreatePreferenceInput) (*PreferenceOutput, error)
	Confirm(ctx context.Context, actorID uuid.UUID, input *ConfirmPaymentInput) (*entity.Business, error)
}
