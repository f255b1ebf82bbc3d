package repository

import (
	"context"
	"errors"

	"vitrina/internal/domain/entity"
)

// ErrPaymentNotFound is returned when a payment preference is not found.
var ErrPaymentNotFound = errors.New("payment not found")

// PaymentRepository stores simulated payment receipts.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error

	FindByPreferenceID(ctx context.Context, preferenceID string) (*entity.Payment, error)

	// Save overwrites an existing payment.
	Save(ctx context.Context, payment *entity.Payment) error

	List(ctx context.Context) ([]*entity.Payment, error)
}
