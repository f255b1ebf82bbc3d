package entity

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus is the state of a simulated payment.
type PaymentStatus string

const (
	// PaymentPending is set when the preference is created.
	PaymentPending PaymentStatus = "pending"
	// PaymentApproved is set when the payment is confirmed.
	PaymentApproved PaymentStatus = "approved"
)

// Payment is a simulated receipt for an ad-tier purchase.
type Payment struct {
	ID           uuid.UUID     `json:"id"`
	PreferenceID string        `json:"preferenceId"`
	BusinessID   uuid.UUID     `json:"comercioId"`
	BusinessName string        `json:"comercioNombre"`
	MerchantID   uuid.UUID     `json:"usuarioId"`
	Level        AdTier        `json:"nivel"`
	Amount       float64       `json:"monto"`
	Status       PaymentStatus `json:"estado"`
	CreatedAt    time.Time     `json:"fecha"`
	ApprovedAt   *time.Time    `json:"fechaAprobacion,omitempty"`
}
