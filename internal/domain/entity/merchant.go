package entity

import (
	"time"

	"github.com/google/uuid"
)

// Merchant ("usuario") is a business owner account.
type Merchant struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"nombre"`
	Email            string    `json:"email"`
	Password         string    `json:"-"` // bcrypt hash
	Phone            string    `json:"telefono"`
	Verified         bool      `json:"verificado"`
	VerificationCode string    `json:"-"`
	UnreadMessages   int       `json:"mensajesNoLeidos"`
	CreatedAt        time.Time `json:"createdAt"`
}
