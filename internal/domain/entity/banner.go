package entity

import (
	"time"

	"github.com/google/uuid"
)

// Banner is a promotional slot derived from a tier 5 or 6 business.
type Banner struct {
	ID           uuid.UUID  `json:"id"`
	BusinessID   uuid.UUID  `json:"comercioId"`
	BusinessName string     `json:"comercioNombre"`
	Image        string     `json:"imagen,omitempty"`
	Tier         AdTier     `json:"nivel"`
	ExpiresAt    *time.Time `json:"expira"`
}

// BannerFor derives the banner of a tier 5 or 6 business; ok is false for other tiers.
// The banner id is stable per business so upserts replace the previous record.
func BannerFor(b *Business) (*Banner, bool) {
	if !b.AdTier.IsBanner() {
		return nil, false
	}

	banner := &Banner{
		ID:           uuid.NewSHA1(b.ID, []byte("banner")),
		BusinessID:   b.ID,
		BusinessName: b.Name,
		Image:        b.Image,
		Tier:         b.AdTier,
	}
	if b.AdExpiresAt != nil {
		t := *b.AdExpiresAt
		banner.ExpiresAt = &t
	}

	return banner, true
}
