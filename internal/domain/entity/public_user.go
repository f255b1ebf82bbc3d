package entity

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// MaxHistory bounds the interaction log kept per public user.
const MaxHistory = 50

// InteractionType classifies an entry of a public user's history.
type InteractionType string

const (
	// InteractionView is recorded when the user opens a business page.
	InteractionView InteractionType = "view"
	// InteractionFavorite is recorded when the user favorites a business.
	InteractionFavorite InteractionType = "favorite"
	// InteractionOpinion is recorded when the user reviews a business.
	InteractionOpinion InteractionType = "opinion"
)

// PublicUser is a consumer account.
type PublicUser struct {
	ID             uuid.UUID     `json:"id"`
	Name           string        `json:"nombre"`
	Surname        string        `json:"apellido"`
	Email          string        `json:"email"`
	Password       string        `json:"-"` // bcrypt hash
	Favorites      []uuid.UUID   `json:"favoritos"`
	History        []Interaction `json:"historial"`
	UnreadMessages int           `json:"mensajesNoLeidos"`
	CreatedAt      time.Time     `json:"createdAt"`
}

// Interaction is an immutable history entry.
type Interaction struct {
	BusinessID   uuid.UUID       `json:"comercioId"`
	Type         InteractionType `json:"tipo"`
	At           time.Time       `json:"fecha"`
	BusinessName string          `json:"comercioNombre"`
}

// DisplayName returns "Name Surname" trimmed of a missing surname.
func (u *PublicUser) DisplayName() string {
	if u.Surname == "" {
		return u.Name
	}

	return u.Name + " " + u.Surname
}

// HasFavorite reports whether businessID is in the favorites set.
func (u *PublicUser) HasFavorite(businessID uuid.UUID) bool {
	return slices.Contains(u.Favorites, businessID)
}

// ToggleFavorite adds or removes businessID and returns true when it is now a favorite.
func (u *PublicUser) ToggleFavorite(businessID uuid.UUID) bool {
	if idx := slices.Index(u.Favorites, businessID); idx >= 0 {
		u.Favorites = slices.Delete(u.Favorites, idx, idx+1)

		return false
	}
	u.Favorites = append(u.Favorites, businessID)

	return true
}

// RecordInteraction prepends entry to the history, keeping only the newest MaxHistory entries.
func (u *PublicUser) RecordInteraction(entry Interaction) {
	u.History = append([]Interaction{entry}, u.History...)
	if len(u.History) > MaxHistory {
		u.History = u.History[:MaxHistory]
	}
}

// Clone returns a deep copy.
func (u *PublicUser) Clone() *PublicUser {
	c := *u
	c.Favorites = slices.Clone(u.Favorites)
	c.History = slices.Clone(u.History)

	return &c
}
