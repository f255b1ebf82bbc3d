package postgres

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"vitrina/internal/domain/entity"
	domainerrors "vitrina/internal/domain/errors"
	"vitrina/internal/domain/repository"
)

func TestBusinessMapping(t *testing.T) {
	lat, lon := -34.92, -57.95
	expires := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	b := &entity.Business{
		ID:          uuid.New(),
		Name:        "Parrilla",
		AdTier:      entity.AdTierPremium,
		AdExpiresAt: &expires,
		Gallery:     []string{"a.jpg"},
		Opinions:    []entity.Opinion{{ID: uuid.New(), Rating: 4, Likes: []uuid.UUID{uuid.New()}}},
		Lat:         &lat,
		Lon:         &lon,
	}

	m := toBusinessModel(b)
	assert.Equal(t, 4, m.AdTier)

	got := toBusinessDomain(m)
	assert.Equal(t, b, got)

	m.Gallery[0] = "changed.jpg"
	assert.Equal(t, "a.jpg", b.Gallery[0])
}

func TestBusinessMapping_NilCollections(t *testing.T) {
	got := toBusinessDomain(toBusinessModel(&entity.Business{ID: uuid.New(), AdTier: entity.AdTierFree}))
	assert.NotNil(t, got.Gallery)
	assert.NotNil(t, got.Opinions)
	assert.Nil(t, got.AdExpiresAt)
}

func TestPublicUserMapping(t *testing.T) {
	u := &entity.PublicUser{
		ID:        uuid.New(),
		Email:     "ana@example.com",
		Favorites: []uuid.UUID{uuid.New()},
		History:   []entity.Interaction{{BusinessID: uuid.New(), Type: entity.InteractionView}},
	}

	assert.Equal(t, u, toPublicUserDomain(toPublicUserModel(u)))
}

func TestTrackingEventMapping(t *testing.T) {
	businessID := uuid.New()
	e := &entity.TrackingEvent{
		ID:         uuid.New(),
		Type:       entity.EventSearch,
		BusinessID: &businessID,
		Meta:       map[string]string{"q": "pizza"},
		At:         time.Now().UTC(),
	}

	assert.Equal(t, e, toTrackingEventDomain(toTrackingEventModel(e)))
}

func TestConstraintTranslation(t *testing.T) {
	assert.NoError(t, accountConstraints.translate(nil, "x"))

	dup := errors.New(`ERROR: duplicate key value violates unique constraint "idx_merchants_email" (SQLSTATE 23505)`)
	assert.ErrorIs(t, accountConstraints.translate(dup, "create"), repository.ErrDuplicateEmail)
	assert.ErrorIs(t, accountConstraints.translate(&pgconn.PgError{Code: "23505"}, "create"), repository.ErrDuplicateEmail)
	assert.ErrorIs(t, accountConstraints.translate(gorm.ErrDuplicatedKey, "create"), repository.ErrDuplicateEmail)

	check := &pgconn.PgError{Code: "23514", ConstraintName: "chk_businesses_ad_tier"}
	assert.ErrorIs(t, businessConstraints.translate(check, "update"), domainerrors.ErrInvalidAdTier)

	// Violations a table does not map stay wrapped driver errors.
	err := businessConstraints.translate(dup, "create business")
	assert.NotErrorIs(t, err, repository.ErrDuplicateEmail)
	assert.Contains(t, err.Error(), "create business")

	assert.Empty(t, sqlState(assert.AnError))
}
