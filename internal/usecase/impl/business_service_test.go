package impl

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrina/internal/domain/entity"
	domainerrors "vitrina/internal/domain/errors"
	"vitrina/internal/usecase"
)

func validCreateInput() *usecase.CreateBusinessInput {
	return &usecase.CreateBusinessInput{
		Name:          "Almacén Nuevo",
		CategoryID:    "comercio",
		SubcategoryID: "ferreteria",
		ProvinceID:    "06",
		CityID:        "06441",
		Neighborhood:  "Centro",
		Phone:         "221000",
	}
}

func bannerFor(t *testing.T, h *harness, businessID uuid.UUID) (*entity.Banner, bool) {
	t.Helper()

	banners, err := h.store.Banners().List(t.Context())
	require.NoError(t, err)
	for _, b := range banners {
		if b.BusinessID == businessID {
			return b, true
		}
	}

	return nil, false
}

func TestBusinessService_Create(t *testing.T) {
	h := newHarness(t)
	ctx := t.Context()

	t.Run("free tier by default", func(t *testing.T) {
		b, err := h.businesses.Create(ctx, demoMerchantID, validCreateInput())
		require.NoError(t, err)
		assert.Equal(t, entity.AdTierFree, b.AdTier)
		assert.Nil(t, b.AdExpiresAt)
		assert.Equal(t, "La Plata", b.CityName)
		assert.Equal(t, demoMerchantID, b.OwnerID)
		assert.NotNil(t, b.Gallery)
		assert.NotNil(t, b.Opinions)
	})

	t.Run("paid tier expires after the ad duration", func(t *testing.T) {
		input := validCreateInput()
		input.AdTier = int(entity.AdTierPremium)

		before := time.Now()
		b, err := h.businesses.Create(ctx, demoMerchantID, input)
		require.NoError(t, err)
		require.NotNil(t, b.AdExpiresAt)
		assert.WithinDuration(t, before.Add(h.cfg.Ads.Duration), *b.AdExpiresAt, time.Minute)
	})

	t.Run("banner tier creates a banner", func(t *testing.T) {
		input := validCreateInput()
		input.AdTier = int(entity.AdTierHomeBanner)

		b, err := h.businesses.Create(ctx, demoMerchantID, input)
		require.NoError(t, err)

		banner, ok := bannerFor(t, h, b.ID)
		require.True(t, ok)
		assert.Equal(t, entity.AdTierHomeBanner, banner.Tier)
	})

	t.Run("invalid tier", func(t *testing.T) {
		input := validCreateInput()
		input.AdTier = 7

		_, err := h.businesses.Create(ctx, demoMerchantID, input)
		require.ErrorIs(t, err, domainerrors.ErrInvalidAdTier)
	})

	t.Run("city outside province", func(t *testing.T) {
		input := validCreateInput()
		input.CityID = "14014"

		_, err := h.businesses.Create(ctx, demoMerchantID, input)
		require.ErrorIs(t, err, domainerrors.ErrUnknownCatalogEntry)
	})

	t.Run("unknown owner", func(t *testing.T) {
		_, err := h.businesses.Create(ctx, uuid.New(), validCreateInput())
		require.ErrorIs(t, err, domainerrors.ErrMerchantNotFound)
	})
}

func TestBusinessService_Update(t *testing.T) {
	h := newHarness(t)
	ctx := t.Context()

	_, err := h.businesses.Update(ctx, lauraMerchantID, parrillaID, &usecase.UpdateBusinessInput{Name: ptr("x")})
	require.ErrorIs(t, err, domainerrors.ErrBusinessOwnershipViolation)

	updated, err := h.businesses.Update(ctx, demoMerchantID, parrillaID, &usecase.UpdateBusinessInput{
		Description: ptr("Nueva descripción"),
		AdTier:      ptr(int(entity.AdTierBasic)),
	})
	require.NoError(t, err)
	assert.Equal(t, "Nueva descripción", updated.Description)
	assert.Equal(t, entity.AdTierBasic, updated.AdTier)
	assert.Equal(t, "Parrilla Don Julio", updated.Name)

	_, ok := bannerFor(t, h, parrillaID)
	assert.False(t, ok, "downgrading below tier 5 removes the banner")

	updated, err = h.businesses.Update(ctx, demoMerchantID, parrillaID, &usecase.UpdateBusinessInput{
		CategoryID:    ptr("salud"),
		SubcategoryID: ptr("farmacia"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Salud y Bienestar", updated.CategoryName)

	_, err = h.businesses.Update(ctx, demoMerchantID, parrillaID, &usecase.UpdateBusinessInput{SubcategoryID: ptr("pizzeria")})
	require.ErrorIs(t, err, domainerrors.ErrUnknownCatalogEntry)

	_, err = h.businesses.Update(ctx, demoMerchantID, uuid.New(), &usecase.UpdateBusinessInput{})
	require.ErrorIs(t, err, domainerrors.ErrBusinessNotFound)
}

func TestBusinessService_Delete(t *testing.T) {
	h := newHarness(t)
	ctx := t.Context()

	err := h.businesses.Delete(ctx, lauraMerchantID, cafeID)
	require.ErrorIs(t, err, domainerrors.ErrBusinessOwnershipViolation)

	require.NoError(t, h.businesses.Delete(ctx, demoMerchantID, cafeID))

	_, err = h.businesses.Get(ctx, cafeID)
	require.ErrorIs(t, err, domainerrors.ErrBusinessNotFound)

	_, ok := bannerFor(t, h, cafeID)
	assert.False(t, ok)
}

func TestBusinessService_Opinions(t *testing.T) {
	h := newHarness(t)
	ctx := t.Context()
	user := h.registerPublicUser(t, "ana@mail.com")

	_, err := h.businesses.AddOpinion(ctx, user.ID, peluqueriaID, &usecase.OpinionInput{Rating: 6})
	require.ErrorIs(t, err, domainerrors.ErrInvalidRating)

	_, err = h.businesses.AddOpinion(ctx, uuid.New(), peluqueriaID, &usecase.OpinionInput{Rating: 4})
	require.ErrorIs(t, err, domainerrors.ErrPublicUserNotFound)

	opinion, err := h.businesses.AddOpinion(ctx, user.ID, peluqueriaID, &usecase.OpinionInput{Rating: 4, Text: "Muy bien"})
	require.NoError(t, err)
	assert.Equal(t, "Ana Pérez", opinion.AuthorName)

	stored, err := h.store.PublicUsers().FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, stored.History, 1)
	assert.Equal(t, entity.InteractionOpinion, stored.History[0].Type)

	_, err = h.businesses.Reply(ctx, demoMerchantID, peluqueriaID, opinion.ID, "Gracias")
	require.ErrorIs(t, err, domainerrors.ErrBusinessOwnershipViolation)

	replied, err := h.businesses.Reply(ctx, lauraMerchantID, peluqueriaID, opinion.ID, "Gracias")
	require.NoError(t, err)
	require.NotNil(t, replied.Reply)
	assert.Equal(t, "Gracias", replied.Reply.Text)

	_, err = h.businesses.Reply(ctx, lauraMerchantID, peluqueriaID, uuid.New(), "Gracias")
	require.ErrorIs(t, err, domainerrors.ErrOpinionNotFound)

	liked, err := h.businesses.ToggleLike(ctx, user.ID, peluqueriaID, opinion.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{user.ID}, liked.Likes)

	unliked, err := h.businesses.ToggleLike(ctx, user.ID, peluqueriaID, opinion.ID)
	require.NoError(t, err)
	assert.Empty(t, unliked.Likes)

	b := mustBusiness(t, h, peluqueriaID)
	assert.InDelta(t, 4.0, b.AverageRating(), 1e-9)
}

func TestBusinessService_ShareQR(t *testing.T) {
	h := newHarness(t)
	ctx := t.Context()

	data, err := h.businesses.ShareQR(ctx, cafeID)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())

	_, err = h.businesses.ShareQR(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrBusinessNotFound)
}

func TestBusinessService_SweepExpiredAds(t *testing.T) {
	h := newHarness(t)
	ctx := t.Context()

	swept, err := h.businesses.SweepExpiredAds(ctx, time.Now())
	require.NoError(t, err)
	assert.Zero(t, swept, "fresh seed has nothing expired")

	later := time.Now().Add(h.cfg.Ads.Duration + time.Hour)
	swept, err = h.businesses.SweepExpiredAds(ctx, later)
	require.NoError(t, err)
	assert.Positive(t, swept)

	renewed := mustBusiness(t, h, parrillaID)
	assert.Equal(t, entity.AdTierHomeBanner, renewed.AdTier, "auto-renew keeps the tier")
	require.NotNil(t, renewed.AdExpiresAt)
	assert.WithinDuration(t, later.Add(h.cfg.Ads.Duration), *renewed.AdExpiresAt, time.Second)
	_, ok := bannerFor(t, h, parrillaID)
	assert.True(t, ok)

	downgraded := mustBusiness(t, h, cafeID)
	assert.Equal(t, entity.AdTierFree, downgraded.AdTier)
	assert.Nil(t, downgraded.AdExpiresAt)
	_, ok = bannerFor(t, h, cafeID)
	assert.False(t, ok)

	swept, err = h.businesses.SweepExpiredAds(ctx, later)
	require.NoError(t, err)
	assert.Zero(t, swept, "second sweep at the same instant is a no-op")
}
