package impl

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrina/internal/domain/entity"
	domainerrors "vitrina/internal/domain/errors"
	"vitrina/internal/usecase"
)

func TestPaymentService_CreatePreference(t *testing.T) {
	h := newHarness(t)
	ctx := t.Context()

	pref, err := h.payments.CreatePreference(ctx, lauraMerchantID, &usecase.CreatePreferenceInput{
		BusinessID: peluqueriaID,
		Level:      int(entity.AdTierHeaderBanner),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(pref.PreferenceID, "pref-"))
	assert.Contains(t, pref.InitPoint, pref.PreferenceID)
	assert.InDelta(t, h.cfg.Ads.Prices[5], pref.Amount, 1e-9)

	payment, err := h.store.Payments().FindByPreferenceID(ctx, pref.PreferenceID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentPending, payment.Status)
	assert.Equal(t, "Peluquería Estilo", payment.BusinessName)

	tests := []struct {
		name    string
		actor   uuid.UUID
		input   usecase.CreatePreferenceInput
		wantErr error
	}{
		{"free tier", lauraMerchantID, usecase.CreatePreferenceInput{BusinessID: peluqueriaID, Level: 1}, domainerrors.ErrInvalidAdTier},
		{"out of range", lauraMerchantID, usecase.CreatePreferenceInput{BusinessID: peluqueriaID, Level: 9}, domainerrors.ErrInvalidAdTier},
		{"not owner", demoMerchantID, usecase.CreatePreferenceInput{BusinessID: peluqueriaID, Level: 2}, domainerrors.ErrBusinessOwnershipViolation},
		{"unknown business", lauraMerchantID, usecase.CreatePreferenceInput{BusinessID: uuid.New(), Level: 2}, domainerrors.ErrBusinessNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.payments.CreatePreference(ctx, tt.actor, &tt.input)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPaymentService_Confirm_ByPreference(t *testing.T) {
	h := newHarness(t)
	ctx := t.Context()

	pref, err := h.payments.CreatePreference(ctx, lauraMerchantID, &usecase.CreatePreferenceInput{
		BusinessID: peluqueriaID,
		Level:      int(entity.AdTierHomeBanner),
	})
	require.NoError(t, err)

	before := time.Now()
	business, err := h.payments.Confirm(ctx, lauraMerchantID, &usecase.ConfirmPaymentInput{PreferenceID: pref.PreferenceID})
	require.NoError(t, err)
	assert.Equal(t, entity.AdTierHomeBanner, business.AdTier)
	require.NotNil(t, business.AdExpiresAt)
	assert.WithinDuration(t, before.Add(h.cfg.Ads.Duration), *business.AdExpiresAt, time.Minute)
	assert.Equal(t, "La Plata", business.CityName)

	banner, ok := bannerFor(t, h, peluqueriaID)
	require.True(t, ok)
	assert.Equal(t, entity.AdTierHomeBanner, banner.Tier)

	payment, err := h.store.Payments().FindByPreferenceID(ctx, pref.PreferenceID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentApproved, payment.Status)
	assert.NotNil(t, payment.ApprovedAt)

	again, err := h.payments.Confirm(ctx, lauraMerchantID, &usecase.ConfirmPaymentInput{PreferenceID: pref.PreferenceID})
	require.NoError(t, err)
	assert.Equal(t, business.AdExpiresAt, again.AdExpiresAt, "confirming twice does not extend the placement")
}

func TestPaymentService_Confirm_Direct(t *testing.T) {
	h := newHarness(t)
	ctx := t.Context()

	business, err := h.payments.Confirm(ctx, demoMerchantID, &usecase.ConfirmPaymentInput{
		BusinessID: ferreteriaID,
		Level:      int(entity.AdTierFeatured),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.AdTierFeatured, business.AdTier)

	payments, err := h.store.Payments().List(ctx)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, entity.PaymentApproved, payments[0].Status)

	_, err = h.payments.Confirm(ctx, lauraMerchantID, &usecase.ConfirmPaymentInput{BusinessID: ferreteriaID, Level: 3})
	require.ErrorIs(t, err, domainerrors.ErrBusinessOwnershipViolation)

	_, err = h.payments.Confirm(ctx, demoMerchantID, &usecase.ConfirmPaymentInput{PreferenceID: "pref-missing"})
	require.ErrorIs(t, err, domainerrors.ErrPaymentNotFound)
}
