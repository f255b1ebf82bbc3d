package impl

import (
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "vitrina/internal/domain/errors"
	"vitrina/internal/infra/persistence/seed"
	"vitrina/internal/usecase"
)

func TestMerchantService_RegisterVerifyLogin(t *testing.T) {
	h := newHarness(t)
	ctx := t.Context()

	out, err := h.merchants.Register(ctx, &usecase.RegisterMerchantInput{
		Name:     "Nuevo Comercio",
		Email:    "  Nuevo@Example.COM ",
		Password: "pw123456",
		Phone:    "221555",
	})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), out.VerificationCode)
	assert.Equal(t, "nuevo@example.com", out.User.Email)
	assert.False(t, out.User.Verified)

	_, err = h.merchants.Login(ctx, &usecase.LoginInput{Email: "nuevo@example.com", Password: "pw123456"})
	require.ErrorIs(t, err, domainerrors.ErrAccountNotVerified)

	_, err = h.merchants.Verify(ctx, &usecase.VerifyMerchantInput{Email: "nuevo@example.com", Code: "wrong"})
	require.ErrorIs(t, err, domainerrors.ErrInvalidVerificationCode)

	verified, err := h.merchants.Verify(ctx, &usecase.VerifyMerchantInput{Email: "NUEVO@example.com", Code: out.VerificationCode})
	require.NoError(t, err)
	assert.True(t, verified.Verified)

	again, err := h.merchants.Verify(ctx, &usecase.VerifyMerchantInput{Email: "nuevo@example.com", Code: "whatever"})
	require.NoError(t, err)
	assert.True(t, again.Verified)

	session, err := h.merchants.Login(ctx, &usecase.LoginInput{Email: "Nuevo@example.com", Password: "pw123456"})
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, out.User.ID, session.User.ID)
}

func TestMerchantService_Register_DuplicateEmail(t *testing.T) {
	h := newHarness(t)

	_, err := h.merchants.Register(t.Context(), &usecase.RegisterMerchantInput{
		Name:     "Otro",
		Email:    "DEMO@vitrina.local",
		Password: "x",
	})
	require.ErrorIs(t, err, domainerrors.ErrEmailAlreadyExists)
}

func TestMerchantService_Register_MissingFields(t *testing.T) {
	h := newHarness(t)

	_, err := h.merchants.Register(t.Context(), &usecase.RegisterMerchantInput{Email: "a@b.c"})
	require.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestMerchantService_Login(t *testing.T) {
	h := newHarness(t)
	ctx := t.Context()

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "seeded account", email: "demo@vitrina.local", password: seed.DemoPassword},
		{name: "wrong password", email: "demo@vitrina.local", password: "nope", wantErr: domainerrors.ErrInvalidCredentials},
		{name: "unknown email", email: "ghost@vitrina.local", password: seed.DemoPassword, wantErr: domainerrors.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := h.merchants.Login(ctx, &usecase.LoginInput{Email: tt.email, Password: tt.password})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, demoMerchantID, session.User.ID)
		})
	}
}

func TestMerchantService_Update(t *testing.T) {
	h := newHarness(t)
	ctx := t.Context()

	_, err := h.merchants.Update(ctx, lauraMerchantID, demoMerchantID, &usecase.UpdateMerchantInput{Name: ptr("x")})
	require.ErrorIs(t, err, domainerrors.ErrForbidden)

	updated, err := h.merchants.Update(ctx, demoMerchantID, demoMerchantID, &usecase.UpdateMerchantInput{
		Name:     ptr("Demo Renombrado"),
		Password: ptr("nueva"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Demo Renombrado", updated.Name)

	_, err = h.merchants.Login(ctx, &usecase.LoginInput{Email: "demo@vitrina.local", Password: "nueva"})
	require.NoError(t, err)

	_, err = h.merchants.Update(ctx, demoMerchantID, demoMerchantID, &usecase.UpdateMerchantInput{Name: ptr("  ")})
	require.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestMerchantService_ListBusinesses(t *testing.T) {
	h := newHarness(t)
	ctx := t.Context()

	businesses, err := h.merchants.ListBusinesses(ctx, lauraMerchantID)
	require.NoError(t, err)
	require.NotEmpty(t, businesses)
	for _, b := range businesses {
		assert.Equal(t, lauraMerchantID, b.OwnerID)
	}

	_, err = h.merchants.ListBusinesses(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrMerchantNotFound)
}
