package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"vitrina/config"
	"vitrina/internal/domain/entity"
	"vitrina/internal/infra/auth"
	"vitrina/internal/infra/persistence/memory"
	"vitrina/internal/infra/persistence/seed"
	"vitrina/internal/infra/qrcode"
	"vitrina/internal/usecase"
)

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (plainHasher) Check(password, hash string) bool   { return hash == "hashed:"+password }

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishTrackingEvent(ctx context.Context, event *entity.TrackingEvent) error {
	args := m.Called(ctx, event)

	return args.Error(0)
}

func (m *mockPublisher) Close() error {
	return m.Called().Error(0)
}

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{TokenTTL: time.Hour},
		Ads: &config.AdsConfig{
			Duration:      30 * 24 * time.Hour,
			SweepInterval: time.Hour,
			Prices:        config.DefaultPrices(),
		},
		QRCode: &config.QRCodeConfig{Size: 128, ErrorCorrectionLevel: "M", BaseURL: "https://vitrina.test"},
	}
	cfg.SecretKey.Access = "test-secret"

	return cfg
}

// harness wires every service over a freshly seeded in-memory store.
type harness struct {
	store     *memory.Store
	cfg       *config.Config
	publisher *mockPublisher

	merchants   usecase.MerchantUsecase
	businesses  usecase.BusinessUsecase
	publicUsers usecase.PublicUserUsecase
	directory   usecase.DirectoryUsecase
	data        usecase.DataUsecase
	payments    usecase.PaymentUsecase
	analytics   usecase.AnalyticsUsecase
	chat        usecase.ChatUsecase
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	cfg := newTestConfig()
	store, err := memory.NewStore(plainHasher{}, cfg.Ads.Duration)
	require.NoError(t, err)

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	logger := newDiscardLogger()
	publisher := &mockPublisher{}

	return &harness{
		store:     store,
		cfg:       cfg,
		publisher: publisher,
		merchants: NewMerchantService(MerchantServiceParams{
			MerchantRepo: store.Merchants(),
			BusinessRepo: store.Businesses(),
			Hasher:       plainHasher{},
			TokenService: tokens,
			Logger:       logger,
		}),
		businesses: NewBusinessService(BusinessServiceParams{
			BusinessRepo:   store.Businesses(),
			BannerRepo:     store.Banners(),
			CatalogRepo:    store.Catalog(),
			MerchantRepo:   store.Merchants(),
			PublicUserRepo: store.PublicUsers(),
			QRCodeService:  qrcode.NewQRCodeService(cfg),
			Config:         cfg,
			Logger:         logger,
		}),
		publicUsers: NewPublicUserService(PublicUserServiceParams{
			PublicUserRepo: store.PublicUsers(),
			BusinessRepo:   store.Businesses(),
			Hasher:         plainHasher{},
			TokenService:   tokens,
			Logger:         logger,
		}),
		directory: NewDirectoryService(DirectoryServiceParams{
			BusinessRepo:   store.Businesses(),
			PublicUserRepo: store.PublicUsers(),
			Logger:         logger,
		}),
		data: NewDataService(DataServiceParams{
			CatalogRepo:      store.Catalog(),
			MerchantRepo:     store.Merchants(),
			BusinessRepo:     store.Businesses(),
			BannerRepo:       store.Banners(),
			PaymentRepo:      store.Payments(),
			PublicUserRepo:   store.PublicUsers(),
			ConversationRepo: store.Conversations(),
			MessageRepo:      store.Messages(),
			Resetter:         store.Resetter(),
			Logger:           logger,
		}),
		payments: NewPaymentService(PaymentServiceParams{
			PaymentRepo:  store.Payments(),
			BusinessRepo: store.Businesses(),
			BannerRepo:   store.Banners(),
			CatalogRepo:  store.Catalog(),
			Config:       cfg,
			Logger:       logger,
		}),
		analytics: NewAnalyticsService(AnalyticsServiceParams{
			TrackingRepo: store.Tracking(),
			BusinessRepo: store.Businesses(),
			Publisher:    publisher,
			Logger:       logger,
		}),
		chat: NewChatService(ChatServiceParams{
			ConversationRepo: store.Conversations(),
			MessageRepo:      store.Messages(),
			BusinessRepo:     store.Businesses(),
			MerchantRepo:     store.Merchants(),
			PublicUserRepo:   store.PublicUsers(),
			Logger:           logger,
		}),
	}
}

//nolint:gochecknoglobals
var (
	demoMerchantID  = seed.ID("merchant/demo@vitrina.local")
	lauraMerchantID = seed.ID("merchant/laura@vitrina.local")
	parrillaID      = seed.ID("business/Parrilla Don Julio")
	cafeID          = seed.ID("business/Café del Bosque")
	ferreteriaID    = seed.ID("business/Ferretería El Tornillo")
	peluqueriaID    = seed.ID("business/Peluquería Estilo")
	heladeriaID     = seed.ID("business/Heladería Costa")
)

func (h *harness) registerPublicUser(t *testing.T, email string) *entity.PublicUser {
	t.Helper()

	session, err := h.publicUsers.Register(t.Context(), &usecase.RegisterPublicUserInput{
		Name:     "Ana",
		Surname:  "Pérez",
		Email:    email,
		Password: "secret",
	})
	require.NoError(t, err)

	return session.User
}

func ptr[T any](v T) *T {
	return &v
}

func mustBusiness(t *testing.T, h *harness, id uuid.UUID) *entity.Business {
	t.Helper()

	b, err := h.store.Businesses().FindByID(t.Context(), id)
	require.NoError(t, err)

	return b
}
