package impl

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	"vitrina/config"
	"vitrina/internal/domain/entity"
	domainerrors "vitrina/internal/domain/errors"
	"vitrina/internal/domain/repository"
	"vitrina/internal/usecase"
)

const checkoutURL = "https://checkout.vitrina.local/pay"

type paymentService struct {
	paymentRepo  repository.PaymentRepository
	businessRepo repository.BusinessRepository
	bannerRepo   repository.BannerRepository
	catalogRepo  repository.CatalogRepository
	prices       map[int]float64
	adDuration   time.Duration
	logger       *slog.Logger
	now          func() time.Time
}

// PaymentServiceParams holds dependencies for PaymentService, injected by Fx.
type PaymentServiceParams struct {
	fx.In

	PaymentRepo  repository.PaymentRepository
	BusinessRepo repository.BusinessRepository
	BannerRepo   repository.BannerRepository
	CatalogRepo  repository.CatalogRepository
	Config       *config.Config
	Logger       *slog.Logger
}

// NewPaymentService is the constructor for paymentService.
func NewPaymentService(params PaymentServiceParams) usecase.PaymentUsecase {
	return &paymentService{
		paymentRepo:  params.PaymentRepo,
		businessRepo: params.BusinessRepo,
		bannerRepo:   params.BannerRepo,
		catalogRepo:  params.CatalogRepo,
		prices:       params.Config.Ads.Prices,
		adDuration:   params.Config.Ads.Duration,
		logger:       params.Logger,
		now:          time.Now,
	}
}

// CreatePreference opens a simulated checkout for upgrading a business to a paid tier.
func (srv *paymentService) CreatePreference(ctx context.Context, actorID uuid.UUID, input *usecase.CreatePreferenceInput) (*usecase.PreferenceOutput, error) {
	level := entity.AdTier(input.Level)
	price, ok := srv.prices[input.Level]
	if !level.IsValid() || !level.IsPaid() || !ok {
		return nil, domainerrors.ErrInvalidAdTier
	}

	business, err := srv.businessRepo.FindByID(ctx, input.BusinessID)
	if err != nil {
		return nil, translate(err, "failed to find business")
	}
	if business.OwnerID != actorID {
		return nil, domainerrors.ErrBusinessOwnershipViolation
	}

	payment := &entity.Payment{
		ID:           uuid.New(),
		PreferenceID: "pref-" + uuid.NewString(),
		BusinessID:   business.ID,
		BusinessName: business.Name,
		MerchantID:   actorID,
		Level:        level,
		Amount:       price,
		Status:       entity.PaymentPending,
		CreatedAt:    srv.now(),
	}
	if err := srv.paymentRepo.Create(ctx, payment); err != nil {
		return nil, translate(err, "failed to create payment")
	}

	requestLogger(ctx, srv.logger).Info("Payment preference created",
		slog.String("preference_id", payment.PreferenceID),
		slog.String("business_id", business.ID.String()),
		slog.Int("level", input.Level),
	)

	return &usecase.PreferenceOutput{
		PreferenceID: payment.PreferenceID,
		InitPoint:    checkoutURL + "?pref_id=" + url.QueryEscape(payment.PreferenceID),
		Amount:       price,
	}, nil
}

// Confirm approves a checkout and applies the purchased tier. Confirming an already
// approved preference returns the business unchanged.
func (srv *paymentService) Confirm(ctx context.Context, actorID uuid.UUID, input *usecase.ConfirmPaymentInput) (*entity.Business, error) {
	var payment *entity.Payment
	businessID, level := input.BusinessID, entity.AdTier(input.Level)

	if input.PreferenceID != "" {
		found, err := srv.paymentRepo.FindByPreferenceID(ctx, input.PreferenceID)
		if err != nil {
			return nil, translate(err, "failed to find payment")
		}
		if found.MerchantID != actorID {
			return nil, domainerrors.ErrBusinessOwnershipViolation
		}
		if found.Status == entity.PaymentApproved {
			business, err := srv.businessRepo.FindByID(ctx, found.BusinessID)
			if err != nil {
				return nil, translate(err, "failed to find business")
			}

			return business, nil
		}
		payment = found
		businessID, level = found.BusinessID, found.Level
	}

	if !level.IsValid() || !level.IsPaid() {
		return nil, domainerrors.ErrInvalidAdTier
	}

	catalog, err := srv.catalogRepo.GetCatalog(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load catalog")
	}

	now := srv.now()
	business, err := srv.businessRepo.Update(ctx, businessID, func(b *entity.Business) error {
		if b.OwnerID != actorID {
			return domainerrors.ErrBusinessOwnershipViolation
		}
		b.SetAdTier(level, now, srv.adDuration)
		catalog.Denormalize(b)
		b.UpdatedAt = now

		return nil
	})
	if err != nil {
		return nil, translate(err, "failed to apply ad tier")
	}

	if err := syncBanner(ctx, srv.bannerRepo, business); err != nil {
		return nil, err
	}

	if err := srv.recordApproval(ctx, payment, business, now); err != nil {
		return nil, err
	}

	requestLogger(ctx, srv.logger).Info("Payment confirmed",
		slog.String("business_id", business.ID.String()),
		slog.Int("level", int(level)),
	)

	return business, nil
}

// recordApproval marks the pending payment approved, or stores an approved record when the
// confirmation came without a preference.
func (srv *paymentService) recordApproval(ctx context.Context, payment *entity.Payment, business *entity.Business, now time.Time) error {
	approvedAt := now
	if payment != nil {
		payment.Status = entity.PaymentApproved
		payment.ApprovedAt = &approvedAt

		return translate(srv.paymentRepo.Save(ctx, payment), "failed to save payment")
	}

	direct := &entity.Payment{
		ID:           uuid.New(),
		PreferenceID: "direct-" + uuid.NewString(),
		BusinessID:   business.ID,
		BusinessName: business.Name,
		MerchantID:   business.OwnerID,
		Level:        business.AdTier,
		Amount:       srv.prices[int(business.AdTier)],
		Status:       entity.PaymentApproved,
		CreatedAt:    now,
		ApprovedAt:   &approvedAt,
	}

	return translate(srv.paymentRepo.Create(ctx, direct), "failed to record payment")
}
