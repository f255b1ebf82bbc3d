package impl

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	"vitrina/config"
	"vitrina/internal/domain/entity"
	domainerrors "vitrina/internal/domain/errors"
	"vitrina/internal/domain/repository"
	"vitrina/internal/domain/service"
	"vitrina/internal/infra/metrics"
	"vitrina/internal/usecase"
)

type businessService struct {
	businessRepo   repository.BusinessRepository
	bannerRepo     repository.BannerRepository
	catalogRepo    repository.CatalogRepository
	merchantRepo   repository.MerchantRepository
	publicUserRepo repository.PublicUserRepository
	qrcodeService  service.QRCodeService
	adDuration     time.Duration
	logger         *slog.Logger
	now            func() time.Time
}

// BusinessServiceParams holds dependencies for BusinessService, injected by Fx.
type BusinessServiceParams struct {
	fx.In

	BusinessRepo   repository.BusinessRepository
	BannerRepo     repository.BannerRepository
	CatalogRepo    repository.CatalogRepository
	MerchantRepo   repository.MerchantRepository
	PublicUserRepo repository.PublicUserRepository
	QRCodeService  service.QRCodeService
	Config         *config.Config
	Logger         *slog.Logger
}

// NewBusinessService is the constructor for businessService.
func NewBusinessService(params BusinessServiceParams) usecase.BusinessUsecase {
	return &businessService{
		businessRepo:   params.BusinessRepo,
		bannerRepo:     params.BannerRepo,
		catalogRepo:    params.CatalogRepo,
		merchantRepo:   params.MerchantRepo,
		publicUserRepo: params.PublicUserRepo,
		qrcodeService:  params.QRCodeService,
		adDuration:     params.Config.Ads.Duration,
		logger:         params.Logger,
		now:            time.Now,
	}
}

// Create stores a new listing owned by ownerID. Paid tiers start their expiry clock now.
func (srv *businessService) Create(ctx context.Context, ownerID uuid.UUID, input *usecase.CreateBusinessInput) (*entity.Business, error) {
	if _, err := srv.merchantRepo.FindByID(ctx, ownerID); err != nil {
		return nil, translate(err, "failed to find owner")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("name is required")
	}

	tier := entity.AdTier(input.AdTier)
	if input.AdTier == 0 {
		tier = entity.AdTierFree
	}
	if !tier.IsValid() {
		return nil, domainerrors.ErrInvalidAdTier
	}

	catalog, err := srv.catalogRepo.GetCatalog(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load catalog")
	}

	now := srv.now()
	business := &entity.Business{
		ID:            uuid.New(),
		Name:          strings.TrimSpace(input.Name),
		CategoryID:    input.CategoryID,
		SubcategoryID: input.SubcategoryID,
		ProvinceID:    input.ProvinceID,
		CityID:        input.CityID,
		Neighborhood:  input.Neighborhood,
		Address:       input.Address,
		OwnerID:       ownerID,
		Phone:         input.Phone,
		WhatsApp:      input.WhatsApp,
		Email:         input.Email,
		Website:       input.Website,
		Instagram:     input.Instagram,
		Description:   input.Description,
		Image:         input.Image,
		Gallery:       nonNilStrings(input.Gallery),
		AutoRenew:     input.AutoRenew,
		Opinions:      []entity.Opinion{},
		Lat:           input.Lat,
		Lon:           input.Lon,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if !catalog.Validate(business) {
		return nil, domainerrors.ErrUnknownCatalogEntry
	}
	catalog.Denormalize(business)
	business.SetAdTier(tier, now, srv.adDuration)

	if err := srv.businessRepo.Create(ctx, business); err != nil {
		return nil, translate(err, "failed to create business")
	}
	if err := syncBanner(ctx, srv.bannerRepo, business); err != nil {
		return nil, err
	}

	requestLogger(ctx, srv.logger).Info("Business created",
		slog.String("business_id", business.ID.String()),
		slog.Int("ad_tier", int(business.AdTier)),
	)

	return business, nil
}

// Get returns a single listing.
func (srv *businessService) Get(ctx context.Context, id uuid.UUID) (*entity.Business, error) {
	business, err := srv.businessRepo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "failed to find business")
	}

	return business, nil
}

// Update applies a partial edit on behalf of the owner.
func (srv *businessService) Update(ctx context.Context, actorID, id uuid.UUID, input *usecase.UpdateBusinessInput) (*entity.Business, error) {
	catalog, err := srv.catalogRepo.GetCatalog(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load catalog")
	}

	now := srv.now()
	updated, err := srv.businessRepo.Update(ctx, id, func(b *entity.Business) error {
		if b.OwnerID != actorID {
			return domainerrors.ErrBusinessOwnershipViolation
		}

		if err := applyBusinessUpdate(b, input); err != nil {
			return err
		}
		if input.AdTier != nil {
			tier := entity.AdTier(*input.AdTier)
			if !tier.IsValid() {
				return domainerrors.ErrInvalidAdTier
			}
			if tier != b.AdTier {
				b.SetAdTier(tier, now, srv.adDuration)
			}
		}
		if !catalog.Validate(b) {
			return domainerrors.ErrUnknownCatalogEntry
		}
		catalog.Denormalize(b)
		b.UpdatedAt = now

		return nil
	})
	if err != nil {
		return nil, translate(err, "failed to update business")
	}

	if err := syncBanner(ctx, srv.bannerRepo, updated); err != nil {
		return nil, err
	}

	return updated, nil
}

func applyBusinessUpdate(b *entity.Business, input *usecase.UpdateBusinessInput) error {
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return domainerrors.ErrValidationFailed.WithDetails("name cannot be empty")
		}
		b.Name = name
	}

	fields := []struct {
		src *string
		dst *string
	}{
		{input.CategoryID, &b.CategoryID},
		{input.SubcategoryID, &b.SubcategoryID},
		{input.ProvinceID, &b.ProvinceID},
		{input.CityID, &b.CityID},
		{input.Neighborhood, &b.Neighborhood},
		{input.Address, &b.Address},
		{input.Phone, &b.Phone},
		{input.WhatsApp, &b.WhatsApp},
		{input.Email, &b.Email},
		{input.Website, &b.Website},
		{input.Instagram, &b.Instagram},
		{input.Description, &b.Description},
		{input.Image, &b.Image},
	}
	for _, f := range fields {
		if f.src != nil {
			*f.dst = *f.src
		}
	}

	if input.Gallery != nil {
		b.Gallery = slices.Clone(input.Gallery)
	}
	if input.AutoRenew != nil {
		b.AutoRenew = *input.AutoRenew
	}
	if input.Lat != nil {
		lat := *input.Lat
		b.Lat = &lat
	}
	if input.Lon != nil {
		lon := *input.Lon
		b.Lon = &lon
	}

	return nil
}

// Delete removes the listing and its banner.
func (srv *businessService) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	business, err := srv.businessRepo.FindByID(ctx, id)
	if err != nil {
		return translate(err, "failed to find business")
	}
	if business.OwnerID != actorID {
		return domainerrors.ErrBusinessOwnershipViolation
	}

	if err := srv.businessRepo.Delete(ctx, id); err != nil {
		return translate(err, "failed to delete business")
	}
	if err := srv.bannerRepo.DeleteByBusiness(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete banner")
	}

	requestLogger(ctx, srv.logger).Info("Business deleted", slog.String("business_id", id.String()))

	return nil
}

// AddOpinion appends a rated opinion written by a public user and records it in their history.
func (srv *businessService) AddOpinion(ctx context.Context, authorID, businessID uuid.UUID, input *usecase.OpinionInput) (*entity.Opinion, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, domainerrors.ErrInvalidRating
	}

	author, err := srv.publicUserRepo.FindByID(ctx, authorID)
	if err != nil {
		return nil, translate(err, "failed to find author")
	}

	now := srv.now()
	opinion := entity.Opinion{
		ID:         uuid.New(),
		AuthorID:   author.ID,
		AuthorName: author.DisplayName(),
		Rating:     input.Rating,
		Text:       strings.TrimSpace(input.Text),
		CreatedAt:  now,
		Likes:      []uuid.UUID{},
	}

	business, err := srv.businessRepo.Update(ctx, businessID, func(b *entity.Business) error {
		b.Opinions = append(b.Opinions, opinion)

		return nil
	})
	if err != nil {
		return nil, translate(err, "failed to add opinion")
	}

	_, err = srv.publicUserRepo.Update(ctx, authorID, func(u *entity.PublicUser) error {
		u.RecordInteraction(entity.Interaction{
			BusinessID:   business.ID,
			Type:         entity.InteractionOpinion,
			At:           now,
			BusinessName: business.Name,
		})

		return nil
	})
	if err != nil {
		return nil, translate(err, "failed to record opinion in history")
	}

	return &opinion, nil
}

// Reply sets the owner's answer to an opinion, replacing any previous reply.
func (srv *businessService) Reply(ctx context.Context, actorID, businessID, opinionID uuid.UUID, text string) (*entity.Opinion, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("reply text is required")
	}

	var result entity.Opinion
	_, err := srv.businessRepo.Update(ctx, businessID, func(b *entity.Business) error {
		if b.OwnerID != actorID {
			return domainerrors.ErrBusinessOwnershipViolation
		}
		opinion, ok := b.FindOpinion(opinionID)
		if !ok {
			return domainerrors.ErrOpinionNotFound
		}
		opinion.Reply = &entity.OpinionReply{Text: text, CreatedAt: srv.now()}
		result = *opinion
		result.Likes = slices.Clone(opinion.Likes)

		return nil
	})
	if err != nil {
		return nil, translate(err, "failed to reply opinion")
	}

	return &result, nil
}

// ToggleLike adds or removes userID from the opinion likes.
func (srv *businessService) ToggleLike(ctx context.Context, userID, businessID, opinionID uuid.UUID) (*entity.Opinion, error) {
	var result entity.Opinion
	_, err := srv.businessRepo.Update(ctx, businessID, func(b *entity.Business) error {
		opinion, ok := b.FindOpinion(opinionID)
		if !ok {
			return domainerrors.ErrOpinionNotFound
		}
		opinion.ToggleLike(userID)
		result = *opinion
		result.Likes = slices.Clone(opinion.Likes)

		return nil
	})
	if err != nil {
		return nil, translate(err, "failed to toggle like")
	}

	return &result, nil
}

// ShareQR renders the PNG QR code pointing at the public business page.
func (srv *businessService) ShareQR(ctx context.Context, id uuid.UUID) ([]byte, error) {
	if _, err := srv.businessRepo.FindByID(ctx, id); err != nil {
		return nil, translate(err, "failed to find business")
	}

	png, err := srv.qrcodeService.GenerateBusinessQR(id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate QR code")
	}

	return png, nil
}

// SweepExpiredAds renews or downgrades every paid placement whose expiry has passed and
// returns how many businesses changed.
func (srv *businessService) SweepExpiredAds(ctx context.Context, now time.Time) (int, error) {
	businesses, err := srv.businessRepo.List(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to list businesses")
	}

	logger := requestLogger(ctx, srv.logger)
	swept := 0
	for _, candidate := range businesses {
		if !candidate.AdExpired(now) {
			continue
		}

		changed := false
		updated, err := srv.businessRepo.Update(ctx, candidate.ID, func(b *entity.Business) error {
			if !b.AdExpired(now) {
				return nil
			}
			changed = true
			if b.AutoRenew {
				b.SetAdTier(b.AdTier, now, srv.adDuration)
			} else {
				b.SetAdTier(entity.AdTierFree, now, srv.adDuration)
			}
			b.UpdatedAt = now

			return nil
		})
		if errors.Is(err, repository.ErrBusinessNotFound) {
			continue
		}
		if err != nil {
			return swept, errors.Wrap(err, "failed to sweep business")
		}
		if !changed {
			continue
		}

		if err := syncBanner(ctx, srv.bannerRepo, updated); err != nil {
			return swept, err
		}
		swept++
		metrics.RecordAdExpiry(updated.AutoRenew)

		logger.Info("Ad placement expired",
			slog.String("business_id", updated.ID.String()),
			slog.Bool("renewed", updated.AutoRenew),
			slog.Int("ad_tier", int(updated.AdTier)),
		)
	}

	return swept, nil
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}

	return slices.Clone(values)
}
