package impl

import (
	"context"
	"log/slog"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	"vitrina/internal/domain/entity"
	"vitrina/internal/domain/ranking"
	"vitrina/internal/domain/recommend"
	"vitrina/internal/domain/repository"
	"vitrina/internal/usecase"
)

type directoryService struct {
	businessRepo   repository.BusinessRepository
	publicUserRepo repository.PublicUserRepository
	logger         *slog.Logger
}

// DirectoryServiceParams holds dependencies for DirectoryService, injected by Fx.
type DirectoryServiceParams struct {
	fx.In

	BusinessRepo   repository.BusinessRepository
	PublicUserRepo repository.PublicUserRepository
	Logger         *slog.Logger
}

// NewDirectoryService is the constructor for directoryService.
func NewDirectoryService(params DirectoryServiceParams) usecase.DirectoryUsecase {
	return &directoryService{
		businessRepo:   params.BusinessRepo,
		publicUserRepo: params.PublicUserRepo,
		logger:         params.Logger,
	}
}

// Home builds the landing view: ranked banner buckets, one page of the listing and,
// for signed-in public users, their recommendations.
func (srv *directoryService) Home(ctx context.Context, input *usecase.HomeInput) (*usecase.HomeOutput, error) {
	businesses, err := srv.businessRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list businesses")
	}

	filters := input.Filters
	if input.UseDefaultFilters {
		filters = ranking.DefaultFilters()
	}

	query := ranking.Query{Filters: filters, Page: input.Page}
	if input.Lat != nil && input.Lon != nil {
		query.Origin = &orb.Point{*input.Lon, *input.Lat}
	}

	result := ranking.Rank(businesses, query)
	output := &usecase.HomeOutput{
		HomeBanners:     result.HomeBanner,
		HeaderBanners:   result.HeaderBanner,
		Listing:         result.Listing,
		Recommendations: []*entity.Business{},
		Filters:         filters,
	}

	if input.UserID != nil {
		user, err := srv.publicUserRepo.FindByID(ctx, *input.UserID)
		switch {
		case errors.Is(err, repository.ErrPublicUserNotFound):
			// Stale ids from old sessions just get no recommendations.
			requestLogger(ctx, srv.logger).Debug("Home requested for unknown public user",
				slog.String("user_id", input.UserID.String()))
		case err != nil:
			return nil, errors.Wrap(err, "failed to find public user")
		default:
			output.Recommendations = recommend.Recommend(user, businesses, recommend.DefaultLimit)
		}
	}

	return output, nil
}
