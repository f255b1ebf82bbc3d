package impl

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"go.uber.org/fx"

	"vitrina/internal/domain/repository"
	"vitrina/internal/usecase"
)

type dataService struct {
	catalogRepo      repository.CatalogRepository
	merchantRepo     repository.MerchantRepository
	businessRepo     repository.BusinessRepository
	bannerRepo       repository.BannerRepository
	paymentRepo      repository.PaymentRepository
	publicUserRepo   repository.PublicUserRepository
	conversationRepo repository.ConversationRepository
	messageRepo      repository.MessageRepository
	resetter         repository.DataResetter
	logger           *slog.Logger
}

// DataServiceParams holds dependencies for DataService, injected by Fx.
type DataServiceParams struct {
	fx.In

	CatalogRepo      repository.CatalogRepository
	MerchantRepo     repository.MerchantRepository
	BusinessRepo     repository.BusinessRepository
	BannerRepo       repository.BannerRepository
	PaymentRepo      repository.PaymentRepository
	PublicUserRepo   repository.PublicUserRepository
	ConversationRepo repository.ConversationRepository
	MessageRepo      repository.MessageRepository
	Resetter         repository.DataResetter
	Logger           *slog.Logger
}

// NewDataService is the constructor for dataService.
func NewDataService(params DataServiceParams) usecase.DataUsecase {
	return &dataService{
		catalogRepo:      params.CatalogRepo,
		merchantRepo:     params.MerchantRepo,
		businessRepo:     params.BusinessRepo,
		bannerRepo:       params.BannerRepo,
		paymentRepo:      params.PaymentRepo,
		publicUserRepo:   params.PublicUserRepo,
		conversationRepo: params.ConversationRepo,
		messageRepo:      params.MessageRepo,
		resetter:         params.Resetter,
		logger:           params.Logger,
	}
}

// Snapshot returns every collection in one document.
func (srv *dataService) Snapshot(ctx context.Context) (*usecase.Snapshot, error) {
	catalog, err := srv.catalogRepo.GetCatalog(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load catalog")
	}

	snapshot := &usecase.Snapshot{
		Provinces:     catalog.Provinces,
		Cities:        catalog.Cities,
		Categories:    catalog.Categories,
		Subcategories: catalog.Subcategories,
	}

	if snapshot.Merchants, err = srv.merchantRepo.List(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to list merchants")
	}
	if snapshot.Businesses, err = srv.businessRepo.List(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to list businesses")
	}
	if snapshot.Banners, err = srv.bannerRepo.List(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to list banners")
	}
	if snapshot.Payments, err = srv.paymentRepo.List(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to list payments")
	}
	if snapshot.PublicUsers, err = srv.publicUserRepo.List(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to list public users")
	}
	if snapshot.Conversations, err = srv.conversationRepo.List(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to list conversations")
	}
	if snapshot.Messages, err = srv.messageRepo.List(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to list messages")
	}

	return snapshot, nil
}

// Reset restores the seed dataset.
func (srv *dataService) Reset(ctx context.Context) error {
	if err := srv.resetter.Reset(ctx); err != nil {
		return errors.Wrap(err, "failed to reset data")
	}

	requestLogger(ctx, srv.logger).Warn("Data reset to seed state")

	return nil
}
