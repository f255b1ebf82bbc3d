// Package persistence selects the storage backend named by storage.driver and exposes its
// repositories to the fx graph.
package persistence

import (
	"log/slog"

	"github.com/pkg/errors"
	"go.uber.org/fx"

	"vitrina/config"
	"vitrina/internal/domain/repository"
	"vitrina/internal/domain/service"
	"vitrina/internal/infra/persistence/memory"
	"vitrina/internal/infra/persistence/postgres"
)

// StoreParams holds the dependencies of NewStore.
type StoreParams struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Hasher service.PasswordHasher
	Logger *slog.Logger
}

// NewStore builds the configured backend. The memory store is seeded immediately; the
// PostgreSQL store migrates and seeds on start.
func NewStore(params StoreParams) (repository.Store, error) {
	switch params.Config.Storage.Driver {
	case config.StorageMemory:
		store, err := memory.Provide(memory.Params{Config: params.Config, Hasher: params.Hasher, Logger: params.Logger})
		if err != nil {
			return nil, err
		}

		return store, nil

	case config.StoragePostgres:
		db, err := postgres.New(postgres.Params{Lifecycle: params.Lc, Config: params.Config, Logger: params.Logger})
		if err != nil {
			return nil, err
		}

		return postgres.NewStore(postgres.StoreParams{
			Lc:     params.Lc,
			DB:     db,
			Config: params.Config,
			Hasher: params.Hasher,
			Logger: params.Logger,
		}), nil

	default:
		return nil, errors.Errorf("unknown storage driver: %s", params.Config.Storage.Driver)
	}
}

// Module provides the store and every repository view of it.
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(
		NewStore,
		func(s repository.Store) repository.MerchantRepository { return s.Merchants() },
		func(s repository.Store) repository.PublicUserRepository { return s.PublicUsers() },
		func(s repository.Store) repository.BusinessRepository { return s.Businesses() },
		func(s repository.Store) repository.BannerRepository { return s.Banners() },
		func(s repository.Store) repository.PaymentRepository { return s.Payments() },
		func(s repository.Store) repository.ConversationRepository { return s.Conversations() },
		func(s repository.Store) repository.MessageRepository { return s.Messages() },
		func(s repository.Store) repository.TrackingRepository { return s.Tracking() },
		func(s repository.Store) repository.CatalogRepository { return s.Catalog() },
		func(s repository.Store) repository.DataResetter { return s.Resetter() },
	),
)
