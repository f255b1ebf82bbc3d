package persistence

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"

	"vitrina/config"
	"vitrina/internal/infra/auth"
)

func newParams(t *testing.T, driver string) StoreParams {
	t.Helper()

	cfg := &config.Config{
		Storage: config.StorageConfig{Driver: driver},
		Auth:    &config.AuthConfig{BcryptCost: 4},
		Ads:     &config.AdsConfig{Duration: 30 * 24 * time.Hour},
	}

	return StoreParams{
		Lc:     fxtest.NewLifecycle(t),
		Config: cfg,
		Hasher: auth.NewBcryptHasher(cfg),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestNewStore(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		store, err := NewStore(newParams(t, config.StorageMemory))
		require.NoError(t, err)

		businesses, err := store.Businesses().List(t.Context())
		require.NoError(t, err)
		assert.Len(t, businesses, 13)

		catalog, err := store.Catalog().GetCatalog(t.Context())
		require.NoError(t, err)
		assert.NotEmpty(t, catalog.Categories)
	})

	t.Run("postgres without connection settings", func(t *testing.T) {
		_, err := NewStore(newParams(t, config.StoragePostgres))
		assert.Error(t, err)
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := NewStore(newParams(t, "cassandra"))
		assert.ErrorContains(t, err, "unknown storage driver")
	})
}
