package seed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrina/internal/domain/entity"
)

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (plainHasher) Check(password, hash string) bool   { return hash == "hashed:"+password }

func TestBuild(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	ds, err := Build(now, 30*24*time.Hour, plainHasher{})
	require.NoError(t, err)

	assert.Len(t, ds.Merchants, len(merchants))
	assert.Len(t, ds.Businesses, len(businesses))

	for _, m := range ds.Merchants {
		assert.True(t, m.Verified)
		assert.Equal(t, "hashed:"+DemoPassword, m.Password)
	}

	owners := map[string]bool{}
	for _, m := range ds.Merchants {
		owners[m.ID.String()] = true
	}

	banners := 0
	for _, b := range ds.Businesses {
		assert.True(t, b.AdTier.IsValid(), b.Name)
		assert.True(t, ds.Catalog.Validate(b), b.Name)
		assert.NotEmpty(t, b.ProvinceName, b.Name)
		assert.NotEmpty(t, b.CategoryName, b.Name)
		assert.True(t, owners[b.OwnerID.String()], b.Name)
		if b.AdTier.IsPaid() {
			require.NotNil(t, b.AdExpiresAt, b.Name)
			assert.Equal(t, now.Add(30*24*time.Hour), *b.AdExpiresAt)
		} else {
			assert.Nil(t, b.AdExpiresAt, b.Name)
		}
		if b.AdTier.IsBanner() {
			banners++
		}
	}
	assert.Len(t, ds.Banners, banners)
}

func TestBuild_Deterministic(t *testing.T) {
	now := time.Now()
	a, err := Build(now, time.Hour, plainHasher{})
	require.NoError(t, err)
	b, err := Build(now, time.Hour, plainHasher{})
	require.NoError(t, err)

	for i := range a.Businesses {
		assert.Equal(t, a.Businesses[i].ID, b.Businesses[i].ID)
	}
	assert.Equal(t, ID("business/Parrilla Don Julio"), a.Businesses[0].ID)
}

func TestBuild_DefaultCityHasEveryTier(t *testing.T) {
	ds, err := Build(time.Now(), time.Hour, plainHasher{})
	require.NoError(t, err)

	seen := map[entity.AdTier]bool{}
	for _, b := range ds.Businesses {
		if b.CityID == "06441" {
			seen[b.AdTier] = true
		}
	}
	for tier := entity.AdTierFree; tier <= entity.AdTierHomeBanner; tier++ {
		assert.True(t, seen[tier], tier.String())
	}
}
