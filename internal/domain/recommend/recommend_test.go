package recommend

import (
	"testing"
	"time"

	"vitrina/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func business(name, category, city string, tier entity.AdTier) *entity.Business {
	return &entity.Business{
		ID:         uuid.New(),
		Name:       name,
		CategoryID: category,
		CityID:     city,
		AdTier:     tier,
	}
}

func viewed(user *entity.PublicUser, b *entity.Business) {
	user.RecordInteraction(entity.Interaction{
		BusinessID:   b.ID,
		Type:         entity.InteractionView,
		At:           time.Now(),
		BusinessName: b.Name,
	})
}

func TestRecommend_ColdStartReturnsEmpty(t *testing.T) {
	all := []*entity.Business{
		business("premium", "gastronomia", "06441", entity.AdTierPremium),
	}

	got := Recommend(&entity.PublicUser{ID: uuid.New()}, all, DefaultLimit)

	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, Recommend(nil, all, DefaultLimit))
}

func TestScore_Weights(t *testing.T) {
	seen := business("seen", "gastronomia", "06441", entity.AdTierFree)
	user := &entity.PublicUser{ID: uuid.New()}
	viewed(user, seen)

	catAndCity := business("cat+city", "gastronomia", "06441", entity.AdTierFree)
	catOnly := business("cat", "gastronomia", "02000", entity.AdTierFree)
	cityOnly := business("city", "salud", "06441", entity.AdTierFree)
	premium := business("premium", "salud", "14014", entity.AdTierPremium)
	banner := business("banner", "salud", "14014", entity.AdTierHomeBanner)
	featured := business("featured", "salud", "14014", entity.AdTierFeatured)
	nothing := business("nothing", "salud", "14014", entity.AdTierBasic)

	scored := Score(user, []*entity.Business{seen, catAndCity, catOnly, cityOnly, premium, banner, featured, nothing})

	byName := map[string]float64{}
	for _, s := range scored {
		byName[s.Business.Name] = s.Score
	}

	assert.Equal(t, map[string]float64{
		"cat+city": 3,
		"cat":      2,
		"city":     1,
		"premium":  3,
		"banner":   3,
		"featured": 0.5,
	}, byName)
}

func TestRecommend_ExcludesInteractedAndFavorites(t *testing.T) {
	fav := business("fav", "gastronomia", "06441", entity.AdTierPremium)
	seen := business("seen", "gastronomia", "06441", entity.AdTierPremium)
	fresh := business("fresh", "gastronomia", "06441", entity.AdTierFree)
	user := &entity.PublicUser{ID: uuid.New(), Favorites: []uuid.UUID{fav.ID}}
	viewed(user, seen)

	got := Recommend(user, []*entity.Business{fav, seen, fresh}, DefaultLimit)

	require.Len(t, got, 1)
	assert.Equal(t, "fresh", got[0].Name)
	for _, b := range got {
		assert.False(t, user.HasFavorite(b.ID))
		for _, h := range user.History {
			assert.NotEqual(t, h.BusinessID, b.ID)
		}
	}
}

func TestRecommend_FavoritesAloneSeedTheProfile(t *testing.T) {
	fav := business("fav", "moda", "06441", entity.AdTierFree)
	match := business("match", "moda", "02000", entity.AdTierFree)
	user := &entity.PublicUser{ID: uuid.New(), Favorites: []uuid.UUID{fav.ID}}

	got := Recommend(user, []*entity.Business{fav, match}, DefaultLimit)

	require.Len(t, got, 1)
	assert.Equal(t, "match", got[0].Name)
}

func TestRecommend_LimitAndStableOrder(t *testing.T) {
	seen := business("seen", "gastronomia", "06441", entity.AdTierFree)
	user := &entity.PublicUser{ID: uuid.New()}
	viewed(user, seen)

	all := []*entity.Business{seen}
	for _, name := range []string{"c1", "c2", "c3", "c4", "c5"} {
		all = append(all, business(name, "gastronomia", "02000", entity.AdTierFree))
	}
	top := business("top", "gastronomia", "06441", entity.AdTierPremium)
	all = append(all, top)

	got := Recommend(user, all, DefaultLimit)

	require.Len(t, got, DefaultLimit)
	assert.Equal(t, "top", got[0].Name)
	assert.Equal(t, []string{"c1", "c2", "c3"}, []string{got[1].Name, got[2].Name, got[3].Name})

	scores := Score(user, all)
	for i := 1; i < len(scores); i++ {
		assert.GreaterOrEqual(t, scores[i-1].Score, scores[i].Score)
	}
}

func TestRecommend_ZeroScoreExcluded(t *testing.T) {
	seen := business("seen", "gastronomia", "06441", entity.AdTierFree)
	unrelated := business("unrelated", "salud", "14014", entity.AdTierBasic)
	user := &entity.PublicUser{ID: uuid.New()}
	viewed(user, seen)

	assert.Empty(t, Recommend(user, []*entity.Business{seen, unrelated}, 0))
}
