// Package recommend scores businesses a public user has not interacted with yet
// against the categories and cities of the businesses they did interact with.
package recommend

import (
	"slices"

	"vitrina/internal/domain/entity"

	"github.com/google/uuid"
)

// DefaultLimit is the number of recommendations shown on the home page.
const DefaultLimit = 4

// Score weights.
const (
	CategoryMatchScore = 2.0
	CityMatchScore     = 1.0
	PremiumTierScore   = 3.0 // AdTier >= 4
	FeaturedTierScore  = 0.5 // AdTier == 3
)

// Scored pairs a candidate with its score.
type Scored struct {
	Business *entity.Business
	Score    float64
}

// profile is the set of categories and cities the user has shown interest in.
type profile struct {
	seen       map[uuid.UUID]struct{}
	categories map[string]struct{}
	cities     map[string]struct{}
}

func buildProfile(user *entity.PublicUser, businesses []*entity.Business) profile {
	p := profile{
		seen:       make(map[uuid.UUID]struct{}, len(user.Favorites)+len(user.History)),
		categories: make(map[string]struct{}),
		cities:     make(map[string]struct{}),
	}
	for _, id := range user.Favorites {
		p.seen[id] = struct{}{}
	}
	for _, entry := range user.History {
		p.seen[entry.BusinessID] = struct{}{}
	}

	for _, b := range businesses {
		if _, ok := p.seen[b.ID]; !ok {
			continue
		}
		p.categories[b.CategoryID] = struct{}{}
		p.cities[b.CityID] = struct{}{}
	}

	return p
}

// scoreOf returns the additive score of candidate against p.
func (p profile) scoreOf(candidate *entity.Business) float64 {
	score := 0.0
	if _, ok := p.categories[candidate.CategoryID]; ok {
		score += CategoryMatchScore
	}
	if _, ok := p.cities[candidate.CityID]; ok {
		score += CityMatchScore
	}

	switch {
	case candidate.AdTier >= entity.AdTierPremium:
		score += PremiumTierScore
	case candidate.AdTier == entity.AdTierFeatured:
		score += FeaturedTierScore
	}

	return score
}

// Score returns every positive-scoring candidate the user has not interacted with,
// sorted by descending score with ties in input order.
func Score(user *entity.PublicUser, businesses []*entity.Business) []Scored {
	if user == nil || (len(user.History) == 0 && len(user.Favorites) == 0) {
		return []Scored{}
	}

	p := buildProfile(user, businesses)

	scored := make([]Scored, 0, len(businesses))
	for _, b := range businesses {
		if _, ok := p.seen[b.ID]; ok {
			continue
		}
		if s := p.scoreOf(b); s > 0 {
			scored = append(scored, Scored{Business: b, Score: s})
		}
	}

	slices.SortStableFunc(scored, func(a, b Scored) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})

	return scored
}

// Recommend returns at most limit businesses ranked by Score. limit <= 0 uses DefaultLimit.
func Recommend(user *entity.PublicUser, businesses []*entity.Business, limit int) []*entity.Business {
	if limit <= 0 {
		limit = DefaultLimit
	}

	scored := Score(user, businesses)
	out := make([]*entity.Business, 0, min(limit, len(scored)))
	for _, s := range scored[:min(limit, len(scored))] {
		out = append(out, s.Business)
	}

	return out
}
