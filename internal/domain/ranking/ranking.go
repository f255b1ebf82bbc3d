// Package ranking implements the home-page pipeline: filter, sort by ad tier or distance,
// split into banner buckets and paginate the remaining list.
package ranking

import (
	"math"
	"slices"
	"strings"

	"vitrina/internal/domain/entity"

	"github.com/paulmach/orb"
)

// PageSize is the fixed number of list entries per page.
const PageSize = 8

const (
	defaultProvinceID = "06"
	defaultCityID     = "06441"
)

// Filters narrows the business list. Empty fields do not filter.
type Filters struct {
	ProvinceID    string `query:"provinceId" json:"provinceId"`
	CityID        string `query:"cityId" json:"cityId"`
	Neighborhood  string `query:"neighborhood" json:"neighborhood"`
	CategoryID    string `query:"categoryId" json:"categoryId"`
	SubcategoryID string `query:"subcategoryId" json:"subcategoryId"`
	Name          string `query:"name" json:"name"`
}

// DefaultFilters returns the filters used on the first home-page load.
func DefaultFilters() Filters {
	return Filters{
		ProvinceID: defaultProvinceID,
		CityID:     defaultCityID,
	}
}

// IsZero reports whether no filter field is set.
func (f Filters) IsZero() bool {
	return f == Filters{}
}

// Matches reports whether b satisfies every non-empty filter.
func (f Filters) Matches(b *entity.Business) bool {
	if f.ProvinceID != "" && b.ProvinceID != f.ProvinceID {
		return false
	}
	if f.CityID != "" && b.CityID != f.CityID {
		return false
	}
	if f.CategoryID != "" && b.CategoryID != f.CategoryID {
		return false
	}
	if f.SubcategoryID != "" && b.SubcategoryID != f.SubcategoryID {
		return false
	}
	if !containsFold(b.Name, f.Name) {
		return false
	}

	return containsFold(b.Neighborhood, f.Neighborhood)
}

func containsFold(s, substr string) bool {
	if substr == "" {
		return true
	}

	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Filter returns the businesses matching f, preserving input order.
func Filter(businesses []*entity.Business, f Filters) []*entity.Business {
	out := make([]*entity.Business, 0, len(businesses))
	for _, b := range businesses {
		if f.Matches(b) {
			out = append(out, b)
		}
	}

	return out
}

// SortByTier orders by descending AdTier. Equal tiers keep their relative order.
func SortByTier(businesses []*entity.Business) {
	slices.SortStableFunc(businesses, func(a, b *entity.Business) int {
		return int(b.AdTier) - int(a.AdTier)
	})
}

// SortByDistance orders by ascending distance from origin. Businesses without coordinates
// sort last; equal distances fall back to descending AdTier, then input order.
func SortByDistance(businesses []*entity.Business, origin orb.Point) {
	distances := make(map[*entity.Business]float64, len(businesses))
	for _, b := range businesses {
		distances[b] = DistanceFrom(b, origin)
	}

	slices.SortStableFunc(businesses, func(a, b *entity.Business) int {
		da, db := distances[a], distances[b]
		switch {
		case da < db:
			return -1
		case da > db:
			return 1
		default:
			return int(b.AdTier) - int(a.AdTier)
		}
	})
}

// DistanceFrom returns the distance in km from origin to b, or +Inf when b has no coordinates.
func DistanceFrom(b *entity.Business, origin orb.Point) float64 {
	if !b.HasCoordinates() {
		return math.Inf(1)
	}

	return Distance(origin, b.Point())
}

// Buckets is the presentational split of a ranked list.
type Buckets struct {
	HomeBanner   []*entity.Business // tier 6
	HeaderBanner []*entity.Business // tier 5
	Listing      []*entity.Business // tiers 1-4
}

// Partition splits businesses by tier, preserving order inside each bucket.
func Partition(businesses []*entity.Business) Buckets {
	buckets := Buckets{
		HomeBanner:   []*entity.Business{},
		HeaderBanner: []*entity.Business{},
		Listing:      []*entity.Business{},
	}
	for _, b := range businesses {
		switch b.AdTier {
		case entity.AdTierHomeBanner:
			buckets.HomeBanner = append(buckets.HomeBanner, b)
		case entity.AdTierHeaderBanner:
			buckets.HeaderBanner = append(buckets.HeaderBanner, b)
		default:
			buckets.Listing = append(buckets.Listing, b)
		}
	}

	return buckets
}

// Page is one page of the list bucket.
type Page struct {
	Items      []*entity.Business `json:"items"`
	Page       int                `json:"page"`
	TotalPages int                `json:"totalPages"`
	Total      int                `json:"total"`
}

// TotalPages returns ceil(n/PageSize), at least 1.
func TotalPages(n int) int {
	return max(1, (n+PageSize-1)/PageSize)
}

// Paginate returns page number page of list, clamping page to [1, TotalPages].
func Paginate(list []*entity.Business, page int) Page {
	totalPages := TotalPages(len(list))
	page = min(max(page, 1), totalPages)

	start := (page - 1) * PageSize
	end := min(start+PageSize, len(list))

	items := make([]*entity.Business, 0, end-start)
	items = append(items, list[start:end]...)

	return Page{
		Items:      items,
		Page:       page,
		TotalPages: totalPages,
		Total:      len(list),
	}
}

// Query describes one home-page request.
type Query struct {
	Filters Filters
	Origin  *orb.Point // user location; nil selects the default tier sort
	Page    int
}

// Result is the ranked, partitioned and paginated output of Rank.
type Result struct {
	HomeBanner   []*entity.Business
	HeaderBanner []*entity.Business
	Listing      Page
}

// Rank runs the full pipeline over a snapshot of businesses. The input slice is not modified.
func Rank(businesses []*entity.Business, q Query) Result {
	filtered := Filter(businesses, q.Filters)
	if q.Origin != nil {
		SortByDistance(filtered, *q.Origin)
	} else {
		SortByTier(filtered)
	}

	buckets := Partition(filtered)

	return Result{
		HomeBanner:   buckets.HomeBanner,
		HeaderBanner: buckets.HeaderBanner,
		Listing:      Paginate(buckets.Listing, q.Page),
	}
}
