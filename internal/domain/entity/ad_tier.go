package entity

// AdTier is the paid placement level of a business, from free listing (1) to exclusive home banner (6).
type AdTier int

const (
	// AdTierFree is the default, unpaid listing.
	AdTierFree AdTier = iota + 1
	// AdTierBasic is the entry paid listing.
	AdTierBasic
	// AdTierFeatured gives a small recommendation boost.
	AdTierFeatured
	// AdTierPremium is the highest list placement.
	AdTierPremium
	// AdTierHeaderBanner places the business in the header banner carousel.
	AdTierHeaderBanner
	// AdTierHomeBanner places the business in the exclusive home banner.
	AdTierHomeBanner
)

// IsValid reports whether t is one of the six defined tiers.
func (t AdTier) IsValid() bool {
	return t >= AdTierFree && t <= AdTierHomeBanner
}

// IsPaid reports whether the tier carries an expiration date.
func (t AdTier) IsPaid() bool {
	return t > AdTierFree
}

// IsBanner reports whether the tier is rendered as a banner instead of a list entry.
func (t AdTier) IsBanner() bool {
	return t == AdTierHeaderBanner || t == AdTierHomeBanner
}

// String returns the commercial name of the tier.
func (t AdTier) String() string {
	switch t {
	case AdTierFree:
		return "gratuito"
	case AdTierBasic:
		return "basico"
	case AdTierFeatured:
		return "destacado"
	case AdTierPremium:
		return "premium"
	case AdTierHeaderBanner:
		return "banner-cabecera"
	case AdTierHomeBanner:
		return "banner-exclusivo"
	default:
		return "desconocido"
	}
}
