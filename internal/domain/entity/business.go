package entity

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// Business ("comercio") is a listing owned by a Merchant.
// Province, city and category names are denormalized copies regenerated on every write.
type Business struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"nombre"`
	CategoryID      string     `json:"categoriaId"`
	CategoryName    string     `json:"categoriaNombre"`
	SubcategoryID   string     `json:"subcategoriaId"`
	SubcategoryName string     `json:"subcategoriaNombre"`
	ProvinceID      string     `json:"provinciaId"`
	ProvinceName    string     `json:"provinciaNombre"`
	CityID          string     `json:"ciudadId"`
	CityName        string     `json:"ciudadNombre"`
	Neighborhood    string     `json:"barrio"`
	Address         string     `json:"direccion"`
	OwnerID         uuid.UUID  `json:"usuarioId"`
	Phone           string     `json:"telefono"`
	WhatsApp        string     `json:"whatsapp,omitempty"`
	Email           string     `json:"email,omitempty"`
	Website         string     `json:"web,omitempty"`
	Instagram       string     `json:"instagram,omitempty"`
	Description     string     `json:"descripcion"`
	Image           string     `json:"imagen,omitempty"`
	Gallery         []string   `json:"galeria"`
	AdTier          AdTier     `json:"adTier"`
	AdExpiresAt     *time.Time `json:"adExpiresAt"`
	AutoRenew       bool       `json:"autoRenew"`
	Opinions        []Opinion  `json:"opiniones"`
	Lat             *float64   `json:"lat"`
	Lon             *float64   `json:"lon"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// Opinion is a consumer review of a Business.
type Opinion struct {
	ID         uuid.UUID     `json:"id"`
	AuthorID   uuid.UUID     `json:"autorId"`
	AuthorName string        `json:"autorNombre"`
	Rating     int           `json:"calificacion"`
	Text       string        `json:"texto"`
	CreatedAt  time.Time     `json:"fecha"`
	Reply      *OpinionReply `json:"respuesta"`
	Likes      []uuid.UUID   `json:"likes"`
}

// OpinionReply is the single answer a business owner can leave on an opinion.
type OpinionReply struct {
	Text      string    `json:"texto"`
	CreatedAt time.Time `json:"fecha"`
}

// HasCoordinates reports whether both latitude and longitude are set.
func (b *Business) HasCoordinates() bool {
	return b.Lat != nil && b.Lon != nil
}

// Point returns the business location as an orb.Point (lon, lat).
// Callers must check HasCoordinates first.
func (b *Business) Point() orb.Point {
	return orb.Point{*b.Lon, *b.Lat}
}

// FindOpinion returns a pointer into Opinions for the given id.
func (b *Business) FindOpinion(id uuid.UUID) (*Opinion, bool) {
	for i := range b.Opinions {
		if b.Opinions[i].ID == id {
			return &b.Opinions[i], true
		}
	}

	return nil, false
}

// AverageRating returns the mean opinion rating, 0 when there are no opinions.
func (b *Business) AverageRating() float64 {
	if len(b.Opinions) == 0 {
		return 0
	}

	total := 0
	for _, o := range b.Opinions {
		total += o.Rating
	}

	return float64(total) / float64(len(b.Opinions))
}

// SetAdTier applies tier and keeps the expiration invariant: paid tiers always carry an expiry.
func (b *Business) SetAdTier(tier AdTier, now time.Time, duration time.Duration) {
	b.AdTier = tier
	if !tier.IsPaid() {
		b.AdExpiresAt = nil

		return
	}

	expiresAt := now.Add(duration)
	b.AdExpiresAt = &expiresAt
}

// AdExpired reports whether a paid placement has passed its expiration at now.
func (b *Business) AdExpired(now time.Time) bool {
	return b.AdTier.IsPaid() && b.AdExpiresAt != nil && !now.Before(*b.AdExpiresAt)
}

// ToggleLike adds userID to the opinion likes, or removes it if already present.
// It returns true when the like is now set.
func (o *Opinion) ToggleLike(userID uuid.UUID) bool {
	if idx := slices.Index(o.Likes, userID); idx >= 0 {
		o.Likes = slices.Delete(o.Likes, idx, idx+1)

		return false
	}
	o.Likes = append(o.Likes, userID)

	return true
}

// Clone returns a deep copy so stores can hand out snapshots without aliasing.
func (b *Business) Clone() *Business {
	c := *b
	c.Gallery = slices.Clone(b.Gallery)
	c.Opinions = make([]Opinion, len(b.Opinions))
	for i, o := range b.Opinions {
		o.Likes = slices.Clone(o.Likes)
		if o.Reply != nil {
			reply := *o.Reply
			o.Reply = &reply
		}
		c.Opinions[i] = o
	}
	if b.AdExpiresAt != nil {
		t := *b.AdExpiresAt
		c.AdExpiresAt = &t
	}
	if b.Lat != nil {
		lat := *b.Lat
		c.Lat = &lat
	}
	if b.Lon != nil {
		lon := *b.Lon
		c.Lon = &lon
	}

	return &c
}
