package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"vitrina/internal/domain/entity"
)

// CreateBusinessInput defines the data of a new listing.
type CreateBusinessInput struct {
	Name          string
	CategoryID    string
	SubcategoryID string
	ProvinceID    string
	CityID        string
	Neighborhood  string
	Address       string
	Phone         string
	WhatsApp      string
	Email         string
	Website       string
	Instagram     string
	Description   string
	Image         string
	Gallery       []string
	AdTier        int
	AutoRenew     bool
	Lat           *float64
	Lon           *float64
}

// UpdateBusinessInput lists the editable business fields; nil leaves a field unchanged.
type UpdateBusinessInput struct {
	Name          *string
	CategoryID    *string
	SubcategoryID *string
	ProvinceID    *string
	CityID        *string
	Neighborhood  *string
	Address       *string
	Phone         *string
	WhatsApp      *string
	Email         *string
	Website       *string
	Instagram     *string
	Description   *string
	Image         *string
	Gallery       []string
	AdTier        *int
	AutoRenew     *bool
	Lat           *float64
	Lon           *float64
}

// OpinionInput is a consumer review.
type OpinionInput struct {
	Rating int
	Text   string
}

// BusinessUsecase defines listing management, reviews and ad lifecycle.
type BusinessUsecase interface {
	Create(ctx context.Context, ownerID uuid.UUID, input *CreateBusinessInput) (*entity.Business, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Business, error)

	// Update and Delete are restricted to the owning merchant.
	Update(ctx context.Context, actorID, id uuid.UUID, input *UpdateBusinessInput) (*entity.Business, error)
	Delete(ctx context.Context, actorID, id uuid.UUID) error

	// AddOpinion appends a review written by a public user.
	AddOpinion(ctx context.Context, authorID, businessID uuid.UUID, input *OpinionInput) (*entity.Opinion, error)

	// Reply sets the owner's answer on an opinion, replacing any previous one.
	Reply(ctx context.Context, actorID, businessID, opinionID uuid.UUID, text string) (*entity.Opinion, error)

	// ToggleLike adds or removes userID from the opinion likes.
	ToggleLike(ctx context.Context, userID, businessID, opinionID uuid.UUID) (*entity.Opinion, error)

	// ShareQR renders a PNG QR code pointing at the business page.
	ShareQR(ctx context.Context, id uuid.UUID) ([]byte, error)

	// SweepExpiredAds renews or downgrades every paid placement expired at now.
	SweepExpiredAds(ctx context.Context, now time.Time) (int, error)
}
