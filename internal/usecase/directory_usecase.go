package usecase

import (
	"context"

	"github.com/google/uuid"

	"vitrina/internal/domain/entity"
	"vitrina/internal/domain/ranking"
)

// HomeInput is the home page query.
type HomeInput struct {
	Filters ranking.Filters

	// UseDefaultFilters applies the default province/city pair, as on first page load.
	UseDefaultFilters bool

	Lat  *float64
	Lon  *float64
	Page int

	// UserID, when set, adds recommendations for that public user.
	UserID *uuid.UUID
}

// HomeOutput is the home page view model.
type HomeOutput struct {
	HomeBanners     []*entity.Business `json:"homeBanners"`
	HeaderBanners   []*entity.Business `json:"headerBanners"`
	Listing         ranking.Page       `json:"listing"`
	Recommendations []*entity.Business `json:"recommendations"`
	Filters         ranking.Filters    `json:"filters"`
}

// DirectoryUsecase serves the ranked home page.
type DirectoryUsecase interface {
	Home(ctx context.Context, input *HomeInput) (*HomeOutput, error)
}
