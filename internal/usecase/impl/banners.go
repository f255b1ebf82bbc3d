package impl

import (
	"context"

	"github.com/pkg/errors"

	"vitrina/internal/domain/entity"
	"vitrina/internal/domain/repository"
)

// syncBanner keeps the banner collection in step with a business tier: tiers 5 and 6 own a
// banner, anything else has none.
func syncBanner(ctx context.Context, banners repository.BannerRepository, business *entity.Business) error {
	if banner, ok := entity.BannerFor(business); ok {
		return errors.Wrap(banners.Upsert(ctx, banner), "failed to upsert banner")
	}

	return errors.Wrap(banners.DeleteByBusiness(ctx, business.ID), "failed to delete banner")
}
