package repository

import (
	"context"
	"time"

	"vitrina/internal/domain/entity"

	"github.com/google/uuid"
)

// TrackingRepository stores analytics events.
type TrackingRepository interface {
	Create(ctx context.Context, event *entity.TrackingEvent) error

	// ListSince returns events at or after since; a non-nil businessID restricts to that business.
	ListSince(ctx context.Context, since time.Time, businessID *uuid.UUID) ([]*entity.TrackingEvent, error)
}
