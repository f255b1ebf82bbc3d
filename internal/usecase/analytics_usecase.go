package usecase

import (
	"context"

	"github.com/google/uuid"

	"vitrina/internal/domain/entity"
)

// TrackInput is a single analytics event reported by a client.
type TrackInput struct {
	Type       entity.TrackingEventType
	BusinessID *uuid.UUID
	UserID     *uuid.UUID
	Meta       map[string]string
}

// DayCount is the number of events on a calendar day (YYYY-MM-DD, UTC).
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// BusinessCount is the number of events attributed to a business.
type BusinessCount struct {
	BusinessID   uuid.UUID `json:"businessId"`
	BusinessName string    `json:"businessName"`
	Count        int       `json:"count"`
}

// AnalyticsReport aggregates the events of the last 30 days.
type AnalyticsReport struct {
	TotalEvents   int                               `json:"totalEvents"`
	ByType        map[entity.TrackingEventType]int `json:"byType"`
	ByDay         []DayCount                        `json:"byDay"`
	TopBusinesses []BusinessCount                   `json:"topBusinesses"`
}

// AnalyticsUsecase records and aggregates tracking events.
type AnalyticsUsecase interface {
	// Track never fails the caller: storage and export errors are logged and dropped.
	Track(ctx context.Context, input *TrackInput)

	// Report aggregates the last 30 days, optionally for one business.
	Report(ctx context.Context, businessID *uuid.UUID) (*AnalyticsReport, error)
}
