package impl

import (
	"cmp"
	"context"
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	"vitrina/internal/domain/entity"
	"vitrina/internal/domain/repository"
	"vitrina/internal/domain/service"
	"vitrina/internal/infra/metrics"
	"vitrina/internal/usecase"
)

const (
	analyticsWindow   = 30 * 24 * time.Hour
	topBusinessesSize = 5
	dayLayout         = "2006-01-02"
)

type analyticsService struct {
	trackingRepo repository.TrackingRepository
	businessRepo repository.BusinessRepository
	publisher    service.EventPublisher
	logger       *slog.Logger
	now          func() time.Time
}

// AnalyticsServiceParams holds dependencies for AnalyticsService, injected by Fx.
type AnalyticsServiceParams struct {
	fx.In

	TrackingRepo repository.TrackingRepository
	BusinessRepo repository.BusinessRepository
	Publisher    service.EventPublisher
	Logger       *slog.Logger
}

// NewAnalyticsService is the constructor for analyticsService.
func NewAnalyticsService(params AnalyticsServiceParams) usecase.AnalyticsUsecase {
	return &analyticsService{
		trackingRepo: params.TrackingRepo,
		businessRepo: params.BusinessRepo,
		publisher:    params.Publisher,
		logger:       params.Logger,
		now:          time.Now,
	}
}

// Track stores the event and forwards it to the publisher. Failures are logged, never returned.
func (srv *analyticsService) Track(ctx context.Context, input *usecase.TrackInput) {
	logger := requestLogger(ctx, srv.logger)
	if !input.Type.IsValid() {
		logger.Warn("Dropping tracking event with unknown type", slog.String("type", string(input.Type)))

		return
	}

	event := &entity.TrackingEvent{
		ID:         uuid.New(),
		Type:       input.Type,
		BusinessID: input.BusinessID,
		UserID:     input.UserID,
		Meta:       input.Meta,
		At:         srv.now(),
	}

	if err := srv.trackingRepo.Create(ctx, event); err != nil {
		logger.Error("Failed to store tracking event", slog.Any("error", err))

		return
	}
	metrics.TrackingEventsTotal.WithLabelValues(string(event.Type)).Inc()

	if err := srv.publisher.PublishTrackingEvent(ctx, event); err != nil {
		logger.Warn("Failed to publish tracking event",
			slog.String("event_id", event.ID.String()),
			slog.Any("error", err),
		)
	}
}

// Report aggregates the last 30 days of events, optionally for one business.
func (srv *analyticsService) Report(ctx context.Context, businessID *uuid.UUID) (*usecase.AnalyticsReport, error) {
	since := srv.now().Add(-analyticsWindow)
	events, err := srv.trackingRepo.ListSince(ctx, since, businessID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tracking events")
	}

	report := &usecase.AnalyticsReport{
		TotalEvents:   len(events),
		ByType:        make(map[entity.TrackingEventType]int),
		ByDay:         []usecase.DayCount{},
		TopBusinesses: []usecase.BusinessCount{},
	}

	byDay := make(map[string]int)
	byBusiness := make(map[uuid.UUID]int)
	for _, e := range events {
		report.ByType[e.Type]++
		byDay[e.At.UTC().Format(dayLayout)]++
		if e.BusinessID != nil {
			byBusiness[*e.BusinessID]++
		}
	}

	for _, day := range slices.Sorted(maps.Keys(byDay)) {
		report.ByDay = append(report.ByDay, usecase.DayCount{Date: day, Count: byDay[day]})
	}

	if len(byBusiness) > 0 {
		top, err := srv.topBusinesses(ctx, byBusiness)
		if err != nil {
			return nil, err
		}
		report.TopBusinesses = top
	}

	return report, nil
}

func (srv *analyticsService) topBusinesses(ctx context.Context, counts map[uuid.UUID]int) ([]usecase.BusinessCount, error) {
	businesses, err := srv.businessRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list businesses")
	}

	names := make(map[uuid.UUID]string, len(businesses))
	for _, b := range businesses {
		names[b.ID] = b.Name
	}

	top := make([]usecase.BusinessCount, 0, len(counts))
	for id, count := range counts {
		top = append(top, usecase.BusinessCount{BusinessID: id, BusinessName: names[id], Count: count})
	}
	slices.SortFunc(top, func(a, b usecase.BusinessCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		if c := cmp.Compare(a.BusinessName, b.BusinessName); c != 0 {
			return c
		}

		return cmp.Compare(a.BusinessID.String(), b.BusinessID.String())
	})

	return top[:min(topBusinessesSize, len(top))], nil
}
