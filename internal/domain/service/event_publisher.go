package service

import (
	"context"

	"vitrina/internal/domain/entity"
)

// EventPublisher exports tracking events to a message queue for offline analytics.
type EventPublisher interface {
	// PublishTrackingEvent publishes a single recorded event.
	PublishTrackingEvent(ctx context.Context, event *entity.TrackingEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
