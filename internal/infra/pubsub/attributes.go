package pubsub

import "vitrina/internal/domain/entity"

// eventAttributes are the message attributes subscribers filter on.
func eventAttributes(event *entity.TrackingEvent, requestID string) map[string]string {
	attributes := map[string]string{
		"event_id": event.ID.String(),
		"type":     string(event.Type),
	}
	if event.BusinessID != nil {
		attributes["business_id"] = event.BusinessID.String()
	}
	if requestID != "" {
		attributes["request_id"] = requestID
	}

	return attributes
}
