package entity

import (
	"time"

	"github.com/google/uuid"
)

// TrackingEventType enumerates the analytics events the frontend reports.
type TrackingEventType string

const (
	EventPageView      TrackingEventType = "page_view"
	EventBusinessView  TrackingEventType = "business_view"
	EventWhatsAppClick TrackingEventType = "whatsapp_click"
	EventPhoneClick    TrackingEventType = "phone_click"
	EventWebsiteClick  TrackingEventType = "website_click"
	EventFavorite      TrackingEventType = "favorite"
	EventSearch        TrackingEventType = "search"
)

// IsValid reports whether t is a known event type.
func (t TrackingEventType) IsValid() bool {
	switch t {
	case EventPageView, EventBusinessView, EventWhatsAppClick, EventPhoneClick,
		EventWebsiteClick, EventFavorite, EventSearch:
		return true
	default:
		return false
	}
}

// TrackingEvent is an append-only analytics record.
type TrackingEvent struct {
	ID         uuid.UUID         `json:"id"`
	Type       TrackingEventType `json:"tipo"`
	BusinessID *uuid.UUID        `json:"comercioId,omitempty"`
	UserID     *uuid.UUID        `json:"usuarioId,omitempty"`
	Meta       map[string]string `json:"meta,omitempty"`
	At         time.Time         `json:"fecha"`
}
