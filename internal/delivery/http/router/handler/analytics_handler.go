package handler

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	deliverycontext "vitrina/internal/delivery/context"
	"vitrina/internal/delivery/http/response"
	"vitrina/internal/domain/entity"
	"vitrina/internal/usecase"
)

// AnalyticsHandlerParams holds dependencies for AnalyticsHandler, injected by Fx.
type AnalyticsHandlerParams struct {
	fx.In

	AnalyticsUC usecase.AnalyticsUsecase
	Logger      *slog.Logger
}

// AnalyticsHandler receives tracking events and serves the report.
type AnalyticsHandler struct {
	analyticsUC usecase.AnalyticsUsecase
	logger      *slog.Logger
}

// NewAnalyticsHandler is the constructor for AnalyticsHandler
func NewAnalyticsHandler(params AnalyticsHandlerParams) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsUC: params.AnalyticsUC,
		logger:      params.Logger,
	}
}

// TrackRequest is the body of POST /api/track
type TrackRequest struct {
	Type       string            `json:"type"`
	BusinessID *uuid.UUID        `json:"businessId"`
	UserID     *uuid.UUID        `json:"userId"`
	Meta       map[string]string `json:"meta"`
}

// Track accepts an event and always answers 202.
func (h *AnalyticsHandler) Track(c echo.Context) error {
	var req TrackRequest
	if err := c.Bind(&req); err != nil {
		deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger).
			Warn("Ignoring malformed tracking event", slog.Any("error", err))

		return c.NoContent(http.StatusAccepted)
	}

	h.analyticsUC.Track(c.Request().Context(), &usecase.TrackInput{
		Type:       entity.TrackingEventType(req.Type),
		BusinessID: req.BusinessID,
		UserID:     req.UserID,
		Meta:       req.Meta,
	})

	return c.NoContent(http.StatusAccepted)
}

// Report returns the 30-day aggregation, optionally for one business.
func (h *AnalyticsHandler) Report(c echo.Context) error {
	var businessID *uuid.UUID
	if raw := c.QueryParam("businessId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return response.BindingError(c, "invalid businessId")
		}
		businessID = &id
	}

	report, err := h.analyticsUC.Report(c.Request().Context(), businessID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, report)
}
