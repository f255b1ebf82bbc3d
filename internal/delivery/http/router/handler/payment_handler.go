package handler

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"vitrina/internal/delivery/http/response"
	domainerrors "vitrina/internal/domain/errors"
	"vitrina/internal/usecase"
)

// PaymentHandlerParams holds dependencies for PaymentHandler, injected by Fx.
type PaymentHandlerParams struct {
	fx.In

	PaymentUC usecase.PaymentUsecase
	Logger    *slog.Logger
}

// PaymentHandler serves the simulated checkout.
type PaymentHandler struct {
	paymentUC usecase.PaymentUsecase
	logger    *slog.Logger
}

// NewPaymentHandler is the constructor for PaymentHandler
func NewPaymentHandler(params PaymentHandlerParams) *PaymentHandler {
	return &PaymentHandler{
		paymentUC: params.PaymentUC,
		logger:    params.Logger,
	}
}

// CreatePreferenceRequest is the body of POST /api/payments/create-preference
type CreatePreferenceRequest struct {
	BusinessID uuid.UUID `json:"businessId" validate:"required"`
	Level      int       `json:"level" validate:"required,min=2,max=6"`
}

// ConfirmPaymentRequest confirms a preference, or a business and level directly.
type ConfirmPaymentRequest struct {
	PreferenceID string    `json:"preferenceId"`
	BusinessID   uuid.UUID `json:"businessId"`
	Level        int       `json:"level" validate:"omitempty,min=1,max=6"`
}

// CreatePreference starts a checkout for a paid tier.
func (h *PaymentHandler) CreatePreference(c echo.Context) error {
	actorID, err := callerID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req CreatePreferenceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	out, err := h.paymentUC.CreatePreference(c.Request().Context(), actorID, &usecase.CreatePreferenceInput{
		BusinessID: req.BusinessID,
		Level:      req.Level,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, out)
}

// Confirm applies the purchased tier and returns the updated business.
func (h *PaymentHandler) Confirm(c echo.Context) error {
	actorID, err := callerID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req ConfirmPaymentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}
	if req.PreferenceID == "" && (req.BusinessID == uuid.Nil || req.Level == 0) {
		return response.HandleAppError(c, domainerrors.ErrValidationFailed.WithDetails("preferenceId or businessId and level are required"))
	}

	business, err := h.paymentUC.Confirm(c.Request().Context(), actorID, &usecase.ConfirmPaymentInput{
		PreferenceID: req.PreferenceID,
		BusinessID:   req.BusinessID,
		Level:        req.Level,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, business)
}
