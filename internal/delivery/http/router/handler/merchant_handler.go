package handler

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"vitrina/internal/delivery/http/response"
	"vitrina/internal/domain/entity"
	domainerrors "vitrina/internal/domain/errors"
	"vitrina/internal/usecase"
)

// MerchantHandlerParams holds dependencies for MerchantHandler, injected by Fx.
type MerchantHandlerParams struct {
	fx.In

	MerchantUC usecase.MerchantUsecase
	Logger     *slog.Logger
}

// MerchantHandler holds dependencies for merchant account handlers
type MerchantHandler struct {
	merchantUC usecase.MerchantUsecase
	logger     *slog.Logger
}

// NewMerchantHandler is the constructor for MerchantHandler
func NewMerchantHandler(params MerchantHandlerParams) *MerchantHandler {
	return &MerchantHandler{
		merchantUC: params.MerchantUC,
		logger:     params.Logger,
	}
}

// RegisterRequest is the body of POST /api/register
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
	Phone    string `json:"phone"`
}

// VerifyRequest is the body of POST /api/verify
type VerifyRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required"`
}

// LoginRequest is the body of both login endpoints
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateMerchantRequest is the body of PUT /api/usuarios/:id
type UpdateMerchantRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Password *string `json:"password" validate:"omitempty,min=4"`
}

// RegisterResponse carries the verification code since no e-mail is sent.
type RegisterResponse struct {
	User             *entity.Merchant `json:"user"`
	VerificationCode string           `json:"verificationCode"`
}

// SessionResponse is returned by the login endpoints.
type SessionResponse struct {
	User  any    `json:"user"`
	Token string `json:"token"`
}

// Register creates an unverified merchant account.
func (h *MerchantHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	out, err := h.merchantUC.Register(c.Request().Context(), &usecase.RegisterMerchantInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, RegisterResponse{User: out.User, VerificationCode: out.VerificationCode})
}

// Verify confirms the e-mail with the registration code.
func (h *MerchantHandler) Verify(c echo.Context) error {
	var req VerifyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	merchant, err := h.merchantUC.Verify(c.Request().Context(), &usecase.VerifyMerchantInput{Email: req.Email, Code: req.Code})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, map[string]any{"user": merchant})
}

// Login signs a verified merchant in.
func (h *MerchantHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	session, err := h.merchantUC.Login(c.Request().Context(), &usecase.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, SessionResponse{User: session.User, Token: session.Token})
}

// Update edits the caller's own merchant profile.
func (h *MerchantHandler) Update(c echo.Context) error {
	actorID, err := callerID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	merchantID, err := uuidParam(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req UpdateMerchantRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	merchant, err := h.merchantUC.Update(c.Request().Context(), actorID, merchantID, &usecase.UpdateMerchantInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, merchant)
}

// ListBusinesses returns the caller's own listings.
func (h *MerchantHandler) ListBusinesses(c echo.Context) error {
	actorID, err := callerID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	merchantID, err := uuidParam(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}
	if actorID != merchantID {
		return response.HandleAppError(c, domainerrors.ErrForbidden)
	}

	businesses, err := h.merchantUC.ListBusinesses(c.Request().Context(), merchantID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, businesses)
}
