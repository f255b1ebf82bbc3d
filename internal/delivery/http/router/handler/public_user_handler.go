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

// PublicUserHandlerParams holds dependencies for PublicUserHandler, injected by Fx.
type PublicUserHandlerParams struct {
	fx.In

	PublicUserUC usecase.PublicUserUsecase
	Logger       *slog.Logger
}

// PublicUserHandler holds dependencies for public user handlers
type PublicUserHandler struct {
	publicUserUC usecase.PublicUserUsecase
	logger       *slog.Logger
}

// NewPublicUserHandler is the constructor for PublicUserHandler
func NewPublicUserHandler(params PublicUserHandlerParams) *PublicUserHandler {
	return &PublicUserHandler{
		publicUserUC: params.PublicUserUC,
		logger:       params.Logger,
	}
}

// PublicRegisterRequest is the body of POST /api/public-register
type PublicRegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Surname  string `json:"surname"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
}

// UpdatePublicUserRequest is the body of PUT /api/public-users/:id
type UpdatePublicUserRequest struct {
	Name     *string `json:"name"`
	Surname  *string `json:"surname"`
	Password *string `json:"password" validate:"omitempty,min=4"`
}

// HistoryRequest is the body of POST /api/public-users/:id/history
type HistoryRequest struct {
	BusinessID uuid.UUID `json:"businessId" validate:"required"`
}

// FavoriteResponse reports the new favorite state along with the user.
type FavoriteResponse struct {
	User     any  `json:"user"`
	Favorite bool `json:"favorite"`
}

// Register creates a public account and returns a session.
func (h *PublicUserHandler) Register(c echo.Context) error {
	var req PublicRegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	session, err := h.publicUserUC.Register(c.Request().Context(), &usecase.RegisterPublicUserInput{
		Name:     req.Name,
		Surname:  req.Surname,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, SessionResponse{User: session.User, Token: session.Token})
}

// Login signs a public user in.
func (h *PublicUserHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	session, err := h.publicUserUC.Login(c.Request().Context(), &usecase.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, SessionResponse{User: session.User, Token: session.Token})
}

// Get returns the caller's profile.
func (h *PublicUserHandler) Get(c echo.Context) error {
	actorID, userID, err := selfParams(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	user, err := h.publicUserUC.Get(c.Request().Context(), actorID, userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, user)
}

// Update edits the caller's profile.
func (h *PublicUserHandler) Update(c echo.Context) error {
	actorID, userID, err := selfParams(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req UpdatePublicUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	user, err := h.publicUserUC.Update(c.Request().Context(), actorID, userID, &usecase.UpdatePublicUserInput{
		Name:     req.Name,
		Surname:  req.Surname,
		Password: req.Password,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, user)
}

// ToggleFavorite adds or removes a favorite business.
func (h *PublicUserHandler) ToggleFavorite(c echo.Context) error {
	actorID, userID, err := selfParams(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	businessID, err := uuidParam(c, "businessId")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	out, err := h.publicUserUC.ToggleFavorite(c.Request().Context(), actorID, userID, businessID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, FavoriteResponse{User: out.User, Favorite: out.Favorite})
}

// RecordView adds a view to the caller's history.
func (h *PublicUserHandler) RecordView(c echo.Context) error {
	actorID, userID, err := selfParams(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req HistoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	user, err := h.publicUserUC.RecordView(c.Request().Context(), actorID, userID, req.BusinessID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, user)
}

// Recommendations returns up to four suggested businesses for the caller.
func (h *PublicUserHandler) Recommendations(c echo.Context) error {
	actorID, userID, err := selfParams(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	if actorID != userID {
		return response.HandleAppError(c, domainerrors.ErrForbidden)
	}

	businesses, err := h.publicUserUC.Recommendations(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, businesses)
}

// selfParams returns the caller and the :id path parameter.
func selfParams(c echo.Context) (actorID, userID uuid.UUID, err error) {
	if actorID, err = callerID(c); err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	if userID, err = uuidParam(c, "id"); err != nil {
		return uuid.Nil, uuid.Nil, err
	}

	return actorID, userID, nil
}
