package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"vitrina/internal/delivery/http/response"
	"vitrina/internal/usecase"
)

// BusinessHandlerParams holds dependencies for BusinessHandler, injected by Fx.
type BusinessHandlerParams struct {
	fx.In

	BusinessUC usecase.BusinessUsecase
	Logger     *slog.Logger
}

// BusinessHandler holds dependencies for business listing handlers
type BusinessHandler struct {
	businessUC usecase.BusinessUsecase
	logger     *slog.Logger
}

// NewBusinessHandler is the constructor for BusinessHandler
func NewBusinessHandler(params BusinessHandlerParams) *BusinessHandler {
	return &BusinessHandler{
		businessUC: params.BusinessUC,
		logger:     params.Logger,
	}
}

// CreateBusinessRequest uses the same keys the business is serialized with.
type CreateBusinessRequest struct {
	Name          string   `json:"nombre" validate:"required"`
	CategoryID    string   `json:"categoriaId" validate:"required"`
	SubcategoryID string   `json:"subcategoriaId"`
	ProvinceID    string   `json:"provinciaId" validate:"required"`
	CityID        string   `json:"ciudadId"`
	Neighborhood  string   `json:"barrio"`
	Address       string   `json:"direccion"`
	Phone         string   `json:"telefono"`
	WhatsApp      string   `json:"whatsapp"`
	Email         string   `json:"email" validate:"omitempty,email"`
	Website       string   `json:"web"`
	Instagram     string   `json:"instagram"`
	Description   string   `json:"descripcion"`
	Image         string   `json:"imagen"`
	Gallery       []string `json:"galeria"`
	AdTier        int      `json:"adTier" validate:"omitempty,min=1,max=6"`
	AutoRenew     bool     `json:"autoRenew"`
	Lat           *float64 `json:"lat" validate:"omitempty,latitude"`
	Lon           *float64 `json:"lon" validate:"omitempty,longitude"`
}

// UpdateBusinessRequest is a partial CreateBusinessRequest.
type UpdateBusinessRequest struct {
	Name          *string  `json:"nombre"`
	CategoryID    *string  `json:"categoriaId"`
	SubcategoryID *string  `json:"subcategoriaId"`
	ProvinceID    *string  `json:"provinciaId"`
	CityID        *string  `json:"ciudadId"`
	Neighborhood  *string  `json:"barrio"`
	Address       *string  `json:"direccion"`
	Phone         *string  `json:"telefono"`
	WhatsApp      *string  `json:"whatsapp"`
	Email         *string  `json:"email" validate:"omitempty,email"`
	Website       *string  `json:"web"`
	Instagram     *string  `json:"instagram"`
	Description   *string  `json:"descripcion"`
	Image         *string  `json:"imagen"`
	Gallery       []string `json:"galeria"`
	AdTier        *int     `json:"adTier" validate:"omitempty,min=1,max=6"`
	AutoRenew     *bool    `json:"autoRenew"`
	Lat           *float64 `json:"lat" validate:"omitempty,latitude"`
	Lon           *float64 `json:"lon" validate:"omitempty,longitude"`
}

// OpinionRequest is the body of POST /api/comercios/:id/opinar
type OpinionRequest struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Text   string `json:"text"`
}

// ReplyRequest is the body of the owner reply endpoint
type ReplyRequest struct {
	Text string `json:"text" validate:"required"`
}

// Create stores a new listing owned by the caller.
func (h *BusinessHandler) Create(c echo.Context) error {
	ownerID, err := callerID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req CreateBusinessRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	business, err := h.businessUC.Create(c.Request().Context(), ownerID, &usecase.CreateBusinessInput{
		Name:          req.Name,
		CategoryID:    req.CategoryID,
		SubcategoryID: req.SubcategoryID,
		ProvinceID:    req.ProvinceID,
		CityID:        req.CityID,
		Neighborhood:  req.Neighborhood,
		Address:       req.Address,
		Phone:         req.Phone,
		WhatsApp:      req.WhatsApp,
		Email:         req.Email,
		Website:       req.Website,
		Instagram:     req.Instagram,
		Description:   req.Description,
		Image:         req.Image,
		Gallery:       req.Gallery,
		AdTier:        req.AdTier,
		AutoRenew:     req.AutoRenew,
		Lat:           req.Lat,
		Lon:           req.Lon,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, business)
}

// Get returns one listing.
func (h *BusinessHandler) Get(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	business, err := h.businessUC.Get(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, business)
}

// Update edits a listing owned by the caller.
func (h *BusinessHandler) Update(c echo.Context) error {
	actorID, err := callerID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req UpdateBusinessRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	business, err := h.businessUC.Update(c.Request().Context(), actorID, id, &usecase.UpdateBusinessInput{
		Name:          req.Name,
		CategoryID:    req.CategoryID,
		SubcategoryID: req.SubcategoryID,
		ProvinceID:    req.ProvinceID,
		CityID:        req.CityID,
		Neighborhood:  req.Neighborhood,
		Address:       req.Address,
		Phone:         req.Phone,
		WhatsApp:      req.WhatsApp,
		Email:         req.Email,
		Website:       req.Website,
		Instagram:     req.Instagram,
		Description:   req.Description,
		Image:         req.Image,
		Gallery:       req.Gallery,
		AdTier:        req.AdTier,
		AutoRenew:     req.AutoRenew,
		Lat:           req.Lat,
		Lon:           req.Lon,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, business)
}

// Delete removes a listing owned by the caller.
func (h *BusinessHandler) Delete(c echo.Context) error {
	actorID, err := callerID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.businessUC.Delete(c.Request().Context(), actorID, id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, map[string]bool{"success": true})
}

// AddOpinion posts a rated opinion as the calling public user.
func (h *BusinessHandler) AddOpinion(c echo.Context) error {
	authorID, err := callerID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	businessID, err := uuidParam(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req OpinionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	opinion, err := h.businessUC.AddOpinion(c.Request().Context(), authorID, businessID, &usecase.OpinionInput{
		Rating: req.Rating,
		Text:   req.Text,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, opinion)
}

// Reply answers an opinion as the owner.
func (h *BusinessHandler) Reply(c echo.Context) error {
	actorID, err := callerID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	businessID, err := uuidParam(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}
	opinionID, err := uuidParam(c, "opinionId")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req ReplyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	opinion, err := h.businessUC.Reply(c.Request().Context(), actorID, businessID, opinionID, req.Text)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, opinion)
}

// ToggleLike likes or unlikes an opinion.
func (h *BusinessHandler) ToggleLike(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	businessID, err := uuidParam(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}
	opinionID, err := uuidParam(c, "opinionId")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	opinion, err := h.businessUC.ToggleLike(c.Request().Context(), userID, businessID, opinionID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, opinion)
}

// ShareQR returns the PNG QR code of the business page.
func (h *BusinessHandler) ShareQR(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	png, err := h.businessUC.ShareQR(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
