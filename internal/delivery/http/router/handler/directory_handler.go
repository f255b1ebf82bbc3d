package handler

import (
	"log/slog"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"vitrina/internal/delivery/http/response"
	domainerrors "vitrina/internal/domain/errors"
	"vitrina/internal/usecase"
)

// filterParams are the query keys that count as an explicit filter choice.
//
//nolint:gochecknoglobals
var filterParams = []string{"provinceId", "cityId", "neighborhood", "categoryId", "subcategoryId", "name"}

// DirectoryHandlerParams holds dependencies for DirectoryHandler, injected by Fx.
type DirectoryHandlerParams struct {
	fx.In

	DirectoryUC usecase.DirectoryUsecase
	Logger      *slog.Logger
}

// DirectoryHandler serves the home view.
type DirectoryHandler struct {
	directoryUC usecase.DirectoryUsecase
	logger      *slog.Logger
}

// NewDirectoryHandler is the constructor for DirectoryHandler
func NewDirectoryHandler(params DirectoryHandlerParams) *DirectoryHandler {
	return &DirectoryHandler{
		directoryUC: params.DirectoryUC,
		logger:      params.Logger,
	}
}

// Home answers GET /api/home. With no filter parameter and no location the default
// city filter applies; a present but empty parameter means "show everything".
func (h *DirectoryHandler) Home(c echo.Context) error {
	input, err := parseHomeQuery(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	out, err := h.directoryUC.Home(c.Request().Context(), input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, out)
}

func parseHomeQuery(c echo.Context) (*usecase.HomeInput, error) {
	input := &usecase.HomeInput{}
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &input.Filters); err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("invalid filters")
	}

	query := c.QueryParams()
	explicit := false
	for _, key := range filterParams {
		if query.Has(key) {
			explicit = true

			break
		}
	}

	lat, err := optionalFloat(c, "lat")
	if err != nil {
		return nil, err
	}
	lon, err := optionalFloat(c, "lon")
	if err != nil {
		return nil, err
	}
	if lat != nil && lon != nil {
		input.Lat, input.Lon = lat, lon
	}

	input.UseDefaultFilters = !explicit && input.Lat == nil

	if raw := c.QueryParam("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return nil, domainerrors.ErrValidationFailed.WithDetails("invalid page")
		}
		input.Page = page
	}

	if raw := c.QueryParam("userId"); raw != "" {
		userID, err := uuid.Parse(raw)
		if err != nil {
			return nil, domainerrors.ErrValidationFailed.WithDetails("invalid userId")
		}
		input.UserID = &userID
	}

	return input, nil
}

func optionalFloat(c echo.Context, name string) (*float64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil //nolint:nilnil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("invalid " + name)
	}

	return &v, nil
}
