package handler

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"vitrina/internal/delivery/http/response"
	"vitrina/internal/usecase"
)

// DataHandlerParams holds dependencies for DataHandler, injected by Fx.
type DataHandlerParams struct {
	fx.In

	DataUC usecase.DataUsecase
	Logger *slog.Logger
}

// DataHandler serves the full snapshot and the demo reset.
type DataHandler struct {
	dataUC usecase.DataUsecase
	logger *slog.Logger
}

// NewDataHandler is the constructor for DataHandler
func NewDataHandler(params DataHandlerParams) *DataHandler {
	return &DataHandler{
		dataUC: params.DataUC,
		logger: params.Logger,
	}
}

// GetData returns every collection.
func (h *DataHandler) GetData(c echo.Context) error {
	snapshot, err := h.dataUC.Snapshot(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, snapshot)
}

// ResetData restores the seed state.
func (h *DataHandler) ResetData(c echo.Context) error {
	if err := h.dataUC.Reset(c.Request().Context()); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, map[string]bool{"success": true})
}
