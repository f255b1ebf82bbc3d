// Package handler holds the echo handlers of the public API.
package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	deliverycontext "vitrina/internal/delivery/context"
	domainerrors "vitrina/internal/domain/errors"
)

// HealthCheck answers liveness probes.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func uuidParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails("invalid " + name)
	}

	return id, nil
}

func callerID(c echo.Context) (uuid.UUID, error) {
	identity, ok := deliverycontext.GetIdentity(c)
	if !ok {
		return uuid.Nil, domainerrors.ErrUnauthorized
	}

	return identity.UserID, nil
}

// bindAndValidate decodes the body into req and runs its validate tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("malformed request body")
	}

	return c.Validate(req)
}
