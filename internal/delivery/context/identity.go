package context

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"vitrina/internal/domain/entity"
)

const (
	keyUserID = "user_id"
	keyRole   = "role"
)

// Identity is the authenticated caller resolved from the bearer token.
type Identity struct {
	UserID uuid.UUID
	Role   entity.Role
}

// SetIdentity stores the caller identity in echo.Context.
func SetIdentity(c echo.Context, id Identity) {
	c.Set(keyUserID, id.UserID)
	c.Set(keyRole, id.Role)
}

// GetIdentity returns the caller identity set by the auth middleware.
func GetIdentity(c echo.Context) (Identity, bool) {
	userID, ok := c.Get(keyUserID).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return Identity{}, false
	}
	role, _ := c.Get(keyRole).(entity.Role)

	return Identity{UserID: userID, Role: role}, true
}
