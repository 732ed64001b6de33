package handler

import (
	httpmiddleware "bistro/internal/delivery/http/middleware"
	domainerrors "bistro/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// currentUserID reads the authenticated caller's ID set by the auth
// middleware. Routes calling this must be registered behind Authenticate.
func currentUserID(c echo.Context) (uuid.UUID, error) {
	userID, ok := c.Get(httpmiddleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		return uuid.Nil, errors.WithStack(domainerrors.ErrUnauthenticated)
	}

	return userID, nil
}

// pathUUID parses a route parameter as a UUID.
func pathUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails(name + ": must be a valid UUID"))
	}

	return id, nil
}
