package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/planifikues/travel-planner/internal/core/identity"
)

// caller returns the identity the guard attached to the request. A missing
// identity surfaces as domain.ErrUnauthenticated, which the error handler
// treats as a server fault: the route was wired without the guard.
func caller(c echo.Context) (identity.Identity, error) {
	return identity.Require(c.Request().Context())
}
