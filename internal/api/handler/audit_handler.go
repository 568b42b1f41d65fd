package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/planifikues/travel-planner/internal/core/ports"
)

// AuditHandler exposes the auth audit trail to administrators.
type AuditHandler struct {
	service ports.AuditService
}

func NewAuditHandler(service ports.AuditService) *AuditHandler {
	return &AuditHandler{service: service}
}

// Recent handles GET /api/admin/audit.
//
// @Summary      Recent auth events
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum number of events (default 50, max 500)"
// @Success      200    {array}   domain.AuthEvent
// @Failure      400    {object}  middleware.ErrorBody
// @Failure      403    {object}  middleware.ErrorBody
// @Router       /api/admin/audit [get]
func (h *AuditHandler) Recent(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a non-negative integer")
		}
		limit = n
	}

	events, err := h.service.Recent(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}
