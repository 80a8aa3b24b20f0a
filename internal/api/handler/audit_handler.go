package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/platformsec/identity-service/internal/core/ports"
)

// AuditHandler serves read access to the security audit trail.
type AuditHandler struct {
	service ports.AuditService
}

func NewAuditHandler(service ports.AuditService) *AuditHandler {
	return &AuditHandler{service: service}
}

// ListRecent returns the newest audit entries.
//
// @Summary      List recent audit events
// @Tags         audit
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query    int  false  "Maximum entries (default 50)"
// @Success      200    {array}  domain.AuditEvent
// @Router       /api/audit [get]
func (h *AuditHandler) ListRecent(c echo.Context) error {
	var limit int64
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "limit must be a positive integer"})
		}
		limit = n
	}

	events, err := h.service.ListRecent(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}
