package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/travelblog/auth-service/internal/core/ports"
)

const maxAuditPage = 200

// AuditHandler serves the recent authentication audit trail to admins.
type AuditHandler struct {
	trail ports.AuditTrail
}

func NewAuditHandler(trail ports.AuditTrail) *AuditHandler {
	return &AuditHandler{trail: trail}
}

type auditResponse struct {
	Events []ports.AuditEvent `json:"events"`
}

// Recent returns the newest audit events, newest first.
//
// @Summary      Recent auth audit events
// @Tags         admin
// @Produce      json
// @Param        limit  query     int  false  "Maximum events to return (default 50)"
// @Success      200    {object}  auditResponse
// @Failure      401    {object}  messageResponse
// @Failure      403    {object}  messageResponse
// @Router       /admin/audit [get]
func (h *AuditHandler) Recent(c echo.Context) error {
	limit := 50
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = n
	}
	if limit > maxAuditPage {
		limit = maxAuditPage
	}

	events, err := h.trail.Recent(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	if events == nil {
		events = []ports.AuditEvent{}
	}
	return c.JSON(http.StatusOK, auditResponse{Events: events})
}
