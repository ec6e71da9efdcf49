package handler

import (
	"net/http"

	"ecosync-hub/internal/services"
	"ecosync-hub/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

type BadgeHandler struct {
	service *services.BadgeService
}

func NewBadgeHandler(service *services.BadgeService) *BadgeHandler {
	return &BadgeHandler{service: service}
}

// Counts serves the aggregated badge block in one round trip.
func (h *BadgeHandler) Counts(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	counts, err := h.service.Counts(c.Request.Context(), id.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(counts))
}
