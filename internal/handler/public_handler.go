package handler

import (
	"net/http"

	"ecosync-hub/internal/services"
	"ecosync-hub/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// PublicHandler serves the unauthenticated landing-page endpoints.
type PublicHandler struct {
	service *services.StatsService
}

func NewPublicHandler(service *services.StatsService) *PublicHandler {
	return &PublicHandler{service: service}
}

func (h *PublicHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(stats))
}

func (h *PublicHandler) Leaderboard(c *gin.Context) {
	top, err := h.service.Leaderboard(c.Request.Context(), 3)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"leaders": top}))
}
