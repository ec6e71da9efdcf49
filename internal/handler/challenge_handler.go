package handler

import (
	"net/http"

	"ecosync-hub/internal/services"
	"ecosync-hub/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

type ChallengeHandler struct {
	service *services.ChallengeService
}

func NewChallengeHandler(service *services.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{service: service}
}

func (h *ChallengeHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"challenges": items}))
}

func (h *ChallengeHandler) Join(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	challengeID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	joinID, err := h.service.Join(c.Request.Context(), id.ID, challengeID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(gin.H{"id": joinID}))
}

func (h *ChallengeHandler) Complete(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	challengeID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	// Admins may complete on behalf of a participant via ?user_id=.
	userID := id.ID
	if raw := c.Query("user_id"); raw != "" {
		parsed, ok := parseUintQuery(c, "user_id")
		if !ok {
			return
		}
		userID = parsed
	}

	if err := h.service.Complete(c.Request.Context(), id, userID, challengeID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"status": "completed"}))
}
