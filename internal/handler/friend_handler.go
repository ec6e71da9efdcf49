package handler

import (
	"net/http"

	"ecosync-hub/internal/services"
	"ecosync-hub/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

type FriendHandler struct {
	service *services.FriendService
}

func NewFriendHandler(service *services.FriendService) *FriendHandler {
	return &FriendHandler{service: service}
}

func (h *FriendHandler) Request(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	var req httpdto.FriendRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	requestID, err := h.service.Request(c.Request.Context(), id.ID, req.UserID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(gin.H{"request_id": requestID}))
}

func (h *FriendHandler) Accept(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	requestID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Accept(c.Request.Context(), id.ID, requestID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"status": "accepted"}))
}

func (h *FriendHandler) List(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	items, err := h.service.Friends(c.Request.Context(), id.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"friends": items}))
}

func (h *FriendHandler) Pending(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	items, err := h.service.PendingRequests(c.Request.Context(), id.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"requests": items}))
}
