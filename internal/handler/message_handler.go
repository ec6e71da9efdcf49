package handler

import (
	"net/http"

	"ecosync-hub/internal/services"
	"ecosync-hub/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	service *services.MessageService
}

func NewMessageHandler(service *services.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

func (h *MessageHandler) Send(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	var req httpdto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	msg, err := h.service.Send(c.Request.Context(), id.ID, req.ReceiverID, req.Content)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(msg))
}

func (h *MessageHandler) Conversations(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	items, err := h.service.Conversations(c.Request.Context(), id.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"conversations": items}))
}

func (h *MessageHandler) Thread(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	peerID, ok := parseUintQuery(c, "with")
	if !ok {
		return
	}

	items, err := h.service.Thread(c.Request.Context(), id.ID, peerID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"messages": items}))
}

// MarkRead flips every unread message from the given peer. Safe to repeat.
func (h *MessageHandler) MarkRead(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	var req httpdto.MarkConversationReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	if err := h.service.MarkConversationRead(c.Request.Context(), id.ID, req.With); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"status": "ok"}))
}

func (h *MessageHandler) UnreadCount(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	count, err := h.service.UnreadCount(c.Request.Context(), id.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"unread": count}))
}

func (h *MessageHandler) Delete(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	messageID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id.ID, messageID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"status": "deleted"}))
}
