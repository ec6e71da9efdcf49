package handler

import (
	"net/http"

	"ecosync-hub/internal/services"
	"ecosync-hub/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	service *services.AdminService
}

func NewAdminHandler(service *services.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

func (h *AdminHandler) ApproveSeller(c *gin.Context) {
	userID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.ApproveSeller(c.Request.Context(), userID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"status": "approved"}))
}

func (h *AdminHandler) PendingProducts(c *gin.Context) {
	items, err := h.service.PendingProducts(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"products": items}))
}

func (h *AdminHandler) ApproveProduct(c *gin.Context) {
	productID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.ApproveProduct(c.Request.Context(), productID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"status": "approved"}))
}
