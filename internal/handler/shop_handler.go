package handler

import (
	"net/http"

	"ecosync-hub/internal/services"
	"ecosync-hub/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

type ShopHandler struct {
	service *services.ShopService
}

func NewShopHandler(service *services.ShopService) *ShopHandler {
	return &ShopHandler{service: service}
}

func (h *ShopHandler) Catalog(c *gin.Context) {
	items, err := h.service.Catalog(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"products": items}))
}

func (h *ShopHandler) GetProduct(c *gin.Context) {
	productID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	p, err := h.service.GetProduct(c.Request.Context(), productID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(p))
}

func (h *ShopHandler) CreateProduct(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	var req httpdto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	productID, err := h.service.CreateProduct(c.Request.Context(), id, services.CreateProductInput{
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		CO2ReductionKg: req.CO2ReductionKg,
		ImageURL:       req.ImageURL,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(gin.H{"id": productID}))
}

func (h *ShopHandler) AddToCart(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	var req httpdto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	itemID, err := h.service.AddToCart(c.Request.Context(), id.ID, req.ProductID, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(gin.H{"id": itemID}))
}

func (h *ShopHandler) Cart(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	items, err := h.service.Cart(c.Request.Context(), id.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"items": items}))
}

func (h *ShopHandler) RemoveFromCart(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	itemID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.RemoveFromCart(c.Request.Context(), id.ID, itemID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"status": "removed"}))
}

func (h *ShopHandler) AddToWishlist(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	var req httpdto.AddWishlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	itemID, err := h.service.AddToWishlist(c.Request.Context(), id.ID, req.ProductID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(gin.H{"id": itemID}))
}

func (h *ShopHandler) Wishlist(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	items, err := h.service.Wishlist(c.Request.Context(), id.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"items": items}))
}

func (h *ShopHandler) RemoveFromWishlist(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	itemID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.RemoveFromWishlist(c.Request.Context(), id.ID, itemID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"status": "removed"}))
}

func (h *ShopHandler) Checkout(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	order, err := h.service.Checkout(c.Request.Context(), id.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(order))
}
