package handler

import (
	"errors"
	"net/http"
	"strconv"

	"ecosync-hub/internal/services"
	"ecosync-hub/internal/transport/httpdto"
	ecosync_errors "ecosync-hub/pkg/errors"

	"github.com/gin-gonic/gin"
)

// writeError maps service sentinels to HTTP statuses. Every handler funnels
// failures through here so the two transports and all domains agree on
// status semantics.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ecosync_errors.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
	case errors.Is(err, ecosync_errors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
	case errors.Is(err, ecosync_errors.ErrForbidden):
		c.JSON(http.StatusForbidden, httpdto.NewErrorResponse("forbidden", "FORBIDDEN"))
	case errors.Is(err, ecosync_errors.ErrNotFound):
		c.JSON(http.StatusNotFound, httpdto.NewErrorResponse("not found", "NOT_FOUND"))
	case errors.Is(err, ecosync_errors.ErrAlreadyExists):
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("already exists", "ALREADY_EXISTS"))
	case errors.Is(err, ecosync_errors.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, httpdto.NewErrorResponse("rate limit exceeded", "RATE_LIMITED"))
	default:
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("internal error", "INTERNAL_ERROR"))
	}
}

// identity pulls the authenticated caller out of the request context. The
// auth middleware guarantees it on protected routes; its absence is a
// wiring bug, answered with 401.
func identity(c *gin.Context) (services.Identity, bool) {
	id, ok := services.IdentityFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
	}
	return id, ok
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || v == 0 {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid "+name, "INVALID_REQUEST"))
		return 0, false
	}
	return uint(v), true
}

func parseUintQuery(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Query(name), 10, 32)
	if err != nil || v == 0 {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid "+name, "INVALID_REQUEST"))
		return 0, false
	}
	return uint(v), true
}
