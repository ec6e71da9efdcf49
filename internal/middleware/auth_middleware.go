package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"ecosync-hub/internal/services"
	"ecosync-hub/internal/transport/httpdto"
	"ecosync-hub/pkg/logger"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware gates protected routes. A missing token is 401; a present
// but invalid one is 403. Old tokens without a role claim get the role
// backfilled from the store; a backfill failure is logged and the request
// proceeds with an empty role.
func AuthMiddleware(service *services.AuthService, l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearer(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("authentication required", "UNAUTHORIZED"))
			c.Abort()
			return
		}

		claims, err := service.ParseAccessToken(token)
		if err != nil {
			c.JSON(http.StatusForbidden, httpdto.NewErrorResponse("invalid or expired token", "FORBIDDEN"))
			c.Abort()
			return
		}

		role := claims.Role
		if role == "" {
			role, err = service.RoleFor(c.Request.Context(), claims.UserID)
			if err != nil {
				l.Warnf("role backfill failed for user %d: %s", claims.UserID, err.Error())
				role = ""
			}
		}

		identity := services.Identity{
			ID:       claims.UserID,
			Username: claims.Username,
			Role:     role,
		}
		ctx := services.WithIdentity(c.Request.Context(), identity)
		ctx = context.WithValue(ctx, logger.UserIdKey, strconv.FormatUint(uint64(identity.ID), 10))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireRole guards a route group behind an exact role match. Runs after
// AuthMiddleware.
func RequireRole(role string) gin.HandlerFunc {
	return RequireAnyRole(role)
}

// RequireAnyRole passes callers holding any of the given roles.
func RequireAnyRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := services.IdentityFromContext(c.Request.Context())
		if ok {
			for _, role := range roles {
				if identity.Role == role {
					c.Next()
					return
				}
			}
		}
		c.JSON(http.StatusForbidden, httpdto.NewErrorResponse("insufficient permissions", "FORBIDDEN"))
		c.Abort()
	}
}

func extractBearer(c *gin.Context) string {
	value := c.GetHeader("Authorization")
	parts := strings.SplitN(value, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
