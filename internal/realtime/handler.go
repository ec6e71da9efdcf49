package realtime

import (
	"net/http"

	"ecosync-hub/internal/services"
	"ecosync-hub/internal/transport/httpdto"
	"ecosync-hub/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Handler upgrades authenticated connections into hub clients.
type Handler struct {
	auth     *services.AuthService
	hub      *Hub
	messages *services.MessageService
	logger   *logger.Logger
}

func NewHandler(auth *services.AuthService, hub *Hub, messages *services.MessageService, l *logger.Logger) *Handler {
	return &Handler{
		auth:     auth,
		hub:      hub,
		messages: messages,
		logger:   l,
	}
}

// Connect authenticates before upgrading so a bad credential still gets a
// proper HTTP status. The token rides the query string; browser WebSocket
// clients cannot set an Authorization header.
func (h *Handler) Connect(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("authentication required", "UNAUTHORIZED"))
		return
	}

	claims, err := h.auth.ParseAccessToken(token)
	if err != nil {
		c.JSON(http.StatusForbidden, httpdto.NewErrorResponse("invalid or expired token", "FORBIDDEN"))
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := NewClient(h.hub, conn, claims.UserID, uuid.NewString(), h.messages, h.logger)
	h.hub.Join(client)

	go client.WritePump()
	go client.ReadPump()
}
