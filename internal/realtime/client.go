package realtime

import (
	"context"
	"encoding/json"
	"time"

	"ecosync-hub/internal/services"
	"ecosync-hub/pkg/logger"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

// Client represents a single WebSocket connection bound to one user.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	userID   uint
	clientID string
	messages *services.MessageService
	logger   *logger.Logger
}

// clientEvent is the inbound envelope. Data is decoded per event type.
type clientEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type privateMessageData struct {
	ReceiverID uint   `json:"receiver_id"`
	Content    string `json:"content"`
}

type markReadData struct {
	MessageID uint `json:"message_id"`
}

func NewClient(hub *Hub, conn *websocket.Conn, userID uint, clientID string, messages *services.MessageService, l *logger.Logger) *Client {
	return &Client{
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, 256),
		userID:   userID,
		clientID: clientID,
		messages: messages,
		logger:   l,
	}
}

func (c *Client) ReadPump() {
	defer func() {
		c.hub.Leave(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Logger.Error("websocket unexpected close",
					zap.Uint("user_id", c.userID), zap.Error(err))
			}
			break
		}
		c.handleEvent(raw)
	}
}

func (c *Client) handleEvent(raw []byte) {
	var ev clientEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		c.enqueueEvent("message_error", map[string]string{"error": "Invalid event payload"})
		return
	}

	switch ev.Event {
	case "private_message":
		c.handlePrivateMessage(ev.Data)
	case "mark_read":
		c.handleMarkRead(ev.Data)
	default:
		c.logger.Logger.Warn("unknown event",
			zap.Uint("user_id", c.userID), zap.String("event", ev.Event))
	}
}

// handlePrivateMessage persists and delivers through the same service method
// the REST path uses. On success the acknowledgment goes to the sender's own
// room so every open tab of the sender sees the echo; errors go back to this
// connection only, never to the receiver.
func (c *Client) handlePrivateMessage(data json.RawMessage) {
	var d privateMessageData
	if err := json.Unmarshal(data, &d); err != nil {
		c.enqueueEvent("message_error", map[string]string{"error": "Invalid event payload"})
		return
	}

	msg, err := c.messages.Send(context.Background(), c.userID, d.ReceiverID, d.Content)
	if err != nil {
		c.enqueueEvent("message_error", map[string]string{"error": "Failed to send message"})
		return
	}
	c.hub.Push(c.userID, "message_sent", msg)
}

func (c *Client) handleMarkRead(data json.RawMessage) {
	var d markReadData
	if err := json.Unmarshal(data, &d); err != nil {
		c.enqueueEvent("message_error", map[string]string{"error": "Invalid event payload"})
		return
	}

	if err := c.messages.MarkMessageRead(context.Background(), c.userID, d.MessageID); err != nil {
		c.enqueueEvent("message_error", map[string]string{"error": "Failed to mark as read"})
		return
	}
	c.enqueueEvent("message_read", map[string]uint{"message_id": d.MessageID})
}

func (c *Client) enqueueEvent(event string, payload interface{}) {
	data, err := json.Marshal(Event{Event: event, Data: payload})
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
