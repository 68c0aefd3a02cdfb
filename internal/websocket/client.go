package websocket

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"tabula/internal/config"
	"tabula/internal/infrastructure"
)

// writeWait bounds how long a single frame write may take.
const writeWait = 10 * time.Second

// Client is the middleman between one websocket connection and the hub.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	id     string
	cfg    config.WebSocketConfig
	logger *slog.Logger
}

// Handler returns an http.Handler that upgrades requests to websocket
// connections and attaches them to the hub.
func Handler(hub *Hub, cfg config.WebSocketConfig) http.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  cfg.ReadBufferSize,
		WriteBufferSize: cfg.WriteBufferSize,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			hub.logger.ErrorContext(r.Context(), "websocket upgrade failed",
				slog.String("error", err.Error()))
			return
		}

		id := uuid.New().String()
		client := &Client{
			hub:  hub,
			conn: conn,
			send: make(chan []byte, 64),
			id:   id,
			cfg:  cfg,
			logger: infrastructure.WithComponent(hub.logger, "websocket.client").
				With(slog.String("client_id", id)),
		}

		hub.register <- client
		go client.writePump()
		go client.readPump()

		hub.Broadcast(TypeConnection, map[string]string{"client_id": id})
	}
}

// readPump drains inbound frames so pongs and close frames are
// processed. Clients are listen-only; payloads are discarded.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("unexpected close", slog.String("error", err.Error()))
			}
			return
		}
	}
}

// writePump forwards hub messages to the connection and keeps the
// connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(c.cfg.PingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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
