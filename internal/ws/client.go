// Package ws adapts the fight protocol onto gorilla websockets: one client
// per agent connection, JSON messages tagged with a "type" field.
package ws

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeTimeout = 10 * time.Second

// Client is one agent connection's outbound half. The hub, sessions and
// round timers all call Send concurrently; gorilla allows a single writer,
// so writes serialize on mu.
type Client struct {
	conn *websocket.Conn
	log  *slog.Logger

	mu sync.Mutex
}

func newClient(conn *websocket.Conn, log *slog.Logger) *Client {
	return &Client{conn: conn, log: log}
}

// Send marshals v onto the wire. Write failures are logged and swallowed;
// a dead peer surfaces through the read loop as a disconnect.
func (c *Client) Send(v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := c.conn.WriteJSON(v); err != nil {
		c.log.Debug("ws write failed", slog.String("remote", c.conn.RemoteAddr().String()), slog.Any("error", err))
	}
}
