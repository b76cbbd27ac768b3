package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/openclaw/ufc-arena/internal/game"
)

// Agents connect from anywhere; the arena is open by design.
var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// inbound covers the whole agent → server catalogue; the fields used depend
// on Type.
type inbound struct {
	Type   string      `json:"type"`
	Name   string      `json:"name"`
	Style  string      `json:"style"`
	Stats  *game.Stats `json:"stats"`
	GameID string      `json:"gameId"`
	Action string      `json:"action"`
}

// Handler upgrades agent connections and pumps inbound messages into the hub.
type Handler struct {
	hub *game.Hub
	log *slog.Logger
}

func NewHandler(hub *game.Hub, log *slog.Logger) *Handler {
	return &Handler{hub: hub, log: log}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("ws upgrade failed", slog.Any("error", err))
		return
	}
	h.log.Info("new connection", slog.String("remote", conn.RemoteAddr().String()))

	client := newClient(conn, h.log)
	h.hub.Connect(client)

	defer func() {
		h.hub.Disconnect(client)
		_ = conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg inbound
		if err := json.Unmarshal(data, &msg); err != nil {
			// Malformed frames never take the connection down.
			h.log.Warn("invalid message", slog.String("remote", conn.RemoteAddr().String()), slog.Any("error", err))
			continue
		}
		h.dispatch(client, msg)
	}
}

func (h *Handler) dispatch(client *Client, msg inbound) {
	switch msg.Type {
	case "register_bot":
		h.hub.Register(client, msg.Name, msg.Style, msg.Stats)
	case "fighter_action":
		h.hub.SubmitAction(client, msg.GameID, msg.Action)
	case "get_status":
		h.hub.Status(client)
	default:
		// Unrecognized types are an explicit no-op.
		h.log.Debug("unhandled message type", slog.String("type", msg.Type))
	}
}
