package ws_test

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclaw/ufc-arena/internal/game"
	"github.com/openclaw/ufc-arena/internal/ws"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newArena(t *testing.T) *httptest.Server {
	t.Helper()
	rules := game.DefaultRules()
	rules.EntranceDelay = 20 * time.Millisecond
	rules.TickInterval = time.Hour
	hub := game.NewHub(rules, game.NewResolver(), game.NewStandings(), testLogger())
	srv := httptest.NewServer(ws.NewHandler(hub, testLogger()))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// readUntil drains messages until one with the wanted type arrives.
func readUntil(t *testing.T, conn *websocket.Conn, msgType string) map[string]any {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var msg map[string]any
		require.NoError(t, conn.ReadJSON(&msg))
		if msg["type"] == msgType {
			return msg
		}
	}
	t.Fatalf("never received %q", msgType)
	return nil
}

func register(conn *websocket.Conn, name, style string) error {
	return conn.WriteJSON(map[string]any{
		"type":  "register_bot",
		"name":  name,
		"style": style,
		"stats": map[string]int{"power": 90, "speed": 85, "defense": 75, "cardio": 80},
	})
}

func TestRegisterAndMatchFlow(t *testing.T) {
	srv := newArena(t)

	c1 := dial(t, srv)
	readUntil(t, c1, "connected")
	require.NoError(t, register(c1, "Alpha", "striker"))
	reg := readUntil(t, c1, "registered")
	assert.NotEmpty(t, reg["botId"])

	c2 := dial(t, srv)
	readUntil(t, c2, "connected")
	require.NoError(t, register(c2, "Bravo", "grappler"))

	mf1 := readUntil(t, c1, "match_found")
	mf2 := readUntil(t, c2, "match_found")
	assert.Equal(t, mf1["gameId"], mf2["gameId"])
	assert.Equal(t, "fighter1", mf1["role"])
	assert.Equal(t, "fighter2", mf2["role"])
	assert.Equal(t, "Bravo", mf1["opponent"])

	readUntil(t, c1, "entrance_start")
	fs := readUntil(t, c1, "fight_start")
	assert.EqualValues(t, 1, fs["round"])

	// One action lands on the wire as a broadcast to both corners.
	require.NoError(t, c1.WriteJSON(map[string]any{
		"type":   "fighter_action",
		"gameId": mf1["gameId"],
		"action": "jab",
	}))
	ar := readUntil(t, c2, "action_result")
	assert.Equal(t, "Alpha", ar["actor"])
	assert.Equal(t, "jab", ar["action"])
}

func TestMalformedAndUnknownMessagesAreHarmless(t *testing.T) {
	srv := newArena(t)

	c := dial(t, srv)
	readUntil(t, c, "connected")

	require.NoError(t, c.WriteMessage(websocket.TextMessage, []byte("{not json")))
	require.NoError(t, c.WriteJSON(map[string]any{"type": "do_a_flip"}))

	// The connection survives both and still serves requests.
	require.NoError(t, register(c, "Alpha", "striker"))
	readUntil(t, c, "registered")

	require.NoError(t, c.WriteJSON(map[string]any{"type": "get_status"}))
	status := readUntil(t, c, "status")
	assert.EqualValues(t, 1, status["waiting"])
}
