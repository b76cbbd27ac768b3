package api_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclaw/ufc-arena/internal/api"
	"github.com/openclaw/ufc-arena/internal/game"
)

// nullSender discards broadcasts. The field keeps instances distinct so the
// hub can tell two connections apart.
type nullSender struct{ name string }

func (*nullSender) Send(any) {}

func newTestServer(t *testing.T) (*httptest.Server, *game.Hub, *game.Standings) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	standings := game.NewStandings()
	hub := game.NewHub(game.DefaultRules(), game.NewResolver(), standings, log)
	server := api.NewServer(hub, standings, "test", log)
	srv := httptest.NewServer(server.Router(http.NotFoundHandler()))
	t.Cleanup(srv.Close)
	return srv, hub, standings
}

func getJSON(t *testing.T, url string) (map[string]any, *http.Response) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body, resp
}

func TestHealthEndpoint(t *testing.T) {
	srv, _, _ := newTestServer(t)

	body, resp := getJSON(t, srv.URL+"/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "test", body["version"])
	assert.EqualValues(t, 0, body["waiting"])
	assert.EqualValues(t, 0, body["fighting"])
	assert.Contains(t, body, "uptime")
}

func TestStatusEndpointCountsAndTopTen(t *testing.T) {
	srv, hub, standings := newTestServer(t)
	hub.Register(&nullSender{}, "Alpha", "striker", nil)

	a := &game.Agent{ID: "x", Name: "X"}
	b := &game.Agent{ID: "y", Name: "Y"}
	standings.RecordResult("g1", a, b, game.MethodKO, 1)

	body, _ := getJSON(t, srv.URL+"/api/status")
	assert.EqualValues(t, 1, body["waiting"])
	assert.EqualValues(t, 0, body["fighting"])
	assert.EqualValues(t, 1, body["totalFights"])
	assert.EqualValues(t, 1, body["totalKOs"])

	lb, ok := body["leaderboard"].([]any)
	require.True(t, ok)
	require.Len(t, lb, 2)
	top := lb[0].(map[string]any)
	assert.Equal(t, "X", top["name"])
	assert.EqualValues(t, 100, top["winRate"])
}

func TestLeaderboardEndpointWeightedOrder(t *testing.T) {
	srv, _, standings := newTestServer(t)
	a := &game.Agent{ID: "a", Name: "A"}
	b := &game.Agent{ID: "b", Name: "B"}
	c := &game.Agent{ID: "c", Name: "C"}
	// A: one decision win (score 3). B: one KO win (score 4).
	standings.RecordResult("g1", a, c, game.MethodDecision, 3)
	standings.RecordResult("g2", b, c, game.MethodKO, 2)

	body, _ := getJSON(t, srv.URL+"/api/leaderboard")
	lb := body["leaderboard"].([]any)
	require.NotEmpty(t, lb)
	assert.Equal(t, "B", lb[0].(map[string]any)["name"])

	stats := body["stats"].(map[string]any)
	assert.EqualValues(t, 2, stats["totalFights"])
	assert.EqualValues(t, 1, stats["totalKOs"])
}

func TestLiveEndpointListsSessions(t *testing.T) {
	srv, hub, _ := newTestServer(t)
	hub.Register(&nullSender{}, "Alpha", "striker", nil)
	hub.Register(&nullSender{}, "Bravo", "grappler", nil)

	body, _ := getJSON(t, srv.URL+"/api/live")
	fights := body["fights"].([]any)
	require.Len(t, fights, 1)
	fight := fights[0].(map[string]any)
	assert.Equal(t, "Alpha", fight["fighter1"])
	assert.Equal(t, "Bravo", fight["fighter2"])
	assert.EqualValues(t, 1, fight["round"])
}

func TestHistoryEndpointNewestFirst(t *testing.T) {
	srv, _, standings := newTestServer(t)
	a := &game.Agent{ID: "a", Name: "A"}
	b := &game.Agent{ID: "b", Name: "B"}
	standings.RecordResult("g1", a, b, game.MethodKO, 1)
	standings.RecordResult("g2", b, a, game.MethodDecision, 3)

	body, _ := getJSON(t, srv.URL+"/api/history")
	matches := body["matches"].([]any)
	require.Len(t, matches, 2)
	assert.Equal(t, "g2", matches[0].(map[string]any)["id"])
	assert.Equal(t, "g1", matches[1].(map[string]any)["id"])
}

func TestCORSHeaders(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/status")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	req, _ := http.NewRequest(http.MethodOptions, srv.URL+"/api/status", nil)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
