// Package api serves the read-only reporting surface: health, queue and
// session counts, standings and live fights. No writes are exposed here;
// all mutation happens over the fight protocol.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/openclaw/ufc-arena/internal/game"
	"github.com/openclaw/ufc-arena/internal/metrics"
)

const (
	statusTopN      = 10
	leaderboardTopN = 20
)

// Server holds the handlers' read-side dependencies.
type Server struct {
	hub       *game.Hub
	standings *game.Standings
	version   string
	started   time.Time
	log       *slog.Logger
}

func NewServer(hub *game.Hub, standings *game.Standings, version string, log *slog.Logger) *Server {
	return &Server{
		hub:       hub,
		standings: standings,
		version:   version,
		started:   time.Now(),
		log:       log,
	}
}

// Router registers all reporting routes plus the websocket endpoint handed
// in by the caller.
func (s *Server) Router(wsHandler http.Handler) *mux.Router {
	r := mux.NewRouter()
	r.Use(corsMiddleware)
	r.Handle("/ws", wsHandler)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/api/status", s.handleStatus).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/api/leaderboard", s.handleLeaderboard).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/api/live", s.handleLive).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/api/history", s.handleHistory).Methods(http.MethodGet, http.MethodOptions)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	return r
}

// corsMiddleware applies the arena's permissive cross-origin policy so
// scoreboard pages anywhere can poll the API.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	waiting, active := s.hub.Counts()
	s.writeJSON(w, map[string]any{
		"status":   "healthy",
		"version":  s.version,
		"waiting":  waiting,
		"fighting": active,
		"uptime":   time.Since(s.started).Seconds(),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	waiting, active := s.hub.Counts()
	totals := s.standings.Totals()
	s.writeJSON(w, map[string]any{
		"waiting":     waiting,
		"fighting":    active,
		"totalFights": totals.TotalFights,
		"totalKOs":    totals.TotalKOs,
		"leaderboard": s.standings.Top(statusTopN, game.OrderByWins),
	})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]any{
		"leaderboard": s.standings.Top(leaderboardTopN, game.OrderByScore),
		"stats":       s.standings.Totals(),
	})
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]any{
		"fights": s.hub.Live(),
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	hist := s.standings.History()
	// Most recent first, capped like the leaderboard.
	if len(hist) > leaderboardTopN {
		hist = hist[len(hist)-leaderboardTopN:]
	}
	for i, j := 0, len(hist)-1; i < j; i, j = i+1, j-1 {
		hist[i], hist[j] = hist[j], hist[i]
	}
	s.writeJSON(w, map[string]any{
		"matches": hist,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("write response failed", slog.Any("error", err))
	}
}
