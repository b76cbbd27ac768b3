package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/openclaw/ufc-arena/internal/api"
	"github.com/openclaw/ufc-arena/internal/config"
	"github.com/openclaw/ufc-arena/internal/game"
	"github.com/openclaw/ufc-arena/internal/logging"
	"github.com/openclaw/ufc-arena/internal/ws"
)

// Build metadata injected via -ldflags at build time
var (
	buildVersion = "dev"
	buildTime    = ""
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", slog.Any("error", err))
		os.Exit(1)
	}

	log := logging.New(cfg.LogLevel)

	rules := game.Rules{
		Rounds:           cfg.Rounds,
		RoundSeconds:     cfg.RoundSeconds,
		EntranceDelay:    time.Duration(cfg.EntranceSeconds) * time.Second,
		BreakDelay:       time.Duration(cfg.BreakSeconds) * time.Second,
		Retention:        time.Duration(cfg.RetentionSeconds) * time.Second,
		TickInterval:     time.Second,
		StaminaRegen:     cfg.StaminaRegen,
		MinActionStamina: cfg.MinActionStamina,
	}

	standings := game.NewStandings()
	hub := game.NewHub(rules, game.NewResolver(), standings, log)
	server := api.NewServer(hub, standings, buildVersion, log)
	router := server.Router(ws.NewHandler(hub, log))

	log.Info("ufc arena server listening",
		slog.String("addr", cfg.Addr),
		slog.String("version", buildVersion),
		slog.String("built", buildTime))
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
}
