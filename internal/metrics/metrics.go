// Package metrics exposes Prometheus counters and gauges for the arena.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ufc_arena"

// Custom registry keeps the default Go collectors out of the scrape.
var registry = prometheus.NewRegistry()

var (
	fightsTotal = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fights_total",
		Help:      "Completed fights.",
	})
	knockoutsTotal = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "knockouts_total",
		Help:      "Fights ended by knockout.",
	})
	actionsTotal = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "actions_total",
		Help:      "Resolved fighter actions by outcome.",
	}, []string{"action", "outcome"})
	waitingAgents = promauto.With(registry).NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "waiting_agents",
		Help:      "Agents queued for an opponent.",
	})
	activeFights = promauto.With(registry).NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_fights",
		Help:      "Live sessions, including finished ones in retention.",
	})
	connections = promauto.With(registry).NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "connections",
		Help:      "Open agent connections.",
	})
)

func RecordFight(knockout bool) {
	fightsTotal.Inc()
	if knockout {
		knockoutsTotal.Inc()
	}
}

func RecordAction(action string, hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	actionsTotal.WithLabelValues(action, outcome).Inc()
}

func SetWaiting(n int)  { waitingAgents.Set(float64(n)) }
func SetActive(n int)   { activeFights.Set(float64(n)) }
func ConnectionOpened() { connections.Inc() }
func ConnectionClosed() { connections.Dec() }

// Handler serves the registry for GET /metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
