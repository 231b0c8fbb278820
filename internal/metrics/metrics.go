// Package metrics provides the centralized Prometheus registry for the service.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	GamesIngestedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "mlb_trends",
		Name:      "games_ingested_total",
		Help:      "Total number of games upserted into the store",
	})
	BoxscoresIngestedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "mlb_trends",
		Name:      "boxscores_ingested_total",
		Help:      "Total number of box scores ingested",
	})
	BoxscoresSkippedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "mlb_trends",
		Name:      "boxscores_skipped_total",
		Help:      "Total number of box scores skipped due to fetch errors",
	})
	ModelEvaluationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "mlb_trends",
		Name:      "model_evaluations_total",
		Help:      "Total number of win-probability model evaluations",
	})
	InsufficientDataTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "mlb_trends",
		Name:      "model_insufficient_data_total",
		Help:      "Evaluations rejected because the date range held fewer than the minimum rows",
	})
)

// Gauge metrics
var (
	StoredGames = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "mlb_trends",
		Name:      "stored_completed_games",
		Help:      "Number of completed games in the store at last read",
	})
)

// Histogram metrics
var (
	EvaluationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "mlb_trends",
		Name:      "model_evaluation_duration_seconds",
		Help:      "Wall-clock duration of a full flatten/roll/join/fit/score pass",
		Buckets:   prometheus.DefBuckets,
	})
)

// Registry returns the global metrics registry, initializing it on first use
func Registry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			GamesIngestedTotal,
			BoxscoresIngestedTotal,
			BoxscoresSkippedTotal,
			ModelEvaluationsTotal,
			InsufficientDataTotal,
			StoredGames,
			EvaluationDuration,
		)
	})
	return registry
}

// Handler returns an HTTP handler serving the registry
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry(), promhttp.HandlerOpts{})
}
