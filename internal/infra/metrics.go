package infra

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Core business counters.
var (
	BetsPlacedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "courtside_bets_placed_total",
		Help: "Number of bets accepted.",
	})

	SettlementsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "courtside_settlements_total",
		Help: "Number of games settled.",
	})

	PointsAwardedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "courtside_points_awarded_total",
		Help: "Total loyalty points credited for winning bets.",
	})
)

// HealthFunc reports dependency health for the metrics server's healthz.
type HealthFunc func(ctx context.Context) error

// StartMetricsServer runs a lightweight HTTP server exposing /metrics and
// /healthz on its own port. Runs in a goroutine; the caller owns shutdown.
func StartMetricsServer(addr string, healthFn HealthFunc) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()

		if err := healthFn(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("unhealthy: " + err.Error()))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		_ = srv.ListenAndServe()
	}()
	return srv
}
