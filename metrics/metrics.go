// Package metrics exposes Prometheus counters for the order service and a
// standalone metrics server listening on its own address.
package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// LoginAttempts counts credential submissions by outcome
	// ("success", "rejected", "error").
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "refhub_login_attempts_total",
		Help: "Total number of login attempts by outcome.",
	}, []string{"outcome"})

	// OrdersSubmitted counts drafts handed to the order archive.
	OrdersSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "refhub_orders_submitted_total",
		Help: "Total number of orders submitted to the archive.",
	})

	// StatusUpdates counts admin status-change intents by target status.
	StatusUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "refhub_status_updates_total",
		Help: "Total number of admin order status updates.",
	}, []string{"status"})

	// ReportRequests counts admin report-generation intents.
	ReportRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "refhub_report_requests_total",
		Help: "Total number of report generation requests.",
	})
)

// MetricsServer serves the Prometheus scrape endpoint.
type MetricsServer struct {
	srv *http.Server
}

// New creates a metrics server for the given service listening on addr.
func New(service string, addr string) (*MetricsServer, error) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &MetricsServer{
		srv: &http.Server{
			Addr:    addr,
			Handler: mux,
		},
	}, nil
}

func (m *MetricsServer) ListenAndServe() error {
	return m.srv.ListenAndServe()
}

func (m *MetricsServer) Shutdown(ctx context.Context) error {
	return m.srv.Shutdown(ctx)
}
