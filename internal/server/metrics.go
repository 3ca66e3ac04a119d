// Package server provides the HTTP API of matmulbench.
package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records HTTP traffic on the default Prometheus registry and
// serves it on /metrics. The per-run matmul_runs_total and
// matmul_run_duration_seconds series are recorded by the multiply package
// and exposed here as well.
type Metrics struct {
	inFlight prometheus.Gauge
	requests prometheus.Counter
	latency  *prometheus.HistogramVec
	handler  http.Handler
}

var (
	collectorsOnce sync.Once
	collectors     *Metrics
)

// NewMetrics returns the process-wide HTTP metrics, registering them on
// first use. Every Server shares them.
func NewMetrics() *Metrics {
	collectorsOnce.Do(func() {
		collectors = &Metrics{
			inFlight: promauto.NewGauge(prometheus.GaugeOpts{
				Name: "matmul_active_requests",
				Help: "Requests currently being served.",
			}),
			requests: promauto.NewCounter(prometheus.CounterOpts{
				Name: "matmul_requests_total",
				Help: "Requests received since start.",
			}),
			latency: promauto.NewHistogramVec(prometheus.HistogramOpts{
				Name: "matmul_request_duration_seconds",
				Help: "Time to answer a request, by path.",
				// 1ms up to about 4.4 minutes.
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
			}, []string{"path"}),
			handler: promhttp.Handler(),
		}
	})
	return collectors
}

// begin counts a request to path and returns the function that ends it.
func (m *Metrics) begin(path string) (end func()) {
	start := time.Now()
	m.inFlight.Inc()
	m.requests.Inc()
	return func() {
		m.inFlight.Dec()
		m.latency.WithLabelValues(path).Observe(time.Since(start).Seconds())
	}
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.metrics.handler.ServeHTTP(w, r)
}

func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer s.metrics.begin(r.URL.Path)()
		next(w, r)
	}
}
