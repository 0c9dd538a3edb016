// Package metrics exposes Prometheus collectors for the client's traffic to
// the failures API.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/marmota/failboard/internal/logging"
)

// StatusTransportError labels requests that never got an HTTP response.
const StatusTransportError = "error"

// Recorder is what the HTTP client reports to.
type Recorder interface {
	ObserveRequest(method string, status int, duration time.Duration)
	SessionTeardown()
}

// Metrics holds the client collectors.
type Metrics struct {
	requestsTotal    *prometheus.CounterVec
	requestSeconds   *prometheus.HistogramVec
	sessionTeardowns prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "failboard",
				Name:      "api_requests_total",
				Help:      "Requests sent to the failures API, partitioned by method and status class.",
			},
			[]string{"method", "status"},
		),
		requestSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "failboard",
				Name:      "api_request_seconds",
				Help:      "Latency of requests to the failures API in seconds.",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"method"},
		),
		sessionTeardowns: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "failboard",
				Name:      "session_teardowns_total",
				Help:      "Sessions cleared because the API answered 401.",
			},
		),
	}
}

// Register attaches the collectors to reg. Collectors that are already
// registered are skipped.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		m.requestsTotal,
		m.requestSeconds,
		m.sessionTeardowns,
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}

func (m *Metrics) ObserveRequest(method string, status int, duration time.Duration) {
	m.requestsTotal.WithLabelValues(method, StatusClass(status)).Inc()
	if duration < 0 {
		duration = 0
	}
	m.requestSeconds.WithLabelValues(method).Observe(duration.Seconds())
}

func (m *Metrics) SessionTeardown() {
	m.sessionTeardowns.Inc()
}

// StatusClass buckets an HTTP status as "2xx", "4xx", ...; zero or invalid
// statuses are transport errors.
func StatusClass(status int) string {
	if status < 100 || status > 599 {
		return StatusTransportError
	}
	return strconv.Itoa(status/100) + "xx"
}

// Nop discards everything.
type Nop struct{}

func (Nop) ObserveRequest(string, int, time.Duration) {}
func (Nop) SessionTeardown()                          {}

// Serve exposes reg on addr under /metrics until ctx is done.
func Serve(ctx context.Context, addr string, reg prometheus.Gatherer, log logging.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info(ctx, "metrics endpoint listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
