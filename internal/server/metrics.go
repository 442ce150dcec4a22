package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type metrics struct {
	registry        *prometheus.Registry
	logins          *prometheus.CounterVec
	logouts         *prometheus.CounterVec
	telemetryErrors *prometheus.CounterVec
	requests        *prometheus.HistogramVec
}

// newMetrics uses a private registry so several servers can coexist in
// one process (tests).
func newMetrics(sessions Sessions) *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hostdash_login_attempts_total",
			Help: "Login attempts by outcome.",
		}, []string{"outcome"}),
		logouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hostdash_logouts_total",
			Help: "Logout requests by outcome.",
		}, []string{"outcome"}),
		telemetryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hostdash_telemetry_errors_total",
			Help: "Failed host telemetry queries by endpoint.",
		}, []string{"source"}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hostdash_http_request_duration_seconds",
			Help:    "HTTP request latency by route, method and status.",
			Buckets: []float64{.005, .01, .05, .1, .5, 1, 1.5, 2, 5},
		}, []string{"route", "method", "status"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.logins,
		m.logouts,
		m.telemetryErrors,
		m.requests,
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "hostdash_current_sessions",
			Help: "Users currently logged in.",
		}, func() float64 { return float64(sessions.CountCurrent()) }),
	)
	return m
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *metrics) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
	})
}
