package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los collectors del portal sobre un registry propio
// (no el global) para que cada router/test tenga el suyo.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	chatQueries  *prometheus.CounterVec
	llmCalls     *prometheus.CounterVec
	auditEvents  *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status_code"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		chatQueries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chatbot_queries_total",
				Help: "Chatbot queries by caller role and classified intent",
			},
			[]string{"role", "intent"},
		),
		llmCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "llm_fallback_calls_total",
				Help: "Language-model fallback calls by outcome",
			},
			[]string{"outcome"},
		),
		auditEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "audit_events_total",
				Help: "Audit events published by type and result",
			},
			[]string{"event_type", "success"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.chatQueries,
		m.llmCalls,
		m.auditEvents,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware registra conteo y latencia por ruta de chi (el patrón, no el path
// concreto, para no explotar la cardinalidad con IDs).
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) QueryClassified(role, intent string) {
	m.chatQueries.WithLabelValues(role, intent).Inc()
}

func (m *Metrics) FallbackCompleted(outcome string) {
	m.llmCalls.WithLabelValues(outcome).Inc()
}

func (m *Metrics) AuditPublished(eventType string, ok bool) {
	m.auditEvents.WithLabelValues(eventType, strconv.FormatBool(ok)).Inc()
}
