package observability

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hotelqa", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hotelqa", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	ModelRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hotelqa", Name: "model_requests_total", Help: "Chat-model API calls."},
		[]string{"model", "status"},
	)
	ModelLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hotelqa", Name: "model_request_duration_seconds",
			Help:    "Chat-model call duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"model"},
	)
	ToolInvocations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hotelqa", Name: "tool_invocations_total", Help: "Tool executions."},
		[]string{"tool", "outcome"}, // outcome: ok|empty|error
	)
	HistoryEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hotelqa", Name: "history_events_total", Help: "Session history hits/misses/saves."},
		[]string{"store", "event"}, // event: hit|miss|save
	)
)

func Serve() {
	addr := os.Getenv("METRICS_ADDR")
	if addr == "" {
		return // disabled
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, ModelRequests, ModelLatency, ToolInvocations, HistoryEvents)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveModel(model string, status int, dur time.Duration) {
	ModelRequests.WithLabelValues(model, strconv.Itoa(status)).Inc()
	ModelLatency.WithLabelValues(model).Observe(dur.Seconds())
}

func ObserveTool(tool, outcome string) { // outcome: ok|empty|error
	ToolInvocations.WithLabelValues(tool, outcome).Inc()
}

func ObserveHistory(store, event string) { // event: hit|miss|save
	HistoryEvents.WithLabelValues(store, event).Inc()
}
