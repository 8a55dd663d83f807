package main

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	eventsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "npflpulse",
		Subsystem: "events",
		Name:      "generated_total",
		Help:      "Number of synthetic match events generated, by type and mode",
	}, []string{"type", "mode"})

	providerRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "npflpulse",
		Subsystem: "provider",
		Name:      "requests_total",
		Help:      "API-Football requests, by endpoint and outcome",
	}, []string{"endpoint", "outcome"})

	feedLength = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "npflpulse",
		Subsystem: "feed",
		Name:      "length",
		Help:      "Current live feed length",
	})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "npflpulse",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})
)

// metricsMiddleware times every request against its mux route template.
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		route := "unmatched"
		if current := mux.CurrentRoute(r); current != nil {
			if tmpl, err := current.GetPathTemplate(); err == nil {
				route = tmpl
			}
		}
		requestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}
