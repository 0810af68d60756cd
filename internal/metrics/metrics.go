package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GenerationsTotal counts lesson plan submissions by outcome
	// (success, incomplete, http_status, shape_mismatch, transport, canceled).
	// Cache hits count as success.
	GenerationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "planea_generations_total",
		Help: "Total lesson plan generations by outcome.",
	}, []string{"outcome"})

	// CacheHitsTotal counts submissions answered from the result cache.
	CacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "planea_cache_hits_total",
		Help: "Lesson plans served from the result cache.",
	})

	// ExportFailuresTotal counts .docx files that could not be written.
	ExportFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "planea_export_failures_total",
		Help: "Documents that failed to export.",
	})

	// CompletionDuration tracks completion endpoint latency per model.
	CompletionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "planea_completion_duration_seconds",
		Help:    "Time spent waiting on the completion endpoint.",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
	}, []string{"model"})

	// RequestsTotal counts HTTP requests by method, route, and status code.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "planea_http_requests_total",
		Help: "Total HTTP requests processed.",
	}, []string{"method", "route", "status"})
)
