// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics declares the Prometheus collectors exported by the
// recommendation service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RecommendRequests counts ranking passes by outcome:
	// "personalized", "fallback" or "empty".
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation passes by outcome",
		},
		[]string{"outcome"},
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Duration of a full recommendation pass in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	RecommendCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_candidates",
			Help:    "Distinct candidates merged per recommendation pass",
			Buckets: []float64{0, 1, 5, 10, 20, 40, 60, 80},
		},
	)

	SignalDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_signal_duration_seconds",
			Help:    "Duration of a single signal query in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	// SignalFailures counts signal queries that failed and were treated as empty.
	SignalFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_signal_failures_total",
			Help: "Total number of failed signal queries by source",
		},
		[]string{"source"},
	)

	APIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"route", "method", "status"},
	)
)
