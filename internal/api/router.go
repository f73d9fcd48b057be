// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package api exposes the recommendation engine and interaction history
// over HTTP.
package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/pdiddy/paper-recommender/internal/metrics"
	"github.com/pdiddy/paper-recommender/pkg/types"
)

// Recommender produces ranked recommendations. It never fails.
type Recommender interface {
	Recommend(ctx context.Context, userID int64, limit int) []types.Recommendation
}

// InteractionStore records and reads user-paper interactions.
type InteractionStore interface {
	Like(ctx context.Context, userID int64, paperID types.PaperID) (bool, error)
	Unlike(ctx context.Context, userID int64, paperID types.PaperID) (bool, error)
	View(ctx context.Context, userID int64, paperID types.PaperID) (bool, error)
	History(ctx context.Context, userID int64) (types.History, error)
	Ping(ctx context.Context) error
}

// Handler serves the HTTP API.
type Handler struct {
	recommender Recommender
	store       InteractionStore
	logger      zerolog.Logger
}

// NewHandler creates a handler.
func NewHandler(rec Recommender, store InteractionStore, logger zerolog.Logger) *Handler {
	return &Handler{
		recommender: rec,
		store:       store,
		logger:      logger.With().Str("component", "api").Logger(),
	}
}

// Routes builds the chi router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(h.accessLog)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/users/{userID}", func(r chi.Router) {
		r.Get("/recommendations", h.Recommendations)
		r.Get("/history", h.History)
		r.Post("/papers/{paperID}/like", h.Like)
		r.Delete("/papers/{paperID}/like", h.Unlike)
		r.Post("/papers/{paperID}/view", h.View)
	})

	return r
}

// accessLog logs each request and counts it by route pattern and status.
func (h *Handler) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		metrics.APIRequests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()

		h.logger.Debug().
			Str("request_id", chimiddleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("route", route).
			Int("status", status).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}
