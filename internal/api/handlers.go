// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/pdiddy/paper-recommender/pkg/types"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RecommendationsResponse wraps a ranked list.
type RecommendationsResponse struct {
	UserID          int64                  `json:"user_id"`
	Recommendations []types.Recommendation `json:"recommendations"`
}

// InteractionResponse reports the outcome of a like, unlike or view.
type InteractionResponse struct {
	PaperID types.PaperID `json:"paper_id"`
	Liked   bool          `json:"is_liked"`
	Changed bool          `json:"changed"`
}

// Health reports whether the graph store is reachable.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		h.logger.Warn().Err(err).Msg("health check failed")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Recommendations serves GET /api/users/{userID}/recommendations?limit=N.
// A missing limit selects the engine default.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid limit %q: must be a positive integer", raw))
			return
		}
		limit = n
	}

	recs := h.recommender.Recommend(r.Context(), userID, limit)
	writeJSON(w, http.StatusOK, RecommendationsResponse{UserID: userID, Recommendations: recs})
}

// History serves GET /api/users/{userID}/history.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	hist, err := h.store.History(r.Context(), userID)
	if err != nil {
		h.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hist)
}

// Like serves POST /api/users/{userID}/papers/{paperID}/like.
func (h *Handler) Like(w http.ResponseWriter, r *http.Request) {
	userID, paperID, ok := h.interactionParams(w, r)
	if !ok {
		return
	}
	changed, err := h.store.Like(r.Context(), userID, paperID)
	if err != nil {
		h.internalError(w, err)
		return
	}
	status := http.StatusOK
	if changed {
		status = http.StatusCreated
	}
	writeJSON(w, status, InteractionResponse{PaperID: paperID, Liked: true, Changed: changed})
}

// Unlike serves DELETE /api/users/{userID}/papers/{paperID}/like.
func (h *Handler) Unlike(w http.ResponseWriter, r *http.Request) {
	userID, paperID, ok := h.interactionParams(w, r)
	if !ok {
		return
	}
	changed, err := h.store.Unlike(r.Context(), userID, paperID)
	if err != nil {
		h.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, InteractionResponse{PaperID: paperID, Liked: false, Changed: changed})
}

// View serves POST /api/users/{userID}/papers/{paperID}/view.
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	userID, paperID, ok := h.interactionParams(w, r)
	if !ok {
		return
	}
	changed, err := h.store.View(r.Context(), userID, paperID)
	if err != nil {
		h.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, InteractionResponse{PaperID: paperID, Changed: changed})
}

// --- helpers ---

func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "userID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid user id %q", raw))
		return 0, false
	}
	return id, true
}

// interactionParams parses the user and paper IDs. Paper IDs may be
// percent-encoded so DOIs containing slashes fit in one path segment.
func (h *Handler) interactionParams(w http.ResponseWriter, r *http.Request) (int64, types.PaperID, bool) {
	userID, ok := h.userID(w, r)
	if !ok {
		return 0, "", false
	}
	raw := chi.URLParam(r, "paperID")
	paperID, err := url.PathUnescape(raw)
	if err != nil || strings.TrimSpace(paperID) == "" {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid paper id %q", raw))
		return 0, "", false
	}
	return userID, types.PaperID(paperID), true
}

func (h *Handler) internalError(w http.ResponseWriter, err error) {
	h.logger.Error().Err(err).Msg("request failed")
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // response write errors are not recoverable
	json.NewEncoder(w).Encode(v)
}
