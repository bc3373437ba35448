package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/example/media-platform/internal/platform/api"
	"github.com/example/media-platform/internal/platform/auth"
	"github.com/example/media-platform/internal/platform/httpserver"
	"github.com/example/media-platform/internal/ratings"
)

type rateReq struct {
	Score int `json:"score"`
}

// RateEpisode handles PUT /v1/episodes/{episode_id}/rating.
func RateEpisode(store ratings.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())
		userID, _ := auth.UserIDFromContext(r.Context())

		episodeID := strings.TrimSpace(chi.URLParam(r, "episode_id"))
		if episodeID == "" {
			api.BadRequest(w, "MISSING_ID", "episode id is required", rid, nil)
			return
		}

		var req rateReq
		if !decodeJSON(w, r, rid, &req) {
			return
		}
		if req.Score < ratings.MinScore || req.Score > ratings.MaxScore {
			msg := fmt.Sprintf("score must be between %d and %d", ratings.MinScore, ratings.MaxScore)
			api.BadRequest(w, "INVALID_SCORE", msg, rid, nil)
			return
		}

		if err := store.Upsert(r.Context(), episodeID, userID, req.Score); err != nil {
			writeDomainError(w, rid, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, map[string]any{"episode_id": episodeID, "score": req.Score})
	}
}

// GetEpisodeRating handles GET /v1/episodes/{episode_id}/rating. The
// caller's own score rides along when authenticated.
func GetEpisodeRating(store ratings.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())
		userID, _ := auth.UserIDFromContext(r.Context())

		episodeID := strings.TrimSpace(chi.URLParam(r, "episode_id"))
		if episodeID == "" {
			api.BadRequest(w, "MISSING_ID", "episode id is required", rid, nil)
			return
		}

		summary, err := store.GetSummary(r.Context(), episodeID)
		if err != nil {
			writeDomainError(w, rid, err)
			return
		}

		out := map[string]any{
			"episode_id": episodeID,
			"average":    summary.AverageScore,
			"count":      summary.TotalRatings,
		}
		if userID != "" {
			score, ok, err := store.GetUserRating(r.Context(), episodeID, userID)
			if err != nil {
				writeDomainError(w, rid, err)
				return
			}
			if ok {
				out["user_score"] = score
			}
		}
		api.WriteJSON(w, http.StatusOK, out)
	}
}
