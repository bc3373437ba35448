package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/example/media-platform/internal/platform/api"
	"github.com/example/media-platform/internal/platform/auth"
	"github.com/example/media-platform/internal/platform/httpserver"
	"github.com/example/media-platform/internal/points"
	"github.com/example/media-platform/internal/service"
)

type pointsReq struct {
	Action string `json:"action"` // view | save | share
}

// PointsEmitter is the optional activity feed points grants publish to.
type PointsEmitter interface {
	PointsGranted(userID string, points int, reason, entityID string)
}

// GrantOfferPoints handles POST /v1/offers/{offer_id}/points. The grant
// size comes from the offer's own point values.
func GrantOfferPoints(ledger points.Store, offers *service.Offers, emit PointsEmitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())
		userID, _ := auth.UserIDFromContext(r.Context())

		offerID := strings.TrimSpace(chi.URLParam(r, "offer_id"))
		if offerID == "" {
			api.BadRequest(w, "MISSING_ID", "offer id is required", rid, nil)
			return
		}

		var req pointsReq
		if !decodeJSON(w, r, rid, &req) {
			return
		}

		offer, err := offers.GetByKey(r.Context(), userID, service.KeyID, offerID)
		if err != nil {
			writeDomainError(w, rid, err)
			return
		}

		var pts int
		var reason string
		switch strings.ToLower(strings.TrimSpace(req.Action)) {
		case "view":
			pts, reason = offer.ViewPoints, points.ReasonOfferView
		case "save":
			pts, reason = offer.SavePoints, points.ReasonOfferSave
		case "share":
			pts, reason = offer.SharePoints, points.ReasonOfferShare
		default:
			api.BadRequest(w, "INVALID_ACTION", "action must be view, save or share", rid, nil)
			return
		}

		if pts > 0 {
			if err := ledger.Grant(r.Context(), userID, pts, reason, offerID); err != nil {
				writeDomainError(w, rid, err)
				return
			}
			if emit != nil {
				emit.PointsGranted(userID, pts, reason, offerID)
			}
		}
		api.WriteJSON(w, http.StatusOK, map[string]any{"offer_id": offerID, "granted": pts, "reason": reason})
	}
}

// GetMyPoints handles GET /v1/points/me.
func GetMyPoints(ledger points.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())
		userID, _ := auth.UserIDFromContext(r.Context())

		total, err := ledger.TotalForUser(r.Context(), userID)
		if err != nil {
			writeDomainError(w, rid, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, map[string]any{"user_id": userID, "total": total})
	}
}

// GetLeaderboard handles GET /v1/points/leaderboard.
func GetLeaderboard(ledger points.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())
		limit := parseInt(r.URL.Query().Get("limit"), 10, 1, 100)

		rows, err := ledger.Leaderboard(r.Context(), limit)
		if err != nil {
			writeDomainError(w, rid, err)
			return
		}
		if rows == nil {
			rows = []points.LeaderboardRow{}
		}
		api.WriteJSON(w, http.StatusOK, map[string]any{"leaderboard": rows})
	}
}
