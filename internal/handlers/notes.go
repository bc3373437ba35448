package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/example/media-platform/internal/catalog"
	"github.com/example/media-platform/internal/notes"
	"github.com/example/media-platform/internal/platform/api"
	"github.com/example/media-platform/internal/platform/auth"
	"github.com/example/media-platform/internal/platform/httpserver"
)

type noteReq struct {
	EntityID   string `json:"entityId"`
	EntityType string `json:"entityType"`
	Body       string `json:"body"`
}

// AddNote handles POST /v1/notes.
func AddNote(store notes.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())
		userID, _ := auth.UserIDFromContext(r.Context())

		var req noteReq
		if !decodeJSON(w, r, rid, &req) {
			return
		}
		t, err := catalog.ParseEntityType(req.EntityType)
		if err != nil {
			api.BadRequest(w, "INVALID_TYPE", err.Error(), rid, nil)
			return
		}
		if strings.TrimSpace(req.EntityID) == "" || strings.TrimSpace(req.Body) == "" {
			api.BadRequest(w, "INVALID_REQUEST", "entityId and body are required", rid, nil)
			return
		}

		note, err := store.Add(r.Context(), notes.Note{
			UserID:     userID,
			EntityID:   strings.TrimSpace(req.EntityID),
			EntityType: t,
			Body:       req.Body,
		})
		if err != nil {
			writeDomainError(w, rid, err)
			return
		}
		api.WriteJSON(w, http.StatusCreated, note)
	}
}

// ListNotes handles GET /v1/notes.
func ListNotes(store notes.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())
		userID, _ := auth.UserIDFromContext(r.Context())

		limit := parseInt(r.URL.Query().Get("limit"), 25, 1, 100)
		offset := parseInt(r.URL.Query().Get("offset"), 0, 0, 10000)

		items, total, err := store.ListByUser(r.Context(), userID, offset, limit)
		if err != nil {
			writeDomainError(w, rid, err)
			return
		}
		if items == nil {
			items = []notes.Note{}
		}
		api.WriteJSON(w, http.StatusOK, map[string]any{
			"notes": items, "total": total, "limit": limit, "offset": offset,
		})
	}
}

// RemoveNote handles DELETE /v1/notes/{note_id}.
func RemoveNote(store notes.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())
		userID, _ := auth.UserIDFromContext(r.Context())

		noteID := strings.TrimSpace(chi.URLParam(r, "note_id"))
		if noteID == "" {
			api.BadRequest(w, "MISSING_ID", "note id is required", rid, nil)
			return
		}
		if err := store.Remove(r.Context(), userID, noteID); err != nil {
			writeDomainError(w, rid, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
