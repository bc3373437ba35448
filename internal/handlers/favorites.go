package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/example/media-platform/internal/catalog"
	"github.com/example/media-platform/internal/favorites"
	"github.com/example/media-platform/internal/platform/api"
	"github.com/example/media-platform/internal/platform/auth"
	"github.com/example/media-platform/internal/platform/httpserver"
	"github.com/example/media-platform/internal/service"
)

// favoriteParams resolves the type, id and kind shared by the favorite
// mutation routes.
func favoriteParams(w http.ResponseWriter, r *http.Request, rid string) (catalog.EntityType, string, favorites.Kind, bool) {
	t, err := catalog.ParseEntityType(chi.URLParam(r, "entity_type"))
	if err != nil {
		api.BadRequest(w, "INVALID_TYPE", err.Error(), rid, nil)
		return 0, "", "", false
	}
	entityID := strings.TrimSpace(chi.URLParam(r, "entity_id"))
	if entityID == "" {
		api.BadRequest(w, "MISSING_ID", "entity id is required", rid, nil)
		return 0, "", "", false
	}

	kind := favorites.KindFavorite
	if k := strings.TrimSpace(r.URL.Query().Get("kind")); k != "" {
		switch favorites.Kind(strings.ToLower(k)) {
		case favorites.KindFavorite:
		case favorites.KindLike:
			kind = favorites.KindLike
		default:
			api.BadRequest(w, "INVALID_KIND", "kind must be favorite or like", rid, nil)
			return 0, "", "", false
		}
	}
	return t, entityID, kind, true
}

// AddFavorite handles PUT /v1/favorites/{entity_type}/{entity_id}.
func AddFavorite(svc *service.UserFavorites) http.HandlerFunc {
	return toggleFavorite(svc, true)
}

// RemoveFavorite handles DELETE /v1/favorites/{entity_type}/{entity_id}.
func RemoveFavorite(svc *service.UserFavorites) http.HandlerFunc {
	return toggleFavorite(svc, false)
}

func toggleFavorite(svc *service.UserFavorites, active bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())
		userID, _ := auth.UserIDFromContext(r.Context())

		t, entityID, kind, ok := favoriteParams(w, r, rid)
		if !ok {
			return
		}

		var err error
		if active {
			err = svc.Add(r.Context(), userID, entityID, t, kind)
		} else {
			err = svc.Remove(r.Context(), userID, entityID, t, kind)
		}
		if err != nil {
			writeDomainError(w, rid, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, map[string]any{
			"entity_id":   entityID,
			"entity_type": t.String(),
			"kind":        string(kind),
			"active":      active,
		})
	}
}

// ListFavorites handles GET /v1/favorites/{entity_type}.
func ListFavorites(svc *service.UserFavorites) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())
		userID, _ := auth.UserIDFromContext(r.Context())

		t, err := catalog.ParseEntityType(chi.URLParam(r, "entity_type"))
		if err != nil {
			api.BadRequest(w, "INVALID_TYPE", err.Error(), rid, nil)
			return
		}

		kind := favorites.KindFavorite
		if strings.EqualFold(strings.TrimSpace(r.URL.Query().Get("kind")), string(favorites.KindLike)) {
			kind = favorites.KindLike
		}
		limit := parseInt(r.URL.Query().Get("limit"), 25, 1, 100)
		offset := parseInt(r.URL.Query().Get("offset"), 0, 0, 10000)

		page, err := svc.List(r.Context(), userID, t, kind, offset, limit)
		if err != nil {
			writeDomainError(w, rid, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, map[string]any{
			"entity_type": t.String(),
			"kind":        string(kind),
			"items":       page.Items,
			"total":       page.Total,
			"limit":       limit,
			"offset":      offset,
		})
	}
}
