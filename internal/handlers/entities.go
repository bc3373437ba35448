package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/example/media-platform/internal/cache"
	"github.com/example/media-platform/internal/catalog"
	"github.com/example/media-platform/internal/platform/api"
	"github.com/example/media-platform/internal/platform/auth"
	"github.com/example/media-platform/internal/platform/httpserver"
	"github.com/example/media-platform/internal/service"
)

// listEntities serves GET /v1/{plural}. Anonymous responses are cached;
// authenticated ones carry per-user favorite state and never are.
func listEntities[T any](plural string, c cache.Cache,
	list func(ctx context.Context, userID string, req service.ListRequest) (catalog.Listing[T], error),
	listUpstream func(ctx context.Context, userID string, req service.ListRequest) (catalog.Listing[T], error)) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())
		userID, _ := auth.UserIDFromContext(r.Context())
		req := listRequest(r)

		key := plural + ":" + r.URL.RawQuery
		if userID == "" {
			if cached, ok := c.Get(key); ok {
				api.WriteJSON(w, http.StatusOK, cached)
				return
			}
		}

		fetch := list
		if upstreamRequested(r) {
			fetch = listUpstream
		}
		out, err := fetch(r.Context(), userID, req)
		if err != nil {
			writeDomainError(w, rid, err)
			return
		}

		resp := map[string]any{plural: out.Items, "total": out.Total, "limit": req.Limit, "offset": req.Offset}
		if userID == "" {
			c.Set(key, resp)
		}
		api.WriteJSON(w, http.StatusOK, resp)
	}
}

// getEntity serves GET /v1/{plural}/{param}. The lookup key defaults to
// slug; ?by=id switches to the canonical id.
func getEntity[T any](kind, param string,
	get func(ctx context.Context, userID, key, value string) (T, error)) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())
		userID, _ := auth.UserIDFromContext(r.Context())

		value := strings.TrimSpace(chi.URLParam(r, param))
		if value == "" {
			api.BadRequest(w, "MISSING_KEY", kind+" slug or id is required", rid, nil)
			return
		}
		by := strings.TrimSpace(r.URL.Query().Get("by"))
		if by == "" {
			by = service.KeySlug
		}

		out, err := get(r.Context(), userID, by, value)
		if err != nil {
			writeDomainError(w, rid, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, out)
	}
}

// getUpstreamEntity serves GET /v1/{plural}/album/{album_id}.
func getUpstreamEntity[T any](kind string,
	get func(ctx context.Context, userID, albumID string) (T, error)) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())
		userID, _ := auth.UserIDFromContext(r.Context())

		albumID := strings.TrimSpace(chi.URLParam(r, "album_id"))
		if albumID == "" {
			api.BadRequest(w, "MISSING_ID", kind+" album id is required", rid, nil)
			return
		}

		out, err := get(r.Context(), userID, albumID)
		if err != nil {
			writeDomainError(w, rid, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, out)
	}
}

type batchReq struct {
	IDs []string `json:"ids"`
}

// batchEntities serves POST /v1/{plural}/batch.
func batchEntities[T any](plural string,
	byIDs func(ctx context.Context, userID string, ids []string) (catalog.Listing[T], error)) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())
		userID, _ := auth.UserIDFromContext(r.Context())

		var req batchReq
		if !decodeJSON(w, r, rid, &req) {
			return
		}

		out, err := byIDs(r.Context(), userID, req.IDs)
		if err != nil {
			writeDomainError(w, rid, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, map[string]any{plural: out.Items, "total": out.Total})
	}
}

func ListBrands(svc *service.Brands, c cache.Cache) http.HandlerFunc {
	return listEntities("brands", c, svc.List, svc.ListUpstream)
}

func GetBrand(svc *service.Brands) http.HandlerFunc {
	return getEntity("brand", "value", svc.GetByKey)
}

func GetBrandAlbum(svc *service.Brands) http.HandlerFunc {
	return getUpstreamEntity("brand", svc.GetUpstream)
}

func BatchBrands(svc *service.Brands) http.HandlerFunc {
	return batchEntities("brands", svc.GetByIDs)
}

func ListCharities(svc *service.Charities, c cache.Cache) http.HandlerFunc {
	return listEntities("charities", c, svc.List, svc.ListUpstream)
}

func GetCharity(svc *service.Charities) http.HandlerFunc {
	return getEntity("charity", "value", svc.GetByKey)
}

func GetCharityAlbum(svc *service.Charities) http.HandlerFunc {
	return getUpstreamEntity("charity", svc.GetUpstream)
}

func BatchCharities(svc *service.Charities) http.HandlerFunc {
	return batchEntities("charities", svc.GetByIDs)
}

func ListStars(svc *service.Stars, c cache.Cache) http.HandlerFunc {
	return listEntities("stars", c, svc.List, svc.ListUpstream)
}

func GetStar(svc *service.Stars) http.HandlerFunc {
	return getEntity("star", "value", svc.GetByKey)
}

func GetStarAlbum(svc *service.Stars) http.HandlerFunc {
	return getUpstreamEntity("star", svc.GetUpstream)
}

func BatchStars(svc *service.Stars) http.HandlerFunc {
	return batchEntities("stars", svc.GetByIDs)
}

func ListSeries(svc *service.Series, c cache.Cache) http.HandlerFunc {
	return listEntities("series", c, svc.List, svc.ListUpstream)
}

func GetSeries(svc *service.Series) http.HandlerFunc {
	return getEntity("series", "value", svc.GetByKey)
}

func GetSeriesAlbum(svc *service.Series) http.HandlerFunc {
	return getUpstreamEntity("series", svc.GetUpstream)
}

func BatchSeries(svc *service.Series) http.HandlerFunc {
	return batchEntities("series", svc.GetByIDs)
}

func ListOffers(svc *service.Offers, c cache.Cache) http.HandlerFunc {
	return listEntities("offers", c, svc.List, svc.ListUpstream)
}

func GetOffer(svc *service.Offers) http.HandlerFunc {
	return getEntity("offer", "value", svc.GetByKey)
}

func GetOfferAlbum(svc *service.Offers) http.HandlerFunc {
	return getUpstreamEntity("offer", svc.GetUpstream)
}

func BatchOffers(svc *service.Offers) http.HandlerFunc {
	return batchEntities("offers", svc.GetByIDs)
}

// ListEpisodes adds the category filter on top of the shared listing
// shape.
func ListEpisodes(svc *service.Episodes, c cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID := strings.TrimSpace(r.URL.Query().Get("category"))
		listEntities("episodes", c,
			func(ctx context.Context, userID string, req service.ListRequest) (catalog.Listing[catalog.Episode], error) {
				return svc.List(ctx, userID, service.EpisodeListRequest{ListRequest: req, CategoryID: categoryID})
			},
			svc.ListUpstream)(w, r)
	}
}

func GetEpisode(svc *service.Episodes) http.HandlerFunc {
	return getEntity("episode", "episode_id", svc.GetByKey)
}

func GetEpisodeAlbum(svc *service.Episodes) http.HandlerFunc {
	return getUpstreamEntity("episode", svc.GetUpstream)
}

func BatchEpisodes(svc *service.Episodes) http.HandlerFunc {
	return batchEntities("episodes", svc.GetByIDs)
}
