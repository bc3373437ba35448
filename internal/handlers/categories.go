package handlers

import (
	"context"
	"net/http"

	"github.com/example/media-platform/internal/cache"
	"github.com/example/media-platform/internal/catalog"
	"github.com/example/media-platform/internal/service"
)

// Category handlers carry the episode_limit parameter controlling how
// many episodes each category row is hydrated with.

func ListCategories(svc *service.Categories, c cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		epLimit := parseInt(r.URL.Query().Get("episode_limit"), 0, 0, 200)
		listEntities("categories", c,
			func(ctx context.Context, userID string, req service.ListRequest) (catalog.Listing[catalog.Category], error) {
				return svc.List(ctx, userID, service.CategoryListRequest{ListRequest: req, EpisodeLimit: epLimit})
			},
			func(ctx context.Context, userID string, req service.ListRequest) (catalog.Listing[catalog.Category], error) {
				return svc.ListUpstream(ctx, userID, service.CategoryListRequest{ListRequest: req, EpisodeLimit: epLimit})
			})(w, r)
	}
}

func GetCategory(svc *service.Categories) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		epLimit := parseInt(r.URL.Query().Get("episode_limit"), 0, 0, 200)
		getEntity("category", "value",
			func(ctx context.Context, userID, key, value string) (catalog.Category, error) {
				return svc.GetByKey(ctx, userID, key, value, epLimit)
			})(w, r)
	}
}

func GetCategoryAlbum(svc *service.Categories) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		epLimit := parseInt(r.URL.Query().Get("episode_limit"), 0, 0, 200)
		getUpstreamEntity("category",
			func(ctx context.Context, userID, albumID string) (catalog.Category, error) {
				return svc.GetUpstream(ctx, userID, albumID, epLimit)
			})(w, r)
	}
}

func BatchCategories(svc *service.Categories) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		epLimit := parseInt(r.URL.Query().Get("episode_limit"), 0, 0, 200)
		batchEntities("categories",
			func(ctx context.Context, userID string, ids []string) (catalog.Listing[catalog.Category], error) {
				return svc.GetByIDs(ctx, userID, ids, epLimit)
			})(w, r)
	}
}
