package service

import (
	"context"

	"github.com/example/media-platform/internal/catalog"
	"github.com/example/media-platform/internal/populate"
	"github.com/example/media-platform/internal/searchindex"
	"github.com/example/media-platform/internal/sirqul"
)

// Categories serves the category rows the home surfaces render. Category
// population hydrates missing episode lists from the relational store and
// applies the per-category episode order before annotation.
type Categories struct {
	deps
}

func NewCategories(d Deps) *Categories {
	return &Categories{deps: d.internal()}
}

// CategoryListRequest extends the shared listing shape with the number
// of episodes hydrated into each category row.
type CategoryListRequest struct {
	ListRequest
	EpisodeLimit int
}

func (r CategoryListRequest) episodeLimit() int {
	if r.EpisodeLimit <= 0 {
		return populate.DefaultCategoryEpisodeLimit
	}
	return r.EpisodeLimit
}

func (s *Categories) List(ctx context.Context, userID string, req CategoryListRequest) (catalog.Listing[catalog.Category], error) {
	return listIndex(ctx, s.deps, "categories", userID, req.ListRequest, searchindex.Query{}, func(ctx context.Context, userID string, cats []catalog.Category) error {
		return s.pop.Categories(ctx, userID, cats, req.episodeLimit())
	})
}

func (s *Categories) GetByKey(ctx context.Context, userID, key, value string, episodeLimit int) (catalog.Category, error) {
	req := CategoryListRequest{EpisodeLimit: episodeLimit}
	return getByKey(ctx, userID, "category", key, value, s.store.CategoryBySlug, s.store.CategoriesByIDs, func(ctx context.Context, userID string, cats []catalog.Category) error {
		return s.pop.Categories(ctx, userID, cats, req.episodeLimit())
	})
}

func (s *Categories) GetByIDs(ctx context.Context, userID string, ids []string, episodeLimit int) (catalog.Listing[catalog.Category], error) {
	req := CategoryListRequest{EpisodeLimit: episodeLimit}
	return getByIDs(ctx, userID, ids, s.store.CategoriesByIDs, func(ctx context.Context, userID string, cats []catalog.Category) error {
		return s.pop.Categories(ctx, userID, cats, req.episodeLimit())
	})
}

func (s *Categories) ListUpstream(ctx context.Context, userID string, req CategoryListRequest) (catalog.Listing[catalog.Category], error) {
	return listUpstream(ctx, s.deps, catalog.EntityTypeCategory.String(), userID, req.ListRequest, func(rec sirqul.AlbumRecord) catalog.Category {
		return sirqul.CategoryFromRecord(rec, sirqul.SubtypeAlbum)
	}, func(ctx context.Context, userID string, cats []catalog.Category) error {
		return s.pop.Categories(ctx, userID, cats, req.episodeLimit())
	})
}

func (s *Categories) GetUpstream(ctx context.Context, userID, albumID string, episodeLimit int) (catalog.Category, error) {
	req := CategoryListRequest{EpisodeLimit: episodeLimit}
	return getUpstream(ctx, s.deps, "category", userID, albumID, func(rec sirqul.AlbumRecord) catalog.Category {
		return sirqul.CategoryFromRecord(rec, sirqul.SubtypeAlbum)
	}, func(ctx context.Context, userID string, cats []catalog.Category) error {
		return s.pop.Categories(ctx, userID, cats, req.episodeLimit())
	})
}
