package service

import (
	"context"

	"github.com/example/media-platform/internal/catalog"
	"github.com/example/media-platform/internal/ordering"
	"github.com/example/media-platform/internal/searchindex"
	"github.com/example/media-platform/internal/sirqul"
)

// Stars serves the star family. Star population flattens the nested
// series graph so shared children are annotated once, and listings honor
// the generic sort spec.
type Stars struct {
	deps
}

func NewStars(d Deps) *Stars {
	return &Stars{deps: d.internal()}
}

func (s *Stars) List(ctx context.Context, userID string, req ListRequest) (catalog.Listing[catalog.Star], error) {
	out, err := listIndex(ctx, s.deps, "stars", userID, req, searchindex.Query{}, s.pop.Stars)
	if err != nil {
		return out, err
	}
	ordering.SortStars(req.Sort, out.Items)
	return out, nil
}

func (s *Stars) GetByKey(ctx context.Context, userID, key, value string) (catalog.Star, error) {
	return getByKey(ctx, userID, "star", key, value, s.store.StarBySlug, s.store.StarsByIDs, s.pop.Stars)
}

func (s *Stars) GetByIDs(ctx context.Context, userID string, ids []string) (catalog.Listing[catalog.Star], error) {
	return getByIDs(ctx, userID, ids, s.store.StarsByIDs, s.pop.Stars)
}

func (s *Stars) ListUpstream(ctx context.Context, userID string, req ListRequest) (catalog.Listing[catalog.Star], error) {
	out, err := listUpstream(ctx, s.deps, catalog.EntityTypeStar.String(), userID, req, func(rec sirqul.AlbumRecord) catalog.Star {
		return sirqul.StarFromRecord(rec, sirqul.SubtypeAlbum)
	}, s.pop.Stars)
	if err != nil {
		return out, err
	}
	ordering.SortStars(req.Sort, out.Items)
	return out, nil
}

func (s *Stars) GetUpstream(ctx context.Context, userID, albumID string) (catalog.Star, error) {
	return getUpstream(ctx, s.deps, "star", userID, albumID, func(rec sirqul.AlbumRecord) catalog.Star {
		return sirqul.StarFromRecord(rec, sirqul.SubtypeAlbum)
	}, s.pop.Stars)
}
