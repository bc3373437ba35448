package service

import (
	"context"

	"github.com/example/media-platform/internal/catalog"
	"github.com/example/media-platform/internal/searchindex"
	"github.com/example/media-platform/internal/sirqul"
)

// Series serves the series family.
type Series struct {
	deps
}

func NewSeries(d Deps) *Series {
	return &Series{deps: d.internal()}
}

func (s *Series) List(ctx context.Context, userID string, req ListRequest) (catalog.Listing[catalog.Series], error) {
	return listIndex(ctx, s.deps, "series", userID, req, searchindex.Query{}, s.pop.Series)
}

func (s *Series) GetByKey(ctx context.Context, userID, key, value string) (catalog.Series, error) {
	return getByKey(ctx, userID, "series", key, value, s.store.SeriesBySlug, s.store.SeriesByIDs, s.pop.Series)
}

func (s *Series) GetByIDs(ctx context.Context, userID string, ids []string) (catalog.Listing[catalog.Series], error) {
	return getByIDs(ctx, userID, ids, s.store.SeriesByIDs, s.pop.Series)
}

func (s *Series) ListUpstream(ctx context.Context, userID string, req ListRequest) (catalog.Listing[catalog.Series], error) {
	return listUpstream(ctx, s.deps, catalog.EntityTypeSeries.String(), userID, req, func(rec sirqul.AlbumRecord) catalog.Series {
		return sirqul.SeriesFromRecord(rec, sirqul.SubtypeAlbum)
	}, s.pop.Series)
}

func (s *Series) GetUpstream(ctx context.Context, userID, albumID string) (catalog.Series, error) {
	return getUpstream(ctx, s.deps, "series", userID, albumID, func(rec sirqul.AlbumRecord) catalog.Series {
		return sirqul.SeriesFromRecord(rec, sirqul.SubtypeAlbum)
	}, s.pop.Series)
}
