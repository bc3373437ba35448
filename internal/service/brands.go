package service

import (
	"context"

	"github.com/example/media-platform/internal/catalog"
	"github.com/example/media-platform/internal/searchindex"
	"github.com/example/media-platform/internal/sirqul"
)

// Brands serves the brand family from the legacy stores and the album
// platform.
type Brands struct {
	deps
}

func NewBrands(d Deps) *Brands {
	return &Brands{deps: d.internal()}
}

func (s *Brands) List(ctx context.Context, userID string, req ListRequest) (catalog.Listing[catalog.Brand], error) {
	return listIndex(ctx, s.deps, "brands", userID, req, searchindex.Query{}, s.pop.Brands)
}

func (s *Brands) GetByKey(ctx context.Context, userID, key, value string) (catalog.Brand, error) {
	return getByKey(ctx, userID, "brand", key, value, s.store.BrandBySlug, s.store.BrandsByIDs, s.pop.Brands)
}

func (s *Brands) GetByIDs(ctx context.Context, userID string, ids []string) (catalog.Listing[catalog.Brand], error) {
	return getByIDs(ctx, userID, ids, s.store.BrandsByIDs, s.pop.Brands)
}

func (s *Brands) ListUpstream(ctx context.Context, userID string, req ListRequest) (catalog.Listing[catalog.Brand], error) {
	return listUpstream(ctx, s.deps, catalog.EntityTypeBrand.String(), userID, req, func(rec sirqul.AlbumRecord) catalog.Brand {
		return sirqul.BrandFromRecord(rec, sirqul.SubtypeAlbum)
	}, s.pop.Brands)
}

func (s *Brands) GetUpstream(ctx context.Context, userID, albumID string) (catalog.Brand, error) {
	return getUpstream(ctx, s.deps, "brand", userID, albumID, func(rec sirqul.AlbumRecord) catalog.Brand {
		return sirqul.BrandFromRecord(rec, sirqul.SubtypeAlbum)
	}, s.pop.Brands)
}
