package service

import (
	"context"

	"github.com/example/media-platform/internal/catalog"
	"github.com/example/media-platform/internal/ordering"
	"github.com/example/media-platform/internal/searchindex"
	"github.com/example/media-platform/internal/sirqul"
)

// Charities serves the charity family. Listings honor the generic
// [-|+]name|date sort spec after population.
type Charities struct {
	deps
}

func NewCharities(d Deps) *Charities {
	return &Charities{deps: d.internal()}
}

func (s *Charities) List(ctx context.Context, userID string, req ListRequest) (catalog.Listing[catalog.Charity], error) {
	out, err := listIndex(ctx, s.deps, "charities", userID, req, searchindex.Query{}, s.pop.Charities)
	if err != nil {
		return out, err
	}
	ordering.SortCharities(req.Sort, out.Items)
	return out, nil
}

func (s *Charities) GetByKey(ctx context.Context, userID, key, value string) (catalog.Charity, error) {
	return getByKey(ctx, userID, "charity", key, value, s.store.CharityBySlug, s.store.CharitiesByIDs, s.pop.Charities)
}

func (s *Charities) GetByIDs(ctx context.Context, userID string, ids []string) (catalog.Listing[catalog.Charity], error) {
	return getByIDs(ctx, userID, ids, s.store.CharitiesByIDs, s.pop.Charities)
}

func (s *Charities) ListUpstream(ctx context.Context, userID string, req ListRequest) (catalog.Listing[catalog.Charity], error) {
	out, err := listUpstream(ctx, s.deps, catalog.EntityTypeCharity.String(), userID, req, func(rec sirqul.AlbumRecord) catalog.Charity {
		return sirqul.CharityFromRecord(rec, sirqul.SubtypeAlbum)
	}, s.pop.Charities)
	if err != nil {
		return out, err
	}
	ordering.SortCharities(req.Sort, out.Items)
	return out, nil
}

func (s *Charities) GetUpstream(ctx context.Context, userID, albumID string) (catalog.Charity, error) {
	return getUpstream(ctx, s.deps, "charity", userID, albumID, func(rec sirqul.AlbumRecord) catalog.Charity {
		return sirqul.CharityFromRecord(rec, sirqul.SubtypeAlbum)
	}, s.pop.Charities)
}
