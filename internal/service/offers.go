package service

import (
	"context"

	"github.com/example/media-platform/internal/catalog"
	"github.com/example/media-platform/internal/searchindex"
	"github.com/example/media-platform/internal/sirqul"
)

// Offers serves brand offers.
type Offers struct {
	deps
}

func NewOffers(d Deps) *Offers {
	return &Offers{deps: d.internal()}
}

func (s *Offers) List(ctx context.Context, userID string, req ListRequest) (catalog.Listing[catalog.Offer], error) {
	return listIndex(ctx, s.deps, "offers", userID, req, searchindex.Query{}, s.pop.Offers)
}

func (s *Offers) GetByKey(ctx context.Context, userID, key, value string) (catalog.Offer, error) {
	return getByKey(ctx, userID, "offer", key, value, s.store.OfferBySlug, s.store.OffersByIDs, s.pop.Offers)
}

func (s *Offers) GetByIDs(ctx context.Context, userID string, ids []string) (catalog.Listing[catalog.Offer], error) {
	return getByIDs(ctx, userID, ids, s.store.OffersByIDs, s.pop.Offers)
}

func (s *Offers) ListUpstream(ctx context.Context, userID string, req ListRequest) (catalog.Listing[catalog.Offer], error) {
	return listUpstream(ctx, s.deps, "offer", userID, req, func(rec sirqul.AlbumRecord) catalog.Offer {
		return sirqul.OfferFromRecord(rec, sirqul.SubtypeAlbum)
	}, s.pop.Offers)
}

func (s *Offers) GetUpstream(ctx context.Context, userID, albumID string) (catalog.Offer, error) {
	return getUpstream(ctx, s.deps, "offer", userID, albumID, func(rec sirqul.AlbumRecord) catalog.Offer {
		return sirqul.OfferFromRecord(rec, sirqul.SubtypeAlbum)
	}, s.pop.Offers)
}
