package service

import (
	"context"

	"github.com/example/media-platform/internal/catalog"
	"github.com/example/media-platform/internal/searchindex"
	"github.com/example/media-platform/internal/sirqul"
)

// Episodes serves the episode family. Legacy listings support an exact
// category filter on top of the shared listing shape.
type Episodes struct {
	deps
}

func NewEpisodes(d Deps) *Episodes {
	return &Episodes{deps: d.internal()}
}

// EpisodeListRequest extends the shared listing shape with an optional
// category filter.
type EpisodeListRequest struct {
	ListRequest
	CategoryID string
}

func (s *Episodes) List(ctx context.Context, userID string, req EpisodeListRequest) (catalog.Listing[catalog.Episode], error) {
	q := searchindex.Query{}
	if req.CategoryID != "" {
		q.Filters = map[string]string{"order_category_ids": req.CategoryID}
	}
	return listIndex(ctx, s.deps, "episodes", userID, req.ListRequest, q, s.pop.Episodes)
}

func (s *Episodes) GetByKey(ctx context.Context, userID, key, value string) (catalog.Episode, error) {
	return getByKey(ctx, userID, "episode", key, value, s.store.EpisodeBySlug, s.store.EpisodesByIDs, s.pop.Episodes)
}

func (s *Episodes) GetByIDs(ctx context.Context, userID string, ids []string) (catalog.Listing[catalog.Episode], error) {
	return getByIDs(ctx, userID, ids, s.store.EpisodesByIDs, s.pop.Episodes)
}

func (s *Episodes) ListUpstream(ctx context.Context, userID string, req ListRequest) (catalog.Listing[catalog.Episode], error) {
	return listUpstream(ctx, s.deps, catalog.EntityTypeEpisode.String(), userID, req, func(rec sirqul.AlbumRecord) catalog.Episode {
		return sirqul.EpisodeFromRecord(rec, sirqul.SubtypeAlbum)
	}, s.pop.Episodes)
}

func (s *Episodes) GetUpstream(ctx context.Context, userID, albumID string) (catalog.Episode, error) {
	return getUpstream(ctx, s.deps, "episode", userID, albumID, func(rec sirqul.AlbumRecord) catalog.Episode {
		return sirqul.EpisodeFromRecord(rec, sirqul.SubtypeAlbum)
	}, s.pop.Episodes)
}
