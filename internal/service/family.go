package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/example/media-platform/internal/catalog"
	"github.com/example/media-platform/internal/populate"
	"github.com/example/media-platform/internal/searchindex"
	"github.com/example/media-platform/internal/sirqul"
	"github.com/example/media-platform/internal/store"
)

// Deps are the collaborators every family service is built from. The
// services hold no state of their own beyond these.
type Deps struct {
	Search   searchindex.Searcher
	Store    store.EntityStore
	Upstream sirqul.AlbumAPI
	Populate *populate.Service
	Log      *zap.Logger
}

type deps struct {
	search searchindex.Searcher
	store  store.EntityStore
	up     sirqul.AlbumAPI
	pop    *populate.Service
	log    *zap.Logger
}

func (d Deps) internal() deps {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	return deps{search: d.Search, store: d.Store, up: d.Upstream, pop: d.Populate, log: log}
}

// ListRequest is the shared listing shape: free-text term, pagination
// and an optional [-|+]name|date sort spec.
type ListRequest struct {
	Term   string
	Sort   string
	Offset int
	Limit  int
}

// listIndex runs a legacy listing against the search index and pipes the
// decoded page through population.
func listIndex[T any](ctx context.Context, d deps, index, userID string, req ListRequest, q searchindex.Query, annotate func(context.Context, string, []T) error) (catalog.Listing[T], error) {
	q.Term = req.Term
	q.Offset = req.Offset
	q.Limit = req.Limit

	resp, err := d.search.Search(ctx, index, q)
	if err != nil {
		return catalog.Listing[T]{}, &catalog.UpstreamError{Op: "search " + index, Err: err}
	}
	items := decodeHits[T](resp.Hits)
	if err := annotate(ctx, userID, items); err != nil {
		return catalog.Listing[T]{}, err
	}
	return catalog.Listing[T]{Total: resp.Total, Items: items}, nil
}

// getByKey resolves a single entity by slug or canonical id from the
// relational store, then populates it.
func getByKey[T any](ctx context.Context, userID, kind, key, value string,
	bySlug func(context.Context, string) (T, error),
	byIDs func(context.Context, []string) ([]T, error),
	annotate func(context.Context, string, []T) error) (T, error) {

	var zero T
	if value == "" {
		return zero, &catalog.InvalidRequestError{Message: kind + " " + key + " is required"}
	}

	var item T
	switch key {
	case KeySlug:
		found, err := bySlug(ctx, value)
		if err != nil {
			return zero, err
		}
		item = found
	case KeyID:
		found, err := byIDs(ctx, []string{value})
		if err != nil {
			return zero, err
		}
		if len(found) == 0 {
			return zero, &catalog.NotFoundError{Kind: kind, Key: KeyID, Value: value}
		}
		item = found[0]
	default:
		return zero, badKey(key)
	}

	page := []T{item}
	if err := annotate(ctx, userID, page); err != nil {
		return zero, err
	}
	return page[0], nil
}

// getByIDs fetches a batch by canonical ids, deduplicating the request
// and short-circuiting when nothing remains.
func getByIDs[T any](ctx context.Context, userID string, ids []string,
	byIDs func(context.Context, []string) ([]T, error),
	annotate func(context.Context, string, []T) error) (catalog.Listing[T], error) {

	ids = dedupeIDs(ids)
	if len(ids) == 0 {
		return catalog.Listing[T]{Items: []T{}}, nil
	}
	items, err := byIDs(ctx, ids)
	if err != nil {
		return catalog.Listing[T]{}, err
	}
	if err := annotate(ctx, userID, items); err != nil {
		return catalog.Listing[T]{}, err
	}
	return catalog.Listing[T]{Total: len(items), Items: items}, nil
}

// listUpstream runs the listing against the album platform instead of
// the legacy stores. Population still runs so favorite state comes from
// the same store regardless of provenance.
func listUpstream[T any](ctx context.Context, d deps, albumType, userID string, req ListRequest,
	fromRecord func(sirqul.AlbumRecord) T,
	annotate func(context.Context, string, []T) error) (catalog.Listing[T], error) {

	resp, err := d.up.SearchAlbums(ctx, sirqul.SearchRequest{
		AlbumType: albumType,
		Keyword:   req.Term,
		AccountID: userID,
		Start:     req.Offset,
		Limit:     req.Limit,
	})
	if err != nil {
		return catalog.Listing[T]{}, &catalog.UpstreamError{Op: "album search " + albumType, Err: err}
	}

	items := make([]T, 0, len(resp.Items))
	for _, rec := range resp.Items {
		items = append(items, fromRecord(rec))
	}
	if err := annotate(ctx, userID, items); err != nil {
		return catalog.Listing[T]{}, err
	}
	return catalog.Listing[T]{Total: resp.CountTotal, Items: items}, nil
}

// getUpstream resolves one entity by its upstream album id.
func getUpstream[T any](ctx context.Context, d deps, kind, userID, albumID string,
	fromRecord func(sirqul.AlbumRecord) T,
	annotate func(context.Context, string, []T) error) (T, error) {

	var zero T
	if albumID == "" {
		return zero, &catalog.InvalidRequestError{Message: kind + " album id is required"}
	}
	rec, err := d.up.GetAlbum(ctx, sirqul.GetAlbumRequest{AlbumID: albumID, AccountID: userID})
	if err != nil {
		if catalog.IsNotFound(err) {
			return zero, &catalog.NotFoundError{Kind: kind, Key: "albumId", Value: albumID}
		}
		return zero, &catalog.UpstreamError{Op: "album get " + kind, Err: err}
	}

	page := []T{fromRecord(rec)}
	if err := annotate(ctx, userID, page); err != nil {
		return zero, err
	}
	return page[0], nil
}
