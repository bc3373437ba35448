package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/example/media-platform/internal/catalog"
	"github.com/example/media-platform/internal/favorites"
	"github.com/example/media-platform/internal/populate"
	"github.com/example/media-platform/internal/searchindex"
	"github.com/example/media-platform/internal/sirqul"
	"github.com/example/media-platform/internal/store"
)

type stubSearcher struct {
	lastIndex string
	lastQuery searchindex.Query
	resp      searchindex.Response
	err       error
}

func (s *stubSearcher) Search(_ context.Context, index string, q searchindex.Query) (searchindex.Response, error) {
	s.lastIndex = index
	s.lastQuery = q
	return s.resp, s.err
}

type stubAlbums struct {
	searchResp sirqul.SearchResponse
	searchErr  error
	album      sirqul.AlbumRecord
	albumErr   error
}

func (s *stubAlbums) SearchAlbums(_ context.Context, _ sirqul.SearchRequest) (sirqul.SearchResponse, error) {
	return s.searchResp, s.searchErr
}

func (s *stubAlbums) GetAlbum(_ context.Context, _ sirqul.GetAlbumRequest) (sirqul.AlbumRecord, error) {
	return s.album, s.albumErr
}

func hits(t *testing.T, vs ...any) []json.RawMessage {
	t.Helper()
	out := make([]json.RawMessage, 0, len(vs))
	for _, v := range vs {
		b, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal hit: %v", err)
		}
		out = append(out, b)
	}
	return out
}

func testDeps(search searchindex.Searcher, entities store.EntityStore, up sirqul.AlbumAPI, fav *favorites.MemoryStore) Deps {
	if fav == nil {
		fav = favorites.NewMemoryStore()
	}
	return Deps{
		Search:   search,
		Store:    entities,
		Upstream: up,
		Populate: populate.New(fav, entities, nil),
	}
}

func brand(id, slug, title string) catalog.Brand {
	b := catalog.Brand{}
	b.ID, b.Slug, b.Title = id, slug, title
	return b
}

func TestBrandsList_AnnotatesFromSearchHits(t *testing.T) {
	fav := favorites.NewMemoryStore()
	_ = fav.Upsert(context.Background(), "u1", "2", catalog.EntityTypeBrand, favorites.KindFavorite, true)

	search := &stubSearcher{resp: searchindex.Response{
		Total: 7,
		Hits:  hits(t, brand("1", "one", "One"), brand("2", "two", "Two")),
	}}
	svc := NewBrands(testDeps(search, store.NewMemoryStore(), nil, fav))

	out, err := svc.List(context.Background(), "u1", ListRequest{Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if search.lastIndex != "brands" {
		t.Fatalf("expected brands index, got %q", search.lastIndex)
	}
	if out.Total != 7 || len(out.Items) != 2 {
		t.Fatalf("expected total 7 with 2 items, got %d/%d", out.Total, len(out.Items))
	}
	if out.Items[0].IsFavorite || !out.Items[1].IsFavorite {
		t.Fatal("favorite annotation mismatch")
	}
}

func TestBrandsList_SearchFailureIsUpstreamError(t *testing.T) {
	search := &stubSearcher{err: errors.New("search down")}
	svc := NewBrands(testDeps(search, store.NewMemoryStore(), nil, nil))

	_, err := svc.List(context.Background(), "", ListRequest{})
	var upstream *catalog.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestBrandsGetByKey(t *testing.T) {
	entities := store.NewMemoryStore()
	entities.Brands = []catalog.Brand{brand("1", "acme", "Acme")}
	svc := NewBrands(testDeps(&stubSearcher{}, entities, nil, nil))

	got, err := svc.GetByKey(context.Background(), "", KeySlug, "acme")
	if err != nil {
		t.Fatalf("by slug: %v", err)
	}
	if got.ID != "1" {
		t.Fatalf("expected brand 1, got %s", got.ID)
	}

	got, err = svc.GetByKey(context.Background(), "", KeyID, "1")
	if err != nil {
		t.Fatalf("by id: %v", err)
	}
	if got.Slug != "acme" {
		t.Fatalf("expected slug acme, got %s", got.Slug)
	}

	if _, err := svc.GetByKey(context.Background(), "", KeySlug, "nope"); !catalog.IsNotFound(err) {
		t.Fatalf("unknown slug must be not-found, got %v", err)
	}
	if _, err := svc.GetByKey(context.Background(), "", KeyID, "999"); !catalog.IsNotFound(err) {
		t.Fatalf("unknown id must be not-found, got %v", err)
	}
	if _, err := svc.GetByKey(context.Background(), "", "name", "x"); !catalog.IsInvalidRequest(err) {
		t.Fatalf("unsupported key must be invalid-request, got %v", err)
	}
	if _, err := svc.GetByKey(context.Background(), "", KeySlug, ""); !catalog.IsInvalidRequest(err) {
		t.Fatalf("empty value must be invalid-request, got %v", err)
	}
}

func TestBrandsGetByIDs_DedupesAndShortCircuits(t *testing.T) {
	entities := store.NewMemoryStore()
	entities.Brands = []catalog.Brand{brand("1", "one", "One"), brand("2", "two", "Two")}
	svc := NewBrands(testDeps(&stubSearcher{}, entities, nil, nil))

	out, err := svc.GetByIDs(context.Background(), "", []string{"2", "1", "2", ""})
	if err != nil {
		t.Fatalf("by ids: %v", err)
	}
	if out.Total != 2 || len(out.Items) != 2 {
		t.Fatalf("duplicates and empties must collapse, got %d items", len(out.Items))
	}

	out, err = svc.GetByIDs(context.Background(), "", nil)
	if err != nil {
		t.Fatalf("empty ids: %v", err)
	}
	if out.Total != 0 || out.Items == nil || len(out.Items) != 0 {
		t.Fatalf("empty id list must yield an empty listing, got %+v", out)
	}
}

func TestBrandsListUpstream_MapsRecords(t *testing.T) {
	up := &stubAlbums{searchResp: sirqul.SearchResponse{
		Valid:      true,
		CountTotal: 40,
		Items: []sirqul.AlbumRecord{
			{AlbumID: "10", Title: "Upstream Brand", SubType: "upstream-brand"},
		},
	}}
	svc := NewBrands(testDeps(&stubSearcher{}, store.NewMemoryStore(), up, nil))

	out, err := svc.ListUpstream(context.Background(), "", ListRequest{Limit: 10})
	if err != nil {
		t.Fatalf("list upstream: %v", err)
	}
	if out.Total != 40 || len(out.Items) != 1 {
		t.Fatalf("expected total 40 with 1 item, got %d/%d", out.Total, len(out.Items))
	}
	if out.Items[0].ID != "10" || out.Items[0].Slug != "upstream-brand" {
		t.Fatalf("record mapping mismatch: %+v", out.Items[0])
	}
}

func TestBrandsGetUpstream_NotFound(t *testing.T) {
	up := &stubAlbums{albumErr: &catalog.NotFoundError{Kind: "album", Key: "albumId", Value: "77"}}
	svc := NewBrands(testDeps(&stubSearcher{}, store.NewMemoryStore(), up, nil))

	_, err := svc.GetUpstream(context.Background(), "", "77")
	var notFound *catalog.NotFoundError
	if !errors.As(err, &notFound) || notFound.Kind != "brand" {
		t.Fatalf("expected brand not-found, got %v", err)
	}
}

func TestCategoriesList_HydratesEpisodes(t *testing.T) {
	entities := store.NewMemoryStore()
	cat := catalog.Category{}
	cat.ID, cat.Slug, cat.Title = "c1", "picks", "Picks"
	entities.Categories = []catalog.Category{cat}

	e1 := catalog.Episode{}
	e1.ID = "e1"
	e1.OrderCategory = []string{"c1-1"}
	entities.Episodes = []catalog.Episode{e1}
	entities.CategoryEpisodes["c1"] = []string{"e1"}

	search := &stubSearcher{resp: searchindex.Response{Total: 1, Hits: hits(t, cat)}}

	fav := favorites.NewMemoryStore()
	_ = fav.Upsert(context.Background(), "u1", "e1", catalog.EntityTypeEpisode, favorites.KindFavorite, true)
	svc := NewCategories(testDeps(search, entities, nil, fav))

	out, err := svc.List(context.Background(), "u1", CategoryListRequest{ListRequest: ListRequest{Limit: 5}})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out.Items) != 1 {
		t.Fatalf("expected 1 category, got %d", len(out.Items))
	}
	list := out.Items[0].Episodes
	if list == nil || len(list.Episodes) != 1 {
		t.Fatalf("category must arrive hydrated, got %+v", list)
	}
	if !list.Episodes[0].IsFavorite {
		t.Fatal("hydrated episode must carry favorite state")
	}
}

func TestUserFavorites_AddListRemove(t *testing.T) {
	entities := store.NewMemoryStore()
	entities.Brands = []catalog.Brand{brand("1", "one", "One"), brand("2", "two", "Two")}

	favStore := favorites.NewMemoryStore()
	pop := populate.New(favStore, entities, nil)
	svc := NewUserFavorites(favStore, entities, pop, nil, nil)
	ctx := context.Background()

	if err := svc.Add(ctx, "u1", "1", catalog.EntityTypeBrand, favorites.KindFavorite); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.Add(ctx, "u1", "2", catalog.EntityTypeBrand, favorites.KindFavorite); err != nil {
		t.Fatalf("add: %v", err)
	}
	// A repeated add must be a silent no-op.
	if err := svc.Add(ctx, "u1", "1", catalog.EntityTypeBrand, favorites.KindFavorite); err != nil {
		t.Fatalf("repeated add: %v", err)
	}

	page, err := svc.List(ctx, "u1", catalog.EntityTypeBrand, favorites.KindFavorite, 0, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	items, ok := page.Items.([]catalog.Brand)
	if !ok {
		t.Fatalf("expected []catalog.Brand, got %T", page.Items)
	}
	if page.Total != 2 || len(items) != 2 {
		t.Fatalf("expected 2 favorites, got total=%d items=%d", page.Total, len(items))
	}
	for _, b := range items {
		if !b.IsFavorite {
			t.Fatalf("listed favorite %s must be annotated", b.ID)
		}
	}

	if err := svc.Remove(ctx, "u1", "1", catalog.EntityTypeBrand, favorites.KindFavorite); err != nil {
		t.Fatalf("remove: %v", err)
	}
	page, _ = svc.List(ctx, "u1", catalog.EntityTypeBrand, favorites.KindFavorite, 0, 10)
	if page.Total != 1 {
		t.Fatalf("expected 1 favorite after removal, got %d", page.Total)
	}

	if err := svc.Add(ctx, "", "1", catalog.EntityTypeBrand, favorites.KindFavorite); !catalog.IsInvalidRequest(err) {
		t.Fatalf("anonymous add must be invalid-request, got %v", err)
	}
}
