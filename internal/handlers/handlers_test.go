package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/example/media-platform/internal/cache"
	"github.com/example/media-platform/internal/catalog"
	"github.com/example/media-platform/internal/favorites"
	"github.com/example/media-platform/internal/platform/auth"
	"github.com/example/media-platform/internal/populate"
	"github.com/example/media-platform/internal/ratings"
	"github.com/example/media-platform/internal/searchindex"
	"github.com/example/media-platform/internal/service"
	"github.com/example/media-platform/internal/store"
)

type stubSearcher struct {
	calls int
	resp  searchindex.Response
	err   error
}

func (s *stubSearcher) Search(_ context.Context, _ string, _ searchindex.Query) (searchindex.Response, error) {
	s.calls++
	return s.resp, s.err
}

func chiReq(method, url string, body string, params map[string]string) *http.Request {
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("")
	} else {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, url, rd)
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func asUser(req *http.Request, userID string) *http.Request {
	return req.WithContext(auth.WithUserID(req.Context(), userID))
}

func brandHit(t *testing.T, id, slug, title string) json.RawMessage {
	t.Helper()
	b := catalog.Brand{}
	b.ID, b.Slug, b.Title = id, slug, title
	raw, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return raw
}

func newBrandsService(search searchindex.Searcher, entities store.EntityStore) *service.Brands {
	if entities == nil {
		entities = store.NewMemoryStore()
	}
	return service.NewBrands(service.Deps{
		Search:   search,
		Store:    entities,
		Populate: populate.New(favorites.NewMemoryStore(), entities, nil),
	})
}

func TestListBrands_OK(t *testing.T) {
	search := &stubSearcher{resp: searchindex.Response{
		Total: 1,
		Hits:  []json.RawMessage{brandHit(t, "1", "acme", "Acme")},
	}}
	h := ListBrands(newBrandsService(search, nil), cache.NewTTLCache(0, nil, ""))

	rec := httptest.NewRecorder()
	h(rec, chiReq(http.MethodGet, "/v1/brands?limit=10", "", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Brands []catalog.Brand `json:"brands"`
		Total  int             `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Total != 1 || len(body.Brands) != 1 || body.Brands[0].Slug != "acme" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestListBrands_AnonymousResponsesAreCached(t *testing.T) {
	search := &stubSearcher{resp: searchindex.Response{Total: 0}}
	h := ListBrands(newBrandsService(search, nil), cache.NewTTLCache(0, nil, ""))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		h(rec, chiReq(http.MethodGet, "/v1/brands?limit=10", "", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	}
	if search.calls != 1 {
		t.Fatalf("anonymous repeat must come from cache, searcher saw %d calls", search.calls)
	}

	// Authenticated requests bypass the shared cache.
	rec := httptest.NewRecorder()
	h(rec, asUser(chiReq(http.MethodGet, "/v1/brands?limit=10", "", nil), "u1"))
	if search.calls != 2 {
		t.Fatalf("authenticated request must not reuse cached body, searcher saw %d calls", search.calls)
	}
}

func TestGetBrand_NotFound(t *testing.T) {
	h := GetBrand(newBrandsService(&stubSearcher{}, nil))

	rec := httptest.NewRecorder()
	h(rec, chiReq(http.MethodGet, "/v1/brands/ghost", "", map[string]string{"value": "ghost"}))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body.Error.Code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND code, got %q", body.Error.Code)
	}
}

func TestGetBrand_ByID(t *testing.T) {
	entities := store.NewMemoryStore()
	b := catalog.Brand{}
	b.ID, b.Slug, b.Title = "9", "nine", "Nine"
	entities.Brands = []catalog.Brand{b}
	h := GetBrand(newBrandsService(&stubSearcher{}, entities))

	rec := httptest.NewRecorder()
	h(rec, chiReq(http.MethodGet, "/v1/brands/9?by=id", "", map[string]string{"value": "9"}))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var got catalog.Brand
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Slug != "nine" {
		t.Fatalf("expected brand nine, got %+v", got)
	}
}

func TestBatchBrands_InvalidJSON(t *testing.T) {
	h := BatchBrands(newBrandsService(&stubSearcher{}, nil))

	rec := httptest.NewRecorder()
	h(rec, chiReq(http.MethodPost, "/v1/brands/batch", "{", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestBatchBrands_EmptyIDs(t *testing.T) {
	h := BatchBrands(newBrandsService(&stubSearcher{}, nil))

	rec := httptest.NewRecorder()
	h(rec, chiReq(http.MethodPost, "/v1/brands/batch", `{"ids": []}`, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Brands []catalog.Brand `json:"brands"`
		Total  int             `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Total != 0 || body.Brands == nil {
		t.Fatalf("empty batch must yield an empty array, got %s", rec.Body.String())
	}
}

func favoritesService() *service.UserFavorites {
	entities := store.NewMemoryStore()
	favStore := favorites.NewMemoryStore()
	pop := populate.New(favStore, entities, nil)
	return service.NewUserFavorites(favStore, entities, pop, nil, nil)
}

func TestFavoriteToggleRoundTrip(t *testing.T) {
	svc := favoritesService()
	params := map[string]string{"entity_type": "brand", "entity_id": "42"}

	rec := httptest.NewRecorder()
	AddFavorite(svc)(rec, asUser(chiReq(http.MethodPut, "/v1/favorites/brand/42", "", params), "u1"))
	if rec.Code != http.StatusOK {
		t.Fatalf("add: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	RemoveFavorite(svc)(rec, asUser(chiReq(http.MethodDelete, "/v1/favorites/brand/42", "", params), "u1"))
	if rec.Code != http.StatusOK {
		t.Fatalf("remove: expected 200, got %d", rec.Code)
	}

	// Removing again still succeeds.
	rec = httptest.NewRecorder()
	RemoveFavorite(svc)(rec, asUser(chiReq(http.MethodDelete, "/v1/favorites/brand/42", "", params), "u1"))
	if rec.Code != http.StatusOK {
		t.Fatalf("repeat remove: expected 200, got %d", rec.Code)
	}
}

func TestAddFavorite_BadEntityType(t *testing.T) {
	rec := httptest.NewRecorder()
	req := asUser(chiReq(http.MethodPut, "/v1/favorites/widget/1", "", map[string]string{"entity_type": "widget", "entity_id": "1"}), "u1")
	AddFavorite(favoritesService())(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAddFavorite_BadKind(t *testing.T) {
	rec := httptest.NewRecorder()
	req := asUser(chiReq(http.MethodPut, "/v1/favorites/brand/1?kind=bookmark", "", map[string]string{"entity_type": "brand", "entity_id": "1"}), "u1")
	AddFavorite(favoritesService())(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRateEpisode_ScoreBounds(t *testing.T) {
	store := ratings.NewMemoryStore()
	params := map[string]string{"episode_id": "e1"}

	rec := httptest.NewRecorder()
	RateEpisode(store)(rec, asUser(chiReq(http.MethodPut, "/v1/episodes/e1/rating", `{"score": 11}`, params), "u1"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("out-of-range score: expected 400, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	RateEpisode(store)(rec, asUser(chiReq(http.MethodPut, "/v1/episodes/e1/rating", `{"score": 8}`, params), "u1"))
	if rec.Code != http.StatusOK {
		t.Fatalf("valid score: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	GetEpisodeRating(store)(rec, asUser(chiReq(http.MethodGet, "/v1/episodes/e1/rating", "", params), "u1"))
	if rec.Code != http.StatusOK {
		t.Fatalf("get rating: expected 200, got %d", rec.Code)
	}
	var body struct {
		Average   float64 `json:"average"`
		Count     int     `json:"count"`
		UserScore int     `json:"user_score"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Count != 1 || body.Average != 8 || body.UserScore != 8 {
		t.Fatalf("unexpected rating body: %s", rec.Body.String())
	}
}
