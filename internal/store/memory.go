package store

import (
	"context"
	"sync"

	"github.com/example/media-platform/internal/catalog"
)

// MemoryStore is an in-memory EntityStore for tests and local development.
// Populate the exported slices before use; lookups copy values out.
type MemoryStore struct {
	mu sync.RWMutex

	Brands     []catalog.Brand
	Charities  []catalog.Charity
	Stars      []catalog.Star
	Categories []catalog.Category
	AllSeries  []catalog.Series
	Episodes   []catalog.Episode
	Offers     []catalog.Offer

	// CategoryEpisodes maps category id to that category's episode ids,
	// standing in for the episode_categories join table.
	CategoryEpisodes map[string][]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{CategoryEpisodes: make(map[string][]string)}
}

func (s *MemoryStore) BrandsByIDs(_ context.Context, ids []string) ([]catalog.Brand, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return byIDs(s.Brands, ids, func(b catalog.Brand) string { return b.ID }), nil
}

func (s *MemoryStore) BrandBySlug(_ context.Context, slug string) (catalog.Brand, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return bySlug(s.Brands, slug, "brand", func(b catalog.Brand) string { return b.Slug })
}

func (s *MemoryStore) CharitiesByIDs(_ context.Context, ids []string) ([]catalog.Charity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return byIDs(s.Charities, ids, func(c catalog.Charity) string { return c.ID }), nil
}

func (s *MemoryStore) CharityBySlug(_ context.Context, slug string) (catalog.Charity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return bySlug(s.Charities, slug, "charity", func(c catalog.Charity) string { return c.Slug })
}

func (s *MemoryStore) StarsByIDs(_ context.Context, ids []string) ([]catalog.Star, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return byIDs(s.Stars, ids, func(st catalog.Star) string { return st.ID }), nil
}

func (s *MemoryStore) StarBySlug(_ context.Context, slug string) (catalog.Star, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return bySlug(s.Stars, slug, "star", func(st catalog.Star) string { return st.Slug })
}

func (s *MemoryStore) CategoriesByIDs(_ context.Context, ids []string) ([]catalog.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return byIDs(s.Categories, ids, func(c catalog.Category) string { return c.ID }), nil
}

func (s *MemoryStore) CategoryBySlug(_ context.Context, slug string) (catalog.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return bySlug(s.Categories, slug, "category", func(c catalog.Category) string { return c.Slug })
}

func (s *MemoryStore) SeriesByIDs(_ context.Context, ids []string) ([]catalog.Series, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return byIDs(s.AllSeries, ids, func(se catalog.Series) string { return se.ID }), nil
}

func (s *MemoryStore) SeriesBySlug(_ context.Context, slug string) (catalog.Series, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return bySlug(s.AllSeries, slug, "series", func(se catalog.Series) string { return se.Slug })
}

func (s *MemoryStore) EpisodesByIDs(_ context.Context, ids []string) ([]catalog.Episode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return byIDs(s.Episodes, ids, func(e catalog.Episode) string { return e.ID }), nil
}

func (s *MemoryStore) EpisodeBySlug(_ context.Context, slug string) (catalog.Episode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return bySlug(s.Episodes, slug, "episode", func(e catalog.Episode) string { return e.Slug })
}

func (s *MemoryStore) OffersByIDs(_ context.Context, ids []string) ([]catalog.Offer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return byIDs(s.Offers, ids, func(o catalog.Offer) string { return o.ID }), nil
}

func (s *MemoryStore) OfferBySlug(_ context.Context, slug string) (catalog.Offer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return bySlug(s.Offers, slug, "offer", func(o catalog.Offer) string { return o.Slug })
}

func (s *MemoryStore) EpisodesByCategoryID(_ context.Context, categoryID string, limit int) ([]catalog.Episode, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.CategoryEpisodes[categoryID]
	eps := byIDs(s.Episodes, ids, func(e catalog.Episode) string { return e.ID })
	total := len(eps)
	if limit > 0 && len(eps) > limit {
		eps = eps[:limit]
	}
	return eps, total, nil
}

func byIDs[T any](items []T, ids []string, id func(T) string) []T {
	if len(ids) == 0 {
		return nil
	}
	want := make(map[string]bool, len(ids))
	for _, v := range ids {
		want[v] = true
	}
	var out []T
	for _, it := range items {
		if want[id(it)] {
			out = append(out, it)
		}
	}
	return out
}

func bySlug[T any](items []T, slug, kind string, get func(T) string) (T, error) {
	for _, it := range items {
		if get(it) == slug {
			return it, nil
		}
	}
	var zero T
	return zero, &catalog.NotFoundError{Kind: kind, Key: "slug", Value: slug}
}
