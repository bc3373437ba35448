package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/example/media-platform/internal/catalog"
	"github.com/example/media-platform/internal/favorites"
	"github.com/example/media-platform/internal/populate"
	"github.com/example/media-platform/internal/store"
)

// ActivityPublisher emits the fire-and-forget activity events favorite
// and like mutations produce. A nil publisher disables emission.
type ActivityPublisher interface {
	FavoriteChanged(userID, entityID string, t catalog.EntityType, kind favorites.Kind, active bool)
}

// UserFavorites orchestrates favorite/like mutations and the "my
// favorites" listings, hydrating listed ids into full entities.
type UserFavorites struct {
	rows     favorites.Store
	entities store.EntityStore
	pop      *populate.Service
	events   ActivityPublisher
	log      *zap.Logger
}

func NewUserFavorites(rows favorites.Store, entities store.EntityStore, pop *populate.Service, events ActivityPublisher, log *zap.Logger) *UserFavorites {
	if log == nil {
		log = zap.NewNop()
	}
	return &UserFavorites{rows: rows, entities: entities, pop: pop, events: events, log: log}
}

// Add marks the entity as favorited/liked. Repeating an add is a no-op,
// not an error.
func (s *UserFavorites) Add(ctx context.Context, userID, entityID string, t catalog.EntityType, kind favorites.Kind) error {
	return s.toggle(ctx, userID, entityID, t, kind, true)
}

// Remove soft-deletes the association. Removing an absent association
// still succeeds.
func (s *UserFavorites) Remove(ctx context.Context, userID, entityID string, t catalog.EntityType, kind favorites.Kind) error {
	return s.toggle(ctx, userID, entityID, t, kind, false)
}

func (s *UserFavorites) toggle(ctx context.Context, userID, entityID string, t catalog.EntityType, kind favorites.Kind, active bool) error {
	if userID == "" {
		return &catalog.InvalidRequestError{Message: "user id is required"}
	}
	if entityID == "" {
		return &catalog.InvalidRequestError{Message: "entity id is required"}
	}
	if err := s.rows.Upsert(ctx, userID, entityID, t, kind, active); err != nil {
		return err
	}
	if s.events != nil {
		s.events.FavoriteChanged(userID, entityID, t, kind, active)
	}
	return nil
}

// FavoritesPage is one page of a user's favorites for a single type,
// hydrated into the canonical entity shape for that type.
type FavoritesPage struct {
	Type  catalog.EntityType
	Total int
	Items any
}

// List returns a page of the user's favorited entities of the given
// type, newest first, hydrated from the relational store and populated.
func (s *UserFavorites) List(ctx context.Context, userID string, t catalog.EntityType, kind favorites.Kind, offset, limit int) (FavoritesPage, error) {
	if userID == "" {
		return FavoritesPage{}, &catalog.InvalidRequestError{Message: "user id is required"}
	}

	rows, err := s.rows.GetByType(ctx, userID, t, kind, offset, limit)
	if err != nil {
		return FavoritesPage{}, err
	}
	total, err := s.rows.GetTotalByType(ctx, userID, t, kind)
	if err != nil {
		return FavoritesPage{}, err
	}

	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.EntityID)
	}

	items, err := s.hydrate(ctx, userID, t, ids)
	if err != nil {
		return FavoritesPage{}, err
	}
	return FavoritesPage{Type: t, Total: total, Items: items}, nil
}

// hydrate resolves favorite row ids into full entities, keeping the
// caller's id order.
func (s *UserFavorites) hydrate(ctx context.Context, userID string, t catalog.EntityType, ids []string) (any, error) {
	switch t {
	case catalog.EntityTypeBrand:
		return hydrateIDs(ctx, userID, ids, s.entities.BrandsByIDs, s.pop.Brands, func(v catalog.Brand) string { return v.ID })
	case catalog.EntityTypeCharity:
		return hydrateIDs(ctx, userID, ids, s.entities.CharitiesByIDs, s.pop.Charities, func(v catalog.Charity) string { return v.ID })
	case catalog.EntityTypeStar:
		return hydrateIDs(ctx, userID, ids, s.entities.StarsByIDs, s.pop.Stars, func(v catalog.Star) string { return v.ID })
	case catalog.EntityTypeCategory:
		return hydrateIDs(ctx, userID, ids, s.entities.CategoriesByIDs, func(ctx context.Context, userID string, cats []catalog.Category) error {
			return s.pop.Categories(ctx, userID, cats, populate.DefaultCategoryEpisodeLimit)
		}, func(v catalog.Category) string { return v.ID })
	case catalog.EntityTypeEpisode:
		return hydrateIDs(ctx, userID, ids, s.entities.EpisodesByIDs, s.pop.Episodes, func(v catalog.Episode) string { return v.ID })
	case catalog.EntityTypeOffer:
		return hydrateIDs(ctx, userID, ids, s.entities.OffersByIDs, s.pop.Offers, func(v catalog.Offer) string { return v.ID })
	case catalog.EntityTypeSeries:
		return hydrateIDs(ctx, userID, ids, s.entities.SeriesByIDs, s.pop.Series, func(v catalog.Series) string { return v.ID })
	}
	return nil, &catalog.InvalidRequestError{Message: "unsupported entity type " + t.String()}
}

func hydrateIDs[T any](ctx context.Context, userID string, ids []string,
	byIDs func(context.Context, []string) ([]T, error),
	annotate func(context.Context, string, []T) error,
	id func(T) string) ([]T, error) {

	out, err := getByIDs(ctx, userID, ids, byIDs, annotate)
	if err != nil {
		return nil, err
	}
	return orderByIDs(out.Items, ids, id), nil
}
