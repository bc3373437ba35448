// Package store reads legacy relational entities, scanning rows straight
// into the canonical catalog structs. Ids are stringified at this
// boundary so the rest of the system compares plain strings.
package store

import (
	"context"

	"github.com/example/media-platform/internal/catalog"
)

// EntityStore defines the relational read contract the aggregation and
// population layers consume. BySlug lookups return a typed NotFound when
// zero rows match; ByIDs lookups tolerate empty id lists.
type EntityStore interface {
	BrandsByIDs(ctx context.Context, ids []string) ([]catalog.Brand, error)
	BrandBySlug(ctx context.Context, slug string) (catalog.Brand, error)

	CharitiesByIDs(ctx context.Context, ids []string) ([]catalog.Charity, error)
	CharityBySlug(ctx context.Context, slug string) (catalog.Charity, error)

	StarsByIDs(ctx context.Context, ids []string) ([]catalog.Star, error)
	StarBySlug(ctx context.Context, slug string) (catalog.Star, error)

	CategoriesByIDs(ctx context.Context, ids []string) ([]catalog.Category, error)
	CategoryBySlug(ctx context.Context, slug string) (catalog.Category, error)

	SeriesByIDs(ctx context.Context, ids []string) ([]catalog.Series, error)
	SeriesBySlug(ctx context.Context, slug string) (catalog.Series, error)

	EpisodesByIDs(ctx context.Context, ids []string) ([]catalog.Episode, error)
	EpisodeBySlug(ctx context.Context, slug string) (catalog.Episode, error)

	OffersByIDs(ctx context.Context, ids []string) ([]catalog.Offer, error)
	OfferBySlug(ctx context.Context, slug string) (catalog.Offer, error)

	// EpisodesByCategoryID returns a page of the category's episodes and
	// the category's full episode count.
	EpisodesByCategoryID(ctx context.Context, categoryID string, limit int) ([]catalog.Episode, int, error)
}
