// Package populate annotates batches of canonical entities with per-user
// favorite/like state and hydrates nested relations. Lookups are batched
// per entity type across the whole input batch, never issued per entity,
// and independent lookups run concurrently behind an all-must-complete
// barrier: one failed sub-fetch fails the whole population.
package populate

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/example/media-platform/internal/catalog"
	"github.com/example/media-platform/internal/favorites"
	"github.com/example/media-platform/internal/ordering"
)

// FavoriteReader is the read side of the favorite store the populator
// consumes.
type FavoriteReader interface {
	GetByIDsAndType(ctx context.Context, userID string, ids []string, t catalog.EntityType, kind favorites.Kind) ([]favorites.Row, error)
}

// EpisodeSource supplies a category's episodes on the legacy path.
type EpisodeSource interface {
	EpisodesByCategoryID(ctx context.Context, categoryID string, limit int) ([]catalog.Episode, int, error)
}

type Service struct {
	favorites FavoriteReader
	episodes  EpisodeSource
	log       *zap.Logger
}

// New creates a population service. episodes may be nil when category
// hydration is not needed (the upstream path nests episodes already).
func New(fav FavoriteReader, episodes EpisodeSource, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{favorites: fav, episodes: episodes, log: log}
}

// DefaultCategoryEpisodeLimit bounds legacy category hydration.
const DefaultCategoryEpisodeLimit = 50

func (s *Service) Brands(ctx context.Context, userID string, brands []catalog.Brand) error {
	return s.annotate(ctx, userID, func(v visitor) {
		for i := range brands {
			walkBrand(&brands[i], v)
		}
	})
}

func (s *Service) Charities(ctx context.Context, userID string, cs []catalog.Charity) error {
	return s.annotate(ctx, userID, func(v visitor) {
		for i := range cs {
			walkCharity(&cs[i], v)
		}
	})
}

func (s *Service) Episodes(ctx context.Context, userID string, eps []catalog.Episode) error {
	return s.annotate(ctx, userID, func(v visitor) {
		for i := range eps {
			walkEpisode(&eps[i], v)
		}
	})
}

func (s *Service) Offers(ctx context.Context, userID string, offers []catalog.Offer) error {
	return s.annotate(ctx, userID, func(v visitor) {
		for i := range offers {
			walkOffer(&offers[i], v)
		}
	})
}

func (s *Service) Series(ctx context.Context, userID string, series []catalog.Series) error {
	return s.annotate(ctx, userID, func(v visitor) {
		for i := range series {
			walkSeries(&series[i], v)
		}
	})
}

// Categories hydrates each category's episode list when absent (legacy
// rows carry no nesting), applies the category's ordering policy, then
// annotates the whole graph. Hydration and ordering run for anonymous
// callers too; only the favorite lookups are skipped.
func (s *Service) Categories(ctx context.Context, userID string, cats []catalog.Category, episodeLimit int) error {
	if episodeLimit <= 0 {
		episodeLimit = DefaultCategoryEpisodeLimit
	}

	if s.episodes != nil {
		g, gctx := errgroup.WithContext(ctx)
		for i := range cats {
			if cats[i].Episodes != nil {
				continue
			}
			g.Go(func() error {
				eps, total, err := s.episodes.EpisodesByCategoryID(gctx, cats[i].ID, episodeLimit)
				if err != nil {
					return err
				}
				cats[i].Episodes = &catalog.EpisodeList{Total: total, Episodes: eps}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}

	for i := range cats {
		if cats[i].Episodes != nil {
			ordering.OrderEpisodesForCategory(cats[i], cats[i].Episodes.Episodes)
		}
	}

	return s.annotate(ctx, userID, func(v visitor) {
		for i := range cats {
			walkCategory(&cats[i], v)
		}
	})
}

// annotate runs the two-pass population: one walk collecting distinct ids
// per entity type, one batched lookup per (type, kind) pair in parallel,
// then a second walk splicing the flags back onto every occurrence.
// An empty userID is the fast path: no lookups, flags stay as set by the
// normalizers.
func (s *Service) annotate(ctx context.Context, userID string, walk func(visitor)) error {
	if userID == "" {
		return nil
	}

	c := newCollector()
	walk(visitor{
		entity: func(t catalog.EntityType, e *catalog.Entity) { c.add(t, e.ID) },
		offer:  func(o *catalog.Offer) { c.add(catalog.EntityTypeOffer, o.ID) },
	})

	favored, liked, err := s.lookup(ctx, userID, c)
	if err != nil {
		return err
	}

	walk(visitor{
		entity: func(t catalog.EntityType, e *catalog.Entity) {
			e.IsFavorite = favored[t][e.ID]
			if t == catalog.EntityTypeEpisode {
				e.IsLiked = liked[e.ID]
			}
		},
		offer: func(o *catalog.Offer) {
			o.IsFavorite = favored[catalog.EntityTypeOffer][o.ID]
		},
	})
	return nil
}

// lookup issues one favorite lookup per entity type present in the
// collector, plus a like lookup for episodes, all concurrently.
func (s *Service) lookup(ctx context.Context, userID string, c *collector) (map[catalog.EntityType]map[string]bool, map[string]bool, error) {
	favored := make(map[catalog.EntityType]map[string]bool, len(c.ids))
	liked := make(map[string]bool)
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for t, ids := range c.ids {
		if len(ids) == 0 {
			continue
		}
		g.Go(func() error {
			rows, err := s.favorites.GetByIDsAndType(gctx, userID, ids, t, favorites.KindFavorite)
			if err != nil {
				return err
			}
			set := make(map[string]bool, len(rows))
			for _, r := range rows {
				set[r.EntityID] = true
			}
			mu.Lock()
			favored[t] = set
			mu.Unlock()
			return nil
		})
		if t == catalog.EntityTypeEpisode {
			g.Go(func() error {
				rows, err := s.favorites.GetByIDsAndType(gctx, userID, ids, t, favorites.KindLike)
				if err != nil {
					return err
				}
				mu.Lock()
				for _, r := range rows {
					liked[r.EntityID] = true
				}
				mu.Unlock()
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		s.log.Error("population favorite lookup failed", zap.String("user_id", userID), zap.Error(err))
		return nil, nil, err
	}
	return favored, liked, nil
}

// collector accumulates distinct entity ids per type with explicit seen
// sets; deduplication never relies on the storage layer.
type collector struct {
	ids  map[catalog.EntityType][]string
	seen map[catalog.EntityType]map[string]bool
}

func newCollector() *collector {
	return &collector{
		ids:  make(map[catalog.EntityType][]string),
		seen: make(map[catalog.EntityType]map[string]bool),
	}
}

func (c *collector) add(t catalog.EntityType, id string) {
	if id == "" {
		return
	}
	set := c.seen[t]
	if set == nil {
		set = make(map[string]bool)
		c.seen[t] = set
	}
	if set[id] {
		return
	}
	set[id] = true
	c.ids[t] = append(c.ids[t], id)
}
