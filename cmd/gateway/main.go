package main

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/example/media-platform/internal/cache"
	"github.com/example/media-platform/internal/favorites"
	"github.com/example/media-platform/internal/handlers"
	"github.com/example/media-platform/internal/notes"
	"github.com/example/media-platform/internal/platform/auth"
	"github.com/example/media-platform/internal/platform/config"
	"github.com/example/media-platform/internal/platform/db"
	"github.com/example/media-platform/internal/platform/events"
	"github.com/example/media-platform/internal/platform/httpserver"
	"github.com/example/media-platform/internal/platform/logging"
	"github.com/example/media-platform/internal/platform/natsconn"
	"github.com/example/media-platform/internal/platform/run"
	"github.com/example/media-platform/internal/points"
	"github.com/example/media-platform/internal/populate"
	"github.com/example/media-platform/internal/ratings"
	"github.com/example/media-platform/internal/searchindex"
	"github.com/example/media-platform/internal/service"
	"github.com/example/media-platform/internal/sirqul"
	"github.com/example/media-platform/internal/store"
)

const cacheInvalidationSubject = "gateway.cache.invalidate"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log, err := logging.New(cfg.ServiceName, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	pool, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("open database", zap.Error(err))
		run.Exit(1)
	}
	defer pool.Close()

	// NATS carries cache invalidation and the activity feed. The gateway
	// still serves reads without it.
	var nc *nats.Conn
	var js nats.JetStreamContext
	if cfg.NATSURL != "" {
		nc, err = natsconn.Connect(natsconn.Options{URL: cfg.NATSURL, Name: cfg.ServiceName})
		if err != nil {
			log.Warn("nats unavailable, events and cache invalidation disabled", zap.Error(err))
		} else {
			defer nc.Close()
			if js, err = nc.JetStream(); err != nil {
				log.Warn("jetstream unavailable, events disabled", zap.Error(err))
			}
		}
	}

	var memo sirqul.ResponseCache
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedisResponseCache(cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			log.Error("open redis", zap.Error(err))
			run.Exit(1)
		}
		memo = rc
	} else {
		memo = cache.NewMemoryResponseCache(cfg.CacheTTL)
	}

	upstream := sirqul.New(sirqul.Options{
		BaseURL:           cfg.Sirqul.BaseURL,
		AppKey:            cfg.Sirqul.AppKey,
		AppSecret:         cfg.Sirqul.AppSecret,
		FallbackAccountID: cfg.Sirqul.FallbackAccountID,
		Memo:              memo,
	})
	search := searchindex.New(cfg.Search.BaseURL, cfg.Search.APIKey)
	entities := store.NewPostgresStore(pool)
	favStore := favorites.NewPostgresStore(pool)
	noteStore := notes.NewPostgresStore(pool)
	ratingStore := ratings.NewPostgresStore(pool)
	pointStore := points.NewPostgresStore(pool)

	publisher := events.New(js, log)
	pop := populate.New(favStore, entities, log)

	deps := service.Deps{
		Search:   search,
		Store:    entities,
		Upstream: upstream,
		Populate: pop,
		Log:      log,
	}
	brands := service.NewBrands(deps)
	charities := service.NewCharities(deps)
	stars := service.NewStars(deps)
	categories := service.NewCategories(deps)
	seriesSvc := service.NewSeries(deps)
	episodes := service.NewEpisodes(deps)
	offers := service.NewOffers(deps)
	userFavs := service.NewUserFavorites(favStore, entities, pop, publisher, log)

	listCache := cache.NewTTLCache(cfg.CacheTTL, nc, cacheInvalidationSubject)
	verifier := auth.JWTVerifier{Secret: []byte(cfg.JWTSecret)}

	r := chi.NewRouter()
	httpserver.SetupRouter(r, httpserver.RouterConfig{
		ReadyFunc: func() error { return pool.Ping(ctx) },
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.OptionalUser(verifier))

		r.Get("/v1/brands", handlers.ListBrands(brands, listCache))
		r.Get("/v1/brands/album/{album_id}", handlers.GetBrandAlbum(brands))
		r.Get("/v1/brands/{value}", handlers.GetBrand(brands))
		r.Post("/v1/brands/batch", handlers.BatchBrands(brands))

		r.Get("/v1/charities", handlers.ListCharities(charities, listCache))
		r.Get("/v1/charities/album/{album_id}", handlers.GetCharityAlbum(charities))
		r.Get("/v1/charities/{value}", handlers.GetCharity(charities))
		r.Post("/v1/charities/batch", handlers.BatchCharities(charities))

		r.Get("/v1/stars", handlers.ListStars(stars, listCache))
		r.Get("/v1/stars/album/{album_id}", handlers.GetStarAlbum(stars))
		r.Get("/v1/stars/{value}", handlers.GetStar(stars))
		r.Post("/v1/stars/batch", handlers.BatchStars(stars))

		r.Get("/v1/categories", handlers.ListCategories(categories, listCache))
		r.Get("/v1/categories/album/{album_id}", handlers.GetCategoryAlbum(categories))
		r.Get("/v1/categories/{value}", handlers.GetCategory(categories))
		r.Post("/v1/categories/batch", handlers.BatchCategories(categories))

		r.Get("/v1/series", handlers.ListSeries(seriesSvc, listCache))
		r.Get("/v1/series/album/{album_id}", handlers.GetSeriesAlbum(seriesSvc))
		r.Get("/v1/series/{value}", handlers.GetSeries(seriesSvc))
		r.Post("/v1/series/batch", handlers.BatchSeries(seriesSvc))

		r.Get("/v1/episodes", handlers.ListEpisodes(episodes, listCache))
		r.Get("/v1/episodes/album/{album_id}", handlers.GetEpisodeAlbum(episodes))
		r.Get("/v1/episodes/{episode_id}", handlers.GetEpisode(episodes))
		r.Post("/v1/episodes/batch", handlers.BatchEpisodes(episodes))
		r.Get("/v1/episodes/{episode_id}/rating", handlers.GetEpisodeRating(ratingStore))

		r.Get("/v1/offers", handlers.ListOffers(offers, listCache))
		r.Get("/v1/offers/album/{album_id}", handlers.GetOfferAlbum(offers))
		r.Get("/v1/offers/{value}", handlers.GetOffer(offers))
		r.Post("/v1/offers/batch", handlers.BatchOffers(offers))

		r.Get("/v1/points/leaderboard", handlers.GetLeaderboard(pointStore))
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUser(verifier))

		r.Put("/v1/favorites/{entity_type}/{entity_id}", handlers.AddFavorite(userFavs))
		r.Delete("/v1/favorites/{entity_type}/{entity_id}", handlers.RemoveFavorite(userFavs))
		r.Get("/v1/favorites/{entity_type}", handlers.ListFavorites(userFavs))

		r.Post("/v1/notes", handlers.AddNote(noteStore))
		r.Get("/v1/notes", handlers.ListNotes(noteStore))
		r.Delete("/v1/notes/{note_id}", handlers.RemoveNote(noteStore))

		r.Put("/v1/episodes/{episode_id}/rating", handlers.RateEpisode(ratingStore))

		r.Post("/v1/offers/{offer_id}/points", handlers.GrantOfferPoints(pointStore, offers, publisher))
		r.Get("/v1/points/me", handlers.GetMyPoints(pointStore))

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAdmin)
			r.Post("/v1/admin/cache/invalidate", handlers.InvalidateCache(listCache, nc, cacheInvalidationSubject))
		})
	})

	srv := httpserver.New(httpserver.Options{Addr: cfg.HTTP.Addr, ServiceName: cfg.ServiceName, Logger: log, Router: r})

	runner := run.New(log)
	code := runner.WithSignals(func(ctx context.Context) error {
		go func() {
			<-ctx.Done()
			runner.Graceful(srv.Shutdown)
		}()
		return srv.Start(log)
	})

	log.Info("exit", zap.Int("code", code))
	run.Exit(code)
}
