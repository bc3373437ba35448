package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/media-platform/internal/catalog"
)

// PostgresStore is the production Postgres-backed implementation.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

const entityColumns = `id::text, title, slug, COALESCE(description,''), COALESCE(cover_photo,''), COALESCE(thumbnail_photo,''), COALESCE(publish_date,'')`

func scanEntity(row pgx.Row) (catalog.Entity, error) {
	var e catalog.Entity
	err := row.Scan(&e.ID, &e.Title, &e.Slug, &e.Description, &e.CoverPhoto, &e.ThumbnailPhoto, &e.PublishDate)
	return e, err
}

// ── Brands ─────────────────────────────────────────────────────────────────

func (s *PostgresStore) BrandsByIDs(ctx context.Context, ids []string) ([]catalog.Brand, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := s.db.Query(ctx, `SELECT `+entityColumns+` FROM brands WHERE id = ANY($1::bigint[])`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.Brand
	for rows.Next() {
		e, err := scanEntity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, catalog.Brand{Entity: e})
	}
	return out, rows.Err()
}

func (s *PostgresStore) BrandBySlug(ctx context.Context, slug string) (catalog.Brand, error) {
	row := s.db.QueryRow(ctx, `SELECT `+entityColumns+` FROM brands WHERE slug = $1`, slug)
	e, err := scanEntity(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalog.Brand{}, &catalog.NotFoundError{Kind: "brand", Key: "slug", Value: slug}
		}
		return catalog.Brand{}, err
	}
	return catalog.Brand{Entity: e}, nil
}

// ── Charities ──────────────────────────────────────────────────────────────

func (s *PostgresStore) CharitiesByIDs(ctx context.Context, ids []string) ([]catalog.Charity, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := s.db.Query(ctx, `SELECT `+entityColumns+` FROM charities WHERE id = ANY($1::bigint[])`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.Charity
	for rows.Next() {
		e, err := scanEntity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, catalog.Charity{Entity: e})
	}
	return out, rows.Err()
}

func (s *PostgresStore) CharityBySlug(ctx context.Context, slug string) (catalog.Charity, error) {
	row := s.db.QueryRow(ctx, `SELECT `+entityColumns+` FROM charities WHERE slug = $1`, slug)
	e, err := scanEntity(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalog.Charity{}, &catalog.NotFoundError{Kind: "charity", Key: "slug", Value: slug}
		}
		return catalog.Charity{}, err
	}
	return catalog.Charity{Entity: e}, nil
}

// ── Stars ──────────────────────────────────────────────────────────────────

func (s *PostgresStore) StarsByIDs(ctx context.Context, ids []string) ([]catalog.Star, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := s.db.Query(ctx, `SELECT `+entityColumns+` FROM stars WHERE id = ANY($1::bigint[])`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.Star
	for rows.Next() {
		e, err := scanEntity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, catalog.Star{Entity: e})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := s.attachStarSeries(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) StarBySlug(ctx context.Context, slug string) (catalog.Star, error) {
	row := s.db.QueryRow(ctx, `SELECT `+entityColumns+` FROM stars WHERE slug = $1`, slug)
	e, err := scanEntity(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalog.Star{}, &catalog.NotFoundError{Kind: "star", Key: "slug", Value: slug}
		}
		return catalog.Star{}, err
	}
	stars := []catalog.Star{{Entity: e}}
	if err := s.attachStarSeries(ctx, stars); err != nil {
		return catalog.Star{}, err
	}
	return stars[0], nil
}

// attachStarSeries loads every star's series in one batched query.
func (s *PostgresStore) attachStarSeries(ctx context.Context, stars []catalog.Star) error {
	if len(stars) == 0 {
		return nil
	}
	ids := make([]string, 0, len(stars))
	for _, st := range stars {
		ids = append(ids, st.ID)
	}
	rows, err := s.db.Query(ctx, `
SELECT ss.star_id::text, se.id::text, se.title, se.slug, COALESCE(se.description,''), COALESCE(se.cover_photo,''), COALESCE(se.thumbnail_photo,''), COALESCE(se.publish_date,'')
FROM star_series ss JOIN series se ON se.id = ss.series_id
WHERE ss.star_id = ANY($1::bigint[])`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	byStar := make(map[string][]catalog.Series)
	for rows.Next() {
		var starID string
		var e catalog.Entity
		if err := rows.Scan(&starID, &e.ID, &e.Title, &e.Slug, &e.Description, &e.CoverPhoto, &e.ThumbnailPhoto, &e.PublishDate); err != nil {
			return err
		}
		byStar[starID] = append(byStar[starID], catalog.Series{Entity: e})
	}
	if err := rows.Err(); err != nil {
		return err
	}
	for i := range stars {
		stars[i].Series = byStar[stars[i].ID]
	}
	return nil
}

// ── Categories ─────────────────────────────────────────────────────────────

const categoryColumns = entityColumns + `, COALESCE(random, false)`

func (s *PostgresStore) CategoriesByIDs(ctx context.Context, ids []string) ([]catalog.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := s.db.Query(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = ANY($1::bigint[])`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.Category
	for rows.Next() {
		var c catalog.Category
		if err := rows.Scan(&c.ID, &c.Title, &c.Slug, &c.Description, &c.CoverPhoto, &c.ThumbnailPhoto, &c.PublishDate, &c.Random); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *PostgresStore) CategoryBySlug(ctx context.Context, slug string) (catalog.Category, error) {
	row := s.db.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE slug = $1`, slug)
	var c catalog.Category
	err := row.Scan(&c.ID, &c.Title, &c.Slug, &c.Description, &c.CoverPhoto, &c.ThumbnailPhoto, &c.PublishDate, &c.Random)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalog.Category{}, &catalog.NotFoundError{Kind: "category", Key: "slug", Value: slug}
		}
		return catalog.Category{}, err
	}
	return c, nil
}

// ── Series ─────────────────────────────────────────────────────────────────

func (s *PostgresStore) SeriesByIDs(ctx context.Context, ids []string) ([]catalog.Series, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := s.db.Query(ctx, `SELECT `+entityColumns+` FROM series WHERE id = ANY($1::bigint[])`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.Series
	for rows.Next() {
		e, err := scanEntity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, catalog.Series{Entity: e})
	}
	return out, rows.Err()
}

func (s *PostgresStore) SeriesBySlug(ctx context.Context, slug string) (catalog.Series, error) {
	row := s.db.QueryRow(ctx, `SELECT `+entityColumns+` FROM series WHERE slug = $1`, slug)
	e, err := scanEntity(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalog.Series{}, &catalog.NotFoundError{Kind: "series", Key: "slug", Value: slug}
		}
		return catalog.Series{}, err
	}
	return catalog.Series{Entity: e}, nil
}

// ── Episodes ───────────────────────────────────────────────────────────────

const episodeColumns = entityColumns + `, COALESCE(runtime,0), COALESCE(episode_number,0), COALESCE(views,0), COALESCE(likes,0), COALESCE(video,''), COALESCE(rating,0), COALESCE(created_at,0), COALESCE(order_category,'{}'), star_id::text, series_id::text`

func scanEpisode(row pgx.Row) (catalog.Episode, string, string, error) {
	var ep catalog.Episode
	var starID, seriesID *string
	err := row.Scan(&ep.ID, &ep.Title, &ep.Slug, &ep.Description, &ep.CoverPhoto, &ep.ThumbnailPhoto, &ep.PublishDate,
		&ep.Runtime, &ep.EpisodeNumber, &ep.Views, &ep.Likes, &ep.Video, &ep.Rating, &ep.CreatedAt, &ep.OrderCategory,
		&starID, &seriesID)
	if err != nil {
		return catalog.Episode{}, "", "", err
	}
	return ep, deref(starID), deref(seriesID), nil
}

func (s *PostgresStore) EpisodesByIDs(ctx context.Context, ids []string) ([]catalog.Episode, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := s.db.Query(ctx, `SELECT `+episodeColumns+` FROM episodes WHERE id = ANY($1::bigint[])`, ids)
	if err != nil {
		return nil, err
	}
	eps, starIDs, seriesIDs, err := collectEpisodes(rows)
	if err != nil {
		return nil, err
	}
	if err := s.attachEpisodeRelations(ctx, eps, starIDs, seriesIDs); err != nil {
		return nil, err
	}
	return eps, nil
}

func (s *PostgresStore) EpisodeBySlug(ctx context.Context, slug string) (catalog.Episode, error) {
	row := s.db.QueryRow(ctx, `SELECT `+episodeColumns+` FROM episodes WHERE slug = $1`, slug)
	ep, starID, seriesID, err := scanEpisode(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalog.Episode{}, &catalog.NotFoundError{Kind: "episode", Key: "slug", Value: slug}
		}
		return catalog.Episode{}, err
	}
	eps := []catalog.Episode{ep}
	if err := s.attachEpisodeRelations(ctx, eps, map[string]string{ep.ID: starID}, map[string]string{ep.ID: seriesID}); err != nil {
		return catalog.Episode{}, err
	}
	return eps[0], nil
}

func (s *PostgresStore) EpisodesByCategoryID(ctx context.Context, categoryID string, limit int) ([]catalog.Episode, int, error) {
	var total int
	if err := s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM episode_categories WHERE category_id = $1::bigint`, categoryID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return nil, 0, nil
	}

	rows, err := s.db.Query(ctx, `
SELECT e.id::text, e.title, e.slug, COALESCE(e.description,''), COALESCE(e.cover_photo,''), COALESCE(e.thumbnail_photo,''), COALESCE(e.publish_date,''),
       COALESCE(e.runtime,0), COALESCE(e.episode_number,0), COALESCE(e.views,0), COALESCE(e.likes,0), COALESCE(e.video,''), COALESCE(e.rating,0), COALESCE(e.created_at,0), COALESCE(e.order_category,'{}'), e.star_id::text, e.series_id::text
FROM episodes e JOIN episode_categories ec ON ec.episode_id = e.id
WHERE ec.category_id = $1::bigint
LIMIT $2`, categoryID, limit)
	if err != nil {
		return nil, 0, err
	}
	eps, _, _, err := collectEpisodes(rows)
	if err != nil {
		return nil, 0, err
	}
	return eps, total, nil
}

func collectEpisodes(rows pgx.Rows) ([]catalog.Episode, map[string]string, map[string]string, error) {
	defer rows.Close()
	var eps []catalog.Episode
	starIDs := make(map[string]string)
	seriesIDs := make(map[string]string)
	for rows.Next() {
		ep, starID, seriesID, err := scanEpisode(rows)
		if err != nil {
			return nil, nil, nil, err
		}
		if starID != "" {
			starIDs[ep.ID] = starID
		}
		if seriesID != "" {
			seriesIDs[ep.ID] = seriesID
		}
		eps = append(eps, ep)
	}
	return eps, starIDs, seriesIDs, rows.Err()
}

// attachEpisodeRelations hydrates star, series, brand, charity and
// category links for a batch of episodes with one query per relation.
func (s *PostgresStore) attachEpisodeRelations(ctx context.Context, eps []catalog.Episode, starIDs, seriesIDs map[string]string) error {
	if len(eps) == 0 {
		return nil
	}

	stars, err := s.StarsByIDs(ctx, distinctValues(starIDs))
	if err != nil {
		return err
	}
	starByID := make(map[string]catalog.Star, len(stars))
	for _, st := range stars {
		starByID[st.ID] = st
	}

	series, err := s.SeriesByIDs(ctx, distinctValues(seriesIDs))
	if err != nil {
		return err
	}
	seriesByID := make(map[string]catalog.Series, len(series))
	for _, se := range series {
		seriesByID[se.ID] = se
	}

	epIDs := make([]string, 0, len(eps))
	for _, ep := range eps {
		epIDs = append(epIDs, ep.ID)
	}

	brandsByEp, err := s.brandsByEpisodeIDs(ctx, epIDs)
	if err != nil {
		return err
	}
	charitiesByEp, err := s.charitiesByEpisodeIDs(ctx, epIDs)
	if err != nil {
		return err
	}
	categoriesByEp, err := s.categoriesByEpisodeIDs(ctx, epIDs)
	if err != nil {
		return err
	}

	for i := range eps {
		if st, ok := starByID[starIDs[eps[i].ID]]; ok {
			star := st
			eps[i].Star = &star
		}
		if se, ok := seriesByID[seriesIDs[eps[i].ID]]; ok {
			series := se
			eps[i].Series = &series
		}
		eps[i].Brands = brandsByEp[eps[i].ID]
		eps[i].Charities = charitiesByEp[eps[i].ID]
		eps[i].Categories = categoriesByEp[eps[i].ID]
	}
	return nil
}

func (s *PostgresStore) brandsByEpisodeIDs(ctx context.Context, epIDs []string) (map[string][]catalog.Brand, error) {
	rows, err := s.db.Query(ctx, `
SELECT eb.episode_id::text, b.id::text, b.title, b.slug, COALESCE(b.description,''), COALESCE(b.cover_photo,''), COALESCE(b.thumbnail_photo,''), COALESCE(b.publish_date,'')
FROM episode_brands eb JOIN brands b ON b.id = eb.brand_id
WHERE eb.episode_id = ANY($1::bigint[])`, epIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]catalog.Brand)
	for rows.Next() {
		var epID string
		var e catalog.Entity
		if err := rows.Scan(&epID, &e.ID, &e.Title, &e.Slug, &e.Description, &e.CoverPhoto, &e.ThumbnailPhoto, &e.PublishDate); err != nil {
			return nil, err
		}
		out[epID] = append(out[epID], catalog.Brand{Entity: e})
	}
	return out, rows.Err()
}

func (s *PostgresStore) charitiesByEpisodeIDs(ctx context.Context, epIDs []string) (map[string][]catalog.Charity, error) {
	rows, err := s.db.Query(ctx, `
SELECT ec.episode_id::text, c.id::text, c.title, c.slug, COALESCE(c.description,''), COALESCE(c.cover_photo,''), COALESCE(c.thumbnail_photo,''), COALESCE(c.publish_date,'')
FROM episode_charities ec JOIN charities c ON c.id = ec.charity_id
WHERE ec.episode_id = ANY($1::bigint[])`, epIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]catalog.Charity)
	for rows.Next() {
		var epID string
		var e catalog.Entity
		if err := rows.Scan(&epID, &e.ID, &e.Title, &e.Slug, &e.Description, &e.CoverPhoto, &e.ThumbnailPhoto, &e.PublishDate); err != nil {
			return nil, err
		}
		out[epID] = append(out[epID], catalog.Charity{Entity: e})
	}
	return out, rows.Err()
}

func (s *PostgresStore) categoriesByEpisodeIDs(ctx context.Context, epIDs []string) (map[string][]catalog.Category, error) {
	rows, err := s.db.Query(ctx, `
SELECT ec.episode_id::text, c.id::text, c.title, c.slug, COALESCE(c.description,''), COALESCE(c.cover_photo,''), COALESCE(c.thumbnail_photo,''), COALESCE(c.publish_date,''), COALESCE(c.random, false)
FROM episode_categories ec JOIN categories c ON c.id = ec.category_id
WHERE ec.episode_id = ANY($1::bigint[])`, epIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]catalog.Category)
	for rows.Next() {
		var epID string
		var c catalog.Category
		if err := rows.Scan(&epID, &c.ID, &c.Title, &c.Slug, &c.Description, &c.CoverPhoto, &c.ThumbnailPhoto, &c.PublishDate, &c.Random); err != nil {
			return nil, err
		}
		out[epID] = append(out[epID], c)
	}
	return out, rows.Err()
}

// ── Offers ─────────────────────────────────────────────────────────────────

const offerColumns = `o.id::text, o.title, o.slug, COALESCE(o.description,''), COALESCE(o.view_points,0), COALESCE(o.save_points,0), COALESCE(o.share_points,0), COALESCE(o.rfi_link,''), COALESCE(o.thumbnail_photo,''), COALESCE(o.promo_photos,'{}'), o.brand_id::text`

func (s *PostgresStore) OffersByIDs(ctx context.Context, ids []string) ([]catalog.Offer, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := s.db.Query(ctx, `SELECT `+offerColumns+` FROM offers o WHERE o.id = ANY($1::bigint[])`, ids)
	if err != nil {
		return nil, err
	}
	return s.collectOffers(ctx, rows)
}

func (s *PostgresStore) OfferBySlug(ctx context.Context, slug string) (catalog.Offer, error) {
	rows, err := s.db.Query(ctx, `SELECT `+offerColumns+` FROM offers o WHERE o.slug = $1`, slug)
	if err != nil {
		return catalog.Offer{}, err
	}
	offers, err := s.collectOffers(ctx, rows)
	if err != nil {
		return catalog.Offer{}, err
	}
	if len(offers) == 0 {
		return catalog.Offer{}, &catalog.NotFoundError{Kind: "offer", Key: "slug", Value: slug}
	}
	return offers[0], nil
}

func (s *PostgresStore) collectOffers(ctx context.Context, rows pgx.Rows) ([]catalog.Offer, error) {
	var out []catalog.Offer
	brandIDs := make(map[string]string)
	var scanErr error
	for rows.Next() {
		var o catalog.Offer
		var brandID *string
		if scanErr = rows.Scan(&o.ID, &o.Title, &o.Slug, &o.Description, &o.ViewPoints, &o.SavePoints, &o.SharePoints,
			&o.RFILink, &o.ThumbnailPhoto, &o.PromoPhotos, &brandID); scanErr != nil {
			break
		}
		if id := deref(brandID); id != "" {
			brandIDs[o.ID] = id
		}
		out = append(out, o)
	}
	rows.Close()
	if scanErr != nil {
		return nil, scanErr
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	brands, err := s.BrandsByIDs(ctx, distinctValues(brandIDs))
	if err != nil {
		return nil, err
	}
	brandByID := make(map[string]catalog.Brand, len(brands))
	for _, b := range brands {
		brandByID[b.ID] = b
	}
	for i := range out {
		if b, ok := brandByID[brandIDs[out[i].ID]]; ok {
			brand := b
			out[i].Brand = &brand
		}
	}
	return out, nil
}

// ── helpers ────────────────────────────────────────────────────────────────

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func distinctValues(m map[string]string) []string {
	seen := make(map[string]bool, len(m))
	var out []string
	for _, v := range m {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
