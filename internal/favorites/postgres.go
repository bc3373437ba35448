package favorites

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/media-platform/internal/catalog"
)

// PostgresStore is the production Postgres-backed implementation.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) GetByIDsAndType(ctx context.Context, userID string, ids []string, t catalog.EntityType, kind Kind) ([]Row, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	const q = `SELECT user_id, entity_id, entity_type, kind, added_date, updated_date, enabled
	           FROM user_favorites
	           WHERE user_id = $1 AND entity_type = $2 AND kind = $3 AND enabled AND entity_id = ANY($4)`
	rows, err := s.pool.Query(ctx, q, userID, int(t), string(kind), ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRows(rows)
}

func (s *PostgresStore) GetByType(ctx context.Context, userID string, t catalog.EntityType, kind Kind, offset, limit int) ([]Row, error) {
	const q = `SELECT user_id, entity_id, entity_type, kind, added_date, updated_date, enabled
	           FROM user_favorites
	           WHERE user_id = $1 AND entity_type = $2 AND kind = $3 AND enabled
	           ORDER BY updated_date DESC, entity_id DESC
	           OFFSET $4 LIMIT $5`
	rows, err := s.pool.Query(ctx, q, userID, int(t), string(kind), offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRows(rows)
}

func (s *PostgresStore) GetTotalByType(ctx context.Context, userID string, t catalog.EntityType, kind Kind) (int, error) {
	const q = `SELECT COUNT(*) FROM user_favorites
	           WHERE user_id = $1 AND entity_type = $2 AND kind = $3 AND enabled`
	var total int
	if err := s.pool.QueryRow(ctx, q, userID, int(t), string(kind)).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *PostgresStore) Upsert(ctx context.Context, userID, entityID string, t catalog.EntityType, kind Kind, enabled bool) error {
	const q = `INSERT INTO user_favorites (user_id, entity_id, entity_type, kind, added_date, updated_date, enabled)
	           VALUES ($1, $2, $3, $4, now(), now(), $5)
	           ON CONFLICT (user_id, entity_id, entity_type, kind)
	           DO UPDATE SET enabled = EXCLUDED.enabled, updated_date = now()`
	_, err := s.pool.Exec(ctx, q, userID, entityID, int(t), string(kind), enabled)
	return err
}

func scanRows(rows pgx.Rows) ([]Row, error) {
	var out []Row
	for rows.Next() {
		var r Row
		var et int
		var kind string
		if err := rows.Scan(&r.UserID, &r.EntityID, &et, &kind, &r.AddedDate, &r.UpdatedDate, &r.Enabled); err != nil {
			return nil, err
		}
		r.EntityType = catalog.EntityType(et)
		r.Kind = Kind(kind)
		out = append(out, r)
	}
	return out, rows.Err()
}
