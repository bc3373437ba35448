package notes

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/media-platform/internal/catalog"
)

// PostgresStore persists notes in Postgres.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Add(ctx context.Context, n Note) (Note, error) {
	const q = `INSERT INTO user_notes (id, user_id, entity_id, entity_type, body)
	           VALUES ($1, $2, $3, $4, $5)
	           RETURNING id, user_id, entity_id, entity_type, body, created_at, updated_at`
	id := uuid.NewString()
	row := s.pool.QueryRow(ctx, q, id, n.UserID, n.EntityID, int(n.EntityType), n.Body)

	var out Note
	err := row.Scan(&out.ID, &out.UserID, &out.EntityID, &out.EntityType, &out.Body, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Note{}, &catalog.DuplicateEntryError{Kind: "note", Key: n.EntityID}
		}
		return Note{}, err
	}
	return out, nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID string, offset, limit int) ([]Note, int, error) {
	const countQ = `SELECT COUNT(*) FROM user_notes WHERE user_id = $1`
	var total int
	if err := s.pool.QueryRow(ctx, countQ, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	const q = `SELECT id, user_id, entity_id, entity_type, body, created_at, updated_at
	           FROM user_notes
	           WHERE user_id = $1
	           ORDER BY created_at DESC, id DESC
	           OFFSET $2 LIMIT $3`
	rows, err := s.pool.Query(ctx, q, userID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Note
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.ID, &n.UserID, &n.EntityID, &n.EntityType, &n.Body, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, n)
	}
	return out, total, rows.Err()
}

func (s *PostgresStore) Remove(ctx context.Context, userID, noteID string) error {
	const q = `DELETE FROM user_notes WHERE id = $1 AND user_id = $2 RETURNING id`
	var id string
	err := s.pool.QueryRow(ctx, q, noteID, userID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return &catalog.NotFoundError{Kind: "note", Key: "id", Value: noteID}
	}
	return err
}
