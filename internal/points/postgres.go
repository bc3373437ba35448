package points

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists the points ledger in Postgres.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Grant(ctx context.Context, userID string, pts int, reason, entityID string) error {
	const q = `INSERT INTO user_points (user_id, points, reason, entity_id)
	           VALUES ($1, $2, $3, NULLIF($4, ''))`
	_, err := s.pool.Exec(ctx, q, userID, pts, reason, entityID)
	return err
}

func (s *PostgresStore) TotalForUser(ctx context.Context, userID string) (int, error) {
	const q = `SELECT COALESCE(SUM(points), 0) FROM user_points WHERE user_id = $1`
	var total int
	err := s.pool.QueryRow(ctx, q, userID).Scan(&total)
	return total, err
}

func (s *PostgresStore) Leaderboard(ctx context.Context, limit int) ([]LeaderboardRow, error) {
	const q = `SELECT user_id, SUM(points) AS total
	           FROM user_points
	           GROUP BY user_id
	           ORDER BY total DESC, user_id ASC
	           LIMIT $1`
	rows, err := s.pool.Query(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LeaderboardRow
	for rows.Next() {
		var r LeaderboardRow
		if err := rows.Scan(&r.UserID, &r.Total); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
