package ratings

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists ratings in Postgres.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Upsert(ctx context.Context, episodeID, userID string, score int) error {
	const q = `INSERT INTO episode_ratings (user_id, episode_id, score)
	           VALUES ($1, $2, $3)
	           ON CONFLICT (user_id, episode_id) DO UPDATE SET
	             score = EXCLUDED.score,
	             updated_at = now()`
	_, err := s.pool.Exec(ctx, q, userID, episodeID, score)
	return err
}

func (s *PostgresStore) GetSummary(ctx context.Context, episodeID string) (Summary, error) {
	const q = `SELECT COALESCE(AVG(score), 0), COUNT(*)
	           FROM episode_ratings WHERE episode_id = $1`
	var avg float64
	var total int
	if err := s.pool.QueryRow(ctx, q, episodeID).Scan(&avg, &total); err != nil {
		return Summary{EpisodeID: episodeID}, err
	}
	return Summary{EpisodeID: episodeID, AverageScore: avg, TotalRatings: total}, nil
}

func (s *PostgresStore) GetUserRating(ctx context.Context, episodeID, userID string) (int, bool, error) {
	const q = `SELECT score FROM episode_ratings WHERE episode_id = $1 AND user_id = $2`
	var score int
	err := s.pool.QueryRow(ctx, q, episodeID, userID).Scan(&score)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return score, true, nil
}
