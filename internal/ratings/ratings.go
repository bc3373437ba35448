// Package ratings stores per-user episode ratings and serves the
// aggregate summary rendered next to an episode.
package ratings

import "context"

// Score bounds accepted for a rating.
const (
	MinScore = 1
	MaxScore = 10
)

type Summary struct {
	EpisodeID    string  `json:"episodeId"`
	AverageScore float64 `json:"averageScore"`
	TotalRatings int     `json:"totalRatings"`
}

type Store interface {
	// Upsert records the user's score for the episode, replacing any
	// earlier score.
	Upsert(ctx context.Context, episodeID, userID string, score int) error
	GetSummary(ctx context.Context, episodeID string) (Summary, error)
	// GetUserRating reports the user's score and whether one exists.
	GetUserRating(ctx context.Context, episodeID, userID string) (int, bool, error)
}
