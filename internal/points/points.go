// Package points keeps the reward ledger offers feed: viewing, saving
// and sharing an offer each grant points, and the leaderboard ranks
// users by lifetime total.
package points

import (
	"context"
	"time"
)

// Reasons recorded on ledger entries.
const (
	ReasonOfferView  = "offer_view"
	ReasonOfferSave  = "offer_save"
	ReasonOfferShare = "offer_share"
)

type Entry struct {
	UserID    string    `json:"userId"`
	Points    int       `json:"points"`
	Reason    string    `json:"reason"`
	EntityID  string    `json:"entityId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type LeaderboardRow struct {
	UserID string `json:"userId"`
	Total  int    `json:"total"`
}

type Store interface {
	// Grant appends a ledger entry. Grants are append-only.
	Grant(ctx context.Context, userID string, points int, reason, entityID string) error
	// TotalForUser sums the user's lifetime points.
	TotalForUser(ctx context.Context, userID string) (int, error)
	// Leaderboard returns the top users by lifetime total.
	Leaderboard(ctx context.Context, limit int) ([]LeaderboardRow, error)
}
