package points

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is the in-memory Store used by tests and local runs.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []Entry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

func (s *MemoryStore) Grant(_ context.Context, userID string, pts int, reason, entityID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, Entry{
		UserID:    userID,
		Points:    pts,
		Reason:    reason,
		EntityID:  entityID,
		CreatedAt: s.now(),
	})
	return nil
}

func (s *MemoryStore) TotalForUser(_ context.Context, userID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, e := range s.entries {
		if e.UserID == userID {
			total += e.Points
		}
	}
	return total, nil
}

func (s *MemoryStore) Leaderboard(_ context.Context, limit int) ([]LeaderboardRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := make(map[string]int)
	for _, e := range s.entries {
		totals[e.UserID] += e.Points
	}
	out := make([]LeaderboardRow, 0, len(totals))
	for user, total := range totals {
		out = append(out, LeaderboardRow{UserID: user, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].UserID < out[j].UserID
	})
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}
