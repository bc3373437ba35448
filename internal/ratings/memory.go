package ratings

import (
	"context"
	"sync"
)

// MemoryStore is the in-memory Store used by tests and local runs.
type MemoryStore struct {
	mu     sync.RWMutex
	scores map[string]map[string]int // episode_id -> user_id -> score
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{scores: make(map[string]map[string]int)}
}

func (s *MemoryStore) Upsert(_ context.Context, episodeID, userID string, score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scores[episodeID] == nil {
		s.scores[episodeID] = make(map[string]int)
	}
	s.scores[episodeID][userID] = score
	return nil
}

func (s *MemoryStore) GetSummary(_ context.Context, episodeID string) (Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := s.scores[episodeID]
	if len(users) == 0 {
		return Summary{EpisodeID: episodeID}, nil
	}
	total := 0
	for _, score := range users {
		total += score
	}
	return Summary{
		EpisodeID:    episodeID,
		AverageScore: float64(total) / float64(len(users)),
		TotalRatings: len(users),
	}, nil
}

func (s *MemoryStore) GetUserRating(_ context.Context, episodeID, userID string) (int, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := s.scores[episodeID]
	if users == nil {
		return 0, false, nil
	}
	score, ok := users[userID]
	return score, ok, nil
}
