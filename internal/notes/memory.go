package notes

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/media-platform/internal/catalog"
)

// MemoryStore is the in-memory Store used by tests and local runs.
type MemoryStore struct {
	mu    sync.RWMutex
	notes []Note
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

func (s *MemoryStore) Add(_ context.Context, n Note) (Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, have := range s.notes {
		if have.UserID == n.UserID && have.EntityID == n.EntityID && have.EntityType == n.EntityType {
			return Note{}, &catalog.DuplicateEntryError{Kind: "note", Key: n.EntityID}
		}
	}

	n.ID = uuid.NewString()
	n.CreatedAt = s.now()
	n.UpdatedAt = n.CreatedAt
	s.notes = append(s.notes, n)
	return n, nil
}

func (s *MemoryStore) ListByUser(_ context.Context, userID string, offset, limit int) ([]Note, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var mine []Note
	for _, n := range s.notes {
		if n.UserID == userID {
			mine = append(mine, n)
		}
	}
	sort.SliceStable(mine, func(i, j int) bool { return mine[i].CreatedAt.After(mine[j].CreatedAt) })

	total := len(mine)
	if offset >= total {
		return nil, total, nil
	}
	mine = mine[offset:]
	if limit > 0 && limit < len(mine) {
		mine = mine[:limit]
	}
	return mine, total, nil
}

func (s *MemoryStore) Remove(_ context.Context, userID, noteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notes {
		if n.ID == noteID && n.UserID == userID {
			s.notes = append(s.notes[:i], s.notes[i+1:]...)
			return nil
		}
	}
	return &catalog.NotFoundError{Kind: "note", Key: "id", Value: noteID}
}
