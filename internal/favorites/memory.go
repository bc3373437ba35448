package favorites

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/example/media-platform/internal/catalog"
)

type memoryKey struct {
	userID     string
	entityID   string
	entityType catalog.EntityType
	kind       Kind
}

// MemoryStore is an in-memory Store for tests and local development.
type MemoryStore struct {
	mu   sync.RWMutex
	rows map[memoryKey]Row
	now  func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rows: make(map[memoryKey]Row), now: time.Now}
}

func (s *MemoryStore) GetByIDsAndType(_ context.Context, userID string, ids []string, t catalog.EntityType, kind Kind) ([]Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Row
	for _, id := range ids {
		r, ok := s.rows[memoryKey{userID, id, t, kind}]
		if ok && r.Enabled {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *MemoryStore) GetByType(_ context.Context, userID string, t catalog.EntityType, kind Kind, offset, limit int) ([]Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var all []Row
	for k, r := range s.rows {
		if k.userID == userID && k.entityType == t && k.kind == kind && r.Enabled {
			all = append(all, r)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].UpdatedDate.Equal(all[j].UpdatedDate) {
			return all[i].UpdatedDate.After(all[j].UpdatedDate)
		}
		return all[i].EntityID > all[j].EntityID
	})
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (s *MemoryStore) GetTotalByType(_ context.Context, userID string, t catalog.EntityType, kind Kind) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for k, r := range s.rows {
		if k.userID == userID && k.entityType == t && k.kind == kind && r.Enabled {
			total++
		}
	}
	return total, nil
}

func (s *MemoryStore) Upsert(_ context.Context, userID, entityID string, t catalog.EntityType, kind Kind, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := memoryKey{userID, entityID, t, kind}
	now := s.now()
	if existing, ok := s.rows[key]; ok {
		existing.Enabled = enabled
		existing.UpdatedDate = now
		s.rows[key] = existing
		return nil
	}
	s.rows[key] = Row{
		UserID:      userID,
		EntityID:    entityID,
		EntityType:  t,
		Kind:        kind,
		AddedDate:   now,
		UpdatedDate: now,
		Enabled:     enabled,
	}
	return nil
}

// Len reports the number of rows held, enabled or not. Test helper.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}
