package favorites

import (
	"context"
	"testing"
	"time"

	"github.com/example/media-platform/internal/catalog"
)

func TestMemoryStore_SoftToggleCycle(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	// add -> remove -> add again: one row the whole way through.
	if err := s.Upsert(ctx, "u1", "e1", catalog.EntityTypeBrand, KindFavorite, true); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Upsert(ctx, "u1", "e1", catalog.EntityTypeBrand, KindFavorite, false); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := s.Upsert(ctx, "u1", "e1", catalog.EntityTypeBrand, KindFavorite, true); err != nil {
		t.Fatalf("re-add: %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("toggle cycle must never duplicate rows, got %d", s.Len())
	}

	rows, err := s.GetByIDsAndType(ctx, "u1", []string{"e1"}, catalog.EntityTypeBrand, KindFavorite)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(rows) != 1 || !rows[0].Enabled {
		t.Fatalf("re-added favorite must be visible, got %+v", rows)
	}
}

func TestMemoryStore_RemovedRowsInvisibleToReads(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_ = s.Upsert(ctx, "u1", "e1", catalog.EntityTypeEpisode, KindFavorite, true)
	_ = s.Upsert(ctx, "u1", "e2", catalog.EntityTypeEpisode, KindFavorite, true)
	_ = s.Upsert(ctx, "u1", "e1", catalog.EntityTypeEpisode, KindFavorite, false)

	rows, _ := s.GetByIDsAndType(ctx, "u1", []string{"e1", "e2"}, catalog.EntityTypeEpisode, KindFavorite)
	if len(rows) != 1 || rows[0].EntityID != "e2" {
		t.Fatalf("disabled rows must not surface, got %+v", rows)
	}

	total, _ := s.GetTotalByType(ctx, "u1", catalog.EntityTypeEpisode, KindFavorite)
	if total != 1 {
		t.Fatalf("expected total 1, got %d", total)
	}

	page, _ := s.GetByType(ctx, "u1", catalog.EntityTypeEpisode, KindFavorite, 0, 10)
	if len(page) != 1 || page[0].EntityID != "e2" {
		t.Fatalf("expected page with e2 only, got %+v", page)
	}
}

func TestMemoryStore_RemovingAbsentRowSucceeds(t *testing.T) {
	s := NewMemoryStore()
	if err := s.Upsert(context.Background(), "u1", "missing", catalog.EntityTypeStar, KindFavorite, false); err != nil {
		t.Fatalf("removing an absent favorite must not error, got %v", err)
	}
}

func TestMemoryStore_KindsAreIndependent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_ = s.Upsert(ctx, "u1", "e1", catalog.EntityTypeEpisode, KindLike, true)

	favs, _ := s.GetByIDsAndType(ctx, "u1", []string{"e1"}, catalog.EntityTypeEpisode, KindFavorite)
	if len(favs) != 0 {
		t.Fatal("a like must not surface as a favorite")
	}
	likes, _ := s.GetByIDsAndType(ctx, "u1", []string{"e1"}, catalog.EntityTypeEpisode, KindLike)
	if len(likes) != 1 {
		t.Fatal("expected the like row")
	}
}

func TestMemoryStore_GetByTypeNewestFirst(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := base
	s.now = func() time.Time { return clock }

	for i, id := range []string{"e1", "e2", "e3"} {
		clock = base.Add(time.Duration(i) * time.Minute)
		_ = s.Upsert(ctx, "u1", id, catalog.EntityTypeBrand, KindFavorite, true)
	}

	page, _ := s.GetByType(ctx, "u1", catalog.EntityTypeBrand, KindFavorite, 0, 2)
	if len(page) != 2 || page[0].EntityID != "e3" || page[1].EntityID != "e2" {
		t.Fatalf("expected e3,e2, got %+v", page)
	}

	page, _ = s.GetByType(ctx, "u1", catalog.EntityTypeBrand, KindFavorite, 2, 2)
	if len(page) != 1 || page[0].EntityID != "e1" {
		t.Fatalf("expected the last page to hold e1, got %+v", page)
	}
}
