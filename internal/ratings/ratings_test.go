package ratings

import (
	"context"
	"testing"
)

func TestGetSummary_Empty(t *testing.T) {
	s := NewMemoryStore()
	sum, err := s.GetSummary(context.Background(), "e1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.TotalRatings != 0 || sum.AverageScore != 0 {
		t.Fatalf("expected zero summary, got %+v", sum)
	}
}

func TestUpsert_ReplacesUserScore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.Upsert(ctx, "e1", "u1", 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Upsert(ctx, "e1", "u2", 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// u1 changes their mind; count must not grow.
	if err := s.Upsert(ctx, "e1", "u1", 6); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sum, err := s.GetSummary(ctx, "e1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.TotalRatings != 2 {
		t.Fatalf("expected 2 ratings, got %d", sum.TotalRatings)
	}
	if sum.AverageScore != 8 {
		t.Fatalf("expected average 8, got %v", sum.AverageScore)
	}
}

func TestGetUserRating(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, ok, err := s.GetUserRating(ctx, "e1", "u1"); err != nil || ok {
		t.Fatalf("expected no rating, got ok=%v err=%v", ok, err)
	}
	if err := s.Upsert(ctx, "e1", "u1", 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	score, ok, err := s.GetUserRating(ctx, "e1", "u1")
	if err != nil || !ok || score != 7 {
		t.Fatalf("expected score 7, got score=%d ok=%v err=%v", score, ok, err)
	}
	if _, ok, _ := s.GetUserRating(ctx, "e1", "u2"); ok {
		t.Fatal("expected no rating for other user")
	}
}
