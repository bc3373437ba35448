package points

import (
	"context"
	"testing"
)

func TestGrantAndTotal(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.Grant(ctx, "u1", 10, ReasonOfferView, "o1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Grant(ctx, "u1", 25, ReasonOfferShare, "o1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Grant(ctx, "u2", 5, ReasonOfferSave, "o2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	total, err := s.TotalForUser(ctx, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 35 {
		t.Fatalf("expected 35 points, got %d", total)
	}

	total, err = s.TotalForUser(ctx, "u3")
	if err != nil || total != 0 {
		t.Fatalf("expected 0 points for unknown user, got %d err=%v", total, err)
	}
}

func TestLeaderboard_OrderAndLimit(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	grants := []struct {
		user string
		pts  int
	}{
		{"u1", 10}, {"u2", 30}, {"u1", 15}, {"u3", 25}, {"u4", 25},
	}
	for _, g := range grants {
		if err := s.Grant(ctx, g.user, g.pts, ReasonOfferView, ""); err != nil {
			t.Fatalf("grant: %v", err)
		}
	}

	rows, err := s.Leaderboard(ctx, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	// u2=30, then the u1/u3/u4 25-point tie breaks on user id.
	if rows[0].UserID != "u2" || rows[0].Total != 30 {
		t.Fatalf("expected u2 first, got %+v", rows[0])
	}
	if rows[1].UserID != "u1" || rows[1].Total != 25 {
		t.Fatalf("expected u1 second, got %+v", rows[1])
	}
	if rows[2].UserID != "u3" {
		t.Fatalf("expected u3 third, got %+v", rows[2])
	}
}

func TestLeaderboard_Empty(t *testing.T) {
	rows, err := NewMemoryStore().Leaderboard(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected empty leaderboard, got %+v", rows)
	}
}
