// Package favorites persists the user↔entity association rows behind
// favorite and like annotations.
package favorites

import (
	"context"
	"time"

	"github.com/example/media-platform/internal/catalog"
)

// Kind distinguishes the two association flavors sharing one table.
type Kind string

const (
	KindFavorite Kind = "favorite"
	KindLike     Kind = "like"
)

// Row is one user↔entity association. Removal is a soft toggle: the row
// stays with Enabled=false and is invisible to reads, so the key
// (UserID, EntityID, EntityType, Kind) never gains duplicates.
type Row struct {
	UserID      string
	EntityID    string
	EntityType  catalog.EntityType
	Kind        Kind
	AddedDate   time.Time
	UpdatedDate time.Time
	Enabled     bool
}

// Store defines the favorite/like persistence operations. All read
// methods return enabled rows only.
type Store interface {
	// GetByIDsAndType returns the user's enabled rows among ids.
	GetByIDsAndType(ctx context.Context, userID string, ids []string, t catalog.EntityType, kind Kind) ([]Row, error)
	// GetByType returns a page of the user's enabled rows for one type,
	// newest first.
	GetByType(ctx context.Context, userID string, t catalog.EntityType, kind Kind, offset, limit int) ([]Row, error)
	// GetTotalByType counts the user's enabled rows for one type.
	GetTotalByType(ctx context.Context, userID string, t catalog.EntityType, kind Kind) (int, error)
	// Upsert inserts the row or, on conflict, updates enabled and the
	// update timestamp. It never errors on repeated adds or removes.
	Upsert(ctx context.Context, userID, entityID string, t catalog.EntityType, kind Kind, enabled bool) error
}
