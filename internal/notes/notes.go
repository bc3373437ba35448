// Package notes stores the private notes a user attaches to catalog
// entities. One note per (user, entity): a second note for the same
// entity is rejected as a duplicate.
package notes

import (
	"context"
	"time"

	"github.com/example/media-platform/internal/catalog"
)

type Note struct {
	ID         string             `json:"id"`
	UserID     string             `json:"userId"`
	EntityID   string             `json:"entityId"`
	EntityType catalog.EntityType `json:"entityType"`
	Body       string             `json:"body"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

type Store interface {
	// Add inserts the note and returns it with id and timestamps set.
	// A note already present for (user, entity) yields a duplicate error.
	Add(ctx context.Context, n Note) (Note, error)
	// ListByUser returns a page of the user's notes, newest first, plus
	// the full count.
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]Note, int, error)
	// Remove deletes the note. Unknown ids yield a typed not-found.
	Remove(ctx context.Context, userID, noteID string) error
}
