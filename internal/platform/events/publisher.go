// Package events provides a fire-and-forget NATS publisher for user
// activity events: favorite and like toggles, points grants.
package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/example/media-platform/internal/catalog"
	"github.com/example/media-platform/internal/favorites"
)

// Subject constants for every activity event type.
const (
	SubjectFavoriteAdded   = "activity.favorite.added"
	SubjectFavoriteRemoved = "activity.favorite.removed"
	SubjectLikeAdded       = "activity.like.added"
	SubjectLikeRemoved     = "activity.like.removed"
	SubjectPointsGranted   = "activity.points.granted"
)

// Event is the canonical envelope sent to all activity.* subjects.
type Event struct {
	EventID    string         `json:"event_id"`
	EventName  string         `json:"event_name"`
	UserID     string         `json:"user_id,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Publisher publishes activity events to NATS JetStream.
// The zero value and a nil pointer are both safe no-op stubs.
type Publisher struct {
	js  nats.JetStreamContext
	log *zap.Logger
}

// New creates a Publisher using an existing JetStream context.
// Pass js=nil to get a no-op stub (useful in tests and runs without NATS).
func New(js nats.JetStreamContext, log *zap.Logger) *Publisher {
	return &Publisher{js: js, log: log}
}

// FavoriteChanged emits the add/remove event for a favorite or like
// toggle.
func (p *Publisher) FavoriteChanged(userID, entityID string, t catalog.EntityType, kind favorites.Kind, active bool) {
	subject := SubjectFavoriteRemoved
	name := "favorite_removed"
	switch {
	case kind == favorites.KindLike && active:
		subject, name = SubjectLikeAdded, "like_added"
	case kind == favorites.KindLike:
		subject, name = SubjectLikeRemoved, "like_removed"
	case active:
		subject, name = SubjectFavoriteAdded, "favorite_added"
	}
	p.publish(subject, name, userID, map[string]any{
		"entity_id":   entityID,
		"entity_type": t.String(),
	})
}

// PointsGranted emits a points-ledger event.
func (p *Publisher) PointsGranted(userID string, points int, reason, entityID string) {
	p.publish(SubjectPointsGranted, "points_granted", userID, map[string]any{
		"points":    points,
		"reason":    reason,
		"entity_id": entityID,
	})
}

// publish sends asynchronously. Failures are logged as warnings and
// never surface to the caller. Safe on a nil receiver.
func (p *Publisher) publish(subject, eventName, userID string, props map[string]any) {
	if p == nil || p.js == nil {
		return
	}
	ev := Event{
		EventID:    uuid.NewString(),
		EventName:  eventName,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
		Properties: props,
	}
	data, err := json.Marshal(ev)
	if err != nil {
		p.log.Warn("events: marshal failed", zap.String("event", eventName), zap.Error(err))
		return
	}
	if _, err := p.js.PublishAsync(subject, data); err != nil {
		p.log.Warn("events: publish failed", zap.String("subject", subject), zap.Error(err))
	}
}
