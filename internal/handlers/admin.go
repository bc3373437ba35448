package handlers

import (
	"net/http"
	"strings"

	"github.com/nats-io/nats.go"

	"github.com/example/media-platform/internal/cache"
	"github.com/example/media-platform/internal/platform/api"
	"github.com/example/media-platform/internal/platform/httpserver"
)

// InvalidateCache handles POST /v1/admin/cache/invalidate. An optional
// ?key= evicts a single list key; without it the whole cache is
// flushed. When NATS is connected the eviction is broadcast so every
// gateway instance drops the entry, otherwise only this process does.
func InvalidateCache(c *cache.TTLCache, nc *nats.Conn, subject string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())
		key := strings.TrimSpace(r.URL.Query().Get("key"))

		scope := "local"
		if nc != nil && subject != "" {
			if err := nc.Publish(subject, []byte(key)); err != nil {
				api.Internal(w, rid)
				return
			}
			scope = "cluster"
		} else {
			c.Invalidate(key)
		}
		if key == "" {
			key = "ALL"
		}
		api.WriteJSON(w, http.StatusOK, map[string]any{"invalidated": key, "scope": scope})
	}
}
