// Package handlers exposes the REST surface of the gateway: entity
// listings and lookups, favorites, notes, ratings and points.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/example/media-platform/internal/platform/api"
	"github.com/example/media-platform/internal/service"
)

const maxRequestBodyBytes = 1 << 20 // 1 MiB

// decodeJSON reads up to maxRequestBodyBytes from r.Body and decodes JSON into dst.
// On failure it writes a 400 response and returns false.
func decodeJSON[T any](w http.ResponseWriter, r *http.Request, rid string, dst *T) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)).Decode(dst); err != nil {
		api.BadRequest(w, "INVALID_JSON", "Invalid JSON", rid, nil)
		return false
	}
	return true
}

func parseInt(v string, def, min, max int) int {
	if strings.TrimSpace(v) == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}

// listRequest builds the shared listing shape from query parameters.
func listRequest(r *http.Request) service.ListRequest {
	q := r.URL.Query()
	return service.ListRequest{
		Term:   strings.TrimSpace(q.Get("q")),
		Sort:   strings.TrimSpace(q.Get("sort")),
		Limit:  parseInt(q.Get("limit"), 25, 1, 100),
		Offset: parseInt(q.Get("offset"), 0, 0, 10000),
	}
}

// upstreamRequested reports whether the caller asked for the album
// platform instead of the legacy stores.
func upstreamRequested(r *http.Request) bool {
	return strings.EqualFold(strings.TrimSpace(r.URL.Query().Get("source")), "upstream")
}
