package handlers

import (
	"errors"
	"net/http"

	"github.com/example/media-platform/internal/catalog"
	"github.com/example/media-platform/internal/platform/api"
)

// writeDomainError maps the typed catalog errors onto the API error
// envelope. Unknown errors become opaque 500s.
func writeDomainError(w http.ResponseWriter, requestID string, err error) {
	var notFound *catalog.NotFoundError
	if errors.As(err, &notFound) {
		api.NotFound(w, "NOT_FOUND", notFound.Error(), requestID)
		return
	}

	var invalid *catalog.InvalidRequestError
	if errors.As(err, &invalid) {
		api.BadRequest(w, "INVALID_REQUEST", invalid.Message, requestID, nil)
		return
	}

	var dup *catalog.DuplicateEntryError
	if errors.As(err, &dup) {
		api.Conflict(w, "ALREADY_EXISTS", dup.Error(), requestID, nil)
		return
	}

	var upstream *catalog.UpstreamError
	if errors.As(err, &upstream) {
		api.BadGateway(w, "UPSTREAM_ERROR", "upstream request failed", requestID)
		return
	}

	api.Internal(w, requestID)
}
