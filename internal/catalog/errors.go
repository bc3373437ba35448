package catalog

import (
	"errors"
	"fmt"
)

// NotFoundError reports a zero-match key lookup. It names the lookup key
// and value so the boundary can return a descriptive message instead of a
// silent empty entity.
type NotFoundError struct {
	Kind  string
	Key   string
	Value string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found for %s=%q", e.Kind, e.Key, e.Value)
}

// InvalidRequestError reports malformed input to a mutation, distinct
// from NotFound.
type InvalidRequestError struct {
	Message string
}

func (e *InvalidRequestError) Error() string { return e.Message }

// DuplicateEntryError reports a uniqueness-constrained write collision,
// mapped from the storage layer's duplicate-key signal.
type DuplicateEntryError struct {
	Kind string
	Key  string
}

func (e *DuplicateEntryError) Error() string {
	return fmt.Sprintf("duplicate %s for %s", e.Kind, e.Key)
}

// UpstreamError wraps an unexpected failure from the upstream album
// platform or the search index. It carries the operation name so the
// boundary can log it without leaking internals to the caller.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string { return fmt.Sprintf("upstream %s: %v", e.Op, e.Err) }
func (e *UpstreamError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsInvalidRequest(err error) bool {
	var ir *InvalidRequestError
	return errors.As(err, &ir)
}

func IsDuplicateEntry(err error) bool {
	var de *DuplicateEntryError
	return errors.As(err, &de)
}
