package search

import "errors"

var (
	// ErrNotFound is returned by Storage.Get when the entity does not exist.
	ErrNotFound = errors.New("entity not found")
	// ErrBackendQuery wraps any failed storage list or get call.
	// It aborts the whole search.
	ErrBackendQuery = errors.New("storage query failed")
	// ErrPathUnresolvable is returned when an entity's parent chain cannot be
	// walked back to its root. Only the index link of that result is dropped.
	ErrPathUnresolvable = errors.New("path unresolvable")
	// ErrPublish wraps any failed create-page or edit-page call.
	ErrPublish = errors.New("publish failed")
)
