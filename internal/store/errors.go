package store

import "errors"

var (
	// ErrStateNotFound signals that no state blob exists for the requested
	// device/scope/key/counter.
	ErrStateNotFound = errors.New("store: sync state not found")
)
