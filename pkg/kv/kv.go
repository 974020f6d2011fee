// Package kv is the thin snapshot layer the storefront degrades onto when
// the primary datastore is unavailable: cart snapshots, the cached catalog
// written by the admin flow, and the queue of order lines that failed to
// reach the database. Keys are independent; concurrent writers race and the
// last write wins.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound signals a missing key.
var ErrNotFound = errors.New("kv: key not found")

// Store persists JSON-serialized values under string keys.
type Store interface {
	// GetJSON unmarshals the value at key into dest. Returns ErrNotFound
	// when the key is absent.
	GetJSON(ctx context.Context, key string, dest any) error
	// SetJSON marshals value and stores it at key, replacing any previous value.
	SetJSON(ctx context.Context, key string, value any) error
	// Delete removes the key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
	// AppendJSON marshals value and appends it to the list at key.
	AppendJSON(ctx context.Context, key string, value any) error
	// ListJSON returns the raw JSON entries of the list at key, oldest first.
	// A missing key yields an empty list.
	ListJSON(ctx context.Context, key string) ([]string, error)
}
