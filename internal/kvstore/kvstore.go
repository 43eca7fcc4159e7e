// Package kvstore provides the key-value byte store the gateways persist into.
// Values are whole JSON documents; every write replaces the full value for a key.
package kvstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no value exists for the key.
var ErrNotFound = errors.New("kvstore: key not found")

// Store is a minimal whole-value byte store. Set is atomic per key: a reader
// observes either the previous value or the new one, never a partial write.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}
