// Package store provides the key-value blob store used for metrics
// persistence, with SQLite and in-memory implementations.
package store

import "context"

// BlobStore is a minimal key-value store for serialized windows. A missing
// key yields (nil, nil), not an error.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}
