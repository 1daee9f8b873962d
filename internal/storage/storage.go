// Package storage defines the interface for object storage operations.
// Swap implementations by changing the concrete type injected at startup —
// the MinIO implementation works with any S3-compatible provider
// (LocalStack or MinIO locally, AWS S3 in the cloud).
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrObjectNotFound is returned by Fetch when no object exists at the key.
var ErrObjectNotFound = errors.New("object not found")

// Storage is the interface for writing and reading objects in the bucket
// configured at construction time.
type Storage interface {
	// Upload streams data to the store under the given key. Writing the
	// same key twice overwrites; the store never holds two objects for
	// one key.
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	// Fetch returns the object body at key, or ErrObjectNotFound.
	// The caller must close the returned reader.
	Fetch(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes an object identified by key.
	Delete(ctx context.Context, key string) error
}
