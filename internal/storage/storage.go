// Package storage resolves download URLs for page attachments kept in an
// S3-compatible object store. File rows only carry the object key.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrEmptyKey is returned when a file row has no storage path.
var ErrEmptyKey = errors.New("storage: empty object key")

// Storage is the object store capability the adapter needs.
// Implementations must be safe for concurrent use.
type Storage interface {
	// FileURL returns a URL under which the object can be downloaded without credentials.
	FileURL(ctx context.Context, key string) (string, error)
}

// Presigner is implemented by stores that hand out time-limited URLs.
type Presigner interface {
	// PresignGet returns a time-limited URL that can be used to download the object without credentials.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
