package repository

import (
	"context"

	"github.com/jenusanjay/imageservice/internal/entity"
)

// BlobStore owns the object storage backend holding raw image bytes,
// scoped to one bucket. Keys are derived from metadata records and
// never stored.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	// Get returns entity.ErrNotFound when no object exists at key.
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// MetadataStore owns the key-value backend holding one record per
// (userId, timestamp).
type MetadataStore interface {
	Put(ctx context.Context, meta entity.ImageMetadata) error
	// Get returns entity.ErrNotFound when no record exists.
	Get(ctx context.Context, userID string, timestamp int64) (entity.ImageMetadata, error)
	// List returns every record in the user's partition. A user with
	// no records yields an empty slice and a nil error, which is not
	// a failure.
	List(ctx context.Context, userID string) ([]entity.ImageMetadata, error)
	Delete(ctx context.Context, userID string, timestamp int64) error
}
