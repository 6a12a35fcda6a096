// Package images coordinates the blob store and the metadata store.
// The two stores are not transactional: writes are ordered so that a
// failure leaves at worst an orphaned blob, never a record pointing
// at nothing, and drift is always surfaced rather than masked.
package images

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jenusanjay/imageservice/internal/codec"
	"github.com/jenusanjay/imageservice/internal/entity"
	"github.com/jenusanjay/imageservice/internal/repository"
)

const (
	thumbnailWidth  = 150
	thumbnailHeight = 150

	defaultStoreTimeout = 5 * time.Second
)

type Images struct {
	blobs   repository.BlobStore
	records repository.MetadataStore
	logger  *slog.Logger
	timeout time.Duration

	now  func() int64
	last atomic.Int64
}

type Config struct {
	Blobs   repository.BlobStore
	Records repository.MetadataStore
	Logger  *slog.Logger
	// StoreTimeout bounds every call to a backing store. Zero means
	// the default of 5s.
	StoreTimeout time.Duration
	// Now overrides the timestamp source, for tests. Zero value uses
	// the wall clock in unix nanoseconds.
	Now func() int64
}

func New(c Config) *Images {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.StoreTimeout == 0 {
		c.StoreTimeout = defaultStoreTimeout
	}
	if c.Now == nil {
		c.Now = func() int64 { return time.Now().UnixNano() }
	}

	return &Images{
		blobs:   c.Blobs,
		records: c.Records,
		logger:  c.Logger,
		timeout: c.StoreTimeout,
		now:     c.Now,
	}
}

// next assigns a creation timestamp. Values are strictly increasing
// within the process so two concurrent uploads can never collide on
// the (userId, timestamp) identity.
func (i *Images) next() int64 {
	for {
		last := i.last.Load()
		ts := i.now()
		if ts <= last {
			ts = last + 1
		}
		if i.last.CompareAndSwap(last, ts) {
			return ts
		}
	}
}

// Upload decodes raw, stores the blob under the derived key and then
// writes the metadata record. The blob goes first: an orphaned blob is
// harmless, an orphaned record is a read-time error.
func (i *Images) Upload(ctx context.Context, userID string, raw []byte) (entity.ImageMetadata, error) {
	img, format, err := codec.Decode(raw)
	if err != nil {
		return entity.ImageMetadata{}, fmt.Errorf("decode: %w", err)
	}

	meta := entity.ImageMetadata{
		UserID:    userID,
		Timestamp: i.next(),
		Format:    format,
		Size:      codec.Describe(img),
	}
	key := meta.ObjectKey()

	putCtx, cancel := context.WithTimeout(ctx, i.timeout)
	err = i.blobs.Put(putCtx, key, raw, meta.ContentType())
	cancel()
	if err != nil {
		return entity.ImageMetadata{}, fmt.Errorf("put blob: %w", err)
	}

	recCtx, cancel := context.WithTimeout(ctx, i.timeout)
	err = i.records.Put(recCtx, meta)
	cancel()
	if err != nil {
		i.logger.Error(
			"metadata write failed after blob write, blob orphaned",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)

		return entity.ImageMetadata{}, &entity.PartialFailureError{Op: "upload", Key: key, Err: err}
	}

	return meta, nil
}

// Fetch returns the metadata record and the raw blob bytes for one
// image. A record whose blob is gone reports the drift as the blob
// store's error instead of pretending the image exists.
func (i *Images) Fetch(ctx context.Context, userID string, timestamp int64) (entity.Image, error) {
	getCtx, cancel := context.WithTimeout(ctx, i.timeout)
	meta, err := i.records.Get(getCtx, userID, timestamp)
	cancel()
	if err != nil {
		return entity.Image{}, fmt.Errorf("get record: %w", err)
	}

	blobCtx, cancel := context.WithTimeout(ctx, i.timeout)
	data, err := i.blobs.Get(blobCtx, meta.ObjectKey())
	cancel()
	if err != nil {
		return entity.Image{}, fmt.Errorf("get blob: %w", err)
	}

	return entity.Image{Metadata: meta, Data: data}, nil
}

// Thumbnails lists every image in the user's partition as a 150x150
// JPEG. Thumbnails are regenerated from the original blob on every
// call, nothing is persisted. One broken image does not hide the
// rest: failed entries are logged and skipped.
func (i *Images) Thumbnails(ctx context.Context, userID string) ([]entity.Thumbnail, error) {
	listCtx, cancel := context.WithTimeout(ctx, i.timeout)
	metas, err := i.records.List(listCtx, userID)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	var thumbnails = make([]entity.Thumbnail, 0, len(metas))
	for _, meta := range metas {
		data, err := i.thumbnail(ctx, meta)
		if err != nil {
			i.logger.Error(
				"skip thumbnail",
				slog.String("key", meta.ObjectKey()),
				slog.String("error", err.Error()),
			)
			continue
		}

		thumbnails = append(thumbnails, entity.Thumbnail{
			Timestamp: meta.Timestamp,
			Data:      data,
		})
	}

	return thumbnails, nil
}

func (i *Images) thumbnail(ctx context.Context, meta entity.ImageMetadata) ([]byte, error) {
	blobCtx, cancel := context.WithTimeout(ctx, i.timeout)
	raw, err := i.blobs.Get(blobCtx, meta.ObjectKey())
	cancel()
	if err != nil {
		return nil, fmt.Errorf("get blob: %w", err)
	}

	img, _, err := codec.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	data, err := codec.Thumbnail(img, thumbnailWidth, thumbnailHeight)
	if err != nil {
		return nil, fmt.Errorf("thumbnail: %w", err)
	}

	return data, nil
}

// Delete removes the blob and then the record. The record delete is
// attempted even when the blob delete failed, so a dangling record
// never outlives a delete; the blob failure is still surfaced.
func (i *Images) Delete(ctx context.Context, userID string, timestamp int64) error {
	getCtx, cancel := context.WithTimeout(ctx, i.timeout)
	meta, err := i.records.Get(getCtx, userID, timestamp)
	cancel()
	if err != nil {
		return fmt.Errorf("get record: %w", err)
	}
	key := meta.ObjectKey()

	blobCtx, cancel := context.WithTimeout(ctx, i.timeout)
	blobErr := i.blobs.Delete(blobCtx, key)
	cancel()

	recCtx, cancel := context.WithTimeout(ctx, i.timeout)
	err = i.records.Delete(recCtx, userID, timestamp)
	cancel()
	if err != nil {
		if blobErr != nil {
			err = errors.Join(err, blobErr)
		}

		return fmt.Errorf("delete record: %w", err)
	}

	if blobErr != nil {
		i.logger.Error(
			"blob delete failed, record removed, blob left behind",
			slog.String("key", key),
			slog.String("error", blobErr.Error()),
		)

		return &entity.PartialFailureError{Op: "delete", Key: key, Err: blobErr}
	}

	return nil
}
