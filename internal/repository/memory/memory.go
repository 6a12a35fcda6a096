// Package memory holds in-process implementations of both stores.
// They back the tests and local runs without AWS credentials, and can
// be made to fail on demand to exercise partial-failure paths.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jenusanjay/imageservice/internal/entity"
)

type Blobs struct {
	mu      sync.RWMutex
	objects map[string][]byte

	// FailPut, FailDelete make the next matching call fail with
	// entity.ErrStorage when non-nil and returning true for the key.
	FailPut    func(key string) bool
	FailDelete func(key string) bool
}

func NewBlobs() *Blobs {
	return &Blobs{
		objects: make(map[string][]byte),
	}
}

func (b *Blobs) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if b.FailPut != nil && b.FailPut(key) {
		return fmt.Errorf("put %s: %w", key, entity.ErrStorage)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.objects[key] = append([]byte(nil), data...)

	return nil
}

func (b *Blobs) Get(ctx context.Context, key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, ok := b.objects[key]
	if !ok {
		return nil, fmt.Errorf("get %s: %w", key, entity.ErrNotFound)
	}

	return append([]byte(nil), data...), nil
}

func (b *Blobs) Delete(ctx context.Context, key string) error {
	if b.FailDelete != nil && b.FailDelete(key) {
		return fmt.Errorf("delete %s: %w", key, entity.ErrStorage)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.objects, key)

	return nil
}

// Len reports the number of stored objects.
func (b *Blobs) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.objects)
}

type metaKey struct {
	userID    string
	timestamp int64
}

type Records struct {
	mu      sync.RWMutex
	records map[metaKey]entity.ImageMetadata

	// FailPut makes the next Put fail with entity.ErrStorage when it
	// returns true for the record.
	FailPut func(meta entity.ImageMetadata) bool
}

func NewRecords() *Records {
	return &Records{
		records: make(map[metaKey]entity.ImageMetadata),
	}
}

func (r *Records) Put(ctx context.Context, meta entity.ImageMetadata) error {
	if r.FailPut != nil && r.FailPut(meta) {
		return fmt.Errorf("put %s/%d: %w", meta.UserID, meta.Timestamp, entity.ErrStorage)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[metaKey{meta.UserID, meta.Timestamp}] = meta

	return nil
}

func (r *Records) Get(ctx context.Context, userID string, timestamp int64) (entity.ImageMetadata, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	meta, ok := r.records[metaKey{userID, timestamp}]
	if !ok {
		return entity.ImageMetadata{}, fmt.Errorf("get %s/%d: %w", userID, timestamp, entity.ErrNotFound)
	}

	return meta, nil
}

func (r *Records) List(ctx context.Context, userID string) ([]entity.ImageMetadata, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var metas = []entity.ImageMetadata{}
	for k, meta := range r.records {
		if k.userID == userID {
			metas = append(metas, meta)
		}
	}

	sort.Slice(metas, func(i, j int) bool { return metas[i].Timestamp < metas[j].Timestamp })

	return metas, nil
}

func (r *Records) Delete(ctx context.Context, userID string, timestamp int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.records, metaKey{userID, timestamp})

	return nil
}
