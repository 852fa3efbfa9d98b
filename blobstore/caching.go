package blobstore

import (
	"bytes"
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/protfeat/internal/cache"
)

// CachingStore wraps a Store with an in-memory LRU of blob contents.
// Reads are served from memory when possible; writes go to the inner store
// first and then refresh the cached copy.
type CachingStore struct {
	inner Store
	cache *cache.LRU
}

var _ Store = (*CachingStore)(nil)

// NewCachingStore creates a CachingStore holding up to capacity bytes.
func NewCachingStore(inner Store, capacity int64) *CachingStore {
	return &CachingStore{
		inner: inner,
		cache: cache.NewLRU(capacity),
	}
}

// Get returns the blob from memory or the inner store.
func (s *CachingStore) Get(ctx context.Context, name string) ([]byte, error) {
	if b, ok := s.cache.Get(name); ok {
		return bytes.Clone(b), nil
	}
	b, err := s.inner.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	s.cache.Set(name, bytes.Clone(b))
	return b, nil
}

// GetMany fetches names in parallel. Missing blobs are absent from the
// result; any other error fails the call.
func (s *CachingStore) GetMany(ctx context.Context, names []string) (map[string][]byte, error) {
	var (
		mu  sync.Mutex
		out = make(map[string][]byte, len(names))
	)

	g, gctx := errgroup.WithContext(ctx)
	// Limit concurrency to avoid FD exhaustion or rate limits
	g.SetLimit(16)

	for _, name := range names {
		g.Go(func() error {
			b, err := s.Get(gctx, name)
			if errors.Is(err, ErrNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			mu.Lock()
			out[name] = b
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Put writes through to the inner store.
func (s *CachingStore) Put(ctx context.Context, name string, data []byte) error {
	if err := s.inner.Put(ctx, name, data); err != nil {
		s.cache.Remove(name)
		return err
	}
	s.cache.Set(name, bytes.Clone(data))
	return nil
}

// Delete removes the blob from memory and the inner store.
func (s *CachingStore) Delete(ctx context.Context, name string) error {
	s.cache.Remove(name)
	return s.inner.Delete(ctx, name)
}

// List delegates to the inner store.
func (s *CachingStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

// Stats returns the memory hit and miss counts.
func (s *CachingStore) Stats() (hits, misses int64) {
	return s.cache.Stats()
}
