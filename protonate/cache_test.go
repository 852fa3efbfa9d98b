package protonate

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/protfeat/blobstore"
	"github.com/hupe1980/protfeat/codec"
	"github.com/hupe1980/protfeat/hbond"
	"github.com/hupe1980/protfeat/internal/compress"
	"github.com/hupe1980/protfeat/structure"
	"github.com/hupe1980/protfeat/testutil"
)

func TestCacheHit(t *testing.T) {
	for _, typ := range []compress.Type{compress.None, compress.LZ4, compress.ZSTD} {
		t.Run(typ.String(), func(t *testing.T) {
			next := &counting{}
			store := blobstore.NewMemoryStore()
			c := NewCache(next, store, func(o *CacheOptions) { o.Compression = typ })

			ctx := context.Background()
			first, err := c.AddHydrogens(ctx, heavy())
			require.NoError(t, err)
			second, err := c.AddHydrogens(ctx, heavy())
			require.NoError(t, err)

			assert.Equal(t, int64(1), next.calls.Load())
			assert.Equal(t, first.Atoms(), second.Atoms())
			assert.Equal(t, CacheStats{Hits: 1, Misses: 1}, c.Stats())
			assert.Equal(t, 1, store.Len())
		})
	}
}

func TestCacheKeepsCallerName(t *testing.T) {
	c := NewCache(&counting{}, blobstore.NewMemoryStore())
	ctx := context.Background()

	_, err := c.AddHydrogens(ctx, heavy())
	require.NoError(t, err)

	renamed, err := structure.New("renamed", heavy().Atoms())
	require.NoError(t, err)

	got, err := c.AddHydrogens(ctx, renamed)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Name())
	assert.Equal(t, int64(1), c.Stats().Hits)
}

func TestCacheKey(t *testing.T) {
	s := heavy()

	a := NewCache(&counting{}, blobstore.NewMemoryStore())
	b := NewCache(&counting{}, blobstore.NewMemoryStore(), func(o *CacheOptions) { o.Namespace = "charmm" })
	j := NewCache(&counting{}, blobstore.NewMemoryStore(), func(o *CacheOptions) { o.Codec = codec.JSON{} })

	assert.Equal(t, "h-go-json-default-"+s.Fingerprint(), a.Key(s))
	assert.NotEqual(t, a.Key(s), b.Key(s))
	assert.NotEqual(t, a.Key(s), j.Key(s))

	other := testutil.NewRNG(1).Protein("other", 3, 10)
	assert.NotEqual(t, a.Key(s), a.Key(other))
}

func TestCacheCorruptEntryIsMiss(t *testing.T) {
	next := &counting{}
	store := blobstore.NewMemoryStore()
	c := NewCache(next, store)
	ctx := context.Background()

	s := heavy()
	require.NoError(t, store.Put(ctx, c.Key(s), []byte("garbage")))

	got, err := c.AddHydrogens(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, s.Len()+1, got.Len())
	assert.Equal(t, int64(1), next.calls.Load())
	assert.Equal(t, CacheStats{Misses: 1, Corrupt: 1}, c.Stats())

	// The bad entry was replaced.
	_, err = c.AddHydrogens(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, int64(1), c.Stats().Hits)
}

func TestCacheDoesNotStoreFailures(t *testing.T) {
	boom := errors.New("tool failed")
	calls := 0
	p := hbond.ProtonatorFunc(func(context.Context, *structure.Structure) (*structure.Structure, error) {
		calls++
		return nil, boom
	})

	store := blobstore.NewMemoryStore()
	c := NewCache(p, store)

	for range 2 {
		_, err := c.AddHydrogens(context.Background(), heavy())
		assert.ErrorIs(t, err, boom)
	}
	assert.Equal(t, 2, calls)
	assert.Zero(t, store.Len())
}

type failingStore struct{ blobstore.MemoryStore }

func (*failingStore) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("store offline")
}

func (*failingStore) Put(context.Context, string, []byte) error {
	return errors.New("store offline")
}

func TestCacheStoreErrorsDegradeToMiss(t *testing.T) {
	next := &counting{}
	c := NewCache(next, &failingStore{})

	_, err := c.AddHydrogens(context.Background(), heavy())
	require.NoError(t, err)
	assert.Equal(t, CacheStats{Misses: 1, StoreErrors: 2}, c.Stats())
}

func TestCachePersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	next := &counting{}
	_, err := NewCache(next, blobstore.NewLocalStore(dir)).AddHydrogens(ctx, heavy())
	require.NoError(t, err)

	again := NewCache(next, blobstore.NewLocalStore(dir))
	got, err := again.AddHydrogens(ctx, heavy())
	require.NoError(t, err)

	assert.Equal(t, int64(1), next.calls.Load())
	assert.Equal(t, int64(1), again.Stats().Hits)
	assert.True(t, got.Atom(got.Len()-1).IsHydrogen())
}

func TestCacheCollapsesConcurrentMisses(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	release := make(chan struct{})
	inner := &counting{}
	p := hbond.ProtonatorFunc(func(ctx context.Context, s *structure.Structure) (*structure.Structure, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		<-release
		return inner.AddHydrogens(ctx, s)
	})

	c := NewCache(p, blobstore.NewMemoryStore())

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.AddHydrogens(context.Background(), heavy())
			errs <- err
		}()
	}

	// Let the goroutines pile up behind the first call.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls)
	assert.Equal(t, int64(1), c.Stats().Misses)
}

func TestCacheCallerCancellationIsPrivate(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	inner := &counting{}
	p := hbond.ProtonatorFunc(func(ctx context.Context, s *structure.Structure) (*structure.Structure, error) {
		once.Do(func() { close(started) })
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		return inner.AddHydrogens(ctx, s)
	})

	c := NewCache(p, blobstore.NewMemoryStore())

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := c.AddHydrogens(ctxA, heavy())
		errA <- err
	}()
	<-started

	errB := make(chan error, 1)
	go func() {
		_, err := c.AddHydrogens(context.Background(), heavy())
		errB <- err
	}()

	// Give B time to join the call in flight before A gives up.
	time.Sleep(50 * time.Millisecond)
	cancelA()
	assert.ErrorIs(t, <-errA, context.Canceled)

	close(release)
	require.NoError(t, <-errB)
	assert.Equal(t, int64(1), inner.calls.Load())
}

func TestCacheTimeoutBoundsSharedCall(t *testing.T) {
	p := hbond.ProtonatorFunc(func(ctx context.Context, _ *structure.Structure) (*structure.Structure, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	c := NewCache(p, blobstore.NewMemoryStore(), func(o *CacheOptions) { o.Timeout = 10 * time.Millisecond })

	_, err := c.AddHydrogens(context.Background(), heavy())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCachePrefetch(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	next := &counting{}
	_, err := NewCache(next, blobstore.NewLocalStore(dir)).AddHydrogens(ctx, heavy())
	require.NoError(t, err)

	store := blobstore.NewCachingStore(blobstore.NewLocalStore(dir), 1<<20)
	c := NewCache(next, store)

	other := testutil.NewRNG(1).Protein("other", 3, 10)
	n, err := c.Prefetch(ctx, []*structure.Structure{heavy(), nil, other, heavy()})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	hits, misses := store.Stats()
	assert.Zero(t, hits)
	assert.Equal(t, int64(2), misses)

	_, err = c.AddHydrogens(ctx, heavy())
	require.NoError(t, err)

	hits, _ = store.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), next.calls.Load())
	assert.Equal(t, int64(1), c.Stats().Hits)
}

func TestCachePrefetchWithoutBatchStore(t *testing.T) {
	c := NewCache(&counting{}, blobstore.NewMemoryStore())

	n, err := c.Prefetch(context.Background(), []*structure.Structure{heavy()})
	require.NoError(t, err)
	assert.Zero(t, n)
}
