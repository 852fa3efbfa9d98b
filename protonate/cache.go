package protonate

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/golang/geo/r3"
	"golang.org/x/sync/singleflight"

	"github.com/hupe1980/protfeat/blobstore"
	"github.com/hupe1980/protfeat/codec"
	"github.com/hupe1980/protfeat/hbond"
	"github.com/hupe1980/protfeat/internal/compress"
	"github.com/hupe1980/protfeat/structure"
)

// CacheOptions configures a Cache.
type CacheOptions struct {
	// Codec serializes entries. Defaults to codec.Default.
	Codec codec.Codec
	// Compression is applied to encoded entries. Defaults to ZSTD.
	Compression compress.Type
	// Namespace separates entries produced by different protonator
	// settings, typically Config.Digest().
	Namespace string
	// Timeout bounds a shared protonation call, which runs detached from
	// the callers waiting on it. Zero disables the bound.
	Timeout time.Duration
}

// DefaultCacheOptions returns the default cache options.
func DefaultCacheOptions() CacheOptions {
	return CacheOptions{
		Codec:       codec.Default,
		Compression: compress.ZSTD,
		Namespace:   "default",
		Timeout:     hbond.DefaultProtonationTimeout,
	}
}

// CacheStats counts cache outcomes.
type CacheStats struct {
	Hits   int64
	Misses int64
	// Corrupt counts unreadable entries, which are treated as misses.
	Corrupt int64
	// StoreErrors counts failed store reads and writes.
	StoreErrors int64
}

// Cache memoizes a Protonator in a blobstore.Store, keyed by the structure
// fingerprint. Concurrent misses for the same structure share one call,
// and each caller stops waiting when its own context is done.
// Store failures never fail a protonation; they degrade to misses.
type Cache struct {
	next  hbond.Protonator
	store blobstore.Store
	opts  CacheOptions

	group singleflight.Group

	hits        atomic.Int64
	misses      atomic.Int64
	corrupt     atomic.Int64
	storeErrors atomic.Int64
}

var _ hbond.Protonator = (*Cache)(nil)

// NewCache wraps next with a cache backed by store.
func NewCache(next hbond.Protonator, store blobstore.Store, optFns ...func(o *CacheOptions)) *Cache {
	opts := DefaultCacheOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Codec == nil {
		opts.Codec = codec.Default
	}
	if opts.Namespace == "" {
		opts.Namespace = "default"
	}

	return &Cache{next: next, store: store, opts: opts}
}

// Key returns the store name under which the protonated form of s lives.
func (c *Cache) Key(s *structure.Structure) string {
	return fmt.Sprintf("h-%s-%s-%s", c.opts.Codec.Name(), c.opts.Namespace, s.Fingerprint())
}

// Stats returns a snapshot of the counters.
func (c *Cache) Stats() CacheStats {
	return CacheStats{
		Hits:        c.hits.Load(),
		Misses:      c.misses.Load(),
		Corrupt:     c.corrupt.Load(),
		StoreErrors: c.storeErrors.Load(),
	}
}

// AddHydrogens returns the cached protonated structure or delegates and
// stores the result. The result always carries the name of s.
func (c *Cache) AddHydrogens(ctx context.Context, s *structure.Structure) (*structure.Structure, error) {
	key := c.Key(s)

	if p, ok := c.load(ctx, key, s.Name()); ok {
		c.hits.Add(1)
		return p, nil
	}

	ch := c.group.DoChan(key, func() (any, error) {
		c.misses.Add(1)

		sctx, cancel := c.sharedContext(ctx)
		defer cancel()

		p, err := c.next.AddHydrogens(sctx, s)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, errors.New("protonator returned no structure")
		}
		c.save(sctx, key, p)
		return p, nil
	})

	var r singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r = <-ch:
	}
	if r.Err != nil {
		return nil, r.Err
	}

	p := r.Val.(*structure.Structure)
	if p.Name() == s.Name() {
		return p, nil
	}
	return structure.New(s.Name(), p.Atoms())
}

// batchGetter is implemented by stores that fetch many blobs at once, such
// as blobstore.CachingStore.
type batchGetter interface {
	GetMany(ctx context.Context, names []string) (map[string][]byte, error)
}

// Prefetch loads the entries of structures in one batch so that the
// following AddHydrogens calls are served by the store's memory tier. It
// returns the number of entries found and is a no-op for stores without
// batch reads.
func (c *Cache) Prefetch(ctx context.Context, structures []*structure.Structure) (int, error) {
	bg, ok := c.store.(batchGetter)
	if !ok {
		return 0, nil
	}

	keys := make([]string, 0, len(structures))
	seen := make(map[string]struct{}, len(structures))
	for _, s := range structures {
		if s == nil {
			continue
		}
		k := c.Key(s)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}

	found, err := bg.GetMany(ctx, keys)
	if err != nil {
		c.storeErrors.Add(1)
		return 0, err
	}
	return len(found), nil
}

// sharedContext keeps the values of ctx but drops its cancellation.
func (c *Cache) sharedContext(ctx context.Context) (context.Context, context.CancelFunc) {
	sctx := context.WithoutCancel(ctx)
	if c.opts.Timeout > 0 {
		return context.WithTimeout(sctx, c.opts.Timeout)
	}
	return context.WithCancel(sctx)
}

type atomRecord struct {
	Chain   string  `json:"c"`
	Residue int     `json:"r"`
	ResName string  `json:"rn"`
	Name    string  `json:"n"`
	Element string  `json:"e,omitempty"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Z       float64 `json:"z"`
}

func (c *Cache) load(ctx context.Context, key, name string) (*structure.Structure, bool) {
	block, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, blobstore.ErrNotFound) {
			c.storeErrors.Add(1)
		}
		return nil, false
	}

	p, err := c.decode(block, name)
	if err != nil {
		c.corrupt.Add(1)
		if err := c.store.Delete(ctx, key); err != nil {
			c.storeErrors.Add(1)
		}
		return nil, false
	}
	return p, true
}

func (c *Cache) decode(block []byte, name string) (*structure.Structure, error) {
	data, err := compress.Decode(block)
	if err != nil {
		return nil, err
	}

	var records []atomRecord
	if err := c.opts.Codec.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("empty cache entry")
	}

	atoms := make([]structure.Atom, len(records))
	for i, r := range records {
		atoms[i] = structure.Atom{
			Index:       i,
			ChainID:     r.Chain,
			ResidueID:   r.Residue,
			ResidueName: r.ResName,
			AtomName:    r.Name,
			Element:     r.Element,
			Coord:       r3.Vector{X: r.X, Y: r.Y, Z: r.Z},
		}
	}
	return structure.New(name, atoms)
}

func (c *Cache) save(ctx context.Context, key string, p *structure.Structure) {
	records := make([]atomRecord, 0, p.Len())
	for _, a := range p.All() {
		records = append(records, atomRecord{
			Chain:   a.ChainID,
			Residue: a.ResidueID,
			ResName: a.ResidueName,
			Name:    a.AtomName,
			Element: a.Element,
			X:       a.Coord.X,
			Y:       a.Coord.Y,
			Z:       a.Coord.Z,
		})
	}

	data, err := c.opts.Codec.Marshal(records)
	if err != nil {
		c.storeErrors.Add(1)
		return
	}
	block, err := compress.Encode(data, c.opts.Compression)
	if err != nil {
		c.storeErrors.Add(1)
		return
	}
	if err := c.store.Put(ctx, key, block); err != nil {
		c.storeErrors.Add(1)
	}
}
