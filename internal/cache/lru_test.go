package cache

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLRUEviction(t *testing.T) {
	c := NewLRU(30)

	c.Set("a", make([]byte, 10))
	c.Set("b", make([]byte, 10))
	c.Set("c", make([]byte, 10))
	assert.Equal(t, int64(30), c.Size())

	// Touch a so b becomes the oldest.
	_, ok := c.Get("a")
	assert.True(t, ok)

	c.Set("d", make([]byte, 10))
	_, ok = c.Get("b")
	assert.False(t, ok, "least recently used entry is evicted")
	for _, k := range []string{"a", "c", "d"} {
		_, ok := c.Get(k)
		assert.True(t, ok, k)
	}
	assert.Equal(t, 3, c.Len())
}

func TestLRUEdgeCases(t *testing.T) {
	c := NewLRU(50)

	// Item larger than capacity.
	c.Set("big", make([]byte, 60))
	_, ok := c.Get("big")
	assert.False(t, ok)
	assert.Zero(t, c.Size())

	// Update existing item.
	c.Set("k", make([]byte, 10))
	assert.Equal(t, int64(10), c.Size())
	c.Set("k", make([]byte, 20))
	assert.Equal(t, int64(20), c.Size())
	c.Set("k", make([]byte, 5))
	assert.Equal(t, int64(5), c.Size())

	// Growing an entry beyond capacity drops it.
	c.Set("k", make([]byte, 51))
	assert.Zero(t, c.Len())
	assert.Zero(t, c.Size())
}

func TestLRUUpdateEvictsOthers(t *testing.T) {
	c := NewLRU(20)
	c.Set("a", make([]byte, 10))
	c.Set("b", make([]byte, 10))

	c.Set("b", make([]byte, 15))
	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, int64(15), c.Size())
}

func TestLRURemoveAndInvalidate(t *testing.T) {
	c := NewLRU(100)
	for i := range 5 {
		c.Set(fmt.Sprintf("h-%d", i), []byte{byte(i)})
	}
	c.Set("other", []byte{9})

	c.Remove("h-0")
	c.Remove("missing")
	assert.Equal(t, 5, c.Len())

	c.Invalidate(func(k string) bool { return strings.HasPrefix(k, "h-") })
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, int64(1), c.Size())
}

func TestLRUStats(t *testing.T) {
	c := NewLRU(10)
	c.Set("a", []byte("x"))

	c.Get("a")
	c.Get("a")
	c.Get("b")

	hits, misses := c.Stats()
	assert.Equal(t, int64(2), hits)
	assert.Equal(t, int64(1), misses)
}

func TestLRUConcurrent(t *testing.T) {
	c := NewLRU(1 << 10)

	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 200 {
				k := fmt.Sprintf("%d-%d", g, i%20)
				c.Set(k, make([]byte, 16))
				c.Get(k)
			}
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Size(), int64(1<<10))
}
