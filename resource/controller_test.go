package resource

import (
	"context"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControllerSlots(t *testing.T) {
	c := NewController(Config{MaxProcesses: 2})

	r1, err := c.Acquire(context.Background())
	require.NoError(t, err)
	r2, err := c.Acquire(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), c.InFlight())

	// Third blocks until the context expires.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = c.Acquire(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	_, err = c.TryAcquire()
	assert.ErrorIs(t, err, ErrNoSlot)

	r1()
	r1() // idempotent
	assert.Equal(t, int64(1), c.InFlight())

	r3, err := c.TryAcquire()
	require.NoError(t, err)

	r2()
	r3()
	assert.Zero(t, c.InFlight())
	assert.Equal(t, int64(3), c.Spawned())
}

func TestControllerDefaults(t *testing.T) {
	c := NewController(Config{})
	assert.Equal(t, int64(runtime.GOMAXPROCS(0)), c.Config().MaxProcesses)
	assert.Equal(t, 1, c.Config().SpawnBurst)
}

func TestControllerSpawnRate(t *testing.T) {
	c := NewController(Config{MaxProcesses: 10, SpawnsPerSecond: 1, SpawnBurst: 1})

	release, err := c.Acquire(context.Background())
	require.NoError(t, err)
	release()

	// The bucket is empty; a second spawn has to wait about a second.
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = c.Acquire(ctx)
	assert.Error(t, err)
	assert.Zero(t, c.InFlight(), "slot is returned when the rate wait fails")

	_, err = c.TryAcquire()
	assert.ErrorIs(t, err, ErrNoSlot)
}

func TestControllerBoundsConcurrency(t *testing.T) {
	c := NewController(Config{MaxProcesses: 3})

	var (
		mu   sync.Mutex
		peak int64
		wg   sync.WaitGroup
	)
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := c.Acquire(context.Background())
			if err != nil {
				return
			}
			defer release()

			mu.Lock()
			peak = max(peak, c.InFlight())
			mu.Unlock()
			time.Sleep(time.Millisecond)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, peak, int64(3))
	assert.Equal(t, int64(20), c.Spawned())
}

func TestNilController(t *testing.T) {
	var c *Controller

	release, err := c.Acquire(context.Background())
	require.NoError(t, err)
	release()

	release, err = c.TryAcquire()
	require.NoError(t, err)
	release()

	assert.Zero(t, c.InFlight())
	assert.Zero(t, c.Spawned())
	assert.Equal(t, Config{}, c.Config())
}
