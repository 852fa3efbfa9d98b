package pool

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerPoolSubmit(t *testing.T) {
	wp := NewWorkerPool(4)
	defer wp.Close()

	var (
		wg    sync.WaitGroup
		count atomic.Int32
	)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		require.NoError(t, wp.Submit(context.Background(), func() {
			defer wg.Done()
			count.Add(1)
		}))
	}
	wg.Wait()

	assert.Equal(t, int32(100), count.Load())
}

func TestWorkerPoolDefaultSize(t *testing.T) {
	wp := NewWorkerPool(0)
	defer wp.Close()

	assert.Equal(t, runtime.GOMAXPROCS(0), wp.Size())
}

func TestWorkerPoolClose(t *testing.T) {
	wp := NewWorkerPool(2)

	var count atomic.Int32
	for i := 0; i < 10; i++ {
		require.NoError(t, wp.Submit(context.Background(), func() { count.Add(1) }))
	}

	wp.Close()
	wp.Close()

	assert.Equal(t, int32(10), count.Load(), "queued work drains on close")
	assert.ErrorIs(t, wp.Submit(context.Background(), func() {}), ErrClosed)
}

func TestWorkerPoolSubmitCanceled(t *testing.T) {
	wp := NewWorkerPool(1)
	defer wp.Close()

	block := make(chan struct{})
	defer close(block)

	// Occupy the worker and fill the buffer.
	require.NoError(t, wp.Submit(context.Background(), func() { <-block }))
	for i := 0; i < 2; i++ {
		require.NoError(t, wp.Submit(context.Background(), func() {}))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var err error
	for i := 0; i < 3 && err == nil; i++ {
		err = wp.Submit(ctx, func() {})
	}
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWorkerPoolMap(t *testing.T) {
	wp := NewWorkerPool(3)
	defer wp.Close()

	out := make([]int, 50)
	wp.Map(context.Background(), len(out), func(i int) {
		out[i] = i * i
	}, func(int, error) {
		t.Fatal("unexpected skip")
	})

	for i, v := range out {
		assert.Equal(t, i*i, v)
	}
}

func TestWorkerPoolMapSkipsAfterClose(t *testing.T) {
	wp := NewWorkerPool(2)
	wp.Close()

	var skipped []int
	wp.Map(context.Background(), 3, func(int) {
		t.Fatal("closed pool ran a task")
	}, func(i int, err error) {
		assert.ErrorIs(t, err, ErrClosed)
		skipped = append(skipped, i)
	})

	assert.Equal(t, []int{0, 1, 2}, skipped)
}
