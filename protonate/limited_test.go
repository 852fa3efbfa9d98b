package protonate

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/protfeat/hbond"
	"github.com/hupe1980/protfeat/resource"
	"github.com/hupe1980/protfeat/structure"
)

func TestLimitedBoundsConcurrency(t *testing.T) {
	var running, peak atomic.Int64
	inner := &counting{}
	p := hbond.ProtonatorFunc(func(ctx context.Context, s *structure.Structure) (*structure.Structure, error) {
		n := running.Add(1)
		defer running.Add(-1)
		for {
			old := peak.Load()
			if n <= old || peak.CompareAndSwap(old, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		return inner.AddHydrogens(ctx, s)
	})

	rc := resource.NewController(resource.Config{MaxProcesses: 2})
	l := NewLimited(p, rc)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.AddHydrogens(context.Background(), heavy())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, peak.Load(), int64(2))
	assert.Equal(t, int64(10), inner.calls.Load())
	assert.Equal(t, int64(10), rc.Spawned())
	assert.Zero(t, rc.InFlight())
}

func TestLimitedCanceledWhileWaiting(t *testing.T) {
	rc := resource.NewController(resource.Config{MaxProcesses: 1})
	release, err := rc.Acquire(context.Background())
	require.NoError(t, err)
	defer release()

	inner := &counting{}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = NewLimited(inner, rc).AddHydrogens(ctx, heavy())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Zero(t, inner.calls.Load())
}

func TestLimitedNilController(t *testing.T) {
	inner := &counting{}
	got, err := NewLimited(inner, nil).AddHydrogens(context.Background(), heavy())
	require.NoError(t, err)
	assert.Equal(t, heavy().Len()+1, got.Len())
}
