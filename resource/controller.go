package resource

import (
	"context"
	"errors"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ErrNoSlot is returned by TryAcquire when every process slot is busy.
var ErrNoSlot = errors.New("resource: no process slot available")

// Config holds limits on external processes.
type Config struct {
	// MaxProcesses is the maximum number of concurrently running processes.
	// If 0, defaults to runtime.GOMAXPROCS(0).
	MaxProcesses int64

	// SpawnsPerSecond limits how fast new processes start.
	// If 0, unlimited.
	SpawnsPerSecond float64

	// SpawnBurst is the number of processes that may start back to back.
	// If 0, defaults to 1.
	SpawnBurst int
}

// Controller bounds external process concurrency and spawn rate.
// A nil *Controller imposes no limits.
type Controller struct {
	cfg Config

	slots    *semaphore.Weighted
	inFlight atomic.Int64
	spawned  atomic.Int64

	spawnLimiter *rate.Limiter // nil if unlimited
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxProcesses <= 0 {
		cfg.MaxProcesses = int64(runtime.GOMAXPROCS(0))
	}
	if cfg.SpawnBurst <= 0 {
		cfg.SpawnBurst = 1
	}

	c := &Controller{
		cfg:   cfg,
		slots: semaphore.NewWeighted(cfg.MaxProcesses),
	}

	if cfg.SpawnsPerSecond > 0 {
		c.spawnLimiter = rate.NewLimiter(rate.Limit(cfg.SpawnsPerSecond), cfg.SpawnBurst)
	}

	return c
}

// Config returns the effective configuration.
func (c *Controller) Config() Config {
	if c == nil {
		return Config{}
	}
	return c.cfg
}

// Acquire blocks until a process slot is free and the spawn rate allows a
// new process, or ctx is done. The returned function releases the slot and
// must be called exactly once.
func (c *Controller) Acquire(ctx context.Context) (func(), error) {
	if c == nil {
		return func() {}, ctx.Err()
	}

	if err := c.slots.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	if c.spawnLimiter != nil {
		if err := c.spawnLimiter.Wait(ctx); err != nil {
			c.slots.Release(1)
			return nil, err
		}
	}

	return c.started(), nil
}

// TryAcquire reserves a slot without blocking. It ignores the spawn rate
// only if a token is immediately available.
func (c *Controller) TryAcquire() (func(), error) {
	if c == nil {
		return func() {}, nil
	}

	if !c.slots.TryAcquire(1) {
		return nil, ErrNoSlot
	}
	if c.spawnLimiter != nil && !c.spawnLimiter.Allow() {
		c.slots.Release(1)
		return nil, ErrNoSlot
	}

	return c.started(), nil
}

func (c *Controller) started() func() {
	c.inFlight.Add(1)
	c.spawned.Add(1)

	var released atomic.Bool
	return func() {
		if released.CompareAndSwap(false, true) {
			c.inFlight.Add(-1)
			c.slots.Release(1)
		}
	}
}

// InFlight returns the number of currently held slots.
func (c *Controller) InFlight() int64 {
	if c == nil {
		return 0
	}
	return c.inFlight.Load()
}

// Spawned returns the total number of slots ever granted.
func (c *Controller) Spawned() int64 {
	if c == nil {
		return 0
	}
	return c.spawned.Load()
}
