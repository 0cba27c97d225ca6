package datastore

import (
	"context"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ThrottleConfig holds I/O limits for a wrapped store.
type ThrottleConfig struct {
	// MaxConcurrent is the maximum number of in-flight store calls.
	// If 0, defaults to 1.
	MaxConcurrent int64

	// BytesPerSec is the maximum payload throughput.
	// If 0, unlimited.
	BytesPerSec int64
}

// Throttled wraps a Store with concurrency and byte-rate limits, keeping
// bulk loads from starving whatever shares the backing storage. Limits
// block the calling goroutine; ctx cancellation aborts the wait.
type Throttled struct {
	inner   Store
	sem     *semaphore.Weighted
	limiter *rate.Limiter
}

// NewThrottled wraps inner with the given limits.
func NewThrottled(inner Store, cfg ThrottleConfig) *Throttled {
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 1
	}

	t := &Throttled{
		inner: inner,
		sem:   semaphore.NewWeighted(cfg.MaxConcurrent),
	}
	if cfg.BytesPerSec > 0 {
		t.limiter = rate.NewLimiter(rate.Limit(cfg.BytesPerSec), int(cfg.BytesPerSec))
	}
	return t
}

// waitBytes charges n payload bytes against the rate limiter, in bursts the
// limiter can grant.
func (t *Throttled) waitBytes(ctx context.Context, n int) error {
	if t.limiter == nil || n <= 0 {
		return nil
	}
	burst := t.limiter.Burst()
	for n > 0 {
		chunk := min(n, burst)
		if err := t.limiter.WaitN(ctx, chunk); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}

// PutArray implements Store.
func (t *Throttled) PutArray(ctx context.Context, name string, arr Array) error {
	if err := t.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer t.sem.Release(1)
	if err := t.waitBytes(ctx, len(arr.Data)); err != nil {
		return err
	}
	return t.inner.PutArray(ctx, name, arr)
}

// GetArray implements Store.
func (t *Throttled) GetArray(ctx context.Context, name string) (Array, error) {
	if err := t.sem.Acquire(ctx, 1); err != nil {
		return Array{}, err
	}
	defer t.sem.Release(1)
	arr, err := t.inner.GetArray(ctx, name)
	if err != nil {
		return Array{}, err
	}
	if err := t.waitBytes(ctx, len(arr.Data)); err != nil {
		return Array{}, err
	}
	return arr, nil
}

// PutAttrs implements Store.
func (t *Throttled) PutAttrs(ctx context.Context, name string, data []byte) error {
	if err := t.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer t.sem.Release(1)
	if err := t.waitBytes(ctx, len(data)); err != nil {
		return err
	}
	return t.inner.PutAttrs(ctx, name, data)
}

// GetAttrs implements Store.
func (t *Throttled) GetAttrs(ctx context.Context, name string) ([]byte, error) {
	if err := t.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer t.sem.Release(1)
	return t.inner.GetAttrs(ctx, name)
}

// Delete implements Store.
func (t *Throttled) Delete(ctx context.Context, name string) error {
	if err := t.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer t.sem.Release(1)
	return t.inner.Delete(ctx, name)
}

// List implements Store.
func (t *Throttled) List(ctx context.Context, prefix string) ([]string, error) {
	if err := t.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer t.sem.Release(1)
	return t.inner.List(ctx, prefix)
}
