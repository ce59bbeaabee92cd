// Package lazyconn holds a backend handle that is opened on first use and
// shared by every caller afterwards.
package lazyconn

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// OpenFunc dials a backend. It must honour ctx.
type OpenFunc[T any] func(ctx context.Context) (T, error)

// Conn opens its value at most once at a time. Concurrent callers that arrive
// while an open is in flight wait for that same attempt. A failed attempt is
// not remembered: the next call dials again.
type Conn[T any] struct {
	open    OpenFunc[T]
	timeout time.Duration

	mu    sync.RWMutex
	value T
	ready bool

	group singleflight.Group
}

// New builds a Conn. timeout bounds a single open attempt; <= 0 means
// the attempt is bounded only by the caller's context.
func New[T any](open OpenFunc[T], timeout time.Duration) *Conn[T] {
	return &Conn[T]{open: open, timeout: timeout}
}

// Get returns the shared value, opening it if needed.
//
// The open attempt itself is detached from the caller's cancellation so that
// one impatient caller cannot fail the attempt for everyone waiting on it.
// The caller still stops waiting when its own ctx is done.
func (c *Conn[T]) Get(ctx context.Context) (T, error) {
	if v, ok := c.cached(); ok {
		return v, nil
	}

	ch := c.group.DoChan("open", func() (any, error) {
		if v, ok := c.cached(); ok {
			return v, nil
		}

		octx := context.WithoutCancel(ctx)
		if c.timeout > 0 {
			var cancel context.CancelFunc
			octx, cancel = context.WithTimeout(octx, c.timeout)
			defer cancel()
		}

		v, err := c.open(octx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.value, c.ready = v, true
		c.mu.Unlock()
		return v, nil
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

// Peek returns the value without opening it.
func (c *Conn[T]) Peek() (T, bool) {
	return c.cached()
}

// Reset forgets the current value and returns it so the caller can release
// it. The next Get dials again.
func (c *Conn[T]) Reset() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.value, c.ready
	var zero T
	c.value, c.ready = zero, false
	return v, ok
}

func (c *Conn[T]) cached() (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value, c.ready
}
