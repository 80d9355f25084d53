// Package hook tracks the loading, error and data state of a lookup whose
// request depends on a key, re-issuing it when the key changes.
//
// Only the most recently issued request may commit: every issue bumps a
// generation counter, cancels the previous request's context and results
// carrying an older generation are dropped.
package hook

import (
	"context"
	"fmt"
	"sync"

	"livecounter-backend/internal/model"
)

// Producer performs the lookup for key. A returned error is treated like a
// failed response.
type Producer[K comparable, T any] func(ctx context.Context, key K) (model.ApiResponse[T], error)

// Infallible adapts a call that already reports failures in its response,
// such as the typed client methods.
func Infallible[K comparable, T any](f func(ctx context.Context, key K) model.ApiResponse[T]) Producer[K, T] {
	return func(ctx context.Context, key K) (model.ApiResponse[T], error) {
		return f(ctx, key), nil
	}
}

// Option configures a Call.
type Option[T any] func(*options[T])

type options[T any] struct {
	onChange func(model.ApiResponse[T])
}

// OnChange registers fn to observe every state transition in order. fn runs
// with the Call locked and must not call back into it.
func OnChange[T any](fn func(model.ApiResponse[T])) Option[T] {
	return func(o *options[T]) { o.onChange = fn }
}

// Call is the state holder for one bound lookup.
type Call[K comparable, T any] struct {
	parent  context.Context
	produce Producer[K, T]
	opts    options[T]

	mu     sync.Mutex
	key    K
	state  model.ApiResponse[T]
	gen    uint64
	cancel context.CancelFunc
	closed bool
	wg     sync.WaitGroup
}

// New creates a Call for key and issues the first request immediately.
// Cancelling ctx behaves like Close.
func New[K comparable, T any](ctx context.Context, key K, produce Producer[K, T], opts ...Option[T]) *Call[K, T] {
	c := &Call[K, T]{
		parent:  ctx,
		produce: produce,
		key:     key,
		state:   model.Loading[T](),
	}
	for _, o := range opts {
		o(&c.opts)
	}
	c.mu.Lock()
	c.issueLocked()
	c.mu.Unlock()
	return c
}

// State returns a snapshot of the current state.
func (c *Call[K, T]) State() model.ApiResponse[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Key returns the current dependency key.
func (c *Call[K, T]) Key() K {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.key
}

// SetKey switches to key and re-issues the request. Setting the current key
// again does nothing; use Refetch for that.
func (c *Call[K, T]) SetKey(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || key == c.key {
		return
	}
	c.key = key
	c.issueLocked()
}

// Refetch re-issues the request for the current key.
func (c *Call[K, T]) Refetch() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.issueLocked()
}

// Close cancels the in-flight request. Results arriving afterwards are
// discarded and the state is frozen.
func (c *Call[K, T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.gen++
	if c.cancel != nil {
		c.cancel()
	}
}

// Wait blocks until every issued request has returned.
func (c *Call[K, T]) Wait() {
	c.wg.Wait()
}

func (c *Call[K, T]) issueLocked() {
	if c.cancel != nil {
		c.cancel()
	}
	c.gen++
	gen := c.gen
	ctx, cancel := context.WithCancel(c.parent)
	c.cancel = cancel

	c.setLocked(model.Loading[T]())

	c.wg.Add(1)
	go c.run(ctx, gen, c.key)
}

func (c *Call[K, T]) run(ctx context.Context, gen uint64, key K) {
	defer c.wg.Done()
	res := c.invoke(ctx, key)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen || c.closed {
		return
	}
	if ctx.Err() != nil && c.parent.Err() != nil {
		c.closed = true
		return
	}
	c.setLocked(res)
}

// invoke calls the producer, turning errors and panics into a failure.
func (c *Call[K, T]) invoke(ctx context.Context, key K) (res model.ApiResponse[T]) {
	defer func() {
		if r := recover(); r != nil {
			res = model.Failure[T](fmt.Sprint(r))
		}
	}()
	res, err := c.produce(ctx, key)
	if err != nil {
		return model.Failure[T](err.Error())
	}
	return res
}

func (c *Call[K, T]) setLocked(s model.ApiResponse[T]) {
	c.state = s
	if c.opts.onChange != nil {
		c.opts.onChange(s)
	}
}
