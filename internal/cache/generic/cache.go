package generic

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache memoizes values loaded on demand, one load in flight per key.
// A successful load is kept for the lifetime of the cache. A failed load is
// kept as the key's error state until ClearErr, and Ensure returns it
// without loading again. All operations are safe for concurrent use.
type Cache[K ~string, V any] interface {
	// Ensure returns the cached value for key, loading it if needed.
	// Concurrent callers for the same key share one load.
	Ensure(ctx context.Context, key K) (V, error)

	// Get returns a cached value without loading.
	Get(key K) (V, bool)

	// Err returns the retained error for key, if any.
	Err(key K) error

	// ClearErr forgets the retained error so the next Ensure loads again.
	ClearErr(key K)

	// Clear drops all values and errors.
	Clear()
}

// Loader fetches the value for a key. Implementations are mocked in tests.
type Loader[K ~string, V any] interface {
	Load(ctx context.Context, key K) (V, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc[K ~string, V any] func(ctx context.Context, key K) (V, error)

// Load calls f.
func (f LoaderFunc[K, V]) Load(ctx context.Context, key K) (V, error) {
	return f(ctx, key)
}

// GenericCache implements Cache[K, V] over sync.Map with singleflight
// deduplication.
type GenericCache[K ~string, V any] struct {
	values sync.Map
	errs   sync.Map
	group  singleflight.Group
	loader Loader[K, V]

	// OnLoad, when set, runs after every completed load with its outcome.
	OnLoad func(key K, err error)
}

// NewGenericCache creates a cache backed by loader.
//
// Parameters:
//   - loader: fetches a value the first time its key is requested
func NewGenericCache[K ~string, V any](loader Loader[K, V]) *GenericCache[K, V] {
	return &GenericCache[K, V]{loader: loader}
}

// Ensure returns the value for key. The load runs detached from the caller's
// cancellation so that one caller giving up does not fail the others; the
// caller still stops waiting when ctx is done.
func (c *GenericCache[K, V]) Ensure(ctx context.Context, key K) (V, error) {
	var zero V
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	if err := c.Err(key); err != nil {
		return zero, err
	}

	ch := c.group.DoChan(string(key), func() (any, error) {
		// Another flight may have finished between the checks above and here.
		if v, ok := c.Get(key); ok {
			return v, nil
		}
		if err := c.Err(key); err != nil {
			return nil, err
		}

		v, err := c.loader.Load(context.WithoutCancel(ctx), key)
		if err != nil {
			c.errs.Store(key, err)
		} else {
			c.values.Store(key, v)
		}
		if c.OnLoad != nil {
			c.OnLoad(key, err)
		}
		return v, err
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(V), nil
	}
}

// Get returns a cached value. Never loads.
func (c *GenericCache[K, V]) Get(key K) (V, bool) {
	val, ok := c.values.Load(key)
	if !ok {
		var zero V
		return zero, false
	}
	return val.(V), true
}

// Err returns the retained load error for key.
func (c *GenericCache[K, V]) Err(key K) error {
	val, ok := c.errs.Load(key)
	if !ok {
		return nil
	}
	return val.(error)
}

// ClearErr forgets the error state of key.
func (c *GenericCache[K, V]) ClearErr(key K) {
	c.errs.Delete(key)
}

// Clear drops every cached value and error.
func (c *GenericCache[K, V]) Clear() {
	c.values.Range(func(k, _ any) bool {
		c.values.Delete(k)
		return true
	})
	c.errs.Range(func(k, _ any) bool {
		c.errs.Delete(k)
		return true
	})
}

// Keys returns the keys that currently hold a value. Order is not guaranteed.
func (c *GenericCache[K, V]) Keys() []K {
	var keys []K
	c.values.Range(func(k, _ any) bool {
		keys = append(keys, k.(K))
		return true
	})
	return keys
}
