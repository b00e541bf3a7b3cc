package memo

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/on-the-ground/pentomino_tilings/log"
	"golang.org/x/sync/singleflight"
)

// Policy decides what happens when calls for the same key overlap.
type Policy int

const (
	// PolicyEventual stores a result only after its call returns.
	// Overlapping calls for one key may each invoke the function.
	PolicyEventual Policy = iota

	// PolicySingleFlight shares one in-flight call per key among all callers.
	PolicySingleFlight
)

func (p Policy) String() string {
	switch p {
	case PolicyEventual:
		return "eventual"
	case PolicySingleFlight:
		return "singleflight"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy parses "eventual" or "singleflight".
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "eventual":
		return PolicyEventual, nil
	case "singleflight":
		return PolicySingleFlight, nil
	default:
		return PolicyEventual, fmt.Errorf("unknown memo policy: %q", s)
	}
}

// Config configures a Cache.
type Config struct {
	Policy Policy
	Name   string // used in log lines only
}

// Stats counts cache activity since construction.
type Stats struct {
	Hits   uint64
	Misses uint64
	Calls  uint64 // invocations of the wrapped function
}

// Cache memoizes values of type V by keys of type K.
// A Cache is safe for concurrent use.
type Cache[K comparable, V any] struct {
	store  Store[K, V]
	policy Policy
	name   string
	group  singleflight.Group

	hits   atomic.Uint64
	misses atomic.Uint64
	calls  atomic.Uint64
}

// New returns a Cache over store. A nil store means NewMapStore.
func New[K comparable, V any](cfg Config, store Store[K, V]) *Cache[K, V] {
	if store == nil {
		store = NewMapStore[K, V]()
	}
	name := cfg.Name
	if name == "" {
		name = "memo"
	}
	return &Cache[K, V]{
		store:  store,
		policy: cfg.Policy,
		name:   name,
	}
}

// Do returns the value stored under key, calling fn to produce it on a miss.
// A result is stored only when fn returns a nil error.
func (c *Cache[K, V]) Do(ctx context.Context, key K, fn func(context.Context, K) (V, error)) (V, error) {
	if v, ok := c.store.Load(key); ok {
		c.hits.Add(1)
		log.Eff(ctx, log.LogDebug, "memo hit", map[string]interface{}{
			"cache": c.name,
			"key":   key,
		})
		return v, nil
	}
	c.misses.Add(1)
	log.Eff(ctx, log.LogDebug, "memo miss", map[string]interface{}{
		"cache":  c.name,
		"key":    key,
		"policy": c.policy.String(),
	})

	if c.policy == PolicySingleFlight {
		return c.doShared(ctx, key, fn)
	}
	return c.call(ctx, key, fn)
}

func (c *Cache[K, V]) call(ctx context.Context, key K, fn func(context.Context, K) (V, error)) (V, error) {
	c.calls.Add(1)
	v, err := fn(ctx, key)
	if err != nil {
		return v, err
	}
	c.store.Store(key, v)
	return v, nil
}

// doShared runs fn once for all callers. The flight keeps the first caller's
// values but not its cancellation; each caller stops waiting on its own ctx.
func (c *Cache[K, V]) doShared(ctx context.Context, key K, fn func(context.Context, K) (V, error)) (V, error) {
	flightCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(flightKey(key), func() (interface{}, error) {
		// a flight that finished between our Load and DoChan already stored it
		if v, ok := c.store.Load(key); ok {
			return v, nil
		}
		return c.call(flightCtx, key, fn)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			var zero V
			return zero, res.Err
		}
		v, _ := res.Val.(V)
		return v, nil
	case <-ctx.Done():
		var zero V
		return zero, ctx.Err()
	}
}

// flightKey renders key for singleflight. K is fixed per Cache, so the Go-syntax
// form is unambiguous among keys of one cache.
func flightKey[K comparable](key K) string {
	return fmt.Sprintf("%#v", key)
}

// Len returns the number of stored entries.
func (c *Cache[K, V]) Len() int {
	return c.store.Len()
}

// Reset drops every stored entry. Counters are kept.
func (c *Cache[K, V]) Reset() {
	c.store.Clear()
}

// Stats returns a snapshot of the counters.
func (c *Cache[K, V]) Stats() Stats {
	return Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Calls:  c.calls.Load(),
	}
}

// Memoize wraps fn so that its results are cached in c.
func Memoize[K comparable, V any](
	c *Cache[K, V],
	fn func(context.Context, K) (V, error),
) func(context.Context, K) (V, error) {
	return func(ctx context.Context, k K) (V, error) {
		return c.Do(ctx, k, fn)
	}
}

// Memoize2 wraps a two-argument fn, keying c by Key2.
func Memoize2[A, B comparable, V any](
	c *Cache[Key2[A, B], V],
	fn func(context.Context, A, B) (V, error),
) func(context.Context, A, B) (V, error) {
	unary := func(ctx context.Context, k Key2[A, B]) (V, error) {
		return fn(ctx, k.First, k.Second)
	}
	return func(ctx context.Context, a A, b B) (V, error) {
		return c.Do(ctx, KeyOf2(a, b), unary)
	}
}
