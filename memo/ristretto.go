package memo

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	ristretto "github.com/dgraph-io/ristretto/v2"
)

// RistrettoConfig sizes a ristretto-backed store.
// Every entry costs 1, so MaxCost is the entry bound.
type RistrettoConfig struct {
	NumCounters int64 // default: 10 * MaxCost
	MaxCost     int64 // default: 1024
	BufferItems int64 // default: 64
}

func (c RistrettoConfig) normalize() RistrettoConfig {
	if c.MaxCost <= 0 {
		c.MaxCost = 1024
	}
	if c.NumCounters <= 0 {
		c.NumCounters = 10 * c.MaxCost
	}
	if c.BufferItems <= 0 {
		c.BufferItems = 64
	}
	return c
}

type ristrettoEntry[K comparable, V any] struct {
	key   K
	value V
}

// RistrettoStore is a bounded Store with TinyLFU admission and sampled LFU
// eviction. Keys are reduced to uint64 by a caller-supplied hash; the original
// key travels with the value so a hash collision reads as a miss.
type RistrettoStore[K comparable, V any] struct {
	cache *ristretto.Cache[uint64, ristrettoEntry[K, V]]
	hash  func(K) uint64
}

var _ Store[string, int] = (*RistrettoStore[string, int])(nil)

// NewRistrettoStore builds a RistrettoStore. A nil hash falls back to HashOf.
func NewRistrettoStore[K comparable, V any](cfg RistrettoConfig, hash func(K) uint64) (*RistrettoStore[K, V], error) {
	cfg = cfg.normalize()
	if hash == nil {
		hash = HashOf[K]
	}
	cache, err := ristretto.NewCache(&ristretto.Config[uint64, ristrettoEntry[K, V]]{
		NumCounters:        cfg.NumCounters,
		MaxCost:            cfg.MaxCost,
		BufferItems:        cfg.BufferItems,
		Metrics:            true,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create ristretto cache: %w", err)
	}
	return &RistrettoStore[K, V]{cache: cache, hash: hash}, nil
}

func (r *RistrettoStore[K, V]) Load(key K) (V, bool) {
	e, ok := r.cache.Get(r.hash(key))
	if !ok || e.key != key {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Store blocks until the write has been applied, so a Load that follows
// observes it unless the admission policy rejected the entry.
func (r *RistrettoStore[K, V]) Store(key K, value V) {
	r.cache.Set(r.hash(key), ristrettoEntry[K, V]{key: key, value: value}, 1)
	r.cache.Wait()
}

// Len is approximate: it is derived from the admission and eviction counters.
func (r *RistrettoStore[K, V]) Len() int {
	m := r.cache.Metrics
	added, evicted := m.KeysAdded(), m.KeysEvicted()
	if evicted >= added {
		return 0
	}
	return int(added - evicted)
}

func (r *RistrettoStore[K, V]) Clear() {
	r.cache.Clear()
}

// Close stops the cache's background goroutines.
func (r *RistrettoStore[K, V]) Close() {
	r.cache.Close()
}

// HashOf hashes the %#v rendering of key with xxhash.
// Types with a Hash64() uint64 method use it instead.
func HashOf[K comparable](key K) uint64 {
	if h, ok := any(key).(interface{ Hash64() uint64 }); ok {
		return h.Hash64()
	}
	return xxhash.Sum64String(fmt.Sprintf("%#v", key))
}
