package memo

import (
	"sync"
)

// Store holds memoized values.
// Implementations must be safe for concurrent use.
type Store[K comparable, V any] interface {
	Load(key K) (V, bool)
	Store(key K, value V)
	Len() int
	Clear()
}

var _ Store[int, int] = (*mapStore[int, int])(nil)

type mapStore[K comparable, V any] struct {
	mu sync.RWMutex
	m  map[K]V
}

// NewMapStore returns an unbounded store. Entries live until Clear.
func NewMapStore[K comparable, V any]() Store[K, V] {
	return &mapStore[K, V]{m: make(map[K]V)}
}

func (s *mapStore[K, V]) Load(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok
}

func (s *mapStore[K, V]) Store(key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
}

func (s *mapStore[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}

func (s *mapStore[K, V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m = make(map[K]V)
}

var _ Store[int, int] = (*generationalStore[int, int])(nil)

// generationalStore keeps two generations of at most maxSize entries each.
// Writes go to the head generation; when it is full the older generation is
// dropped and becomes the new, empty head.
type generationalStore[K comparable, V any] struct {
	mu      sync.RWMutex
	gens    [2]map[K]V
	head    int
	maxSize int
}

// NewGenerationalStore returns a store bounded to 2*maxSize entries.
// Panics if maxSize is not positive.
func NewGenerationalStore[K comparable, V any](maxSize int) Store[K, V] {
	if maxSize <= 0 {
		panic("maxSize should be greater than 0")
	}
	return &generationalStore[K, V]{
		gens:    [2]map[K]V{make(map[K]V), make(map[K]V)},
		maxSize: maxSize,
	}
}

func (s *generationalStore[K, V]) Load(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.gens[s.head][key]; ok {
		return v, true
	}
	v, ok := s.gens[1-s.head][key]
	return v, ok
}

func (s *generationalStore[K, V]) Store(key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	head := s.gens[s.head]
	if _, exists := head[key]; !exists && len(head) >= s.maxSize {
		s.head = 1 - s.head
		s.gens[s.head] = make(map[K]V, s.maxSize)
	}
	s.gens[s.head][key] = value
}

func (s *generationalStore[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := len(s.gens[s.head])
	for k := range s.gens[1-s.head] {
		if _, shadowed := s.gens[s.head][k]; !shadowed {
			n++
		}
	}
	return n
}

func (s *generationalStore[K, V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gens = [2]map[K]V{make(map[K]V), make(map[K]V)}
	s.head = 0
}
