// Package exactcover solves exact cover problems with Knuth's Algorithm X.
//
// Given a universe X and a family S of subsets of X, a cover is a selection of
// members of S that partitions X. Problem enumerates every cover, always
// branching on the element contained in the fewest remaining choices.
package exactcover

import (
	"context"
	"errors"
	"fmt"
	"iter"
)

// ErrNotSubset is returned when a choice contains an element outside the universe.
var ErrNotSubset = errors.New("choice is not a subset of the universe")

// Problem is an exact cover instance over elements of type T.
type Problem[T comparable] struct {
	universe []T
	choices  [][]T
	sets     []bitset
}

// NewProblem indexes universe and choices. Duplicate elements are ignored.
func NewProblem[T comparable](universe []T, choices [][]T) (*Problem[T], error) {
	index := make(map[T]int, len(universe))
	uniq := make([]T, 0, len(universe))
	for _, x := range universe {
		if _, ok := index[x]; ok {
			continue
		}
		index[x] = len(uniq)
		uniq = append(uniq, x)
	}

	sets := make([]bitset, len(choices))
	for i, choice := range choices {
		b := newBitset(len(uniq))
		for _, x := range choice {
			j, ok := index[x]
			if !ok {
				return nil, fmt.Errorf("%w: choice %d has %v", ErrNotSubset, i, x)
			}
			b.set(j)
		}
		sets[i] = b
	}
	return &Problem[T]{universe: uniq, choices: choices, sets: sets}, nil
}

// Choice returns the i-th choice as given to NewProblem.
func (p *Problem[T]) Choice(i int) []T {
	return p.choices[i]
}

// Solve calls yield with the choice indices of every cover until yield returns
// false. The slice passed to yield is reused between calls.
// It returns ctx.Err() if ctx is cancelled before the search completes.
func (p *Problem[T]) Solve(ctx context.Context, yield func(cover []int) bool) error {
	s := &solver[T]{p: p, ctx: ctx, yield: yield}
	all := newBitset(len(p.universe))
	for i := range p.universe {
		all.set(i)
	}
	active := make([]int, len(p.sets))
	for i := range active {
		active[i] = i
	}
	s.search(all, active)
	return s.err
}

// Covers returns every cover as a list of choices, each paired with a nil
// error. If the search stops because ctx is done, the last pair carries a nil
// cover and ctx.Err().
func (p *Problem[T]) Covers(ctx context.Context) iter.Seq2[[][]T, error] {
	return func(yield func([][]T, error) bool) {
		stopped := false
		err := p.Solve(ctx, func(cover []int) bool {
			out := make([][]T, len(cover))
			for i, c := range cover {
				out[i] = p.choices[c]
			}
			if !yield(out, nil) {
				stopped = true
				return false
			}
			return true
		})
		if err != nil && !stopped {
			yield(nil, err)
		}
	}
}

// Count returns the number of covers.
func (p *Problem[T]) Count(ctx context.Context) (int, error) {
	n := 0
	err := p.Solve(ctx, func([]int) bool {
		n++
		return true
	})
	return n, err
}

// checkEvery is how many search nodes pass between context checks.
const checkEvery = 1024

type solver[T comparable] struct {
	p     *Problem[T]
	ctx   context.Context
	yield func([]int) bool
	stack []int
	nodes int
	err   error
	done  bool
}

func (s *solver[T]) search(remaining bitset, active []int) {
	if s.done {
		return
	}
	s.nodes++
	if s.nodes%checkEvery == 1 {
		if err := s.ctx.Err(); err != nil {
			s.err = err
			s.done = true
			return
		}
	}

	if remaining.empty() {
		if !s.yield(s.stack) {
			s.done = true
		}
		return
	}

	elem, count := s.leastCovered(remaining, active)
	if count == 0 {
		return
	}

	for _, a := range active {
		if !s.p.sets[a].has(elem) {
			continue
		}
		next := make([]int, 0, len(active))
		for _, b := range active {
			if s.p.sets[a].disjoint(s.p.sets[b]) {
				next = append(next, b)
			}
		}
		s.stack = append(s.stack, a)
		s.search(remaining.andNot(s.p.sets[a]), next)
		s.stack = s.stack[:len(s.stack)-1]
		if s.done {
			return
		}
	}
}

// leastCovered picks the remaining element contained in the fewest active
// choices, preferring the lowest index on ties.
func (s *solver[T]) leastCovered(remaining bitset, active []int) (elem, count int) {
	elem, count = -1, len(active)+1
	remaining.each(func(i int) {
		if count == 0 {
			return
		}
		n := 0
		for _, a := range active {
			if s.p.sets[a].has(i) {
				n++
			}
		}
		if n < count {
			elem, count = i, n
		}
	})
	return elem, count
}
