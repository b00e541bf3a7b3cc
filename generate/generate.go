// Package generate computes pentomino tilings of rectangles and writes them as
// the JSON files served under /data.
package generate

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/on-the-ground/pentomino_tilings/exactcover"
	"github.com/on-the-ground/pentomino_tilings/pentomino"
	"github.com/on-the-ground/pentomino_tilings/tiling"
)

// ErrInvalidSize is returned for boards that cannot hold the twelve pentominoes
// exactly once.
var ErrInvalidSize = errors.New("invalid board size")

// Sizes lists every valid board, one per height.
var Sizes = []tiling.Dims{{N: 3, M: 20}, {N: 4, M: 15}, {N: 5, M: 12}, {N: 6, M: 10}}

// Validate accepts boards with both sides at least 3 and 60 cells.
func Validate(n, m int) error {
	if n < 3 || m < 3 || n*m != 60 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, n, m)
	}
	return nil
}

// element is a column of the exact cover matrix: either a board cell or a
// piece that must be used once.
type element struct {
	piece string
	cell  tiling.Coord
}

// placement is one row of the matrix: a piece orientation at a board offset.
type placement struct {
	piece string
	cells []tiling.Coord
}

// problem builds the exact cover instance of an n×m board.
func problem(n, m int) (*exactcover.Problem[element], []placement, error) {
	universe := make([]element, 0, n*m+len(pentomino.All))
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			universe = append(universe, element{cell: tiling.Coord{i, j}})
		}
	}
	for _, p := range pentomino.All {
		universe = append(universe, element{piece: p.Name})
	}

	var choices [][]element
	var placements []placement
	for _, p := range pentomino.All {
		for _, v := range p.Variations() {
			for i := 0; i < n; i++ {
				for j := 0; j < m; j++ {
					if !v.FitsAt(i, j, n, m) {
						continue
					}
					cells := v.Cells()
					choice := make([]element, 0, len(cells)+1)
					choice = append(choice, element{piece: p.Name})
					for k, c := range cells {
						cells[k] = tiling.Coord{c[0] + i, c[1] + j}
						choice = append(choice, element{cell: cells[k]})
					}
					choices = append(choices, choice)
					placements = append(placements, placement{piece: p.Name, cells: cells})
				}
			}
		}
	}

	prob, err := exactcover.NewProblem(universe, choices)
	if err != nil {
		return nil, nil, err
	}
	return prob, placements, nil
}

// Each calls yield with every tiling of an n×m board in which each pentomino
// appears exactly once, until yield returns false.
func Each(ctx context.Context, n, m int, yield func(tiling.Tiling) bool) error {
	if err := Validate(n, m); err != nil {
		return err
	}
	prob, placements, err := problem(n, m)
	if err != nil {
		return fmt.Errorf("build %dx%d problem: %w", n, m, err)
	}
	return prob.Solve(ctx, func(cover []int) bool {
		t := make(tiling.Tiling, len(cover))
		for _, idx := range cover {
			pl := placements[idx]
			t[pl.piece] = append([]tiling.Coord(nil), pl.cells...)
		}
		return yield(t)
	})
}

// Tilings returns every tiling of an n×m board.
func Tilings(ctx context.Context, n, m int) (tiling.Set, error) {
	set := tiling.Set{}
	err := Each(ctx, n, m, func(t tiling.Tiling) bool {
		set = append(set, t)
		return true
	})
	if err != nil {
		return nil, err
	}
	return set, nil
}

// Canonical returns the placement of t's cells sorted per piece, for stable
// comparisons between runs.
func Canonical(t tiling.Tiling) tiling.Tiling {
	out := make(tiling.Tiling, len(t))
	for label, cells := range t {
		cs := append([]tiling.Coord(nil), cells...)
		sort.Slice(cs, func(i, j int) bool {
			if cs[i][0] != cs[j][0] {
				return cs[i][0] < cs[j][0]
			}
			return cs[i][1] < cs[j][1]
		})
		out[label] = cs
	}
	return out
}
