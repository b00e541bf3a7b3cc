// Package pentomino describes polyominoes and enumerates their orientations.
package pentomino

import (
	"sort"
	"strings"

	"github.com/on-the-ground/pentomino_tilings/tiling"
)

// Polyomino is a named set of cells, shifted so that the smallest row and the
// smallest column are both 0.
type Polyomino struct {
	Name  string
	cells []tiling.Coord // sorted, duplicate free
}

// New builds a normalized polyomino. Panics on an empty cell list.
func New(name string, cells ...tiling.Coord) Polyomino {
	if len(cells) == 0 {
		panic("pentomino: polyomino without cells")
	}
	return Polyomino{Name: name, cells: normalize(cells)}
}

func normalize(cells []tiling.Coord) []tiling.Coord {
	minX, minY := cells[0][0], cells[0][1]
	for _, c := range cells[1:] {
		minX = min(minX, c[0])
		minY = min(minY, c[1])
	}
	set := make(map[tiling.Coord]struct{}, len(cells))
	for _, c := range cells {
		set[tiling.Coord{c[0] - minX, c[1] - minY}] = struct{}{}
	}
	out := make([]tiling.Coord, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i][0] != out[j][0] {
			return out[i][0] < out[j][0]
		}
		return out[i][1] < out[j][1]
	})
	return out
}

// Cells returns a copy of the cells in row-major order.
func (p Polyomino) Cells() []tiling.Coord {
	return append([]tiling.Coord(nil), p.cells...)
}

// Size is the number of cells.
func (p Polyomino) Size() int {
	return len(p.cells)
}

// Equal reports whether p and o cover the same cells. Names are ignored.
func (p Polyomino) Equal(o Polyomino) bool {
	if len(p.cells) != len(o.cells) {
		return false
	}
	for i := range p.cells {
		if p.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Rotate turns p by 90° anticlockwise.
func (p Polyomino) Rotate() Polyomino {
	out := make([]tiling.Coord, len(p.cells))
	for i, c := range p.cells {
		out[i] = tiling.Coord{-c[1], c[0]}
	}
	return New(p.Name, out...)
}

// Reflect mirrors p horizontally.
func (p Polyomino) Reflect() Polyomino {
	out := make([]tiling.Coord, len(p.cells))
	for i, c := range p.cells {
		out[i] = tiling.Coord{-c[0], c[1]}
	}
	return New(p.Name, out...)
}

// Variations returns the distinct orientations of p: its rotations followed by
// the rotations of its reflection, skipping shapes already seen.
func (p Polyomino) Variations() []Polyomino {
	var vs []Polyomino
	seen := func(q Polyomino) bool {
		for _, v := range vs {
			if v.Equal(q) {
				return true
			}
		}
		return false
	}
	for _, start := range []Polyomino{p, p.Reflect()} {
		for v := start; !seen(v); v = v.Rotate() {
			vs = append(vs, v)
		}
	}
	return vs
}

// Bounds returns the number of rows and columns p spans.
func (p Polyomino) Bounds() (rows, cols int) {
	for _, c := range p.cells {
		rows = max(rows, c[0]+1)
		cols = max(cols, c[1]+1)
	}
	return rows, cols
}

// FitsAt reports whether p shifted by (i, j) stays inside an n×m board.
func (p Polyomino) FitsAt(i, j, n, m int) bool {
	for _, c := range p.cells {
		x, y := c[0]+i, c[1]+j
		if x < 0 || x >= n || y < 0 || y >= m {
			return false
		}
	}
	return true
}

// String draws p with "X" for covered cells, one row per line.
func (p Polyomino) String() string {
	rows, cols := p.Bounds()
	covered := make(map[tiling.Coord]bool, len(p.cells))
	for _, c := range p.cells {
		covered[c] = true
	}
	var sb strings.Builder
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if covered[tiling.Coord{i, j}] {
				sb.WriteByte('X')
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
