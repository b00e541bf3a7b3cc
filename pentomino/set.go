package pentomino

import "github.com/on-the-ground/pentomino_tilings/tiling"

type xy = tiling.Coord

// All holds the twelve pentominoes in label order.
var All = []Polyomino{
	New("F", xy{0, 1}, xy{0, 2}, xy{1, 1}, xy{1, 0}, xy{2, 1}),
	New("I", xy{0, 0}, xy{0, 1}, xy{0, 2}, xy{0, 3}, xy{0, 4}),
	New("L", xy{0, 0}, xy{1, 0}, xy{2, 0}, xy{3, 0}, xy{3, 1}),
	New("N", xy{0, 0}, xy{0, 1}, xy{1, 1}, xy{1, 2}, xy{1, 3}),
	New("P", xy{0, 0}, xy{0, 1}, xy{1, 0}, xy{1, 1}, xy{2, 0}),
	New("T", xy{0, 0}, xy{0, 1}, xy{0, 2}, xy{1, 1}, xy{2, 1}),
	New("U", xy{0, 0}, xy{1, 0}, xy{1, 1}, xy{1, 2}, xy{0, 2}),
	New("V", xy{0, 0}, xy{1, 0}, xy{2, 0}, xy{2, 1}, xy{2, 2}),
	New("W", xy{0, 0}, xy{1, 0}, xy{1, 1}, xy{2, 1}, xy{2, 2}),
	New("X", xy{0, 1}, xy{1, 1}, xy{2, 1}, xy{1, 0}, xy{1, 2}),
	New("Y", xy{1, 0}, xy{0, 1}, xy{1, 1}, xy{2, 1}, xy{3, 1}),
	New("Z", xy{0, 0}, xy{0, 1}, xy{1, 1}, xy{2, 1}, xy{2, 2}),
}

// ByName returns the pentomino labelled name.
func ByName(name string) (Polyomino, bool) {
	for _, p := range All {
		if p.Name == name {
			return p, true
		}
	}
	return Polyomino{}, false
}
