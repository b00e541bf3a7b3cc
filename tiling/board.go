package tiling

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBadTiling is returned by Validate for tilings that do not cover the board
// exactly once.
var ErrBadTiling = errors.New("tiling does not cover the board")

// Validate checks that t places every cell of an n×m board exactly once.
func Validate(n, m int, t Tiling) error {
	if err := (Dims{N: n, M: m}).Validate(); err != nil {
		return err
	}
	seen := make(map[Coord]string, n*m)
	for _, label := range t.Labels() {
		for _, c := range t[label] {
			if c[0] < 0 || c[0] >= n || c[1] < 0 || c[1] >= m {
				return fmt.Errorf("%w: %s cell %v outside %dx%d", ErrBadTiling, label, c, n, m)
			}
			if other, ok := seen[c]; ok {
				return fmt.Errorf("%w: cell %v used by %s and %s", ErrBadTiling, c, other, label)
			}
			seen[c] = label
		}
	}
	if len(seen) != n*m {
		return fmt.Errorf("%w: %d of %d cells covered", ErrBadTiling, len(seen), n*m)
	}
	return nil
}

// Render draws t on an n×m grid, one row per line, labels separated by spaces.
// Uncovered cells are drawn as ".". Non-positive dimensions render as "".
func Render(n, m int, t Tiling) string {
	if n <= 0 || m <= 0 {
		return ""
	}
	board := make([][]string, n)
	for i := range board {
		board[i] = make([]string, m)
		for j := range board[i] {
			board[i][j] = "."
		}
	}
	for label, cells := range t {
		for _, c := range cells {
			if c[0] >= 0 && c[0] < n && c[1] >= 0 && c[1] < m {
				board[c[0]][c[1]] = label
			}
		}
	}

	var sb strings.Builder
	for _, row := range board {
		sb.WriteString(strings.Join(row, " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}
