// Package tiling defines pentomino tilings and loads precomputed tiling sets
// over HTTP.
package tiling

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Coord is a board cell as [row, column]. It encodes as a two-element JSON array.
type Coord [2]int

// Tiling maps a piece label to the cells it occupies.
type Tiling map[string][]Coord

// Set is every tiling of one board, in file order.
type Set []Tiling

// Dims identifies a board of N rows and M columns.
type Dims struct {
	N int `json:"n"`
	M int `json:"m"`
}

// ErrInvalidDims is returned for boards with a non-positive side.
var ErrInvalidDims = errors.New("invalid tiling dimensions")

// Validate reports whether both sides are positive.
func (d Dims) Validate() error {
	if d.N <= 0 || d.M <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDims, d.N, d.M)
	}
	return nil
}

// ID is the "<n>-<m>" suffix used in file names.
func (d Dims) ID() string {
	return fmt.Sprintf("%d-%d", d.N, d.M)
}

func (d Dims) String() string {
	return fmt.Sprintf("%dx%d", d.N, d.M)
}

// Hash64 hashes both sides with xxhash.
func (d Dims) Hash64() uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(d.N))
	binary.LittleEndian.PutUint64(buf[8:], uint64(d.M))
	return xxhash.Sum64(buf[:])
}

// FileName is the name of the JSON file holding the tilings of an n×m board.
func FileName(n, m int) string {
	return fmt.Sprintf("tilings-%d-%d.json", n, m)
}

// Path is the URL path of the tilings of an n×m board.
func Path(n, m int) string {
	return "/data/" + FileName(n, m)
}

// ParseFileName extracts the dimensions from a FileName.
func ParseFileName(name string) (Dims, bool) {
	var d Dims
	if !strings.HasPrefix(name, "tilings-") || !strings.HasSuffix(name, ".json") {
		return d, false
	}
	if _, err := fmt.Sscanf(name, "tilings-%d-%d.json", &d.N, &d.M); err != nil {
		return d, false
	}
	if d.Validate() != nil || FileName(d.N, d.M) != name {
		return d, false
	}
	return d, true
}

// Labels returns the piece labels of t in alphabetical order.
func (t Tiling) Labels() []string {
	labels := make([]string, 0, len(t))
	for l := range t {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}
