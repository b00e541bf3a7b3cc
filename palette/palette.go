// Package palette holds the static display tables of the tilings viewer:
// one color per pentomino label and one human label per board size.
package palette

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"
)

// Colors maps a pentomino label to its CSS color.
// Treat it as read-only.
var Colors = map[string]string{
	"F": "rgb(255, 0, 0)",
	"I": "rgb(255, 128, 0)",
	"L": "rgb(255, 255, 0)",
	"N": "rgb(128, 255, 0)",
	"P": "rgb(0, 255, 0)",
	"T": "rgb(0, 255, 128)",
	"U": "rgb(0, 255, 255)",
	"V": "rgb(0, 128, 255)",
	"W": "rgb(0, 0, 255)",
	"X": "rgb(128, 0, 255)",
	"Y": "rgb(255, 0, 255)",
	"Z": "rgb(255, 0, 128)",
}

// Sizes maps a board height n to the label of the n × (60/n) rectangle.
// Treat it as read-only.
var Sizes = map[int]string{
	3: "3 × 20",
	4: "4 × 15",
	5: "5 × 12",
	6: "6 × 10",
}

// Color returns the CSS color of label.
func Color(label string) (string, bool) {
	c, ok := Colors[label]
	return c, ok
}

// SizeLabel returns the display label for board height n.
func SizeLabel(n int) (string, bool) {
	l, ok := Sizes[n]
	return l, ok
}

// Labels returns the pentomino labels in alphabetical order.
func Labels() []string {
	labels := make([]string, 0, len(Colors))
	for l := range Colors {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

// Heights returns the board heights of Sizes in ascending order.
func Heights() []int {
	hs := make([]int, 0, len(Sizes))
	for h := range Sizes {
		hs = append(hs, h)
	}
	sort.Ints(hs)
	return hs
}

// RGBA parses the color of label.
func RGBA(label string) (color.RGBA, error) {
	s, ok := Colors[label]
	if !ok {
		return color.RGBA{}, fmt.Errorf("no color for label %q", label)
	}
	c, err := csscolorparser.Parse(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("parse color of %q: %w", label, err)
	}
	return color.RGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: to8(c.A)}, nil
}

// Hex returns the color of label as "#rrggbb".
func Hex(label string) (string, error) {
	s, ok := Colors[label]
	if !ok {
		return "", fmt.Errorf("no color for label %q", label)
	}
	c, err := csscolorparser.Parse(s)
	if err != nil {
		return "", fmt.Errorf("parse color of %q: %w", label, err)
	}
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex(), nil
}

func to8(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
