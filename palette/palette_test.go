package palette_test

import (
	"image/color"
	"testing"

	"github.com/on-the-ground/pentomino_tilings/palette"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColors(t *testing.T) {
	assert.Equal(t, "rgb(255, 0, 0)", palette.Colors["F"])
	assert.Len(t, palette.Colors, 12)

	c, ok := palette.Color("Z")
	assert.True(t, ok)
	assert.Equal(t, "rgb(255, 0, 128)", c)

	_, ok = palette.Color("Q")
	assert.False(t, ok)
}

func TestLabels(t *testing.T) {
	assert.Equal(t,
		[]string{"F", "I", "L", "N", "P", "T", "U", "V", "W", "X", "Y", "Z"},
		palette.Labels(),
	)
}

func TestSizes(t *testing.T) {
	assert.Equal(t, []int{3, 4, 5, 6}, palette.Heights())
	l, ok := palette.SizeLabel(4)
	assert.True(t, ok)
	assert.Equal(t, "4 × 15", l)
}

func TestRGBA(t *testing.T) {
	c, err := palette.RGBA("I")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 255, G: 128, B: 0, A: 255}, c)

	_, err = palette.RGBA("Q")
	assert.Error(t, err)
}

func TestHex(t *testing.T) {
	h, err := palette.Hex("W")
	require.NoError(t, err)
	assert.Equal(t, "#0000ff", h)

	for _, l := range palette.Labels() {
		_, err := palette.Hex(l)
		assert.NoError(t, err, l)
	}
}
