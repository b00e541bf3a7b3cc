package generate_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/on-the-ground/pentomino_tilings/catalog"
	"github.com/on-the-ground/pentomino_tilings/generate"
	"github.com/on-the-ground/pentomino_tilings/log"
	"github.com/on-the-ground/pentomino_tilings/tiling"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestValidate(t *testing.T) {
	for _, d := range generate.Sizes {
		assert.NoError(t, generate.Validate(d.N, d.M), d.String())
	}
	for _, d := range []tiling.Dims{{N: 2, M: 30}, {N: 30, M: 2}, {N: 5, M: 5}, {N: 0, M: 0}} {
		assert.ErrorIs(t, generate.Validate(d.N, d.M), generate.ErrInvalidSize, d.String())
	}
}

func TestTilings3x20(t *testing.T) {
	set, err := generate.Tilings(context.Background(), 3, 20)
	require.NoError(t, err)
	require.Len(t, set, 8)

	for _, tl := range set {
		assert.NoError(t, tiling.Validate(3, 20, tl))
		assert.Len(t, tl, 12)
		for label, cells := range tl {
			assert.Len(t, cells, 5, label)
		}
	}
}

func TestTilingsInvalidSize(t *testing.T) {
	_, err := generate.Tilings(context.Background(), 2, 30)
	assert.ErrorIs(t, err, generate.ErrInvalidSize)
}

func TestEachStopsEarly(t *testing.T) {
	calls := 0
	err := generate.Each(context.Background(), 3, 20, func(tiling.Tiling) bool {
		calls++
		return false
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestTilingsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := generate.Tilings(ctx, 6, 10)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCanonical(t *testing.T) {
	in := tiling.Tiling{"A": {{1, 0}, {0, 1}, {0, 0}}}
	assert.Equal(t, tiling.Tiling{"A": {{0, 0}, {0, 1}, {1, 0}}}, generate.Canonical(in))
	assert.Equal(t, tiling.Coord{1, 0}, in["A"][0])
}

func TestSave(t *testing.T) {
	ctx, teardown := log.WithTestLogger(context.Background())
	defer teardown()
	dir := t.TempDir()

	e, err := generate.Save(ctx, dir, 3, 20)
	require.NoError(t, err)
	assert.Equal(t, "3-20", e.ID)
	assert.Equal(t, 8, e.Count)
	assert.Equal(t, "tilings-3-20.json", e.File)

	set, ok, err := tiling.DirSource(dir).Load(ctx, 3, 20)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, set, 8)

	leftovers, err := filepath.Glob(filepath.Join(dir, ".tilings-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestAll(t *testing.T) {
	ctx, teardown := log.WithTestLogger(context.Background())
	defer teardown()
	dir := filepath.Join(t.TempDir(), "data")
	cat, err := catalog.New()
	require.NoError(t, err)

	entries, err := generate.All(ctx, dir, []tiling.Dims{{N: 3, M: 20}, {N: 7, M: 7}, {N: 1, M: 60}}, 2, cat)
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
	assert.ErrorIs(t, err, generate.ErrInvalidSize)

	require.Len(t, entries, 1)
	assert.Equal(t, 8, entries[0].Count)

	got, ok, err := cat.Get(3, 20)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 8, got.Count)

	_, err = os.Stat(filepath.Join(dir, "tilings-3-20.json"))
	assert.NoError(t, err)
}

func TestAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	entries, err := generate.All(ctx, t.TempDir(), []tiling.Dims{{N: 3, M: 20}, {N: 4, M: 15}}, 2, nil)
	assert.Empty(t, entries)
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
	assert.ErrorIs(t, err, context.Canceled)
}
