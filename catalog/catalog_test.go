package catalog_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/on-the-ground/pentomino_tilings/catalog"
	"github.com/on-the-ground/pentomino_tilings/log"
	"github.com/on-the-ground/pentomino_tilings/tiling"
	"github.com/rickb777/date/v2/timespan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_PutGetList(t *testing.T) {
	c, err := catalog.New()
	require.NoError(t, err)

	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	span := timespan.BetweenTimes(start, start.Add(1500*time.Millisecond))

	require.NoError(t, c.Put(catalog.NewEntry(tiling.Dims{N: 6, M: 10}, 9356, span)))
	require.NoError(t, c.Put(catalog.NewEntry(tiling.Dims{N: 3, M: 20}, 8, span)))
	require.NoError(t, c.Put(catalog.NewEntry(tiling.Dims{N: 10, M: 6}, 9356, span)))

	e, ok, err := c.Get(3, 20)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 8, e.Count)
	assert.Equal(t, "tilings-3-20.json", e.File)
	assert.Equal(t, "2024-05-01", e.GeneratedOn.String())
	assert.Equal(t, "1.5s", e.TookString())

	_, ok, err = c.Get(4, 15)
	require.NoError(t, err)
	assert.False(t, ok)

	all, err := c.List()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"3-20", "6-10", "10-6"}, []string{all[0].ID, all[1].ID, all[2].ID})

	six, err := c.ByHeight(6)
	require.NoError(t, err)
	require.Len(t, six, 1)
	assert.Equal(t, "6-10", six[0].ID)
}

func TestCatalog_PutReplaces(t *testing.T) {
	c, err := catalog.New()
	require.NoError(t, err)

	require.NoError(t, c.Put(catalog.Entry{N: 4, M: 15, Count: 1}))
	require.NoError(t, c.Put(catalog.Entry{N: 4, M: 15, Count: 368}))

	e, ok, err := c.Get(4, 15)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 368, e.Count)
	assert.Equal(t, "4-15", e.ID)

	all, err := c.List()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCatalog_Scan(t *testing.T) {
	ctx, end := log.WithTestLogger(context.Background())
	defer end()

	dir := t.TempDir()
	write := func(name, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	write("tilings-3-20.json", `[{"A": [[0,0]]}, {"A": [[0,1]]}]`)
	write("tilings-4-15.json", `not json`)
	write("readme.txt", `ignored`)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "tilings-5-12.json"), 0o755))

	c, err := catalog.New()
	require.NoError(t, err)
	added, err := c.Scan(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	e, ok, err := c.Get(3, 20)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, e.Count)
	assert.Equal(t, "", e.TookString())
}

func TestCatalog_ScanMissingDir(t *testing.T) {
	c, err := catalog.New()
	require.NoError(t, err)
	_, err = c.Scan(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
