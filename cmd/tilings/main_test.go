package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/on-the-ground/pentomino_tilings/catalog"
	"github.com/on-the-ground/pentomino_tilings/server"
	"github.com/on-the-ground/pentomino_tilings/tiling"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runArgs(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(context.Background(), args, &out)
	return out.String(), err
}

func TestRunUsage(t *testing.T) {
	_, err := runArgs(t)
	assert.ErrorIs(t, err, errUsage)

	_, err = runArgs(t, "paint")
	assert.ErrorIs(t, err, errUsage)

	_, err = runArgs(t, "show", "--bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "show: unknown flag: --bogus")
}

func TestParseSize(t *testing.T) {
	d, err := parseSize("4x15")
	require.NoError(t, err)
	assert.Equal(t, tiling.Dims{N: 4, M: 15}, d)

	for _, bad := range []string{"4", "4x", "x15", "0x15", "ax15"} {
		_, err := parseSize(bad)
		assert.Error(t, err, bad)
	}
}

func TestGenerateThenShow(t *testing.T) {
	dir := t.TempDir()
	out, err := runArgs(t, "generate", "--dir", dir, "--size", "3x20", "--set", "log.level=error")
	require.NoError(t, err)
	assert.Contains(t, out, "tilings-3-20.json\t8 tilings")

	out, err = runArgs(t, "show", "--dir", dir, "--size", "3x20", "--index", "7", "--set", "log.level=error")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 3)

	_, err = runArgs(t, "show", "--dir", dir, "--size", "3x20", "--index", "8", "--set", "log.level=error")
	assert.ErrorIs(t, err, errIndex)

	_, err = runArgs(t, "show", "--dir", dir, "--size", "6x10", "--set", "log.level=error")
	assert.Error(t, err)
}

func TestGenerateInvalidSize(t *testing.T) {
	_, err := runArgs(t, "generate", "--dir", t.TempDir(), "--size", "5x5", "--set", "log.level=error")
	assert.Error(t, err)
}

func TestShowPieces(t *testing.T) {
	out, err := runArgs(t, "show", "--pieces", "--set", "log.level=error")
	require.NoError(t, err)
	assert.Contains(t, out, "X (1 orientations)")
	assert.Contains(t, out, "F (8 orientations)")
}

func TestFetch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, tiling.FileName(2, 2)),
		[]byte(`[{"A": [[0,0],[0,1],[1,0]], "B": [[1,1]]}]`), 0o644))
	cat, err := catalog.New()
	require.NoError(t, err)
	s, err := server.New(context.Background(), server.Options{DataDir: dir, Catalog: cat})
	require.NoError(t, err)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	out, err := runArgs(t, "fetch", "--base-url", ts.URL, "--size", "2x2,3x20", "--index", "0", "--set", "log.level=error")
	require.NoError(t, err)
	assert.Equal(t, "2x2\t1 tilings\nA A\nA B\n3x20\tnot available\n", out)

	_, err = runArgs(t, "fetch", "--set", "log.level=error")
	assert.ErrorIs(t, err, errUsage)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tilings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  data_dir: "+dir+"\nlog:\n  level: error\n"), 0o644))

	_, err := runArgs(t, "generate", "--config", path, "--size", "3x20")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "tilings-3-20.json"))
	assert.NoError(t, err)

	_, err = runArgs(t, "show", "--config", filepath.Join(dir, "missing.yaml"), "--pieces")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
