package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/on-the-ground/pentomino_tilings/config"
	"github.com/on-the-ground/pentomino_tilings/memo"
	"github.com/on-the-ground/pentomino_tilings/tiling"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, config.Default().Validate())
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tilings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9090"
client:
  timeout: 5s
cache:
  policy: singleflight
  store: ristretto
  max_entries: 8
log:
  level: debug
`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "data", cfg.Server.DataDir)
	assert.Equal(t, 5*time.Second, cfg.Client.Timeout)
	assert.Equal(t, "singleflight", cfg.Cache.Policy)
	assert.Equal(t, config.StoreRistretto, cfg.Cache.Store)
	assert.Equal(t, 8, cfg.Cache.MaxEntries)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadRejectsUnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tilings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 1\n"), 0o644))
	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidateCollectsAll(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Addr = ""
	cfg.Cache.Policy = "sometimes"
	cfg.Log.Level = "loud"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 3)
}

func TestSet(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.SetAll([]string{
		"server.data_dir=/srv/tilings",
		"client.timeout = 2s",
		"generate.workers=4",
	}))
	assert.Equal(t, "/srv/tilings", cfg.Server.DataDir)
	assert.Equal(t, 2*time.Second, cfg.Client.Timeout)
	assert.Equal(t, 4, cfg.Generate.Workers)

	assert.ErrorIs(t, cfg.Set("server.port", "1"), config.ErrUnknownKey)
	assert.Error(t, cfg.Set(config.CacheMaxEntries, "many"))
	assert.Error(t, cfg.SetAll([]string{"log.level"}))
}

func TestKeysAreSettable(t *testing.T) {
	values := map[string]string{
		config.ClientTimeout:   "1s",
		config.CacheMaxEntries: "1",
		config.GenerateWorkers: "1",
	}
	for _, key := range config.Keys {
		cfg := config.Default()
		v, ok := values[key]
		if !ok {
			v = "x"
		}
		assert.NoError(t, cfg.Set(key, v), key)
	}
}

func TestTilingCache(t *testing.T) {
	ctx := context.Background()
	for _, store := range []string{config.StoreMap, config.StoreGenerational, config.StoreRistretto} {
		c := config.Cache{Policy: memo.PolicySingleFlight.String(), Store: store, MaxEntries: 4}
		cache, closeFn, err := c.TilingCache()
		require.NoError(t, err, store)

		calls := 0
		load := func(context.Context, tiling.Dims) (tiling.Lookup, error) {
			calls++
			return tiling.Lookup{Found: true}, nil
		}
		for i := 0; i < 2; i++ {
			res, err := cache.Do(ctx, tiling.Dims{N: 3, M: 20}, load)
			require.NoError(t, err, store)
			assert.True(t, res.Found, store)
		}
		assert.Equal(t, 1, calls, store)
		closeFn()
	}

	_, _, err := config.Cache{Policy: "eventual", Store: "disk"}.TilingCache()
	assert.Error(t, err)
}
