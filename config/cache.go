package config

import (
	"fmt"

	"github.com/on-the-ground/pentomino_tilings/memo"
	"github.com/on-the-ground/pentomino_tilings/tiling"
)

// TilingCache builds the memo cache described by c for a tiling.CachedLoader.
// The returned close func releases the store and is never nil.
func (c Cache) TilingCache() (*memo.Cache[tiling.Dims, tiling.Lookup], func(), error) {
	policy, err := memo.ParsePolicy(c.Policy)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", CachePolicy, err)
	}
	cfg := memo.Config{Policy: policy, Name: "tilings"}

	switch c.Store {
	case StoreMap, "":
		return memo.New[tiling.Dims, tiling.Lookup](cfg, nil), func() {}, nil
	case StoreGenerational:
		store := memo.NewGenerationalStore[tiling.Dims, tiling.Lookup](c.MaxEntries)
		return memo.New(cfg, store), func() {}, nil
	case StoreRistretto:
		store, err := memo.NewRistrettoStore[tiling.Dims, tiling.Lookup](
			memo.RistrettoConfig{MaxCost: int64(c.MaxEntries)},
			tiling.Dims.Hash64,
		)
		if err != nil {
			return nil, nil, err
		}
		return memo.New[tiling.Dims, tiling.Lookup](cfg, store), store.Close, nil
	default:
		return nil, nil, fmt.Errorf("%s: unknown store %q", CacheStore, c.Store)
	}
}
