package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/on-the-ground/pentomino_tilings/catalog"
	"github.com/on-the-ground/pentomino_tilings/log"
	"github.com/on-the-ground/pentomino_tilings/tiling"
	"github.com/rickb777/date/v2/timespan"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// Save computes the tilings of an n×m board and writes them to
// dir/tiling.FileName(n, m). The file is replaced atomically.
func Save(ctx context.Context, dir string, n, m int) (catalog.Entry, error) {
	runID := uuid.New().String()
	log.Eff(ctx, log.LogInfo, "generating tilings", map[string]interface{}{
		"run":   runID,
		"board": tiling.Dims{N: n, M: m}.String(),
	})

	start := time.Now()
	set, err := Tilings(ctx, n, m)
	if err != nil {
		return catalog.Entry{}, err
	}
	span := timespan.BetweenTimes(start, time.Now())

	path := filepath.Join(dir, tiling.FileName(n, m))
	if err := writeJSON(path, set); err != nil {
		return catalog.Entry{}, err
	}

	entry := catalog.NewEntry(tiling.Dims{N: n, M: m}, len(set), span)
	log.Eff(ctx, log.LogInfo, "tilings saved", map[string]interface{}{
		"run":   runID,
		"file":  path,
		"count": entry.Count,
		"took":  entry.TookString(),
	})
	return entry, nil
}

func writeJSON(path string, set tiling.Set) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tilings-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			err = multierr.Append(err, os.Remove(tmp.Name()))
		}
	}()

	if err = json.NewEncoder(tmp).Encode(set); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	return nil
}

// All runs Save for every board in dims, at most workers at a time, and puts
// each result into cat when cat is not nil. It returns the entries that were
// written, ordered by board, and every failure combined.
func All(ctx context.Context, dir string, dims []tiling.Dims, workers int, cat *catalog.Catalog) ([]catalog.Entry, error) {
	if workers <= 0 {
		workers = 1
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	var (
		mu      sync.Mutex
		entries []catalog.Entry
		errs    error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, d := range dims {
		g.Go(func() error {
			e, err := Save(gctx, dir, d.N, d.M)
			if err == nil && cat != nil {
				err = cat.Put(e)
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("%s: %w", d, err))
				return nil
			}
			entries = append(entries, e)
			return nil
		})
	}
	errs = multierr.Append(errs, g.Wait())
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].N != entries[j].N {
			return entries[i].N < entries[j].N
		}
		return entries[i].M < entries[j].M
	})
	return entries, errs
}
