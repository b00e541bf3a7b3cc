package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/on-the-ground/pentomino_tilings/catalog"
	"github.com/on-the-ground/pentomino_tilings/config"
	"github.com/on-the-ground/pentomino_tilings/generate"
	"github.com/on-the-ground/pentomino_tilings/log"
	"github.com/on-the-ground/pentomino_tilings/pentomino"
	"github.com/on-the-ground/pentomino_tilings/server"
	"github.com/on-the-ground/pentomino_tilings/tiling"
	"github.com/spf13/pflag"
	"go.uber.org/multierr"
)

func runGenerate(ctx context.Context, fs *pflag.FlagSet, args []string, out io.Writer) error {
	var sizes []tiling.Dims
	fs.String("dir", "", "output directory")
	fs.Var(sizeValue{&sizes}, "size", "board to generate, repeatable (default: all)")
	fs.Int("workers", 0, "boards generated at once")
	e, teardown, err := setup(ctx, "generate", fs, args, map[string]string{
		"dir":     config.ServerDataDir,
		"workers": config.GenerateWorkers,
	})
	if err != nil {
		return err
	}
	defer teardown()

	if len(sizes) == 0 {
		sizes = generate.Sizes
	}
	cat, err := catalog.New()
	if err != nil {
		return err
	}
	entries, genErr := generate.All(e.ctx, e.cfg.Server.DataDir, sizes, e.cfg.Generate.Workers, cat)
	for _, entry := range entries {
		fmt.Fprintf(out, "%s\t%d tilings\t%s\n", entry.File, entry.Count, entry.TookString())
	}
	return genErr
}

func runServe(ctx context.Context, fs *pflag.FlagSet, args []string, out io.Writer) error {
	fs.String("addr", "", "listen address")
	fs.String("dir", "", "data directory")
	e, teardown, err := setup(ctx, "serve", fs, args, map[string]string{
		"addr": config.ServerAddr,
		"dir":  config.ServerDataDir,
	})
	if err != nil {
		return err
	}
	defer teardown()

	cat, err := catalog.New()
	if err != nil {
		return err
	}
	if _, err := cat.Scan(e.ctx, e.cfg.Server.DataDir); err != nil {
		return err
	}
	cache, closeCache, err := e.cfg.Cache.TilingCache()
	if err != nil {
		return err
	}
	defer closeCache()

	s, err := server.New(e.ctx, server.Options{
		Addr:    e.cfg.Server.Addr,
		DataDir: e.cfg.Server.DataDir,
		Source:  tiling.NewCachedLoader(tiling.DirSource(e.cfg.Server.DataDir), cache),
		Catalog: cat,
	})
	if err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() { done <- s.Start() }()

	select {
	case err := <-done:
		return err
	case <-e.ctx.Done():
	}
	stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return multierr.Append(s.Stop(stopCtx), <-done)
}

func runFetch(ctx context.Context, fs *pflag.FlagSet, args []string, out io.Writer) error {
	var sizes []tiling.Dims
	fs.String("base-url", "", "server to fetch from")
	fs.Var(sizeValue{&sizes}, "size", "board to fetch, repeatable")
	index := fs.Int("index", -1, "render the tiling with this index")
	e, teardown, err := setup(ctx, "fetch", fs, args, map[string]string{
		"base-url": config.ClientBaseURL,
	})
	if err != nil {
		return err
	}
	defer teardown()
	if len(sizes) == 0 {
		return fmt.Errorf("fetch: --size is required: %w", errUsage)
	}

	cache, closeCache, err := e.cfg.Cache.TilingCache()
	if err != nil {
		return err
	}
	defer closeCache()
	client := &http.Client{Timeout: e.cfg.Client.Timeout}
	loader := tiling.NewCachedLoader(tiling.NewLoader(e.cfg.Client.BaseURL, client), cache)

	for _, d := range sizes {
		set, found, err := loader.Load(e.ctx, d.N, d.M)
		if err != nil {
			return err
		}
		if !found {
			fmt.Fprintf(out, "%s\tnot available\n", d)
			continue
		}
		fmt.Fprintf(out, "%s\t%d tilings\n", d, len(set))
		if err := render(out, d, set, *index); err != nil {
			return err
		}
	}
	stats := cache.Stats()
	log.Eff(e.ctx, log.LogDebug, "fetch done", map[string]interface{}{
		"hits":   stats.Hits,
		"misses": stats.Misses,
	})
	return nil
}

func runShow(ctx context.Context, fs *pflag.FlagSet, args []string, out io.Writer) error {
	var sizes []tiling.Dims
	fs.String("dir", "", "data directory")
	fs.Var(sizeValue{&sizes}, "size", "board to show")
	index := fs.Int("index", 0, "tiling to draw")
	pieces := fs.Bool("pieces", false, "draw the twelve pentominoes instead")
	e, teardown, err := setup(ctx, "show", fs, args, map[string]string{
		"dir": config.ServerDataDir,
	})
	if err != nil {
		return err
	}
	defer teardown()

	if *pieces {
		for _, p := range pentomino.All {
			fmt.Fprintf(out, "%s (%d orientations)\n%s\n", p.Name, len(p.Variations()), p)
		}
		return nil
	}
	if len(sizes) != 1 {
		return fmt.Errorf("show: exactly one --size is required: %w", errUsage)
	}
	d := sizes[0]
	set, found, err := tiling.DirSource(e.cfg.Server.DataDir).Load(e.ctx, d.N, d.M)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("no %s in %s", tiling.FileName(d.N, d.M), e.cfg.Server.DataDir)
	}
	return render(out, d, set, *index)
}

var errIndex = errors.New("tiling index out of range")

// render draws set[index]; a negative index draws nothing.
func render(out io.Writer, d tiling.Dims, set tiling.Set, index int) error {
	if index < 0 {
		return nil
	}
	if index >= len(set) {
		return fmt.Errorf("%w: %d of %d", errIndex, index, len(set))
	}
	_, err := fmt.Fprint(out, tiling.Render(d.N, d.M, set[index]))
	return err
}
