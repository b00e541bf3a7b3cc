// Command tilings generates, serves and inspects pentomino tiling files.
//
//	tilings generate [--dir data] [--size 6x10 ...] [--workers 2]
//	tilings serve    [--addr :8080] [--dir data]
//	tilings fetch    [--base-url http://localhost:8080] --size 4x15 [--index 0]
//	tilings show     [--dir data] --size 3x20 [--index 0]
//	tilings show     --pieces
//
// Every command accepts --config file.yaml and repeated --set key=value.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/on-the-ground/pentomino_tilings/config"
	"github.com/on-the-ground/pentomino_tilings/log"
	"github.com/on-the-ground/pentomino_tilings/tiling"
	"github.com/spf13/pflag"
)

const usage = "usage: tilings <generate|serve|fetch|show> [flags]"

var errUsage = errors.New(usage)

type command func(ctx context.Context, fs *pflag.FlagSet, args []string, out io.Writer) error

var commands = map[string]command{
	"generate": runGenerate,
	"serve":    runServe,
	"fetch":    runFetch,
	"show":     runShow,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("unknown command %q: %w", args[0], errUsage)
	}
	fs := pflag.NewFlagSet(args[0], pflag.ContinueOnError)
	fs.SortFlags = false
	fs.SetOutput(io.Discard)
	return cmd(ctx, fs, args[1:], out)
}

// env is what every command gets after flag parsing.
type env struct {
	ctx context.Context
	cfg config.Config
}

// setup adds the shared flags to fs, parses args, loads the config with its
// overrides and installs a logger into ctx. overrides are applied after
// --set so command flags win; a flag only overrides when it was given.
func setup(ctx context.Context, name string, fs *pflag.FlagSet, args []string, overrides map[string]string) (env, func(), error) {
	configPath := fs.String("config", "", "YAML config file")
	sets := fs.StringArray("set", nil, "override a config key, e.g. --set "+config.LogLevel+"=debug")
	if err := fs.Parse(args); err != nil {
		return env{}, nil, fmt.Errorf("%s: %w", name, err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return env{}, nil, err
	}
	if err := cfg.SetAll(*sets); err != nil {
		return env{}, nil, err
	}
	for flag, key := range overrides {
		if !fs.Changed(flag) {
			continue
		}
		if err := cfg.Set(key, fs.Lookup(flag).Value.String()); err != nil {
			return env{}, nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return env{}, nil, err
	}

	level, _ := log.ParseLevel(cfg.Log.Level)
	logger, err := log.New(level, cfg.Log.Format)
	if err != nil {
		return env{}, nil, fmt.Errorf("build logger: %w", err)
	}
	ctx, teardown := log.WithLogger(ctx, logger)
	return env{ctx: ctx, cfg: cfg}, teardown, nil
}

// sizeValue is a pflag.Value for boards written as "NxM".
type sizeValue struct {
	dims *[]tiling.Dims
}

func (s sizeValue) String() string {
	if s.dims == nil {
		return ""
	}
	parts := make([]string, len(*s.dims))
	for i, d := range *s.dims {
		parts[i] = d.String()
	}
	return strings.Join(parts, ",")
}

func (s sizeValue) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		d, err := parseSize(part)
		if err != nil {
			return err
		}
		*s.dims = append(*s.dims, d)
	}
	return nil
}

func (s sizeValue) Type() string {
	return "NxM"
}

func parseSize(v string) (tiling.Dims, error) {
	a, b, ok := strings.Cut(strings.TrimSpace(v), "x")
	if !ok {
		return tiling.Dims{}, fmt.Errorf("size %q: expected NxM", v)
	}
	n, err := strconv.Atoi(a)
	if err != nil {
		return tiling.Dims{}, fmt.Errorf("size %q: %w", v, err)
	}
	m, err := strconv.Atoi(b)
	if err != nil {
		return tiling.Dims{}, fmt.Errorf("size %q: %w", v, err)
	}
	d := tiling.Dims{N: n, M: m}
	return d, d.Validate()
}
