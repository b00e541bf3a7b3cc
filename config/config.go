// Package config loads the YAML configuration shared by the tilings commands.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/on-the-ground/pentomino_tilings/log"
	"github.com/on-the-ground/pentomino_tilings/memo"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// ErrUnknownKey is returned by Set for keys not listed in Keys.
var ErrUnknownKey = errors.New("unknown config key")

// Store kinds accepted in cache.store.
const (
	StoreMap          = "map"
	StoreGenerational = "generational"
	StoreRistretto    = "ristretto"
)

type Server struct {
	Addr    string `yaml:"addr"`
	DataDir string `yaml:"data_dir"`
}

type Client struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type Cache struct {
	Policy     string `yaml:"policy"`
	Store      string `yaml:"store"`
	MaxEntries int    `yaml:"max_entries"`
}

type Generate struct {
	Workers int `yaml:"workers"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config is the root of the YAML document.
type Config struct {
	Server   Server   `yaml:"server"`
	Client   Client   `yaml:"client"`
	Cache    Cache    `yaml:"cache"`
	Generate Generate `yaml:"generate"`
	Log      Log      `yaml:"log"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server:   Server{Addr: ":8080", DataDir: "data"},
		Client:   Client{BaseURL: "http://localhost:8080", Timeout: 30 * time.Second},
		Cache:    Cache{Policy: memo.PolicyEventual.String(), Store: StoreMap, MaxEntries: 64},
		Generate: Generate{Workers: 2},
		Log:      Log{Level: string(log.LogInfo), Format: "json"},
	}
}

// Load reads path on top of Default. An empty path returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := Parse(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML document into cfg, rejecting unknown fields, and
// validates the result.
func Parse(raw []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode config: %w", err)
	}
	return cfg.Validate()
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs error
	if c.Server.Addr == "" {
		errs = multierr.Append(errs, fmt.Errorf("%s must not be empty", ServerAddr))
	}
	if c.Server.DataDir == "" {
		errs = multierr.Append(errs, fmt.Errorf("%s must not be empty", ServerDataDir))
	}
	if c.Client.Timeout < 0 {
		errs = multierr.Append(errs, fmt.Errorf("%s must not be negative", ClientTimeout))
	}
	if _, err := memo.ParsePolicy(c.Cache.Policy); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("%s: %w", CachePolicy, err))
	}
	switch c.Cache.Store {
	case StoreMap, StoreGenerational, StoreRistretto:
	default:
		errs = multierr.Append(errs, fmt.Errorf("%s: unknown store %q", CacheStore, c.Cache.Store))
	}
	if c.Cache.Store != StoreMap && c.Cache.MaxEntries <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("%s must be positive for %s store", CacheMaxEntries, c.Cache.Store))
	}
	if c.Generate.Workers <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("%s must be positive", GenerateWorkers))
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("%s: %w", LogLevel, err))
	}
	return errs
}

// Set assigns a single value by its dotted key, as given on the command line.
func (c *Config) Set(key, value string) error {
	var err error
	switch key {
	case ServerAddr:
		c.Server.Addr = value
	case ServerDataDir:
		c.Server.DataDir = value
	case ClientBaseURL:
		c.Client.BaseURL = value
	case ClientTimeout:
		c.Client.Timeout, err = time.ParseDuration(value)
	case CachePolicy:
		c.Cache.Policy = value
	case CacheStore:
		c.Cache.Store = value
	case CacheMaxEntries:
		c.Cache.MaxEntries, err = strconv.Atoi(value)
	case GenerateWorkers:
		c.Generate.Workers, err = strconv.Atoi(value)
	case LogLevel:
		c.Log.Level = value
	case LogFormat:
		c.Log.Format = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}

// SetAll applies "key=value" assignments in order.
func (c *Config) SetAll(assignments []string) error {
	for _, a := range assignments {
		key, value, ok := strings.Cut(a, "=")
		if !ok {
			return fmt.Errorf("expected key=value, got %q", a)
		}
		if err := c.Set(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			return err
		}
	}
	return nil
}
