package tiling

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/on-the-ground/pentomino_tilings/log"
	"github.com/on-the-ground/pentomino_tilings/memo"
)

// Source yields the tiling set of an n×m board.
// found is false when no set exists for the board; that is not an error.
type Source interface {
	Load(ctx context.Context, n, m int) (set Set, found bool, err error)
}

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

var _ Source = (*Loader)(nil)

// Loader fetches tiling sets from Path(n, m) under a base URL.
type Loader struct {
	baseURL string
	client  Doer
}

// NewLoader returns a Loader for baseURL. A nil client means http.DefaultClient.
func NewLoader(baseURL string, client Doer) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Loader{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
	}
}

// URL is the address Load requests for an n×m board.
func (l *Loader) URL(n, m int) string {
	return l.baseURL + Path(n, m)
}

// Load performs one GET of URL(n, m).
// A 2xx response is decoded as a JSON array of tilings. Any other status means
// the board has no precomputed set and yields (nil, false, nil). Transport and
// decoding failures are returned as errors. Load neither retries nor sets its
// own deadline; both belong to ctx and the client.
func (l *Loader) Load(ctx context.Context, n, m int) (Set, bool, error) {
	if err := (Dims{N: n, M: m}).Validate(); err != nil {
		return nil, false, err
	}

	url := l.URL(n, m)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("build request for %s: %w", url, err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := l.client.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, res.Body)
		log.Eff(ctx, log.LogDebug, "no tilings", map[string]interface{}{
			"url":    url,
			"status": res.StatusCode,
		})
		return nil, false, nil
	}

	set, err := Decode(res.Body)
	if err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", url, err)
	}
	log.Eff(ctx, log.LogDebug, "loaded tilings", map[string]interface{}{
		"url":   url,
		"count": len(set),
	})
	return set, true, nil
}

// Decode reads a JSON array of tilings.
func Decode(r io.Reader) (Set, error) {
	var set Set
	if err := json.NewDecoder(r).Decode(&set); err != nil {
		return nil, err
	}
	if set == nil {
		// "null" decodes to a nil slice; keep found sets non-nil
		set = Set{}
	}
	return set, nil
}

var _ Source = DirSource("")

// DirSource reads tiling sets from FileName(n, m) files in a directory.
type DirSource string

// Load reads the file for an n×m board. A missing file yields (nil, false, nil).
func (d DirSource) Load(_ context.Context, n, m int) (Set, bool, error) {
	if err := (Dims{N: n, M: m}).Validate(); err != nil {
		return nil, false, err
	}
	path := filepath.Join(string(d), FileName(n, m))
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	} else if err != nil {
		return nil, false, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	set, err := Decode(f)
	if err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", path, err)
	}
	return set, true, nil
}

// Lookup is the memoized outcome of a Source.Load.
type Lookup struct {
	Set   Set
	Found bool
}

var _ Source = (*CachedLoader)(nil)

// CachedLoader memoizes a Source per board. Absent boards are cached like found
// ones; failed loads are not.
type CachedLoader struct {
	source Source
	cache  *memo.Cache[Dims, Lookup]
}

// NewCachedLoader wraps source. A nil cache means an unbounded eventual cache.
func NewCachedLoader(source Source, cache *memo.Cache[Dims, Lookup]) *CachedLoader {
	if cache == nil {
		cache = memo.New[Dims, Lookup](memo.Config{Name: "tilings"}, nil)
	}
	return &CachedLoader{source: source, cache: cache}
}

// Load returns the cached lookup for n×m, loading it from the source on a miss.
func (c *CachedLoader) Load(ctx context.Context, n, m int) (Set, bool, error) {
	d := Dims{N: n, M: m}
	if err := d.Validate(); err != nil {
		return nil, false, err
	}
	res, err := c.cache.Do(ctx, d, c.load)
	if err != nil {
		return nil, false, err
	}
	return res.Set, res.Found, nil
}

func (c *CachedLoader) load(ctx context.Context, d Dims) (Lookup, error) {
	set, found, err := c.source.Load(ctx, d.N, d.M)
	if err != nil {
		return Lookup{}, err
	}
	return Lookup{Set: set, Found: found}, nil
}

// Cache exposes the underlying cache for stats and reset.
func (c *CachedLoader) Cache() *memo.Cache[Dims, Lookup] {
	return c.cache
}
