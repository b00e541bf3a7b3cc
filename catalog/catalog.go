// Package catalog indexes the tiling files available in a data directory.
package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	memdb "github.com/hashicorp/go-memdb"
	"github.com/on-the-ground/pentomino_tilings/log"
	"github.com/on-the-ground/pentomino_tilings/tiling"
	"github.com/rickb777/date/v2"
	"github.com/rickb777/date/v2/timespan"
)

const (
	table       = "entries"
	indexID     = "id"
	indexHeight = "n"
)

// Entry describes one tilings file.
type Entry struct {
	ID          string // Dims.ID
	N, M        int
	Count       int    // number of tilings in the file
	File        string // base name
	GeneratedOn date.Date
	Took        timespan.TimeSpan // zero for files found by Scan
}

// Dims returns the board of e.
func (e Entry) Dims() tiling.Dims {
	return tiling.Dims{N: e.N, M: e.M}
}

// NewEntry fills ID and File from the board.
func NewEntry(d tiling.Dims, count int, span timespan.TimeSpan) Entry {
	return Entry{
		ID:          d.ID(),
		N:           d.N,
		M:           d.M,
		Count:       count,
		File:        tiling.FileName(d.N, d.M),
		GeneratedOn: date.NewAt(span.End()),
		Took:        span,
	}
}

func schema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			table: {
				Name: table,
				Indexes: map[string]*memdb.IndexSchema{
					indexID: {
						Name:    indexID,
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "ID"},
					},
					indexHeight: {
						Name:    indexHeight,
						Indexer: &memdb.IntFieldIndex{Field: "N"},
					},
				},
			},
		},
	}
}

// Catalog is an in-memory index of Entry values. It is safe for concurrent use.
type Catalog struct {
	db *memdb.MemDB
}

// New returns an empty catalog.
func New() (*Catalog, error) {
	db, err := memdb.NewMemDB(schema())
	if err != nil {
		return nil, fmt.Errorf("create catalog: %w", err)
	}
	return &Catalog{db: db}, nil
}

// Put inserts e, replacing any entry with the same ID.
func (c *Catalog) Put(e Entry) error {
	if e.ID == "" {
		e.ID = e.Dims().ID()
	}
	txn := c.db.Txn(true)
	defer txn.Abort()

	if err := txn.Insert(table, &e); err != nil {
		return fmt.Errorf("insert %s: %w", e.ID, err)
	}
	txn.Commit()
	return nil
}

// Get returns the entry of an n×m board.
func (c *Catalog) Get(n, m int) (Entry, bool, error) {
	txn := c.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(table, indexID, tiling.Dims{N: n, M: m}.ID())
	if err != nil || raw == nil {
		return Entry{}, false, err
	}
	return *raw.(*Entry), true, nil
}

// List returns every entry ordered by board.
func (c *Catalog) List() ([]Entry, error) {
	return c.collect(indexID)
}

// ByHeight returns the entries with n rows ordered by board.
func (c *Catalog) ByHeight(n int) ([]Entry, error) {
	return c.collect(indexHeight, n)
}

func (c *Catalog) collect(index string, args ...interface{}) ([]Entry, error) {
	txn := c.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(table, index, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", index, err)
	}
	var out []Entry
	for raw := it.Next(); raw != nil; raw = it.Next() {
		out = append(out, *raw.(*Entry))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].N != out[j].N {
			return out[i].N < out[j].N
		}
		return out[i].M < out[j].M
	})
	return out, nil
}

// Scan indexes every tilings file in dir and returns how many it added.
// Files that fail to decode are logged and skipped.
func (c *Catalog) Scan(ctx context.Context, dir string) (int, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read data dir: %w", err)
	}

	added := 0
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		d, ok := tiling.ParseFileName(f.Name())
		if !ok {
			continue
		}
		info, err := f.Info()
		if err != nil {
			return added, fmt.Errorf("stat %s: %w", f.Name(), err)
		}
		set, _, err := tiling.DirSource(dir).Load(ctx, d.N, d.M)
		if err != nil {
			log.Eff(ctx, log.LogWarn, "skipping unreadable tilings file", map[string]interface{}{
				"file":  f.Name(),
				"error": err.Error(),
			})
			continue
		}
		modTime := info.ModTime()
		e := NewEntry(d, len(set), timespan.BetweenTimes(modTime, modTime))
		if err := c.Put(e); err != nil {
			return added, err
		}
		added++
	}
	log.Eff(ctx, log.LogInfo, "catalog scanned", map[string]interface{}{
		"dir":     filepath.Clean(dir),
		"entries": added,
	})
	return added, nil
}

// TookString renders the generation time of e, or "" when unknown.
func (e Entry) TookString() string {
	d := e.Took.Duration()
	if d == 0 {
		return ""
	}
	return d.Round(time.Millisecond).String()
}
