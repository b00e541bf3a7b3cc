package server

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/on-the-ground/pentomino_tilings/catalog"
	"github.com/on-the-ground/pentomino_tilings/log"
	"github.com/on-the-ground/pentomino_tilings/palette"
	"github.com/on-the-ground/pentomino_tilings/tiling"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// dimsVars reads the {n} and {m} route variables.
func dimsVars(r *http.Request) (tiling.Dims, error) {
	vars := mux.Vars(r)
	n, err := strconv.Atoi(vars["n"])
	if err != nil {
		return tiling.Dims{}, tiling.ErrInvalidDims
	}
	m, err := strconv.Atoi(vars["m"])
	if err != nil {
		return tiling.Dims{}, tiling.ErrInvalidDims
	}
	d := tiling.Dims{N: n, M: m}
	return d, d.Validate()
}

// handleDataFile serves dataDir/tilings-<n>-<m>.json as stored on disk.
func handleDataFile(dataDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := dimsVars(r)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, filepath.Join(dataDir, tiling.FileName(d.N, d.M)))
	}
}

type entryResponse struct {
	ID          string `json:"id"`
	N           int    `json:"n"`
	M           int    `json:"m"`
	Label       string `json:"label,omitempty"`
	Count       int    `json:"count"`
	Path        string `json:"path"`
	GeneratedOn string `json:"generated_on"`
	Took        string `json:"took,omitempty"`
}

func newEntryResponse(e catalog.Entry) entryResponse {
	label, _ := palette.SizeLabel(e.N)
	return entryResponse{
		ID:          e.ID,
		N:           e.N,
		M:           e.M,
		Label:       label,
		Count:       e.Count,
		Path:        tiling.Path(e.N, e.M),
		GeneratedOn: e.GeneratedOn.String(),
		Took:        e.TookString(),
	}
}

func handleListTilings(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := cat.List()
		if err != nil {
			log.Eff(r.Context(), log.LogError, "list catalog", map[string]interface{}{"error": err.Error()})
			writeError(w, http.StatusInternalServerError, "catalog unavailable")
			return
		}
		out := make([]entryResponse, 0, len(entries))
		for _, e := range entries {
			out = append(out, newEntryResponse(e))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// loadSet resolves the board from the route and loads its tilings. It writes
// the error response itself and reports whether the caller should continue.
func loadSet(w http.ResponseWriter, r *http.Request, source tiling.Source) (tiling.Dims, tiling.Set, bool) {
	d, err := dimsVars(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return d, nil, false
	}
	set, found, err := source.Load(r.Context(), d.N, d.M)
	if err != nil {
		log.Eff(r.Context(), log.LogError, "load tilings", map[string]interface{}{
			"board": d.String(),
			"error": err.Error(),
		})
		writeError(w, http.StatusInternalServerError, "failed to load tilings")
		return d, nil, false
	}
	if !found {
		writeError(w, http.StatusNotFound, "no tilings for "+d.String())
		return d, nil, false
	}
	return d, set, true
}

func handleGetTilings(source tiling.Source) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, set, ok := loadSet(w, r, source)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, set)
	}
}

// handleRenderTiling draws the i-th tiling of a board as text.
func handleRenderTiling(source tiling.Source) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		i, err := strconv.Atoi(mux.Vars(r)["i"])
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid index")
			return
		}
		d, set, ok := loadSet(w, r, source)
		if !ok {
			return
		}
		if i < 0 || i >= len(set) {
			writeError(w, http.StatusNotFound, "index out of range")
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(tiling.Render(d.N, d.M, set[i])))
	}
}

type colorResponse struct {
	CSS string `json:"css"`
	Hex string `json:"hex"`
}

func handleColors() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := make(map[string]colorResponse, len(palette.Colors))
		for _, label := range palette.Labels() {
			hex, err := palette.Hex(label)
			if err != nil {
				writeError(w, http.StatusInternalServerError, err.Error())
				return
			}
			out[label] = colorResponse{CSS: palette.Colors[label], Hex: hex}
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func handleSizes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, palette.Sizes)
	}
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "not found")
}
