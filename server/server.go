// Package server publishes tiling files and the palette over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/klauspost/compress/gzhttp"
	"github.com/on-the-ground/pentomino_tilings/catalog"
	"github.com/on-the-ground/pentomino_tilings/log"
	"github.com/on-the-ground/pentomino_tilings/tiling"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var errNoCatalog = errors.New("server needs a catalog")

type Options struct {
	Addr    string
	DataDir string
	// Source backs /api/tilings/{n}/{m}. Defaults to a CachedLoader over DataDir.
	Source  tiling.Source
	Catalog *catalog.Catalog
}

type Server struct {
	server *http.Server
	logger *zap.Logger
}

// New builds the server and its routes. The logger carried by ctx is used for
// access logs.
func New(ctx context.Context, opts Options) (*Server, error) {
	if opts.Catalog == nil {
		return nil, errNoCatalog
	}
	if opts.Source == nil {
		opts.Source = tiling.NewCachedLoader(tiling.DirSource(opts.DataDir), nil)
	}
	logger := log.FromContext(ctx)

	return &Server{
		server: &http.Server{
			Addr:    opts.Addr,
			Handler: routes(logger, opts),
		},
		logger: logger,
	}, nil
}

func routes(logger *zap.Logger, opts Options) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(handleNotFound)

	r.HandleFunc("/data/tilings-{n:[0-9]+}-{m:[0-9]+}.json", handleDataFile(opts.DataDir)).Methods(http.MethodGet, http.MethodHead)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/tilings", handleListTilings(opts.Catalog)).Methods(http.MethodGet)
	api.HandleFunc("/tilings/{n:[0-9]+}/{m:[0-9]+}", handleGetTilings(opts.Source)).Methods(http.MethodGet)
	api.HandleFunc("/tilings/{n:[0-9]+}/{m:[0-9]+}/{i:[0-9]+}", handleRenderTiling(opts.Source)).Methods(http.MethodGet)
	api.HandleFunc("/colors", handleColors()).Methods(http.MethodGet)
	api.HandleFunc("/sizes", handleSizes()).Methods(http.MethodGet)

	return gzhttp.GzipHandler(withRequestLogger(logger)(r))
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start listens on the configured address and blocks until Stop.
func (s *Server) Start() error {
	l, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.server.Addr, err)
	}
	return s.Serve(l)
}

// Serve accepts connections on l until Stop. It returns nil after a clean stop.
func (s *Server) Serve(l net.Listener) error {
	s.logger.Info("server listening", zap.String("addr", l.Addr().String()))
	if err := s.server.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("server error", zap.Error(err))
		return err
	}
	s.logger.Info("server closed")
	return nil
}

// Stop shuts the server down gracefully, closing remaining connections if ctx
// expires first.
func (s *Server) Stop(ctx context.Context) error {
	err := s.server.Shutdown(ctx)
	if err != nil {
		err = multierr.Append(err, s.server.Close())
	}
	return err
}
