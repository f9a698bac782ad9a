// Package server exposes pathplay over HTTP for a browser front end.
//
// Each client works in a workspace: a graph editor plus a player that
// animates the shortest-path trace in real time. Clients poll the
// workspace (or its frame) and drive it with small POST requests.
//
// # Routes
//
//	POST   /api/workspaces                      create (optionally random)
//	GET    /api/workspaces/{id}                 workspace view
//	DELETE /api/workspaces/{id}
//	GET    /api/workspaces/{id}/graph?format=   graph file (json, toml, yaml)
//	PUT    /api/workspaces/{id}/graph?format=   replace the graph
//	GET    /api/workspaces/{id}/trace           computed trace
//	GET    /api/workspaces/{id}/frame           current frame as JSON
//	GET    /api/workspaces/{id}/frame/{format}  current frame drawn (svg, dot, png, pdf)
//	POST   /api/workspaces/{id}/start|replay|restart|reset
//	PUT    /api/workspaces/{id}/interval        {"interval_ms": n} or {"speed": n}
//	POST   /api/workspaces/{id}/editor/{op}     toggle, cancel, select, source,
//	                                            weight, confirm, resize, clear, random
//
// Errors are JSON objects {"error": {"code": ..., "message": ...}} with the
// status derived from the error code.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/pathplay/pkg/buildinfo"
	"github.com/matzehuels/pathplay/pkg/graph"
	"github.com/matzehuels/pathplay/pkg/pipeline"
	"github.com/matzehuels/pathplay/pkg/playback"
)

// DefaultNodes is the node count of a new workspace.
const DefaultNodes = 6

// cleanupInterval is how often expired workspaces are collected.
const cleanupInterval = time.Minute

// Options configures a [Server].
type Options struct {
	// Runner computes traces and renders frames. Nil means an uncached runner.
	Runner *pipeline.Runner

	// Logger receives request logs. Nil means log.Default().
	Logger *log.Logger

	// Clock drives playback ticks. Nil means the real clock.
	Clock playback.Clock

	// TTL is the idle lifetime of a workspace. Zero means DefaultTTL.
	TTL time.Duration

	// Interval is the initial tick interval of new workspaces.
	Interval time.Duration

	// Nodes is the node count of new workspaces. Zero means DefaultNodes.
	Nodes int

	// Random configures the "random" editor operation and random creation.
	Random graph.RandomOptions
}

// Server serves workspaces over HTTP.
type Server struct {
	runner   *pipeline.Runner
	logger   *log.Logger
	clock    playback.Clock
	store    *Store
	interval time.Duration
	nodes    int
	random   graph.RandomOptions
	now      func() time.Time
}

// New creates a server.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	runner := opts.Runner
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	nodes := opts.Nodes
	if nodes == 0 {
		nodes = DefaultNodes
	}
	return &Server{
		runner:   runner,
		logger:   logger,
		clock:    opts.Clock,
		store:    NewStore(opts.TTL),
		interval: opts.Interval,
		nodes:    nodes,
		random:   opts.Random,
		now:      time.Now,
	}
}

// Store returns the workspace store.
func (s *Server) Store() *Store { return s.store }

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/version", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, buildinfo.Get())
	})

	r.Route("/api/workspaces", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.withWorkspace(s.handleGet))
			r.Delete("/", s.handleDelete)

			r.Get("/graph", s.withWorkspace(s.handleGetGraph))
			r.Put("/graph", s.withWorkspace(s.handlePutGraph))
			r.Get("/trace", s.withWorkspace(s.handleTrace))
			r.Get("/frame", s.withWorkspace(s.handleFrame))
			r.Get("/frame/{format}", s.withWorkspace(s.handleFrameImage))

			r.Post("/start", s.withWorkspace(s.handleStart))
			r.Post("/replay", s.withWorkspace(s.handleReplay))
			r.Post("/restart", s.withWorkspace(s.handleRestart))
			r.Post("/reset", s.withWorkspace(s.handleReset))
			r.Put("/interval", s.withWorkspace(s.handleInterval))

			r.Post("/editor/{op}", s.withWorkspace(s.handleEditor))
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully. Expired workspaces are collected in the background.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.collect(ctx)

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.store.Close()
	s.logger.Info("server stopped")
	return err
}

func (s *Server) collect(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.store.Cleanup(); n > 0 {
				s.logger.Debug("collected expired workspaces", "count", n)
			}
		}
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
