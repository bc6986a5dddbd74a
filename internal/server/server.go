// Package server exposes the generators over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/josephgoksu/monadgen/internal/generation"
	"github.com/josephgoksu/monadgen/internal/generators"
	"github.com/spf13/afero"
)

// Options wires a Server to its collaborators.
type Options struct {
	Addr         string
	Registry     *generators.Registry
	Store        *generation.Store
	Orchestrator *generation.Orchestrator

	// StaticFs and StaticDir locate index.html and /static assets.
	// StaticFs defaults to the OS filesystem.
	StaticFs  afero.Fs
	StaticDir string

	// Origins allowed by CORS. "*" allows any origin.
	Origins []string

	Provider string
	Version  string
	Logger   *slog.Logger
	Now      func() time.Time
}

type Server struct {
	registry  *generators.Registry
	store     *generation.Store
	orch      *generation.Orchestrator
	staticFs  afero.Fs
	staticDir string
	origins   map[string]struct{}
	provider  string
	version   string
	log       *slog.Logger
	now       func() time.Time
	validate  *validator.Validate
	server    *http.Server
}

func New(opts Options) (*Server, error) {
	if opts.Registry == nil || opts.Store == nil || opts.Orchestrator == nil {
		return nil, errors.New("server: registry, store and orchestrator are required")
	}

	s := &Server{
		registry:  opts.Registry,
		store:     opts.Store,
		orch:      opts.Orchestrator,
		staticFs:  opts.StaticFs,
		staticDir: opts.StaticDir,
		origins:   make(map[string]struct{}),
		provider:  opts.Provider,
		version:   opts.Version,
		log:       opts.Logger,
		now:       opts.Now,
		validate:  newValidator(),
	}
	if s.staticFs == nil {
		s.staticFs = afero.NewOsFs()
	}
	if s.staticDir == "" {
		s.staticDir = "static"
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	origins := opts.Origins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	for _, o := range origins {
		s.origins[o] = struct{}{}
	}

	s.server = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.registerRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Handler returns the fully wrapped router.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Addr is the configured listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}

func (s *Server) Start(wg *sync.WaitGroup, errChan chan<- error) {
	wg.Add(1)
	go func() {
		defer wg.Done()

		s.log.Info("server listening", "addr", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
