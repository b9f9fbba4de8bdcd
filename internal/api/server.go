// Package api serves the packing pipeline over HTTP.
//
// Routes:
//
//	POST /v1/plans       request document → plan
//	POST /v1/partitions  request document → family partitions only
//	GET  /healthz        liveness
//	GET  /version        build information
//
// A request document is the JSON accepted by [io.ReadRequest], optionally
// with an "options" member overriding the server's run parameters:
//
//	{"skus": {...}, "boxes": {...}, "orders": {...}, "families": [...],
//	 "options": {"max_weight": 20, "stage_order": ["crate", "box"]}}
//
// Errors are returned as {"error": {"code": ..., "message": ...}} with the
// status given by [errors.HTTPStatus]. Every pipeline response carries the
// run id in the X-Run-ID header.
//
// [io.ReadRequest]: github.com/matzehuels/palletizer/pkg/io.ReadRequest
// [errors.HTTPStatus]: github.com/matzehuels/palletizer/pkg/errors.HTTPStatus
package api

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/palletizer/pkg/observability"
	"github.com/matzehuels/palletizer/pkg/pipeline"
)

// MaxBodyBytes bounds the size of a request document.
const MaxBodyBytes = 32 << 20

// HeaderRunID carries the run id of a pipeline response.
const HeaderRunID = "X-Run-ID"

// Server handles API requests with a shared runner.
type Server struct {
	runner   *pipeline.Runner
	defaults pipeline.Options
	logger   *log.Logger
	router   chi.Router
}

// NewServer returns a server planning with runner. defaults holds the run
// parameters used when a request does not override them; they are validated
// here so a misconfigured server fails at startup.
func NewServer(runner *pipeline.Runner, defaults pipeline.Options, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	check := defaults
	if err := check.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	defaults.Logger = logger

	s := &Server{runner: runner, defaults: defaults, logger: logger}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/plans", s.handlePlan)
		r.Post("/partitions", s.handlePartition)
	})
	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully. ready, when non-nil, receives the bound address once the
// listener is open.
func (s *Server) ListenAndServe(ctx context.Context, addr string, ready func(net.Addr)) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	if ready != nil {
		ready(ln.Addr())
	}

	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       time.Minute,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// observe reports every request to the registered HTTP hooks and logs it.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		observability.HTTP().Served(r.Context(), observability.RequestEvent{
			Method:   r.Method,
			Route:    route,
			Status:   status,
			RunID:    ww.Header().Get(HeaderRunID),
			Duration: time.Since(start),
		})
		s.logger.Debug("request", "method", r.Method, "route", route, "status", status,
			"duration", time.Since(start), "request_id", middleware.GetReqID(r.Context()))
	})
}
