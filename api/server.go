// Package api - Thin HTTP layer over the engine
// The API is ONLY responsible for: input decoding, engine orchestration, output serialization.
// The API NEVER performs cost logic.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"cloudguide/adapters/storage"
	"cloudguide/core/engine"
	"cloudguide/internal/logging"
	"cloudguide/internal/metrics"
)

const apiPrefix = "/api/v1"

// Options configures the server
type Options struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// RateLimit is requests per second per client; zero disables limiting
	RateLimit float64
	Burst     int

	Version string
}

// Server is the API server
type Server struct {
	engine  *engine.Engine
	store   storage.Store
	metrics *metrics.Metrics
	limiter *RateLimiter
	router  chi.Router
	version string

	httpServer *http.Server
	startTime  time.Time
}

// NewServer creates a new API server. store may be nil, in which case the
// analyses routes answer 503.
func NewServer(eng *engine.Engine, store storage.Store, m *metrics.Metrics, opts Options) *Server {
	if m == nil {
		m = metrics.Default()
	}

	s := &Server{
		engine:    eng,
		store:     store,
		metrics:   m,
		limiter:   NewRateLimiter(opts.RateLimit, opts.Burst),
		router:    chi.NewRouter(),
		version:   opts.Version,
		startTime: time.Now(),
	}
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         opts.Address,
		Handler:      s.router,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes() {
	r := s.router
	r.Use(requestID, s.observe, recoverer)

	r.Get("/health", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route(apiPrefix, func(r chi.Router) {
		r.Use(s.rateLimit)

		r.Post("/advisory", s.handleAdvisory)
		r.Post("/pricing/compare", s.handleCompare)
		r.Get("/pricing/disk-type", s.handleDiskType)
		r.Get("/providers", s.handleListProviders)
		r.Get("/providers/{name}", s.handleGetProvider)
		r.Post("/estimate", s.handleEstimate)
		r.Post("/estimate/profile", s.handleEstimateProfile)

		r.Route("/analyses", func(r chi.Router) {
			r.Use(s.requireStore)
			r.Get("/", s.handleListAnalyses)
			r.Post("/", s.handleCreateAnalysis)
			r.Get("/{id}", s.handleGetAnalysis)
			r.Put("/{id}", s.handleUpdateAnalysis)
			r.Delete("/{id}", s.handleDeleteAnalysis)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, ErrorResponse{Error: ErrorBody{
			Code:      "NOT_FOUND",
			Message:   "no route for " + r.Method + " " + r.URL.Path,
			RequestID: RequestIDFrom(r.Context()),
		}}, http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, ErrorResponse{Error: ErrorBody{
			Code:      "METHOD_NOT_ALLOWED",
			Message:   r.Method + " not allowed on " + r.URL.Path,
			RequestID: RequestIDFrom(r.Context()),
		}}, http.StatusMethodNotAllowed)
	})
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, HealthResponse{
		Status:  "healthy",
		Version: s.version,
		Time:    time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"version":        s.version,
		"engine":         "cloudguide",
		"api_version":    "v1",
		"uptime_seconds": int64(time.Since(s.startTime).Seconds()),
	}, http.StatusOK)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start listens until Shutdown is called
func (s *Server) Start() error {
	logging.Info("starting server", zap.String("address", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
