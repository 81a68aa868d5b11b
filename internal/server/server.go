// Package server exposes the answer pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hquocmanh0502/cmp-travel-ai-web/internal/corpus"
	"github.com/hquocmanh0502/cmp-travel-ai-web/internal/orchestrator"
)

const (
	maxBodyBytes    = 64 << 10
	pingTimeout     = 10 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Answerer is the pipeline surface the handlers need.
type Answerer interface {
	Answer(ctx context.Context, query string) orchestrator.Answer
	Ready() bool
	Stats() corpus.Stats
	Model() string
	Ping(ctx context.Context) error
}

// Config holds HTTP settings.
type Config struct {
	Addr string

	// RateLimit is requests per second per client on /chat. Zero disables limiting.
	RateLimit float64
	RateBurst int

	// CORSOrigins lists allowed origins; "*" allows any.
	CORSOrigins []string
}

// Server is the HTTP front end.
type Server struct {
	config   Config
	pipeline Answerer
	metrics  *Metrics
	limiter  *RateLimiter
	logger   *slog.Logger
}

// New builds a server around pipeline.
func New(config Config, pipeline Answerer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		config:   config,
		pipeline: pipeline,
		metrics:  NewMetrics(pipeline.Stats),
		logger:   logger.With("component", "server"),
	}
	if config.RateLimit > 0 {
		s.limiter = NewRateLimiter(config.RateLimit, config.RateBurst)
	}
	return s
}

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Handler constructs the chi mux with all routes wired.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors(s.config.CORSOrigins))

	r.Get("/health", s.handleHealth())
	r.Get("/status", s.handleStatus())
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		if s.limiter != nil {
			r.Use(s.rateLimit)
		}
		r.Post("/chat", s.handleChat())
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("server: listen on %s: %w", s.config.Addr, err)
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		s.metrics.observeRequest(route, status)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow(clientKey(r)) {
			s.metrics.rateLimited.Inc()
			writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "Too many requests", Status: "error"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// cors allows the configured origins and answers preflight requests.
func cors(origins []string) func(http.Handler) http.Handler {
	allowAll := false
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
		allowed[strings.TrimSuffix(o, "/")] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && (allowAll || allowed[origin]) {
				h := w.Header()
				if allowAll {
					h.Set("Access-Control-Allow-Origin", "*")
				} else {
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
				h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			}
			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
