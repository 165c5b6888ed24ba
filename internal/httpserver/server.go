// internal/httpserver/server.go
//
// HTTP server wiring for the Bulls and Cows backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs,
//     structured request logs).
//   - Public endpoints: "/", "/health", "/metrics".
//   - Game endpoints under /games (see routes_games.go).
//   - Daily challenge endpoints under /daily (see routes_daily.go).
//
// Notes:
//   - Handlers are stateless: each request loads the GameState from the store,
//     mutates it and saves it back. Requests on one game ID are serialized by
//     a per-game lock; the store itself never sees concurrent writers for an ID.
//   - There is no authentication; player names are plain labels.

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/robalobadob/bullscows/internal/daily"
	"github.com/robalobadob/bullscows/internal/secret"
	"github.com/robalobadob/bullscows/internal/store"
)

// Server bundles router, game store, secret sources and metrics.
type Server struct {
	r       *chi.Mux
	store   store.Store
	gen     secret.Generator
	daily   daily.Generator
	log     zerolog.Logger
	origin  string
	reg     *prometheus.Registry
	metrics *metrics
	locks   *keyedMutex
	newID   func() string
}

// Option configures a Server.
type Option func(*Server)

func WithLogger(l zerolog.Logger) Option { return func(s *Server) { s.log = l } }

// WithGenerator sets the secret source for new games (default secret.Local).
func WithGenerator(g secret.Generator) Option { return func(s *Server) { s.gen = g } }

// WithDaily sets the generator behind daily games.
func WithDaily(d daily.Generator) Option { return func(s *Server) { s.daily = d } }

// WithClientOrigin sets the single origin allowed by CORS.
func WithClientOrigin(origin string) Option { return func(s *Server) { s.origin = origin } }

// WithIDFunc replaces the game ID source (uuid v4 by default).
func WithIDFunc(f func() string) Option { return func(s *Server) { s.newID = f } }

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, opts ...Option) *Server {
	s := &Server{
		r:      chi.NewRouter(),
		store:  st,
		gen:    secret.Local{},
		daily:  daily.Generator{Salt: "bulls-and-cows"},
		log:    zerolog.Nop(),
		origin: "http://localhost:5173",
		reg:    prometheus.NewRegistry(),
		locks:  newKeyedMutex(),
		newID:  newGameID,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.metrics = newMetrics(s.reg)

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger(s.log))            // one structured line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(s.origin))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service": "bulls-and-cows",
			"endpoints": []string{
				"/health", "/metrics", "POST /games", "GET /games/{id}", "POST /games/{id}/guess",
				"POST /games/{id}/players", "DELETE /games/{id}/players/{name}",
				"POST /games/{id}/reset", "GET /games/{id}/board", "GET /daily", "POST /daily/new",
			},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{}))

	s.mountGames(s.r)
	s.mountDaily(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Handler exposes the router (used by http.Server and tests).
func (s *Server) Handler() http.Handler { return s.r }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Start serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	hs := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- hs.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.log.Info().Msg("shutting down http server")
		return hs.Shutdown(shutdownCtx)
	}
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requestLogger writes method, path, status and latency for every request.
func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				log.Info().
					Str("request_id", chimw.GetReqID(r.Context())).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Int("status", ww.Status()).
					Int("bytes", ww.BytesWritten()).
					Dur("latency", time.Since(start)).
					Msg("http request")
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

// ------------------------------- helpers -----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
