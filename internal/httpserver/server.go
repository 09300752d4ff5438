// Package httpserver exposes maze generation, storage and scene layout over HTTP.
//
// Routes:
//   - GET  /health
//   - POST /mazes              generate and store a maze
//   - GET  /mazes              recently stored mazes
//   - GET  /mazes/{id}         cells with their walls
//   - GET  /mazes/{id}/ascii   text drawing
//   - GET  /mazes/{id}/scene   floor and wall placements
//   - GET  /mazes/{id}/solution path from the top-left to the bottom-right cell
package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/samdwyer/mazegen/internal/maze"
	"github.com/samdwyer/mazegen/internal/preset"
	"github.com/samdwyer/mazegen/internal/store"
)

// MaxSize bounds the edge length accepted over HTTP.
const MaxSize = 100

// MazeStore is the persistence the server needs.
type MazeStore interface {
	Save(ctx context.Context, seed int64, m *maze.Maze) (store.Record, error)
	Get(ctx context.Context, id string) (store.Record, error)
	List(ctx context.Context, limit int) ([]store.Summary, error)
}

// Server bundles the router with its dependencies.
type Server struct {
	r       *chi.Mux
	store   MazeStore
	presets *preset.Registry
	seed    func() int64
}

// New constructs a Server, installs middleware, and registers routes.
func New(st MazeStore, presets *preset.Registry, origin string) *Server {
	s := &Server{
		r:       chi.NewRouter(),
		store:   st,
		presets: presets,
		seed:    func() int64 { return time.Now().UnixNano() },
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(requestLogger)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(cors(origin))

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Route("/mazes", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Get("/", s.handleList)
		r.Get("/{id}", s.handleGet)
		r.Get("/{id}/ascii", s.handleASCII)
		r.Get("/{id}/scene", s.handleScene)
		r.Get("/{id}/solution", s.handleSolution)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors allows a single origin to call the API.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requestLogger logs one line per request with zerolog.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("elapsed", time.Since(start)).
			Str("request_id", chimw.GetReqID(r.Context())).
			Msg("request")
	})
}
