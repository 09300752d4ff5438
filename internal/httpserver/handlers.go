package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/samdwyer/mazegen/internal/maze"
	"github.com/samdwyer/mazegen/internal/preset"
	"github.com/samdwyer/mazegen/internal/scene"
	"github.com/samdwyer/mazegen/internal/store"
)

type createRequest struct {
	Size   int    `json:"size"`
	Seed   int64  `json:"seed"`
	Preset string `json:"preset"`
}

type cellResponse struct {
	X     int     `json:"x"`
	Y     int     `json:"y"`
	Walls [4]bool `json:"walls"` // top, right, bottom, left
}

type mazeResponse struct {
	ID        string         `json:"id"`
	Size      int            `json:"size"`
	Seed      int64          `json:"seed"`
	CreatedAt time.Time      `json:"created_at"`
	Passages  int            `json:"passages"`
	Cells     []cellResponse `json:"cells"`
}

// handleCreate generates a maze from the request and stores it.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad_json"})
			return
		}
	}
	if req.Size == 0 && req.Preset == "" {
		req.Size = maze.DefaultSize
	}

	size, seed, _, err := s.presets.Apply(req.Preset, req.Size, req.Seed)
	if err != nil {
		writeError(w, err)
		return
	}
	if size > MaxSize {
		writeError(w, fmt.Errorf("%w: size must be at most %d", maze.ErrInvalidConfiguration, MaxSize))
		return
	}
	if seed == 0 {
		seed = s.seed()
	}

	m, err := maze.New(size, rand.New(rand.NewSource(seed)))
	if err != nil {
		writeError(w, err)
		return
	}
	if err := m.Generate(r.Context()); err != nil {
		writeError(w, err)
		return
	}

	rec, err := s.store.Save(r.Context(), seed, m)
	if err != nil {
		writeError(w, err)
		return
	}
	log.Info().Str("id", rec.ID).Int("size", size).Int64("seed", seed).Msg("maze created")

	writeJSON(w, http.StatusCreated, toResponse(rec))
}

// handleList returns recent mazes; ?limit=N bounds the count.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad_limit"})
			return
		}
		limit = n
	}

	list, err := s.store.List(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"mazes": list})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toResponse(rec))
}

func (s *Server) handleASCII(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.load(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(rec.Maze.String()))
}

func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":         rec.ID,
		"placements": scene.Build(rec.Maze),
	})
}

func (s *Server) handleSolution(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.load(w, r)
	if !ok {
		return
	}
	last := rec.Size - 1
	path := rec.Maze.ShortestPath(maze.Coord{}, maze.Coord{X: last, Y: last})
	writeJSON(w, http.StatusOK, map[string]any{
		"id":   rec.ID,
		"path": path,
	})
}

// load fetches the maze named by the {id} URL parameter, writing the error response on failure.
func (s *Server) load(w http.ResponseWriter, r *http.Request) (store.Record, bool) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return store.Record{}, false
	}
	return rec, true
}

func toResponse(rec store.Record) mazeResponse {
	m := rec.Maze
	cells := make([]cellResponse, 0, rec.Size*rec.Size)
	for y := 0; y < rec.Size; y++ {
		for x := 0; x < rec.Size; x++ {
			c := maze.Coord{X: x, Y: y}
			var walls [4]bool
			for _, side := range maze.Sides {
				walls[side] = m.HasWall(c, side)
			}
			cells = append(cells, cellResponse{X: x, Y: y, Walls: walls})
		}
	}
	return mazeResponse{
		ID:        rec.ID,
		Size:      rec.Size,
		Seed:      rec.Seed,
		CreatedAt: rec.CreatedAt,
		Passages:  m.Passages(),
		Cells:     cells,
	}
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, maze.ErrInvalidConfiguration):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, preset.ErrUnknown):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found"})
	default:
		log.Error().Err(err).Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal"})
	}
}
