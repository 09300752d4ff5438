// Package store persists generated mazes in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/mazegen/internal/maze"
	"github.com/samdwyer/mazegen/internal/telemetry"
)

// ErrNotFound is returned when no maze exists for an ID.
var ErrNotFound = errors.New("maze not found")

const schema = `
CREATE TABLE IF NOT EXISTS mazes (
    id         TEXT PRIMARY KEY,
    size       INTEGER NOT NULL,
    seed       INTEGER NOT NULL,
    walls      TEXT    NOT NULL,
    created_at TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS mazes_created_at ON mazes(created_at);`

// Record is a stored maze.
type Record struct {
	ID        string
	Size      int
	Seed      int64
	CreatedAt time.Time
	Maze      *maze.Maze
}

// Summary is a stored maze without its wall data.
type Summary struct {
	ID        string    `json:"id"`
	Size      int       `json:"size"`
	Seed      int64     `json:"seed"`
	CreatedAt time.Time `json:"created_at"`
}

// Store wraps the SQLite handle.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (and creates if missing) the database at dsn and applies the schema.
func Open(dsn string) (*Store, error) {
	// Ensure directory exists for ./data/mazes.db, etc.
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	log.Info().Str("dsn", dsn).Msg("maze store ready")

	return &Store{db: db, now: time.Now}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores a generated maze under a fresh ID.
func (s *Store) Save(ctx context.Context, seed int64, m *maze.Maze) (Record, error) {
	ctx, span := telemetry.Tracer("store").Start(ctx, "store.save")
	defer span.End()

	if !m.Generated() {
		return Record{}, errors.New("refusing to store an ungenerated maze")
	}

	rec := Record{
		ID:        uuid.NewString(),
		Size:      m.Size(),
		Seed:      seed,
		CreatedAt: s.now().UTC(),
		Maze:      m,
	}
	span.SetAttributes(attribute.String("maze.id", rec.ID), attribute.Int("maze.size", rec.Size))

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO mazes (id, size, seed, walls, created_at) VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.Size, rec.Seed, EncodeWalls(m), rec.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Record{}, fmt.Errorf("insert maze: %w", err)
	}
	return rec, nil
}

// Get loads a maze by ID.
func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	ctx, span := telemetry.Tracer("store").Start(ctx, "store.get")
	defer span.End()
	span.SetAttributes(attribute.String("maze.id", id))

	var (
		rec     Record
		walls   string
		created string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, size, seed, walls, created_at FROM mazes WHERE id = ?`, id,
	).Scan(&rec.ID, &rec.Size, &rec.Seed, &walls, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Record{}, fmt.Errorf("query maze: %w", err)
	}

	if rec.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return Record{}, fmt.Errorf("maze %s created_at: %w", id, err)
	}
	flags, err := DecodeWalls(rec.Size, walls)
	if err != nil {
		return Record{}, fmt.Errorf("maze %s: %w", id, err)
	}
	if rec.Maze, err = maze.Restore(rec.Size, flags); err != nil {
		return Record{}, fmt.Errorf("maze %s: %w", id, err)
	}
	return rec, nil
}

// List returns the most recently stored mazes first. A limit of 0 or less means 20.
func (s *Store) List(ctx context.Context, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, size, seed, created_at
        FROM mazes
        ORDER BY created_at DESC, rowid DESC
        LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Summary, 0, limit)
	for rows.Next() {
		var (
			sum     Summary
			created string
		)
		if err := rows.Scan(&sum.ID, &sum.Size, &sum.Seed, &created); err != nil {
			return nil, err
		}
		if sum.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}
