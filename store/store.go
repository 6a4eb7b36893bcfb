// Package store archives completed solve runs in a SQLite database so that
// past results can be listed from the shell. Only finished results are
// stored, never in-progress search state.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pegsolve/tripeg/move"
)

const schema = `
CREATE TABLE IF NOT EXISTS solves (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at TIMESTAMP NOT NULL,
	num_rows INTEGER NOT NULL,
	empty_hole INTEGER NOT NULL,
	pegs_left INTEGER NOT NULL,
	num_moves INTEGER NOT NULL,
	elapsed_ms INTEGER NOT NULL,
	threads INTEGER NOT NULL,
	nodes INTEGER NOT NULL,
	moves TEXT NOT NULL
);`

// Store is a handle to the solve archive.
type Store struct {
	db *sql.DB
}

// Record is one archived solve run.
type Record struct {
	ID        int64
	CreatedAt time.Time
	NumRows   int
	EmptyHole int
	PegsLeft  int
	NumMoves  int
	Elapsed   time.Duration
	Threads   int
	Nodes     uint64
	Moves     string
}

// Open opens (and if needed creates) the archive at path. Pass ":memory:"
// for an ephemeral archive.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening solve archive %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating solves table: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// MovesText renders a move list in the compact "s>j>d, s>j>d, ..." form
// used in the archive. move.Parse reads the individual entries back.
func MovesText(moves []move.Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = fmt.Sprintf("%d>%d>%d", m.Start(), m.Jumped(), m.Destination())
	}
	return strings.Join(parts, ", ")
}

// RecordSolve inserts one run into the archive and returns its id.
func (s *Store) RecordSolve(ctx context.Context, r Record) (int64, error) {
	created := r.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO solves
		(created_at, num_rows, empty_hole, pegs_left, num_moves, elapsed_ms, threads, nodes, moves)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		created, r.NumRows, r.EmptyHole, r.PegsLeft, r.NumMoves,
		r.Elapsed.Milliseconds(), r.Threads, r.Nodes, r.Moves)
	if err != nil {
		return 0, fmt.Errorf("recording solve: %w", err)
	}
	return res.LastInsertId()
}

// RecentSolves returns up to limit archived runs, newest first.
func (s *Store) RecentSolves(ctx context.Context, limit int) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, num_rows, empty_hole, pegs_left, num_moves,
		elapsed_ms, threads, nodes, moves
		FROM solves ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing solves: %w", err)
	}
	defer rows.Close()

	var recs []Record
	for rows.Next() {
		var r Record
		var elapsedMS int64
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.NumRows, &r.EmptyHole,
			&r.PegsLeft, &r.NumMoves, &elapsedMS, &r.Threads, &r.Nodes, &r.Moves); err != nil {
			return nil, err
		}
		r.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		recs = append(recs, r)
	}
	return recs, rows.Err()
}
