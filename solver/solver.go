// Package solver implements the exhaustive search for peg-solitaire
// solutions: a depth-first backtracking walk of the full game tree that
// tracks the best terminal position seen. With more than one thread it
// fans the first ply out across workers, each owning a private copy of
// the board.
package solver

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/pegsolve/tripeg/board"
	"github.com/pegsolve/tripeg/move"
)

// SearchResult is a terminal outcome: how many pegs were left and the
// moves that got there.
type SearchResult struct {
	PegsRemaining int
	Moves         []move.Move
}

// Better reports whether r beats other: fewer pegs remaining wins, and on
// equal pegs the shorter sequence wins. Both the sequential path and the
// parallel reduction use this single comparator. (Since every jump removes
// exactly one peg, equal pegs implies equal length, so the length tie-break
// never actually fires; it is kept so the rule is explicit and tested.)
func (r SearchResult) Better(other SearchResult) bool {
	if r.PegsRemaining != other.PegsRemaining {
		return r.PegsRemaining < other.PegsRemaining
	}
	return len(r.Moves) < len(other.Moves)
}

// Solver searches a board exhaustively for the line of jumps that leaves
// the fewest pegs. It does no pruning beyond terminal detection and an
// early exit once a 1-peg line is found, and deliberately does not
// deduplicate transpositions: identical positions reached by different
// move orders are searched again.
type Solver struct {
	board   *board.Board
	threads int
	nodes   atomic.Uint64
}

// Init initializes the solver with the board to search. The board is not
// copied here; Solve guarantees it is returned to its initial state.
func (s *Solver) Init(b *board.Board) error {
	if b == nil {
		return fmt.Errorf("solver needs a board")
	}
	s.board = b
	s.threads = int(math.Max(1, float64(runtime.NumCPU()-1)))
	return nil
}

// SetThreads sets the worker count for the first-ply fan-out. Anything
// below 2 forces the purely sequential path.
func (s *Solver) SetThreads(threads int) {
	if threads < 2 {
		s.threads = 1
	} else {
		s.threads = threads
	}
}

// Nodes returns the number of search-tree nodes visited by the last Solve.
func (s *Solver) Nodes() uint64 {
	return s.nodes.Load()
}

// Solve searches the full game tree and returns the best terminal result.
// The caller's board is left in its initial state afterwards. On context
// cancellation it returns the best result found so far along with ctx.Err.
func (s *Solver) Solve(ctx context.Context) (SearchResult, error) {
	s.nodes.Store(0)
	pegs := s.board.PegsRemaining()
	// Depth can't exceed the peg count; one extra frame for safety at the
	// root.
	s.board.SetStateStackLength(pegs + 1)

	if s.threads > 1 {
		return s.solveParallel(ctx)
	}

	best := SearchResult{PegsRemaining: pegs + 1}
	seq := make([]move.Move, 0, pegs)
	err := s.search(ctx, s.board, seq, &best)
	if best.PegsRemaining > pegs {
		// Cancelled before reaching any terminal position; report the
		// board as it stands.
		best = SearchResult{PegsRemaining: pegs}
	}
	log.Debug().Uint64("nodes", s.nodes.Load()).
		Int("pegs-left", best.PegsRemaining).
		Msg("sequential-search-done")
	return best, err
}

// search is the recursive backtracking core. seq has capacity for the whole
// line, so appends never reallocate; terminal positions copy it before
// recording. The BackupState/UnplayLastMove pair runs around every child so
// sibling exploration always starts from the same position.
func (s *Solver) search(ctx context.Context, b *board.Board, seq []move.Move, best *SearchResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.nodes.Add(1)

	moves := b.ValidMoves()
	if len(moves) == 0 {
		pegs := b.PegsRemaining()
		candidate := SearchResult{PegsRemaining: pegs, Moves: append([]move.Move(nil), seq...)}
		if candidate.Better(*best) {
			*best = candidate
		}
		return nil
	}
	for _, m := range moves {
		b.BackupState()
		b.ApplyMove(m)
		err := s.search(ctx, b, append(seq, m), best)
		b.UnplayLastMove()
		if err != nil {
			return err
		}
		if best.PegsRemaining == 1 {
			// Can't do better than one peg; stop exploring siblings.
			return nil
		}
	}
	return nil
}
