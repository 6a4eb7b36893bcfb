package solver

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/pegsolve/tripeg/board"
	"github.com/pegsolve/tripeg/move"
)

// job is one first-ply branch: a private copy of the board with the first
// move already applied. Ownership of the copy transfers to whichever worker
// receives the job; nothing else ever touches it.
type job struct {
	idx   int
	first move.Move
	b     *board.Board
}

// solveParallel fans the first ply out across workers. Each first-level
// move gets an independent deep copy of the board and is searched to
// exhaustion with the sequential algorithm; the only synchronization point
// is the join/reduce at the end. A worker that finds a 1-peg line stops its
// own subtree but does not cancel siblings already in flight.
func (s *Solver) solveParallel(ctx context.Context) (SearchResult, error) {
	firstPly := s.board.ValidMoves()
	if len(firstPly) == 0 {
		// The initial board is already terminal.
		return SearchResult{PegsRemaining: s.board.PegsRemaining()}, nil
	}

	pegs := s.board.PegsRemaining()
	results := make([]SearchResult, len(firstPly))
	solved := make([]bool, len(firstPly))

	workers := s.threads
	if workers > len(firstPly) {
		workers = len(firstPly)
	}
	g := errgroup.Group{}
	jobChan := make(chan job, workers)

	for t := 0; t < workers; t++ {
		t := t
		g.Go(func() error {
			for j := range jobChan {
				if err := s.handleJob(ctx, j, t, results, solved); err != nil {
					return err
				}
			}
			return nil
		})
	}
	g.Go(func() error {
		// Dispatch from inside the group so that workers bailing out on
		// cancellation can't strand the sender on a full channel.
		defer close(jobChan)
		for idx, m := range firstPly {
			b := s.board.Copy()
			b.SetStateStackLength(pegs + 1)
			b.ApplyMove(m)
			select {
			case jobChan <- job{idx: idx, first: m, b: b}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	err := g.Wait()

	best := SearchResult{PegsRemaining: pegs + 1}
	for idx := range results {
		if solved[idx] && results[idx].Better(best) {
			best = results[idx]
		}
	}
	if best.PegsRemaining > pegs {
		// Every branch failed or was cancelled before reaching a terminal
		// position; report the board as it stands.
		best = SearchResult{PegsRemaining: pegs}
	}
	log.Debug().Uint64("nodes", s.nodes.Load()).
		Int("branches", len(firstPly)).
		Int("pegs-left", best.PegsRemaining).
		Msg("parallel-search-done")
	return best, err
}

// handleJob runs the sequential search on one first-ply branch. Panics are
// contained here: a failed branch is logged and left out of the reduction
// so the run still produces a best-effort result from the others.
func (s *Solver) handleJob(ctx context.Context, j job, thread int, results []SearchResult, solved []bool) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Int("thread", thread).Int("branch", j.idx).
				Str("first-move", j.first.ShortDescription()).
				Msgf("search worker panicked: %v", r)
			err = nil
		}
	}()
	log.Debug().Int("thread", thread).Int("branch", j.idx).
		Str("first-move", j.first.ShortDescription()).
		Msg("searching-branch")

	best := SearchResult{PegsRemaining: j.b.PegsRemaining() + 1}
	seq := make([]move.Move, 0, j.b.PegsRemaining())
	seq = append(seq, j.first)
	if err := s.search(ctx, j.b, seq, &best); err != nil {
		return fmt.Errorf("branch %d (%s): %w", j.idx, j.first.ShortDescription(), err)
	}
	results[j.idx] = best
	solved[j.idx] = true
	return nil
}
