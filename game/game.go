// Package game is the driver that ties a board to the solver: it times a
// solve, replays the winning line for display, classifies the outcome, and
// backs the interactive per-move loop.
package game

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pegsolve/tripeg/board"
	"github.com/pegsolve/tripeg/solver"
)

// Game owns a board and knows how to run it, either automatically via the
// solver or one user-chosen move at a time.
type Game struct {
	board     *board.Board
	emptyHole int
	out       io.Writer
}

// SolveReport is everything AutoSolve learned: the solver's result plus
// timing and search-size numbers for the record.
type SolveReport struct {
	Result    solver.SearchResult
	Elapsed   time.Duration
	Nodes     uint64
	Threads   int
	NumRows   int
	EmptyHole int
}

// NewGame creates a game on a fresh board.
func NewGame(numRows, emptyHole int) (*Game, error) {
	b, err := board.NewBoard(numRows, emptyHole)
	if err != nil {
		return nil, err
	}
	return &Game{board: b, emptyHole: emptyHole, out: os.Stdout}, nil
}

// SetOutput redirects the game's human-readable output, which otherwise
// goes to stdout.
func (g *Game) SetOutput(w io.Writer) {
	g.out = w
}

// Board returns the game's board.
func (g *Game) Board() *board.Board {
	return g.board
}

// Verdict classifies a final peg count.
func Verdict(pegs int) string {
	switch {
	case pegs == 1:
		return "Genius! One peg remains!"
	case pegs <= 3:
		return "Good job!"
	default:
		return "Solution found, but more than 3 pegs remain."
	}
}

// AutoSolve runs the solver on the game's board, then replays the best line
// move by move for display. The timed section contains only the search;
// display happens afterwards on a scratch copy, so the measurement isn't
// skewed and the game's board is untouched when this returns.
func (g *Game) AutoSolve(ctx context.Context, threads int) (*SolveReport, error) {
	s := &solver.Solver{}
	if err := s.Init(g.board); err != nil {
		return nil, err
	}
	if threads > 0 {
		s.SetThreads(threads)
	}

	start := time.Now()
	res, err := s.Solve(ctx)
	elapsed := time.Since(start)
	if err != nil {
		log.Warn().Err(err).Msg("solve-interrupted")
	}

	fmt.Fprintln(g.out, "Replaying solution:")
	g.replay(res)
	fmt.Fprintf(g.out, "\nSolution complete! Final pegs: %d\n", res.PegsRemaining)
	fmt.Fprintf(g.out, "Time to find solution: %.2f seconds\n", elapsed.Seconds())
	fmt.Fprintln(g.out, "Move sequence:")
	for i, m := range res.Moves {
		fmt.Fprintf(g.out, "%d: %s\n", i+1, m.ShortDescription())
	}
	fmt.Fprintln(g.out, Verdict(res.PegsRemaining))

	return &SolveReport{
		Result:    res,
		Elapsed:   elapsed,
		Nodes:     s.Nodes(),
		Threads:   threads,
		NumRows:   g.board.NumRows(),
		EmptyHole: g.emptyHole,
	}, err
}

// replay walks the move list on a scratch copy of the board, printing the
// position after each jump.
func (g *Game) replay(res solver.SearchResult) {
	scratch := g.board.Copy()
	for _, m := range res.Moves {
		fmt.Fprintf(g.out, "\nMove: %s\n", m.ShortDescription())
		if !scratch.ApplyMove(m) {
			log.Error().Str("move", m.ShortDescription()).Msg("replay-move-rejected")
			return
		}
		fmt.Fprint(g.out, scratch.ToDisplayText())
		fmt.Fprintf(g.out, "Pegs remaining: %d\n", scratch.PegsRemaining())
	}
}

// PlayMoveNumber applies the nth valid move (1-based, in ValidMoves order)
// for the interactive loop.
func (g *Game) PlayMoveNumber(n int) error {
	moves := g.board.ValidMoves()
	if n < 1 || n > len(moves) {
		return fmt.Errorf("move number %d out of range (1-%d)", n, len(moves))
	}
	if !g.board.ApplyMove(moves[n-1]) {
		return fmt.Errorf("move %s no longer valid", moves[n-1].ShortDescription())
	}
	return nil
}
