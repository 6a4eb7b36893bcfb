package solver

import (
	"context"
	"testing"

	"github.com/matryer/is"

	"github.com/pegsolve/tripeg/board"
	"github.com/pegsolve/tripeg/move"
)

func lonePegBoard(t *testing.T) *board.Board {
	t.Helper()
	b, err := board.NewBoard(3, 0)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < b.NumHoles(); i++ {
		b.SetPeg(i, false)
	}
	b.SetPeg(0, true)
	return b
}

func TestBetter(t *testing.T) {
	is := is.New(t)
	onePeg := SearchResult{PegsRemaining: 1, Moves: make([]move.Move, 13)}
	twoPegs := SearchResult{PegsRemaining: 2, Moves: make([]move.Move, 12)}
	is.True(onePeg.Better(twoPegs))
	is.True(!twoPegs.Better(onePeg))

	short := SearchResult{PegsRemaining: 2, Moves: make([]move.Move, 3)}
	long := SearchResult{PegsRemaining: 2, Moves: make([]move.Move, 5)}
	is.True(short.Better(long))
	is.True(!long.Better(short))
	is.True(!short.Better(short))
}

func TestSolveFiveRows(t *testing.T) {
	is := is.New(t)
	b, err := board.NewBoard(5, 0)
	is.NoErr(err)

	s := &Solver{}
	is.NoErr(s.Init(b))
	s.SetThreads(1)
	res, err := s.Solve(context.Background())
	is.NoErr(err)
	// The classic 15-hole board with a corner vacancy solves down to one
	// peg in 13 jumps.
	is.Equal(res.PegsRemaining, 1)
	is.Equal(len(res.Moves), 13)
	is.True(s.Nodes() > 0)
}

func TestSolveReplaysToClaimedResult(t *testing.T) {
	is := is.New(t)
	b, err := board.NewBoard(5, 0)
	is.NoErr(err)
	s := &Solver{}
	is.NoErr(s.Init(b))
	s.SetThreads(1)
	res, err := s.Solve(context.Background())
	is.NoErr(err)

	scratch := b.Copy()
	for _, m := range res.Moves {
		is.True(scratch.ApplyMove(m))
	}
	is.Equal(scratch.PegsRemaining(), res.PegsRemaining)
	is.True(scratch.IsTerminal())
}

func TestSolveLeavesBoardUntouched(t *testing.T) {
	is := is.New(t)
	for _, threads := range []int{1, 4} {
		b, err := board.NewBoard(5, 4)
		is.NoErr(err)
		before := b.StateSnapshot()
		s := &Solver{}
		is.NoErr(s.Init(b))
		s.SetThreads(threads)
		_, err = s.Solve(context.Background())
		is.NoErr(err)
		is.Equal(b.StateSnapshot(), before)
	}
}

func TestSolveTerminalBoard(t *testing.T) {
	is := is.New(t)
	for _, threads := range []int{1, 4} {
		b := lonePegBoard(t)
		s := &Solver{}
		is.NoErr(s.Init(b))
		s.SetThreads(threads)
		res, err := s.Solve(context.Background())
		is.NoErr(err)
		is.Equal(res.PegsRemaining, 1)
		is.Equal(len(res.Moves), 0)
	}
}

// The three-row board has exactly two lines of play, mirror images of each
// other, both ending with two pegs.
func TestSolveThreeRows(t *testing.T) {
	is := is.New(t)
	b, err := board.NewBoard(3, 0)
	is.NoErr(err)
	s := &Solver{}
	is.NoErr(s.Init(b))
	s.SetThreads(1)
	res, err := s.Solve(context.Background())
	is.NoErr(err)
	is.Equal(res.PegsRemaining, 2)
	is.Equal(len(res.Moves), 3)
	is.Equal(res.Moves[0], move.NewMove(3, 1, 0))
}

func TestParallelMatchesSequential(t *testing.T) {
	is := is.New(t)
	for _, emptyHole := range []int{0, 4, 12} {
		bSeq, err := board.NewBoard(5, emptyHole)
		is.NoErr(err)
		seq := &Solver{}
		is.NoErr(seq.Init(bSeq))
		seq.SetThreads(1)
		seqRes, err := seq.Solve(context.Background())
		is.NoErr(err)

		bPar, err := board.NewBoard(5, emptyHole)
		is.NoErr(err)
		par := &Solver{}
		is.NoErr(par.Init(bPar))
		par.SetThreads(4)
		parRes, err := par.Solve(context.Background())
		is.NoErr(err)

		// Minimal peg counts must agree; move sequences may differ.
		is.Equal(seqRes.PegsRemaining, parRes.PegsRemaining)
		is.Equal(len(seqRes.Moves), len(parRes.Moves))
	}
}

func TestSolveCancelled(t *testing.T) {
	is := is.New(t)
	b, err := board.NewBoard(5, 0)
	is.NoErr(err)
	before := b.StateSnapshot()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := &Solver{}
	is.NoErr(s.Init(b))
	s.SetThreads(1)
	_, err = s.Solve(ctx)
	is.Equal(err, context.Canceled)
	is.Equal(b.StateSnapshot(), before)
}
