package game

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestVerdict(t *testing.T) {
	is := is.New(t)
	is.Equal(Verdict(1), "Genius! One peg remains!")
	is.Equal(Verdict(2), "Good job!")
	is.Equal(Verdict(3), "Good job!")
	is.Equal(Verdict(4), "Solution found, but more than 3 pegs remain.")
	is.Equal(Verdict(10), "Solution found, but more than 3 pegs remain.")
}

func TestAutoSolve(t *testing.T) {
	is := is.New(t)
	g, err := NewGame(5, 0)
	is.NoErr(err)
	var buf bytes.Buffer
	g.SetOutput(&buf)
	before := g.Board().StateSnapshot()

	report, err := g.AutoSolve(context.Background(), 1)
	is.NoErr(err)
	is.Equal(report.Result.PegsRemaining, 1)
	is.Equal(len(report.Result.Moves), 13)
	is.Equal(report.NumRows, 5)
	is.Equal(report.EmptyHole, 0)
	is.True(report.Nodes > 0)

	// replay and timing go to the output writer; the board comes back
	// untouched
	out := buf.String()
	is.True(strings.Contains(out, "Replaying solution:"))
	is.True(strings.Contains(out, "Genius! One peg remains!"))
	is.True(strings.Contains(out, "Move sequence:"))
	is.Equal(g.Board().StateSnapshot(), before)
}

func TestAutoSolveParallel(t *testing.T) {
	is := is.New(t)
	g, err := NewGame(5, 0)
	is.NoErr(err)
	var buf bytes.Buffer
	g.SetOutput(&buf)

	report, err := g.AutoSolve(context.Background(), 4)
	is.NoErr(err)
	is.Equal(report.Result.PegsRemaining, 1)
	is.Equal(report.Threads, 4)
}

func TestPlayMoveNumber(t *testing.T) {
	is := is.New(t)
	g, err := NewGame(5, 0)
	is.NoErr(err)

	is.NoErr(g.PlayMoveNumber(1)) // 3 -> 1 -> 0
	is.Equal(g.Board().PegsRemaining(), 13)
	is.True(g.Board().IsOccupied(0))

	is.True(g.PlayMoveNumber(0) != nil)
	is.True(g.PlayMoveNumber(99) != nil)
}

func TestNewGameRejectsBadInput(t *testing.T) {
	is := is.New(t)
	_, err := NewGame(0, 0)
	is.True(err != nil)
	_, err = NewGame(5, 20)
	is.True(err != nil)
}
