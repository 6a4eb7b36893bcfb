package stats

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/pegsolve/tripeg/board"
)

// The three-row board has exactly two terminal lines, both leaving two
// pegs.
func TestExhaustiveThreeRows(t *testing.T) {
	is := is.New(t)
	b, err := board.NewBoard(3, 0)
	is.NoErr(err)
	before := b.StateSnapshot()

	d, err := Exhaustive(context.Background(), b)
	is.NoErr(err)
	is.Equal(d.Games(), 2)
	for _, f := range d.Finals() {
		is.Equal(f, 2.0)
	}
	// Walking happens on a scratch copy.
	is.Equal(b.StateSnapshot(), before)
}

func TestExhaustiveTerminalBoard(t *testing.T) {
	is := is.New(t)
	b, err := board.NewBoard(3, 0)
	is.NoErr(err)
	for i := 1; i < b.NumHoles(); i++ {
		b.SetPeg(i, false)
	}
	b.SetPeg(0, true)

	d, err := Exhaustive(context.Background(), b)
	is.NoErr(err)
	is.Equal(d.Games(), 1)
	is.Equal(d.Finals()[0], 1.0)
}

func TestPlayouts(t *testing.T) {
	is := is.New(t)
	b, err := board.NewBoard(5, 0)
	is.NoErr(err)
	before := b.StateSnapshot()

	d, err := Playouts(context.Background(), b, 200)
	is.NoErr(err)
	is.Equal(d.Games(), 200)
	for _, f := range d.Finals() {
		// every game ends with at least one peg, and a random game can't
		// do better than leaving one
		is.True(f >= 1)
		is.True(f <= 13)
	}
	is.Equal(b.StateSnapshot(), before)

	_, err = Playouts(context.Background(), b, 0)
	is.True(err != nil)
}

func TestSummaryAndHistogram(t *testing.T) {
	is := is.New(t)
	b, err := board.NewBoard(4, 0)
	is.NoErr(err)
	d, err := Exhaustive(context.Background(), b)
	is.NoErr(err)

	summary := d.Summary()
	is.True(strings.Contains(summary, "exhaustive distribution"))
	is.True(strings.Contains(summary, "finished games"))

	var buf bytes.Buffer
	is.NoErr(d.PrintHistogram(&buf))
	is.True(buf.Len() > 0)
}

func TestPlayoutsCancelled(t *testing.T) {
	is := is.New(t)
	b, err := board.NewBoard(5, 0)
	is.NoErr(err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d, err := Playouts(ctx, b, 50)
	is.Equal(err, context.Canceled)
	is.Equal(d.Games(), 0)
}
