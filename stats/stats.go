// Package stats measures how a board tends to end: either by exhaustively
// enumerating every terminal position (small boards only) or by sampling
// random playouts, and rendering the distribution of final peg counts as a
// terminal histogram.
package stats

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"lukechampine.com/frand"

	"github.com/pegsolve/tripeg/board"
)

// Distribution is a collection of final peg counts, one per finished game.
type Distribution struct {
	finals     []float64
	exhaustive bool
}

// Playouts plays n games to completion with uniformly random move choices
// and records the final peg count of each. Use it on boards too large to
// enumerate.
func Playouts(ctx context.Context, b *board.Board, n int) (*Distribution, error) {
	if n < 1 {
		return nil, fmt.Errorf("need at least one playout, got %d", n)
	}
	d := &Distribution{finals: make([]float64, 0, n)}
	scratch := b.Copy()
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return d, err
		}
		scratch.CopyFrom(b)
		for {
			moves := scratch.ValidMoves()
			if len(moves) == 0 {
				break
			}
			scratch.ApplyMove(moves[frand.Intn(len(moves))])
		}
		d.finals = append(d.finals, float64(scratch.PegsRemaining()))
	}
	log.Debug().Int("playouts", n).Msg("playouts-done")
	return d, nil
}

// Exhaustive records the final peg count of every terminal position in the
// full game tree, transpositions included. The tree is exponential in the
// peg count; anything past five rows is impractical.
func Exhaustive(ctx context.Context, b *board.Board) (*Distribution, error) {
	d := &Distribution{exhaustive: true}
	scratch := b.Copy()
	scratch.SetStateStackLength(scratch.PegsRemaining() + 1)
	err := walk(ctx, scratch, d)
	log.Debug().Int("terminals", len(d.finals)).Msg("exhaustive-walk-done")
	return d, err
}

func walk(ctx context.Context, b *board.Board, d *Distribution) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	moves := b.ValidMoves()
	if len(moves) == 0 {
		d.finals = append(d.finals, float64(b.PegsRemaining()))
		return nil
	}
	for _, m := range moves {
		b.BackupState()
		b.ApplyMove(m)
		err := walk(ctx, b, d)
		b.UnplayLastMove()
		if err != nil {
			return err
		}
	}
	return nil
}

// Games returns how many finished games the distribution covers.
func (d *Distribution) Games() int {
	return len(d.finals)
}

// Finals returns a copy of the recorded final peg counts.
func (d *Distribution) Finals() []float64 {
	return append([]float64(nil), d.finals...)
}

// Summary returns a short text summary: game count, best and worst
// finishes, mean, and the fraction of games ending with a single peg.
func (d *Distribution) Summary() string {
	if len(d.finals) == 0 {
		return "no finished games recorded\n"
	}
	kind := "sampled"
	if d.exhaustive {
		kind = "exhaustive"
	}
	solved := lo.CountBy(d.finals, func(v float64) bool { return v == 1 })
	mean := lo.Sum(d.finals) / float64(len(d.finals))

	var ss strings.Builder
	fmt.Fprintf(&ss, "%s distribution over %d finished games\n", kind, len(d.finals))
	fmt.Fprintf(&ss, "best finish: %.0f pegs, worst: %.0f pegs, mean: %.2f\n",
		lo.Min(d.finals), lo.Max(d.finals), mean)
	fmt.Fprintf(&ss, "one-peg finishes: %d (%.2f%%)\n",
		solved, float64(solved*100)/float64(len(d.finals)))
	return ss.String()
}

// PrintHistogram renders the final-peg-count distribution to w.
func (d *Distribution) PrintHistogram(w io.Writer) error {
	if len(d.finals) == 0 {
		return fmt.Errorf("no finished games to plot")
	}
	bins := int(lo.Max(d.finals)-lo.Min(d.finals)) + 1
	hist := histogram.Hist(bins, d.finals)
	return histogram.Fprint(w, hist, histogram.Linear(40))
}
