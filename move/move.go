// Package move defines the jump move: a peg at the start hole leaps over
// an adjacent occupied hole into an empty destination two holes away,
// removing the jumped peg.
package move

import (
	"fmt"
	"strconv"
	"strings"
)

// State is the minimal board surface a move needs to validate itself
// against. *board.Board satisfies it.
type State interface {
	NumHoles() int
	IsOccupied(idx int) bool
}

// Move is an immutable jump: start hole, jumped-over hole, destination
// hole, all flat indices. A Move is a candidate; legality is always
// computed on demand against a board, never cached.
type Move struct {
	start       int
	jumped      int
	destination int
}

// NewMove creates a Move from its three hole indices.
func NewMove(start, jumped, destination int) Move {
	return Move{start: start, jumped: jumped, destination: destination}
}

func (m Move) Start() int       { return m.start }
func (m Move) Jumped() int      { return m.jumped }
func (m Move) Destination() int { return m.destination }

// IsValid reports whether the move is legal on the given board state: all
// three indices in range, start and jumped occupied, destination empty.
func (m Move) IsValid(s State) bool {
	n := s.NumHoles()
	return m.start >= 0 && m.start < n &&
		m.jumped >= 0 && m.jumped < n &&
		m.destination >= 0 && m.destination < n &&
		s.IsOccupied(m.start) &&
		s.IsOccupied(m.jumped) &&
		!s.IsOccupied(m.destination)
}

// Inverse returns the move that jumps back the other way: start and
// destination swapped, same jumped hole. Applying a move and then its
// inverse restores the original board, except that the jumped peg must be
// put back by the caller. It exists for undo support and tests.
func (m Move) Inverse() Move {
	return Move{start: m.destination, jumped: m.jumped, destination: m.start}
}

// ShortDescription provides a short description, useful for logging or
// user display.
func (m Move) ShortDescription() string {
	return fmt.Sprintf("%d -> %d -> %d", m.start, m.jumped, m.destination)
}

// String provides a string just for debugging purposes.
func (m Move) String() string {
	return fmt.Sprintf("<move start: %d jumped: %d dest: %d>", m.start, m.jumped, m.destination)
}

// Parse parses a user-entered move of the form "start>jumped>dest", e.g.
// "3>1>0". Whitespace around the separators is tolerated.
func Parse(text string) (Move, error) {
	parts := strings.Split(text, ">")
	if len(parts) != 3 {
		return Move{}, fmt.Errorf("move must look like start>jumped>dest, got %q", text)
	}
	idx := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Move{}, fmt.Errorf("bad hole index %q in move %q", p, text)
		}
		idx[i] = n
	}
	return NewMove(idx[0], idx[1], idx[2]), nil
}
