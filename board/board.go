// Package board implements the triangular peg-solitaire board: the
// index <-> (row, col) geometry, jump-move generation, and the state
// backup stack used by the solver for fast unplay.
package board

import (
	"fmt"

	"github.com/pegsolve/tripeg/move"
)

// jumpDirections are the six straight-line jump offsets (Δrow, Δcol) on a
// triangular grid. The order is fixed; ValidMoves depends on it for
// reproducible search, so don't reorder.
var jumpDirections = [6][2]int{
	{-2, -2}, {-2, 0}, {0, -2}, {0, 2}, {2, 0}, {2, 2},
}

// Board is a triangular peg board. Row r has r+1 holes; holes are numbered
// left to right, top to bottom, so a board with n rows has n*(n+1)/2 holes.
// A true in state means a peg occupies that hole.
type Board struct {
	numRows  int
	numHoles int
	state    []bool

	// The state stack is used for backups during simulations. See
	// SetStateStackLength.
	stateStack [][]bool
	stackPtr   int
}

// NewBoard creates a board with numRows rows, all holes filled except
// emptyHole.
func NewBoard(numRows, emptyHole int) (*Board, error) {
	if numRows < 1 {
		return nil, fmt.Errorf("board must have at least one row, got %d", numRows)
	}
	numHoles := numRows * (numRows + 1) / 2
	if emptyHole < 0 || emptyHole >= numHoles {
		return nil, fmt.Errorf("empty hole %d out of range for %d holes", emptyHole, numHoles)
	}
	b := &Board{
		numRows:  numRows,
		numHoles: numHoles,
		state:    make([]bool, numHoles),
	}
	for i := range b.state {
		b.state[i] = true
	}
	b.state[emptyHole] = false
	return b, nil
}

// NumRows returns the number of rows on this board.
func (b *Board) NumRows() int {
	return b.numRows
}

// NumHoles returns the total number of holes on this board.
func (b *Board) NumHoles() int {
	return b.numHoles
}

// IsOccupied returns whether the hole at idx holds a peg. It panics on an
// out-of-range index; use IndexToRowCol to range-check first.
func (b *Board) IsOccupied(idx int) bool {
	return b.state[idx]
}

// IndexToRowCol converts a flat hole index to (row, col) coordinates. The
// third return value is false if idx is out of range.
func (b *Board) IndexToRowCol(idx int) (int, int, bool) {
	if idx < 0 || idx >= b.numHoles {
		return 0, 0, false
	}
	row := 0
	for idx >= (row+1)*(row+2)/2 {
		row++
	}
	col := idx - row*(row+1)/2
	return row, col, true
}

// RowColToIndex converts (row, col) coordinates to a flat hole index. It
// returns -1 if the coordinates are off the board.
func (b *Board) RowColToIndex(row, col int) int {
	if row < 0 || row >= b.numRows || col < 0 || col > row {
		return -1
	}
	return row*(row+1)/2 + col
}

// ValidMoves generates every legal jump on the current board: for each peg,
// each of the six directions where the jumped hole holds a peg and the
// destination hole exists and is empty. Moves come out ordered by start
// index and then by direction order. This ordering is load-bearing: the
// solver's "first optimal found" result is only reproducible if two boards
// in the same state always generate the same sequence.
func (b *Board) ValidMoves() []move.Move {
	var moves []move.Move
	for start := 0; start < b.numHoles; start++ {
		if !b.state[start] {
			continue
		}
		startRow, startCol, _ := b.IndexToRowCol(start)
		for _, d := range jumpDirections {
			jumped := b.RowColToIndex(startRow+d[0]/2, startCol+d[1]/2)
			dest := b.RowColToIndex(startRow+d[0], startCol+d[1])
			if jumped != -1 && dest != -1 && b.state[jumped] && !b.state[dest] {
				moves = append(moves, move.NewMove(start, jumped, dest))
			}
		}
	}
	return moves
}

// ApplyMove validates m against the current state and, if legal, removes
// the start and jumped pegs and places a peg in the destination. It returns
// false, leaving the board untouched, for an illegal move.
func (b *Board) ApplyMove(m move.Move) bool {
	if !m.IsValid(b) {
		return false
	}
	b.state[m.Start()] = false
	b.state[m.Jumped()] = false
	b.state[m.Destination()] = true
	return true
}

// UndoMove reverses a previously applied move: the start and jumped pegs
// come back and the destination empties. It validates the reversed
// occupancy pattern first and returns false, leaving the board untouched,
// if m was not the move just played.
func (b *Board) UndoMove(m move.Move) bool {
	_, _, startOK := b.IndexToRowCol(m.Start())
	_, _, jumpedOK := b.IndexToRowCol(m.Jumped())
	_, _, destOK := b.IndexToRowCol(m.Destination())
	if !startOK || !jumpedOK || !destOK {
		return false
	}
	if b.state[m.Start()] || b.state[m.Jumped()] || !b.state[m.Destination()] {
		return false
	}
	b.state[m.Start()] = true
	b.state[m.Jumped()] = true
	b.state[m.Destination()] = false
	return true
}

// SetPeg places or removes a peg directly. It exists for setting up
// positions (tests, puzzle input); regular play goes through ApplyMove.
func (b *Board) SetPeg(idx int, peg bool) {
	b.state[idx] = peg
}

// IsTerminal returns true when no legal jumps remain.
func (b *Board) IsTerminal() bool {
	return len(b.ValidMoves()) == 0
}

// PegsRemaining counts the pegs on the board.
func (b *Board) PegsRemaining() int {
	n := 0
	for _, peg := range b.state {
		if peg {
			n++
		}
	}
	return n
}

// StateSnapshot returns a copy of the hole occupancy, for display layers
// and other read-only consumers. Mutating the returned slice has no effect
// on the board.
func (b *Board) StateSnapshot() []bool {
	snap := make([]bool, len(b.state))
	copy(snap, b.state)
	return snap
}

// Copy returns a deep copy of the board. The copy gets its own (empty)
// state stack; callers that want to simulate on it should call
// SetStateStackLength themselves.
func (b *Board) Copy() *Board {
	c := &Board{
		numRows:  b.numRows,
		numHoles: b.numHoles,
		state:    make([]bool, len(b.state)),
	}
	copy(c.state, b.state)
	return c
}

// CopyFrom copies another board's peg state into this one. The two boards
// must have the same geometry.
func (b *Board) CopyFrom(other *Board) {
	copy(b.state, other.state)
}

// Equals compares peg state and geometry.
func (b *Board) Equals(other *Board) bool {
	if b.numRows != other.numRows {
		return false
	}
	for i := range b.state {
		if b.state[i] != other.state[i] {
			return false
		}
	}
	return true
}
