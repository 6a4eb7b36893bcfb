package board

// SetStateStackLength preallocates the backup stack used by BackupState /
// UnplayLastMove. The solver sets this to the maximum search depth up front
// so that no allocations happen inside the hot loop. Calling it resets the
// stack pointer.
func (b *Board) SetStateStackLength(length int) {
	b.stateStack = make([][]bool, length)
	for idx := range b.stateStack {
		b.stateStack[idx] = make([]bool, b.numHoles)
	}
	b.stackPtr = 0
}

// BackupState pushes a snapshot of the current peg state onto the backup
// stack. It must be paired with a later UnplayLastMove; the solver calls it
// immediately before applying each move.
func (b *Board) BackupState() {
	copy(b.stateStack[b.stackPtr], b.state)
	b.stackPtr++
}

// UnplayLastMove restores the state saved by the matching BackupState. This
// is the restore half of the snapshot/restore pair that keeps sibling
// exploration correct during backtracking: it runs unconditionally after
// every recursive call, so the board a caller hands to the solver comes
// back unchanged.
func (b *Board) UnplayLastMove() {
	b.stackPtr--
	copy(b.state, b.stateStack[b.stackPtr])
}
