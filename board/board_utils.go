package board

import (
	"fmt"
	"strings"
)

// ToDisplayText returns a plaintext rendering of the board as a centered
// triangle. Occupied holes show their index; empty holes show a dot. This
// is presentation only and is never called inside the search loop.
func (b *Board) ToDisplayText() string {
	maxIndex := b.numHoles - 1
	holeWidth := len(fmt.Sprint(maxIndex))
	if holeWidth < 4 {
		holeWidth = 4
	}
	var str strings.Builder
	for row := 0; row < b.numRows; row++ {
		str.WriteString(strings.Repeat(" ", (b.numRows-row-1)*(holeWidth/2)))
		startIdx := row * (row + 1) / 2
		for col := 0; col <= row; col++ {
			idx := startIdx + col
			cell := "."
			if b.state[idx] {
				cell = fmt.Sprint(idx)
			}
			str.WriteString(cell)
			str.WriteString(strings.Repeat(" ", holeWidth-len(cell)))
		}
		str.WriteString("\n")
	}
	return str.String()
}
