package game

import (
	"fmt"
	"strings"
)

// FormatBoard renders each row of b as a display line:
//
//	Guess 1: 1324 | Bulls: 2 | Cows: 2
//	Guess 2: ____
func FormatBoard(b *Board) []string {
	rows := b.Rows()
	out := make([]string, len(rows))
	blank := strings.Repeat("_", b.CodeLength())
	for i, r := range rows {
		if !r.Filled {
			out[i] = fmt.Sprintf("Guess %d: %s", i+1, blank)
			continue
		}
		out[i] = fmt.Sprintf("Guess %d: %s | Bulls: %d | Cows: %d", i+1, r.Guess, r.Bulls, r.Cows)
	}
	return out
}
