package strings

import (
	"strings"
)

// DefaultCellMaxLen is the widest a monitor name may be in table output.
const DefaultCellMaxLen = 60

// MinTruncateLen is the minimum maxLen value for Truncate.
// Values smaller than this would not leave room for meaningful content plus "...".
const MinTruncateLen = 4

// Truncate shortens s to at most maxLen runes and flattens it to one line.
// Whitespace runs, newlines included, collapse into single spaces, and a
// shortened value ends in "...".
//
// maxLen is clamped to MinTruncateLen.
func Truncate(s string, maxLen int) string {
	if maxLen < MinTruncateLen {
		maxLen = MinTruncateLen
	}

	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return s
}
