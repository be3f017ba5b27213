package utils

import "strings"

const ellipsis = "..."

// TruncateForLog trims s and keeps at most limit runes of it, marking the cut
// with an ellipsis. A non-positive limit drops the value entirely.
func TruncateForLog(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	s = strings.TrimSpace(s)
	if r := []rune(s); len(r) > limit {
		return string(r[:limit]) + ellipsis
	}
	return s
}
