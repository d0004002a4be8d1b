package format

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Count formats n with thousands separators.
func Count(n int64) string {
	return humanize.Comma(n)
}

// Share formats part as a percentage of total, e.g. "12.5%".
// A zero total yields "-".
func Share(part, total int64) string {
	if total <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", float64(part)*100/float64(total))
}

// Truncate shortens s to maxLen runes, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
