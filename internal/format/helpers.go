package format

import (
	"fmt"
	"strconv"
)

// FmtProportion formats a cell proportion with two decimals ("0.50").
func FmtProportion(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FmtPercent formats a ratio in [0,1] as a percentage with one decimal.
func FmtPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

// Truncate shortens s to maxLen characters, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// Emphasize marks s as strong in Markdown mode. ASCII output has no markup,
// so s is returned unchanged.
func Emphasize(m Mode, s string) string {
	if m == Markdown {
		return "**" + s + "**"
	}
	return s
}

// ParseMode maps "ascii"/"text" and "markdown"/"md" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "ascii", "text":
		return ASCII, nil
	case "markdown", "md":
		return Markdown, nil
	default:
		return ASCII, fmt.Errorf("unknown table mode %q (available: ascii, markdown)", s)
	}
}
