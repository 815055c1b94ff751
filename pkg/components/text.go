// Package components provides the low-level terminal render primitives the
// guide widgets build on: ANSI-aware text measurement and padding, hex-color
// escape helpers, and the sub-cell progress bar.
package components

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// VisibleLen returns the visible width of s in terminal cells, ignoring
// ANSI escape sequences and counting wide characters as two cells.
func VisibleLen(s string) int {
	return ansi.StringWidth(s)
}

// Truncate cuts s to at most maxWidth visible cells, appending tail (e.g.
// "…") when a cut happens. The tail counts toward maxWidth.
func Truncate(s string, maxWidth int, tail string) string {
	if maxWidth <= 0 {
		return ""
	}
	return ansi.Truncate(s, maxWidth, tail)
}

// PadRight pads s with trailing spaces to exactly width visible cells.
// Strings already wider than width are returned unchanged.
func PadRight(s string, width int) string {
	vis := VisibleLen(s)
	if vis >= width {
		return s
	}
	return s + strings.Repeat(" ", width-vis)
}

// PadLeft pads s with leading spaces to exactly width visible cells.
func PadLeft(s string, width int) string {
	vis := VisibleLen(s)
	if vis >= width {
		return s
	}
	return strings.Repeat(" ", width-vis) + s
}
