// Package components provides ANSI-aware text helpers for the status bar
// and tooltip chrome around the chart raster.
package components

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// VisibleLen returns the visible width of s in terminal cells. ANSI escape
// sequences are ignored; wide characters count as 2.
func VisibleLen(s string) int {
	return ansi.StringWidth(s)
}

// Truncate truncates s to at most maxWidth visible cells, preserving ANSI
// escapes before the cut point.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return ansi.Truncate(s, maxWidth, "")
}

// PadRight pads s with trailing spaces to the given visible width. Wider
// input is returned unchanged.
func PadRight(s string, width int) string {
	vis := VisibleLen(s)
	if vis >= width {
		return s
	}
	return s + strings.Repeat(" ", width-vis)
}

// PadLeft pads s with leading spaces to the given visible width. Wider
// input is returned unchanged.
func PadLeft(s string, width int) string {
	vis := VisibleLen(s)
	if vis >= width {
		return s
	}
	return strings.Repeat(" ", width-vis) + s
}

// OffsetPad places s so that its first cell lands at column offset within a
// field of the given total width, clamping so the text stays inside the
// field. Used to position the hover tooltip under the pointer.
func OffsetPad(s string, offset, width int) string {
	vis := VisibleLen(s)
	if vis >= width || width <= 0 {
		return Truncate(s, width)
	}
	if offset < 0 {
		offset = 0
	}
	if offset+vis > width {
		offset = width - vis
	}
	return strings.Repeat(" ", offset) + s
}
