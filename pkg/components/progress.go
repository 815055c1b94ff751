package components

import (
	"fmt"
	"math"
	"strings"
)

// Block characters for sub-cell bar precision (8 levels per cell).
var progressBlocks = [9]rune{
	' ',
	'▏', // ▏
	'▎', // ▎
	'▍', // ▍
	'▌', // ▌
	'▋', // ▋
	'▊', // ▊
	'▉', // ▉
	'█', // █
}

// ProgressStyle configures the elapsed-time bar.
type ProgressStyle struct {
	FillColor  string // hex color for the filled portion
	EmptyColor string // hex color for the empty portion
	ShowLabel  bool   // append a numeric percent label after the bar
}

// DefaultProgressStyle returns the guide's stock bar appearance.
func DefaultProgressStyle() ProgressStyle {
	return ProgressStyle{
		FillColor:  "#3B82F6",
		EmptyColor: "#374151",
		ShowLabel:  false,
	}
}

// ProgressBar renders an elapsed-time bar for a raw percentage. The input is
// not assumed to be in [0,100]: stale guide data can produce negative or
// past-the-end values, which draw as an empty or full bar while the optional
// label still shows the raw number.
func ProgressBar(percent float64, width int, style ProgressStyle) string {
	if width <= 0 {
		return ""
	}

	ratio := percent / 100
	if math.IsNaN(ratio) || ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}

	totalUnits := width * 8
	filledUnits := int(math.Round(ratio * float64(totalUnits)))
	fullCells := filledUnits / 8
	partial := filledUnits % 8
	emptyCells := width - fullCells
	if partial > 0 {
		emptyCells--
	}
	if emptyCells < 0 {
		emptyCells = 0
	}

	fill := Color(style.FillColor)
	empty := Color(style.EmptyColor)

	var b strings.Builder
	if fullCells > 0 {
		b.WriteString(fill)
		b.WriteString(strings.Repeat(string(progressBlocks[8]), fullCells))
	}
	if partial > 0 {
		b.WriteString(fill)
		b.WriteRune(progressBlocks[partial])
	}
	if emptyCells > 0 {
		b.WriteString(empty)
		b.WriteString(strings.Repeat(string(progressBlocks[8]), emptyCells))
	}
	b.WriteString(Reset())

	if style.ShowLabel {
		b.WriteString(fmt.Sprintf(" %.0f%%", percent))
	}
	return b.String()
}
