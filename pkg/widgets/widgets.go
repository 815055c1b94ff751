// Package widgets provides the concrete widget implementations for the
// tvpulse TUI. Each widget implements the app.Widget interface and receives
// already-projected guide data from the root model.
package widgets

// Common color constants for widget styling.
const (
	// ColorAccent highlights channel numbers and the selected row.
	ColorAccent = "#A78BFA"

	// ColorDim is used for de-emphasized text such as next-slot times.
	ColorDim = "#9CA3AF"

	// ColorRecording marks slots with a scheduled recording.
	ColorRecording = "#EF4444"

	// ColorProgress fills the elapsed-time bar.
	ColorProgress = "#3B82F6"

	// ColorProgressBG is the unfilled portion of the elapsed-time bar.
	ColorProgressBG = "#374151"
)
