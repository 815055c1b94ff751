package app

import tea "github.com/charmbracelet/bubbletea"

// Widget is the rendering unit the root model composes. Widgets are passive:
// they receive data through setters or messages, never fetch anything
// themselves, and render into whatever area they are given.
type Widget interface {
	// ID returns a unique identifier for this widget.
	ID() string

	// Title returns the human-readable display name.
	Title() string

	// Update handles messages directed at this widget.
	Update(msg tea.Msg) tea.Cmd

	// View renders the widget content into the given area dimensions.
	View(width, height int) string

	// MinSize returns the minimum width and height this widget requires.
	MinSize() (int, int)

	// HandleKey processes a key event when this widget has focus.
	HandleKey(key tea.KeyMsg) tea.Cmd
}
