package widgets

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"gitlab.com/tinyland/lab/tvpulse/pkg/app"
	"gitlab.com/tinyland/lab/tvpulse/pkg/components"
	"gitlab.com/tinyland/lab/tvpulse/pkg/guide"
)

var _ app.Widget = (*GuideWidget)(nil)

// Recording marker glyph.
const recDot = "●" // ● filled circle

// blockLines is the rendered height of one channel block: header, now line,
// two next lines, and a blank separator.
const blockLines = 5

// progressBarWidth is the cell width of the elapsed-time bar.
const progressBarWidth = 12

// GuideWidget displays the per-channel now/next rows. Rows are projected by
// the root model on every tick and pushed in via SetRows; the widget only
// holds display state (scroll offset and row selection).
type GuideWidget struct {
	rows     []guide.Row
	offset   int
	selected int
}

// NewGuideWidget creates a GuideWidget with no data.
func NewGuideWidget() *GuideWidget {
	return &GuideWidget{selected: -1}
}

// ID returns the widget's unique identifier.
func (w *GuideWidget) ID() string {
	return "guide"
}

// Title returns the widget's display title.
func (w *GuideWidget) Title() string {
	return "Now & Next"
}

// MinSize returns the minimum dimensions for a single legible channel block.
func (w *GuideWidget) MinSize() (int, int) {
	return 40, blockLines
}

// SetRows replaces the projected rows. Scroll and selection are clamped so a
// shrinking channel list cannot leave them out of range.
func (w *GuideWidget) SetRows(rows []guide.Row) {
	w.rows = rows
	if w.offset >= len(rows) {
		w.offset = 0
	}
	if w.selected >= len(rows) {
		w.selected = len(rows) - 1
	}
}

// Rows returns the currently held rows.
func (w *GuideWidget) Rows() []guide.Row {
	return w.rows
}

// Selected returns the index of the selected row, or -1 when none is.
func (w *GuideWidget) Selected() int {
	return w.selected
}

// Update handles mouse selection via bubblezone marks. All other messages
// are ignored; data arrives through SetRows.
func (w *GuideWidget) Update(msg tea.Msg) tea.Cmd {
	mouse, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	if mouse.Action != tea.MouseActionPress || mouse.Button != tea.MouseButtonLeft {
		return nil
	}
	for i, row := range w.rows {
		if zone.Get(w.zoneID(row.Channel.ID)).InBounds(mouse) {
			w.selected = i
			break
		}
	}
	return nil
}

// HandleKey processes scroll and selection keys.
func (w *GuideWidget) HandleKey(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "up", "k":
		if w.selected > 0 {
			w.selected--
		} else if w.selected < 0 && len(w.rows) > 0 {
			w.selected = 0
		}
		w.scrollToSelection()
	case "down", "j":
		if w.selected < len(w.rows)-1 {
			w.selected++
		}
		w.scrollToSelection()
	case "pgup":
		w.offset -= 3
		if w.offset < 0 {
			w.offset = 0
		}
	case "pgdown":
		w.offset += 3
		if w.offset >= len(w.rows) {
			w.offset = len(w.rows) - 1
		}
		if w.offset < 0 {
			w.offset = 0
		}
	case "home", "g":
		w.offset = 0
		if len(w.rows) > 0 {
			w.selected = 0
		}
	}
	return nil
}

// View renders as many channel blocks as fit in the given area, starting at
// the scroll offset.
func (w *GuideWidget) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if len(w.rows) == 0 {
		return components.PadRight(components.Dim("No channels"), width)
	}

	// Keep the selection inside the visible window now that the height is
	// known.
	visible := height / blockLines
	if visible > 0 && w.selected >= w.offset+visible {
		w.offset = w.selected - visible + 1
	}

	var lines []string
	for i := w.offset; i < len(w.rows) && len(lines)+blockLines-1 <= height; i++ {
		block := w.renderBlock(w.rows[i], i == w.selected, width)
		lines = append(lines, block...)
		if len(lines) < height {
			lines = append(lines, strings.Repeat(" ", width))
		}
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

// renderBlock renders one channel: a header line and the now/next slot lines.
func (w *GuideWidget) renderBlock(row guide.Row, selected bool, width int) []string {
	header := fmt.Sprintf("%3d  %s", row.Channel.Number, row.Channel.Name)
	header = components.Truncate(header, width, "…")
	if selected {
		header = components.Color(ColorAccent) + components.Bold(header) + components.Reset()
	} else {
		header = components.Bold(header)
	}
	header = zone.Mark(w.zoneID(row.Channel.ID), components.PadRight(header, width))

	lines := []string{header}
	lines = append(lines, components.PadRight(w.renderNow(row.Now, width), width))
	for _, next := range row.Next {
		lines = append(lines, components.PadRight(w.renderNext(next, width), width))
	}
	return lines
}

// renderNow renders the currently airing slot with its elapsed-time bar.
func (w *GuideWidget) renderNow(slot *guide.Slot, width int) string {
	if slot == nil {
		return "     " + components.Dim("no programme information")
	}

	text := fmt.Sprintf("     %s  %s", slot.StartLabel, slotTitle(slot))

	bar := ""
	if slot.Progress != nil && width > progressBarWidth+30 {
		style := components.ProgressStyle{
			FillColor:  ColorProgress,
			EmptyColor: ColorProgressBG,
			ShowLabel:  true,
		}
		bar = components.ProgressBar(*slot.Progress, progressBarWidth, style)
	}

	rec := ""
	if slot.Recording {
		rec = components.Color(ColorRecording) + recDot + " REC" + components.Reset()
	}

	// Right-align bar and marker, truncating the text to the space left.
	tailWidth := components.VisibleLen(bar)
	if rec != "" {
		tailWidth += components.VisibleLen(rec) + 1
	}
	textWidth := width - tailWidth
	if tailWidth > 0 {
		textWidth-- // gap before the tail
	}
	text = components.Truncate(text, textWidth, "…")

	line := components.PadRight(text, textWidth)
	if bar != "" {
		line += " " + bar
	}
	if rec != "" {
		line += " " + rec
	}
	return line
}

// renderNext renders one upcoming slot in dimmed style.
func (w *GuideWidget) renderNext(slot *guide.Slot, width int) string {
	if slot == nil {
		return ""
	}
	text := fmt.Sprintf("     %s  %s", slot.StartLabel, slotTitle(slot))
	if slot.Recording {
		text += " " + recDot
	}
	text = components.Truncate(text, width, "…")
	return components.Dim(text)
}

// scrollToSelection keeps the selected row within the visible window.
func (w *GuideWidget) scrollToSelection() {
	if w.selected < 0 {
		return
	}
	if w.selected < w.offset {
		w.offset = w.selected
	}
}

// zoneID builds the bubblezone mark id for a channel row.
func (w *GuideWidget) zoneID(channelID string) string {
	return "guide:" + channelID
}

// slotTitle joins the slot title and its optional episode label.
func slotTitle(slot *guide.Slot) string {
	if slot.EpisodeLabel == "" {
		return slot.Title
	}
	return slot.Title + " " + slot.EpisodeLabel
}
