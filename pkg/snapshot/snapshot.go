// Package snapshot implements the one-shot surface of tvpulse: fetch the
// three guide resources once, project them at the current time, and print
// the rendered grid to stdout. Output degrades to plain uncolored text when
// stdout is not a terminal.
package snapshot

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"gitlab.com/tinyland/lab/tvpulse/pkg/app"
	"gitlab.com/tinyland/lab/tvpulse/pkg/components"
	"gitlab.com/tinyland/lab/tvpulse/pkg/guide"
)

// fallbackWidth is used when the terminal size cannot be detected.
const fallbackWidth = 80

// progressBarWidth is the cell width of the elapsed-time bar.
const progressBarWidth = 12

// Config holds the snapshot wiring.
type Config struct {
	// Client fetches the three guide resources.
	Client app.Fetcher

	// Timezone is the display zone name ("" = local).
	Timezone string

	// Logger receives partial-failure logs. Nil uses slog.Default.
	Logger *slog.Logger
}

// Generate fetches everything once and returns the rendered grid. The
// channel list is required; a failed events or recordings fetch degrades to
// rendering without that data, mirroring the TUI's stale-tolerant behavior.
func Generate(ctx context.Context, cfg Config) (string, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	channels, err := cfg.Client.Channels(ctx)
	if err != nil {
		return "", fmt.Errorf("fetch channels: %w", err)
	}

	events, err := cfg.Client.Events(ctx)
	if err != nil {
		logger.Warn("fetch failed", "resource", "events", "error", err)
	}

	var recordings []guide.Recording
	if events != nil {
		recordings, err = cfg.Client.Recordings(ctx)
		if err != nil {
			logger.Warn("fetch failed", "resource", "recordings", "error", err)
		}
	}

	loc := time.Local
	if cfg.Timezone != "" {
		if l, lerr := time.LoadLocation(cfg.Timezone); lerr == nil {
			loc = l
		}
	}

	state := guide.State{
		Now:        time.Now(),
		Location:   loc,
		Channels:   channels,
		Events:     events,
		Recordings: recordings,
	}

	width, colored := detectTerminal()
	return Render(guide.Project(state), width, colored), nil
}

// Render formats projected rows as plain text blocks, one per channel.
func Render(rows []guide.Row, width int, colored bool) string {
	if len(rows) == 0 {
		return "no channels\n"
	}

	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		header := fmt.Sprintf("%3d  %s", row.Channel.Number, row.Channel.Name)
		if colored {
			header = components.Bold(header)
		}
		b.WriteString(components.Truncate(header, width, "…"))
		b.WriteString("\n")

		b.WriteString(renderSlot(row.Now, width, colored, true))
		for _, next := range row.Next {
			b.WriteString(renderSlot(next, width, colored, false))
		}
	}
	return b.String()
}

// renderSlot formats one slot line, with the progress bar on the now slot.
func renderSlot(slot *guide.Slot, width int, colored, now bool) string {
	if slot == nil {
		if now {
			return "     no programme information\n"
		}
		return ""
	}

	title := slot.Title
	if slot.EpisodeLabel != "" {
		title += " " + slot.EpisodeLabel
	}
	line := fmt.Sprintf("     %s  %s", slot.StartLabel, title)

	if now && slot.Progress != nil {
		if colored {
			bar := components.ProgressBar(*slot.Progress, progressBarWidth, components.ProgressStyle{
				FillColor:  "#3B82F6",
				EmptyColor: "#374151",
				ShowLabel:  true,
			})
			line += "  " + bar
		} else {
			line += fmt.Sprintf("  %.0f%%", *slot.Progress)
		}
	}
	if slot.Recording {
		if colored {
			line += "  " + components.Color("#EF4444") + "● REC" + components.Reset()
		} else {
			line += "  [REC]"
		}
	}

	return components.Truncate(line, width, "…") + "\n"
}

// detectTerminal returns the output width and whether color should be used.
func detectTerminal() (int, bool) {
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) {
		return fallbackWidth, false
	}

	width := fallbackWidth
	if w, _, err := term.GetSize(fd); err == nil && w > 0 {
		width = w
	}

	colored := termenv.EnvColorProfile() != termenv.Ascii
	return width, colored
}
