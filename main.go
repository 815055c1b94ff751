// tvpulse is a terminal now/next guide for a TVheadend server.
//
// It polls the server's channel, EPG, and upcoming-recordings grids and
// renders one row per channel: the currently airing programme with an
// elapsed-time progress bar and a recording marker, plus the next two
// programmes.
//
// Usage:
//
//	tvpulse [flags]
//
// Flags:
//
//	-config string  Path to configuration file (default: ~/.config/tvpulse/config.toml)
//	-server string  TVheadend server URL (overrides config)
//	-once           Print the guide once to stdout and exit
//	-verbose        Enable verbose logging
//	-version        Print version and exit
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/tvpulse/pkg/app"
	"gitlab.com/tinyland/lab/tvpulse/pkg/config"
	"gitlab.com/tinyland/lab/tvpulse/pkg/snapshot"
	"gitlab.com/tinyland/lab/tvpulse/pkg/tui"
	"gitlab.com/tinyland/lab/tvpulse/pkg/tvheadend"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to configuration file")
		serverURL   = flag.String("server", "", "TVheadend server URL (overrides config)")
		runOnce     = flag.Bool("once", false, "Print the guide once to stdout and exit")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		showVersion = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("tvpulse %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	// Load configuration
	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFromFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *serverURL != "" {
		cfg.Server.URL = *serverURL
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	// Setup logging. The TUI owns the terminal, so logs go to stderr only.
	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	client := tvheadend.New(tvheadend.Config{
		BaseURL:  cfg.Server.URL,
		Timeout:  cfg.Server.Timeout.Duration,
		EPGLimit: cfg.Refresh.EPGLimit,
	})

	if *runOnce {
		runSnapshot(client, cfg, logger)
		return
	}

	model := tui.NewModel(tui.Config{
		Client:       client,
		TickInterval: cfg.Refresh.TickInterval.Duration,
		Timezone:     cfg.Display.Timezone,
		Logger:       logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		os.Exit(1)
	}
}

// runSnapshot prints the guide grid once and exits.
func runSnapshot(client app.Fetcher, cfg *config.Config, logger *slog.Logger) {
	out, err := snapshot.Generate(context.Background(), snapshot.Config{
		Client:   client,
		Timezone: cfg.Display.Timezone,
		Logger:   logger,
	})
	if err != nil {
		logger.Error("snapshot failed", "error", err)
		os.Exit(1)
	}
	fmt.Print(out)
}
