// Package tui implements the interactive full-screen surface of tvpulse:
// a bubbletea program wiring the guide controller, the TVheadend client,
// and the guide widget into the Elm update loop.
package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"gitlab.com/tinyland/lab/tvpulse/pkg/app"
	"gitlab.com/tinyland/lab/tvpulse/pkg/guide"
	"gitlab.com/tinyland/lab/tvpulse/pkg/widgets"
)

// DefaultTickInterval drives the clock when no interval is configured.
const DefaultTickInterval = time.Second

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#A78BFA"))

	clockStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9CA3AF"))
)

// Config holds the TUI wiring.
type Config struct {
	// Client fetches the three guide resources.
	Client app.Fetcher

	// TickInterval is the clock cadence. Zero uses DefaultTickInterval.
	TickInterval time.Duration

	// Timezone is the display zone name ("" = local).
	Timezone string

	// Logger receives fetch failure logs. Nil uses slog.Default.
	Logger *slog.Logger
}

// Model is the root bubbletea model.
type Model struct {
	controller *guide.Controller
	client     app.Fetcher
	widget     *widgets.GuideWidget

	tick     time.Duration
	timezone string

	keys    keyMap
	help    help.Model
	spinner spinner.Model

	width  int
	height int
}

// NewModel creates the root model. It also initialises the global bubblezone
// manager used for mouse row selection.
func NewModel(cfg Config) Model {
	zone.NewGlobal()

	tick := cfg.TickInterval
	if tick <= 0 {
		tick = DefaultTickInterval
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		controller: guide.NewController(cfg.Logger),
		client:     cfg.Client,
		widget:     widgets.NewGuideWidget(),
		tick:       tick,
		timezone:   cfg.Timezone,
		keys:       defaultKeyMap(),
		help:       help.New(),
		spinner:    sp,
	}
}

// Init starts the clock, the timezone resolution, and the startup fetch
// chain.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		app.TickCmd(m.tick),
		app.ResolveTimezoneCmd(m.timezone),
		m.spinner.Tick,
	}
	cmds = append(cmds, app.FetchCmds(m.client, m.controller.Start())...)
	return tea.Batch(cmds...)
}

// Update is the single consumer of all events; every state mutation happens
// here, on one goroutine.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
		return m, m.widget.HandleKey(msg)

	case tea.MouseMsg:
		return m, m.widget.Update(msg)

	case app.TickMsg:
		reqs := m.controller.Tick(msg.Time)
		m.reproject()
		cmds := app.FetchCmds(m.client, reqs)
		cmds = append(cmds, app.TickCmd(m.tick))
		return m, tea.Batch(cmds...)

	case app.FetchCompletedMsg:
		reqs := m.controller.Completed(msg.Result)
		m.reproject()
		if len(reqs) == 0 {
			return m, nil
		}
		return m, tea.Batch(app.FetchCmds(m.client, reqs)...)

	case app.TimezoneResolvedMsg:
		m.controller.TimezoneResolved(msg.Location)
		m.reproject()
		return m, nil

	case spinner.TickMsg:
		if m.controller.Loaded(guide.ResourceChannels) {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders header, guide, and help bar, wrapped in the bubblezone scan
// so mouse marks resolve to screen coordinates.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	header := m.renderHeader()
	helpBar := m.help.View(m.keys)

	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(helpBar)
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	var body string
	if !m.controller.Loaded(guide.ResourceChannels) {
		body = m.spinner.View() + " connecting to server..."
	} else {
		body = m.widget.View(m.width, bodyHeight)
	}

	return zone.Scan(lipgloss.JoinVertical(lipgloss.Left, header, body, helpBar))
}

// renderHeader renders the title line with the running clock.
func (m Model) renderHeader() string {
	state := m.controller.State()
	now := state.Now
	if state.Location != nil {
		now = now.In(state.Location)
	}
	title := headerStyle.Render("tvpulse")
	clock := clockStyle.Render(now.Format("15:04:05"))
	gap := m.width - lipgloss.Width(title) - lipgloss.Width(clock)
	if gap < 1 {
		gap = 1
	}
	return title + lipgloss.NewStyle().Width(gap).Render("") + clock
}

// reproject recomputes the view-model rows from the current state.
func (m *Model) reproject() {
	m.widget.SetRows(guide.Project(m.controller.State()))
}
