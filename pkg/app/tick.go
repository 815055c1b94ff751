package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/tvpulse/pkg/guide"
)

// Fetcher is the slice of the TVheadend client the commands need. The real
// implementation is *tvheadend.Client; tests substitute fakes.
type Fetcher interface {
	Channels(ctx context.Context) ([]guide.Channel, error)
	Events(ctx context.Context) ([]guide.Event, error)
	Recordings(ctx context.Context) ([]guide.Recording, error)
}

// TickCmd returns a Cmd that sends a TickMsg after the given duration. The
// update loop re-arms it on every tick to form the recurring clock.
func TickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// FetchCmd dispatches one controller request against the client. The fetch
// runs off the update loop; its result comes back as a FetchCompletedMsg
// carrying the request's sequence number so the controller can drop results
// an earlier, slower request delivers after a newer one already applied.
func FetchCmd(f Fetcher, req guide.Request) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		res := guide.Result{Resource: req.Resource, Seq: req.Seq}
		switch req.Resource {
		case guide.ResourceChannels:
			data, err := f.Channels(ctx)
			res.Data, res.Err = data, err
		case guide.ResourceEvents:
			data, err := f.Events(ctx)
			res.Data, res.Err = data, err
		case guide.ResourceRecordings:
			data, err := f.Recordings(ctx)
			res.Data, res.Err = data, err
		}

		return FetchCompletedMsg{Result: res, Timestamp: time.Now()}
	}
}

// FetchCmds maps a batch of controller requests to commands.
func FetchCmds(f Fetcher, reqs []guide.Request) []tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(reqs))
	for _, req := range reqs {
		cmds = append(cmds, FetchCmd(f, req))
	}
	return cmds
}

// ResolveTimezoneCmd resolves the named timezone asynchronously. An empty
// name or an unresolvable one falls back to the local zone; the guide keeps
// rendering either way.
func ResolveTimezoneCmd(name string) tea.Cmd {
	return func() tea.Msg {
		if name == "" {
			return TimezoneResolvedMsg{Location: time.Local}
		}
		loc, err := time.LoadLocation(name)
		if err != nil {
			return TimezoneResolvedMsg{Location: time.Local}
		}
		return TimezoneResolvedMsg{Location: loc}
	}
}
