// Package app provides the Bubble Tea event vocabulary and command
// constructors shared by the tvpulse surfaces. It defines the tick, fetch
// completion, and timezone messages that drive the guide controller, and
// wraps the TVheadend client calls into asynchronous tea.Cmds so all state
// mutation stays on the single update-loop goroutine.
package app

import (
	"time"

	"gitlab.com/tinyland/lab/tvpulse/pkg/guide"
)

// TickMsg is sent by the recurring clock ticker. Every tick advances the
// guide clock, re-evaluates the refresh policy, and redraws so progress bars
// animate between fetches.
type TickMsg struct {
	Time time.Time
}

// FetchCompletedMsg delivers a finished fetch back into the update loop.
// Result carries the resource tag, the sequence number of the originating
// request, and either the decoded data or the error.
type FetchCompletedMsg struct {
	Result    guide.Result
	Timestamp time.Time
}

// TimezoneResolvedMsg reports the display timezone once resolution has
// finished. It has no ordering relationship with the fetch chain.
type TimezoneResolvedMsg struct {
	Location *time.Location
}
