// Package guide holds the domain model and the refresh/projection core of
// tvpulse: the channel/event/recording types fetched from the TVheadend
// backend, the Controller state machine that decides when each resource is
// (re)fetched, and the pure projection from application state to per-channel
// now/next rows.
//
// The package is renderer-agnostic. The TUI and the one-shot snapshot surface
// both consume []Row from Project and draw it however they like.
package guide

import "time"

// Channel is a single tuner channel. ID is the opaque TVheadend uuid used as
// the join key to events; Number is used only for display ordering.
type Channel struct {
	ID      string
	Name    string
	Number  int
	IconURL string
}

// Event is one EPG entry. Start and Stop are unix seconds; Start < Stop.
// SeasonEpisode carries the "SxE" label combined at decode time, empty when
// either the season or the episode number was absent in the payload.
type Event struct {
	ID            int64
	ChannelID     string
	Title         string
	Subtitle      string
	SeasonEpisode string
	Episode       *int
	Start         int64
	Stop          int64
}

// Recording marks one EPG event as scheduled to be recorded. Only the
// foreign key is needed; everything else about the DVR entry is irrelevant
// to the guide.
type Recording struct {
	BroadcastID int64
}

// State is the single application state snapshot. Now advances only on clock
// ticks; the three collections are replaced wholesale by successful fetches,
// never patched. Location is nil until timezone resolution completes and
// falls back to the local zone for display.
type State struct {
	Now        time.Time
	Location   *time.Location
	Channels   []Channel
	Events     []Event
	Recordings []Recording
}

// Expired reports whether the event has already ended at time t.
func (e Event) Expired(t time.Time) bool {
	return e.Stop < t.Unix()
}

// Duration returns the scheduled length of the event.
func (e Event) Duration() time.Duration {
	return time.Duration(e.Stop-e.Start) * time.Second
}
