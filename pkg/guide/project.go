package guide

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Slot is one program cell of a now/next row. Progress is non-nil only for
// the currently airing slot and is intentionally unclamped: stale data or a
// skewed clock can push it below 0 or past 100, and renderers decide how to
// draw that.
type Slot struct {
	StartLabel   string
	Title        string
	EpisodeLabel string
	Recording    bool
	Progress     *float64
}

// Row is the projected now/next view of a single channel. Now is nil when
// the channel has no events; Next entries are nil when fewer than two or
// three events exist.
type Row struct {
	Channel Channel
	Now     *Slot
	Next    [2]*Slot
}

// Project derives the per-channel now/next rows from a state snapshot. It is
// a pure function of its input and is recomputed on every tick so progress
// bars advance between fetches.
//
// Rows come out in ascending channel-number order. Events are sorted by
// start time per channel before the now/next split; the backend usually
// returns them ordered but that is not part of its contract.
func Project(s State) []Row {
	channels := make([]Channel, len(s.Channels))
	copy(channels, s.Channels)
	sort.SliceStable(channels, func(i, j int) bool {
		return channels[i].Number < channels[j].Number
	})

	recorded := make(map[int64]struct{}, len(s.Recordings))
	for _, r := range s.Recordings {
		recorded[r.BroadcastID] = struct{}{}
	}

	byChannel := make(map[string][]Event, len(channels))
	for _, ev := range s.Events {
		byChannel[ev.ChannelID] = append(byChannel[ev.ChannelID], ev)
	}
	for _, evs := range byChannel {
		sort.SliceStable(evs, func(i, j int) bool {
			return evs[i].Start < evs[j].Start
		})
	}

	rows := make([]Row, 0, len(channels))
	for _, ch := range channels {
		row := Row{Channel: ch}
		evs := byChannel[ch.ID]

		if len(evs) > 0 {
			row.Now = projectSlot(evs[0], s, recorded)
			pct := progressPercent(evs[0], s.Now)
			row.Now.Progress = &pct
		}
		for i := 0; i < 2 && i+1 < len(evs); i++ {
			row.Next[i] = projectSlot(evs[i+1], s, recorded)
		}

		rows = append(rows, row)
	}
	return rows
}

// projectSlot builds the display slot for one event. The recording marker is
// derived uniformly for every slot, now and next alike.
func projectSlot(ev Event, s State, recorded map[int64]struct{}) *Slot {
	_, rec := recorded[ev.ID]
	return &Slot{
		StartLabel:   startLabel(ev.Start, s.Location),
		Title:        ev.Title,
		EpisodeLabel: episodeLabel(ev),
		Recording:    rec,
	}
}

// progressPercent computes elapsed/duration*100 without clamping.
func progressPercent(ev Event, now time.Time) float64 {
	dur := ev.Stop - ev.Start
	if dur <= 0 {
		return 0
	}
	return float64(now.Unix()-ev.Start) / float64(dur) * 100
}

// startLabel renders a unix start time as 24-hour HH:MM in the resolved
// timezone, or the local zone while resolution is still pending.
func startLabel(start int64, loc *time.Location) string {
	t := time.Unix(start, 0)
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format("15:04")
}

// episodeLabel picks the richest available episode annotation: the
// decode-time "SxE" label when both numbers were present, otherwise a
// parenthetical built from the bare episode number and/or subtitle, or
// nothing when the event carries neither.
func episodeLabel(ev Event) string {
	if ev.SeasonEpisode != "" {
		return ev.SeasonEpisode
	}
	var parts []string
	if ev.Episode != nil {
		parts = append(parts, strconv.Itoa(*ev.Episode))
	}
	if ev.Subtitle != "" {
		parts = append(parts, ev.Subtitle)
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, " - ") + ")"
}
