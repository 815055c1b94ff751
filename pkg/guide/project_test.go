package guide

import (
	"testing"
	"time"
)

// --- helpers ---

func intp(v int) *int { return &v }

func projectState(now int64, channels []Channel, events []Event, recs []Recording) State {
	return State{
		Now:        time.Unix(now, 0),
		Location:   time.UTC,
		Channels:   channels,
		Events:     events,
		Recordings: recs,
	}
}

// --- tests ---

func TestProjectRowPerChannel(t *testing.T) {
	s := projectState(0, []Channel{
		{ID: "a", Number: 5},
		{ID: "b", Number: 1},
		{ID: "c", Number: 3},
	}, nil, nil)

	rows := Project(s)
	if len(rows) != 3 {
		t.Fatalf("Project() returned %d rows, want 3", len(rows))
	}
	want := []int{1, 3, 5}
	for i, row := range rows {
		if row.Channel.Number != want[i] {
			t.Errorf("row %d has channel number %d, want %d", i, row.Channel.Number, want[i])
		}
	}
}

func TestProjectNowNextSplit(t *testing.T) {
	s := projectState(50,
		[]Channel{{ID: "a", Number: 1}},
		[]Event{
			{ID: 1, ChannelID: "a", Title: "First", Start: 0, Stop: 100},
			{ID: 2, ChannelID: "a", Title: "Second", Start: 100, Stop: 200},
			{ID: 3, ChannelID: "a", Title: "Third", Start: 200, Stop: 300},
		},
		nil,
	)

	rows := Project(s)
	row := rows[0]

	if row.Now == nil || row.Now.Title != "First" {
		t.Fatalf("now slot = %+v, want First", row.Now)
	}
	if row.Now.Progress == nil || *row.Now.Progress != 50.0 {
		t.Errorf("now progress = %v, want 50.0", row.Now.Progress)
	}
	if row.Next[0] == nil || row.Next[0].Title != "Second" {
		t.Errorf("next[0] = %+v, want Second", row.Next[0])
	}
	if row.Next[1] == nil || row.Next[1].Title != "Third" {
		t.Errorf("next[1] = %+v, want Third", row.Next[1])
	}
	if row.Next[0].Progress != nil {
		t.Error("next slot carries a progress value")
	}
}

func TestProjectSortsEventsByStart(t *testing.T) {
	// Source order deliberately scrambled; the projector must not trust it.
	s := projectState(50,
		[]Channel{{ID: "a", Number: 1}},
		[]Event{
			{ID: 3, ChannelID: "a", Title: "Third", Start: 200, Stop: 300},
			{ID: 1, ChannelID: "a", Title: "First", Start: 0, Stop: 100},
			{ID: 2, ChannelID: "a", Title: "Second", Start: 100, Stop: 200},
		},
		nil,
	)

	row := Project(s)[0]
	if row.Now.Title != "First" || row.Next[0].Title != "Second" || row.Next[1].Title != "Third" {
		t.Errorf("got now=%q next=[%q %q], want First/Second/Third",
			row.Now.Title, row.Next[0].Title, row.Next[1].Title)
	}
}

func TestProjectProgressUnclamped(t *testing.T) {
	tests := []struct {
		name string
		now  int64
		want float64
	}{
		{"past the end", 150, 150.0},
		{"before the start", -50, -50.0},
		{"exactly at start", 0, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := projectState(tt.now,
				[]Channel{{ID: "a", Number: 1}},
				[]Event{{ID: 1, ChannelID: "a", Title: "X", Start: 0, Stop: 100}},
				nil,
			)
			row := Project(s)[0]
			if row.Now.Progress == nil || *row.Now.Progress != tt.want {
				t.Errorf("progress = %v, want %v", row.Now.Progress, tt.want)
			}
		})
	}
}

func TestProjectFewerEventsThanSlots(t *testing.T) {
	s := projectState(50,
		[]Channel{{ID: "a", Number: 1}, {ID: "b", Number: 2}},
		[]Event{{ID: 1, ChannelID: "a", Title: "Only", Start: 0, Stop: 100}},
		nil,
	)

	rows := Project(s)
	if rows[0].Now == nil {
		t.Error("channel with one event has no now slot")
	}
	if rows[0].Next[0] != nil || rows[0].Next[1] != nil {
		t.Error("channel with one event has next slots")
	}
	if rows[1].Now != nil {
		t.Error("channel with no events has a now slot")
	}
}

func TestProjectRecordingFlag(t *testing.T) {
	s := projectState(50,
		[]Channel{{ID: "a", Number: 1}},
		[]Event{
			{ID: 42, ChannelID: "a", Title: "Recorded", Start: 0, Stop: 100},
			{ID: 43, ChannelID: "a", Title: "NextRec", Start: 100, Stop: 200},
			{ID: 44, ChannelID: "a", Title: "Plain", Start: 200, Stop: 300},
		},
		[]Recording{{BroadcastID: 42}, {BroadcastID: 43}},
	)

	row := Project(s)[0]
	if !row.Now.Recording {
		t.Error("now slot for broadcast 42 not flagged as recording")
	}
	// The recording marker applies uniformly to next slots too.
	if !row.Next[0].Recording {
		t.Error("next slot for broadcast 43 not flagged as recording")
	}
	if row.Next[1].Recording {
		t.Error("broadcast 44 flagged as recording without a DVR entry")
	}
}

func TestEpisodeLabel(t *testing.T) {
	tests := []struct {
		name string
		ev   Event
		want string
	}{
		{
			name: "season and episode",
			ev:   Event{SeasonEpisode: "2x5", Episode: intp(5)},
			want: "2x5",
		},
		{
			name: "subtitle only",
			ev:   Event{Subtitle: "Pilot"},
			want: "(Pilot)",
		},
		{
			name: "episode number only",
			ev:   Event{Episode: intp(7)},
			want: "(7)",
		},
		{
			name: "episode and subtitle",
			ev:   Event{Episode: intp(7), Subtitle: "Pilot"},
			want: "(7 - Pilot)",
		},
		{
			name: "nothing",
			ev:   Event{},
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := episodeLabel(tt.ev); got != tt.want {
				t.Errorf("episodeLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStartLabelUsesResolvedTimezone(t *testing.T) {
	// 2023-11-14 22:13:20 UTC.
	const ts = 1700000000

	utc := startLabel(ts, time.UTC)
	if utc != "22:13" {
		t.Errorf("startLabel in UTC = %q, want 22:13", utc)
	}

	plusOne := startLabel(ts, time.FixedZone("CET", 3600))
	if plusOne != "23:13" {
		t.Errorf("startLabel in +01:00 = %q, want 23:13", plusOne)
	}
}

func TestProjectEndToEnd(t *testing.T) {
	s := projectState(50,
		[]Channel{{ID: "a", Number: 1}},
		[]Event{
			{ID: 1, ChannelID: "a", Title: "E1", Start: 0, Stop: 100},
			{ID: 2, ChannelID: "a", Title: "E2", Start: 100, Stop: 200},
			{ID: 3, ChannelID: "a", Title: "E3", Start: 200, Stop: 300},
		},
		nil,
	)

	rows := Project(s)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	row := rows[0]
	if row.Now.Title != "E1" || *row.Now.Progress != 50.0 {
		t.Errorf("now = %q at %.1f%%, want E1 at 50.0%%", row.Now.Title, *row.Now.Progress)
	}
	if row.Next[0].Title != "E2" || row.Next[1].Title != "E3" {
		t.Errorf("next = [%q %q], want [E2 E3]", row.Next[0].Title, row.Next[1].Title)
	}
}

func TestProjectNilLocationFallsBack(t *testing.T) {
	s := State{
		Now:      time.Unix(50, 0),
		Channels: []Channel{{ID: "a", Number: 1}},
		Events:   []Event{{ID: 1, ChannelID: "a", Title: "X", Start: 0, Stop: 100}},
	}
	row := Project(s)[0]
	if row.Now.StartLabel == "" {
		t.Error("start label empty with unresolved timezone")
	}
}
