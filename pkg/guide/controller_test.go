package guide

import (
	"errors"
	"testing"
	"time"
)

// --- helpers ---

func testChannels() []Channel {
	return []Channel{
		{ID: "a", Name: "One", Number: 1},
		{ID: "b", Name: "Two", Number: 2},
	}
}

func testEvents(stop int64) []Event {
	return []Event{
		{ID: 1, ChannelID: "a", Title: "Current", Start: stop - 100, Stop: stop},
	}
}

// complete feeds a successful result for the given request into the
// controller and returns the chained requests.
func complete(t *testing.T, c *Controller, req Request, data interface{}) []Request {
	t.Helper()
	return c.Completed(Result{Resource: req.Resource, Seq: req.Seq, Data: data})
}

// --- tests ---

func TestStartRequestsChannels(t *testing.T) {
	c := NewController(nil)
	reqs := c.Start()
	if len(reqs) != 1 {
		t.Fatalf("Start() returned %d requests, want 1", len(reqs))
	}
	if reqs[0].Resource != ResourceChannels {
		t.Errorf("Start() requested %v, want channels", reqs[0].Resource)
	}
}

func TestStartupChainOrder(t *testing.T) {
	c := NewController(nil)

	reqs := c.Start()
	reqs = complete(t, c, reqs[0], testChannels())
	if len(reqs) != 1 || reqs[0].Resource != ResourceEvents {
		t.Fatalf("after channels success, got %v, want one events request", reqs)
	}

	reqs = complete(t, c, reqs[0], testEvents(time.Now().Unix()+1000))
	if len(reqs) != 1 || reqs[0].Resource != ResourceRecordings {
		t.Fatalf("after events success, got %v, want one recordings request", reqs)
	}

	reqs = complete(t, c, reqs[0], []Recording{{BroadcastID: 1}})
	if len(reqs) != 0 {
		t.Errorf("after recordings success, got %v, want no chained requests", reqs)
	}

	st := c.State()
	if len(st.Channels) != 2 || len(st.Events) != 1 || len(st.Recordings) != 1 {
		t.Errorf("state not populated: %d channels, %d events, %d recordings",
			len(st.Channels), len(st.Events), len(st.Recordings))
	}
}

func TestFailureStopsChainAndKeepsState(t *testing.T) {
	c := NewController(nil)

	reqs := c.Start()
	reqs = complete(t, c, reqs[0], testChannels())

	chained := c.Completed(Result{
		Resource: reqs[0].Resource,
		Seq:      reqs[0].Seq,
		Err:      errors.New("connection refused"),
	})
	if len(chained) != 0 {
		t.Errorf("failed events fetch chained %v, want nothing", chained)
	}
	if got := c.State().Events; got != nil {
		t.Errorf("failed fetch mutated events: %v", got)
	}
	if c.Loaded(ResourceEvents) {
		t.Error("events marked loaded after failure")
	}
}

func TestTickRetriesChannelsUntilLoaded(t *testing.T) {
	c := NewController(nil)

	reqs := c.Start()
	c.Completed(Result{Resource: ResourceChannels, Seq: reqs[0].Seq, Err: errors.New("down")})

	reqs = c.Tick(time.Now())
	if len(reqs) != 1 || reqs[0].Resource != ResourceChannels {
		t.Fatalf("tick after channels failure got %v, want one channels request", reqs)
	}
}

func TestTickDoesNotDuplicateInFlightRequest(t *testing.T) {
	c := NewController(nil)
	c.Start() // channels request outstanding

	if reqs := c.Tick(time.Now()); len(reqs) != 0 {
		t.Errorf("tick issued %v while channels fetch in flight", reqs)
	}
}

func TestChannelsNeverRefetchedAfterSuccess(t *testing.T) {
	c := NewController(nil)
	now := time.Now()

	reqs := c.Start()
	reqs = complete(t, c, reqs[0], testChannels())
	reqs = complete(t, c, reqs[0], testEvents(now.Unix()+1000))
	complete(t, c, reqs[0], []Recording{})

	for i := 0; i < 5; i++ {
		for _, req := range c.Tick(now.Add(time.Duration(i) * time.Second)) {
			if req.Resource == ResourceChannels {
				t.Fatal("channels re-requested after successful load")
			}
		}
	}
}

func TestExpiredEventTriggersEventsRefetch(t *testing.T) {
	c := NewController(nil)
	now := time.Now()

	reqs := c.Start()
	reqs = complete(t, c, reqs[0], testChannels())
	reqs = complete(t, c, reqs[0], testEvents(now.Unix()-10)) // already ended
	complete(t, c, reqs[0], []Recording{})

	reqs = c.Tick(now)
	if len(reqs) != 1 || reqs[0].Resource != ResourceEvents {
		t.Fatalf("tick with expired event got %v, want one events request", reqs)
	}

	// Success chains into a recordings re-fetch, as at startup.
	chained := complete(t, c, reqs[0], testEvents(now.Unix()+1000))
	if len(chained) != 1 || chained[0].Resource != ResourceRecordings {
		t.Fatalf("events refresh chained %v, want one recordings request", chained)
	}
}

func TestNoRefetchWhileAllEventsCurrent(t *testing.T) {
	c := NewController(nil)
	now := time.Now()

	reqs := c.Start()
	reqs = complete(t, c, reqs[0], testChannels())
	reqs = complete(t, c, reqs[0], testEvents(now.Unix()+1000))
	complete(t, c, reqs[0], []Recording{})

	if reqs := c.Tick(now); len(reqs) != 0 {
		t.Errorf("tick with only current events issued %v, want nothing", reqs)
	}
}

func TestLevelTriggeredWhileExpiredEventHeld(t *testing.T) {
	c := NewController(nil)
	now := time.Now()

	reqs := c.Start()
	reqs = complete(t, c, reqs[0], testChannels())
	reqs = complete(t, c, reqs[0], testEvents(now.Unix()-10))
	complete(t, c, reqs[0], []Recording{})

	// First tick issues the refresh.
	reqs = c.Tick(now)
	if len(reqs) != 1 {
		t.Fatalf("first tick got %d requests, want 1", len(reqs))
	}

	// While that fetch is in flight, further ticks stay quiet.
	if extra := c.Tick(now.Add(time.Second)); len(extra) != 0 {
		t.Errorf("tick while refresh in flight issued %v", extra)
	}

	// A failed result leaves the stale event in place, so the condition
	// re-fires on the next tick.
	c.Completed(Result{Resource: ResourceEvents, Seq: reqs[0].Seq, Err: errors.New("timeout")})
	reqs = c.Tick(now.Add(2 * time.Second))
	if len(reqs) != 1 || reqs[0].Resource != ResourceEvents {
		t.Errorf("tick after failed refresh got %v, want one events request", reqs)
	}
}

func TestStaleResultDropped(t *testing.T) {
	c := NewController(nil)
	now := time.Now()

	reqs := c.Start()
	reqs = complete(t, c, reqs[0], testChannels())
	firstEvents := reqs[0]
	complete(t, c, firstEvents, testEvents(now.Unix()-10))

	// Refresh fires; a second events request goes out.
	second := c.Tick(now)[0]
	fresh := testEvents(now.Unix() + 1000)
	complete(t, c, second, fresh)

	// The slow first request now delivers again with an older seq. It must
	// not overwrite the newer data.
	c.Completed(Result{
		Resource: ResourceEvents,
		Seq:      firstEvents.Seq,
		Data:     testEvents(now.Unix() - 999),
	})

	if got := c.State().Events[0].Stop; got != fresh[0].Stop {
		t.Errorf("stale result overwrote state: stop=%d, want %d", got, fresh[0].Stop)
	}
}

func TestWholesaleReplaceWithEmptyList(t *testing.T) {
	c := NewController(nil)
	now := time.Now()

	reqs := c.Start()
	reqs = complete(t, c, reqs[0], testChannels())
	complete(t, c, reqs[0], testEvents(now.Unix()-10))

	refresh := c.Tick(now)[0]
	complete(t, c, refresh, []Event{})

	if got := c.State().Events; len(got) != 0 {
		t.Errorf("empty fetch did not replace events, still have %d", len(got))
	}
}

func TestRecordingsRetriedAfterChainFailure(t *testing.T) {
	c := NewController(nil)
	now := time.Now()

	reqs := c.Start()
	reqs = complete(t, c, reqs[0], testChannels())
	reqs = complete(t, c, reqs[0], testEvents(now.Unix()+1000))
	c.Completed(Result{Resource: ResourceRecordings, Seq: reqs[0].Seq, Err: errors.New("504")})

	reqs = c.Tick(now)
	if len(reqs) != 1 || reqs[0].Resource != ResourceRecordings {
		t.Fatalf("tick after recordings failure got %v, want one recordings request", reqs)
	}
}

func TestTickAdvancesClock(t *testing.T) {
	c := NewController(nil)
	at := time.Unix(1700000000, 0)
	c.Tick(at)
	if !c.State().Now.Equal(at) {
		t.Errorf("State().Now = %v, want %v", c.State().Now, at)
	}
}

func TestTimezoneResolvedIndependentOfChain(t *testing.T) {
	c := NewController(nil)
	loc := time.FixedZone("TEST", 3600)

	// Resolution may land before any fetch completes.
	c.TimezoneResolved(loc)
	if c.State().Location != loc {
		t.Error("timezone not stored before fetch chain completed")
	}

	reqs := c.Start()
	complete(t, c, reqs[0], testChannels())
	if c.State().Location != loc {
		t.Error("fetch completion clobbered timezone")
	}
}
