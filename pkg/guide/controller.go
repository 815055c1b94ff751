package guide

import (
	"log/slog"
	"time"
)

// Resource identifies one of the three backend collections the controller
// manages.
type Resource int

const (
	ResourceChannels Resource = iota
	ResourceEvents
	ResourceRecordings

	numResources
)

// String returns the resource name used in log output.
func (r Resource) String() string {
	switch r {
	case ResourceChannels:
		return "channels"
	case ResourceEvents:
		return "events"
	case ResourceRecordings:
		return "recordings"
	}
	return "unknown"
}

// Request asks the caller to dispatch one fetch. Seq is a monotonic sequence
// number the caller must echo back in the matching Result so the controller
// can discard responses that arrive after a newer fetch already applied.
type Request struct {
	Resource Resource
	Seq      uint64
}

// Result carries the outcome of a dispatched fetch back into the controller.
// Data is type-asserted by resource: []Channel, []Event, or []Recording.
type Result struct {
	Resource Resource
	Seq      uint64
	Data     interface{}
	Err      error
}

// Controller owns the application State and decides when each resource is
// fetched. It is a pure state machine: callers feed it Tick, Completed, and
// TimezoneResolved inputs and dispatch the Requests it returns. All methods
// must be called from a single goroutine (the bubbletea update loop in the
// TUI); the controller holds no locks.
//
// Fetch policy:
//   - startup chain channels -> events -> recordings, each step gated on the
//     previous success;
//   - on every tick, events are re-fetched while any held event has already
//     ended (level-triggered), chaining into a recordings re-fetch on
//     success;
//   - the channel list is never re-fetched once it has loaded;
//   - a step that has never succeeded is retried on subsequent ticks;
//   - at most one request per resource is in flight at a time, and a result
//     whose sequence number is older than the last applied one for that
//     resource is dropped instead of overwriting newer data.
//
// Fetch failures leave state untouched and are only logged; the UI keeps
// showing last-known-good data.
type Controller struct {
	state  State
	logger *slog.Logger

	nextSeq     uint64
	lastApplied [numResources]uint64
	inFlight    [numResources]bool
	loaded      [numResources]bool
}

// NewController creates a controller with empty state. A nil logger falls
// back to slog.Default.
func NewController(logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		state:  State{Now: time.Now()},
		logger: logger,
	}
}

// State returns a snapshot of the current application state. The slices are
// shared with the controller and must be treated as read-only; they are only
// ever replaced wholesale, never mutated in place.
func (c *Controller) State() State {
	return c.state
}

// Start begins the startup fetch chain by requesting the channel list.
func (c *Controller) Start() []Request {
	return []Request{c.issue(ResourceChannels)}
}

// Tick advances the clock and evaluates the refresh policy. The returned
// requests (possibly none) must be dispatched by the caller.
func (c *Controller) Tick(t time.Time) []Request {
	c.state.Now = t

	var reqs []Request
	switch {
	case !c.loaded[ResourceChannels]:
		// Startup never got past the channel list; retry the chain head.
		if !c.inFlight[ResourceChannels] {
			reqs = append(reqs, c.issue(ResourceChannels))
		}
	case !c.loaded[ResourceEvents] || c.anyExpired(t):
		if !c.inFlight[ResourceEvents] {
			reqs = append(reqs, c.issue(ResourceEvents))
		}
	case !c.loaded[ResourceRecordings]:
		// Events are current but the recordings step of the chain has never
		// succeeded.
		if !c.inFlight[ResourceRecordings] {
			reqs = append(reqs, c.issue(ResourceRecordings))
		}
	}
	return reqs
}

// Completed feeds a fetch result back in. On success the matching collection
// is replaced wholesale and the next step of the chain (if any) is requested:
// channels chain into events, events chain into recordings. On failure the
// state is left untouched and the error is logged.
func (c *Controller) Completed(res Result) []Request {
	if res.Resource < 0 || res.Resource >= numResources {
		return nil
	}
	c.inFlight[res.Resource] = false

	if res.Err != nil {
		c.logger.Warn("fetch failed",
			"resource", res.Resource.String(),
			"error", res.Err,
		)
		return nil
	}
	if res.Seq < c.lastApplied[res.Resource] {
		c.logger.Debug("dropping stale fetch result",
			"resource", res.Resource.String(),
			"seq", res.Seq,
			"last_applied", c.lastApplied[res.Resource],
		)
		return nil
	}

	switch res.Resource {
	case ResourceChannels:
		chans, ok := res.Data.([]Channel)
		if !ok {
			return nil
		}
		c.state.Channels = chans
	case ResourceEvents:
		events, ok := res.Data.([]Event)
		if !ok {
			return nil
		}
		c.state.Events = events
	case ResourceRecordings:
		recs, ok := res.Data.([]Recording)
		if !ok {
			return nil
		}
		c.state.Recordings = recs
	}

	c.lastApplied[res.Resource] = res.Seq
	c.loaded[res.Resource] = true

	switch res.Resource {
	case ResourceChannels:
		if !c.inFlight[ResourceEvents] {
			return []Request{c.issue(ResourceEvents)}
		}
	case ResourceEvents:
		if !c.inFlight[ResourceRecordings] {
			return []Request{c.issue(ResourceRecordings)}
		}
	}
	return nil
}

// TimezoneResolved records the display timezone. It has no ordering
// dependency on the fetch chain and may arrive at any point.
func (c *Controller) TimezoneResolved(loc *time.Location) {
	c.state.Location = loc
}

// Loaded reports whether the given resource has been fetched successfully at
// least once.
func (c *Controller) Loaded(r Resource) bool {
	if r < 0 || r >= numResources {
		return false
	}
	return c.loaded[r]
}

// issue allocates the next sequence number and marks the resource in flight.
func (c *Controller) issue(r Resource) Request {
	c.nextSeq++
	c.inFlight[r] = true
	return Request{Resource: r, Seq: c.nextSeq}
}

// anyExpired reports whether any held event has already ended at time t.
func (c *Controller) anyExpired(t time.Time) bool {
	for _, ev := range c.state.Events {
		if ev.Expired(t) {
			return true
		}
	}
	return false
}
