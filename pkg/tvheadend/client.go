// Package tvheadend is a minimal read-only client for the three TVheadend
// JSON grid endpoints the guide needs: the channel list, the EPG event grid,
// and the upcoming DVR entries. Responses are decoded straight into
// guide domain values; retry policy lives with the caller.
package tvheadend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"gitlab.com/tinyland/lab/tvpulse/pkg/guide"
)

// DefaultEPGLimit caps the EPG grid fetch, matching the stock web UI.
const DefaultEPGLimit = 500

// Config holds the client configuration.
type Config struct {
	// BaseURL is the TVheadend server root, e.g. "http://recorder:9981".
	BaseURL string

	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration

	// EPGLimit is the maximum number of EPG entries to request.
	// Zero uses DefaultEPGLimit.
	EPGLimit int
}

// Client fetches guide data from a single TVheadend server.
type Client struct {
	baseURL  string
	epgLimit int
	http     *http.Client
}

// New creates a Client for the given server.
func New(cfg Config) *Client {
	limit := cfg.EPGLimit
	if limit <= 0 {
		limit = DefaultEPGLimit
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		epgLimit: limit,
		http:     &http.Client{Timeout: cfg.Timeout},
	}
}

// Wire shapes of the TVheadend grid responses. Optional EPG fields are
// pointers so absence survives decoding.
type channelGrid struct {
	Entries []channelEntry `json:"entries"`
}

type channelEntry struct {
	UUID          string `json:"uuid"`
	Name          string `json:"name"`
	Number        int    `json:"number"`
	IconPublicURL string `json:"icon_public_url"`
}

type eventGrid struct {
	Entries []eventEntry `json:"entries"`
}

type eventEntry struct {
	EventID       int64  `json:"eventId"`
	Title         string `json:"title"`
	Subtitle      string `json:"subtitle"`
	SeasonNumber  *int   `json:"seasonNumber"`
	EpisodeNumber *int   `json:"episodeNumber"`
	ChannelUUID   string `json:"channelUuid"`
	Start         int64  `json:"start"`
	Stop          int64  `json:"stop"`
}

type dvrGrid struct {
	Entries []dvrEntry `json:"entries"`
}

type dvrEntry struct {
	Broadcast int64 `json:"broadcast"`
}

// Channels fetches the channel list, sorted by channel number ascending.
func (c *Client) Channels(ctx context.Context) ([]guide.Channel, error) {
	var grid channelGrid
	if err := c.get(ctx, "/api/channel/grid", nil, &grid); err != nil {
		return nil, err
	}

	channels := make([]guide.Channel, 0, len(grid.Entries))
	for _, e := range grid.Entries {
		channels = append(channels, guide.Channel{
			ID:      e.UUID,
			Name:    e.Name,
			Number:  e.Number,
			IconURL: e.IconPublicURL,
		})
	}
	sort.SliceStable(channels, func(i, j int) bool {
		return channels[i].Number < channels[j].Number
	})
	return channels, nil
}

// Events fetches the EPG event grid, limited to the configured entry count.
// The order of the returned events is whatever the server sent.
func (c *Client) Events(ctx context.Context) ([]guide.Event, error) {
	query := url.Values{"limit": []string{strconv.Itoa(c.epgLimit)}}

	var grid eventGrid
	if err := c.get(ctx, "/api/epg/events/grid", query, &grid); err != nil {
		return nil, err
	}

	events := make([]guide.Event, 0, len(grid.Entries))
	for _, e := range grid.Entries {
		events = append(events, guide.Event{
			ID:            e.EventID,
			ChannelID:     e.ChannelUUID,
			Title:         e.Title,
			Subtitle:      e.Subtitle,
			SeasonEpisode: CombineSeasonEpisode(e.SeasonNumber, e.EpisodeNumber),
			Episode:       e.EpisodeNumber,
			Start:         e.Start,
			Stop:          e.Stop,
		})
	}
	return events, nil
}

// Recordings fetches the upcoming DVR entries.
func (c *Client) Recordings(ctx context.Context) ([]guide.Recording, error) {
	var grid dvrGrid
	if err := c.get(ctx, "/api/dvr/entry/grid_upcoming", nil, &grid); err != nil {
		return nil, err
	}

	recs := make([]guide.Recording, 0, len(grid.Entries))
	for _, e := range grid.Entries {
		recs = append(recs, guide.Recording{BroadcastID: e.Broadcast})
	}
	return recs, nil
}

// CombineSeasonEpisode builds the "SxE" label from two optional numbers.
// Both must be present; a lone season or episode yields no label rather
// than a partial one.
func CombineSeasonEpisode(season, episode *int) string {
	if season == nil || episode == nil {
		return ""
	}
	return fmt.Sprintf("%dx%d", *season, *episode)
}

// get performs one GET and decodes the JSON body into out. Network and
// non-2xx failures come back as transport errors, malformed bodies as
// decode errors.
func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &FetchError{Kind: KindTransport, URL: u, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &FetchError{Kind: KindTransport, URL: u, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &FetchError{
			Kind: KindTransport,
			URL:  u,
			Err:  fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &FetchError{Kind: KindDecode, URL: u, Err: err}
	}
	return nil
}
