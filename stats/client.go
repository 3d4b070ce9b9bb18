// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/danielhkuo/share-mixer/models"
)

const (
	DefaultBaseURL   = "https://www.googleapis.com/youtube/v3"
	DefaultChannelID = "UCdlKQfnSA5TvtsxjWq7PGmw"

	// CacheControl is sent with every successful proxy response
	CacheControl = "public, max-age=1800"

	fetchedAtFmt = "2006-01-02T15:04:05.000Z07:00"
	maxBodyBytes = 1 << 20

	// FetchTimeout bounds one shared upstream call
	FetchTimeout = 10 * time.Second
)

var ErrMissingAPIKey = errors.New("Missing YT_API_KEY env var")

// UpstreamError is returned when the upstream API answers with a non-2xx status.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned %d", e.Status)
}

// Fetcher returns channel statistics. Client talks to the upstream API
// directly and ProxyClient goes through a running share-mixer server.
type Fetcher interface {
	FetchChannel(ctx context.Context, channelID string) (models.StatsResponse, error)
}

// Client queries the YouTube Data API for channel statistics.
// Concurrent requests for the same channel share one upstream call.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	now     func() time.Time

	group singleflight.Group
}

// NewClient returns a client for baseURL. An empty apiKey is allowed; every
// fetch then fails with ErrMissingAPIKey.
func NewClient(baseURL, apiKey string, hc *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if hc == nil {
		hc = &http.Client{Timeout: FetchTimeout}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    hc,
		now:     time.Now,
	}
}

type channelList struct {
	Items []struct {
		Snippet struct {
			Title *string `json:"title"`
		} `json:"snippet"`
		Statistics struct {
			SubscriberCount       *string `json:"subscriberCount"`
			HiddenSubscriberCount bool    `json:"hiddenSubscriberCount"`
		} `json:"statistics"`
	} `json:"items"`
}

// FetchChannel returns the current statistics for channelID.
//
// The upstream call is shared between concurrent callers and runs detached
// from any single caller's cancellation; ctx only bounds how long this caller
// waits for it.
func (c *Client) FetchChannel(ctx context.Context, channelID string) (models.StatsResponse, error) {
	if c.apiKey == "" {
		return models.StatsResponse{}, ErrMissingAPIKey
	}

	ch := c.group.DoChan(channelID, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), FetchTimeout)
		defer cancel()
		return c.fetch(fetchCtx, channelID)
	})

	select {
	case <-ctx.Done():
		return models.StatsResponse{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return models.StatsResponse{}, res.Err
		}
		if res.Shared {
			slog.Debug("shared upstream stats request", "channel_id", channelID)
		}
		return res.Val.(models.StatsResponse), nil
	}
}

func (c *Client) fetch(ctx context.Context, channelID string) (models.StatsResponse, error) {
	q := url.Values{}
	q.Set("part", "statistics,snippet")
	q.Set("id", channelID)
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/channels?"+q.Encode(), nil)
	if err != nil {
		return models.StatsResponse{}, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return models.StatsResponse{}, fmt.Errorf("requesting channel stats: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return models.StatsResponse{}, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Warn("upstream stats request failed", "channel_id", channelID, "status", resp.StatusCode)
		return models.StatsResponse{}, &UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}

	var list channelList
	if err := json.Unmarshal(body, &list); err != nil {
		return models.StatsResponse{}, fmt.Errorf("decoding response: %w", err)
	}

	out := models.StatsResponse{
		OK:        true,
		ChannelID: channelID,
		FetchedAt: c.now().UTC().Format(fetchedAtFmt),
	}
	if len(list.Items) > 0 {
		item := list.Items[0]
		out.Title = item.Snippet.Title
		out.SubscriberCount = parseCount(item.Statistics.SubscriberCount)
		out.HiddenSubscriberCount = item.Statistics.HiddenSubscriberCount
	}
	return out, nil
}

func parseCount(s *string) *int64 {
	if s == nil {
		return nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(*s), 10, 64)
	if err != nil {
		return nil
	}
	return &n
}
