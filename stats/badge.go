// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stats

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dustin/go-humanize"
)

// Reading is what a badge displays.
type Reading struct {
	ChannelID   string
	Title       string
	Subscribers *int64
	Hidden      bool
	Available   bool
}

// Text renders the reading the way the share-mixer footer does.
func (r Reading) Text() string {
	switch {
	case !r.Available:
		return "subscribers unavailable"
	case r.Hidden || r.Subscribers == nil:
		return "subscribers hidden"
	default:
		return humanize.Comma(*r.Subscribers) + " subscribers"
	}
}

// Badge fetches channel statistics exactly once in the background. The
// result is applied only while the badge is alive; after Close it is
// discarded.
type Badge struct {
	cancel context.CancelFunc
	done   chan struct{}

	mu      sync.Mutex
	alive   bool
	reading Reading
	loaded  bool
}

// NewBadge starts the single fetch for channelID.
func NewBadge(ctx context.Context, f Fetcher, channelID string) *Badge {
	ctx, cancel := context.WithCancel(ctx)
	b := &Badge{cancel: cancel, done: make(chan struct{}), alive: true}

	go func() {
		defer close(b.done)

		resp, err := f.FetchChannel(ctx, channelID)
		reading := Reading{ChannelID: channelID}
		if err != nil {
			slog.Warn("channel stats unavailable", "channel_id", channelID, "error", err)
		} else {
			reading = Reading{
				ChannelID:   resp.ChannelID,
				Subscribers: resp.SubscriberCount,
				Hidden:      resp.HiddenSubscriberCount,
				Available:   true,
			}
			if resp.Title != nil {
				reading.Title = *resp.Title
			}
		}

		b.apply(reading)
	}()

	return b
}

// apply stores r unless the badge has been closed. It reports whether r was
// kept.
func (b *Badge) apply(r Reading) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.alive {
		return false
	}
	b.reading = r
	b.loaded = true
	return true
}

// Reading returns the current reading and whether the fetch has completed.
func (b *Badge) Reading() (Reading, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.reading, b.loaded
}

// Wait blocks until the fetch finishes or ctx is done.
func (b *Badge) Wait(ctx context.Context) (Reading, bool) {
	select {
	case <-b.done:
	case <-ctx.Done():
	}
	return b.Reading()
}

// Close marks the badge dead, cancels an in-flight fetch and waits for the
// background goroutine to exit. Safe to call more than once.
func (b *Badge) Close() {
	b.mu.Lock()
	b.alive = false
	b.mu.Unlock()

	b.cancel()
	<-b.done
}
