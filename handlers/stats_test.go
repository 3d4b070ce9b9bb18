// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/share-mixer/models"
	"github.com/danielhkuo/share-mixer/stats"
	"github.com/danielhkuo/share-mixer/testutil"
)

type fakeFetcher struct {
	resp models.StatsResponse
	err  error
	got  string
}

func (f *fakeFetcher) FetchChannel(_ context.Context, channelID string) (models.StatsResponse, error) {
	f.got = channelID
	if f.err != nil {
		return models.StatsResponse{}, f.err
	}
	f.resp.ChannelID = channelID
	return f.resp, nil
}

func TestGetChannelStats(t *testing.T) {
	count := int64(98765)

	tests := []struct {
		name        string
		query       string
		fetcher     *fakeFetcher
		wantStatus  int
		wantChannel string
		wantError   string
		wantDetail  string
	}{
		{
			name:        "default channel",
			fetcher:     &fakeFetcher{resp: models.StatsResponse{OK: true, SubscriberCount: &count}},
			wantStatus:  http.StatusOK,
			wantChannel: "default-chan",
		},
		{
			name:        "explicit channel",
			query:       "?channelId=other",
			fetcher:     &fakeFetcher{resp: models.StatsResponse{OK: true}},
			wantStatus:  http.StatusOK,
			wantChannel: "other",
		},
		{
			name:       "missing key",
			fetcher:    &fakeFetcher{err: stats.ErrMissingAPIKey},
			wantStatus: http.StatusInternalServerError,
			wantError:  "Missing YT_API_KEY env var",
		},
		{
			name:       "upstream error",
			fetcher:    &fakeFetcher{err: &stats.UpstreamError{Status: 403, Body: "quota exceeded"}},
			wantStatus: http.StatusBadGateway,
			wantError:  "YouTube API error",
			wantDetail: "quota exceeded",
		},
		{
			name:       "transport error",
			fetcher:    &fakeFetcher{err: errors.New("dial tcp: refused")},
			wantStatus: http.StatusInternalServerError,
			wantError:  "dial tcp: refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewStatsHandler(tt.fetcher, "default-chan")
			w := httptest.NewRecorder()

			handler.GetChannelStats(w, testutil.MakeRequest("GET", "/api/youtube-subs"+tt.query, nil, nil))

			testutil.AssertStatus(t, w, tt.wantStatus)

			if tt.wantStatus == http.StatusOK {
				if cc := w.Header().Get("Cache-Control"); cc != stats.CacheControl {
					t.Errorf("Cache-Control = %q", cc)
				}
				var resp models.StatsResponse
				testutil.AssertJSON(t, w, &resp)
				if !resp.OK || resp.ChannelID != tt.wantChannel {
					t.Errorf("Unexpected response: %+v", resp)
				}
				return
			}

			if w.Header().Get("Cache-Control") != "" {
				t.Error("Errors must not be cached")
			}
			var resp models.StatsErrorResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.OK || resp.Error != tt.wantError || resp.Detail != tt.wantDetail {
				t.Errorf("Unexpected error envelope: %+v", resp)
			}
		})
	}
}

func TestGetChannelStats_Upstream(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[{"snippet":{"title":"Poll Watch"},"statistics":{"subscriberCount":"1500"}}]}`))
	}))
	defer upstream.Close()

	client := stats.NewClient(upstream.URL, "key", upstream.Client())
	handler := NewStatsHandler(client, stats.DefaultChannelID)

	w := httptest.NewRecorder()
	handler.GetChannelStats(w, testutil.MakeRequest("GET", "/api/youtube-subs", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.StatsResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.SubscriberCount == nil || *resp.SubscriberCount != 1500 {
		t.Errorf("Unexpected subscriber count: %v", resp.SubscriberCount)
	}
	if resp.ChannelID != stats.DefaultChannelID {
		t.Errorf("Unexpected channel: %s", resp.ChannelID)
	}
}
