// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/danielhkuo/share-mixer/models"
)

// ProxyClient reads channel statistics from a share-mixer server's
// /api/youtube-subs endpoint, so callers never need the API key.
type ProxyClient struct {
	baseURL string
	http    *http.Client
}

func NewProxyClient(baseURL string, hc *http.Client) *ProxyClient {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &ProxyClient{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// FetchChannel calls the proxy. An empty channelID lets the server pick its
// configured default.
func (p *ProxyClient) FetchChannel(ctx context.Context, channelID string) (models.StatsResponse, error) {
	endpoint := p.baseURL + "/api/youtube-subs"
	if channelID != "" {
		endpoint += "?" + url.Values{"channelId": {channelID}}.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.StatsResponse{}, fmt.Errorf("building request: %w", err)
	}

	resp, err := p.http.Do(req)
	if err != nil {
		return models.StatsResponse{}, fmt.Errorf("requesting stats proxy: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var failure models.StatsErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&failure); err != nil || failure.Error == "" {
			return models.StatsResponse{}, fmt.Errorf("stats proxy returned %d", resp.StatusCode)
		}
		if resp.StatusCode == http.StatusBadGateway {
			return models.StatsResponse{}, &UpstreamError{Status: resp.StatusCode, Body: failure.Detail}
		}
		return models.StatsResponse{}, fmt.Errorf("stats proxy: %s", failure.Error)
	}

	var out models.StatsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return models.StatsResponse{}, fmt.Errorf("decoding stats proxy response: %w", err)
	}
	return out, nil
}
