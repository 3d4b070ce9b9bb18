// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/share-mixer/middleware"
	"github.com/danielhkuo/share-mixer/models"
	"github.com/danielhkuo/share-mixer/stats"
)

type StatsHandler struct {
	fetcher   stats.Fetcher
	channelID string
}

// NewStatsHandler serves channel statistics from fetcher. channelID is used
// when the request does not name one.
func NewStatsHandler(fetcher stats.Fetcher, channelID string) *StatsHandler {
	return &StatsHandler{fetcher: fetcher, channelID: channelID}
}

// GetChannelStats handles GET /api/youtube-subs
func (h *StatsHandler) GetChannelStats(w http.ResponseWriter, r *http.Request) {
	channelID := r.URL.Query().Get("channelId")
	if channelID == "" {
		channelID = h.channelID
	}

	resp, err := h.fetcher.FetchChannel(r.Context(), channelID)
	if err != nil {
		var upErr *stats.UpstreamError
		switch {
		case errors.As(err, &upErr):
			middleware.JSONResponse(w, http.StatusBadGateway, models.StatsErrorResponse{
				Error:  "YouTube API error",
				Detail: upErr.Body,
			})
		case errors.Is(err, stats.ErrMissingAPIKey):
			middleware.JSONResponse(w, http.StatusInternalServerError, models.StatsErrorResponse{
				Error: err.Error(),
			})
		default:
			slog.Error("stats proxy failed", "channel_id", channelID, "error", err)
			middleware.JSONResponse(w, http.StatusInternalServerError, models.StatsErrorResponse{
				Error: err.Error(),
			})
		}
		return
	}

	w.Header().Set("Cache-Control", stats.CacheControl)
	middleware.JSONResponse(w, http.StatusOK, resp)
}
