// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/share-mixer/cliparse"
	"github.com/danielhkuo/share-mixer/handlers"
	"github.com/danielhkuo/share-mixer/middleware"
	"github.com/danielhkuo/share-mixer/mixer"
	"github.com/danielhkuo/share-mixer/stats"
)

func NewRouter(svc *mixer.Service, cfg cliparse.Config, fetcher stats.Fetcher) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(svc, cfg)
	mixerHandler := handlers.NewMixerHandler(svc)
	noticeHandler := handlers.NewNoticeHandler(svc)
	statsHandler := handlers.NewStatsHandler(fetcher, cfg.ChannelID)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Poll definitions
	mux.HandleFunc("GET /polls", middleware.WithLogging(pollHandler.ListPolls))
	mux.HandleFunc("POST /polls", middleware.WithLogging(pollHandler.CreatePoll))
	mux.HandleFunc("GET /polls/active", middleware.WithLogging(pollHandler.GetActivePoll))
	mux.HandleFunc("PUT /polls/active", middleware.WithLogging(pollHandler.SetActivePoll))
	mux.HandleFunc("GET /polls/{id}", middleware.WithLogging(pollHandler.GetPoll))
	mux.HandleFunc("DELETE /polls/{id}", middleware.WithLogging(pollHandler.DeletePoll))

	// Mixer state
	mux.HandleFunc("GET /polls/{id}/state", middleware.WithLogging(mixerHandler.GetState))
	mux.HandleFunc("PUT /polls/{id}/shares/{category}", middleware.WithLogging(mixerHandler.SetShare))
	mux.HandleFunc("POST /polls/{id}/reset", middleware.WithLogging(mixerHandler.Reset))
	mux.HandleFunc("POST /polls/{id}/normalize", middleware.WithLogging(mixerHandler.Normalize))

	// Baseline
	mux.HandleFunc("POST /polls/{id}/baseline", middleware.WithLogging(mixerHandler.Snapshot))
	mux.HandleFunc("DELETE /polls/{id}/baseline", middleware.WithLogging(mixerHandler.ClearBaseline))
	mux.HandleFunc("PUT /polls/{id}/baseline/label", middleware.WithLogging(mixerHandler.SetBaselineLabel))

	// Snapshot export
	mux.HandleFunc("GET /polls/{id}/export.png", middleware.WithLogging(mixerHandler.ExportPNG))

	// First-visit notice
	mux.HandleFunc("GET /notice/{version}", middleware.WithLogging(noticeHandler.GetNotice))
	mux.HandleFunc("POST /notice/{version}/dismiss", middleware.WithLogging(noticeHandler.Dismiss))

	// Stats proxy
	mux.HandleFunc("GET /api/youtube-subs", middleware.WithLogging(statsHandler.GetChannelStats))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("share-mixer API v1"))
	})

	return mux
}
