// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the share-mixer API.

# Handler Types

Each handler is a struct holding its dependencies:

  - PollHandler: Poll definitions (list, create, get, delete, active poll)
  - MixerHandler: Share edits, baseline, and PNG export
  - NoticeHandler: First-visit notice flag
  - StatsHandler: Channel statistics proxy

Handlers are created via constructor functions:

	pollHandler := handlers.NewPollHandler(svc, cfg)
	mixerHandler := handlers.NewMixerHandler(svc)
	statsHandler := handlers.NewStatsHandler(statsClient, cfg.ChannelID)

# Mixer State

Every mixer mutation answers with the full state of the poll, so a client can
redraw from one response:

	PUT  /polls/{id}/shares/{category} {"value": 42.37} → live shares, bars, total
	POST /polls/{id}/baseline          {"label": "Leger"} → state with compare on

Values are clamped server side; sending more than what is left simply caps
the category at its maximum. Add ?compare=1 to include baseline values and
deltas on each bar.

# Admin Keys

Creating a poll returns an admin key. DELETE /polls/{id} requires it in the
X-Admin-Key header. The built-in default poll cannot be deleted.

# Error Responses

Errors use the standard envelope:

	{"error": "Not Found", "message": "poll not found: abc"}

Unknown polls and categories map to 404, invalid poll definitions to 400,
bad admin keys to 401.

The stats proxy keeps its own envelope:

	{"ok": false, "error": "YouTube API error", "detail": "<upstream body>"}

with 502 for upstream failures and 500 for a missing API key or transport
errors. Successful stats responses are cacheable for 30 minutes.
*/
package handlers
