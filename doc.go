// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the share-mixer API server.

Share mixer is a "what if" tool for poll shares: one slider per category,
every value clamped to [0, 100] with one decimal, and the total never allowed
past 100. A baseline snapshot can be captured and compared against live
edits, and the chart can be exported as a PNG.

# Starting the Server

Configuration comes from flags, environment variables, or a .env file:

	ADMIN_KEY_SALT=... go run .

Or with flags:

	go run . -p 3318 -d sharemix.db -admin-salt dev

# Configuration

Required settings:

  - ADMIN_KEY_SALT (-admin-salt): Secret for admin key HMAC

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_URL (-d): sqlite path or PostgreSQL URL (default: sharemix.db)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - YT_API_KEY (-yt-key): enables /api/youtube-subs
  - YT_CHANNEL_ID (-channel): default channel for the stats proxy

# Architecture

  - shares: Share allocator and baseline comparison (pure functions)
  - store: Key/value persistence over sqlite or postgres
  - mixer: Per-poll state service built on shares and store
  - export: PNG chart rendering
  - stats: Channel statistics upstream client and badge
  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response and domain types
  - auth: Admin keys
  - db: Connections and migrations
  - cliparse: Configuration parsing

The terminal client lives in cmd/sharectl.

See package documentation for each component.
*/
package main
