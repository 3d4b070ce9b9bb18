// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreatePollRequest: title, categories
  - SetActivePollRequest: poll_id
  - SetShareRequest: value (raw slider value, clamped server-side)
  - SnapshotRequest: label (optional, defaults to "STAT")
  - BaselineLabelRequest: label

# Response Types

Types for JSON responses:

  - CreatePollResponse: poll, admin_key
  - PollListResponse: polls, active_id
  - ActivePollResponse: poll_id
  - NoticeResponse: version, dismissed
  - StatsResponse / StatsErrorResponse: Stats Proxy envelopes
  - ErrorResponse: error, message

# Domain Types

  - Poll: poll definition with its ordered categories
  - MixerState: live and baseline shares plus derived totals
  - Bar: one category as rendered (value, slider max, gridline emphasis)

# Defaults

DefaultPoll returns the built-in "Canada Poll Share Mixer" poll with seven
parties. It is used whenever no valid poll list has been stored.

Category order matters: overflow is trimmed from the last category first and
normalization assigns its rounding remainder to the last category.
*/
package models
