// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

// Key prefixes carry a schema version suffix so a layout change can move to
// new keys without reading old shapes.
const (
	livePrefix          = "poll-shares-v2:"
	baselinePrefix      = "poll-shares-baseline-v2:"
	baselineLabelPrefix = "poll-shares-baseline-label-v2:"
	noticePrefix        = "pollshare-alert-dismissed:"

	PollsKey      = "poll-defs-v1"
	ActivePollKey = "poll-active-v1"
)

// LiveKey holds the live ShareSet of a poll.
func LiveKey(pollID string) string { return livePrefix + pollID }

// BaselineKey holds the baseline ShareSet of a poll.
func BaselineKey(pollID string) string { return baselinePrefix + pollID }

// BaselineLabelKey holds the baseline label of a poll.
func BaselineLabelKey(pollID string) string { return baselineLabelPrefix + pollID }

// NoticeKey holds the "dismiss forever" flag for a notice version.
func NoticeKey(version string) string { return noticePrefix + version }

// PollKeys lists every per-poll key, for cleanup on poll deletion.
func PollKeys(pollID string) []string {
	return []string{LiveKey(pollID), BaselineKey(pollID), BaselineLabelKey(pollID)}
}
