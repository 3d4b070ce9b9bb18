// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package export renders a mixer state to a PNG bar chart.
//
// The chart is encoded into memory first, so a failed render never leaves a
// partial file behind. File names follow poll-<slug>-<timestamp>.png with a
// UTC timestamp that sorts lexically:
//
//	path, err := export.Save("exports", state, time.Now())
package export
