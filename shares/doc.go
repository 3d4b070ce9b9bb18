// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package shares implements the bounded-share allocation model behind the mixer.

A ShareSet maps category IDs to percentages. Every value in a ShareSet is
finite, within [0, 100] and quantized to tenths, and the values sum to at
most 100. Under-allocation is allowed and shown as "remaining".

All functions are pure: they take a ShareSet and return a new one. Callers
never mutate a ShareSet in place.

# Sanitizing Untrusted Input

Persisted or hand-edited data goes through Sanitize before use:

	live := shares.Sanitize(raw, poll.Categories)

Sanitize coerces each value to a number (non-finite becomes 0), clamps to
[0, 100], rounds to tenths and, if the total exceeds 100, trims the overflow
starting from the last declared category and walking backwards.

# Slider Bounds

MaxAllowed returns the highest value a category may take given all other
current values. SetShare clamps a raw slider value to that bound:

	max := shares.MaxAllowed(live, "ndp")
	live = shares.SetShare(live, "ndp", 42.37) // stored as 42.4 (or max)

# Normalizing

NormalizeTo100 scales a non-zero ShareSet so it sums to exactly 100.0. Every
category except the last is scaled and rounded; the last receives the
remainder so rounding never drifts to 99.9 or 100.1.

	shares.NormalizeTo100(shares.ShareSet{"a": 1, "b": 1, "c": 1}, cats)
	// a=33.3 b=33.3 c=33.4

# Baselines

Snapshot copies a sanitized live ShareSet into a labeled Baseline. Compare
overlays a Baseline on the live values for display.

# Rounding

Round1 is the only rounding rule: round(x*10)/10, half away from zero.
*/
package shares
