// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package shares

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Round1 rounds to one decimal place, half away from zero.
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// Clamp rounds n to tenths and clamps it to [min, max].
// Non-finite input returns min.
func Clamp(n, min, max float64) float64 {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return min
	}
	v := Round1(n)
	return math.Max(min, math.Min(max, v))
}

// Sanitize turns an arbitrary category->value mapping into a valid ShareSet
// for the given categories. It never fails; the worst case is all zeros.
//
// Keys not in categories are dropped and missing ones become 0. If the
// clamped values sum past 100, the overflow is trimmed from the last
// declared category backwards.
func Sanitize[V any](raw map[string]V, categories []Category) ShareSet {
	next := make(ShareSet, len(categories))
	for _, c := range categories {
		var v float64
		if rv, ok := raw[c.ID]; ok {
			v = coerce(rv)
		}
		next[c.ID] = Clamp(v, 0, MaxShare)
	}

	total := next.Sum()
	if total <= MaxShare {
		return next
	}

	// no upper bound: with N categories the overflow can reach 100*(N-1)
	overflow := Round1(total - MaxShare)
	for i := len(categories) - 1; i >= 0 && overflow > 0; i-- {
		id := categories[i].ID
		take := math.Min(next[id], overflow)
		next[id] = Clamp(next[id]-take, 0, MaxShare)
		overflow = math.Max(0, Round1(overflow-take))
	}

	return next
}

// Decode parses persisted JSON and sanitizes it. Anything that is not a JSON
// object yields the all-zero ShareSet.
func Decode(data []byte, categories []Category) ShareSet {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return ResetAll(categories)
	}
	return Sanitize(raw, categories)
}

// MaxAllowed is the upper slider bound for target given every other value.
func MaxAllowed(s ShareSet, target string) float64 {
	return Clamp(MaxShare-s.SumExcept(target), 0, MaxShare)
}

// SetShare returns a copy of s with target set to raw, clamped to
// [0, MaxAllowed] and rounded to tenths. Unknown targets return an unchanged
// copy.
func SetShare(s ShareSet, target string, raw float64) ShareSet {
	next := s.Clone()
	if _, ok := s[target]; !ok {
		return next
	}

	next[target] = Clamp(raw, 0, MaxAllowed(s, target))

	// s may already have been over budget; only target absorbs the excess
	if total := next.Sum(); total > MaxShare {
		next[target] = Clamp(next[target]-(total-MaxShare), 0, MaxShare)
	}

	return next
}

// ResetAll returns the all-zero ShareSet for categories.
func ResetAll(categories []Category) ShareSet {
	out := make(ShareSet, len(categories))
	for _, c := range categories {
		out[c.ID] = 0
	}
	return out
}

// NormalizeTo100 scales s proportionally so it sums to exactly 100.0.
// The last category absorbs the rounding remainder. An all-zero set is
// returned unchanged.
func NormalizeTo100(s ShareSet, categories []Category) ShareSet {
	sum := s.Sum()
	if sum == 0 || len(categories) == 0 {
		return s
	}

	scaled := make(ShareSet, len(categories))
	var accum float64
	last := len(categories) - 1
	for i, c := range categories {
		if i < last {
			v := Clamp(s[c.ID]/sum*MaxShare, 0, MaxShare)
			scaled[c.ID] = v
			accum = Clamp(accum+v, 0, 2*MaxShare)
			continue
		}
		scaled[c.ID] = Clamp(MaxShare-accum, 0, MaxShare)
	}

	return Sanitize(scaled, categories)
}

// IsNearGridline reports whether value is within tolerance of any gridline.
func IsNearGridline(value float64, gridlines []float64, tolerance float64) bool {
	for _, g := range gridlines {
		if math.Abs(value-g) <= tolerance {
			return true
		}
	}
	return false
}

// NearDefaultGridline checks value against DefaultGridlines with
// DefaultTolerance.
func NearDefaultGridline(value float64) bool {
	return IsNearGridline(value, DefaultGridlines, DefaultTolerance)
}

// coerce converts a decoded value to a number. Unknown shapes become NaN.
func coerce(v any) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return math.NaN()
		}
		return f
	case bool:
		if n {
			return 1
		}
		return 0
	case string:
		trimmed := strings.TrimSpace(n)
		if trimmed == "" {
			return 0
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}
