// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package shares

import "strings"

// Baseline is a frozen, labeled ShareSet kept for comparison.
type Baseline struct {
	Label  string   `json:"label"`
	Shares ShareSet `json:"shares"`
}

// Comparison is one category's baseline and live values side by side.
type Comparison struct {
	CategoryID string  `json:"category_id"`
	Live       float64 `json:"live"`
	Baseline   float64 `json:"baseline"`
	Delta      float64 `json:"delta"`
}

// Snapshot copies live into a new Baseline. An empty label falls back to
// DefaultLabel.
func Snapshot(live ShareSet, categories []Category, label string) Baseline {
	return Baseline{
		Label:  NormalizeLabel(label),
		Shares: Sanitize(live, categories),
	}
}

// NormalizeLabel trims label and substitutes DefaultLabel when empty.
func NormalizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return DefaultLabel
	}
	return label
}

// Compare overlays base on live in category order. Categories missing from
// either set read as 0.
func Compare(live, base ShareSet, categories []Category) []Comparison {
	out := make([]Comparison, 0, len(categories))
	for _, c := range categories {
		l, b := live[c.ID], base[c.ID]
		out = append(out, Comparison{
			CategoryID: c.ID,
			Live:       l,
			Baseline:   b,
			Delta:      Round1(l - b),
		})
	}
	return out
}
