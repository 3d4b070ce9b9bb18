// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package shares

import (
	"errors"
	"fmt"
	"regexp"
)

// Bounds and display defaults
const (
	MaxShare         = 100.0
	DefaultTolerance = 1.0
	DefaultLabel     = "STAT"
)

// DefaultGridlines are the chart gridlines values are emphasized against.
var DefaultGridlines = []float64{25, 50, 75, 100}

var (
	ErrNoCategories      = errors.New("at least one category is required")
	ErrEmptyCategoryID   = errors.New("category id is required")
	ErrEmptyLabel        = errors.New("category label is required")
	ErrDuplicateCategory = errors.New("duplicate category id")
	ErrInvalidColor      = errors.New("category color must be #rrggbb")
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Category is one labeled, colored slice of the 100% total.
type Category struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// ShareSet maps category ID to a percentage.
type ShareSet map[string]float64

// Clone returns a copy that can be modified without touching s.
func (s ShareSet) Clone() ShareSet {
	out := make(ShareSet, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Sum returns the total of all values, rounded to tenths.
func (s ShareSet) Sum() float64 {
	var total float64
	for _, v := range s {
		total += v
	}
	return Round1(total)
}

// SumExcept returns the total of every value except target's.
func (s ShareSet) SumExcept(target string) float64 {
	var total float64
	for k, v := range s {
		if k != target {
			total += v
		}
	}
	return Round1(total)
}

// Remaining is how much of the 100% is still unallocated.
func (s ShareSet) Remaining() float64 {
	return Clamp(MaxShare-s.Sum(), 0, MaxShare)
}

// ValidateCategories checks that a category list can back a poll.
func ValidateCategories(categories []Category) error {
	if len(categories) == 0 {
		return ErrNoCategories
	}

	seen := make(map[string]bool, len(categories))
	for i, c := range categories {
		if c.ID == "" {
			return fmt.Errorf("category %d: %w", i, ErrEmptyCategoryID)
		}
		if c.Label == "" {
			return fmt.Errorf("category %q: %w", c.ID, ErrEmptyLabel)
		}
		if c.Color != "" && !colorPattern.MatchString(c.Color) {
			return fmt.Errorf("category %q: %w", c.ID, ErrInvalidColor)
		}
		if seen[c.ID] {
			return fmt.Errorf("category %q: %w", c.ID, ErrDuplicateCategory)
		}
		seen[c.ID] = true
	}
	return nil
}

// palette is assigned to categories created without a color.
var palette = []string{
	"#3b82f6", "#ef4444", "#f97316", "#10b981",
	"#a855f7", "#64748b", "#eab308", "#06b6d4",
}

// FillColors returns a copy of categories with empty colors filled from the
// default palette.
func FillColors(categories []Category) []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	for i := range out {
		if out[i].Color == "" {
			out[i].Color = palette[i%len(palette)]
		}
	}
	return out
}
