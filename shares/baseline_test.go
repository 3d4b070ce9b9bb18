// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package shares

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapshot(t *testing.T) {
	cats := abc()
	live := ShareSet{"a": 50, "b": 30, "c": 40}

	base := Snapshot(live, cats, "  ")
	assert.Equal(t, DefaultLabel, base.Label)
	assert.Equal(t, ShareSet{"a": 50, "b": 30, "c": 20}, base.Shares)

	// later edits to live do not leak into the baseline
	live["a"] = 0
	assert.Equal(t, 50.0, base.Shares["a"])

	labeled := Snapshot(live, cats, " Leger Oct ")
	assert.Equal(t, "Leger Oct", labeled.Label)
}

func TestCompare(t *testing.T) {
	cats := abc()
	live := ShareSet{"a": 40, "b": 35.5, "c": 0}
	base := ShareSet{"a": 38.2, "b": 40}

	got := Compare(live, base, cats)
	want := []Comparison{
		{CategoryID: "a", Live: 40, Baseline: 38.2, Delta: 1.8},
		{CategoryID: "b", Live: 35.5, Baseline: 40, Delta: -4.5},
		{CategoryID: "c", Live: 0, Baseline: 0, Delta: 0},
	}
	assert.Equal(t, want, got)
}

func TestValidateCategories(t *testing.T) {
	tests := []struct {
		name    string
		cats    []Category
		wantErr error
	}{
		{"valid", abc(), nil},
		{"empty list", nil, ErrNoCategories},
		{"empty id", []Category{{Label: "x"}}, ErrEmptyCategoryID},
		{"empty label", []Category{{ID: "x"}}, ErrEmptyLabel},
		{"bad color", []Category{{ID: "x", Label: "X", Color: "blue"}}, ErrInvalidColor},
		{"duplicate", []Category{{ID: "x", Label: "X"}, {ID: "x", Label: "Y"}}, ErrDuplicateCategory},
		{"missing color is fine", []Category{{ID: "x", Label: "X"}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCategories(tt.cats)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
		})
	}
}

func TestFillColors(t *testing.T) {
	in := []Category{{ID: "a", Label: "A"}, {ID: "b", Label: "B", Color: "#000000"}}
	out := FillColors(in)

	assert.Equal(t, "#3b82f6", out[0].Color)
	assert.Equal(t, "#000000", out[1].Color)
	assert.Empty(t, in[0].Color, "input must not be modified")
}
