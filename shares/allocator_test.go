// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package shares

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func abc() []Category {
	return []Category{
		{ID: "a", Label: "A", Color: "#3b82f6"},
		{ID: "b", Label: "B", Color: "#ef4444"},
		{ID: "c", Label: "C", Color: "#f97316"},
	}
}

func isTenth(v float64) bool {
	return math.Abs(v*10-math.Round(v*10)) < 1e-6
}

func assertValid(t *testing.T, s ShareSet, cats []Category) {
	t.Helper()
	require.Len(t, s, len(cats))
	var total float64
	for _, c := range cats {
		v, ok := s[c.ID]
		require.True(t, ok, "missing category %q", c.ID)
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "%q not finite", c.ID)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 100.0)
		assert.True(t, isTenth(v), "%q=%v not quantized", c.ID, v)
		total += v
	}
	assert.LessOrEqual(t, total, 100.05)
}

func TestRound1(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{1.04, 1},
		{1.05, 1.1},
		{1.25, 1.3},
		{-1.25, -1.3},
		{33.333333, 33.3},
		{99.96, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Round1(tt.in), "Round1(%v)", tt.in)
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(math.NaN(), 0, 100))
	assert.Equal(t, 0.0, Clamp(math.Inf(1), 0, 100))
	assert.Equal(t, 100.0, Clamp(250, 0, 100))
	assert.Equal(t, 0.0, Clamp(-3, 0, 100))
	assert.Equal(t, 42.4, Clamp(42.37, 0, 100))
}

func TestSanitize(t *testing.T) {
	cats := abc()

	tests := []struct {
		name string
		raw  map[string]any
		want ShareSet
	}{
		{
			name: "overflow trimmed from last category",
			raw:  map[string]any{"a": 50.0, "b": 30.0, "c": 40.0},
			want: ShareSet{"a": 50, "b": 30, "c": 20},
		},
		{
			name: "overflow walks backwards past exhausted categories",
			raw:  map[string]any{"a": 90.0, "b": 30.0, "c": 5.0},
			want: ShareSet{"a": 90, "b": 10, "c": 0},
		},
		{
			name: "under 100 kept as is",
			raw:  map[string]any{"a": 10.0, "b": 20.0, "c": 30.0},
			want: ShareSet{"a": 10, "b": 20, "c": 30},
		},
		{
			name: "missing and unknown keys",
			raw:  map[string]any{"a": 12.0, "zzz": 99.0},
			want: ShareSet{"a": 12, "b": 0, "c": 0},
		},
		{
			name: "malformed values coerced",
			raw:  map[string]any{"a": "12.34", "b": true, "c": map[string]any{"x": 1}},
			want: ShareSet{"a": 12.3, "b": 1, "c": 0},
		},
		{
			name: "negative and huge values clamped",
			raw:  map[string]any{"a": -5.0, "b": 1e9, "c": nil},
			want: ShareSet{"a": 0, "b": 100, "c": 0},
		},
		{
			name: "non-finite becomes zero",
			raw:  map[string]any{"a": math.NaN(), "b": math.Inf(-1), "c": "Infinity"},
			want: ShareSet{"a": 0, "b": 0, "c": 0},
		},
		{
			name: "nil input",
			raw:  nil,
			want: ShareSet{"a": 0, "b": 0, "c": 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.raw, cats)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Sanitize() mismatch (-want +got):\n%s", diff)
			}
			assertValid(t, got, cats)
		})
	}
}

func TestSanitize_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	cats := []Category{{ID: "a", Label: "A"}, {ID: "b", Label: "B"}, {ID: "c", Label: "C"}, {ID: "d", Label: "D"}, {ID: "e", Label: "E"}}
	for i := 0; i < 15; i++ {
		id := fmt.Sprintf("x%d", i)
		cats = append(cats, Category{ID: id, Label: id})
	}

	for i := 0; i < 500; i++ {
		raw := make(map[string]any, len(cats))
		for _, c := range cats {
			raw[c.ID] = rng.Float64()*260 - 30
		}

		once := Sanitize(raw, cats)
		assertValid(t, once, cats)

		twice := Sanitize(once, cats)
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Fatalf("Sanitize not idempotent (-once +twice):\n%s", diff)
		}
	}
}

func TestSanitize_ManyCategories(t *testing.T) {
	for _, n := range []int{12, 25, 60} {
		cats := make([]Category, n)
		raw := make(map[string]any, n)
		for i := range cats {
			id := fmt.Sprintf("p%02d", i)
			cats[i] = Category{ID: id, Label: id}
			raw[id] = 100.0
		}

		got := Sanitize(raw, cats)
		assertValid(t, got, cats)
		assert.Equal(t, 100.0, got[cats[0].ID], "n=%d", n)
		assert.Equal(t, 100.0, got.Sum(), "n=%d", n)
		for _, c := range cats[1:] {
			assert.Equal(t, 0.0, got[c.ID], "n=%d %s", n, c.ID)
		}

		if diff := cmp.Diff(got, Sanitize(got, cats)); diff != "" {
			t.Errorf("Sanitize not idempotent for n=%d (-once +twice):\n%s", n, diff)
		}
	}
}

func TestDecode(t *testing.T) {
	cats := abc()

	assert.Equal(t, ShareSet{"a": 50, "b": 30, "c": 20}, Decode([]byte(`{"a":50,"b":30,"c":40}`), cats))
	assert.Equal(t, ResetAll(cats), Decode([]byte(`not json`), cats))
	assert.Equal(t, ResetAll(cats), Decode([]byte(`[1,2,3]`), cats))
	assert.Equal(t, ResetAll(cats), Decode(nil, cats))
}

func TestMaxAllowed(t *testing.T) {
	s := ShareSet{"a": 40, "b": 30, "c": 10}

	assert.Equal(t, 30.0, MaxAllowed(s, "c"))
	assert.Equal(t, 60.0, MaxAllowed(s, "a"))

	// stale state over budget
	over := ShareSet{"a": 80, "b": 40, "c": 0}
	assert.Equal(t, 0.0, MaxAllowed(over, "c"))
}

func TestMaxAllowed_Property(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	cats := abc()

	for i := 0; i < 300; i++ {
		s := ShareSet{}
		for _, c := range cats {
			s[c.ID] = Round1(rng.Float64() * 60)
		}
		for _, c := range cats {
			except := s.SumExcept(c.ID)
			got := MaxAllowed(s, c.ID)
			if except <= 100 {
				assert.InDelta(t, 100, got+except, 0.05)
			} else {
				assert.Equal(t, 0.0, got)
			}
		}
	}
}

func TestSetShare(t *testing.T) {
	tests := []struct {
		name   string
		in     ShareSet
		target string
		raw    float64
		want   ShareSet
	}{
		{"clamped to max", ShareSet{"a": 40, "b": 30}, "a", 90, ShareSet{"a": 70, "b": 30}},
		{"rounded", ShareSet{"a": 0, "b": 0}, "b", 12.34, ShareSet{"a": 0, "b": 12.3}},
		{"negative", ShareSet{"a": 10, "b": 0}, "a", -4, ShareSet{"a": 0, "b": 0}},
		{"nan", ShareSet{"a": 10, "b": 0}, "a", math.NaN(), ShareSet{"a": 0, "b": 0}},
		{"stale overflow absorbed by target", ShareSet{"a": 70, "b": 50, "c": 10}, "c", 20, ShareSet{"a": 70, "b": 50, "c": 0}},
		{"unknown target", ShareSet{"a": 10}, "zzz", 5, ShareSet{"a": 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.in.Clone()
			got := SetShare(tt.in, tt.target, tt.raw)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("SetShare() mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, before, tt.in, "input must not be mutated")
		})
	}
}

func TestSetShare_NeverOverflows(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	cats := abc()
	s := ResetAll(cats)

	for i := 0; i < 1000; i++ {
		target := cats[rng.Intn(len(cats))].ID
		s = SetShare(s, target, rng.Float64()*150-20)
		assert.LessOrEqual(t, s.Sum(), 100.05)
		assertValid(t, s, cats)
	}
}

func TestNormalizeTo100(t *testing.T) {
	cats := abc()

	t.Run("remainder goes to last", func(t *testing.T) {
		got := NormalizeTo100(ShareSet{"a": 1, "b": 1, "c": 1}, cats)
		want := ShareSet{"a": 33.3, "b": 33.3, "c": 33.4}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("NormalizeTo100() mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, 100.0, got.Sum())
	})

	t.Run("all zero unchanged", func(t *testing.T) {
		zero := ResetAll(cats)
		assert.Equal(t, zero, NormalizeTo100(zero, cats))
	})

	t.Run("already 100", func(t *testing.T) {
		in := ShareSet{"a": 50, "b": 25, "c": 25}
		assert.Equal(t, in, NormalizeTo100(in, cats))
	})

	t.Run("scales up", func(t *testing.T) {
		got := NormalizeTo100(ShareSet{"a": 20, "b": 10, "c": 10}, cats)
		assert.Equal(t, ShareSet{"a": 50, "b": 25, "c": 25}, got)
	})
}

func TestNormalizeTo100_SumsExactly(t *testing.T) {
	rng := rand.New(rand.NewSource(19))
	cats := []Category{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}, {ID: "e"}, {ID: "f"}, {ID: "g"}}

	for i := 0; i < 500; i++ {
		raw := map[string]float64{}
		for _, c := range cats {
			raw[c.ID] = rng.Float64() * 30
		}
		s := Sanitize(raw, cats)
		if s.Sum() == 0 {
			continue
		}
		got := NormalizeTo100(s, cats)
		assert.Equal(t, 100.0, got.Sum(), "input %v", s)
		assertValid(t, got, cats)
	}
}

func TestIsNearGridline(t *testing.T) {
	tests := []struct {
		value float64
		want  bool
	}{
		{24, true},
		{26, true},
		{26.1, false},
		{50.5, true},
		{10, false},
		{99, true},
		{0, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NearDefaultGridline(tt.value), "value %v", tt.value)
	}

	assert.True(t, IsNearGridline(33, []float64{30}, 5))
	assert.False(t, IsNearGridline(33, nil, 5))
}

func TestRemaining(t *testing.T) {
	assert.Equal(t, 40.0, ShareSet{"a": 30, "b": 30}.Remaining())
	assert.Equal(t, 0.0, ShareSet{"a": 60, "b": 40}.Remaining())
}
