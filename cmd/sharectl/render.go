// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/danielhkuo/share-mixer/models"
	"github.com/danielhkuo/share-mixer/shares"
)

const barCells = 40

// renderState prints one line per category. A diamond marks values near a
// gridline.
func renderState(w io.Writer, state models.MixerState) {
	fmt.Fprintln(w, state.Poll.Title)

	width := 0
	for _, b := range state.Bars {
		width = max(width, len(b.Label))
	}

	for _, b := range state.Bars {
		marker := " "
		if b.LiveNearGridline {
			marker = "◆"
		}
		fmt.Fprintf(w, "  %-*s %s %5.1f%% %s  max %5.1f", width, b.Label, bar(b.Live), b.Live, marker, b.Max)
		if state.Comparing && b.Baseline != nil {
			fmt.Fprintf(w, "  %s %5.1f%% (%+.1f)", state.BaselineLabel, *b.Baseline, *b.Delta)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total %.1f%%", state.Total)
	if state.Total < shares.MaxShare {
		fmt.Fprintf(w, "  Remaining %.1f%%", state.Remaining)
	}
	fmt.Fprintln(w)
}

func bar(value float64) string {
	filled := int(value / shares.MaxShare * barCells)
	filled = min(max(filled, 0), barCells)
	return strings.Repeat("█", filled) + strings.Repeat("░", barCells-filled)
}
