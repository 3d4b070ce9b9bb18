// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/danielhkuo/share-mixer/models"
)

// Chart geometry
const (
	DefaultWidth  = 1200
	DefaultHeight = 640

	maxBarWidth   = 80
	fallbackColor = "52525b"
	timestampFmt  = "2006-01-02T15-04-05"
)

var ErrNothingToRender = errors.New("no categories to render")

var (
	backgroundColor = drawing.ColorFromHex("18181b")
	foregroundColor = drawing.ColorFromHex("e4e4e7")
)

// PNG renders the chart region of state. In compare mode every category
// gets a translucent baseline bar followed by its live bar.
func PNG(state models.MixerState) ([]byte, error) {
	if len(state.Bars) == 0 {
		return nil, ErrNothingToRender
	}

	bars := make([]chart.Value, 0, 2*len(state.Bars))
	for _, b := range state.Bars {
		color := hexColor(b.Color)
		if state.Comparing && b.Baseline != nil {
			bars = append(bars, chart.Value{
				Label: fmt.Sprintf("%s %.1f%%", state.BaselineLabel, *b.Baseline),
				Value: *b.Baseline,
				Style: barStyle(color.WithAlpha(90)),
			})
		}
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%s %.1f%%", b.Label, b.Live),
			Value: b.Live,
			Style: barStyle(color),
		})
	}

	graph := chart.BarChart{
		Title:      title(state),
		TitleStyle: chart.Style{FontColor: foregroundColor},
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		BarWidth:   barWidth(len(bars)),
		Background: chart.Style{
			FillColor: backgroundColor,
			Padding:   chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16},
		},
		Canvas: chart.Style{FillColor: backgroundColor},
		XAxis:  chart.Style{FontColor: foregroundColor, StrokeColor: foregroundColor},
		YAxis: chart.YAxis{
			Style: chart.Style{FontColor: foregroundColor, StrokeColor: foregroundColor},
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
			Ticks: gridTicks(state.Gridlines),
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f%%", f)
				}
				return ""
			},
		},
		Bars: bars,
	}

	// encode fully before anything is written out
	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("rendering chart: %w", err)
	}
	return buf.Bytes(), nil
}

// Save renders state and writes it to dir under Filename. No file is
// created if rendering fails.
func Save(dir string, state models.MixerState, at time.Time) (string, error) {
	data, err := PNG(state)
	if err != nil {
		return "", err
	}

	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return "", fmt.Errorf("create directory: %w", err)
		}
	}

	path := filepath.Join(dir, Filename(state.Poll.Title, at))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// Filename returns poll-<slug>-<timestamp>.png with a sortable UTC stamp.
func Filename(title string, at time.Time) string {
	return fmt.Sprintf("poll-%s-%s.png", Slug(title), at.UTC().Format(timestampFmt))
}

// Slug lowercases title and keeps ASCII letters and digits, joining runs of
// anything else with a single hyphen.
func Slug(title string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(title) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			pendingDash = false
			continue
		}
		pendingDash = true
	}
	if b.Len() == 0 {
		return "share"
	}
	return b.String()
}

func title(state models.MixerState) string {
	t := fmt.Sprintf("%s · Total %.1f%%", state.Poll.Title, state.Total)
	if state.Total < 100 {
		t += fmt.Sprintf(" (Remaining %.1f%%)", state.Remaining)
	}
	if state.Comparing {
		t += fmt.Sprintf(" · %s vs Live", state.BaselineLabel)
	}
	return t
}

func barStyle(c drawing.Color) chart.Style {
	return chart.Style{FillColor: c, StrokeColor: c, StrokeWidth: 1}
}

func barWidth(n int) int {
	w := (DefaultWidth - 200) / (2 * n)
	if w > maxBarWidth {
		return maxBarWidth
	}
	if w < 4 {
		return 4
	}
	return w
}

func gridTicks(lines []float64) []chart.Tick {
	ticks := []chart.Tick{{Value: 0, Label: "0%"}}
	for _, g := range lines {
		ticks = append(ticks, chart.Tick{Value: g, Label: fmt.Sprintf("%.0f%%", g)})
	}
	return ticks
}

func hexColor(hex string) drawing.Color {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		hex = fallbackColor
	}
	return drawing.ColorFromHex(hex)
}
