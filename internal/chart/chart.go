// Package chart renders the terminal charts: status-colored sparklines,
// distribution bars for the aggregation views, and status badges.
package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/luki/templog/internal/history"
	"github.com/luki/templog/internal/status"
	"github.com/luki/templog/internal/store"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

var (
	colorSafe    = lipgloss.Color("78")  // green
	colorWarning = lipgloss.Color("220") // yellow
	colorDanger  = lipgloss.Color("196") // red
	colorEmpty   = lipgloss.Color("236")
	colorText    = lipgloss.Color("252")
	colorDim     = lipgloss.Color("240")
)

// seriesPalette colors location buckets.
var seriesPalette = []lipgloss.Color{"39", "44", "204", "141", "214", "114"}

// StatusColor returns the color used for a status everywhere in the UI.
func StatusColor(s status.Status) lipgloss.Color {
	switch s {
	case status.Safe:
		return colorSafe
	case status.Warning:
		return colorWarning
	default:
		return colorDanger
	}
}

// SeriesColor returns the palette color for the i-th bucket.
func SeriesColor(i int) lipgloss.Color {
	return seriesPalette[i%len(seriesPalette)]
}

// StatusLabelColor maps a status bucket label back to its color.
func StatusLabelColor(label string) lipgloss.Color {
	for _, s := range status.All() {
		if s.Label() == label {
			return StatusColor(s)
		}
	}
	return colorDim
}

// RenderStatusBadge renders a colored status tag, e.g. "● Safe".
func RenderStatusBadge(s status.Status) string {
	style := lipgloss.NewStyle().Foreground(StatusColor(s))
	if s == status.Danger {
		style = style.Bold(true)
	}
	return style.Render("● " + s.Label())
}

// RenderTempValue renders the temperature with one decimal and the status color.
func RenderTempValue(temp float64, s status.Status) string {
	style := lipgloss.NewStyle().Foreground(StatusColor(s))
	if s == status.Danger {
		style = style.Bold(true)
	}
	return style.Render(FormatTemp(temp))
}

// FormatTemp formats a temperature as "-12.0°F".
func FormatTemp(temp float64) string {
	return fmt.Sprintf("%.1f°F", temp)
}

// RenderDistribution renders one horizontal bar per bucket. Empty buckets
// are still listed so every category is visible.
func RenderDistribution(counts store.Counts, colorFor func(i int, label string) lipgloss.Color, width int) []string {
	if len(counts) == 0 {
		return nil
	}

	labelW := 0
	for _, b := range counts {
		if w := lipgloss.Width(b.Label); w > labelW {
			labelW = w
		}
	}

	total := counts.Total()
	barW := width - labelW - 14
	if barW < 4 {
		barW = 4
	}

	labelS := lipgloss.NewStyle().Foreground(colorText).Width(labelW)
	dimS := lipgloss.NewStyle().Foreground(colorDim)
	emptyS := lipgloss.NewStyle().Foreground(colorEmpty)

	rows := make([]string, 0, len(counts))
	for i, b := range counts {
		filled := 0
		pct := 0.0
		if total > 0 {
			pct = float64(b.Count) / float64(total) * 100
			filled = int(math.Round(float64(barW) * float64(b.Count) / float64(total)))
		}
		if b.Count > 0 && filled == 0 {
			filled = 1
		}

		bar := lipgloss.NewStyle().Foreground(colorFor(i, b.Label)).Render(strings.Repeat("█", filled)) +
			emptyS.Render(strings.Repeat("╌", barW-filled))

		rows = append(rows, labelS.Render(b.Label)+" "+bar+dimS.Render(fmt.Sprintf(" %3d %3.0f%%", b.Count, pct)))
	}
	return rows
}

// RenderSparklinePoints renders one block per reading, scaled between
// rangeMin and rangeMax and colored by the reading's status.
func RenderSparklinePoints(points []history.Point, width int, rangeMin, rangeMax float64) string {
	if width <= 0 {
		return ""
	}

	dim := lipgloss.NewStyle().Foreground(colorEmpty)
	if len(points) == 0 {
		return dim.Render(strings.Repeat("╌", width))
	}

	if len(points) > width {
		points = points[len(points)-width:]
	}

	span := rangeMax - rangeMin
	if span <= 0 {
		span = 1
	}

	var sb strings.Builder
	sb.WriteString(dim.Render(strings.Repeat("╌", width-len(points))))

	for _, p := range points {
		norm := (p.Temp - rangeMin) / span
		norm = math.Max(0, math.Min(1, norm))

		idx := int(norm * 7)
		if idx > 7 {
			idx = 7
		}

		style := lipgloss.NewStyle().Foreground(StatusColor(p.Status))
		if p.Status == status.Danger {
			style = style.Bold(true)
		}
		sb.WriteString(style.Render(string(sparkBlocks[idx])))
	}

	return sb.String()
}
