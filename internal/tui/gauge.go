package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Default gauge thresholds, as fractions of the limit remaining.
const (
	DefaultWarnThreshold = 0.30
	DefaultCritThreshold = 0.10
)

// usageColor picks the gauge color for a used percentage. Thresholds are
// remaining fractions, so 0.1 turns the gauge red at 90% used.
func usageColor(usedPercent, warnThresh, critThresh float64) lipgloss.Color {
	switch {
	case usedPercent >= (1-critThresh)*100:
		return colorCrit
	case usedPercent >= (1-warnThresh)*100:
		return colorWarn
	default:
		return colorOK
	}
}

// RenderUsageGauge draws a bar that fills left to right as usage grows. A
// negative percent means the period is unlimited and draws an empty track.
func RenderUsageGauge(usedPercent float64, width int, warnThresh, critThresh float64, unlimitedLabel string) string {
	if width < 5 {
		width = 5
	}
	if usedPercent < 0 {
		return gaugeTrackStyle.Render(strings.Repeat("─", width)) + " " + dimStyle.Render(unlimitedLabel)
	}
	if usedPercent > 100 {
		usedPercent = 100
	}

	filled := int(usedPercent / 100 * float64(width))
	if filled == 0 && usedPercent > 0 {
		filled = 1
	}
	color := usageColor(usedPercent, warnThresh, critThresh)

	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("━", filled)) +
		lipgloss.NewStyle().Foreground(colorSurface1).Render(strings.Repeat("━", width-filled))
	pct := lipgloss.NewStyle().Foreground(color).Bold(true).Render(fmt.Sprintf("%5.1f%%", usedPercent))
	return bar + " " + pct
}
