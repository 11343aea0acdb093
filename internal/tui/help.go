package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type helpKey struct{ key, desc string }

var helpSections = []struct {
	title string
	keys  []helpKey
}{
	{"Tabs", []helpKey{
		{"Tab / Shift+Tab", "Switch between limits and history"},
		{"1 / 2", "Current limits / usage history"},
	}},
	{"History", []helpKey{
		{"h / d / m", "Hourly, daily or monthly buckets"},
		{"[ ]", "Previous / next period"},
	}},
	{"Actions", []helpKey{
		{"r", "Retry after an error, refresh otherwise"},
		{"u", "Upgrade (when offered)"},
		{"t", "Cycle theme"},
	}},
	{"Global", []helpKey{
		{"?", "Toggle this help"},
		{"q / Ctrl+C", "Quit"},
	}},
}

// renderHelpOverlay draws a centered help popup. Any key dismisses it.
func (m Model) renderHelpOverlay(screenW, screenH int) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(colorLavender)
	descStyle := lipgloss.NewStyle().Foreground(colorText)
	hintStyle := lipgloss.NewStyle().Foreground(colorDim).Italic(true)

	lines := []string{titleStyle.Render("Rate Limits Help"), ""}
	for _, section := range helpSections {
		lines = append(lines, sectionHeaderStyle.Render(section.title))
		for _, k := range section.keys {
			lines = append(lines, "  "+helpKeyStyle.Render(padCell(k.key, 18))+descStyle.Render(k.desc))
		}
		lines = append(lines, "")
	}
	lines = append(lines,
		labelStyle.Render("Gauges fill as a period's quota is used:"),
		"  "+RenderUsageGauge(35, 20, DefaultWarnThreshold, DefaultCritThreshold, "")+"  "+descStyle.Render("healthy"),
		"  "+RenderUsageGauge(78, 20, DefaultWarnThreshold, DefaultCritThreshold, "")+"  "+descStyle.Render("warning"),
		"  "+RenderUsageGauge(95, 20, DefaultWarnThreshold, DefaultCritThreshold, "")+"  "+descStyle.Render("critical"),
		"",
		hintStyle.Render("Press any key to dismiss"),
	)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(1, 2).
		MaxWidth(screenW).
		Render(strings.Join(lines, "\n"))

	return lipgloss.Place(screenW, screenH, lipgloss.Center, lipgloss.Center, box)
}
