package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/janekbaraniewski/ratelimits/internal/pages"
)

// RenderLimitsPage draws the current limits page for the view-model's
// render state. The empty state renders nothing.
func RenderLimitsPage(vm *pages.UsageViewModel, opts PageOptions) string {
	labels := vm.Labels()
	rs := vm.RenderState()

	switch rs.State {
	case pages.RenderEmpty:
		return ""
	case pages.RenderLoading:
		return renderSection(renderLoading(labels.LoadingText, opts), opts)
	case pages.RenderErrorNoData:
		return renderSection(renderErrorPanel(labels.ErrorText, vm.Err(), labels.RetryText, opts), opts)
	}

	w := opts.contentWidth()
	blocks := []string{renderPageTitle(labels.Title, rs.Refreshing, opts)}
	if rs.Banner {
		blocks = append(blocks, renderBanner(labels.ErrorText, vm.Err(), w))
	}

	tierName, hasTier := vm.CurrentTierName()
	blocks = append(blocks,
		renderUsageSection(vm.UsageBars(), labels, tierName, hasTier, w, opts),
		renderTierTable(vm.TierRows(), labels, w),
	)
	if vm.HasUpgrade() {
		blocks = append(blocks, upgradeStyle.Render(labels.UpgradeButton)+" "+helpStyle.Render("u"))
	}
	return renderSection(strings.Join(blocks, "\n\n"), opts)
}

func renderUsageSection(bars []pages.UsageBar, labels pages.UsageLabels, tierName string, hasTier bool, w int, opts PageOptions) string {
	header := sectionHeaderStyle.Render(labels.UsageTitle)
	if hasTier {
		header += "  " + currentBadgeStyle.Render(tierName)
	}

	warn, crit := opts.thresholds()
	labelW := 0
	for _, b := range bars {
		labelW = max(labelW, lipgloss.Width(b.Label))
	}
	labelW += 2
	gaugeW := clamp(w-labelW-8, 10, 48)

	lines := []string{header, ""}
	for _, b := range bars {
		gauge := RenderUsageGauge(b.Percent(), gaugeW, warn, crit, labels.UnlimitedLabel)
		lines = append(lines, labelStyle.Render(padCell(b.Label, labelW))+gauge)

		details := []string{
			labels.UsedLabel + " " + valueStyle.Render(formatCount(b.Used)),
			labels.LimitLabel + " " + valueStyle.Render(formatLimit(b.Limit, labels.UnlimitedLabel)),
		}
		if rem := b.Remaining(); rem != nil {
			details = append(details, labels.RemainingLabel+" "+valueStyle.Render(formatCount(*rem)))
		}
		if b.ResetsAt != nil {
			details = append(details, "resets "+formatResetIn(*b.ResetsAt, opts.now()))
		}
		lines = append(lines, strings.Repeat(" ", labelW)+dimStyle.Render(strings.Join(details, " · ")))
	}
	return strings.Join(lines, "\n")
}

func renderTierTable(rows []pages.TierRow, labels pages.UsageLabels, w int) string {
	if len(rows) == 0 {
		return ""
	}

	colW := clamp((w-4)/4, 8, 18)
	nameW := max(w-3*colW-4, 10)

	header := tableHeaderStyle.Render(
		padCell("", nameW) + " " +
			padCell(labels.HourlyLabel, colW) + " " +
			padCell(labels.DailyLabel, colW) + " " +
			padCell(labels.MonthlyLabel, colW),
	)
	lines := []string{
		sectionHeaderStyle.Render(labels.TiersTitle),
		"",
		header,
		dimStyle.Render(strings.Repeat("─", min(nameW+3*colW+3, w))),
	}

	for _, r := range rows {
		name := r.Name
		if r.IsCurrent {
			name = fmt.Sprintf("%s (%s)", r.Name, labels.CurrentTierBadge)
		}
		line := padCell(name, nameW) + " " +
			padCell(formatLimit(r.HourlyLimit, labels.UnlimitedLabel), colW) + " " +
			padCell(formatLimit(r.DailyLimit, labels.UnlimitedLabel), colW) + " " +
			padCell(formatLimit(r.MonthlyLimit, labels.UnlimitedLabel), colW)
		if r.IsCurrent {
			line = tableCurrentStyle.Render(line)
		} else {
			line = valueStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
