package tui

import (
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/janekbaraniewski/ratelimits/internal/core"
	"github.com/janekbaraniewski/ratelimits/internal/pages"
	"github.com/samber/lo"
)

// Chart heights are given in pixels for parity with the web widgets; one
// terminal row stands in for chartPixelsPerRow of them.
const (
	chartPixelsPerRow = 25
	minChartRows      = 5
)

// RenderHistoryPage draws the usage history page. Once any history has been
// shown, period switches and refreshes keep the chart on screen.
func RenderHistoryPage(vm *pages.HistoryViewModel, opts PageOptions) string {
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
	blocks = append(blocks,
		renderPeriodTabs(vm.SelectedPeriod(), labels),
		renderHistoryChart(vm.Entries(), vm.SelectedPeriod(), labels, vm.Chart(), w, chartRows(vm.Chart().Height, opts.Height), rs.Refreshing),
	)
	return renderSection(strings.Join(blocks, "\n\n"), opts)
}

func renderPeriodTabs(selected core.PeriodType, labels pages.HistoryLabels) string {
	var tabs, underline []string
	for _, p := range core.ValidPeriodTypes {
		style := tabInactiveStyle
		if p == selected {
			style = tabActiveStyle
		}
		tab := style.Render(labels.PeriodLabel(p))
		tabs = append(tabs, tab)

		mark := strings.Repeat(" ", lipgloss.Width(tab))
		if p == selected {
			mark = tabUnderlineStyle.Render(strings.Repeat("━", lipgloss.Width(tab)))
		}
		underline = append(underline, mark)
	}
	return strings.Join(tabs, " ") + "\n" + strings.Join(underline, " ")
}

// chartRows converts a pixel height to terminal rows, capped by the rows
// the page has available (0 = no cap).
func chartRows(pixelHeight, availRows int) int {
	rows := pixelHeight / chartPixelsPerRow
	if availRows > 0 {
		// title, tabs, legend and frame
		rows = min(rows, availRows-12)
	}
	return max(rows, minChartRows)
}

func renderHistoryChart(entries []pages.ChartEntry, period core.PeriodType, labels pages.HistoryLabels, chart pages.ChartOptions, w, rows int, dimmed bool) string {
	title := chartTitleStyle.Render(labels.ChartTitle)
	if len(entries) == 0 {
		empty := lipgloss.Place(w, rows, lipgloss.Center, lipgloss.Center, dimStyle.Render(labels.NoDataLabel))
		return title + "\n" + empty
	}

	// Keep at least two columns per bar; the newest entries win.
	if maxBars := max(w/2, 1); len(entries) > maxBars {
		entries = entries[len(entries)-maxBars:]
	}

	barColor := resolveColor(chart.BarColor, colorBlue)
	limitColor := resolveColor(chart.LimitLineColor, colorRed)
	if dimmed {
		barColor = colorDim
	}
	barStyle := lipgloss.NewStyle().Foreground(barColor)
	overStyle := lipgloss.NewStyle().Foreground(limitColor)

	data := lo.Map(entries, func(e pages.ChartEntry, _ int) barchart.BarData {
		style := barStyle
		if chart.ShowLimitLine && e.Limit != nil && e.RequestCount > *e.Limit && !dimmed {
			style = overStyle
		}
		return barchart.BarData{
			Label: periodTick(e, period),
			Values: []barchart.BarValue{
				{Name: labels.RequestsLabel, Value: float64(e.RequestCount), Style: style},
			},
		}
	})

	bc := barchart.New(w, rows)
	bc.PushAll(data)
	bc.Draw()

	return title + "\n" + bc.View() + "\n" + renderChartLegend(entries, labels, chart, barColor, limitColor)
}

func periodTick(e pages.ChartEntry, period core.PeriodType) string {
	switch period {
	case core.PeriodHour:
		return e.PeriodStart.Format("15")
	case core.PeriodMonth:
		return e.PeriodStart.Format("Jan")
	default:
		return e.PeriodStart.Format("02")
	}
}

func renderChartLegend(entries []pages.ChartEntry, labels pages.HistoryLabels, chart pages.ChartOptions, barColor, limitColor lipgloss.Color) string {
	total := lo.SumBy(entries, func(e pages.ChartEntry) int64 { return e.RequestCount })
	peak := lo.MaxBy(entries, func(a, b pages.ChartEntry) bool { return a.RequestCount > b.RequestCount })

	parts := []string{
		lipgloss.NewStyle().Foreground(barColor).Render("█") + " " +
			labelStyle.Render(labels.RequestsLabel) + " " +
			valueStyle.Render(formatCount(total)) +
			chartAxisStyle.Render(" (peak "+formatCompact(float64(peak.RequestCount))+")"),
	}

	if chart.ShowLimitLine {
		limits := lo.Uniq(lo.FilterMap(entries, func(e pages.ChartEntry, _ int) (int64, bool) {
			if e.Limit == nil {
				return 0, false
			}
			return *e.Limit, true
		}))
		if len(limits) > 0 {
			text := formatCount(lo.Max(limits))
			if len(limits) > 1 {
				text = formatCount(lo.Min(limits)) + "–" + text
			}
			parts = append(parts,
				lipgloss.NewStyle().Foreground(limitColor).Render("┄┄")+" "+
					labelStyle.Render(labels.LimitLabel)+" "+valueStyle.Render(text))
		}
	}
	return strings.Join(parts, "   ")
}
