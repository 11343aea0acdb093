package pages

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/janekbaraniewski/ratelimits/internal/core"
)

// DashboardParams configure the tabbed dashboard. Connection, Token and
// EntitySlug are forwarded unchanged to both pages.
type DashboardParams struct {
	Connection
	Token           string
	EntitySlug      string
	AutoFetch       bool
	RefreshInterval time.Duration
	InitialTab      core.Tab
	InitialPeriod   core.PeriodType
	Chart           ChartOptions
	OnUpgrade       func() tea.Cmd
}

func DefaultDashboardParams() DashboardParams {
	return DashboardParams{
		AutoFetch:     true,
		InitialTab:    core.TabLimits,
		InitialPeriod: core.PeriodDay,
		Chart:         ChartOptions{Height: DefaultDashboardChartHeight, ShowLimitLine: true},
	}
}

// DashboardController shows the limits and history pages under two tabs.
// Both pages live as long as the controller; switching tabs only changes
// which one is visible.
type DashboardController struct {
	params  DashboardParams
	labels  DashboardLabels
	active  core.Tab
	usage   *UsageViewModel
	history *HistoryViewModel
}

func NewDashboardController(params DashboardParams, labels DashboardLabels, opts ...Option) *DashboardController {
	if params.Chart.Height <= 0 {
		params.Chart.Height = DefaultDashboardChartHeight
	}
	active := params.InitialTab
	if !active.Valid() {
		active = core.TabLimits
	}
	usageLabels, historyLabels := labels.Split()
	return &DashboardController{
		params:  params,
		labels:  labels,
		active:  active,
		usage:   NewUsageViewModel(params.usageParams(), usageLabels, opts...),
		history: NewHistoryViewModel(params.historyParams(), historyLabels, opts...),
	}
}

func (p DashboardParams) usageParams() UsageParams {
	return UsageParams{
		Connection:      p.Connection,
		Token:           p.Token,
		EntitySlug:      p.EntitySlug,
		AutoFetch:       p.AutoFetch,
		RefreshInterval: p.RefreshInterval,
		OnUpgrade:       p.OnUpgrade,
	}
}

func (p DashboardParams) historyParams() HistoryParams {
	return HistoryParams{
		Connection:    p.Connection,
		Token:         p.Token,
		EntitySlug:    p.EntitySlug,
		AutoFetch:     p.AutoFetch,
		InitialPeriod: p.InitialPeriod,
		Chart:         p.Chart,
	}
}

// Mount mounts the page of the initially active tab.
func (d *DashboardController) Mount() tea.Cmd {
	return d.mountActive()
}

func (d *DashboardController) Active() core.Tab { return d.active }

func (d *DashboardController) Usage() *UsageViewModel { return d.usage }

func (d *DashboardController) History() *HistoryViewModel { return d.history }

func (d *DashboardController) Labels() DashboardLabels { return d.labels }

func (d *DashboardController) Params() DashboardParams { return d.params }

// SelectTab makes t the visible tab. A page is mounted the first time its
// tab is shown and keeps its state afterwards.
func (d *DashboardController) SelectTab(t core.Tab) tea.Cmd {
	if !t.Valid() || t == d.active {
		return nil
	}
	d.active = t
	return d.mountActive()
}

// NextTab cycles to the other tab.
func (d *DashboardController) NextTab() tea.Cmd {
	if d.active == core.TabLimits {
		return d.SelectTab(core.TabHistory)
	}
	return d.SelectTab(core.TabLimits)
}

func (d *DashboardController) mountActive() tea.Cmd {
	switch d.active {
	case core.TabHistory:
		if !d.history.Mounted() {
			return d.history.Mount()
		}
	default:
		if !d.usage.Mounted() {
			return d.usage.Mount()
		}
	}
	return nil
}

// SetCredentials forwards a new token and entity to both pages.
func (d *DashboardController) SetCredentials(token, entitySlug string) tea.Cmd {
	d.params.Token = token
	d.params.EntitySlug = entitySlug

	up := d.usage.Params()
	up.Token, up.EntitySlug = token, entitySlug
	hp := d.history.Params()
	hp.Token, hp.EntitySlug = token, entitySlug
	return tea.Batch(d.usage.SetParams(up), d.history.SetParams(hp))
}

func (d *DashboardController) SetToken(token string) tea.Cmd {
	return d.SetCredentials(token, d.params.EntitySlug)
}

func (d *DashboardController) SetEntitySlug(slug string) tea.Cmd {
	return d.SetCredentials(d.params.Token, slug)
}

// SetLabels replaces the combined label set and hands each page its part.
func (d *DashboardController) SetLabels(l DashboardLabels) {
	d.labels = l
	usageLabels, historyLabels := l.Split()
	d.usage.SetLabels(usageLabels)
	d.history.SetLabels(historyLabels)
}

// Update routes fetch results and timer ticks to both pages, visible or
// not.
func (d *DashboardController) Update(msg tea.Msg) tea.Cmd {
	return tea.Batch(d.usage.Update(msg), d.history.Update(msg))
}

// Retry retries the visible page.
func (d *DashboardController) Retry() tea.Cmd {
	if d.active == core.TabHistory {
		return d.history.Retry()
	}
	return d.usage.Retry()
}

// Refresh refetches the visible page.
func (d *DashboardController) Refresh() tea.Cmd {
	if d.active == core.TabHistory {
		return d.history.Refresh()
	}
	return d.usage.Refresh()
}

// Unmount tears down both pages.
func (d *DashboardController) Unmount() {
	d.usage.Unmount()
	d.history.Unmount()
}
