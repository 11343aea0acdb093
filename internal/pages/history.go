package pages

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/janekbaraniewski/ratelimits/internal/core"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// ChartEntry is one bar of the usage history chart.
type ChartEntry struct {
	PeriodStart  time.Time
	PeriodEnd    time.Time
	RequestCount int64
	Limit        *int64
}

// DeriveDisplayedEntries returns the entries to chart after observing snap.
// A snapshot carrying an entries list replaces prev wholesale, even when
// the list is empty; anything else keeps prev so an in-flight or failed
// refresh never blanks the chart.
func DeriveDisplayedEntries(snap *core.HistorySnapshot, prev []ChartEntry) []ChartEntry {
	if snap == nil || snap.Entries == nil {
		return prev
	}
	return lo.Map(snap.Entries, func(e core.HistoryEntry, _ int) ChartEntry {
		return ChartEntry{
			PeriodStart:  e.PeriodStart,
			PeriodEnd:    e.PeriodEnd,
			RequestCount: e.RequestCount,
			Limit:        e.Limit,
		}
	})
}

// ChartOptions control how the history chart is drawn.
type ChartOptions struct {
	Height         int
	BarColor       string
	LimitLineColor string
	ShowLimitLine  bool
}

const (
	DefaultChartHeight          = 300
	DefaultDashboardChartHeight = 350
)

// HistoryParams configure the history page.
type HistoryParams struct {
	Connection
	Token         string
	EntitySlug    string
	AutoFetch     bool
	InitialPeriod core.PeriodType
	Chart         ChartOptions
}

func DefaultHistoryParams() HistoryParams {
	return HistoryParams{
		AutoFetch:     true,
		InitialPeriod: core.PeriodDay,
		Chart:         ChartOptions{Height: DefaultChartHeight, ShowLimitLine: true},
	}
}

// HistoryViewModel drives the usage history page. It keeps the last
// received entries on screen while a new period or refresh is loading.
type HistoryViewModel struct {
	source  HistorySource
	params  HistoryParams
	labels  HistoryLabels
	period  core.PeriodType
	mounted bool
	logger  zerolog.Logger

	displayed []ChartEntry
	observed  *core.HistorySnapshot
	hasData   bool
}

func NewHistoryViewModel(params HistoryParams, labels HistoryLabels, opts ...Option) *HistoryViewModel {
	o := buildOptions(opts)
	src := o.historySource
	if src == nil {
		src = newStore(params.Connection, o)
	}
	period := params.InitialPeriod
	if !period.Valid() {
		period = core.PeriodDay
	}
	if params.Chart.Height <= 0 {
		params.Chart.Height = DefaultChartHeight
	}
	return &HistoryViewModel{
		source: src,
		params: params,
		labels: labels,
		period: period,
		logger: o.logger.With().Str("page", "history").Logger(),
	}
}

// Mount fetches history for the selected period.
func (vm *HistoryViewModel) Mount() tea.Cmd {
	vm.mounted = true
	vm.observe()
	return vm.autoFetch()
}

// Unmount drops fetched state and the displayed entries.
func (vm *HistoryViewModel) Unmount() {
	vm.mounted = false
	vm.source.Reset()
	vm.displayed = nil
	vm.observed = nil
	vm.hasData = false
}

func (vm *HistoryViewModel) Mounted() bool { return vm.mounted }

// SetParams applies new parameters and refetches when the identity or
// auto-fetch setting changed.
func (vm *HistoryViewModel) SetParams(p HistoryParams) tea.Cmd {
	old := vm.params
	if p.Chart.Height <= 0 {
		p.Chart.Height = old.Chart.Height
	}
	vm.params = p
	if !vm.mounted {
		return nil
	}
	if old.AutoFetch != p.AutoFetch || old.Token != p.Token || old.EntitySlug != p.EntitySlug {
		return vm.autoFetch()
	}
	return nil
}

func (vm *HistoryViewModel) Params() HistoryParams { return vm.params }

func (vm *HistoryViewModel) SetLabels(l HistoryLabels) { vm.labels = l }

func (vm *HistoryViewModel) Labels() HistoryLabels { return vm.labels }

func (vm *HistoryViewModel) Chart() ChartOptions { return vm.params.Chart }

func (vm *HistoryViewModel) SelectedPeriod() core.PeriodType { return vm.period }

// SelectPeriod switches the chart period and fetches it. Selecting the
// current period does nothing. Displayed entries are kept until the new
// period's data arrives.
func (vm *HistoryViewModel) SelectPeriod(p core.PeriodType) tea.Cmd {
	if !p.Valid() || p == vm.period {
		return nil
	}
	vm.period = p
	vm.logger.Debug().Str("period", string(p)).Msg("period selected")
	if !vm.mounted {
		return nil
	}
	return vm.autoFetch()
}

// CyclePeriod selects the period step positions away.
func (vm *HistoryViewModel) CyclePeriod(step int) tea.Cmd {
	return vm.SelectPeriod(vm.period.Next(step))
}

func (vm *HistoryViewModel) Update(msg tea.Msg) tea.Cmd {
	if vm.source.Apply(msg) {
		vm.observe()
	}
	return nil
}

// Retry clears the pending error and refetches the selected period.
func (vm *HistoryViewModel) Retry() tea.Cmd {
	vm.source.ClearError()
	return vm.fetch()
}

func (vm *HistoryViewModel) Refresh() tea.Cmd {
	return vm.fetch()
}

// RenderState resolves the page branch. Once any history was shown the page
// counts as having data, so only the first load blocks the view.
func (vm *HistoryViewModel) RenderState() RenderResult {
	return ResolveRenderState(vm.hasData, vm.source.IsLoadingHistory(), vm.source.Err())
}

func (vm *HistoryViewModel) Err() string { return vm.source.Err() }

// Entries returns the chart entries currently on display.
func (vm *HistoryViewModel) Entries() []ChartEntry { return vm.displayed }

// observe re-derives the displayed entries when the source's snapshot
// changed since the last observation.
func (vm *HistoryViewModel) observe() {
	snap := vm.source.History()
	if snap == vm.observed {
		return
	}
	vm.observed = snap
	vm.displayed = DeriveDisplayedEntries(snap, vm.displayed)
	if snap != nil {
		vm.hasData = true
	}
}

func (vm *HistoryViewModel) autoFetch() tea.Cmd {
	if !vm.params.AutoFetch {
		return nil
	}
	return vm.fetch()
}

func (vm *HistoryViewModel) fetch() tea.Cmd {
	if vm.params.Token == "" {
		return nil
	}
	return vm.source.RefreshHistory(vm.period, vm.params.Token, vm.params.EntitySlug)
}
