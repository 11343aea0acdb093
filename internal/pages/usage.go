package pages

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/janekbaraniewski/ratelimits/internal/core"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// UsageBar is one period row of the current-usage display.
type UsageBar struct {
	Period   string
	Label    string
	Used     int64
	Limit    *int64 // nil = unlimited
	ResetsAt *time.Time
}

// Remaining returns the requests left in the period, or nil when unlimited.
func (b UsageBar) Remaining() *int64 {
	if b.Limit == nil {
		return nil
	}
	return core.Int64Ptr(max(*b.Limit-b.Used, 0))
}

// Percent returns used/limit in percent, or -1 when unlimited.
func (b UsageBar) Percent() float64 {
	if b.Limit == nil {
		return -1
	}
	if *b.Limit <= 0 {
		return 100
	}
	return float64(b.Used) / float64(*b.Limit) * 100
}

// TierRow is one row of the tier comparison table.
type TierRow struct {
	ID           string
	Name         string
	HourlyLimit  *int64
	DailyLimit   *int64
	MonthlyLimit *int64
	IsCurrent    bool
}

// DeriveUsageBars maps a snapshot to the hourly, daily and monthly bars, in
// that order. A nil snapshot yields no bars.
func DeriveUsageBars(snap *core.UsageSnapshot, labels UsageLabels) []UsageBar {
	if snap == nil {
		return nil
	}
	var resets core.PeriodResets
	if snap.Resets != nil {
		resets = *snap.Resets
	}
	return []UsageBar{
		{Period: "hourly", Label: labels.HourlyLabel, Used: snap.CurrentUsage.Hourly, Limit: snap.CurrentLimits.Hourly, ResetsAt: resets.Hourly},
		{Period: "daily", Label: labels.DailyLabel, Used: snap.CurrentUsage.Daily, Limit: snap.CurrentLimits.Daily, ResetsAt: resets.Daily},
		{Period: "monthly", Label: labels.MonthlyLabel, Used: snap.CurrentUsage.Monthly, Limit: snap.CurrentLimits.Monthly, ResetsAt: resets.Monthly},
	}
}

// DeriveTierRows maps the snapshot's tiers in order, flagging the current one.
func DeriveTierRows(snap *core.UsageSnapshot) []TierRow {
	if snap == nil {
		return nil
	}
	return lo.Map(snap.Tiers, func(t core.Tier, _ int) TierRow {
		return TierRow{
			ID:           t.Entitlement,
			Name:         t.DisplayName,
			HourlyLimit:  t.Limits.Hourly,
			DailyLimit:   t.Limits.Daily,
			MonthlyLimit: t.Limits.Monthly,
			IsCurrent:    t.Entitlement == snap.CurrentEntitlement,
		}
	})
}

// DeriveCurrentTierName returns the display name of the caller's tier. ok is
// false when there is no snapshot or no tier matches.
func DeriveCurrentTierName(snap *core.UsageSnapshot) (name string, ok bool) {
	if snap == nil {
		return "", false
	}
	tier, found := lo.Find(snap.Tiers, func(t core.Tier) bool {
		return t.Entitlement == snap.CurrentEntitlement
	})
	if !found {
		return "", false
	}
	return tier.DisplayName, true
}

// UsageParams configure the limits page.
type UsageParams struct {
	Connection
	// Token is the caller's auth token; empty means signed out.
	Token string
	// EntitySlug selects the entity; empty is the caller's personal entity.
	EntitySlug      string
	AutoFetch       bool
	RefreshInterval time.Duration
	// OnUpgrade, when set, enables the upgrade action.
	OnUpgrade func() tea.Cmd
}

func DefaultUsageParams() UsageParams {
	return UsageParams{AutoFetch: true}
}

// UsageViewModel drives the limits page.
type UsageViewModel struct {
	id      string
	source  ConfigSource
	params  UsageParams
	labels  UsageLabels
	timer   refreshTimer
	mounted bool
	logger  zerolog.Logger
}

func NewUsageViewModel(params UsageParams, labels UsageLabels, opts ...Option) *UsageViewModel {
	o := buildOptions(opts)
	src := o.configSource
	if src == nil {
		src = newStore(params.Connection, o)
	}
	id := uuid.NewString()
	return &UsageViewModel{
		id:     id,
		source: src,
		params: params,
		labels: labels,
		timer:  refreshTimer{owner: id},
		logger: o.logger.With().Str("page", "limits").Logger(),
	}
}

// Mount performs the initial fetch and starts the refresh timer.
func (vm *UsageViewModel) Mount() tea.Cmd {
	vm.mounted = true
	return tea.Batch(vm.autoFetch(), vm.restartTimer())
}

// Unmount stops the timer and drops fetched state. Responses still in
// flight are ignored when they arrive.
func (vm *UsageViewModel) Unmount() {
	vm.mounted = false
	vm.timer.stop()
	vm.source.Reset()
}

func (vm *UsageViewModel) Mounted() bool { return vm.mounted }

// SetParams applies new parameters, refetching when the identity changed and
// restarting the timer when its inputs changed.
func (vm *UsageViewModel) SetParams(p UsageParams) tea.Cmd {
	old := vm.params
	vm.params = p
	if !vm.mounted {
		return nil
	}

	var cmds []tea.Cmd
	if old.AutoFetch != p.AutoFetch || old.Token != p.Token || old.EntitySlug != p.EntitySlug {
		cmds = append(cmds, vm.autoFetch())
	}
	if old.RefreshInterval != p.RefreshInterval || old.Token != p.Token || old.EntitySlug != p.EntitySlug {
		cmds = append(cmds, vm.restartTimer())
	}
	return tea.Batch(cmds...)
}

func (vm *UsageViewModel) Params() UsageParams { return vm.params }

func (vm *UsageViewModel) SetLabels(l UsageLabels) { vm.labels = l }

func (vm *UsageViewModel) Labels() UsageLabels { return vm.labels }

// Update folds fetch results and timer ticks into the page.
func (vm *UsageViewModel) Update(msg tea.Msg) tea.Cmd {
	if vm.source.Apply(msg) {
		return nil
	}
	if vm.timer.fired(msg) {
		vm.logger.Debug().Msg("periodic refresh")
		return tea.Batch(vm.fetch(), vm.timer.schedule())
	}
	return nil
}

// Retry clears the pending error and refetches with the current parameters.
func (vm *UsageViewModel) Retry() tea.Cmd {
	vm.source.ClearError()
	return vm.fetch()
}

// Refresh refetches without touching the error state.
func (vm *UsageViewModel) Refresh() tea.Cmd {
	return vm.fetch()
}

func (vm *UsageViewModel) HasUpgrade() bool { return vm.params.OnUpgrade != nil }

func (vm *UsageViewModel) Upgrade() tea.Cmd {
	if vm.params.OnUpgrade == nil {
		return nil
	}
	return vm.params.OnUpgrade()
}

func (vm *UsageViewModel) RenderState() RenderResult {
	return ResolveRenderState(vm.source.Config() != nil, vm.source.IsLoadingConfig(), vm.source.Err())
}

func (vm *UsageViewModel) Err() string { return vm.source.Err() }

func (vm *UsageViewModel) UsageBars() []UsageBar {
	return DeriveUsageBars(vm.source.Config(), vm.labels)
}

func (vm *UsageViewModel) TierRows() []TierRow {
	return DeriveTierRows(vm.source.Config())
}

func (vm *UsageViewModel) CurrentTierName() (string, bool) {
	return DeriveCurrentTierName(vm.source.Config())
}

// TimerRunning reports whether periodic refresh is active.
func (vm *UsageViewModel) TimerRunning() bool { return vm.timer.running() }

func (vm *UsageViewModel) autoFetch() tea.Cmd {
	if !vm.params.AutoFetch {
		return nil
	}
	return vm.fetch()
}

func (vm *UsageViewModel) fetch() tea.Cmd {
	if vm.params.Token == "" {
		return nil
	}
	return vm.source.RefreshConfig(vm.params.Token, vm.params.EntitySlug)
}

func (vm *UsageViewModel) restartTimer() tea.Cmd {
	if vm.params.Token == "" {
		vm.timer.stop()
		return nil
	}
	return vm.timer.start(vm.params.RefreshInterval)
}
