package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/janekbaraniewski/ratelimits/internal/core"
	"github.com/janekbaraniewski/ratelimits/internal/pages"
	"github.com/janekbaraniewski/ratelimits/internal/ratelimit"
)

type stubFetcher struct {
	config  *core.UsageSnapshot
	history *core.HistorySnapshot
	err     error
}

func (s *stubFetcher) GetConfig(_ context.Context, _, _ string) (*core.UsageSnapshot, error) {
	return s.config, s.err
}

func (s *stubFetcher) GetHistory(_ context.Context, _ core.PeriodType, _, _ string) (*core.HistorySnapshot, error) {
	return s.history, s.err
}

// drain runs cmd and every command batched inside it, returning the messages.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func deliver(update func(tea.Msg) tea.Cmd, cmd tea.Cmd) {
	for _, msg := range drain(cmd) {
		update(msg)
	}
}

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func sampleUsage() *core.UsageSnapshot {
	reset := testNow.Add(42 * time.Minute)
	return &core.UsageSnapshot{
		CurrentUsage:       core.PeriodCounts{Hourly: 50, Daily: 340, Monthly: 4200},
		CurrentLimits:      core.PeriodLimits{Hourly: core.Int64Ptr(100), Daily: core.Int64Ptr(1000), Monthly: nil},
		Resets:             &core.PeriodResets{Hourly: &reset},
		CurrentEntitlement: "pro",
		Tiers: []core.Tier{
			{Entitlement: "none", DisplayName: "Free", Limits: core.PeriodLimits{Hourly: core.Int64Ptr(10), Daily: core.Int64Ptr(100), Monthly: core.Int64Ptr(1000)}},
			{Entitlement: "pro", DisplayName: "Pro", Limits: core.PeriodLimits{Hourly: core.Int64Ptr(100), Daily: core.Int64Ptr(1000), Monthly: core.Int64Ptr(10000)}},
			{Entitlement: "enterprise", DisplayName: "Enterprise"},
		},
	}
}

func sampleHistory() *core.HistorySnapshot {
	start := time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)
	var entries []core.HistoryEntry
	for i := range 7 {
		s := start.AddDate(0, 0, i)
		entries = append(entries, core.HistoryEntry{
			PeriodStart:  s,
			PeriodEnd:    s.AddDate(0, 0, 1),
			RequestCount: int64(200 + i*150),
			Limit:        core.Int64Ptr(1000),
		})
	}
	return &core.HistorySnapshot{PeriodType: core.PeriodDay, Entries: entries}
}

func newUsageVM(f *stubFetcher, token string) *pages.UsageViewModel {
	params := pages.DefaultUsageParams()
	params.Token = token
	return pages.NewUsageViewModel(params, pages.DefaultUsageLabels(),
		pages.WithConfigSource(ratelimit.NewStore(f)))
}

func newHistoryVM(f *stubFetcher, token string) *pages.HistoryViewModel {
	params := pages.DefaultHistoryParams()
	params.Token = token
	return pages.NewHistoryViewModel(params, pages.DefaultHistoryLabels(),
		pages.WithHistorySource(ratelimit.NewStore(f)))
}

func newTestDashboard(f *stubFetcher) *pages.DashboardController {
	params := pages.DefaultDashboardParams()
	params.Token = "tok"
	return pages.NewDashboardController(params, pages.DefaultDashboardLabels(),
		pages.WithConfigSource(ratelimit.NewStore(f)),
		pages.WithHistorySource(ratelimit.NewStore(f)),
	)
}
