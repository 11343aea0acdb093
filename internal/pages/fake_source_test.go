package pages

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/janekbaraniewski/ratelimits/internal/core"
)

// changedMsg tells a fakeSource-backed page that the source state changed.
type changedMsg struct{}

type fakeFetchMsg struct{}

// fakeSource records every call so tests can assert call order.
type fakeSource struct {
	calls []string

	config         *core.UsageSnapshot
	history        *core.HistorySnapshot
	loadingConfig  bool
	loadingHistory bool
	err            string
}

func (f *fakeSource) Config() *core.UsageSnapshot    { return f.config }
func (f *fakeSource) History() *core.HistorySnapshot { return f.history }
func (f *fakeSource) IsLoadingConfig() bool         { return f.loadingConfig }
func (f *fakeSource) IsLoadingHistory() bool        { return f.loadingHistory }
func (f *fakeSource) Err() string                   { return f.err }

func (f *fakeSource) RefreshConfig(token, entitySlug string) tea.Cmd {
	f.calls = append(f.calls, fmt.Sprintf("refreshConfig(%s,%s)", token, entitySlug))
	f.loadingConfig = true
	return func() tea.Msg { return fakeFetchMsg{} }
}

func (f *fakeSource) RefreshHistory(period core.PeriodType, token, entitySlug string) tea.Cmd {
	f.calls = append(f.calls, fmt.Sprintf("refreshHistory(%s,%s,%s)", period, token, entitySlug))
	f.loadingHistory = true
	return func() tea.Msg { return fakeFetchMsg{} }
}

func (f *fakeSource) ClearError() {
	f.calls = append(f.calls, "clearError")
	f.err = ""
}

func (f *fakeSource) Apply(msg tea.Msg) bool {
	_, ok := msg.(changedMsg)
	return ok
}

func (f *fakeSource) Reset() {
	f.calls = append(f.calls, "reset")
	f.config = nil
	f.history = nil
	f.loadingConfig = false
	f.loadingHistory = false
	f.err = ""
}

func (f *fakeSource) resetCalls() { f.calls = nil }

func (f *fakeSource) count(prefix string) int {
	n := 0
	for _, c := range f.calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

func equalCalls(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func sampleUsage() *core.UsageSnapshot {
	hourReset := mustTime("2026-03-01T13:00:00Z")
	return &core.UsageSnapshot{
		CurrentUsage:       core.PeriodCounts{Hourly: 12, Daily: 340, Monthly: 4200},
		CurrentLimits:      core.PeriodLimits{Hourly: core.Int64Ptr(100), Daily: core.Int64Ptr(1000), Monthly: nil},
		Resets:             &core.PeriodResets{Hourly: &hourReset},
		CurrentEntitlement: "pro",
		Tiers: []core.Tier{
			{Entitlement: "none", DisplayName: "Free", Limits: core.PeriodLimits{Hourly: core.Int64Ptr(10), Daily: core.Int64Ptr(100), Monthly: core.Int64Ptr(1000)}},
			{Entitlement: "pro", DisplayName: "Pro", Limits: core.PeriodLimits{Hourly: core.Int64Ptr(100), Daily: core.Int64Ptr(1000), Monthly: core.Int64Ptr(10000)}},
			{Entitlement: "enterprise", DisplayName: "Enterprise"},
		},
	}
}

func sampleHistory(counts ...int64) *core.HistorySnapshot {
	start := mustTime("2026-03-01T00:00:00Z")
	entries := make([]core.HistoryEntry, 0, len(counts))
	for i, c := range counts {
		s := start.AddDate(0, 0, i)
		entries = append(entries, core.HistoryEntry{
			PeriodStart:  s,
			PeriodEnd:    s.AddDate(0, 0, 1),
			RequestCount: c,
			Limit:        core.Int64Ptr(1000),
		})
	}
	return &core.HistorySnapshot{PeriodType: core.PeriodDay, Entries: entries}
}

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}
