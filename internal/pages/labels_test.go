package pages

import (
	"testing"

	"github.com/janekbaraniewski/ratelimits/internal/core"
)

func TestUsageLabelsOverlayKeepsDefaults(t *testing.T) {
	got := DefaultUsageLabels().Overlay(UsageLabels{Title: "Quota", UpgradeButton: "Go Pro"})

	if got.Title != "Quota" {
		t.Errorf("Title = %q, want Quota", got.Title)
	}
	if got.UpgradeButton != "Go Pro" {
		t.Errorf("UpgradeButton = %q, want Go Pro", got.UpgradeButton)
	}
	if got.LoadingText != "Loading rate limits..." {
		t.Errorf("LoadingText = %q, want default", got.LoadingText)
	}
	if got.MonthlyLabel != "Monthly" {
		t.Errorf("MonthlyLabel = %q, want default", got.MonthlyLabel)
	}
}

func TestOverlayWithEmptyPartialIsIdentity(t *testing.T) {
	base := DefaultDashboardLabels()
	if got := base.Overlay(DashboardLabels{}); got != base {
		t.Errorf("Overlay(empty) changed labels: %+v", got)
	}
}

func TestDashboardLabelsOverlayAndSplit(t *testing.T) {
	labels := DefaultDashboardLabels().Overlay(DashboardLabels{
		UsageHistoryTab: "Trends",
		LimitsPage:      UsageLabels{RetryText: "Try again"},
		HistoryPage:     HistoryLabels{NoDataLabel: "Nothing here"},
	})

	if labels.UsageHistoryTab != "Trends" {
		t.Errorf("UsageHistoryTab = %q, want Trends", labels.UsageHistoryTab)
	}
	if labels.CurrentLimitsTab != "Current Limits" {
		t.Errorf("CurrentLimitsTab = %q, want default", labels.CurrentLimitsTab)
	}

	usage, history := labels.Split()
	if usage.RetryText != "Try again" || usage.Title != "Rate Limits" {
		t.Errorf("usage labels = %+v", usage)
	}
	if history.NoDataLabel != "Nothing here" || history.ChartTitle != "Requests Over Time" {
		t.Errorf("history labels = %+v", history)
	}
}

func TestHistoryLabelsPeriodLabel(t *testing.T) {
	l := DefaultHistoryLabels().Overlay(HistoryLabels{HourlyTab: "1h"})
	tests := []struct {
		period core.PeriodType
		want   string
	}{
		{core.PeriodHour, "1h"},
		{core.PeriodDay, "Daily"},
		{core.PeriodMonth, "Monthly"},
	}
	for _, tt := range tests {
		if got := l.PeriodLabel(tt.period); got != tt.want {
			t.Errorf("PeriodLabel(%s) = %q, want %q", tt.period, got, tt.want)
		}
	}
}
