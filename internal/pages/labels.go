package pages

import (
	"github.com/janekbaraniewski/ratelimits/internal/core"
	"github.com/samber/lo"
)

// UsageLabels are the user-facing strings of the limits page.
type UsageLabels struct {
	Title            string `mapstructure:"title" json:"title,omitempty"`
	LoadingText      string `mapstructure:"loadingText" json:"loadingText,omitempty"`
	ErrorText        string `mapstructure:"errorText" json:"errorText,omitempty"`
	RetryText        string `mapstructure:"retryText" json:"retryText,omitempty"`
	UsageTitle       string `mapstructure:"usageTitle" json:"usageTitle,omitempty"`
	TiersTitle       string `mapstructure:"tiersTitle" json:"tiersTitle,omitempty"`
	UsedLabel        string `mapstructure:"usedLabel" json:"usedLabel,omitempty"`
	LimitLabel       string `mapstructure:"limitLabel" json:"limitLabel,omitempty"`
	UnlimitedLabel   string `mapstructure:"unlimitedLabel" json:"unlimitedLabel,omitempty"`
	RemainingLabel   string `mapstructure:"remainingLabel" json:"remainingLabel,omitempty"`
	HourlyLabel      string `mapstructure:"hourlyLabel" json:"hourlyLabel,omitempty"`
	DailyLabel       string `mapstructure:"dailyLabel" json:"dailyLabel,omitempty"`
	MonthlyLabel     string `mapstructure:"monthlyLabel" json:"monthlyLabel,omitempty"`
	CurrentTierBadge string `mapstructure:"currentTierBadge" json:"currentTierBadge,omitempty"`
	UpgradeButton    string `mapstructure:"upgradeButtonLabel" json:"upgradeButtonLabel,omitempty"`
}

// HistoryLabels are the user-facing strings of the history page.
type HistoryLabels struct {
	Title         string `mapstructure:"title" json:"title,omitempty"`
	LoadingText   string `mapstructure:"loadingText" json:"loadingText,omitempty"`
	ErrorText     string `mapstructure:"errorText" json:"errorText,omitempty"`
	RetryText     string `mapstructure:"retryText" json:"retryText,omitempty"`
	ChartTitle    string `mapstructure:"chartTitle" json:"chartTitle,omitempty"`
	RequestsLabel string `mapstructure:"requestsLabel" json:"requestsLabel,omitempty"`
	LimitLabel    string `mapstructure:"limitLabel" json:"limitLabel,omitempty"`
	NoDataLabel   string `mapstructure:"noDataLabel" json:"noDataLabel,omitempty"`
	HourlyTab     string `mapstructure:"hourlyTab" json:"hourlyTab,omitempty"`
	DailyTab      string `mapstructure:"dailyTab" json:"dailyTab,omitempty"`
	MonthlyTab    string `mapstructure:"monthlyTab" json:"monthlyTab,omitempty"`
}

// DashboardLabels combines the tab labels with both page label sets.
type DashboardLabels struct {
	CurrentLimitsTab string        `mapstructure:"currentLimitsTab" json:"currentLimitsTab,omitempty"`
	UsageHistoryTab  string        `mapstructure:"usageHistoryTab" json:"usageHistoryTab,omitempty"`
	LimitsPage       UsageLabels   `mapstructure:"limitsPage" json:"limitsPage"`
	HistoryPage      HistoryLabels `mapstructure:"historyPage" json:"historyPage"`
}

func DefaultUsageLabels() UsageLabels {
	return UsageLabels{
		Title:            "Rate Limits",
		LoadingText:      "Loading rate limits...",
		ErrorText:        "Failed to load rate limits",
		RetryText:        "Retry",
		UsageTitle:       "Current Usage",
		TiersTitle:       "Tier Comparison",
		UsedLabel:        "Used",
		LimitLabel:       "Limit",
		UnlimitedLabel:   "Unlimited",
		RemainingLabel:   "Remaining",
		HourlyLabel:      "Hourly",
		DailyLabel:       "Daily",
		MonthlyLabel:     "Monthly",
		CurrentTierBadge: "Current",
		UpgradeButton:    "Upgrade",
	}
}

func DefaultHistoryLabels() HistoryLabels {
	return HistoryLabels{
		Title:         "Usage History",
		LoadingText:   "Loading usage history...",
		ErrorText:     "Failed to load usage history",
		RetryText:     "Retry",
		ChartTitle:    "Requests Over Time",
		RequestsLabel: "Requests",
		LimitLabel:    "Limit",
		NoDataLabel:   "No usage data available",
		HourlyTab:     "Hourly",
		DailyTab:      "Daily",
		MonthlyTab:    "Monthly",
	}
}

func DefaultDashboardLabels() DashboardLabels {
	return DashboardLabels{
		CurrentLimitsTab: "Current Limits",
		UsageHistoryTab:  "Usage History",
		LimitsPage:       DefaultUsageLabels(),
		HistoryPage:      DefaultHistoryLabels(),
	}
}

// Overlay returns l with every non-empty field of partial applied on top.
func (l UsageLabels) Overlay(partial UsageLabels) UsageLabels {
	return UsageLabels{
		Title:            lo.CoalesceOrEmpty(partial.Title, l.Title),
		LoadingText:      lo.CoalesceOrEmpty(partial.LoadingText, l.LoadingText),
		ErrorText:        lo.CoalesceOrEmpty(partial.ErrorText, l.ErrorText),
		RetryText:        lo.CoalesceOrEmpty(partial.RetryText, l.RetryText),
		UsageTitle:       lo.CoalesceOrEmpty(partial.UsageTitle, l.UsageTitle),
		TiersTitle:       lo.CoalesceOrEmpty(partial.TiersTitle, l.TiersTitle),
		UsedLabel:        lo.CoalesceOrEmpty(partial.UsedLabel, l.UsedLabel),
		LimitLabel:       lo.CoalesceOrEmpty(partial.LimitLabel, l.LimitLabel),
		UnlimitedLabel:   lo.CoalesceOrEmpty(partial.UnlimitedLabel, l.UnlimitedLabel),
		RemainingLabel:   lo.CoalesceOrEmpty(partial.RemainingLabel, l.RemainingLabel),
		HourlyLabel:      lo.CoalesceOrEmpty(partial.HourlyLabel, l.HourlyLabel),
		DailyLabel:       lo.CoalesceOrEmpty(partial.DailyLabel, l.DailyLabel),
		MonthlyLabel:     lo.CoalesceOrEmpty(partial.MonthlyLabel, l.MonthlyLabel),
		CurrentTierBadge: lo.CoalesceOrEmpty(partial.CurrentTierBadge, l.CurrentTierBadge),
		UpgradeButton:    lo.CoalesceOrEmpty(partial.UpgradeButton, l.UpgradeButton),
	}
}

func (l HistoryLabels) Overlay(partial HistoryLabels) HistoryLabels {
	return HistoryLabels{
		Title:         lo.CoalesceOrEmpty(partial.Title, l.Title),
		LoadingText:   lo.CoalesceOrEmpty(partial.LoadingText, l.LoadingText),
		ErrorText:     lo.CoalesceOrEmpty(partial.ErrorText, l.ErrorText),
		RetryText:     lo.CoalesceOrEmpty(partial.RetryText, l.RetryText),
		ChartTitle:    lo.CoalesceOrEmpty(partial.ChartTitle, l.ChartTitle),
		RequestsLabel: lo.CoalesceOrEmpty(partial.RequestsLabel, l.RequestsLabel),
		LimitLabel:    lo.CoalesceOrEmpty(partial.LimitLabel, l.LimitLabel),
		NoDataLabel:   lo.CoalesceOrEmpty(partial.NoDataLabel, l.NoDataLabel),
		HourlyTab:     lo.CoalesceOrEmpty(partial.HourlyTab, l.HourlyTab),
		DailyTab:      lo.CoalesceOrEmpty(partial.DailyTab, l.DailyTab),
		MonthlyTab:    lo.CoalesceOrEmpty(partial.MonthlyTab, l.MonthlyTab),
	}
}

func (l DashboardLabels) Overlay(partial DashboardLabels) DashboardLabels {
	return DashboardLabels{
		CurrentLimitsTab: lo.CoalesceOrEmpty(partial.CurrentLimitsTab, l.CurrentLimitsTab),
		UsageHistoryTab:  lo.CoalesceOrEmpty(partial.UsageHistoryTab, l.UsageHistoryTab),
		LimitsPage:       l.LimitsPage.Overlay(partial.LimitsPage),
		HistoryPage:      l.HistoryPage.Overlay(partial.HistoryPage),
	}
}

// Split returns the label namespaces of the two child pages.
func (l DashboardLabels) Split() (UsageLabels, HistoryLabels) {
	return l.LimitsPage, l.HistoryPage
}

// PeriodLabel returns the tab label for a history period.
func (l HistoryLabels) PeriodLabel(p core.PeriodType) string {
	switch p {
	case core.PeriodHour:
		return l.HourlyTab
	case core.PeriodMonth:
		return l.MonthlyTab
	default:
		return l.DailyTab
	}
}
