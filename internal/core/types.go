package core

import "time"

// PeriodCounts holds request counts for the three fixed quota periods.
type PeriodCounts struct {
	Hourly  int64 `json:"hourly"`
	Daily   int64 `json:"daily"`
	Monthly int64 `json:"monthly"`
}

// PeriodLimits holds per-period limits. A nil limit means unlimited.
type PeriodLimits struct {
	Hourly  *int64 `json:"hourly"`
	Daily   *int64 `json:"daily"`
	Monthly *int64 `json:"monthly"`
}

// PeriodResets holds optional reset timestamps per period.
type PeriodResets struct {
	Hourly  *time.Time `json:"hourly,omitempty"`
	Daily   *time.Time `json:"daily,omitempty"`
	Monthly *time.Time `json:"monthly,omitempty"`
}

type Tier struct {
	Entitlement string       `json:"entitlement"`
	DisplayName string       `json:"displayName"`
	Limits      PeriodLimits `json:"limits"`
}

// UsageSnapshot is the rate-limit configuration returned for an entity:
// current usage, the limits that apply to it and the full tier catalogue.
type UsageSnapshot struct {
	CurrentUsage       PeriodCounts  `json:"currentUsage"`
	CurrentLimits      PeriodLimits  `json:"currentLimits"`
	Resets             *PeriodResets `json:"resets,omitempty"`
	CurrentEntitlement string        `json:"currentEntitlement"`
	Tiers              []Tier        `json:"tiers"`
}

type HistoryEntry struct {
	PeriodStart  time.Time `json:"periodStart"`
	PeriodEnd    time.Time `json:"periodEnd"`
	RequestCount int64     `json:"requestCount"`
	Limit        *int64    `json:"limit,omitempty"`
}

// HistorySnapshot is an ordered list of usage buckets for one period type.
// Entries is nil when the payload carried no entries field at all.
type HistorySnapshot struct {
	PeriodType PeriodType     `json:"periodType"`
	Entries    []HistoryEntry `json:"entries"`
}

func Int64Ptr(v int64) *int64 { return &v }

func TimePtr(t time.Time) *time.Time { return &t }
