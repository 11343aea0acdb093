package core

import (
	"encoding/json"
	"testing"
)

func TestHistorySnapshotEntriesPresence(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantNil bool
		wantLen int
	}{
		{"missing field", `{"periodType":"day"}`, true, 0},
		{"null field", `{"periodType":"day","entries":null}`, true, 0},
		{"empty list", `{"periodType":"day","entries":[]}`, false, 0},
		{"one entry", `{"periodType":"day","entries":[{"periodStart":"2026-03-01T00:00:00Z","periodEnd":"2026-03-02T00:00:00Z","requestCount":7}]}`, false, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var snap HistorySnapshot
			if err := json.Unmarshal([]byte(tt.payload), &snap); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if (snap.Entries == nil) != tt.wantNil {
				t.Errorf("Entries nil = %v, want %v", snap.Entries == nil, tt.wantNil)
			}
			if len(snap.Entries) != tt.wantLen {
				t.Errorf("len(Entries) = %d, want %d", len(snap.Entries), tt.wantLen)
			}
		})
	}
}

func TestPeriodLimitsNullIsUnlimited(t *testing.T) {
	var limits PeriodLimits
	if err := json.Unmarshal([]byte(`{"hourly":100,"daily":null}`), &limits); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if limits.Hourly == nil || *limits.Hourly != 100 {
		t.Errorf("hourly = %v, want 100", limits.Hourly)
	}
	if limits.Daily != nil || limits.Monthly != nil {
		t.Errorf("daily/monthly = %v/%v, want nil", limits.Daily, limits.Monthly)
	}
}
