package core

import "testing"

func TestParsePeriodType(t *testing.T) {
	tests := []struct {
		in      string
		want    PeriodType
		wantErr bool
	}{
		{"hour", PeriodHour, false},
		{"day", PeriodDay, false},
		{"month", PeriodMonth, false},
		{"", "", true},
		{"week", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePeriodType(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePeriodType(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParsePeriodType(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPeriodTypeNext(t *testing.T) {
	tests := []struct {
		from PeriodType
		step int
		want PeriodType
	}{
		{PeriodHour, 1, PeriodDay},
		{PeriodDay, 1, PeriodMonth},
		{PeriodMonth, 1, PeriodHour},
		{PeriodHour, -1, PeriodMonth},
		{PeriodDay, -1, PeriodHour},
		{PeriodDay, 3, PeriodDay},
	}
	for _, tt := range tests {
		if got := tt.from.Next(tt.step); got != tt.want {
			t.Errorf("%q.Next(%d) = %q, want %q", tt.from, tt.step, got, tt.want)
		}
	}
}

func TestParseTab(t *testing.T) {
	if got, err := ParseTab("history"); err != nil || got != TabHistory {
		t.Fatalf("ParseTab(history) = %q, %v", got, err)
	}
	if _, err := ParseTab("settings"); err == nil {
		t.Fatal("ParseTab(settings) should fail")
	}
}
