package parsers

import (
	"net/http"
	"testing"
	"time"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestParseInt(t *testing.T) {
	tests := []struct {
		input string
		want  *int64
	}{
		{"100", ptr(100)},
		{" 42 ", ptr(42)},
		{"", nil},
		{"abc", nil},
		{"3.5", nil},
	}
	for _, tt := range tests {
		got := ParseInt(tt.input)
		switch {
		case tt.want == nil && got != nil:
			t.Errorf("ParseInt(%q) = %d, want nil", tt.input, *got)
		case tt.want != nil && (got == nil || *got != *tt.want):
			t.Errorf("ParseInt(%q) = %v, want %d", tt.input, got, *tt.want)
		}
	}
}

func ptr(v int64) *int64 { return &v }

func TestParseResetTime(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"1700000000", time.Unix(1700000000, 0)},
		{"30", now.Add(30 * time.Second)},
		{"2026-03-01T13:00:00Z", now.Add(time.Hour)},
		{"Sun, 01 Mar 2026 12:05:00 GMT", now.Add(5 * time.Minute)},
		{"90s", now.Add(90 * time.Second)},
	}
	for _, tt := range tests {
		got := ParseResetTime(tt.input, now)
		if got == nil {
			t.Errorf("ParseResetTime(%q) = nil", tt.input)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseResetTime(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}

	if got := ParseResetTime("", now); got != nil {
		t.Errorf("empty input = %v, want nil", got)
	}
	if got := ParseResetTime("soon", now); got != nil {
		t.Errorf("garbage input = %v, want nil", got)
	}
}

func TestParseThrottle(t *testing.T) {
	h := http.Header{}
	if got := ParseThrottle(h, now); got != nil {
		t.Fatalf("no headers = %+v, want nil", got)
	}

	h.Set("X-RateLimit-Limit", "100")
	h.Set("X-RateLimit-Remaining", "0")
	h.Set("X-RateLimit-Reset", "120")
	got := ParseThrottle(h, now)
	if got == nil {
		t.Fatal("expected throttle")
	}
	if *got.Limit != 100 || *got.Remaining != 0 {
		t.Errorf("limit/remaining = %d/%d", *got.Limit, *got.Remaining)
	}
	if got.RetryIn(now) != 2*time.Minute {
		t.Errorf("RetryIn = %s, want 2m", got.RetryIn(now))
	}

	h.Set("Retry-After", "15")
	if got := ParseThrottle(h, now); got.RetryIn(now) != 15*time.Second {
		t.Errorf("Retry-After should win, RetryIn = %s", got.RetryIn(now))
	}
}

func TestThrottleRetryInPast(t *testing.T) {
	past := now.Add(-time.Minute)
	if got := (Throttle{ResetAt: &past}).RetryIn(now); got != 0 {
		t.Errorf("RetryIn = %s, want 0", got)
	}
	if got := (Throttle{}).RetryIn(now); got != 0 {
		t.Errorf("RetryIn = %s, want 0", got)
	}
}

func TestRedactHeaders(t *testing.T) {
	h := http.Header{}
	h.Set("Authorization", "Bearer sk-1234567890abcdef")
	h.Set("X-Session", "abc")
	h.Set("X-RateLimit-Remaining", "42")

	redacted := RedactHeaders(h, "X-Session")

	if redacted["Authorization"] != "Bear...cdef" {
		t.Errorf("Authorization = %q", redacted["Authorization"])
	}
	if redacted["X-Session"] != "****" {
		t.Errorf("X-Session = %q", redacted["X-Session"])
	}
	if redacted["X-Ratelimit-Remaining"] != "42" {
		t.Errorf("X-RateLimit-Remaining = %q, want 42", redacted["X-Ratelimit-Remaining"])
	}
}
