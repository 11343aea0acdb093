// Package parsers reads throttling metadata from HTTP response headers.
package parsers

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Throttle is what a server told us about its own rate limit.
type Throttle struct {
	Limit     *int64
	Remaining *int64
	ResetAt   *time.Time
}

// RetryIn is the wait until ResetAt, or 0 when unknown or already passed.
func (t Throttle) RetryIn(now time.Time) time.Duration {
	if t.ResetAt == nil || !t.ResetAt.After(now) {
		return 0
	}
	return t.ResetAt.Sub(now).Round(time.Second)
}

func ParseInt(val string) *int64 {
	val = strings.TrimSpace(val)
	if val == "" {
		return nil
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

// ParseResetTime accepts a unix timestamp, an RFC3339 or HTTP date, a Go
// duration, or a number of seconds relative to now.
func ParseResetTime(val string, now time.Time) *time.Time {
	val = strings.TrimSpace(val)
	if val == "" {
		return nil
	}

	if n, err := strconv.ParseInt(val, 10, 64); err == nil {
		var t time.Time
		if n > 1_000_000_000 {
			t = time.Unix(n, 0)
		} else {
			t = now.Add(time.Duration(n) * time.Second)
		}
		return &t
	}
	if t, err := time.Parse(time.RFC3339, val); err == nil {
		return &t
	}
	if t, err := http.ParseTime(val); err == nil {
		return &t
	}
	if d, err := time.ParseDuration(val); err == nil {
		t := now.Add(d)
		return &t
	}
	return nil
}

// ParseThrottle reads Retry-After and the X-RateLimit-* family. It returns
// nil when none of them is present.
func ParseThrottle(h http.Header, now time.Time) *Throttle {
	t := Throttle{
		Limit:     ParseInt(h.Get("X-RateLimit-Limit")),
		Remaining: ParseInt(h.Get("X-RateLimit-Remaining")),
		ResetAt:   ParseResetTime(h.Get("Retry-After"), now),
	}
	if t.ResetAt == nil {
		t.ResetAt = ParseResetTime(h.Get("X-RateLimit-Reset"), now)
	}
	if t.Limit == nil && t.Remaining == nil && t.ResetAt == nil {
		return nil
	}
	return &t
}

// RedactHeaders flattens headers for logging with credentials masked.
func RedactHeaders(headers http.Header, sensitiveKeys ...string) map[string]string {
	sensitive := map[string]bool{
		"authorization": true,
		"x-api-key":     true,
		"cookie":        true,
	}
	for _, k := range sensitiveKeys {
		sensitive[strings.ToLower(k)] = true
	}

	out := make(map[string]string, len(headers))
	for k, vals := range headers {
		val := strings.Join(vals, ", ")
		if sensitive[strings.ToLower(k)] {
			if len(val) > 8 {
				val = val[:4] + "..." + val[len(val)-4:]
			} else {
				val = "****"
			}
		}
		out[k] = val
	}
	return out
}
