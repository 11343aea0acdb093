package ratelimit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/janekbaraniewski/ratelimits/internal/core"
)

// DemoTransport answers rate-limit API requests in-process with synthetic
// data. It backs the --demo flag and is handy in tests.
type DemoTransport struct {
	Latency time.Duration
	Now     func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

func NewDemoTransport(seed int64) *DemoTransport {
	return &DemoTransport{
		Latency: 350 * time.Millisecond,
		Now:     time.Now,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

var demoTiers = []core.Tier{
	{Entitlement: "none", DisplayName: "Free", Limits: core.PeriodLimits{
		Hourly: core.Int64Ptr(10), Daily: core.Int64Ptr(100), Monthly: core.Int64Ptr(1000),
	}},
	{Entitlement: "pro", DisplayName: "Pro", Limits: core.PeriodLimits{
		Hourly: core.Int64Ptr(100), Daily: core.Int64Ptr(1000), Monthly: core.Int64Ptr(10000),
	}},
	{Entitlement: "enterprise", DisplayName: "Enterprise", Limits: core.PeriodLimits{}},
}

func (d *DemoTransport) Do(req *http.Request) (*http.Response, error) {
	if d.Latency > 0 {
		select {
		case <-req.Context().Done():
			return nil, req.Context().Err()
		case <-time.After(d.Latency):
		}
	}

	if !strings.HasPrefix(req.Header.Get("Authorization"), "Bearer ") {
		return demoResponse(req, http.StatusUnauthorized, map[string]any{"success": false, "error": "missing token"})
	}

	path := req.URL.Path
	switch {
	case strings.HasSuffix(path, "/ratelimits/config"):
		return demoResponse(req, http.StatusOK, map[string]any{"success": true, "data": d.config()})
	case strings.Contains(path, "/ratelimits/history/"):
		period, err := core.ParsePeriodType(path[strings.LastIndex(path, "/")+1:])
		if err != nil {
			return demoResponse(req, http.StatusBadRequest, map[string]any{"success": false, "error": err.Error()})
		}
		return demoResponse(req, http.StatusOK, map[string]any{"success": true, "data": d.history(period)})
	}
	return demoResponse(req, http.StatusNotFound, map[string]any{"success": false, "error": "not found"})
}

func (d *DemoTransport) config() core.UsageSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.Now()
	pro := demoTiers[1]
	used := func(limit int64) int64 {
		return int64(float64(limit) * (0.12 + d.rng.Float64()*0.8))
	}
	return core.UsageSnapshot{
		CurrentUsage: core.PeriodCounts{
			Hourly:  used(*pro.Limits.Hourly),
			Daily:   used(*pro.Limits.Daily),
			Monthly: used(*pro.Limits.Monthly),
		},
		CurrentLimits: pro.Limits,
		Resets: &core.PeriodResets{
			Hourly:  core.TimePtr(now.Truncate(time.Hour).Add(time.Hour)),
			Daily:   core.TimePtr(time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())),
			Monthly: core.TimePtr(time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, now.Location())),
		},
		CurrentEntitlement: pro.Entitlement,
		Tiers:              demoTiers,
	}
}

func (d *DemoTransport) history(period core.PeriodType) core.HistorySnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.Now()
	var (
		count int
		step  func(time.Time, int) time.Time
		limit int64
		start time.Time
	)
	switch period {
	case core.PeriodHour:
		count, limit = 24, 100
		start = now.Truncate(time.Hour)
		step = func(t time.Time, n int) time.Time { return t.Add(time.Duration(n) * time.Hour) }
	case core.PeriodMonth:
		count, limit = 12, 10000
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		step = func(t time.Time, n int) time.Time { return t.AddDate(0, n, 0) }
	default:
		count, limit = 30, 1000
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		step = func(t time.Time, n int) time.Time { return t.AddDate(0, 0, n) }
	}

	entries := make([]core.HistoryEntry, 0, count)
	for i := count - 1; i >= 0; i-- {
		ps := step(start, -i)
		entries = append(entries, core.HistoryEntry{
			PeriodStart:  ps,
			PeriodEnd:    step(ps, 1),
			RequestCount: int64(float64(limit) * d.rng.Float64() * 0.9),
			Limit:        core.Int64Ptr(limit),
		})
	}
	return core.HistorySnapshot{PeriodType: period, Entries: entries}
}

func demoResponse(req *http.Request, status int, payload any) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &http.Response{
		StatusCode: status,
		Status:     fmt.Sprintf("%d %s", status, http.StatusText(status)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader(body)),
		Request:    req,
	}, nil
}
