package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/janekbaraniewski/ratelimits/internal/config"
	"github.com/janekbaraniewski/ratelimits/internal/core"
	"github.com/janekbaraniewski/ratelimits/internal/ratelimit"
	"github.com/spf13/cobra"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"RATELIMITS_TOKEN", "RATELIMITS_ENTITY_SLUG", "RATELIMITS_BASE_URL", "RATELIMITS_DEBUG", "RATELIMITS_LOG_FILE"} {
		t.Setenv(key, "")
	}
}

func openSession(t *testing.T, settings string, args ...string) (*session, error) {
	t.Helper()
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	if settings != "" {
		if err := os.WriteFile(path, []byte(settings), 0o644); err != nil {
			t.Fatalf("writing settings: %v", err)
		}
	}

	opts := &cliOptions{}
	cmd := &cobra.Command{Use: "ratelimits-test"}
	opts.register(cmd)
	base := []string{"--config", path, "--env-file", filepath.Join(dir, "missing.env")}
	if err := cmd.ParseFlags(append(base, args...)); err != nil {
		t.Fatalf("parsing flags: %v", err)
	}

	s, err := opts.open(cmd)
	if s != nil {
		t.Cleanup(s.close)
	}
	return s, err
}

func TestOpen_FlagsOverrideSettings(t *testing.T) {
	s, err := openSession(t, `{"token": "file-tok", "entity_slug": "acme", "refresh_interval": "45s"}`,
		"--token", "cli-tok", "--tab", "history", "--period", "month")
	if err != nil {
		t.Fatalf("open() error: %v", err)
	}
	if s.cfg.Token != "cli-tok" {
		t.Errorf("token = %q, want cli-tok", s.cfg.Token)
	}
	if s.cfg.EntitySlug != "acme" {
		t.Errorf("entity = %q, want acme from settings", s.cfg.EntitySlug)
	}
	if s.tab != core.TabHistory || s.period != core.PeriodMonth {
		t.Errorf("tab/period = %s/%s", s.tab, s.period)
	}

	p := s.dashboardParams()
	if p.Token != "cli-tok" || p.EntitySlug != "acme" || p.InitialTab != core.TabHistory || p.InitialPeriod != core.PeriodMonth {
		t.Errorf("dashboard params = %+v", p)
	}
	if p.RefreshInterval.String() != "45s" {
		t.Errorf("refresh interval = %s, want 45s", p.RefreshInterval)
	}
	if p.OnUpgrade != nil {
		t.Error("upgrade should be disabled without an upgrade_url")
	}
}

func TestOpen_RejectsBadFlags(t *testing.T) {
	if _, err := openSession(t, "", "--tab", "settings"); err == nil {
		t.Error("expected error for unknown tab")
	}
	if _, err := openSession(t, "", "--period", "week"); err == nil {
		t.Error("expected error for unknown period")
	}
}

func TestOpen_InvalidSettings(t *testing.T) {
	_, err := openSession(t, `{"entity_slug": "Not Valid"}`)
	if err == nil || !strings.Contains(err.Error(), "config path") {
		t.Fatalf("err = %v, want invalid configuration with config path", err)
	}
}

func TestApplyFlags_SurvivesReload(t *testing.T) {
	s, err := openSession(t, `{"token": "file-tok"}`, "--token", "cli-tok")
	if err != nil {
		t.Fatalf("open() error: %v", err)
	}

	reloaded := config.DefaultConfig()
	reloaded.Token = "edited-tok"
	reloaded.EntitySlug = "other"
	reloaded.Theme = "Nord"

	msg := reloadedMsg(s.applyFlags(reloaded))
	if msg.Token != "cli-tok" {
		t.Errorf("token = %q, flag must win over reloaded settings", msg.Token)
	}
	if msg.EntitySlug != "other" || msg.Theme != "Nord" {
		t.Errorf("reloaded msg = %+v", msg)
	}
	if msg.Labels.CurrentLimitsTab == "" {
		t.Error("labels missing from reload")
	}
}

func TestDemoSession(t *testing.T) {
	s, err := openSession(t, "", "--demo", "--test-mode")
	if err != nil {
		t.Fatalf("open() error: %v", err)
	}
	if s.cfg.Token != demoToken {
		t.Errorf("demo token = %q", s.cfg.Token)
	}
	if _, ok := s.network.(*ratelimit.DemoTransport); !ok {
		t.Errorf("network = %T, want demo transport", s.network)
	}
	banner := s.banner()
	if !strings.Contains(banner, "demo") || !strings.Contains(banner, "test mode") {
		t.Errorf("banner = %q", banner)
	}
}

func TestBanner_SignedOut(t *testing.T) {
	s, err := openSession(t, "")
	if err != nil {
		t.Fatalf("open() error: %v", err)
	}
	if got := s.banner(); got != "signed out" {
		t.Errorf("banner = %q, want signed out", got)
	}
}

func TestRenderStatus_Demo(t *testing.T) {
	s, err := openSession(t, "", "--demo", "--period", "hour")
	if err != nil {
		t.Fatalf("open() error: %v", err)
	}
	s.network.(*ratelimit.DemoTransport).Latency = 0

	out, err := renderStatus(s, 100)
	if err != nil {
		t.Fatalf("renderStatus() error: %v", err)
	}
	for _, want := range []string{"Rate Limits", "Current Usage", "Usage History", "Requests Over Time"} {
		if !strings.Contains(out, want) {
			t.Errorf("status output missing %q", want)
		}
	}
}

func TestRenderStatus_NoToken(t *testing.T) {
	s, err := openSession(t, "")
	if err != nil {
		t.Fatalf("open() error: %v", err)
	}
	_, err = renderStatus(s, 100)
	if !errors.Is(err, ratelimit.ErrNoToken) {
		t.Fatalf("err = %v, want ErrNoToken", err)
	}
}

func TestBrowserCommand(t *testing.T) {
	name, args := browserCommand("https://example.com/upgrade")
	if name == "" || len(args) == 0 || args[len(args)-1] != "https://example.com/upgrade" {
		t.Errorf("browserCommand = %s %v", name, args)
	}
}
