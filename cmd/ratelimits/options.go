package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/janekbaraniewski/ratelimits/internal/config"
	"github.com/janekbaraniewski/ratelimits/internal/core"
	"github.com/janekbaraniewski/ratelimits/internal/logging"
	"github.com/janekbaraniewski/ratelimits/internal/pages"
	"github.com/janekbaraniewski/ratelimits/internal/ratelimit"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const demoToken = "demo"

type cliOptions struct {
	configPath      string
	envFile         string
	baseURL         string
	token           string
	entitySlug      string
	tab             string
	period          string
	refreshInterval time.Duration
	testMode        bool
	demo            bool
}

func (o *cliOptions) register(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVar(&o.configPath, "config", config.ConfigPath(), "settings file")
	f.StringVar(&o.envFile, "env-file", ".env", "dotenv file loaded before the environment is read")
	f.StringVar(&o.baseURL, "base-url", "", "rate-limit API base URL")
	f.StringVar(&o.token, "token", "", "auth token (or RATELIMITS_TOKEN)")
	f.StringVar(&o.entitySlug, "entity", "", "entity slug; empty selects your personal entity")
	f.StringVar(&o.tab, "tab", string(core.TabLimits), "initial tab: limits or history")
	f.StringVar(&o.period, "period", string(core.PeriodDay), "initial history period: hour, day or month")
	f.DurationVar(&o.refreshInterval, "refresh-interval", 0, "limits refresh interval, 0 disables polling")
	f.BoolVar(&o.testMode, "test-mode", false, "query test-mode data")
	f.BoolVar(&o.demo, "demo", false, "serve synthetic data without a backend")
}

// session is everything a command needs once flags, the settings file and
// the environment have been merged.
type session struct {
	opts    *cliOptions
	cmd     *cobra.Command
	cfg     config.Config
	loader  *config.Loader
	logger  zerolog.Logger
	tab     core.Tab
	period  core.PeriodType
	network ratelimit.NetworkClient
	closers []io.Closer
}

func (o *cliOptions) open(cmd *cobra.Command) (*session, error) {
	tab, err := core.ParseTab(o.tab)
	if err != nil {
		return nil, err
	}
	period, err := core.ParsePeriodType(o.period)
	if err != nil {
		return nil, err
	}

	if err := config.LoadDotEnv(o.envFile); err != nil {
		return nil, err
	}
	loader := config.NewLoader(o.configPath)
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("%w (config path: %s)", err, loader.Path())
	}

	s := &session{
		opts:   o,
		cmd:    cmd,
		loader: loader,
		tab:    tab,
		period: period,
	}
	s.cfg = s.applyFlags(cfg)

	s.logger, err = s.openLogger()
	if err != nil {
		return nil, err
	}

	if o.demo {
		s.network = ratelimit.NewDemoTransport(time.Now().UnixNano())
	} else {
		s.network = &http.Client{}
	}
	return s, nil
}

// applyFlags lets explicitly set flags win over the settings file and the
// environment.
func (s *session) applyFlags(cfg config.Config) config.Config {
	f := s.cmd.Flags()
	if f.Changed("base-url") {
		cfg.BaseURL = s.opts.baseURL
	}
	if f.Changed("token") {
		cfg.Token = s.opts.token
	}
	if f.Changed("entity") {
		cfg.EntitySlug = s.opts.entitySlug
	}
	if f.Changed("refresh-interval") {
		cfg.RefreshInterval = s.opts.refreshInterval
	}
	if f.Changed("test-mode") {
		cfg.TestMode = s.opts.testMode
	}
	if s.opts.demo && cfg.Token == "" {
		cfg.Token = demoToken
	}
	return cfg
}

// openLogger sends logs to the configured file, or to stderr when
// RATELIMITS_DEBUG is set. Otherwise they would draw over the TUI, so they
// are dropped.
func (s *session) openLogger() (zerolog.Logger, error) {
	switch {
	case s.cfg.Log.File != "":
		f, err := logging.OpenFile(s.cfg.Log.File)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("opening log file: %w", err)
		}
		s.closers = append(s.closers, f)
		return logging.New(s.cfg.Log.Level, s.cfg.Log.Format, f), nil
	case os.Getenv("RATELIMITS_DEBUG") != "":
		return logging.New("debug", s.cfg.Log.Format, os.Stderr), nil
	default:
		return logging.Nop(), nil
	}
}

func (s *session) close() {
	for _, c := range s.closers {
		c.Close()
	}
}

func (s *session) connection() pages.Connection {
	return pages.Connection{
		NetworkClient: s.network,
		BaseURL:       s.cfg.BaseURL,
		TestMode:      s.cfg.TestMode,
	}
}

func (s *session) dashboardParams() pages.DashboardParams {
	p := pages.DefaultDashboardParams()
	p.Connection = s.connection()
	p.Token = s.cfg.Token
	p.EntitySlug = s.cfg.EntitySlug
	p.RefreshInterval = s.cfg.RefreshInterval
	p.InitialTab = s.tab
	p.InitialPeriod = s.period
	if s.cfg.UpgradeURL != "" {
		p.OnUpgrade = openURLCmd(s.cfg.UpgradeURL)
	}
	return p
}

// banner is the right-aligned header text.
func (s *session) banner() string {
	var parts []string
	if s.cfg.EntitySlug != "" {
		parts = append(parts, s.cfg.EntitySlug)
	}
	if s.cfg.TestMode {
		parts = append(parts, "test mode")
	}
	if s.opts.demo {
		parts = append(parts, "demo")
	}
	if s.cfg.Token == "" {
		parts = append(parts, "signed out")
	}
	return strings.Join(parts, " · ")
}
