package pages

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/janekbaraniewski/ratelimits/internal/core"
	"github.com/janekbaraniewski/ratelimits/internal/ratelimit"
	"github.com/rs/zerolog"
)

// ConfigSource is the slice of the fetch client the limits page consumes.
type ConfigSource interface {
	Config() *core.UsageSnapshot
	IsLoadingConfig() bool
	Err() string
	RefreshConfig(token, entitySlug string) tea.Cmd
	ClearError()
	Apply(msg tea.Msg) bool
	Reset()
}

// HistorySource is the slice of the fetch client the history page consumes.
type HistorySource interface {
	History() *core.HistorySnapshot
	IsLoadingHistory() bool
	Err() string
	RefreshHistory(period core.PeriodType, token, entitySlug string) tea.Cmd
	ClearError()
	Apply(msg tea.Msg) bool
	Reset()
}

// Connection identifies the rate-limit API a page talks to.
type Connection struct {
	NetworkClient ratelimit.NetworkClient
	BaseURL       string
	TestMode      bool
}

type Option func(*options)

type options struct {
	logger        zerolog.Logger
	fetchTimeout  time.Duration
	configSource  ConfigSource
	historySource HistorySource
}

func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func WithFetchTimeout(d time.Duration) Option {
	return func(o *options) { o.fetchTimeout = d }
}

// WithConfigSource replaces the HTTP-backed store of the limits page.
func WithConfigSource(src ConfigSource) Option {
	return func(o *options) { o.configSource = src }
}

// WithHistorySource replaces the HTTP-backed store of the history page.
func WithHistorySource(src HistorySource) Option {
	return func(o *options) { o.historySource = src }
}

func buildOptions(opts []Option) options {
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// newStore gives each page its own client instance, as every page owns
// its fetch state.
func newStore(conn Connection, o options) *ratelimit.Store {
	client := ratelimit.NewClient(conn.NetworkClient, conn.BaseURL, conn.TestMode, ratelimit.WithLogger(o.logger))
	return ratelimit.NewStore(client,
		ratelimit.WithFetchTimeout(o.fetchTimeout),
		ratelimit.WithStoreLogger(o.logger),
	)
}
