package ratelimit

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/janekbaraniewski/ratelimits/internal/core"
	"github.com/rs/zerolog"
)

const defaultFetchTimeout = 15 * time.Second

// Fetcher performs the actual API calls. *Client implements it.
type Fetcher interface {
	GetConfig(ctx context.Context, token, entitySlug string) (*core.UsageSnapshot, error)
	GetHistory(ctx context.Context, period core.PeriodType, token, entitySlug string) (*core.HistorySnapshot, error)
}

// ConfigResultMsg carries the outcome of a RefreshConfig command.
type ConfigResultMsg struct {
	StoreID string
	Seq     uint64
	Config  *core.UsageSnapshot
	Err     error
}

// HistoryResultMsg carries the outcome of a RefreshHistory command.
type HistoryResultMsg struct {
	StoreID string
	Seq     uint64
	Period  core.PeriodType
	History *core.HistorySnapshot
	Err     error
}

// Store holds the fetched state for a single page. It is not safe for
// concurrent use: all methods are meant to be called from the bubbletea
// Update loop, fetches run inside the returned commands.
type Store struct {
	id      string
	fetcher Fetcher
	timeout time.Duration
	logger  zerolog.Logger

	config         *core.UsageSnapshot
	history        *core.HistorySnapshot
	loadingConfig  bool
	loadingHistory bool
	err            string

	configSeq  uint64
	historySeq uint64
}

type StoreOption func(*Store)

func WithFetchTimeout(d time.Duration) StoreOption {
	return func(s *Store) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func WithStoreLogger(l zerolog.Logger) StoreOption {
	return func(s *Store) { s.logger = l }
}

func NewStore(fetcher Fetcher, opts ...StoreOption) *Store {
	s := &Store{
		id:      uuid.NewString(),
		fetcher: fetcher,
		timeout: defaultFetchTimeout,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) ID() string                     { return s.id }
func (s *Store) Config() *core.UsageSnapshot    { return s.config }
func (s *Store) History() *core.HistorySnapshot { return s.history }
func (s *Store) IsLoadingConfig() bool          { return s.loadingConfig }
func (s *Store) IsLoadingHistory() bool         { return s.loadingHistory }
func (s *Store) Err() string                    { return s.err }

// ClearError drops the current error message.
func (s *Store) ClearError() { s.err = "" }

// Reset forgets all fetched state. Results of fetches started before the
// reset are ignored when they arrive.
func (s *Store) Reset() {
	s.config = nil
	s.history = nil
	s.loadingConfig = false
	s.loadingHistory = false
	s.err = ""
	s.configSeq++
	s.historySeq++
}

// RefreshConfig marks the config as loading and returns the command that
// fetches it. Only the most recent refresh is applied.
func (s *Store) RefreshConfig(token, entitySlug string) tea.Cmd {
	s.configSeq++
	s.loadingConfig = true
	seq, id, fetcher, timeout := s.configSeq, s.id, s.fetcher, s.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		cfg, err := fetcher.GetConfig(ctx, token, entitySlug)
		return ConfigResultMsg{StoreID: id, Seq: seq, Config: cfg, Err: err}
	}
}

// RefreshHistory marks history as loading and returns the fetch command.
// The previous history stays available until the new one arrives.
func (s *Store) RefreshHistory(period core.PeriodType, token, entitySlug string) tea.Cmd {
	s.historySeq++
	s.loadingHistory = true
	seq, id, fetcher, timeout := s.historySeq, s.id, s.fetcher, s.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		hist, err := fetcher.GetHistory(ctx, period, token, entitySlug)
		return HistoryResultMsg{StoreID: id, Seq: seq, Period: period, History: hist, Err: err}
	}
}

// Apply folds a result message into the store. It reports whether msg
// belonged to this store and was current.
func (s *Store) Apply(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case ConfigResultMsg:
		if msg.StoreID != s.id || msg.Seq != s.configSeq {
			return false
		}
		s.loadingConfig = false
		if msg.Err != nil {
			s.err = errorMessage(msg.Err)
			s.logger.Debug().Err(msg.Err).Msg("config refresh failed")
			return true
		}
		s.config = msg.Config
		s.err = ""
		return true

	case HistoryResultMsg:
		if msg.StoreID != s.id || msg.Seq != s.historySeq {
			return false
		}
		s.loadingHistory = false
		if msg.Err != nil {
			s.err = errorMessage(msg.Err)
			s.logger.Debug().Err(msg.Err).Str("period", string(msg.Period)).Msg("history refresh failed")
			return true
		}
		s.history = msg.History
		s.err = ""
		return true
	}
	return false
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	case errors.Is(err, ErrNoToken):
		return "not signed in"
	default:
		return err.Error()
	}
}
