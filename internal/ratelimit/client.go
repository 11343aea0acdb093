package ratelimit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/janekbaraniewski/ratelimits/internal/core"
	"github.com/janekbaraniewski/ratelimits/internal/parsers"
	"github.com/rs/zerolog"
)

// ErrNoToken is returned when a fetch is attempted without a token.
var ErrNoToken = errors.New("no auth token")

// NetworkClient is the transport used for API calls. *http.Client satisfies it.
type NetworkClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	baseURL  string
	network  NetworkClient
	testMode bool
	logger   zerolog.Logger
	now      func() time.Time
}

type ClientOption func(*Client)

func WithLogger(l zerolog.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

func NewClient(network NetworkClient, baseURL string, testMode bool, opts ...ClientOption) *Client {
	if network == nil {
		network = http.DefaultClient
	}
	c := &Client{
		baseURL:  strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		network:  network,
		testMode: testMode,
		logger:   zerolog.Nop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope is the response wrapper used by every rate-limit endpoint.
type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data"`
	Error   string `json:"error,omitempty"`
}

// GetConfig fetches the usage snapshot for entitySlug. An empty slug selects
// the caller's personal entity.
func (c *Client) GetConfig(ctx context.Context, token, entitySlug string) (*core.UsageSnapshot, error) {
	var out envelope[core.UsageSnapshot]
	if err := c.get(ctx, "/ratelimits/config", token, entitySlug, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// GetHistory fetches usage history bucketed by period.
func (c *Client) GetHistory(ctx context.Context, period core.PeriodType, token, entitySlug string) (*core.HistorySnapshot, error) {
	if !period.Valid() {
		return nil, fmt.Errorf("invalid period type %q", period)
	}
	var out envelope[core.HistorySnapshot]
	if err := c.get(ctx, "/ratelimits/history/"+url.PathEscape(string(period)), token, entitySlug, &out); err != nil {
		return nil, err
	}
	if out.Data != nil && out.Data.PeriodType == "" {
		out.Data.PeriodType = period
	}
	return out.Data, nil
}

type apiResult interface {
	ok() (bool, string)
}

func (c *Client) get(ctx context.Context, path, token, entitySlug string, out apiResult) error {
	if strings.TrimSpace(token) == "" {
		return ErrNoToken
	}

	q := url.Values{}
	q.Set("entitySlug", entitySlug)
	if c.testMode {
		q.Set("testMode", "true")
	}
	endpoint := c.baseURL + path + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	c.logger.Debug().
		Str("request_id", requestID).
		Str("path", path).
		Interface("headers", parsers.RedactHeaders(req.Header)).
		Msg("ratelimit request")

	resp, err := c.network.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(body))
		var env envelope[json.RawMessage]
		if json.Unmarshal(body, &env) == nil && env.Error != "" {
			msg = env.Error
		}
		if msg == "" {
			msg = resp.Status
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			now := c.now()
			if th := parsers.ParseThrottle(resp.Header, now); th != nil {
				if wait := th.RetryIn(now); wait > 0 {
					msg += fmt.Sprintf(" (retry in %s)", wait)
				}
			}
		}
		return fmt.Errorf("ratelimit request failed (%d): %s", resp.StatusCode, msg)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode ratelimit response: %w", err)
	}
	if ok, msg := out.ok(); !ok {
		if msg == "" {
			msg = "request was not successful"
		}
		return errors.New(msg)
	}
	return nil
}

func (e *envelope[T]) ok() (bool, string) {
	return e.Success, e.Error
}
