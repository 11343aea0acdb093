package main

import (
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/janekbaraniewski/ratelimits/internal/pages"
	"github.com/janekbaraniewski/ratelimits/internal/ratelimit"
	"github.com/janekbaraniewski/ratelimits/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newStatusCommand(opts *cliOptions) *cobra.Command {
	var width int
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Print current limits and usage history once and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer s.close()
			out, err := renderStatus(s, width)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 100, "render width in columns")
	return cmd
}

// renderStatus fetches both pages concurrently and renders them one below
// the other.
func renderStatus(s *session, width int) (string, error) {
	if s.cfg.Token == "" {
		return "", fmt.Errorf("status: %w (set --token or RATELIMITS_TOKEN)", ratelimit.ErrNoToken)
	}

	usageLabels, historyLabels := s.cfg.Labels.Split()

	usage := pages.NewUsageViewModel(pages.UsageParams{
		Connection: s.connection(),
		Token:      s.cfg.Token,
		EntitySlug: s.cfg.EntitySlug,
		AutoFetch:  true,
	}, usageLabels, pages.WithLogger(s.logger))

	hp := pages.DefaultHistoryParams()
	hp.Connection = s.connection()
	hp.Token = s.cfg.Token
	hp.EntitySlug = s.cfg.EntitySlug
	hp.InitialPeriod = s.period
	history := pages.NewHistoryViewModel(hp, historyLabels, pages.WithLogger(s.logger))

	var (
		mu   sync.Mutex
		msgs []tea.Msg
	)
	var g errgroup.Group
	for _, cmd := range []tea.Cmd{usage.Mount(), history.Mount()} {
		g.Go(func() error {
			got := runCmd(cmd)
			mu.Lock()
			msgs = append(msgs, got...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}
	for _, msg := range msgs {
		usage.Update(msg)
		history.Update(msg)
	}
	defer usage.Unmount()
	defer history.Unmount()

	opts := tui.PageOptions{Width: width, Hosted: true}
	return tui.RenderLimitsPage(usage, opts) + "\n" + tui.RenderHistoryPage(history, opts), nil
}

// runCmd executes cmd and any batch it expands to, collecting the messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, runCmd(c)...)
	}
	return out
}
