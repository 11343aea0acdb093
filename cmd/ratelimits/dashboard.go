package main

import (
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/janekbaraniewski/ratelimits/internal/config"
	"github.com/janekbaraniewski/ratelimits/internal/pages"
	"github.com/janekbaraniewski/ratelimits/internal/tui"
)

func runDashboard(s *session) error {
	if err := tui.LoadThemes(config.ConfigDir()); err != nil {
		s.logger.Warn().Err(err).Msg("loading custom themes")
	}
	if !tui.SetThemeByName(s.cfg.Theme) {
		s.logger.Warn().Str("theme", s.cfg.Theme).Msg("unknown theme, using default")
	}

	dash := pages.NewDashboardController(s.dashboardParams(), s.cfg.Labels, pages.WithLogger(s.logger))
	model := tui.NewModel(dash, s.modelConfig(), s.logger)
	model.SetOnThemeChange(func(name string) error {
		return config.SaveThemeTo(s.loader.Path(), name)
	})

	program := tea.NewProgram(model, tea.WithAltScreen())

	s.loader.Watch(func(cfg config.Config, err error) {
		if err != nil {
			s.logger.Warn().Err(err).Msg("ignoring invalid settings change")
			return
		}
		program.Send(reloadedMsg(s.applyFlags(cfg)))
	})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		if _, ok := <-sigCh; ok {
			program.Quit()
		}
	}()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	dash.Unmount()
	return nil
}

func (s *session) modelConfig() tui.ModelConfig {
	return tui.ModelConfig{
		WarnThreshold: s.cfg.UI.WarnThreshold,
		CritThreshold: s.cfg.UI.CritThreshold,
		Hosted:        s.cfg.UI.Hosted,
		Banner:        s.banner(),
	}
}

func reloadedMsg(cfg config.Config) tui.ConfigReloadedMsg {
	return tui.ConfigReloadedMsg{
		Labels:     cfg.Labels,
		Theme:      cfg.Theme,
		Token:      cfg.Token,
		EntitySlug: cfg.EntitySlug,
	}
}

// openURLCmd opens url in the user's browser and reports the outcome in
// the status line.
func openURLCmd(url string) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg {
			name, args := browserCommand(url)
			if err := exec.Command(name, args...).Start(); err != nil {
				return tui.StatusMsg("could not open browser: " + err.Error())
			}
			return tui.StatusMsg("opened " + url)
		}
	}
}

func browserCommand(url string) (string, []string) {
	switch runtime.GOOS {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		return "xdg-open", []string{url}
	}
}
