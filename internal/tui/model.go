package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/janekbaraniewski/ratelimits/internal/core"
	"github.com/janekbaraniewski/ratelimits/internal/pages"
	"github.com/rs/zerolog"
)

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(150*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// ConfigReloadedMsg is sent when the settings file changed on disk.
type ConfigReloadedMsg struct {
	Labels     pages.DashboardLabels
	Theme      string
	Token      string
	EntitySlug string
}

// StatusMsg replaces the footer status line.
type StatusMsg string

type themePersistedMsg struct {
	name string
	err  error
}

// ModelConfig holds the presentation settings of the root model.
type ModelConfig struct {
	WarnThreshold float64
	CritThreshold float64
	// Hosted frames each page in a bordered section.
	Hosted    bool
	Container lipgloss.Style
	// Banner is shown right-aligned in the header, e.g. the entity or
	// "test mode".
	Banner string
}

type Model struct {
	dash   *pages.DashboardController
	cfg    ModelConfig
	logger zerolog.Logger

	width     int
	height    int
	animFrame int
	showHelp  bool
	status    string

	// onThemeChange persists the theme picked with "t".
	onThemeChange func(name string) error
}

func NewModel(dash *pages.DashboardController, cfg ModelConfig, logger zerolog.Logger) Model {
	return Model{
		dash:   dash,
		cfg:    cfg,
		logger: logger,
	}
}

// SetOnThemeChange sets a callback invoked after the user cycles the theme.
func (m *Model) SetOnThemeChange(fn func(name string) error) {
	m.onThemeChange = fn
}

func (m Model) Dashboard() *pages.DashboardController { return m.dash }

func (m Model) persistThemeCmd(name string) tea.Cmd {
	fn := m.onThemeChange
	if fn == nil {
		return nil
	}
	return func() tea.Msg {
		return themePersistedMsg{name: name, err: fn(name)}
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.dash.Mount())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.animFrame++
		return m, tickCmd()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case ConfigReloadedMsg:
		m.dash.SetLabels(msg.Labels)
		if msg.Theme != "" && !SetThemeByName(msg.Theme) {
			m.logger.Warn().Str("theme", msg.Theme).Msg("unknown theme in reloaded config")
		}
		m.status = "settings reloaded"
		return m, m.dash.SetCredentials(msg.Token, msg.EntitySlug)

	case StatusMsg:
		m.status = string(msg)
		return m, nil

	case themePersistedMsg:
		if msg.err != nil {
			m.logger.Error().Err(msg.err).Msg("theme persist failed")
			m.status = "theme save failed"
		} else {
			m.status = "theme: " + msg.name
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, m.dash.Update(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		m.dash.Unmount()
		return m, tea.Quit
	}
	if key == "?" {
		m.showHelp = !m.showHelp
		return m, nil
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch key {
	case "q":
		m.dash.Unmount()
		return m, tea.Quit
	case "tab", "shift+tab":
		return m, m.dash.NextTab()
	case "1":
		return m, m.dash.SelectTab(core.TabLimits)
	case "2":
		return m, m.dash.SelectTab(core.TabHistory)
	case "r":
		return m, m.retryOrRefresh()
	case "t":
		name := CycleTheme()
		m.status = "theme: " + name
		return m, m.persistThemeCmd(name)
	}

	switch m.dash.Active() {
	case core.TabHistory:
		return m.handleHistoryKey(key)
	default:
		return m.handleLimitsKey(key)
	}
}

func (m Model) handleLimitsKey(key string) (tea.Model, tea.Cmd) {
	if key == "u" && m.dash.Usage().HasUpgrade() {
		return m, m.dash.Usage().Upgrade()
	}
	return m, nil
}

func (m Model) handleHistoryKey(key string) (tea.Model, tea.Cmd) {
	history := m.dash.History()
	switch key {
	case "h":
		return m, history.SelectPeriod(core.PeriodHour)
	case "d":
		return m, history.SelectPeriod(core.PeriodDay)
	case "m":
		return m, history.SelectPeriod(core.PeriodMonth)
	case "[", "left":
		return m, history.CyclePeriod(-1)
	case "]", "right":
		return m, history.CyclePeriod(1)
	}
	return m, nil
}

// retryOrRefresh retries when the visible page shows an error and refreshes
// it otherwise.
func (m Model) retryOrRefresh() tea.Cmd {
	var rs pages.RenderResult
	if m.dash.Active() == core.TabHistory {
		rs = m.dash.History().RenderState()
	} else {
		rs = m.dash.Usage().RenderState()
	}
	if rs.State == pages.RenderErrorNoData || rs.Banner {
		return m.dash.Retry()
	}
	return m.dash.Refresh()
}

func (m Model) View() string {
	if m.width < 40 || m.height < 12 {
		return dimStyle.Render("\n  Terminal too small. Resize to at least 40×12.")
	}
	if m.showHelp {
		return m.renderHelpOverlay(m.width, m.height)
	}

	header := m.renderHeader(m.width)
	footer := m.renderFooter(m.width)
	contentH := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 3)

	return header + "\n" + padToSize(m.renderContent(m.width, contentH), contentH) + "\n" + footer
}

func (m Model) pageOptions(w, h int) PageOptions {
	return PageOptions{
		Width:         w,
		Height:        h,
		Hosted:        m.cfg.Hosted,
		Container:     m.cfg.Container,
		WarnThreshold: m.cfg.WarnThreshold,
		CritThreshold: m.cfg.CritThreshold,
		Frame:         m.animFrame,
	}
}

func (m Model) renderContent(w, h int) string {
	opts := m.pageOptions(w, h)
	if m.dash.Active() == core.TabHistory {
		return RenderHistoryPage(m.dash.History(), opts)
	}
	return RenderLimitsPage(m.dash.Usage(), opts)
}

func (m Model) renderHeader(w int) string {
	brand := headerStyle.Render("⚡ Rate Limits")
	left := brand + " " + m.renderScreenTabs()

	info := labelStyle.Render(m.cfg.Banner)
	gap := max(w-lipgloss.Width(left)-lipgloss.Width(info), 1)

	sep := lipgloss.NewStyle().Foreground(colorSurface1).Render(strings.Repeat("━", w))
	return left + strings.Repeat(" ", gap) + info + "\n" + sep
}

func (m Model) renderScreenTabs() string {
	labels := m.dash.Labels()
	tabs := []struct {
		tab   core.Tab
		label string
	}{
		{core.TabLimits, labels.CurrentLimitsTab},
		{core.TabHistory, labels.UsageHistoryTab},
	}
	var parts []string
	for i, t := range tabs {
		text := fmt.Sprintf("%d:%s", i+1, t.label)
		if t.tab == m.dash.Active() {
			parts = append(parts, screenTabActiveStyle.Render(text))
		} else {
			parts = append(parts, screenTabInactiveStyle.Render(text))
		}
	}
	return strings.Join(parts, "")
}

func (m Model) renderFooter(w int) string {
	sep := lipgloss.NewStyle().Foreground(colorSurface1).Render(strings.Repeat("━", w))
	line := " " + helpStyle.Render("? help")
	if m.status != "" {
		line += dimStyle.Render(" · " + m.status)
	}
	return sep + "\n" + line
}
