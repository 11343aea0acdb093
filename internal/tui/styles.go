package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// ─── Color Palette ──────────────────────────────────────────────────────────
// Overwritten by applyTheme; the zero theme is never rendered.

var (
	colorBase     lipgloss.Color
	colorSurface0 lipgloss.Color
	colorSurface1 lipgloss.Color
	colorText     lipgloss.Color
	colorSubtext  lipgloss.Color
	colorDim      lipgloss.Color

	colorAccent   lipgloss.Color
	colorBlue     lipgloss.Color
	colorSapphire lipgloss.Color
	colorGreen    lipgloss.Color
	colorYellow   lipgloss.Color
	colorRed      lipgloss.Color
	colorPeach    lipgloss.Color
	colorTeal     lipgloss.Color
	colorLavender lipgloss.Color

	colorOK   lipgloss.Color
	colorWarn lipgloss.Color
	colorCrit lipgloss.Color
)

// ─── Reusable Styles ────────────────────────────────────────────────────────

var (
	headerStyle        lipgloss.Style
	sectionHeaderStyle lipgloss.Style
	helpStyle          lipgloss.Style
	helpKeyStyle       lipgloss.Style
	labelStyle         lipgloss.Style
	valueStyle         lipgloss.Style
	dimStyle           lipgloss.Style
	gaugeTrackStyle    lipgloss.Style

	// Section frame around a page when hosted in the app layout
	sectionFrameStyle lipgloss.Style
	pageTitleStyle    lipgloss.Style

	// Dashboard tabs (limits / history)
	screenTabActiveStyle   lipgloss.Style
	screenTabInactiveStyle lipgloss.Style

	// Period tabs inside the history page
	tabActiveStyle    lipgloss.Style
	tabInactiveStyle  lipgloss.Style
	tabUnderlineStyle lipgloss.Style

	// Blocking error panel and stale-data banner
	errorPanelStyle lipgloss.Style
	errorTextStyle  lipgloss.Style
	bannerStyle     lipgloss.Style
	buttonStyle     lipgloss.Style
	upgradeStyle    lipgloss.Style

	// Tier comparison table
	tableHeaderStyle  lipgloss.Style
	tableCurrentStyle lipgloss.Style
	currentBadgeStyle lipgloss.Style

	chartTitleStyle lipgloss.Style
	chartAxisStyle  lipgloss.Style
)

func rebuildStyles() {
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorLavender)
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	helpStyle = lipgloss.NewStyle().Foreground(colorDim)
	helpKeyStyle = lipgloss.NewStyle().Foreground(colorSapphire).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(colorSubtext)
	valueStyle = lipgloss.NewStyle().Foreground(colorText)
	dimStyle = lipgloss.NewStyle().Foreground(colorDim)
	gaugeTrackStyle = lipgloss.NewStyle().Foreground(colorDim)

	sectionFrameStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorSurface1).
		Padding(0, 2)
	pageTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorText)

	screenTabActiveStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorBase).
		Background(colorAccent).
		Padding(0, 1)
	screenTabInactiveStyle = lipgloss.NewStyle().
		Foreground(colorDim).
		Padding(0, 1)

	tabActiveStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorBlue).
		Padding(0, 1)
	tabInactiveStyle = lipgloss.NewStyle().
		Foreground(colorDim).
		Padding(0, 1)
	tabUnderlineStyle = lipgloss.NewStyle().Foreground(colorBlue)

	errorPanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorRed).
		Padding(1, 4)
	errorTextStyle = lipgloss.NewStyle().Foreground(colorRed)
	bannerStyle = lipgloss.NewStyle().
		Foreground(colorBase).
		Background(colorYellow).
		Padding(0, 1)
	buttonStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorBase).
		Background(colorRed).
		Padding(0, 2)
	upgradeStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorBase).
		Background(colorAccent).
		Padding(0, 2)

	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(colorSubtext)
	tableCurrentStyle = lipgloss.NewStyle().Bold(true).Foreground(colorText).Background(colorSurface0)
	currentBadgeStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorBase).
		Background(colorGreen).
		Padding(0, 1)

	chartTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	chartAxisStyle = lipgloss.NewStyle().Foreground(colorDim)
}

// applyTheme installs t as the active palette and rebuilds every style.
func applyTheme(t Theme) {
	colorBase = t.Base
	colorSurface0 = t.Surface0
	colorSurface1 = t.Surface1
	colorText = t.Text
	colorSubtext = t.Subtext
	colorDim = t.Dim
	colorAccent = t.Accent
	colorBlue = t.Blue
	colorSapphire = t.Sapphire
	colorGreen = t.Green
	colorYellow = t.Yellow
	colorRed = t.Red
	colorPeach = t.Peach
	colorTeal = t.Teal
	colorLavender = t.Lavender

	colorOK = colorGreen
	colorWarn = colorYellow
	colorCrit = colorRed

	rebuildStyles()
}

// resolveColor returns override when set, fallback otherwise.
func resolveColor(override string, fallback lipgloss.Color) lipgloss.Color {
	if override == "" {
		return fallback
	}
	return lipgloss.Color(override)
}
