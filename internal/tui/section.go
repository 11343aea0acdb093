package tui

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// PageOptions control how a page is drawn.
type PageOptions struct {
	Width  int
	Height int
	// Hosted frames the page in a bordered section, as it appears inside the
	// dashboard layout. Pages that are printed on their own leave it off.
	Hosted bool
	// Container is applied to the outermost block of every branch.
	Container lipgloss.Style

	WarnThreshold float64
	CritThreshold float64

	// Frame drives the loading spinner.
	Frame int
	Now   time.Time
}

const minContentWidth = 24

// contentWidth is the width available inside the section frame.
func (o PageOptions) contentWidth() int {
	w := o.Width
	if o.Hosted {
		w -= sectionFrameStyle.GetHorizontalFrameSize()
	}
	return max(w, minContentWidth)
}

func (o PageOptions) now() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}

func (o PageOptions) thresholds() (warn, crit float64) {
	warn, crit = o.WarnThreshold, o.CritThreshold
	if warn <= 0 {
		warn = DefaultWarnThreshold
	}
	if crit <= 0 {
		crit = DefaultCritThreshold
	}
	return warn, crit
}

// renderSection wraps body in the page frame and the container style.
func renderSection(body string, opts PageOptions) string {
	if opts.Hosted {
		body = sectionFrameStyle.
			Width(max(opts.Width-sectionFrameStyle.GetHorizontalBorderSize(), minContentWidth)).
			Render(body)
	}
	return opts.Container.Render(body)
}

func renderLoading(text string, opts PageOptions) string {
	w := opts.contentWidth()
	spin := lipgloss.NewStyle().Foreground(colorAccent).Render(spinner(opts.Frame))
	block := lipgloss.JoinVertical(lipgloss.Center, spin, "", labelStyle.Render(text))
	return lipgloss.Place(w, 7, lipgloss.Center, lipgloss.Center, block)
}

func renderErrorPanel(errorText, message, retryText string, opts PageOptions) string {
	w := opts.contentWidth()
	body := lipgloss.JoinVertical(lipgloss.Center,
		errorTextStyle.Render(errorText+": "+message),
		"",
		buttonStyle.Render(retryText)+" "+helpStyle.Render("r"),
	)
	panel := errorPanelStyle.MaxWidth(w).Render(body)
	return lipgloss.PlaceHorizontal(w, lipgloss.Center, panel)
}

// renderBanner is the non-blocking error shown above stale content.
func renderBanner(errorText, message string, w int) string {
	text := padCell("⚠ "+errorText+": "+message, w-bannerStyle.GetHorizontalFrameSize())
	return bannerStyle.Render(text)
}

func renderPageTitle(title string, refreshing bool, opts PageOptions) string {
	out := pageTitleStyle.Render(title)
	if refreshing {
		out += " " + lipgloss.NewStyle().Foreground(colorAccent).Render(spinner(opts.Frame))
	}
	return out
}
