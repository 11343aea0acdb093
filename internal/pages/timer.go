package pages

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// RefreshTickMsg is emitted by a page's periodic refresh timer.
type RefreshTickMsg struct {
	Owner string
	Gen   uint64
}

// refreshTimer is a cancellable periodic task. bubbletea ticks cannot be
// withdrawn once scheduled, so every start or stop bumps the generation and
// ticks carrying an older generation are discarded. At most one generation
// is live at a time.
type refreshTimer struct {
	owner    string
	gen      uint64
	interval time.Duration
	active   bool
}

// start cancels any running timer and schedules a new one. An interval <= 0
// leaves the timer stopped.
func (t *refreshTimer) start(interval time.Duration) tea.Cmd {
	t.stop()
	if interval <= 0 {
		return nil
	}
	t.interval = interval
	t.active = true
	return t.schedule()
}

func (t *refreshTimer) stop() {
	t.gen++
	t.active = false
}

func (t *refreshTimer) schedule() tea.Cmd {
	owner, gen := t.owner, t.gen
	return tea.Tick(t.interval, func(time.Time) tea.Msg {
		return RefreshTickMsg{Owner: owner, Gen: gen}
	})
}

// fired reports whether msg is a tick of the live generation.
func (t *refreshTimer) fired(msg tea.Msg) bool {
	tick, ok := msg.(RefreshTickMsg)
	return ok && t.active && tick.Owner == t.owner && tick.Gen == t.gen
}

func (t *refreshTimer) running() bool { return t.active }
