package tui

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
)

// RATELIMITS_THEME_DIR adds theme directories (path-list separated).
const themeDirEnvVar = "RATELIMITS_THEME_DIR"

const defaultThemeName = "Catppuccin Mocha"

// Theme is the color token set of the TUI. External themes are JSON files
// with the same lower-case keys, e.g. {"name":"Mine","base":"#111111",...}.
type Theme struct {
	Name string `json:"name"`

	Base     lipgloss.Color `json:"base"`
	Surface0 lipgloss.Color `json:"surface0"`
	Surface1 lipgloss.Color `json:"surface1"`
	Text     lipgloss.Color `json:"text"`
	Subtext  lipgloss.Color `json:"subtext"`
	Dim      lipgloss.Color `json:"dim"`

	Accent   lipgloss.Color `json:"accent"`
	Blue     lipgloss.Color `json:"blue"`
	Sapphire lipgloss.Color `json:"sapphire"`
	Green    lipgloss.Color `json:"green"`
	Yellow   lipgloss.Color `json:"yellow"`
	Red      lipgloss.Color `json:"red"`
	Peach    lipgloss.Color `json:"peach"`
	Teal     lipgloss.Color `json:"teal"`
	Lavender lipgloss.Color `json:"lavender"`
}


func builtinThemes() []Theme {
	return []Theme{
		{
			Name: "Catppuccin Mocha",
			Base: "#1E1E2E", Surface0: "#313244", Surface1: "#45475A",
			Text: "#CDD6F4", Subtext: "#A6ADC8", Dim: "#585B70",
			Accent: "#CBA6F7", Blue: "#89B4FA", Sapphire: "#74C7EC",
			Green: "#A6E3A1", Yellow: "#F9E2AF", Red: "#F38BA8",
			Peach: "#FAB387", Teal: "#94E2D5", Lavender: "#B4BEFE",
		},
		{
			Name: "Gruvbox",
			Base: "#282828", Surface0: "#3C3836", Surface1: "#504945",
			Text: "#EBDBB2", Subtext: "#D5C4A1", Dim: "#665C54",
			Accent: "#D3869B", Blue: "#83A598", Sapphire: "#83A598",
			Green: "#B8BB26", Yellow: "#FABD2F", Red: "#FB4934",
			Peach: "#FE8019", Teal: "#8EC07C", Lavender: "#D3869B",
		},
		{
			Name: "Nord",
			Base: "#2E3440", Surface0: "#3B4252", Surface1: "#434C5E",
			Text: "#ECEFF4", Subtext: "#D8DEE9", Dim: "#4C566A",
			Accent: "#B48EAD", Blue: "#81A1C1", Sapphire: "#88C0D0",
			Green: "#A3BE8C", Yellow: "#EBCB8B", Red: "#BF616A",
			Peach: "#D08770", Teal: "#8FBCBB", Lavender: "#B48EAD",
		},
		{
			Name: "Tokyo Night",
			Base: "#1A1B26", Surface0: "#24283B", Surface1: "#414868",
			Text: "#C0CAF5", Subtext: "#A9B1D6", Dim: "#565F89",
			Accent: "#BB9AF7", Blue: "#7AA2F7", Sapphire: "#7DCFFF",
			Green: "#9ECE6A", Yellow: "#E0AF68", Red: "#F7768E",
			Peach: "#FF9E64", Teal: "#73DACA", Lavender: "#BB9AF7",
		},
		{
			Name: "Solarized Dark",
			Base: "#002B36", Surface0: "#073642", Surface1: "#0E3A45",
			Text: "#93A1A1", Subtext: "#839496", Dim: "#586E75",
			Accent: "#D33682", Blue: "#268BD2", Sapphire: "#2AA198",
			Green: "#859900", Yellow: "#B58900", Red: "#DC322F",
			Peach: "#CB4B16", Teal: "#2AA198", Lavender: "#6C71C4",
		},
		{
			Name: "Grayscale",
			Base: "#000000", Surface0: "#181818", Surface1: "#2A2A2A",
			Text: "#F5F5F5", Subtext: "#D6D6D6", Dim: "#A8A8A8",
			Accent: "#FFFFFF", Blue: "#E8E8E8", Sapphire: "#DDDDDD",
			Green: "#D0D0D0", Yellow: "#BEBEBE", Red: "#AAAAAA",
			Peach: "#ECECEC", Teal: "#CCCCCC", Lavender: "#D9D9D9",
		},
	}
}

// themeCatalog holds the selectable themes in cycle order and which one is
// applied to the package colors.
type themeCatalog struct {
	mu     sync.RWMutex
	list   []Theme
	active int
}

var catalog themeCatalog

func init() {
	catalog.replace(builtinThemes(), defaultThemeName)
}

func sameName(name string) func(Theme) bool {
	name = strings.TrimSpace(name)
	return func(t Theme) bool { return strings.EqualFold(t.Name, name) }
}

// find is case-insensitive; an empty name never matches.
func (c *themeCatalog) find(name string) (int, bool) {
	if strings.TrimSpace(name) == "" {
		return 0, false
	}
	_, idx, ok := lo.FindIndexOf(c.list, sameName(name))
	return idx, ok
}

func (c *themeCatalog) activate(idx int) {
	c.active = idx
	applyTheme(c.list[idx])
}

// replace swaps the list and re-activates keep, or the first theme when keep
// is gone. Callers hold mu.
func (c *themeCatalog) replace(list []Theme, keep string) {
	c.list = list
	idx, _ := c.find(keep)
	c.activate(idx)
}

func (t *Theme) colors() map[string]*lipgloss.Color {
	return map[string]*lipgloss.Color{
		"base": &t.Base, "surface0": &t.Surface0, "surface1": &t.Surface1,
		"text": &t.Text, "subtext": &t.Subtext, "dim": &t.Dim,
		"accent": &t.Accent, "blue": &t.Blue, "sapphire": &t.Sapphire,
		"green": &t.Green, "yellow": &t.Yellow, "red": &t.Red,
		"peach": &t.Peach, "teal": &t.Teal, "lavender": &t.Lavender,
	}
}

func normalizeTheme(t Theme) Theme {
	t.Name = strings.TrimSpace(t.Name)
	for _, c := range t.colors() {
		*c = lipgloss.Color(strings.TrimSpace(string(*c)))
	}
	return t
}

func (t Theme) validate() error {
	if t.Name == "" {
		return errors.New("missing required field: name")
	}
	missing := lo.Keys(lo.PickBy(t.colors(), func(_ string, c *lipgloss.Color) bool {
		return *c == ""
	}))
	if len(missing) == 0 {
		return nil
	}
	slices.Sort(missing)
	return fmt.Errorf("missing required color fields: %s", strings.Join(missing, ", "))
}

// themeSearchDirs lists <configDir>/themes first, then RATELIMITS_THEME_DIR
// entries, deduplicated.
func themeSearchDirs(configDir string) []string {
	candidates := filepath.SplitList(os.Getenv(themeDirEnvVar))
	if configDir = strings.TrimSpace(configDir); configDir != "" {
		candidates = append([]string{filepath.Join(configDir, "themes")}, candidates...)
	}
	return lo.Uniq(lo.FilterMap(candidates, func(d string, _ int) (string, bool) {
		d = strings.TrimSpace(d)
		return filepath.Clean(d), d != ""
	}))
}

// readThemeDir decodes every *.json file in dir. A missing dir is empty; bad
// files are skipped and reported together.
func readThemeDir(dir string) ([]Theme, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read theme dir %s: %w", dir, err)
	}

	var errs []error
	loaded := lo.FilterMap(entries, func(e fs.DirEntry, _ int) (Theme, bool) {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			return Theme{}, false
		}
		t, err := loadThemeFile(filepath.Join(dir, e.Name()))
		if err != nil {
			errs = append(errs, err)
			return Theme{}, false
		}
		return t, true
	})
	return loaded, errors.Join(errs...)
}

func loadThemeFile(path string) (Theme, error) {
	f, err := os.Open(path)
	if err != nil {
		return Theme{}, err
	}
	defer f.Close()

	var t Theme
	if err := json.NewDecoder(f).Decode(&t); err != nil {
		return Theme{}, fmt.Errorf("parse %s: %w", path, err)
	}
	t = normalizeTheme(t)
	if err := t.validate(); err != nil {
		return Theme{}, fmt.Errorf("theme %s: %w", path, err)
	}
	return t, nil
}

// mergeThemes appends extra to base; a theme with an existing name replaces it
// in place.
func mergeThemes(base, extra []Theme) []Theme {
	return lo.Reduce(extra, func(acc []Theme, t Theme, _ int) []Theme {
		if _, idx, ok := lo.FindIndexOf(acc, sameName(t.Name)); ok {
			acc[idx] = t
			return acc
		}
		return append(acc, t)
	}, slices.Clone(base))
}

// LoadThemes rebuilds the catalog from the built-ins plus JSON files in
// <configDir>/themes and RATELIMITS_THEME_DIR. Invalid files are skipped and
// reported in the joined error; the active theme is kept when it still exists.
func LoadThemes(configDir string) error {
	list := builtinThemes()
	var errs []error
	for _, dir := range themeSearchDirs(configDir) {
		loaded, err := readThemeDir(dir)
		if err != nil {
			errs = append(errs, err)
		}
		list = mergeThemes(list, loaded)
	}

	catalog.mu.Lock()
	defer catalog.mu.Unlock()
	catalog.replace(list, catalog.list[catalog.active].Name)
	return errors.Join(errs...)
}

func AvailableThemes() []Theme {
	catalog.mu.RLock()
	defer catalog.mu.RUnlock()
	return slices.Clone(catalog.list)
}

func ActiveTheme() Theme {
	catalog.mu.RLock()
	defer catalog.mu.RUnlock()
	return catalog.list[catalog.active]
}

// CycleTheme activates the next theme and returns its name.
func CycleTheme() string {
	catalog.mu.Lock()
	defer catalog.mu.Unlock()
	catalog.activate((catalog.active + 1) % len(catalog.list))
	return catalog.list[catalog.active].Name
}

// SetThemeByName activates the named theme. It reports false and leaves the
// active theme alone when no theme matches.
func SetThemeByName(name string) bool {
	catalog.mu.Lock()
	defer catalog.mu.Unlock()
	idx, ok := catalog.find(name)
	if ok {
		catalog.activate(idx)
	}
	return ok
}
