package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/janekbaraniewski/ratelimits/internal/pages"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	appName   = "ratelimits"
	envPrefix = "RATELIMITS"

	DefaultBaseURL         = "http://localhost:8080/api"
	DefaultRefreshInterval = 60 * time.Second
	DefaultTheme           = "Catppuccin Mocha"
)

type UIConfig struct {
	WarnThreshold float64 `mapstructure:"warn_threshold" json:"warn_threshold" validate:"gt=0,lte=1"`
	CritThreshold float64 `mapstructure:"crit_threshold" json:"crit_threshold" validate:"gt=0,lte=1,ltfield=WarnThreshold"`
	// Hosted frames each page in a bordered section.
	Hosted bool `mapstructure:"hosted" json:"hosted"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" json:"level" validate:"oneof=trace debug info warn error"`
	Format string `mapstructure:"format" json:"format" validate:"oneof=console json"`
	// File receives the TUI's logs; empty keeps them off the terminal.
	File string `mapstructure:"file" json:"file,omitempty"`
}

type Config struct {
	BaseURL    string `mapstructure:"base_url" json:"base_url" validate:"required,url"`
	Token      string `mapstructure:"token" json:"token,omitempty"`
	EntitySlug string `mapstructure:"entity_slug" json:"entity_slug,omitempty" validate:"omitempty,slug"`
	TestMode   bool   `mapstructure:"test_mode" json:"test_mode"`
	// RefreshInterval drives the limits page poll; zero disables it.
	RefreshInterval time.Duration `mapstructure:"refresh_interval" json:"refresh_interval" validate:"gte=0"`
	// UpgradeURL enables the upgrade action, which opens it in a browser.
	UpgradeURL string `mapstructure:"upgrade_url" json:"upgrade_url,omitempty" validate:"omitempty,url"`

	UI     UIConfig              `mapstructure:"ui" json:"ui"`
	Theme  string                `mapstructure:"theme" json:"theme"`
	Labels pages.DashboardLabels `mapstructure:"labels" json:"labels"`
	Log    LogConfig             `mapstructure:"log" json:"log"`
}

func DefaultConfig() Config {
	return Config{
		BaseURL:         DefaultBaseURL,
		RefreshInterval: DefaultRefreshInterval,
		Theme:           DefaultTheme,
		UI: UIConfig{
			WarnThreshold: 0.30,
			CritThreshold: 0.10,
		},
		Labels: pages.DefaultDashboardLabels(),
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func ConfigDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("APPDATA"), appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName)
}

func ConfigPath() string {
	return filepath.Join(ConfigDir(), "settings.json")
}

var validate = validator.New()

var slugRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,62}$`)

func init() {
	validate.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugRegex.MatchString(fl.Field().String())
	})
}

// Loader reads one settings file plus the environment and can watch the
// file for changes.
type Loader struct {
	path string
	v    *viper.Viper
}

func NewLoader(path string) *Loader {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{path: path, v: v}
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("base_url", d.BaseURL)
	v.SetDefault("token", "")
	v.SetDefault("entity_slug", "")
	v.SetDefault("test_mode", false)
	v.SetDefault("refresh_interval", d.RefreshInterval)
	v.SetDefault("upgrade_url", "")
	v.SetDefault("theme", d.Theme)

	v.SetDefault("ui.warn_threshold", d.UI.WarnThreshold)
	v.SetDefault("ui.crit_threshold", d.UI.CritThreshold)
	v.SetDefault("ui.hosted", false)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", "")
}

// Path is the settings file this loader reads.
func (l *Loader) Path() string { return l.path }

// Load reads the settings file, applies RATELIMITS_* overrides and
// validates the result. A missing file yields the defaults.
func (l *Loader) Load() (Config, error) {
	if err := l.v.ReadInConfig(); err != nil && !isNotFound(err) {
		return DefaultConfig(), fmt.Errorf("reading config %s: %w", l.path, err)
	}
	return l.decode()
}

func (l *Loader) decode() (Config, error) {
	cfg := DefaultConfig()
	if err := l.v.Unmarshal(&cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config %s: %w", l.path, err)
	}
	// Labels are partial overrides on top of the defaults.
	cfg.Labels = pages.DefaultDashboardLabels().Overlay(cfg.Labels)
	if err := validate.Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Watch calls fn with the re-read configuration every time the settings
// file is written. Only call it after a successful Load.
func (l *Loader) Watch(fn func(Config, error)) {
	l.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		fn(l.decode())
	})
	l.v.WatchConfig()
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

// LoadDotEnv loads KEY=value pairs from the given files into the process
// environment without overriding variables that are already set. Missing
// files are skipped.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

func LoadFrom(path string) (Config, error) {
	return NewLoader(path).Load()
}

// saveMu guards read-modify-write cycles on the config file.
var saveMu sync.Mutex

// SaveTheme persists a theme name into the config file (read-modify-write).
func SaveTheme(theme string) error {
	return SaveThemeTo(ConfigPath(), theme)
}

// SaveThemeTo only touches the "theme" key so values that came from the
// environment never end up in the file.
func SaveThemeTo(path string, theme string) error {
	saveMu.Lock()
	defer saveMu.Unlock()

	raw := map[string]any{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("parsing config %s: %w", path, err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("reading config: %w", err)
	}
	raw["theme"] = theme

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	out, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	out = append(out, '\n')

	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
