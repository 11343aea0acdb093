// Package appupdate tells whether a newer ratelimits release exists.
package appupdate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/samber/lo"
	"golang.org/x/mod/semver"
)

const (
	DefaultLatestReleaseURL = "https://api.github.com/repos/janekbaraniewski/ratelimits/releases/latest"
	defaultTimeout          = 1500 * time.Millisecond
)

type InstallMethod string

const (
	InstallUnknown   InstallMethod = "unknown"
	InstallHomebrew  InstallMethod = "homebrew"
	InstallGoInstall InstallMethod = "go_install"
	InstallBinary    InstallMethod = "binary"
)

// Doer is satisfied by *http.Client.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

type Checker struct {
	// ReleaseURL points at a GitHub "latest release" endpoint.
	ReleaseURL string
	Timeout    time.Duration
	Client     Doer
	// Executable overrides os.Executable for install method detection.
	Executable string
}

type Result struct {
	CurrentVersion  string
	LatestVersion   string
	UpdateAvailable bool
	InstallMethod   InstallMethod
	UpgradeHint     string
}

// Check compares current against the latest published release. Development
// and pre-release builds are never reported as outdated.
func (c Checker) Check(ctx context.Context, current string) (Result, error) {
	method := DetectInstallMethod(c.executable())
	res := Result{
		CurrentVersion: canonicalRelease(current),
		InstallMethod:  method,
		UpgradeHint:    UpgradeHint(method),
	}
	if res.CurrentVersion == "" {
		return res, nil
	}

	latest, err := c.latest(ctx)
	if err != nil {
		return res, err
	}
	res.LatestVersion = latest
	res.UpdateAvailable = semver.Compare(latest, res.CurrentVersion) > 0
	return res, nil
}

func (c Checker) latest(ctx context.Context) (string, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	url := lo.CoalesceOrEmpty(strings.TrimSpace(c.ReleaseURL), DefaultLatestReleaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building release request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	var client Doer = http.DefaultClient
	if c.Client != nil {
		client = c.Client
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching latest release: HTTP %d", resp.StatusCode)
	}

	var payload struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decoding latest release: %w", err)
	}
	latest := canonicalRelease(payload.TagName)
	if latest == "" {
		return "", fmt.Errorf("latest release tag %q is not a stable version", payload.TagName)
	}
	return latest, nil
}

func (c Checker) executable() string {
	if c.Executable != "" {
		return c.Executable
	}
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return exe
}

// canonicalRelease returns v as "vMAJOR.MINOR.PATCH", or "" when it is not a
// stable semver release.
func canonicalRelease(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) || semver.Prerelease(v) != "" || semver.Build(v) != "" {
		return ""
	}
	return semver.Canonical(v)
}

func DetectInstallMethod(executable string) InstallMethod {
	path := strings.ToLower(filepath.ToSlash(filepath.Clean(strings.TrimSpace(executable))))
	switch {
	case executable == "":
		return InstallUnknown
	case strings.Contains(path, "/cellar/ratelimits/"), strings.HasPrefix(path, "/opt/homebrew/"):
		return InstallHomebrew
	case strings.Contains(path, "/go/bin/"), inGoBin(path):
		return InstallGoInstall
	case strings.HasSuffix(path, "/bin/ratelimits"), strings.HasSuffix(path, "/bin/ratelimits.exe"):
		return InstallBinary
	default:
		return InstallUnknown
	}
}

func inGoBin(path string) bool {
	gobin := strings.TrimSpace(os.Getenv("GOBIN"))
	if gobin == "" {
		return false
	}
	return strings.HasPrefix(path, strings.ToLower(filepath.ToSlash(filepath.Clean(gobin)))+"/")
}

func UpgradeHint(method InstallMethod) string {
	switch method {
	case InstallHomebrew:
		return "brew upgrade ratelimits"
	case InstallGoInstall:
		return "go install github.com/janekbaraniewski/ratelimits/cmd/ratelimits@latest"
	default:
		return "download the latest release from https://github.com/janekbaraniewski/ratelimits/releases"
	}
}
