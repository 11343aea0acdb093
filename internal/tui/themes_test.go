package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCycleThemeWraps(t *testing.T) {
	defer SetThemeByName(defaultThemeName)

	start := ActiveTheme().Name
	seen := map[string]bool{start: true}
	for range len(AvailableThemes()) - 1 {
		seen[CycleTheme()] = true
	}
	if len(seen) != len(AvailableThemes()) {
		t.Errorf("cycled through %d themes, want %d", len(seen), len(AvailableThemes()))
	}
	if got := CycleTheme(); got != start {
		t.Errorf("theme after full cycle = %q, want %q", got, start)
	}
}

func TestSetThemeByName(t *testing.T) {
	defer SetThemeByName(defaultThemeName)

	if !SetThemeByName("tokyo night") {
		t.Fatal("SetThemeByName(tokyo night) = false")
	}
	if ActiveTheme().Name != "Tokyo Night" {
		t.Errorf("active theme = %q", ActiveTheme().Name)
	}
	if colorBlue != ActiveTheme().Blue {
		t.Error("palette not applied")
	}
	if SetThemeByName("nope") {
		t.Error("SetThemeByName(nope) = true")
	}
	if ActiveTheme().Name != "Tokyo Night" {
		t.Error("unknown theme changed the active theme")
	}
}

func TestLoadThemesFromConfigDir(t *testing.T) {
	defer func() {
		_ = LoadThemes("")
		SetThemeByName(defaultThemeName)
	}()

	dir := t.TempDir()
	themeDir := filepath.Join(dir, "themes")
	if err := os.MkdirAll(themeDir, 0o755); err != nil {
		t.Fatal(err)
	}
	valid := `{"name":"Mine","base":"#111111","surface0":"#222222","surface1":"#333333",
"text":"#EEEEEE","subtext":"#CCCCCC","dim":"#777777","accent":"#FF00FF","blue":"#0000FF",
"sapphire":"#00AAFF","green":"#00FF00","yellow":"#FFFF00","red":"#FF0000","peach":"#FFAA00",
"teal":"#00FFAA","lavender":"#AAAAFF"}`
	if err := os.WriteFile(filepath.Join(themeDir, "mine.json"), []byte(valid), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(themeDir, "broken.json"), []byte(`{"name":"Broken"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(themeDirEnvVar, "")

	err := LoadThemes(dir)
	if err == nil || !strings.Contains(err.Error(), "broken.json") {
		t.Errorf("LoadThemes error = %v, want broken.json failure", err)
	}
	if !SetThemeByName("Mine") {
		t.Error("external theme not loaded")
	}
	if SetThemeByName("Broken") {
		t.Error("invalid theme loaded")
	}
}

func TestThemeValidateListsMissingFields(t *testing.T) {
	err := Theme{Name: "Partial", Base: "#000000"}.validate()
	if err == nil {
		t.Fatal("validate() = nil for partial theme")
	}
	if !strings.Contains(err.Error(), "accent") || strings.Contains(err.Error(), "base") {
		t.Errorf("validate() = %v", err)
	}
}
