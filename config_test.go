package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"moonphase-tui/internal/moon"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "moon.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[display]
language = "fr"
show_labels = true
hide_dark = false
color_mode = "256"
model = "simple"
theme = "nord"
refresh_minutes = 10

[theme]
lit = "#ffffff"
`)

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	d := config.Display
	if d.Language != "fr" || d.ColorMode != "256" || d.Model != "simple" || d.Theme != "nord" {
		t.Errorf("display strings = %+v", d)
	}
	if d.ShowLabels == nil || !*d.ShowLabels {
		t.Error("show_labels not decoded")
	}
	if d.HideDark == nil || *d.HideDark {
		t.Error("hide_dark not decoded as an explicit false")
	}
	if d.RefreshMinutes == nil || *d.RefreshMinutes != 10 {
		t.Error("refresh_minutes not decoded")
	}
	if config.Theme.Lit != "#ffffff" || config.Theme.Shadow != "" {
		t.Errorf("theme overrides = %+v", config.Theme)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"missing file", filepath.Join(t.TempDir(), "nope.toml"), "nope.toml"},
		{"bad syntax", writeConfig(t, "[display\n"), "moon.toml"},
		{"unknown key", writeConfig(t, "[display]\nrotation = 3\n"), "display.rotation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(tt.path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	config, err := LoadConfig("")
	if err != nil || config == nil {
		t.Fatalf("LoadConfig(\"\") = %v, %v", config, err)
	}
	if config.Display.ShowLabels != nil || config.Display.Theme != "" {
		t.Errorf("empty config has values: %+v", config.Display)
	}
}

func TestThemes(t *testing.T) {
	for _, name := range themeNames() {
		theme := themes[name]
		if theme.Name != name {
			t.Errorf("theme %q has Name %q", name, theme.Name)
		}
		// Lit must read brighter than shadow for the terminator to show
		litL, _, _ := theme.Palette.Lit.Lab()
		shadowL, _, _ := theme.Palette.Shadow.Lab()
		if litL <= shadowL {
			t.Errorf("theme %q: lit L*=%.2f not brighter than shadow L*=%.2f", name, litL, shadowL)
		}
	}
	if themes["default"].Palette != moon.DefaultPalette {
		t.Error("default theme does not use the default palette")
	}
}

func TestLookupTheme(t *testing.T) {
	theme, err := lookupTheme("amber", ThemeOverrides{Marker: "#00ff00"})
	if err != nil {
		t.Fatalf("lookupTheme() error = %v", err)
	}
	green, _ := colorful.Hex("#00ff00")
	if theme.Palette.Marker != green {
		t.Errorf("marker override not applied: %v", theme.Palette.Marker.Hex())
	}
	if theme.Palette.Lit != themes["amber"].Palette.Lit {
		t.Error("untouched entry changed")
	}
	if themes["amber"].Palette.Marker == green {
		t.Error("override leaked into the shared theme table")
	}

	if _, err := lookupTheme("solarized", ThemeOverrides{}); err == nil {
		t.Error("expected error for unknown theme")
	}
	if _, err := lookupTheme("default", ThemeOverrides{Lit: "yellow"}); err == nil {
		t.Error("expected error for malformed override")
	}
}
