package main

import (
	"fmt"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"moonphase-tui/internal/moon"
)

// ============================================================================
// THEMES
// ============================================================================

type Theme struct {
	Name    string
	Text    tcell.Color // info panel body
	Accent  tcell.Color // info panel headings and key hints
	Palette moon.Palette
}

var themes = map[string]*Theme{
	"default": {
		Name:    "default",
		Text:    tcell.ColorWhite,
		Accent:  tcell.ColorYellow,
		Palette: moon.DefaultPalette,
	},
	"amber": {
		Name:    "amber",
		Text:    tcell.NewRGBColor(255, 176, 0),
		Accent:  tcell.NewRGBColor(255, 215, 135),
		Palette: mustPalette("#ffb000", "#5f3a00", "#ff5f00", "#ffd787"),
	},
	"mono": {
		Name:    "mono",
		Text:    tcell.ColorWhite,
		Accent:  tcell.ColorSilver,
		Palette: mustPalette("#e4e4e4", "#585858", "#ffffff", "#bcbcbc"),
	},
	"nord": {
		Name:    "nord",
		Text:    tcell.NewRGBColor(216, 222, 233),
		Accent:  tcell.NewRGBColor(136, 192, 208),
		Palette: mustPalette("#ebcb8b", "#4c566a", "#bf616a", "#88c0d0"),
	},
}

// mustPalette builds a palette from lit, shadow, marker and label hex colors.
// It panics on malformed input and is meant for the static theme table only.
func mustPalette(lit, shadow, marker, label string) moon.Palette {
	parse := func(s string) colorful.Color {
		c, err := colorful.Hex(s)
		if err != nil {
			panic(err)
		}
		return c
	}
	return moon.Palette{
		Lit:    parse(lit),
		Shadow: parse(shadow),
		Marker: parse(marker),
		Label:  parse(label),
	}
}

// themeNames returns the known theme names, sorted
func themeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ============================================================================
// CONFIG FILE
// ============================================================================

type Config struct {
	Display struct {
		Language       string `toml:"language"`
		ShowLabels     *bool  `toml:"show_labels"`
		HideDark       *bool  `toml:"hide_dark"`
		ColorMode      string `toml:"color_mode"`
		Model          string `toml:"model"`
		Theme          string `toml:"theme"`
		RefreshMinutes *int   `toml:"refresh_minutes"`
	} `toml:"display"`

	// Hex overrides applied on top of the selected theme
	Theme ThemeOverrides `toml:"theme"`
}

type ThemeOverrides struct {
	Lit    string `toml:"lit"`
	Shadow string `toml:"shadow"`
	Marker string `toml:"marker"`
	Label  string `toml:"label"`
}

func LoadConfig(path string) (*Config, error) {
	var config Config

	if path == "" {
		return &config, nil
	}

	md, err := toml.DecodeFile(path, &config)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}

	return &config, nil
}

// Apply returns p with every non-empty override replaced
func (o ThemeOverrides) Apply(p moon.Palette) (moon.Palette, error) {
	for _, e := range []struct {
		hex string
		dst *colorful.Color
	}{
		{o.Lit, &p.Lit},
		{o.Shadow, &p.Shadow},
		{o.Marker, &p.Marker},
		{o.Label, &p.Label},
	} {
		if e.hex == "" {
			continue
		}
		c, err := moon.ParseHex(e.hex)
		if err != nil {
			return p, fmt.Errorf("theme override: %w", err)
		}
		*e.dst = c
	}
	return p, nil
}

// lookupTheme finds a theme by name and applies the overrides to a copy
func lookupTheme(name string, overrides ThemeOverrides) (*Theme, error) {
	base, ok := themes[name]
	if !ok {
		return nil, fmt.Errorf("unknown theme %q (want one of %v)", name, themeNames())
	}
	theme := *base
	p, err := overrides.Apply(theme.Palette)
	if err != nil {
		return nil, err
	}
	theme.Palette = p
	return &theme, nil
}
