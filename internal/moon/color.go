package moon

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// ColorMode indicates terminal color capability
type ColorMode uint8

const (
	ColorModeTrueColor ColorMode = iota // 24-bit RGB
	ColorMode256                        // xterm-256 palette
)

func (m ColorMode) String() string {
	if m == ColorMode256 {
		return "256"
	}
	return "truecolor"
}

// ParseColorMode accepts "truecolor"/"24bit" and "256". "auto" and the
// empty string detect from the environment.
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return DetectColorMode(), nil
	case "truecolor", "24bit", "rgb":
		return ColorModeTrueColor, nil
	case "256", "indexed":
		return ColorMode256, nil
	}
	return ColorModeTrueColor, fmt.Errorf("unknown color mode %q (want auto, truecolor or 256)", s)
}

// DetectColorMode determines terminal color capability from environment
func DetectColorMode() ColorMode {
	colorterm := os.Getenv("COLORTERM")
	if colorterm == "truecolor" || colorterm == "24bit" {
		return ColorModeTrueColor
	}

	if os.Getenv("KITTY_WINDOW_ID") != "" ||
		os.Getenv("KONSOLE_VERSION") != "" ||
		os.Getenv("ITERM_SESSION_ID") != "" ||
		os.Getenv("ALACRITTY_WINDOW_ID") != "" ||
		os.Getenv("WEZTERM_PANE") != "" {
		return ColorModeTrueColor
	}

	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(term, "truecolor") ||
		strings.Contains(term, "24bit") ||
		strings.Contains(term, "direct") {
		return ColorModeTrueColor
	}

	return ColorMode256
}

// Palette holds the color families used by the rasterizer
type Palette struct {
	Lit    colorful.Color // sunlit surface
	Shadow colorful.Color // earthshine side
	Marker colorful.Color // feature marker glyph
	Label  colorful.Color // feature name text
}

// DefaultPalette is warm gold over neutral gray. Every entry sits exactly on
// the xterm-256 palette so both color modes show the same hue.
var DefaultPalette = Palette{
	Lit:    rgb255(255, 215, 0), // xterm 220
	Shadow: rgb255(88, 88, 88),  // xterm 240
	Marker: rgb255(255, 0, 0),   // xterm 196
	Label:  rgb255(0, 255, 255), // xterm 51
}

// ParseHex parses a #rrggbb color
func ParseHex(s string) (colorful.Color, error) {
	c, err := colorful.Hex(strings.TrimSpace(s))
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c, nil
}

// resolved is a Palette encoded for one color mode
type resolved struct {
	lit, shadow, marker, label tcell.Color
}

func (p Palette) resolve(mode ColorMode) resolved {
	return resolved{
		lit:    Encode(p.Lit, mode),
		shadow: Encode(p.Shadow, mode),
		marker: Encode(p.Marker, mode),
		label:  Encode(p.Label, mode),
	}
}

// Encode converts a color to a tcell color for the given mode: an RGB color
// in true color, otherwise the nearest xterm-256 palette entry
func Encode(c colorful.Color, mode ColorMode) tcell.Color {
	if mode == ColorMode256 {
		return tcell.PaletteColor(Nearest256(c))
	}
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// xterm256 holds the portable part of the xterm palette (16-255). The first
// sixteen entries are themeable by the terminal and are never chosen.
var xterm256 = buildXterm256()

func buildXterm256() [256]colorful.Color {
	var p [256]colorful.Color
	levels := [6]uint8{0, 95, 135, 175, 215, 255}
	for i := 16; i < 232; i++ {
		n := i - 16
		p[i] = rgb255(levels[n/36], levels[(n%36)/6], levels[n%6])
	}
	for i := 232; i < 256; i++ {
		level := uint8(8 + 10*(i-232))
		p[i] = rgb255(level, level, level)
	}
	return p
}

// Nearest256 returns the xterm-256 index closest to c in CIE L*a*b*
func Nearest256(c colorful.Color) int {
	best, bestDist := 16, math.Inf(1)
	for i := 16; i < 256; i++ {
		if d := c.DistanceLab(xterm256[i]); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func rgb255(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}
