// Package moon rasterizes a textured, phase-lit moon into a character grid.
//
// The drawn disc is the texture's crop box scaled to fit the target area with
// its aspect ratio kept. Each cell inside the inscribed circle is treated as a
// point on a unit sphere viewed orthographically and is lit when its normal
// faces the Sun. The Sun direction swings through the horizontal plane as the
// phase advances: behind the Moon at new, behind the viewer at full.
package moon

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Label projection calibration. The orthographic positions land slightly up
// and right of the painted features; these pull them back onto the art.
const (
	labelScale   = 0.95
	labelOffsetU = -0.10
	labelOffsetV = -0.10
)

// MarkerGlyph marks a feature's position
const MarkerGlyph = 'x'

// Request is the input to one rasterization
type Request struct {
	Width, Height int
	Phase         float64 // [0,1): 0=new, 0.5=full; wraps
	ShowLabels    bool
	HideDark      bool
	Language      Language
	ColorMode     ColorMode
}

// Frame is the drawn rectangle inside the target area, in cell units
type Frame struct {
	StartX, StartY float64
	W, H           float64
}

// Empty reports whether the frame has no drawable area
func (f Frame) Empty() bool {
	return !(f.W > 0 && f.H > 0)
}

// Fit scales a rectangle of the given aspect (width/height) to fit inside
// the area and centres it. Degenerate input yields an empty Frame.
func Fit(areaW, areaH int, aspect float64) Frame {
	if areaW <= 0 || areaH <= 0 || !(aspect > 0) || math.IsInf(aspect, 0) {
		return Frame{}
	}
	aw, ah := float64(areaW), float64(areaH)

	var w, h float64
	if aw/ah < aspect {
		// limited by width
		w, h = aw, aw/aspect
	} else {
		// limited by height
		w, h = ah*aspect, ah
	}

	return Frame{
		StartX: (aw - w) / 2,
		StartY: (ah - h) / 2,
		W:      w,
		H:      h,
	}
}

// Renderer draws a texture with a fixed feature table and palette. It holds
// no mutable state and is safe for concurrent use.
type Renderer struct {
	texture  *Texture
	features []Feature
	palette  Palette
}

// NewRenderer builds a renderer. A nil texture renders nothing; a nil
// feature slice disables labels.
func NewRenderer(texture *Texture, features []Feature, palette Palette) *Renderer {
	return &Renderer{
		texture:  texture,
		features: features,
		palette:  palette,
	}
}

// Default returns a renderer over the embedded texture and landmark table
func Default() *Renderer {
	return NewRenderer(DefaultTexture(), Features, DefaultPalette)
}

// Render draws the default moon
func Render(req Request) *Grid {
	return Default().Render(req)
}

// Render rasterizes one frame. Degenerate geometry returns an empty grid.
func (r *Renderer) Render(req Request) *Grid {
	if req.Width <= 0 || req.Height <= 0 {
		return NewGrid(0, 0)
	}
	if r.texture == nil || r.texture.crop.Empty() {
		return NewGrid(0, 0)
	}

	grid := NewGrid(req.Width, req.Height)
	frame := Fit(req.Width, req.Height, r.texture.Aspect())
	if frame.Empty() {
		return grid
	}
	colors := r.palette.resolve(req.ColorMode)

	r.shade(grid, frame, wrapPhase(req.Phase), req.HideDark, colors)
	if req.ShowLabels {
		r.label(grid, frame, req.Language, colors)
	}
	return grid
}

func (r *Renderer) shade(grid *Grid, frame Frame, phase float64, hideDark bool, colors resolved) {
	crop := r.texture.crop
	cropW := float64(crop.Width())
	cropH := float64(crop.Height())

	angle := phase * 2 * math.Pi
	sunX := math.Sin(angle)
	sunZ := -math.Cos(angle)

	for y := 0; y < grid.Height; y++ {
		ny := (float64(y) - frame.StartY) / frame.H
		if ny < 0 || ny >= 1 {
			continue
		}
		for x := 0; x < grid.Width; x++ {
			nx := (float64(x) - frame.StartX) / frame.W
			if nx < 0 || nx >= 1 {
				continue
			}

			// Nearest-neighbour sample from the crop box
			srcX := int(math.Floor(float64(crop.MinX) + nx*cropW))
			srcY := int(math.Floor(float64(crop.MinY) + ny*cropH))
			ch, ok := r.texture.At(srcX, srcY)
			if !ok {
				continue
			}

			dx := nx - 0.5
			dy := ny - 0.5
			if dx*dx+dy*dy > 0.25 {
				continue
			}

			u := dx * 2
			v := dy * 2
			z := math.Sqrt(math.Max(0, 1-u*u-v*v))

			// Normal (u, v, z) against the Sun vector (sunX, 0, sunZ)
			intensity := u*sunX + z*sunZ
			if intensity > 0 {
				grid.Put(x, y, Cell{Rune: ch, Fg: colors.lit})
			} else if !hideDark {
				grid.Put(x, y, Cell{Rune: ch, Fg: colors.shadow})
			}
		}
	}
}

// LabelPosition projects a selenographic position to the cell holding its
// marker. ok is false when the cell falls outside the grid.
func LabelPosition(frame Frame, width, height int, lat, lon float64) (x, y int, ok bool) {
	latRad := lat * math.Pi / 180
	lonRad := lon * math.Pi / 180

	u := math.Cos(latRad) * math.Sin(lonRad)
	v := math.Sin(latRad)

	uAdj := u*labelScale + labelOffsetU
	vAdj := v*labelScale + labelOffsetV

	// Screen y grows downward
	nx := 0.5 + uAdj/2
	ny := 0.5 - vAdj/2

	fx := math.Floor(frame.StartX + nx*frame.W)
	fy := math.Floor(frame.StartY + ny*frame.H)
	if fx < 0 || fy < 0 || fx >= float64(width) || fy >= float64(height) {
		return 0, 0, false
	}
	return int(fx), int(fy), true
}

func (r *Renderer) label(grid *Grid, frame Frame, lang Language, colors resolved) {
	for _, f := range r.features {
		x, y, ok := LabelPosition(frame, grid.Width, grid.Height, f.Lat, f.Lon)
		if !ok {
			continue
		}
		grid.Put(x, y, Cell{Rune: MarkerGlyph, Fg: colors.marker})

		name := f.Name(lang)
		labelX := x + 1
		if labelX+runewidth.StringWidth(name) >= grid.Width {
			continue
		}
		putString(grid, labelX, y, name, Cell{Fg: colors.label, Attr: tcell.AttrBold})
	}
}

// putString writes s left to right from (x, y) in the given style. Wide
// runes take two columns; the covered column is cleared.
func putString(grid *Grid, x, y int, s string, style Cell) {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		style.Rune = r
		grid.Put(x, y, style)
		for i := 1; i < w; i++ {
			grid.Put(x+i, y, Cell{})
		}
		x += w
	}
}

func wrapPhase(p float64) float64 {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0
	}
	p = math.Mod(p, 1)
	if p < 0 {
		p++
	}
	return p
}
