package moon

import (
	_ "embed"
	"strings"
	"sync"
	"unicode"
)

// Full-disc ASCII rendering of the near side, north up
//
//go:embed texture.txt
var textureRaw string

// Rect is an inclusive cell rectangle
type Rect struct {
	MinX, MinY, MaxX, MaxY int
}

// Empty reports whether the rectangle contains no cells
func (r Rect) Empty() bool {
	return r.MinX > r.MaxX || r.MinY > r.MaxY
}

// Width returns the number of columns covered
func (r Rect) Width() int {
	if r.Empty() {
		return 0
	}
	return r.MaxX - r.MinX + 1
}

// Height returns the number of rows covered
func (r Rect) Height() int {
	if r.Empty() {
		return 0
	}
	return r.MaxY - r.MinY + 1
}

// Texture is an immutable grid of runes with its crop box precomputed.
// Rows keep their authored lengths; missing columns read as space.
type Texture struct {
	rows [][]rune
	crop Rect
}

// ParseTexture splits raw art into rows, dropping empty lines, and computes
// the bounding box of non-whitespace runes
func ParseTexture(raw string) *Texture {
	t := &Texture{crop: Rect{MinX: 1, MinY: 1}}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		t.rows = append(t.rows, []rune(line))
	}

	first := true
	for y, row := range t.rows {
		for x, ch := range row {
			if unicode.IsSpace(ch) {
				continue
			}
			if first {
				t.crop = Rect{MinX: x, MinY: y, MaxX: x, MaxY: y}
				first = false
				continue
			}
			t.crop.MinX = min(t.crop.MinX, x)
			t.crop.MaxX = max(t.crop.MaxX, x)
			t.crop.MinY = min(t.crop.MinY, y)
			t.crop.MaxY = max(t.crop.MaxY, y)
		}
	}
	return t
}

// DefaultTexture returns the embedded moon texture, parsed once per process
var DefaultTexture = sync.OnceValue(func() *Texture {
	return ParseTexture(textureRaw)
})

// Crop returns the bounding box of visible runes
func (t *Texture) Crop() Rect {
	return t.crop
}

// Rows returns the number of stored rows
func (t *Texture) Rows() int {
	return len(t.rows)
}

// Aspect returns crop width over crop height, or 0 for an empty texture
func (t *Texture) Aspect() float64 {
	if t.crop.Empty() {
		return 0
	}
	return float64(t.crop.Width()) / float64(t.crop.Height())
}

// At returns the rune at (x, y). Positions beyond a row's length are
// space; rows beyond the texture report ok=false.
func (t *Texture) At(x, y int) (r rune, ok bool) {
	if y < 0 || y >= len(t.rows) {
		return ' ', false
	}
	row := t.rows[y]
	if x < 0 || x >= len(row) {
		return ' ', true
	}
	return row[x], true
}
