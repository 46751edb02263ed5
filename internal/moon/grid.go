package moon

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Cell is one output character. The zero Cell is unset and leaves whatever
// background the caller draws.
type Cell struct {
	Rune rune
	Fg   tcell.Color
	Attr tcell.AttrMask
}

// Set reports whether the cell was written
func (c Cell) Set() bool {
	return c.Rune != 0
}

// Grid is a row-major block of cells owned by the caller
type Grid struct {
	Width  int
	Height int
	cells  []Cell
}

// NewGrid allocates an unset grid. Non-positive dimensions give an empty grid.
func NewGrid(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		return &Grid{}
	}
	return &Grid{
		Width:  width,
		Height: height,
		cells:  make([]Cell, width*height),
	}
}

// Empty reports whether the grid has no area
func (g *Grid) Empty() bool {
	return g.Width == 0 || g.Height == 0
}

// InBounds reports whether (x, y) lies inside the grid
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.Width && y < g.Height
}

// At returns the cell at (x, y), or an unset cell outside the grid
func (g *Grid) At(x, y int) Cell {
	if !g.InBounds(x, y) {
		return Cell{}
	}
	return g.cells[y*g.Width+x]
}

// Put writes a cell; writes outside the grid are dropped. Writing into the
// column covered by a wide rune breaks that rune, which becomes a space in
// the same style.
func (g *Grid) Put(x, y int, c Cell) {
	if !g.InBounds(x, y) {
		return
	}
	i := y*g.Width + x
	if c.Set() && x > 0 {
		if left := g.cells[i-1]; left.Set() && runewidth.RuneWidth(left.Rune) == 2 {
			left.Rune = ' '
			g.cells[i-1] = left
		}
	}
	g.cells[i] = c
}

// Count returns the number of set cells
func (g *Grid) Count() int {
	n := 0
	for _, c := range g.cells {
		if c.Set() {
			n++
		}
	}
	return n
}

// Equal reports whether two grids have identical dimensions and cells
func (g *Grid) Equal(o *Grid) bool {
	if g.Width != o.Width || g.Height != o.Height {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Lines returns the grid as plain text rows, unset cells as spaces. The
// column after a wide rune is covered by it and emits nothing.
func (g *Grid) Lines() []string {
	lines := make([]string, g.Height)
	var sb strings.Builder
	for y := 0; y < g.Height; y++ {
		sb.Reset()
		for x := 0; x < g.Width; x++ {
			c := g.At(x, y)
			if !c.Set() {
				sb.WriteByte(' ')
				continue
			}
			sb.WriteRune(c.Rune)
			if runewidth.RuneWidth(c.Rune) == 2 {
				x++
			}
		}
		lines[y] = sb.String()
	}
	return lines
}
