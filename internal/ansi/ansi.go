// Package ansi writes a rendered grid as SGR-colored text for terminals that
// are not driven through tcell, such as print mode piping to stdout.
package ansi

import (
	"bufio"
	"fmt"
	"io"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"moonphase-tui/internal/moon"
)

const (
	csi       = "\x1b["
	reset     = csi + "0m"
	bold      = csi + "1m"
	normal    = csi + "22m"
	defaultFg = csi + "39m"
)

// Encode writes g row by row. Foreground sequences are emitted only when the
// color changes, and every row ends with a full reset.
func Encode(w io.Writer, g *moon.Grid) error {
	bw := bufio.NewWriter(w)

	for y := 0; y < g.Height; y++ {
		fg := tcell.ColorDefault
		isBold := false

		for x := 0; x < g.Width; {
			c := g.At(x, y)
			if !c.Set() {
				if fg != tcell.ColorDefault {
					bw.WriteString(defaultFg)
					fg = tcell.ColorDefault
				}
				if isBold {
					bw.WriteString(normal)
					isBold = false
				}
				bw.WriteByte(' ')
				x++
				continue
			}

			if c.Fg != fg {
				writeFg(bw, c.Fg)
				fg = c.Fg
			}
			if b := c.Attr&tcell.AttrBold != 0; b != isBold {
				if b {
					bw.WriteString(bold)
				} else {
					bw.WriteString(normal)
				}
				isBold = b
			}

			bw.WriteRune(c.Rune)
			x += max(1, runewidth.RuneWidth(c.Rune))
		}

		bw.WriteString(reset)
		bw.WriteByte('\n')
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write grid: %w", err)
	}
	return nil
}

func writeFg(w *bufio.Writer, c tcell.Color) {
	switch {
	case c.IsRGB():
		r, g, b := c.RGB()
		fmt.Fprintf(w, "%s38;2;%d;%d;%dm", csi, r, g, b)
	case c.Valid():
		fmt.Fprintf(w, "%s38;5;%dm", csi, PaletteIndex(c))
	default:
		w.WriteString(defaultFg)
	}
}

// PaletteIndex returns the xterm palette index of a palette color
func PaletteIndex(c tcell.Color) int {
	return int(c &^ tcell.ColorValid)
}
