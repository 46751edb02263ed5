package ansi

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"moonphase-tui/internal/moon"
)

var sgr = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func strip(s string) string {
	return sgr.ReplaceAllString(s, "")
}

func encode(t *testing.T, g *moon.Grid) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Encode(&buf, g); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	return buf.String()
}

func TestEncodeColorModes(t *testing.T) {
	tests := []struct {
		name string
		mode moon.ColorMode
		lit  string
		not  string
	}{
		{"truecolor", moon.ColorModeTrueColor, "\x1b[38;2;255;215;0m", "\x1b[38;5;"},
		{"256", moon.ColorMode256, "\x1b[38;5;220m", "\x1b[38;2;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := moon.Render(moon.Request{Width: 60, Height: 20, Phase: 0.5, ColorMode: tt.mode})
			out := encode(t, g)
			if !strings.Contains(out, tt.lit) {
				t.Errorf("output missing lit sequence %q", tt.lit)
			}
			if strings.Contains(out, tt.not) {
				t.Errorf("output contains foreign sequence %q", tt.not)
			}
		})
	}
}

func TestEncodeRows(t *testing.T) {
	g := moon.Render(moon.Request{Width: 50, Height: 16, Phase: 0.3, ShowLabels: true})
	out := encode(t, g)

	rows := strings.SplitAfter(out, "\n")
	rows = rows[:len(rows)-1] // trailing empty element
	if len(rows) != g.Height {
		t.Fatalf("got %d rows, expected %d", len(rows), g.Height)
	}
	for i, row := range rows {
		if !strings.HasSuffix(row, "\x1b[0m\n") {
			t.Errorf("row %d does not end with a reset: %q", i, row[max(0, len(row)-12):])
		}
	}

	lines := g.Lines()
	for i, row := range rows {
		if got := strings.TrimSuffix(strip(row), "\n"); got != lines[i] {
			t.Errorf("row %d text = %q, expected %q", i, got, lines[i])
		}
	}
}

func TestEncodeColorChangesOnly(t *testing.T) {
	lit := tcell.NewRGBColor(1, 2, 3)
	g := moon.NewGrid(5, 1)
	for x := 0; x < 3; x++ {
		g.Put(x, 0, moon.Cell{Rune: '#', Fg: lit})
	}
	g.Put(4, 0, moon.Cell{Rune: '.', Fg: tcell.PaletteColor(240)})

	out := encode(t, g)
	want := "\x1b[38;2;1;2;3m###\x1b[39m \x1b[38;5;240m.\x1b[0m\n"
	if out != want {
		t.Errorf("Encode() = %q, expected %q", out, want)
	}
}

func TestEncodeBold(t *testing.T) {
	fg := tcell.PaletteColor(51)
	g := moon.NewGrid(4, 1)
	g.Put(0, 0, moon.Cell{Rune: 'a', Fg: fg, Attr: tcell.AttrBold})
	g.Put(1, 0, moon.Cell{Rune: 'b', Fg: fg, Attr: tcell.AttrBold})
	g.Put(2, 0, moon.Cell{Rune: 'c', Fg: fg})

	out := encode(t, g)
	want := "\x1b[38;5;51m\x1b[1mab\x1b[22mc\x1b[39m \x1b[0m\n"
	if out != want {
		t.Errorf("Encode() = %q, expected %q", out, want)
	}
}

func TestEncodeWideRunes(t *testing.T) {
	g := moon.NewGrid(4, 1)
	g.Put(0, 0, moon.Cell{Rune: '中', Fg: tcell.PaletteColor(51)})
	g.Put(2, 0, moon.Cell{Rune: 'x', Fg: tcell.PaletteColor(51)})

	if got := strip(encode(t, g)); got != "中x \n" {
		t.Errorf("stripped output = %q, expected %q", got, "中x \n")
	}
}

func TestEncodeEmpty(t *testing.T) {
	if out := encode(t, moon.NewGrid(0, 0)); out != "" {
		t.Errorf("empty grid encoded as %q", out)
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}

func TestEncodeWriteError(t *testing.T) {
	g := moon.Render(moon.Request{Width: 20, Height: 8, Phase: 0.5})
	if err := Encode(failWriter{}, g); err == nil {
		t.Error("expected error from failing writer")
	}
}

func TestPaletteIndex(t *testing.T) {
	for _, i := range []int{0, 16, 220, 255} {
		if got := PaletteIndex(tcell.PaletteColor(i)); got != i {
			t.Errorf("PaletteIndex(PaletteColor(%d)) = %d", i, got)
		}
	}
}
