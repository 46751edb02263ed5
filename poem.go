package main

import (
	"math/bits"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"moonphase-tui/internal/moon"
)

const (
	poemGlowRate   = 120 * time.Millisecond
	poemRevealRate = 700 * time.Millisecond

	// Glow advances one palette step every this many ticks
	poemGlowSteps = 12
)

// Poem is a short verse shown beside the moon
type Poem struct {
	Title  string
	Author string
	Lines  []string
}

var poems = map[moon.Language][]Poem{
	moon.English: {
		{
			Title:  "The Moon",
			Author: "Robert Louis Stevenson",
			Lines: []string{
				"The moon has a face like the clock in the hall;",
				"She shines on thieves on the garden wall,",
				"On streets and fields and harbor quays,",
				"And birdies asleep in the forks of the trees.",
			},
		},
		{
			Title:  "To the Moon (excerpt)",
			Author: "Percy Bysshe Shelley",
			Lines: []string{
				"Art thou pale for weariness",
				"Of climbing heaven and gazing on the earth,",
				"Wandering companionless",
				"Among the stars that have a different birth,",
			},
		},
	},
	moon.Chinese: {
		{
			Title:  "静夜思",
			Author: "李白",
			Lines:  []string{"床前明月光，", "疑是地上霜。", "举头望明月，", "低头思故乡。"},
		},
		{
			Title:  "望月怀远",
			Author: "张九龄",
			Lines:  []string{"海上生明月，", "天涯共此时。", "情人怨遥夜，", "竟夕起相思。"},
		},
		{
			Title:  "水调歌头·明月几时有（节选）",
			Author: "苏轼",
			Lines: []string{
				"明月几时有？把酒问青天。",
				"不知天上宫阙，今夕是何年。",
				"但愿人长久，千里共婵娟。",
			},
		},
	},
	moon.French: {
		{
			Title:  "Clair de lune (extrait)",
			Author: "Paul Verlaine",
			Lines: []string{
				"Votre âme est un paysage choisi",
				"Que vont charmant masques et bergamasques,",
				"Jouant du luth et dansant et quasi",
				"Tristes sous leurs déguisements fantasques.",
			},
		},
		{
			Title:  "Au clair de la lune",
			Author: "Chanson traditionnelle",
			Lines:  []string{"Au clair de la lune,", "Mon ami Pierrot,", "Prête-moi ta plume", "Pour écrire un mot."},
		},
	},
	moon.Japanese: {
		{
			Title:  "名月や",
			Author: "松尾芭蕉",
			Lines:  []string{"名月や", "池をめぐりて", "夜もすがら"},
		},
		{
			Title:  "名月を",
			Author: "小林一茶",
			Lines:  []string{"名月を", "取ってくれろと", "泣く子かな"},
		},
	},
	moon.Spanish: {
		{
			Title:  "Romance de la luna, luna (fragmento)",
			Author: "Federico García Lorca",
			Lines: []string{
				"La luna vino a la fragua",
				"con su polisón de nardos.",
				"El niño la mira mira.",
				"El niño la está mirando.",
			},
		},
		{
			Title:  "Luna, lunera",
			Author: "Rima tradicional",
			Lines:  []string{"Luna, lunera,", "cascabelera,", "debajo de la cama", "tienes la cena."},
		},
	},
}

var noPoems = []Poem{{Title: "Moon", Lines: []string{"(no poems available)"}}}

// poemsFor never returns an empty list
func poemsFor(lang moon.Language) []Poem {
	if list := poems[lang]; len(list) > 0 {
		return list
	}
	return noPoems
}

// poemAt wraps index into the language's poem list
func poemAt(lang moon.Language, index int) Poem {
	list := poemsFor(lang)
	n := len(list)
	return list[(index%n+n)%n]
}

// poemColors is one step of the glow palette
type poemColors struct {
	title, body, dim tcell.Color
}

var glowPalette = [...]poemColors{
	{tcell.NewRGBColor(245, 223, 235), tcell.NewRGBColor(206, 204, 235), tcell.NewRGBColor(170, 180, 210)},
	{tcell.NewRGBColor(240, 232, 250), tcell.NewRGBColor(200, 216, 240), tcell.NewRGBColor(165, 175, 205)},
	{tcell.NewRGBColor(250, 240, 235), tcell.NewRGBColor(210, 198, 238), tcell.NewRGBColor(160, 170, 200)},
}

func softPalette(glow uint64) poemColors {
	return glowPalette[(glow/poemGlowSteps)%uint64(len(glowPalette))]
}

// lcgNext steps a 64-bit LCG and returns its high word
func lcgNext(seed *uint64) uint32 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return uint32(*seed >> 32)
}

var twinkleGlyphs = [...]rune{'·', '⋅', '.', '˙'}

// poemText lays the poem out as styled rows: title, author, a gap, then
// the revealed lines. Unrevealed lines hold their row blank.
func poemText(p Poem, revealed int, colors poemColors) ([]string, []tcell.Style) {
	base := tcell.StyleDefault.Italic(true)
	lines := []string{p.Title, ""}
	styles := []tcell.Style{base.Foreground(colors.title).Bold(true), base.Foreground(colors.dim)}
	if p.Author != "" {
		lines[1] = "- " + p.Author
	}
	lines = append(lines, "")
	styles = append(styles, tcell.StyleDefault)

	for i, line := range p.Lines {
		if i >= revealed {
			line = ""
		}
		lines = append(lines, line)
		styles = append(styles, base.Foreground(colors.body))
	}
	return lines, styles
}

// renderPoem draws the bordered poem pane, then twinkles on its blank cells
func (tui *TUI) renderPoem(area rect, view viewSnapshot) {
	if area.w < 4 || area.h < 4 {
		return
	}
	colors := softPalette(view.glow)
	tui.drawBox(area, " Moon Poem ", tcell.StyleDefault.Foreground(colors.title))

	inner := rect{x: area.x + 1, y: area.y + 1, w: area.w - 2, h: area.h - 2}
	lines, styles := poemText(poemAt(view.language, view.poemIndex), view.revealed, colors)

	row := 0
	for i, line := range lines {
		for _, part := range strings.Split(runewidth.Wrap(line, inner.w), "\n") {
			if row == inner.h {
				break
			}
			tui.drawText(inner.x, inner.y+row, part, styles[i])
			row++
		}
	}

	tui.sprinkleTwinkles(inner, view.twinkleSeed, view.glow)
}

// sprinkleTwinkles scatters a few dim dots over blank cells, away from
// the area's edge. The same seed and glow give the same dots.
func (tui *TUI) sprinkleTwinkles(area rect, seed, glow uint64) {
	if area.w < 4 || area.h < 4 {
		return
	}
	style := tcell.StyleDefault.Foreground(softPalette(glow).dim).Dim(true)
	seed ^= bits.RotateLeft64(glow, 17)

	count := 2 + int(lcgNext(&seed)%3)
	for i := 0; i < count; i++ {
		x := area.x + int(lcgNext(&seed)%uint32(area.w))
		y := area.y + int(lcgNext(&seed)%uint32(area.h))
		if x <= area.x || x+1 >= area.x+area.w || y <= area.y || y+1 >= area.y+area.h {
			continue
		}

		if r, _, _, _ := tui.screen.GetContent(x, y); r != ' ' {
			continue
		}
		pick := lcgNext(&seed) % 5
		if int(pick) < len(twinkleGlyphs) {
			tui.screen.SetContent(x, y, twinkleGlyphs[pick], nil, style)
		}
	}
}

// drawBox outlines area with a single line border and an inset title
func (tui *TUI) drawBox(area rect, title string, style tcell.Style) {
	right, bottom := area.x+area.w-1, area.y+area.h-1
	for x := area.x + 1; x < right; x++ {
		tui.screen.SetContent(x, area.y, '─', nil, style)
		tui.screen.SetContent(x, bottom, '─', nil, style)
	}
	for y := area.y + 1; y < bottom; y++ {
		tui.screen.SetContent(area.x, y, '│', nil, style)
		tui.screen.SetContent(right, y, '│', nil, style)
	}
	tui.screen.SetContent(area.x, area.y, '┌', nil, style)
	tui.screen.SetContent(right, area.y, '┐', nil, style)
	tui.screen.SetContent(area.x, bottom, '└', nil, style)
	tui.screen.SetContent(right, bottom, '┘', nil, style)

	if runewidth.StringWidth(title) <= area.w-4 {
		tui.drawText(area.x+2, area.y, title, style)
	}
}
