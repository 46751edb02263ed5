package main

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"moonphase-tui/internal/log"
	"moonphase-tui/internal/moon"
	"moonphase-tui/internal/phase"
)

// Share of the inner height given to the moon when the info panel is shown
const moonHeightPercent = 80

// Poem pane sizing: the pane takes 40% of the width, at least poemMinWidth,
// and always leaves the moon moonMinWidth columns
const (
	poemWidthPercent = 40
	poemMinWidth     = 28
	moonMinWidth     = 18
)

type ViewState struct {
	date       time.Time
	followNow  bool // auto mode: date tracks the clock
	showLabels bool
	hideDark   bool
	showInfo   bool
	language   moon.Language
	poem       poemState
	mutex      sync.RWMutex
}

// poemState tracks the poem pane and its reveal animation
type poemState struct {
	show       bool
	index      int
	revealed   int
	glow       uint64
	seed       uint64
	lastGlow   time.Time
	lastReveal time.Time
}

// viewSnapshot is a lock-free copy of ViewState for one frame
type viewSnapshot struct {
	date       time.Time
	followNow  bool
	showLabels bool
	hideDark   bool
	showInfo   bool
	language   moon.Language

	showPoem    bool
	poemIndex   int
	revealed    int
	glow        uint64
	twinkleSeed uint64
}

func NewViewState(opts *Options, now time.Time) *ViewState {
	st := &ViewState{
		date:       opts.Date,
		followNow:  opts.Date.IsZero(),
		showLabels: opts.ShowLabels,
		hideDark:   opts.HideDark,
		showInfo:   true,
		language:   opts.Language,
	}
	if st.followNow {
		st.date = now
	}
	return st
}

func (s *ViewState) snapshot() viewSnapshot {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return viewSnapshot{
		date:       s.date,
		followNow:  s.followNow,
		showLabels: s.showLabels,
		hideDark:   s.hideDark,
		showInfo:   s.showInfo,
		language:   s.language,

		showPoem:    s.poem.show,
		poemIndex:   s.poem.index,
		revealed:    s.poem.revealed,
		glow:        s.poem.glow,
		twinkleSeed: s.poem.seed,
	}
}

// resetPoem starts poem index from its first line. Callers hold the lock.
func (s *ViewState) resetPoem(index int, seed uint64, now time.Time) {
	s.poem.index = index
	s.poem.revealed = 0
	s.poem.glow = 0
	s.poem.seed = seed
	s.poem.lastGlow = now
	s.poem.lastReveal = now
}

type rect struct {
	x, y, w, h int
}

type TUI struct {
	screen    tcell.Screen
	width     int
	height    int
	renderer  *moon.Renderer
	model     phase.Model
	colorMode moon.ColorMode
	theme     *Theme
	state     *ViewState
	now       func() time.Time
	pick      func(n int) int
	seed      func() uint64
	changed   bool
	mutex     sync.RWMutex
}

func NewTUI(opts *Options) (*TUI, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}

	if err := screen.Init(); err != nil {
		return nil, err
	}

	return newTUIWithScreen(screen, opts)
}

// newTUIWithScreen wires the viewer to an initialized screen
func newTUIWithScreen(screen tcell.Screen, opts *Options) (*TUI, error) {
	mode, err := colorModeFor(opts.ColorMode, screen.Colors())
	if err != nil {
		return nil, err
	}

	screen.SetStyle(tcell.StyleDefault.Foreground(opts.Theme.Text))
	screen.Clear()

	width, height := screen.Size()
	tui := &TUI{
		screen:    screen,
		width:     width,
		height:    height,
		renderer:  moon.NewRenderer(moon.DefaultTexture(), moon.Features, opts.Theme.Palette),
		model:     opts.Model,
		colorMode: mode,
		theme:     opts.Theme,
		now:       time.Now,
		pick:      rand.Intn,
		seed:      rand.Uint64,
		changed:   true,
	}
	tui.state = NewViewState(opts, tui.now().UTC())

	log.Debugf("TUI: %dx%d, %d colors, mode %v, theme %s", width, height, screen.Colors(), mode, opts.Theme.Name)
	return tui, nil
}

func (tui *TUI) Close() {
	if tui.screen != nil {
		tui.screen.Fini()
	}
}

func (tui *TUI) HandleResize() {
	newWidth, newHeight := tui.screen.Size()

	tui.mutex.Lock()
	tui.width = newWidth
	tui.height = newHeight
	tui.mutex.Unlock()

	log.Debugf("Resize: %dx%d", newWidth, newHeight)
	tui.screen.Sync()
	tui.MarkChanged()
}

func (tui *TUI) MarkChanged() {
	tui.mutex.Lock()
	tui.changed = true
	tui.mutex.Unlock()
}

// Refresh moves the date to the current time when following now
func (tui *TUI) Refresh() {
	tui.state.mutex.Lock()
	follow := tui.state.followNow
	if follow {
		tui.state.date = tui.now().UTC()
	}
	tui.state.mutex.Unlock()

	if follow {
		tui.MarkChanged()
	}
}

func (tui *TUI) drawText(x, y int, text string, style tcell.Style) {
	if y < 0 || y >= tui.height || x >= tui.width {
		return
	}

	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if x >= 0 && x+w <= tui.width {
			tui.screen.SetContent(x, y, r, nil, style)
		}
		x += w
	}
}

// blit copies the set cells of g onto the screen at the given offset
func (tui *TUI) blit(g *moon.Grid, offX, offY int) {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := g.At(x, y)
			if !c.Set() {
				continue
			}
			style := tcell.StyleDefault.Foreground(c.Fg).Attributes(c.Attr)
			tui.screen.SetContent(offX+x, offY+y, c.Rune, nil, style)
		}
	}
}

// layout splits the screen inside a one-cell margin: moon on top with the
// poem pane to its right, info below. A pane too narrow to hold its border
// is dropped.
func layout(width, height int, showInfo, showPoem bool) (moonArea, poemArea, infoArea rect) {
	inner := rect{x: 1, y: 1, w: width - 2, h: height - 2}
	if inner.w <= 0 || inner.h <= 0 {
		return rect{}, rect{}, rect{}
	}

	moonArea = inner
	if showInfo {
		moonH := inner.h * moonHeightPercent / 100
		moonArea.h = moonH
		infoArea = rect{x: inner.x, y: inner.y + moonH, w: inner.w, h: inner.h - moonH}
	}

	if showPoem {
		poemW := max(poemMinWidth, moonArea.w*poemWidthPercent/100)
		if moonArea.w-poemW < moonMinWidth {
			poemW = moonArea.w - moonMinWidth
		}
		if poemW >= 4 && moonArea.h >= 4 {
			moonArea.w -= poemW
			poemArea = rect{x: moonArea.x + moonArea.w, y: moonArea.y, w: poemW, h: moonArea.h}
		}
	}
	return moonArea, poemArea, infoArea
}

func (tui *TUI) Render() {
	tui.mutex.RLock()
	changed := tui.changed
	width, height := tui.width, tui.height
	tui.mutex.RUnlock()

	if !changed {
		return
	}

	view := tui.state.snapshot()
	status := tui.model.Compute(view.date)

	tui.screen.Clear()
	moonArea, poemArea, infoArea := layout(width, height, view.showInfo, view.showPoem)

	grid := tui.renderer.Render(moon.Request{
		Width:      moonArea.w,
		Height:     moonArea.h,
		Phase:      status.Fraction,
		ShowLabels: view.showLabels,
		HideDark:   view.hideDark,
		Language:   view.language,
		ColorMode:  tui.colorMode,
	})
	if grid.Empty() {
		log.Warnf("Terminal %dx%d leaves no room for the moon", width, height)
	}
	tui.blit(grid, moonArea.x, moonArea.y)

	if view.showPoem {
		tui.renderPoem(poemArea, view)
	}

	if view.showInfo {
		tui.renderInfo(infoArea, infoLines(view, status, phase.Upcoming(view.date)))
	}
	tui.screen.Show()

	log.Debugf("Frame: %s %s %.1f%%, %d cells", view.date.Format(time.RFC3339), status.Name, status.Illumination, grid.Count())

	tui.mutex.Lock()
	tui.changed = false
	tui.mutex.Unlock()
}

func infoLines(view viewSnapshot, status phase.Status, events phase.Events) []string {
	mode := "Manual"
	if view.followNow {
		mode = "Now (auto)"
	}
	return []string{
		fmt.Sprintf("Date:         %s", view.date.Local().Format(infoStamp)),
		fmt.Sprintf("Mode:         %s", mode),
		fmt.Sprintf("Phase:        %s", status.Name),
		fmt.Sprintf("Age:          %.1f days", status.AgeDays),
		fmt.Sprintf("Illumination: %.1f%%%s", status.Illumination, trend(status.Name)),
		fmt.Sprintf("Language:     %s", view.language),
		fmt.Sprintf("Next new:     %s", events.NextNew.Local().Format(infoStamp)),
		fmt.Sprintf("Next full:    %s", events.NextFull.Local().Format(infoStamp)),
	}
}

// Info panel times are shown in the local zone
const infoStamp = "2006-01-02 15:04 MST"

// trend marks whether the lit fraction is growing or shrinking
func trend(name phase.Name) string {
	switch {
	case name == phase.New || name == phase.Full:
		return ""
	case name.Waxing():
		return " (waxing)"
	default:
		return " (waning)"
	}
}

const keyHints = "q quit  l labels  L language  d dark side  i info  p poem  P next poem  ←/→ day  n now"

// renderInfo flows lines down the panel, starting a new column when the
// panel height runs out. The last row holds the key hints when it fits.
func (tui *TUI) renderInfo(area rect, lines []string) {
	if area.w <= 0 || area.h <= 0 {
		return
	}
	textStyle := tcell.StyleDefault.Foreground(tui.theme.Text)
	hintStyle := tcell.StyleDefault.Foreground(tui.theme.Accent)

	rows := area.h
	if rows > 1 {
		rows--
		tui.drawText(area.x, area.y+rows, keyHints, hintStyle)
	}

	colWidth := 0
	for _, line := range lines {
		colWidth = max(colWidth, runewidth.StringWidth(line))
	}

	x, row := area.x, 0
	for _, line := range lines {
		if row == rows {
			x += colWidth + 3
			row = 0
		}
		if x+runewidth.StringWidth(line) > area.x+area.w {
			break
		}
		tui.drawText(x, area.y+row, line, textStyle)
		row++
	}
}

// pickPoem starts a random poem in the current language. Callers hold the
// state lock.
func (tui *TUI) pickPoem() {
	st := tui.state
	st.resetPoem(tui.pick(len(poemsFor(st.language))), tui.seed(), tui.now())
	tui.logPoem()
}

// logPoem records the current poem. Callers hold the state lock.
func (tui *TUI) logPoem() {
	st := tui.state
	p := poemAt(st.language, st.poem.index)
	log.Debugw("Poem", "title", p.Title, "author", p.Author, "language", st.language.Code())
}

// animate advances the poem glow and reveals the next line when their
// intervals have passed
func (tui *TUI) animate() {
	now := tui.now()
	st := tui.state

	st.mutex.Lock()
	changed := false
	if st.poem.show {
		if now.Sub(st.poem.lastGlow) >= poemGlowRate {
			st.poem.lastGlow = now
			st.poem.glow++
			changed = true
		}
		if now.Sub(st.poem.lastReveal) >= poemRevealRate {
			st.poem.lastReveal = now
			if st.poem.revealed < len(poemAt(st.language, st.poem.index).Lines) {
				st.poem.revealed++
				changed = true
			}
		}
	}
	st.mutex.Unlock()

	if changed {
		tui.MarkChanged()
	}
}

// handleKey applies one key event. It returns true when the viewer should exit.
func (tui *TUI) handleKey(ev *tcell.EventKey) bool {
	st := tui.state

	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return true
	case tcell.KeyLeft, tcell.KeyRight:
		days := 1
		if ev.Key() == tcell.KeyLeft {
			days = -1
		}
		st.mutex.Lock()
		st.date = st.date.AddDate(0, 0, days)
		st.followNow = false
		st.mutex.Unlock()
	case tcell.KeyRune:
		r := ev.Rune()
		if r == 'q' || r == 'Q' {
			return true
		}

		handled := true
		st.mutex.Lock()
		switch r {
		case 'l':
			st.showLabels = !st.showLabels
		case 'L':
			st.language = st.language.Next()
			if st.poem.show {
				tui.pickPoem()
			}
		case 'p':
			st.poem.show = !st.poem.show
			if st.poem.show {
				tui.pickPoem()
			}
		case 'P':
			if st.poem.show {
				next := (st.poem.index + 1) % len(poemsFor(st.language))
				st.resetPoem(next, tui.seed(), tui.now())
				tui.logPoem()
			}
			handled = st.poem.show
		case 'd', 'D':
			st.hideDark = !st.hideDark
		case 'i', 'I':
			st.showInfo = !st.showInfo
		case 'n', 'N':
			st.date = tui.now().UTC()
			st.followNow = true
		default:
			handled = false
		}
		st.mutex.Unlock()

		if !handled {
			return false
		}
	default:
		return false
	}

	tui.MarkChanged()
	return false
}

func (tui *TUI) pollEvents() chan bool {
	quit := make(chan bool, 1)
	go func() {
		for {
			ev := tui.screen.PollEvent()
			switch ev := ev.(type) {
			case nil:
				// screen finalized
				return
			case *tcell.EventKey:
				if tui.handleKey(ev) {
					quit <- true
					return
				}
			case *tcell.EventResize:
				tui.HandleResize()
			}
		}
	}()
	return quit
}

// Run drives the viewer until quit: redraw on change, follow the clock
// every refresh interval
func (tui *TUI) Run(refresh time.Duration) {
	quit := tui.pollEvents()

	frame := time.NewTicker(50 * time.Millisecond)
	defer frame.Stop()

	var refreshC <-chan time.Time
	if refresh > 0 {
		ticker := time.NewTicker(refresh)
		defer ticker.Stop()
		refreshC = ticker.C
	}

	tui.Render()
	for {
		select {
		case <-quit:
			log.Debugf("Shutting down")
			return
		case <-refreshC:
			tui.Refresh()
		case <-frame.C:
			tui.animate()
			tui.Render()
		}
	}
}
