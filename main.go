package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"moonphase-tui/internal/ansi"
	"moonphase-tui/internal/log"
	"moonphase-tui/internal/moon"
	"moonphase-tui/internal/phase"
)

// Print-mode width when stdout is not a terminal
const fallbackTermWidth = 80

type Options struct {
	Date       time.Time // zero follows the clock
	Lines      int       // non-zero selects print mode
	Refresh    time.Duration
	HideDark   bool
	ShowLabels bool
	Language   moon.Language
	Model      phase.Model
	ColorMode  string // auto, truecolor or 256
	Theme      *Theme
	DebugFile  string
	Help       bool
}

func showHelp() {
	fmt.Printf(`moonphase-tui - the current Moon, phase-lit, in your terminal

DESCRIPTION:
    Renders a textured ASCII moon shaded by the astronomically computed
    phase, with optional landmark labels in five languages.

USAGE:
    moonphase-tui [OPTIONS]

OPTIONS:
    -h                    Show this help message
    -d <filename>         Enable debug logging to specified file
    -date <YYYY-MM-DD>    Show this date at midday UTC instead of now
    -lines <n>            Print n lines to stdout and exit (1-1000)
    -refresh-minutes <n>  Re-read the clock every n minutes (0-1440, 0 disables, default: 5)
    -hide-dark            Leave the unlit side blank
    -labels               Show landmark labels
    -lang <code>          Label language: en|zh|fr|ja|es (default: en)
    -model <name>         Phase model: meeus|simple (default: meeus)
    -color <mode>         Color mode: auto|truecolor|256 (default: auto)
    -theme <name>         Theme: %s (default: default)
    -config <file>        Load settings from TOML config file

INTERACTIVE CONTROLS:
    Left/Right  - Previous/next day (manual mode)
    n           - Back to now (auto mode)
    l           - Toggle labels
    L           - Cycle label language
    d           - Toggle dark side
    i           - Toggle info panel
    p           - Toggle poem pane
    P           - Next poem
    q/Esc       - Exit

EXAMPLES:
    # Follow the current phase
    ./moonphase-tui

    # A given night, labelled in French
    ./moonphase-tui -date 2025-12-04 -labels -lang fr

    # Print a 30-line moon in 256 colors
    ./moonphase-tui -lines 30 -color 256

`, strings.Join(themeNames(), "|"))
}

// parseOptions reads flags and the optional config file. Flags given on the
// command line override the config file.
func parseOptions(args []string) (*Options, error) {
	fs := flag.NewFlagSet("moonphase-tui", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var debugFile = fs.String("d", "", "Debug log filename")
	var showHelpFlag = fs.Bool("h", false, "Show help")
	var date = fs.String("date", "", "Date to show (YYYY-MM-DD)")
	var lines = fs.Int("lines", 0, "Print this many lines and exit")
	var refreshMinutes = fs.Int("refresh-minutes", 5, "Clock refresh interval in minutes")
	var hideDark = fs.Bool("hide-dark", false, "Hide the unlit side")
	var labels = fs.Bool("labels", false, "Show landmark labels")
	var lang = fs.String("lang", "en", "Label language")
	var model = fs.String("model", "meeus", "Phase model")
	var colorMode = fs.String("color", "auto", "Color mode")
	var themeName = fs.String("theme", "default", "Theme name")
	var configFile = fs.String("config", "", "Load from TOML config file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	opts := &Options{DebugFile: *debugFile, Help: *showHelpFlag}
	if opts.Help {
		return opts, nil
	}

	// Apply config file settings (flags override config file)
	config, err := LoadConfig(*configFile)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	display := config.Display
	if display.Language != "" && !set["lang"] {
		*lang = display.Language
	}
	if display.ShowLabels != nil && !set["labels"] {
		*labels = *display.ShowLabels
	}
	if display.HideDark != nil && !set["hide-dark"] {
		*hideDark = *display.HideDark
	}
	if display.ColorMode != "" && !set["color"] {
		*colorMode = display.ColorMode
	}
	if display.Model != "" && !set["model"] {
		*model = display.Model
	}
	if display.Theme != "" && !set["theme"] {
		*themeName = display.Theme
	}
	if display.RefreshMinutes != nil && !set["refresh-minutes"] {
		*refreshMinutes = *display.RefreshMinutes
	}

	// Validate parameters
	if *lines < 0 || *lines > 1000 {
		return nil, errors.New("lines must be between 0 and 1000 (0 starts the viewer)")
	}
	if *refreshMinutes < 0 || *refreshMinutes > 1440 {
		return nil, errors.New("refresh interval must be between 0 and 1440 minutes")
	}

	opts.Lines = *lines
	opts.Refresh = time.Duration(*refreshMinutes) * time.Minute
	opts.HideDark = *hideDark
	opts.ShowLabels = *labels
	opts.ColorMode = *colorMode

	if *date != "" {
		day, err := time.Parse("2006-01-02", *date)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q, use YYYY-MM-DD", *date)
		}
		opts.Date = day.Add(12 * time.Hour)
	}
	if opts.Language, err = moon.ParseLanguage(*lang); err != nil {
		return nil, err
	}
	if opts.Model, err = phase.ParseModel(*model); err != nil {
		return nil, err
	}
	if _, err = colorModeFor(*colorMode, 0); err != nil {
		return nil, err
	}
	if opts.Theme, err = lookupTheme(*themeName, config.Theme); err != nil {
		return nil, err
	}

	return opts, nil
}

// colorModeFor resolves a color mode setting. "auto" trusts the screen's
// reported color count when there is one and the environment otherwise.
func colorModeFor(setting string, colors int) (moon.ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(setting)) {
	case "", "auto":
		switch {
		case colors >= 1<<24:
			return moon.ColorModeTrueColor, nil
		case colors > 0:
			return moon.ColorMode256, nil
		}
	}
	return moon.ParseColorMode(setting)
}

// runPrint renders one frame to w: lines rows at twice that many columns,
// clamped to the terminal width
func runPrint(w io.Writer, opts *Options, termWidth int, now time.Time) error {
	date := opts.Date
	if date.IsZero() {
		date = now
	}
	if termWidth <= 0 {
		termWidth = fallbackTermWidth
	}

	mode, err := colorModeFor(opts.ColorMode, 0)
	if err != nil {
		return err
	}

	status := opts.Model.Compute(date)
	log.Debugf("Print: %s %s %.1f%% (%s model)", date.Format(time.RFC3339), status.Name, status.Illumination, opts.Model)

	renderer := moon.NewRenderer(moon.DefaultTexture(), moon.Features, opts.Theme.Palette)
	grid := renderer.Render(moon.Request{
		Width:      min(opts.Lines*2, termWidth),
		Height:     opts.Lines,
		Phase:      status.Fraction,
		ShowLabels: opts.ShowLabels,
		HideDark:   opts.HideDark,
		Language:   opts.Language,
		ColorMode:  mode,
	})
	return ansi.Encode(w, grid)
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return fallbackTermWidth
	}
	return width
}

func run(opts *Options) int {
	if err := log.Init(opts.DebugFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error opening debug log: %v\n", err)
		return 1
	}
	defer log.Sync()
	log.Infof("moonphase-tui starting: model %s, theme %s", opts.Model, opts.Theme.Name)

	if opts.Lines > 0 {
		if err := runPrint(os.Stdout, opts, terminalWidth(), time.Now().UTC()); err != nil {
			log.Errorf("Print failed: %v", err)
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	tui, err := NewTUI(opts)
	if err != nil {
		log.Errorf("TUI init failed: %v", err)
		fmt.Fprintf(os.Stderr, "Error initializing TUI: %v\n", err)
		return 1
	}
	defer tui.Close()

	tui.Run(opts.Refresh)
	return 0
}

func main() {
	opts, err := parseOptions(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		showHelp()
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if opts.Help {
		showHelp()
		os.Exit(0)
	}

	os.Exit(run(opts))
}
