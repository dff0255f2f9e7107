package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/lixenwraith/term-snake/engine"
	"github.com/lixenwraith/term-snake/render"
)

// options is everything the command line controls
type options struct {
	cfg      engine.Config
	seed     uint64
	platform string
	glyphs   render.Glyphs

	altScreen bool
	intro     bool
	sound     bool
	debug     bool
}

// parseFlags reads args into validated options
// Returns flag.ErrHelp for -h
func parseFlags(args []string, output io.Writer) (*options, error) {
	def := engine.DefaultConfig()
	fs := flag.NewFlagSet("snake", flag.ContinueOnError)
	fs.SetOutput(output)

	width := fs.Int("width", def.Width, "Grid width in cells")
	height := fs.Int("height", def.Height, "Grid height in cells")
	length := fs.Int("length", def.InitialLength, "Initial snake length")
	maxLength := fs.Int("max-length", 0, "Growth cap (0 = grid area)")
	speed := fs.Duration("speed", def.InitialTick, "Initial tick interval")
	minSpeed := fs.Duration("min-speed", def.MinTick, "Fastest tick interval")
	speedStep := fs.Duration("speed-step", def.TickStep, "Tick interval decrease per food")
	reward := fs.Int("reward", def.ScoreReward, "Score per food")
	boundary := fs.String("boundary", def.Boundary.String(), "Edge policy: wall, wrap")
	vertical := fs.Float64("vertical-factor", def.VerticalFactor, "Sleep multiplier for vertical moves")
	seed := fs.Uint64("seed", 0, "Food placement seed (0 = time based)")
	platform := fs.String("platform", "auto", "Terminal platform: auto, ansi, tcell")
	glyphs := fs.String("glyphs", "ascii", "Glyph set: ascii, unicode")
	altScreen := fs.Bool("altscreen", false, "Draw in the alternate screen buffer")
	intro := fs.Bool("intro", true, "Show the intro screen")
	sound := fs.Bool("sound", false, "Play sound cues")
	debug := fs.Bool("debug", false, "Write debug log to logs/snake.log")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	b, err := engine.ParseBoundary(*boundary)
	if err != nil {
		return nil, err
	}
	g, err := render.ParseGlyphs(*glyphs)
	if err != nil {
		return nil, err
	}
	switch *platform {
	case "auto", "ansi", "tcell":
	default:
		return nil, fmt.Errorf("unknown platform %q (want auto, ansi or tcell)", *platform)
	}

	cfg := engine.Config{
		Width:          *width,
		Height:         *height,
		InitialLength:  *length,
		MaxLength:      *maxLength,
		ScoreReward:    *reward,
		InitialTick:    *speed,
		MinTick:        *minSpeed,
		TickStep:       *speedStep,
		Boundary:       b,
		VerticalFactor: *vertical,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &options{
		cfg:       cfg,
		seed:      *seed,
		platform:  *platform,
		glyphs:    g,
		altScreen: *altScreen,
		intro:     *intro,
		sound:     *sound,
		debug:     *debug,
	}, nil
}
