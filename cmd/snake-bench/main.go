// Command snake-bench measures compose and present throughput with an autopilot snake.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/lixenwraith/term-snake/core"
	"github.com/lixenwraith/term-snake/engine"
	"github.com/lixenwraith/term-snake/render"
	"github.com/lixenwraith/term-snake/terminal"
)

var (
	duration = flag.Duration("duration", 10*time.Second, "Benchmark duration")
	width    = flag.Int("width", engine.DefaultWidth, "Grid width")
	height   = flag.Int("height", engine.DefaultHeight, "Grid height")
	glyphs   = flag.String("glyphs", "ascii", "Glyph set: ascii, unicode")
	platform = flag.String("platform", "ansi", "Terminal platform: ansi, tcell")
)

func main() {
	flag.Parse()

	cfg := engine.DefaultConfig()
	cfg.Width, cfg.Height = *width, *height
	cfg.Boundary = engine.BoundaryWrap
	g, err := render.ParseGlyphs(*glyphs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	state, err := engine.NewGameState(cfg, engine.NewRand(1))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	comp, err := render.NewCompositor(cfg, g)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var term terminal.Terminal
	if *platform == "tcell" {
		term = terminal.NewTcell()
	} else {
		term = terminal.New(terminal.Options{AltScreen: true})
	}
	if err := term.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "init failed: %v\n", err)
		os.Exit(1)
	}
	defer term.Fini()

	// Signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		term.Fini()
		os.Exit(0)
	}()

	turns := []core.Direction{core.DirUp, core.DirRight, core.DirDown, core.DirRight}
	rng := engine.NewRand(2)

	var frames, rounds int64
	var composeTotal, presentTotal time.Duration
	start := time.Now()

	for time.Since(start) < *duration {
		if rng.IntN(8) == 0 {
			state.Steer(turns[rng.IntN(len(turns))])
		}
		state.Update()
		if !state.Running() {
			state.Reset()
			rounds++
		}

		t0 := time.Now()
		frame := comp.Compose(state)
		t1 := time.Now()
		if err := term.Present(frame); err != nil {
			term.Fini()
			fmt.Fprintf(os.Stderr, "present failed: %v\n", err)
			os.Exit(1)
		}
		composeTotal += t1.Sub(t0)
		presentTotal += time.Since(t1)
		frames++

		term.PollEvents(nil)
	}

	elapsed := time.Since(start)

	term.Fini()

	fmt.Printf("Benchmark Results:\n")
	fmt.Printf("  Grid:         %dx%d (%d bytes/frame)\n", cfg.Width, cfg.Height, len(comp.Compose(state)))
	fmt.Printf("  Total Frames: %d (%d rounds)\n", frames, rounds)
	fmt.Printf("  Total Time:   %v\n", elapsed)
	fmt.Printf("  Avg FPS:      %.2f\n", float64(frames)/elapsed.Seconds())
	if frames > 0 {
		fmt.Printf("  Avg Compose:  %v\n", composeTotal/time.Duration(frames))
		fmt.Printf("  Avg Present:  %v\n", presentTotal/time.Duration(frames))
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	fmt.Printf("  Total Alloc:  %d bytes\n", m.TotalAlloc)
	fmt.Printf("  Mallocs:      %d\n", m.Mallocs)
}
