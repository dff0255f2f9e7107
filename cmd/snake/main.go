package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lixenwraith/term-snake/audio"
	"github.com/lixenwraith/term-snake/core"
	"github.com/lixenwraith/term-snake/engine"
	"github.com/lixenwraith/term-snake/game"
	"github.com/lixenwraith/term-snake/render"
	"github.com/lixenwraith/term-snake/terminal"
)

var introLines = []string{
	"S N A K E",
	"",
	"Eat the food to grow and score.",
	"Don't hit the walls or yourself.",
	"",
	"Arrows / WASD / hjkl  steer",
	"P or Space  pause",
	"M  sound    Q or Esc  quit",
	"",
	"Press any key to start",
}

func main() {
	os.Exit(run())
}

// run returns the exit code so deferred terminal cleanup happens before os.Exit
func run() int {
	// Panic Recovery: Ensure terminal is reset even if the game crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "snake: %v\n", err)
		return 1
	}

	if logFile := setupLogging(opts.debug); logFile != nil {
		defer logFile.Close()
	}

	seed := opts.seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.Printf("config: %+v seed=%d platform=%s", opts.cfg, seed, opts.platform)

	state, err := engine.NewGameState(opts.cfg, engine.NewRand(seed))
	if err != nil {
		fmt.Fprintf(os.Stderr, "snake: %v\n", err)
		return 1
	}
	comp, err := render.NewCompositor(opts.cfg, opts.glyphs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "snake: %v\n", err)
		return 1
	}

	term, err := openTerminal(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "snake: %v\n", err)
		return 1
	}
	// Normal exit terminal cleanup
	defer term.Fini()
	core.SetCrashReset(func() { terminal.EmergencyReset(os.Stdout) })

	if err := checkSize(term, opts.cfg, comp); err != nil {
		term.Fini()
		fmt.Fprintf(os.Stderr, "snake: %v\n", err)
		return 1
	}

	loop := game.NewLoop(term, state, comp)

	if opts.sound {
		sm := audio.NewSoundManager()
		if err := sm.Initialize(); err != nil {
			log.Printf("audio: unavailable, continuing silent: %v", err)
		} else {
			defer sm.Cleanup()
			loop.SetCues(sm)
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)
	done := make(chan struct{})
	defer close(done)
	core.Go(func() {
		select {
		case sig := <-sigCh:
			log.Printf("signal: %v", sig)
			loop.Stop()
		case <-done:
		}
	})

	if opts.intro {
		if err := loop.ShowSplash(introLines); err != nil {
			term.Fini()
			fmt.Fprintf(os.Stderr, "snake: present intro: %v\n", err)
			return 1
		}
		loop.WaitKey(0)
	}

	outcome, err := loop.Run()
	if err != nil {
		term.Fini()
		fmt.Fprintf(os.Stderr, "snake: %v\n", err)
		return 1
	}
	log.Printf("game over: outcome=%s score=%d length=%d", outcome, state.Score(), state.Length())

	// Leave the final frame up until a key press
	if outcome != engine.OutcomeQuit {
		loop.WaitKey(0)
	}

	term.Fini()
	fmt.Printf("Game Over! Final score: %d   Final length: %d\n", state.Score(), state.Length())
	return 0
}

// openTerminal initializes the requested platform; auto prefers raw ANSI and falls back to tcell
func openTerminal(opts *options) (terminal.Terminal, error) {
	if opts.platform != "tcell" {
		term := terminal.New(terminal.Options{AltScreen: opts.altScreen})
		err := term.Init()
		if err == nil {
			log.Printf("terminal: ansi platform")
			return term, nil
		}
		if opts.platform == "ansi" || !errors.Is(err, terminal.ErrUnsupported) {
			return nil, fmt.Errorf("init ansi terminal: %w", err)
		}
		log.Printf("terminal: ansi unavailable (%v), using tcell", err)
	}

	term := terminal.NewTcell()
	if err := term.Init(); err != nil {
		return nil, fmt.Errorf("init tcell terminal: %w", err)
	}
	log.Printf("terminal: tcell platform")
	return term, nil
}

// checkSize rejects terminals that cannot hold the frame and both text lines
func checkSize(term terminal.Terminal, cfg engine.Config, comp *render.Compositor) error {
	w, h := term.Size()
	needW := max(cfg.Width+2, comp.TextWidth())
	needH := comp.FrameHeight()
	if w < needW || h < needH {
		return fmt.Errorf("terminal %dx%d too small, need %dx%d (try -width/-height)", w, h, needW, needH)
	}
	return nil
}
