// Package game drives one round: poll input, update, compose, present, sleep.
package game

import (
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/term-snake/audio"
	"github.com/lixenwraith/term-snake/engine"
	"github.com/lixenwraith/term-snake/input"
	"github.com/lixenwraith/term-snake/render"
	"github.com/lixenwraith/term-snake/terminal"
)

// waitKeyPoll is the polling period of WaitKey
const waitKeyPoll = 10 * time.Millisecond

// Cues receives sound triggers from the loop
type Cues interface {
	Play(c audio.Cue)
	ToggleMute() bool
}

// Loop owns the game state for the duration of Run
// Only Stop may be called from another goroutine
type Loop struct {
	term  terminal.Terminal
	state *engine.GameState
	comp  *render.Compositor
	keys  *input.KeyTable
	clock engine.Clock
	cues  Cues

	// Reused across polls
	events []terminal.Event

	stop atomic.Bool
}

// NewLoop wires a loop with default keys, the system clock and no sound
func NewLoop(term terminal.Terminal, state *engine.GameState, comp *render.Compositor) *Loop {
	return &Loop{
		term:   term,
		state:  state,
		comp:   comp,
		keys:   input.DefaultKeyTable(),
		clock:  engine.NewTimeProvider(),
		events: make([]terminal.Event, 0, 32),
	}
}

// SetClock replaces the time source, used by tests with a mock clock
func (l *Loop) SetClock(c engine.Clock) { l.clock = c }

// SetCues enables sound cues
func (l *Loop) SetCues(c Cues) { l.cues = c }

// Stop requests the loop to end the round at the top of the next tick
func (l *Loop) Stop() { l.stop.Store(true) }

// Run plays the round to completion and returns why it ended
// Only a failed present aborts early
func (l *Loop) Run() (engine.Outcome, error) {
	s := l.state

	if err := l.present(); err != nil {
		return s.Outcome(), fmt.Errorf("present initial frame: %w", err)
	}

	for s.Running() {
		if l.stop.Load() {
			log.Printf("loop: stop requested")
			s.Quit()
			break
		}

		l.handleInput()
		if !s.Running() {
			break
		}

		res := s.Update()
		l.cue(res)
		if !s.Running() {
			break
		}

		if err := l.present(); err != nil {
			return s.Outcome(), fmt.Errorf("present frame: %w", err)
		}
		l.clock.Sleep(s.SleepDuration())
	}

	if err := l.present(); err != nil {
		return s.Outcome(), fmt.Errorf("present final frame: %w", err)
	}
	return s.Outcome(), nil
}

// handleInput drains every pending event and applies the resulting intents
func (l *Loop) handleInput() {
	s := l.state
	l.events = l.term.PollEvents(l.events[:0])

	for _, ev := range l.events {
		if ev.Type == terminal.EventResize {
			w, h := l.term.Size()
			log.Printf("loop: terminal resized to %dx%d", w, h)
			continue
		}

		intent := l.keys.Translate(ev)
		switch intent.Type {
		case input.IntentMove:
			s.Steer(intent.Dir)
		case input.IntentQuit:
			s.Quit()
			return
		case input.IntentTogglePause:
			paused := s.TogglePause()
			log.Printf("loop: paused=%v", paused)
		case input.IntentToggleSound:
			if l.cues != nil {
				l.cues.ToggleMute()
			}
		}
	}
}

func (l *Loop) cue(res engine.TickResult) {
	if l.cues == nil {
		return
	}
	switch {
	case res.Ended && l.state.Outcome() == engine.OutcomeBoardFull:
		l.cues.Play(audio.CueBoardCleared)
	case res.Ended:
		l.cues.Play(audio.CueCrash)
	case res.Ate:
		l.cues.Play(audio.CueEat)
	}
}

func (l *Loop) present() error {
	return l.term.Present(l.comp.Compose(l.state))
}

// ShowSplash presents a bordered screen with centered lines
func (l *Loop) ShowSplash(lines []string) error {
	return l.term.Present(l.comp.ComposeSplash(lines))
}

// WaitKey polls until a key arrives, the timeout passes or Stop is called
// A timeout of zero or less waits indefinitely
func (l *Loop) WaitKey(timeout time.Duration) (terminal.Event, bool) {
	deadline := l.clock.Now().Add(timeout)
	for !l.stop.Load() {
		l.events = l.term.PollEvents(l.events[:0])
		for _, ev := range l.events {
			if ev.Type == terminal.EventKey {
				return ev, true
			}
		}
		if timeout > 0 && !l.clock.Now().Before(deadline) {
			break
		}
		l.clock.Sleep(waitKeyPoll)
	}
	return terminal.Event{}, false
}
