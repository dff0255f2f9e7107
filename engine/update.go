package engine

import (
	"log"
	"time"

	"github.com/lixenwraith/term-snake/core"
)

// TickResult reports what a single Update did
type TickResult struct {
	Moved bool
	Ate   bool
	Ended bool
}

// Update advances the round by one tick
// No-op once over or while paused
func (s *GameState) Update() TickResult {
	if s.phase == PhaseOver || s.paused {
		return TickResult{}
	}

	s.current = s.pending
	next := s.snake[0].Add(s.current.Delta())

	w, h := s.cfg.Width, s.cfg.Height
	if !next.In(w, h) {
		if s.cfg.Boundary != BoundaryWrap {
			s.end(OutcomeCollision)
			return TickResult{Ended: true}
		}
		next = next.Wrap(w, h)
	}

	// Pre-shift body including the tail
	if s.occupied[s.index(next)] {
		s.end(OutcomeCollision)
		return TickResult{Ended: true}
	}

	ate := s.hasFood && next == s.food
	n := len(s.snake)
	tail := s.snake[n-1]

	if ate && n < s.maxLength {
		s.snake = s.snake[:n+1]
	} else {
		s.occupied[s.index(tail)] = false
	}
	copy(s.snake[1:], s.snake)
	s.snake[0] = next
	s.occupied[s.index(next)] = true
	s.ticks++

	res := TickResult{Moved: true}
	if !ate {
		return res
	}

	res.Ate = true
	s.score += s.cfg.ScoreReward
	s.tickInterval -= s.cfg.TickStep
	if s.tickInterval < s.cfg.MinTick {
		s.tickInterval = s.cfg.MinTick
	}
	if !s.PlaceFood() {
		s.end(OutcomeBoardFull)
		res.Ended = true
	}
	return res
}

// Steer sets the direction for the next tick unless it reverses the current one
func (s *GameState) Steer(dir core.Direction) bool {
	if s.phase == PhaseOver || dir == s.current.Opposite() {
		return false
	}
	s.pending = dir
	return true
}

// Quit ends the round immediately
func (s *GameState) Quit() {
	if s.phase == PhaseOver {
		return
	}
	s.end(OutcomeQuit)
}

// TogglePause flips the pause flag and returns the new value
func (s *GameState) TogglePause() bool {
	if s.phase == PhaseOver {
		return s.paused
	}
	s.paused = !s.paused
	return s.paused
}

// SleepDuration is how long the loop waits after this tick
// Vertical ticks are scaled by VerticalFactor; the stored interval is unchanged
func (s *GameState) SleepDuration() time.Duration {
	d := s.tickInterval
	if s.current.IsVertical() && s.cfg.VerticalFactor != 1 {
		d = time.Duration(float64(d) * s.cfg.VerticalFactor)
	}
	return d
}

func (s *GameState) end(o Outcome) {
	s.phase = PhaseOver
	s.outcome = o
	s.paused = false
	log.Printf("round over: outcome=%s score=%d length=%d ticks=%d", o, s.score, len(s.snake), s.ticks)
}
