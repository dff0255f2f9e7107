package engine

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/term-snake/core"
)

// Phase is the round state machine
type Phase uint8

const (
	PhaseRunning Phase = iota
	PhaseOver
)

func (p Phase) String() string {
	if p == PhaseOver {
		return "over"
	}
	return "running"
}

// Outcome records why a round ended
type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomeCollision
	OutcomeQuit
	OutcomeBoardFull
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCollision:
		return "collision"
	case OutcomeQuit:
		return "quit"
	case OutcomeBoardFull:
		return "board_full"
	}
	return "none"
}

// GameState is the single owned aggregate for one round
// All methods must be called from the loop goroutine
type GameState struct {
	cfg       Config
	maxLength int
	rng       *rand.Rand

	// Snake body, index 0 is the head. Backing array sized to maxLength once
	snake []core.Point
	// Occupancy grid mirroring snake, row-major
	occupied []bool

	current core.Direction
	pending core.Direction

	food    core.Point
	hasFood bool

	score        int
	tickInterval time.Duration
	ticks        int

	phase   Phase
	outcome Outcome
	paused  bool
}

// NewGameState validates cfg and starts a fresh round
// A nil rng is replaced with a time-seeded PCG source
func NewGameState(cfg Config, rng *rand.Rand) (*GameState, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = NewRand(uint64(time.Now().UnixNano()))
	}

	s := &GameState{
		cfg:       cfg,
		maxLength: cfg.EffectiveMaxLength(),
		rng:       rng,
	}
	s.snake = make([]core.Point, 0, s.maxLength)
	s.occupied = make([]bool, cfg.Area())
	s.Reset()
	return s, nil
}

// NewRand returns a deterministic generator for a seed
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Reset restarts the round: centered snake heading right, fresh food
func (s *GameState) Reset() {
	clear(s.occupied)
	s.snake = s.snake[:0]

	mid := core.Point{X: s.cfg.Width / 2, Y: s.cfg.Height / 2}
	for i := 0; i < s.cfg.InitialLength; i++ {
		p := core.Point{X: mid.X - i, Y: mid.Y}
		s.snake = append(s.snake, p)
		s.occupied[s.index(p)] = true
	}

	s.current = core.DirRight
	s.pending = core.DirRight
	s.score = 0
	s.tickInterval = s.cfg.InitialTick
	s.ticks = 0
	s.phase = PhaseRunning
	s.outcome = OutcomeNone
	s.paused = false

	if !s.PlaceFood() {
		s.end(OutcomeBoardFull)
	}
}

// Arrange starts a fresh round from a known position: body, heading and food
// body[0] is the head; cells must be in bounds and distinct
func (s *GameState) Arrange(body []core.Point, dir core.Direction, food core.Point) error {
	if len(body) < 1 || len(body) > s.maxLength {
		return fmt.Errorf("%w: body length %d outside [1, %d]", ErrInvalidConfig, len(body), s.maxLength)
	}

	seen := make([]bool, s.cfg.Area())
	for _, p := range body {
		if !p.In(s.cfg.Width, s.cfg.Height) {
			return fmt.Errorf("%w: segment %v out of bounds", ErrInvalidConfig, p)
		}
		if seen[s.index(p)] {
			return fmt.Errorf("%w: segment %v overlaps", ErrInvalidConfig, p)
		}
		seen[s.index(p)] = true
	}
	if !food.In(s.cfg.Width, s.cfg.Height) || seen[s.index(food)] {
		return fmt.Errorf("%w: food %v not on a free cell", ErrInvalidConfig, food)
	}

	s.snake = append(s.snake[:0], body...)
	copy(s.occupied, seen)
	s.current = dir
	s.pending = dir
	s.food = food
	s.hasFood = true
	s.score = 0
	s.tickInterval = s.cfg.InitialTick
	s.ticks = 0
	s.phase = PhaseRunning
	s.outcome = OutcomeNone
	s.paused = false
	return nil
}

// index maps an in-bounds cell to its occupancy slot
func (s *GameState) index(p core.Point) int {
	return p.Y*s.cfg.Width + p.X
}

// Config returns the tuning this round was created with
func (s *GameState) Config() Config { return s.cfg }

// Snake returns the body, head first. Callers must not modify it
func (s *GameState) Snake() []core.Point { return s.snake }

// Head returns the head cell
func (s *GameState) Head() core.Point { return s.snake[0] }

// Length returns the number of segments
func (s *GameState) Length() int { return len(s.snake) }

// MaxLength returns the growth cap
func (s *GameState) MaxLength() int { return s.maxLength }

// Direction returns the direction committed for the last tick
func (s *GameState) Direction() core.Direction { return s.current }

// Pending returns the direction the next tick will commit
func (s *GameState) Pending() core.Direction { return s.pending }

// Food returns the food cell; ok is false once the board is full
func (s *GameState) Food() (core.Point, bool) { return s.food, s.hasFood }

func (s *GameState) Score() int                  { return s.score }
func (s *GameState) TickInterval() time.Duration { return s.tickInterval }
func (s *GameState) Ticks() int                  { return s.ticks }
func (s *GameState) Phase() Phase                { return s.phase }
func (s *GameState) Outcome() Outcome            { return s.outcome }
func (s *GameState) Paused() bool                { return s.paused }

// Running reports whether the round is still live
func (s *GameState) Running() bool { return s.phase == PhaseRunning }

// Occupied reports whether a snake segment covers p
func (s *GameState) Occupied(p core.Point) bool {
	if !p.In(s.cfg.Width, s.cfg.Height) {
		return false
	}
	return s.occupied[s.index(p)]
}
