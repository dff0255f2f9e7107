package engine

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is wrapped by every Validate failure
var ErrInvalidConfig = errors.New("invalid game config")

// Boundary selects what happens when the head leaves the grid
type Boundary uint8

const (
	// BoundaryWall ends the round when the head leaves the grid
	BoundaryWall Boundary = iota
	// BoundaryWrap re-enters the head on the opposite edge
	BoundaryWrap
)

func (b Boundary) String() string {
	switch b {
	case BoundaryWall:
		return "wall"
	case BoundaryWrap:
		return "wrap"
	}
	return "unknown"
}

// ParseBoundary converts a flag value into a Boundary
func ParseBoundary(s string) (Boundary, error) {
	switch s {
	case "wall":
		return BoundaryWall, nil
	case "wrap":
		return BoundaryWrap, nil
	}
	return BoundaryWall, fmt.Errorf("%w: boundary %q (want wall or wrap)", ErrInvalidConfig, s)
}

// Default tuning, matching the classic terminal game
const (
	DefaultWidth          = 40
	DefaultHeight         = 20
	DefaultInitialLength  = 4
	DefaultScoreReward    = 10
	DefaultInitialTick    = 120 * time.Millisecond
	DefaultMinTick        = 40 * time.Millisecond
	DefaultTickStep       = 2 * time.Millisecond
	DefaultVerticalFactor = 1.0

	// FoodRetryLimit caps rejection sampling before falling back to a free-cell scan
	FoodRetryLimit = 1000
)

// Config holds startup tuning for one game
type Config struct {
	Width  int
	Height int

	InitialLength int
	// MaxLength caps growth; 0 means the full grid area
	MaxLength int

	ScoreReward int

	InitialTick time.Duration
	MinTick     time.Duration
	TickStep    time.Duration

	Boundary Boundary

	// VerticalFactor scales the sleep of ticks moving up or down, compensating for tall cells
	VerticalFactor float64
}

// DefaultConfig returns the standard 40x20 wall game
func DefaultConfig() Config {
	return Config{
		Width:          DefaultWidth,
		Height:         DefaultHeight,
		InitialLength:  DefaultInitialLength,
		ScoreReward:    DefaultScoreReward,
		InitialTick:    DefaultInitialTick,
		MinTick:        DefaultMinTick,
		TickStep:       DefaultTickStep,
		Boundary:       BoundaryWall,
		VerticalFactor: DefaultVerticalFactor,
	}
}

// Area returns the number of grid cells
func (c Config) Area() int {
	return c.Width * c.Height
}

// EffectiveMaxLength resolves the 0 default to the grid area
func (c Config) EffectiveMaxLength() int {
	if c.MaxLength == 0 {
		return c.Area()
	}
	return c.MaxLength
}

// Validate checks that a game can be started with this config
func (c Config) Validate() error {
	if c.Width < 2 || c.Height < 1 {
		return fmt.Errorf("%w: grid %dx%d too small", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.InitialLength < 1 {
		return fmt.Errorf("%w: initial length %d must be at least 1", ErrInvalidConfig, c.InitialLength)
	}
	// Initial body lies left of the center column
	if c.InitialLength > c.Width/2+1 {
		return fmt.Errorf("%w: initial length %d does not fit width %d", ErrInvalidConfig, c.InitialLength, c.Width)
	}
	if c.InitialLength >= c.Area() {
		return fmt.Errorf("%w: initial length %d leaves no room for food", ErrInvalidConfig, c.InitialLength)
	}
	if c.MaxLength < 0 || c.MaxLength > c.Area() {
		return fmt.Errorf("%w: max length %d outside [0, %d]", ErrInvalidConfig, c.MaxLength, c.Area())
	}
	if c.EffectiveMaxLength() < c.InitialLength {
		return fmt.Errorf("%w: max length %d below initial length %d", ErrInvalidConfig, c.MaxLength, c.InitialLength)
	}
	if c.ScoreReward < 0 {
		return fmt.Errorf("%w: negative score reward %d", ErrInvalidConfig, c.ScoreReward)
	}
	if c.MinTick <= 0 || c.InitialTick < c.MinTick {
		return fmt.Errorf("%w: tick %v must be >= floor %v > 0", ErrInvalidConfig, c.InitialTick, c.MinTick)
	}
	if c.TickStep < 0 {
		return fmt.Errorf("%w: negative tick step %v", ErrInvalidConfig, c.TickStep)
	}
	if c.Boundary != BoundaryWall && c.Boundary != BoundaryWrap {
		return fmt.Errorf("%w: unknown boundary %d", ErrInvalidConfig, c.Boundary)
	}
	if c.VerticalFactor <= 0 {
		return fmt.Errorf("%w: vertical factor %v must be positive", ErrInvalidConfig, c.VerticalFactor)
	}
	return nil
}
