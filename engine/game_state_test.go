package engine

import (
	"errors"
	"testing"

	"github.com/lixenwraith/term-snake/core"
)

// newTestState builds a seeded state on a small grid
func newTestState(t *testing.T, width, height, length int, mutate func(c *Config)) *GameState {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Width = width
	cfg.Height = height
	cfg.InitialLength = length
	if mutate != nil {
		mutate(&cfg)
	}
	s, err := NewGameState(cfg, NewRand(1))
	if err != nil {
		t.Fatalf("NewGameState failed: %v", err)
	}
	return s
}

func arrange(t *testing.T, s *GameState, dir core.Direction, food core.Point, body ...core.Point) {
	t.Helper()
	if err := s.Arrange(body, dir, food); err != nil {
		t.Fatalf("Arrange failed: %v", err)
	}
}

// assertConsistent checks bounds, overlap and occupancy after a tick
func assertConsistent(t *testing.T, s *GameState) {
	t.Helper()
	cfg := s.Config()
	seen := make(map[core.Point]bool)
	for i, p := range s.Snake() {
		if !p.In(cfg.Width, cfg.Height) {
			t.Fatalf("Segment %d at %v out of bounds", i, p)
		}
		if s.Running() && seen[p] {
			t.Fatalf("Segment %d at %v overlaps while running", i, p)
		}
		seen[p] = true
	}
	if food, ok := s.Food(); ok {
		if !food.In(cfg.Width, cfg.Height) {
			t.Fatalf("Food %v out of bounds", food)
		}
		if s.Running() && seen[food] {
			t.Fatalf("Food %v on the snake", food)
		}
	}
	if !s.Running() {
		return
	}
	count := 0
	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			p := core.Point{X: x, Y: y}
			if s.Occupied(p) != seen[p] {
				t.Fatalf("Occupancy mismatch at %v", p)
			}
			if seen[p] {
				count++
			}
		}
	}
	if count != s.Length() {
		t.Fatalf("Expected %d occupied cells, got %d", s.Length(), count)
	}
}

func TestResetCentersSnake(t *testing.T) {
	s := newTestState(t, 10, 10, 4, nil)

	want := []core.Point{{X: 5, Y: 5}, {X: 4, Y: 5}, {X: 3, Y: 5}, {X: 2, Y: 5}}
	got := s.Snake()
	if len(got) != len(want) {
		t.Fatalf("Expected length %d, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Segment %d: expected %v, got %v", i, want[i], got[i])
		}
	}
	if s.Direction() != core.DirRight || s.Pending() != core.DirRight {
		t.Errorf("Expected right, got %s/%s", s.Direction(), s.Pending())
	}
	if s.Phase() != PhaseRunning || s.Outcome() != OutcomeNone {
		t.Errorf("Expected running with no outcome, got %s/%s", s.Phase(), s.Outcome())
	}
	if s.TickInterval() != DefaultInitialTick {
		t.Errorf("Expected %v, got %v", DefaultInitialTick, s.TickInterval())
	}
	if cap(s.Snake()) != s.MaxLength() {
		t.Errorf("Expected body capacity %d, got %d", s.MaxLength(), cap(s.Snake()))
	}
	assertConsistent(t, s)
}

func TestResetAfterGameOver(t *testing.T) {
	s := newTestState(t, 10, 10, 3, nil)
	s.Quit()
	s.Reset()

	if !s.Running() || s.Score() != 0 || s.Length() != 3 {
		t.Errorf("Expected fresh round, got phase=%s score=%d length=%d", s.Phase(), s.Score(), s.Length())
	}
	assertConsistent(t, s)
}

func TestArrangeRejectsBadBodies(t *testing.T) {
	s := newTestState(t, 10, 10, 3, nil)

	tests := []struct {
		name string
		body []core.Point
		food core.Point
	}{
		{"empty", nil, core.Point{X: 1, Y: 1}},
		{"out of bounds", []core.Point{{X: 10, Y: 0}}, core.Point{X: 1, Y: 1}},
		{"overlap", []core.Point{{X: 2, Y: 2}, {X: 2, Y: 2}}, core.Point{X: 1, Y: 1}},
		{"food on body", []core.Point{{X: 2, Y: 2}}, core.Point{X: 2, Y: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.Arrange(tt.body, core.DirRight, tt.food); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestSameSeedSameGame(t *testing.T) {
	cfg := DefaultConfig()
	a, _ := NewGameState(cfg, NewRand(7))
	b, _ := NewGameState(cfg, NewRand(7))

	for i := 0; i < 5; i++ {
		a.PlaceFood()
		b.PlaceFood()
		fa, _ := a.Food()
		fb, _ := b.Food()
		if fa != fb {
			t.Fatalf("Placement %d: expected identical food, got %v and %v", i, fa, fb)
		}
	}
}
