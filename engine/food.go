package engine

import (
	"log"

	"github.com/lixenwraith/term-snake/core"
)

// PlaceFood puts food on a uniformly random free cell
// Returns false when the snake covers the whole grid
func (s *GameState) PlaceFood() bool {
	w, h := s.cfg.Width, s.cfg.Height
	free := len(s.occupied) - len(s.snake)
	if free <= 0 {
		s.hasFood = false
		return false
	}

	for i := 0; i < FoodRetryLimit; i++ {
		p := core.Point{X: s.rng.IntN(w), Y: s.rng.IntN(h)}
		if !s.occupied[s.index(p)] {
			s.food = p
			s.hasFood = true
			return true
		}
	}

	// Dense board: pick the k-th free cell instead of sampling further
	k := s.rng.IntN(free)
	for i, taken := range s.occupied {
		if taken {
			continue
		}
		if k == 0 {
			s.food = core.Point{X: i % w, Y: i / w}
			s.hasFood = true
			log.Printf("food: sampling exhausted, placed at %v from %d free cells", s.food, free)
			return true
		}
		k--
	}

	s.hasFood = false
	return false
}
