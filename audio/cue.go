package audio

import "time"

// Cue identifies a game event with a sound
type Cue int

const (
	CueEat          Cue = iota // Food eaten
	CueCrash                   // Wall or self collision
	CueBoardCleared            // Snake filled the grid
	cueCount
)

func (c Cue) String() string {
	switch c {
	case CueEat:
		return "eat"
	case CueCrash:
		return "crash"
	case CueBoardCleared:
		return "board_cleared"
	}
	return "unknown"
}

// Cue timing
const (
	eatDuration = 70 * time.Millisecond
	eatAttack   = 5 * time.Millisecond
	eatRelease  = 50 * time.Millisecond

	crashDuration = 280 * time.Millisecond
	crashAttack   = 5 * time.Millisecond
	crashRelease  = 200 * time.Millisecond

	fanfareNote    = 120 * time.Millisecond
	fanfareAttack  = 5 * time.Millisecond
	fanfareRelease = 60 * time.Millisecond
)
