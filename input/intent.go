package input

import "github.com/lixenwraith/term-snake/core"

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	IntentQuit        // q, Q, Esc, Ctrl+C, Ctrl+Q
	IntentMove        // arrows, wasd, hjkl
	IntentTogglePause // p, P, Space
	IntentToggleSound // m, M
)

func (t IntentType) String() string {
	switch t {
	case IntentQuit:
		return "quit"
	case IntentMove:
		return "move"
	case IntentTogglePause:
		return "pause"
	case IntentToggleSound:
		return "sound"
	}
	return "none"
}

// Intent is a key translated into a game action
type Intent struct {
	Type IntentType
	// Dir is set for IntentMove only
	Dir core.Direction
}
