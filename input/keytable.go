package input

import (
	"github.com/lixenwraith/term-snake/core"
	"github.com/lixenwraith/term-snake/terminal"
)

// KeyEntry describes what a key does
type KeyEntry struct {
	IntentType IntentType
	Dir        core.Direction
}

// KeyTable maps keys to intents
// Lookups are stateless; one event yields at most one intent
type KeyTable struct {
	// Special keys (Ctrl+*, arrows, Escape)
	SpecialKeys map[terminal.Key]KeyEntry

	// Printable rune bindings, case variants listed explicitly
	Runes map[rune]KeyEntry
}

func move(d core.Direction) KeyEntry {
	return KeyEntry{IntentType: IntentMove, Dir: d}
}

var (
	quit  = KeyEntry{IntentType: IntentQuit}
	pause = KeyEntry{IntentType: IntentTogglePause}
	sound = KeyEntry{IntentType: IntentToggleSound}
)

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[terminal.Key]KeyEntry{
			terminal.KeyUp:     move(core.DirUp),
			terminal.KeyDown:   move(core.DirDown),
			terminal.KeyLeft:   move(core.DirLeft),
			terminal.KeyRight:  move(core.DirRight),
			terminal.KeyEscape: quit,
			terminal.KeyCtrlC:  quit,
			terminal.KeyCtrlQ:  quit,
		},

		Runes: map[rune]KeyEntry{
			// WASD, either case
			'w': move(core.DirUp),
			'W': move(core.DirUp),
			'a': move(core.DirLeft),
			'A': move(core.DirLeft),
			's': move(core.DirDown),
			'S': move(core.DirDown),
			'd': move(core.DirRight),
			'D': move(core.DirRight),

			// vi motions
			'h': move(core.DirLeft),
			'j': move(core.DirDown),
			'k': move(core.DirUp),
			'l': move(core.DirRight),

			'q': quit,
			'Q': quit,
			'p': pause,
			'P': pause,
			' ': pause,
			'm': sound,
			'M': sound,
		},
	}
}

// Translate maps one terminal event to an intent
// Unbound keys and non-key events yield IntentNone
func (kt *KeyTable) Translate(ev terminal.Event) Intent {
	if ev.Type != terminal.EventKey {
		return Intent{}
	}

	var (
		entry KeyEntry
		ok    bool
	)
	if ev.Key == terminal.KeyRune {
		entry, ok = kt.Runes[ev.Rune]
	} else {
		entry, ok = kt.SpecialKeys[ev.Key]
	}
	if !ok {
		return Intent{}
	}
	return Intent{Type: entry.IntentType, Dir: entry.Dir}
}
