package input

import (
	"testing"

	"github.com/lixenwraith/term-snake/core"
	"github.com/lixenwraith/term-snake/terminal"
)

func key(k terminal.Key) terminal.Event {
	return terminal.Event{Type: terminal.EventKey, Key: k}
}

func char(r rune) terminal.Event {
	return terminal.Event{Type: terminal.EventKey, Key: terminal.KeyRune, Rune: r}
}

func TestTranslateMoves(t *testing.T) {
	kt := DefaultKeyTable()

	tests := []struct {
		name string
		ev   terminal.Event
		dir  core.Direction
	}{
		{"arrow up", key(terminal.KeyUp), core.DirUp},
		{"arrow down", key(terminal.KeyDown), core.DirDown},
		{"arrow left", key(terminal.KeyLeft), core.DirLeft},
		{"arrow right", key(terminal.KeyRight), core.DirRight},
		{"w", char('w'), core.DirUp},
		{"W", char('W'), core.DirUp},
		{"a", char('a'), core.DirLeft},
		{"S", char('S'), core.DirDown},
		{"d", char('d'), core.DirRight},
		{"h", char('h'), core.DirLeft},
		{"j", char('j'), core.DirDown},
		{"k", char('k'), core.DirUp},
		{"l", char('l'), core.DirRight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := kt.Translate(tt.ev)
			if in.Type != IntentMove {
				t.Fatalf("Expected move, got %s", in.Type)
			}
			if in.Dir != tt.dir {
				t.Errorf("Expected %s, got %s", tt.dir, in.Dir)
			}
		})
	}
}

func TestTranslateCommands(t *testing.T) {
	kt := DefaultKeyTable()

	tests := []struct {
		name string
		ev   terminal.Event
		want IntentType
	}{
		{"q", char('q'), IntentQuit},
		{"Q", char('Q'), IntentQuit},
		{"escape", key(terminal.KeyEscape), IntentQuit},
		{"ctrl+c", key(terminal.KeyCtrlC), IntentQuit},
		{"p", char('p'), IntentTogglePause},
		{"P", char('P'), IntentTogglePause},
		{"space", char(' '), IntentTogglePause},
		{"m", char('m'), IntentToggleSound},
		{"unbound rune", char('x'), IntentNone},
		{"unbound key", key(terminal.KeyTab), IntentNone},
		{"enter", key(terminal.KeyEnter), IntentNone},
		{"resize", terminal.Event{Type: terminal.EventResize}, IntentNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := kt.Translate(tt.ev).Type; got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}
