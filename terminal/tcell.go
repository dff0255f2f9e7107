package terminal

import (
	"sync"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/term-snake/core"
)

// tcellEventBuffer is the pump depth between tcell and the game loop
const tcellEventBuffer = 256

// tcellTerminal implements Terminal on top of a tcell.Screen
// tcell owns raw mode and output diffing; a pump goroutine moves its blocking
// PollEvent results into a channel that PollEvents drains without waiting
type tcellTerminal struct {
	newScreen func() (tcell.Screen, error)
	screen    tcell.Screen
	style     tcell.Style

	events chan tcell.Event
	quit   chan struct{}
	done   chan struct{}

	mu            sync.Mutex
	initialized   bool
	finalized     bool
	cursorVisible bool
}

// NewTcell creates a Terminal backed by tcell's default screen for this platform
func NewTcell() Terminal {
	return &tcellTerminal{newScreen: tcell.NewScreen}
}

// NewTcellWithScreen wraps an existing screen, used with tcell's simulation screen in tests
func NewTcellWithScreen(s tcell.Screen) Terminal {
	return &tcellTerminal{newScreen: func() (tcell.Screen, error) { return s, nil }}
}

func (t *tcellTerminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}

	s, err := t.newScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	t.screen = s
	t.style = tcell.StyleDefault
	s.SetStyle(t.style)
	s.HideCursor()
	s.Clear()

	t.events = make(chan tcell.Event, tcellEventBuffer)
	t.quit = make(chan struct{})
	t.done = make(chan struct{})
	core.Go(t.pump)

	t.initialized = true
	return nil
}

// pump forwards tcell events until Fini; PollEvent returns nil once the screen is finalized
func (t *tcellTerminal) pump() {
	defer close(t.done)
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case t.events <- ev:
		case <-t.quit:
			return
		}
	}
}

func (t *tcellTerminal) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}
	close(t.quit)
	t.screen.Fini()
	<-t.done
	t.finalized = true
}

func (t *tcellTerminal) Size() (int, int) {
	if t.screen == nil {
		return 0, 0
	}
	return t.screen.Size()
}

// PollEvents drains the pump channel without blocking
func (t *tcellTerminal) PollEvents(dst []Event) []Event {
	if !t.initialized {
		return dst
	}
	for {
		select {
		case ev := <-t.events:
			if converted, ok := t.convert(ev); ok {
				dst = append(dst, converted)
			}
		default:
			return dst
		}
	}
}

// Present places every frame rune from the origin and shows the screen once
func (t *tcellTerminal) Present(frame []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return nil
	}

	x, y := 0, 0
	for i := 0; i < len(frame); {
		r, size := utf8.DecodeRune(frame[i:])
		i += size
		if r == '\n' {
			x = 0
			y++
			continue
		}
		t.screen.SetContent(x, y, r, nil, t.style)
		x++
	}
	t.screen.Show()
	return nil
}

// SetCursorHome parks a visible cursor at the origin; a hidden cursor stays hidden
func (t *tcellTerminal) SetCursorHome() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.screen != nil && t.cursorVisible {
		t.screen.ShowCursor(0, 0)
	}
}

func (t *tcellTerminal) SetCursorVisible(visible bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.screen == nil {
		return
	}
	t.cursorVisible = visible
	if visible {
		t.screen.ShowCursor(0, 0)
	} else {
		t.screen.HideCursor()
	}
}

var tcellKeys = map[tcell.Key]Key{
	tcell.KeyUp:         KeyUp,
	tcell.KeyDown:       KeyDown,
	tcell.KeyLeft:       KeyLeft,
	tcell.KeyRight:      KeyRight,
	tcell.KeyEscape:     KeyEscape,
	tcell.KeyEnter:      KeyEnter,
	tcell.KeyTab:        KeyTab,
	tcell.KeyBacktab:    KeyBacktab,
	tcell.KeyBackspace:  KeyBackspace,
	tcell.KeyBackspace2: KeyBackspace,
	tcell.KeyCtrlC:      KeyCtrlC,
	tcell.KeyCtrlD:      KeyCtrlD,
	tcell.KeyCtrlQ:      KeyCtrlQ,
	tcell.KeyCtrlZ:      KeyCtrlZ,
}

// convert maps a tcell event onto the package event vocabulary
func (t *tcellTerminal) convert(ev tcell.Event) (Event, bool) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		var mod Modifier
		if e.Modifiers()&tcell.ModAlt != 0 {
			mod |= ModAlt
		}
		if e.Modifiers()&tcell.ModShift != 0 {
			mod |= ModShift
		}
		if e.Key() == tcell.KeyRune {
			return Event{Type: EventKey, Key: KeyRune, Rune: e.Rune(), Modifiers: mod}, true
		}
		if k, ok := tcellKeys[e.Key()]; ok {
			return Event{Type: EventKey, Key: k, Modifiers: mod}, true
		}
		return Event{}, false
	case *tcell.EventResize:
		t.screen.Sync()
		return Event{Type: EventResize}, true
	}
	return Event{}, false
}
