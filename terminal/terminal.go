package terminal

import (
	"errors"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

var (
	// ErrNotTerminal is returned when stdin is not attached to a tty
	ErrNotTerminal = errors.New("stdin is not a terminal")
	// ErrUnsupported is returned when the raw ANSI platform is unavailable on this OS
	ErrUnsupported = errors.New("raw ANSI terminal not supported on this platform")
)

// Terminal is the capability set the game loop needs from a platform
type Terminal interface {
	// Init enters raw mode and hides the cursor
	Init() error

	// Fini restores terminal state. Safe to call multiple times
	Fini()

	// Size returns current terminal dimensions
	Size() (width, height int)

	// PollEvents drains every currently buffered input event into dst without blocking
	PollEvents(dst []Event) []Event

	// Present writes a complete frame starting at the top-left corner
	Present(frame []byte) error

	// SetCursorHome moves the cursor to the frame origin
	SetCursorHome()

	// SetCursorVisible shows/hides cursor
	SetCursorVisible(visible bool)
}

// Options tunes the ANSI terminal
type Options struct {
	// AltScreen draws in the alternate screen buffer; the frame vanishes on exit
	AltScreen bool
}

// maxReadsPerPoll bounds one drain so a flooding input stream cannot stall a tick
const maxReadsPerPoll = 16

// ansiTerminal implements Terminal over a raw Backend
type ansiTerminal struct {
	backend Backend
	opts    Options

	output  *outputBuffer
	decoder *Decoder
	readBuf [256]byte

	resized       atomic.Bool
	needClear     bool
	cursorVisible bool
	presented     bool

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// New creates the raw ANSI terminal for the current platform
func New(opts Options) Terminal {
	return NewWithBackend(newBackend(), opts)
}

// NewWithBackend creates an ANSI terminal over an explicit backend
func NewWithBackend(b Backend, opts Options) Terminal {
	return &ansiTerminal{
		backend:       b,
		opts:          opts,
		output:        newOutputBuffer(b),
		decoder:       NewDecoder(),
		cursorVisible: true,
	}
}

// Init enters raw mode and sets up terminal
func (t *ansiTerminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}

	// Initialize backend (raw mode)
	if err := t.backend.Init(); err != nil {
		return err
	}

	t.backend.SetResizeHandler(func(w, h int) {
		t.resized.Store(true)
	})

	seqs := [][]byte{csiCursorHide, csiClear}
	if t.opts.AltScreen {
		seqs = append([][]byte{csiAltScreenEnter}, seqs...)
	}
	if err := t.output.control(seqs...); err != nil {
		t.backend.Fini()
		return err
	}
	t.cursorVisible = false

	t.initialized = true
	return nil
}

// Fini restores terminal state
func (t *ansiTerminal) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}

	seqs := [][]byte{csiSGR0, csiCursorShow}
	if t.opts.AltScreen {
		seqs = append(seqs, csiAltScreenExit)
	} else if t.presented {
		// Frames end on their last line; move below so later output starts clean
		seqs = append(seqs, crlf)
	}
	t.output.control(seqs...)

	t.backend.Fini()
	t.finalized = true
}

// Size returns current terminal dimensions
func (t *ansiTerminal) Size() (int, int) {
	return t.backend.Size()
}

// PollEvents reads whatever the tty has buffered and decodes it
func (t *ansiTerminal) PollEvents(dst []Event) []Event {
	if t.resized.Swap(false) {
		// Next Present clears leftovers from the old geometry
		t.needClear = true
		dst = append(dst, Event{Type: EventResize})
	}

	got := false
	for i := 0; i < maxReadsPerPoll; i++ {
		n, err := t.backend.Read(t.readBuf[:])
		if err != nil || n == 0 {
			break
		}
		got = true
		dst = t.decoder.Feed(t.readBuf[:n], dst)
	}

	if !got {
		dst = t.decoder.Idle(dst)
	}
	return dst
}

// Present writes the whole frame in one flush
func (t *ansiTerminal) Present(frame []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return nil
	}
	clear := t.needClear
	t.needClear = false
	t.presented = true
	return t.output.present(frame, clear)
}

// SetCursorHome positions the cursor at the frame origin
func (t *ansiTerminal) SetCursorHome() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}
	t.output.control(csiHome)
}

// SetCursorVisible shows/hides cursor
func (t *ansiTerminal) SetCursorVisible(visible bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized || t.cursorVisible == visible {
		return
	}
	t.cursorVisible = visible

	if visible {
		t.output.control(csiCursorShow)
	} else {
		t.output.control(csiCursorHide)
	}
}

// EmergencyReset attempts to restore terminal to sane state
// Call this from panic recovery if Fini() cannot be called normally
func EmergencyReset(w io.Writer) {
	w.Write(csiSGR0)
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)

	// Flush if it's a file
	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Attempt raw mode reset - escape sequences alone don't restore termios
	// This is best-effort; ignore errors in crash context
	resetTerminalMode()
}
