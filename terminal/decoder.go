package terminal

import "unicode/utf8"

// EventType distinguishes input event categories
type EventType uint8

const (
	EventNone EventType = iota
	EventKey
	EventResize
)

// Event represents a terminal input event
type Event struct {
	Type      EventType
	Key       Key
	Rune      rune
	Modifiers Modifier
}

// Decoder turns raw tty bytes into key events.
// Sequences split across reads are held until the next Feed or Idle call; it never waits for bytes.
type Decoder struct {
	// Persistent buffer for stream assembly, holds at most one incomplete sequence between calls
	buf []byte
}

// NewDecoder creates a decoder with a small reusable buffer
func NewDecoder() *Decoder {
	return &Decoder{buf: make([]byte, 0, 64)}
}

// Pending reports whether an incomplete sequence is being held
func (d *Decoder) Pending() bool {
	return len(d.buf) > 0
}

// Feed appends raw bytes and decodes every complete event into dst
func (d *Decoder) Feed(data []byte, dst []Event) []Event {
	d.buf = append(d.buf, data...)

	consumed, dst := parseInput(d.buf, dst)

	// Compact buffer
	if consumed >= len(d.buf) {
		d.buf = d.buf[:0]
	} else if consumed > 0 {
		copy(d.buf, d.buf[consumed:])
		d.buf = d.buf[:len(d.buf)-consumed]
	}
	return dst
}

// Idle resolves held bytes after a poll that produced no new input.
// A lone ESC becomes KeyEscape; any other incomplete sequence is malformed and dropped.
func (d *Decoder) Idle(dst []Event) []Event {
	if len(d.buf) == 0 {
		return dst
	}
	if len(d.buf) == 1 && d.buf[0] == 0x1b {
		dst = append(dst, Event{Type: EventKey, Key: KeyEscape})
	}
	d.buf = d.buf[:0]
	return dst
}

// parseInput parses raw bytes into events and returns bytes consumed (stop on incomplete sequence)
func parseInput(data []byte, dst []Event) (int, []Event) {
	i := 0
	n := len(data)

	for i < n {
		b := data[i]

		// Fast path: printable ASCII
		if b >= 0x20 && b < 0x7f {
			dst = append(dst, Event{Type: EventKey, Key: KeyRune, Rune: rune(b)})
			i++
			continue
		}

		// Escape sequence
		if b == 0x1b {
			// Need at least 2 bytes to determine sequence type
			if i+1 >= n {
				return i, dst
			}

			consumed, ev := parseEscape(data[i:])
			if consumed == 0 {
				// Incomplete sequence, wait for more data
				return i, dst
			}

			// Swallowed unknown sequences produce KeyNone and are not emitted
			if ev.Key != KeyNone {
				dst = append(dst, ev)
			}
			i += consumed
			continue
		}

		// Control characters
		if b < 0x20 {
			if ev := parseControl(b); ev.Key != KeyNone {
				dst = append(dst, ev)
			}
			i++
			continue
		}

		// DEL
		if b == 0x7f {
			dst = append(dst, Event{Type: EventKey, Key: KeyBackspace})
			i++
			continue
		}

		// UTF-8 multibyte
		if !utf8.FullRune(data[i:]) {
			// Incomplete UTF-8, wait for more data
			return i, dst
		}
		r, size := utf8.DecodeRune(data[i:])
		if r != utf8.RuneError {
			dst = append(dst, Event{Type: EventKey, Key: KeyRune, Rune: r})
		}
		i += size
	}
	return i, dst
}

// parseEscape attempts to parse an escape sequence, returns 0 on incomplete
func parseEscape(data []byte) (int, Event) {
	if len(data) < 2 {
		return 0, Event{}
	}

	// ESC ESC -> Alt+Escape
	if data[1] == 0x1b {
		return 2, Event{Type: EventKey, Key: KeyEscape, Modifiers: ModAlt}
	}

	if data[1] == '[' {
		return parseCSI(data)
	}
	if data[1] == 'O' {
		return parseSS3(data)
	}

	// Alt+Control character (ESC + 0x00-0x1F)
	if data[1] < 0x20 {
		ev := parseControl(data[1])
		ev.Modifiers |= ModAlt
		return 2, ev
	}

	// Alt+printable
	if data[1] < 0x7f {
		return 2, Event{Type: EventKey, Key: KeyRune, Rune: rune(data[1]), Modifiers: ModAlt}
	}

	// ESC followed by a non-ASCII byte: report the escape and let the byte parse on its own
	return 1, Event{Type: EventKey, Key: KeyEscape}
}

// maxCSILength bounds the scan for a CSI terminator
const maxCSILength = 16

// parseCSI parses CSI sequence without allocation
func parseCSI(data []byte) (int, Event) {
	if len(data) < 3 {
		return 0, Event{}
	}

	limit := len(data)
	if limit > maxCSILength {
		limit = maxCSILength
	}

	for end := 2; end < limit; end++ {
		b := data[end]
		if (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '~' {
			if key, mod, ok := lookupCSI(data[2 : end+1]); ok {
				return end + 1, Event{Type: EventKey, Key: key, Modifiers: mod}
			}
			// Unknown but valid CSI syntax - consume and return KeyNone
			return end + 1, Event{Type: EventKey, Key: KeyNone}
		}
		if b < 0x20 || b > 0x7e {
			// Broken sequence: drop ESC [ and let the rest parse on its own
			return 2, Event{Type: EventKey, Key: KeyNone}
		}
	}

	if len(data) >= maxCSILength {
		// Runaway parameters without a terminator
		return maxCSILength, Event{Type: EventKey, Key: KeyNone}
	}
	return 0, Event{} // Incomplete
}

// parseSS3 parses SS3 sequence without allocation, returns length even for unknown sequences
func parseSS3(data []byte) (int, Event) {
	if len(data) < 3 {
		return 0, Event{}
	}
	if key, mod, ok := lookupSS3(data[2:3]); ok {
		return 3, Event{Type: EventKey, Key: key, Modifiers: mod}
	}
	// Unknown SS3 - consume to prevent garbage
	return 3, Event{Type: EventKey, Key: KeyNone}
}

// parseControl maps control characters to keys
func parseControl(b byte) Event {
	switch b {
	case 0x03:
		return Event{Type: EventKey, Key: KeyCtrlC}
	case 0x04:
		return Event{Type: EventKey, Key: KeyCtrlD}
	case 0x08: // Ctrl+H or Backspace
		return Event{Type: EventKey, Key: KeyBackspace}
	case 0x09:
		return Event{Type: EventKey, Key: KeyTab}
	case 0x0a, 0x0d: // LF, CR (Enter)
		return Event{Type: EventKey, Key: KeyEnter}
	case 0x11:
		return Event{Type: EventKey, Key: KeyCtrlQ}
	case 0x1a:
		return Event{Type: EventKey, Key: KeyCtrlZ}
	case 0x1b:
		return Event{Type: EventKey, Key: KeyEscape}
	}
	return Event{Type: EventKey, Key: KeyNone}
}
