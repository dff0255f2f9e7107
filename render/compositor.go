package render

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/term-snake/core"
	"github.com/lixenwraith/term-snake/engine"
)

// ControlsLine is the key hint printed under the status line
const ControlsLine = "Controls: Arrow keys, WASD or hjkl. P to pause, M for sound, Q to quit."

// ClosingLine replaces the controls once a round ends with a closing key press pending
const ClosingLine = "Press any key to exit..."

// Status overlays appended to the status line
const (
	overlayPaused      = " [PAUSED]"
	overlayGameOver    = " [GAME OVER]"
	overlayBoardFull   = " [BOARD CLEARED]"
	longestOverlayText = overlayBoardFull
)

// State is the read-only view of a round the compositor draws
type State interface {
	Config() engine.Config
	Snake() []core.Point
	Occupied(p core.Point) bool
	Food() (core.Point, bool)
	Score() int
	Length() int
	TickInterval() time.Duration
	Paused() bool
	Running() bool
	Outcome() engine.Outcome
}

// Compositor renders whole frames into one reused buffer
// The returned slice is valid until the next Compose or ComposeSplash call
type Compositor struct {
	glyphs Glyphs
	width  int
	height int

	// Display width every text line is padded to
	textWidth int

	buf []byte

	// Encoded glyphs
	border, head, body, food, empty []byte
}

// NewCompositor sizes the frame buffer for cfg's grid
func NewCompositor(cfg engine.Config, g Glyphs) (*Compositor, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	c := &Compositor{
		glyphs: g,
		width:  cfg.Width,
		height: cfg.Height,
		border: utf8.AppendRune(nil, g.Border),
		head:   utf8.AppendRune(nil, g.Head),
		body:   utf8.AppendRune(nil, g.Body),
		food:   utf8.AppendRune(nil, g.Food),
		empty:  utf8.AppendRune(nil, g.Empty),
	}

	// Room for every cell eaten at the starting speed; a score past that is
	// possible with a length cap and gets truncated rather than wrapped
	area := cfg.Area()
	widest := statusText(cfg.ScoreReward*area, area, cfg.InitialTick) + longestOverlayText
	c.textWidth = max(cfg.Width+2, runewidth.StringWidth(widest),
		runewidth.StringWidth(ControlsLine), runewidth.StringWidth(ClosingLine))

	rows := cfg.Height + 2
	c.buf = make([]byte, 0, rows*((cfg.Width+2)*utf8.UTFMax+1)+2*(c.textWidth+1))
	return c, nil
}

// TextWidth is the padded width of the status and controls lines
func (c *Compositor) TextWidth() int {
	return c.textWidth
}

// FrameHeight is the number of terminal rows a frame occupies
// The last line carries no newline, so a terminal exactly this tall never scrolls
func (c *Compositor) FrameHeight() int {
	return c.height + 4
}

// Compose renders the grid, status line and controls line for s
func (c *Compositor) Compose(s State) []byte {
	b := c.buf[:0]

	snake := s.Snake()
	var head core.Point
	if len(snake) > 0 {
		head = snake[0]
	}
	food, hasFood := s.Food()

	b = c.appendBorderRow(b)
	for y := 0; y < c.height; y++ {
		b = append(b, c.border...)
		for x := 0; x < c.width; x++ {
			p := core.Point{X: x, Y: y}
			switch {
			case len(snake) > 0 && p == head:
				b = append(b, c.head...)
			case s.Occupied(p):
				b = append(b, c.body...)
			case hasFood && p == food:
				b = append(b, c.food...)
			default:
				b = append(b, c.empty...)
			}
		}
		b = append(b, c.border...)
		b = append(b, '\n')
	}
	b = c.appendBorderRow(b)

	line := statusText(s.Score(), s.Length(), s.TickInterval())
	switch {
	case s.Paused():
		line += overlayPaused
	case !s.Running() && s.Outcome() == engine.OutcomeBoardFull:
		line += overlayBoardFull
	case !s.Running():
		line += overlayGameOver
	}
	if runewidth.StringWidth(line) > c.textWidth {
		line = runewidth.Truncate(line, c.textWidth, "")
	}
	b = c.appendPadded(b, line)
	b = append(b, '\n')
	if !s.Running() && s.Outcome() != engine.OutcomeQuit {
		b = c.appendPadded(b, ClosingLine)
	} else {
		b = c.appendPadded(b, ControlsLine)
	}

	c.buf = b
	return b
}

// ComposeSplash renders lines centered inside the bordered frame, with blank text lines below
// The frame has the same shape as Compose output
// Lines wider than the grid are truncated
func (c *Compositor) ComposeSplash(lines []string) []byte {
	b := c.buf[:0]

	top := (c.height - len(lines)) / 2
	if top < 0 {
		top = 0
	}

	b = c.appendBorderRow(b)
	for y := 0; y < c.height; y++ {
		b = append(b, c.border...)
		i := y - top
		if i >= 0 && i < len(lines) {
			text := runewidth.Truncate(lines[i], c.width, "")
			w := runewidth.StringWidth(text)
			left := (c.width - w) / 2
			b = appendSpaces(b, left)
			b = append(b, text...)
			b = appendSpaces(b, c.width-w-left)
		} else {
			b = appendSpaces(b, c.width)
		}
		b = append(b, c.border...)
		b = append(b, '\n')
	}
	b = c.appendBorderRow(b)

	b = c.appendPadded(b, "")
	b = append(b, '\n')
	b = c.appendPadded(b, "")

	c.buf = b
	return b
}

func (c *Compositor) appendBorderRow(b []byte) []byte {
	for x := 0; x < c.width+2; x++ {
		b = append(b, c.border...)
	}
	return append(b, '\n')
}

// appendPadded writes one text line padded by display width so it covers any previous line
func (c *Compositor) appendPadded(b []byte, line string) []byte {
	b = append(b, line...)
	return appendSpaces(b, c.textWidth-runewidth.StringWidth(line))
}

func appendSpaces(b []byte, n int) []byte {
	for ; n > 0; n-- {
		b = append(b, ' ')
	}
	return b
}

// statusText formats the score line without overlays
func statusText(score, length int, tick time.Duration) string {
	var sb strings.Builder
	sb.WriteString("Score: ")
	sb.WriteString(strconv.Itoa(score))
	sb.WriteString("    Length: ")
	sb.WriteString(strconv.Itoa(length))
	sb.WriteString("    Speed(ms/frame): ")
	sb.WriteString(strconv.FormatInt(tick.Milliseconds(), 10))
	return sb.String()
}
