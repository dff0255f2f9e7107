package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/term-snake/core"
	"github.com/lixenwraith/term-snake/engine"
)

func newScenarioState(t *testing.T) *engine.GameState {
	t.Helper()
	cfg := engine.DefaultConfig()
	cfg.Width, cfg.Height, cfg.InitialLength = 10, 10, 3
	s, err := engine.NewGameState(cfg, engine.NewRand(1))
	if err != nil {
		t.Fatalf("NewGameState failed: %v", err)
	}
	body := []core.Point{{X: 5, Y: 5}, {X: 4, Y: 5}, {X: 3, Y: 5}}
	if err := s.Arrange(body, core.DirRight, core.Point{X: 7, Y: 2}); err != nil {
		t.Fatalf("Arrange failed: %v", err)
	}
	return s
}

func newTestCompositor(t *testing.T, cfg engine.Config) *Compositor {
	t.Helper()
	c, err := NewCompositor(cfg, ASCIIGlyphs)
	if err != nil {
		t.Fatalf("NewCompositor failed: %v", err)
	}
	return c
}

func frameLines(frame []byte) []string {
	return strings.Split(strings.TrimSuffix(string(frame), "\n"), "\n")
}

func TestComposeLayout(t *testing.T) {
	s := newScenarioState(t)
	c := newTestCompositor(t, s.Config())

	lines := frameLines(c.Compose(s))

	if len(lines) != 14 {
		t.Fatalf("Expected 12 grid rows + 2 text lines, got %d", len(lines))
	}
	for i := 0; i < 12; i++ {
		if len(lines[i]) != 12 {
			t.Errorf("Row %d: expected width 12, got %d (%q)", i, len(lines[i]), lines[i])
		}
	}
	if lines[0] != strings.Repeat("#", 12) || lines[11] != strings.Repeat("#", 12) {
		t.Errorf("Expected solid top and bottom border, got %q / %q", lines[0], lines[11])
	}

	// Grid cell (x,y) sits at row y+1, column x+1
	cell := func(x, y int) byte { return lines[y+1][x+1] }
	if cell(5, 5) != 'O' {
		t.Errorf("Expected head at (5,5), got %q", cell(5, 5))
	}
	if cell(4, 5) != 'o' || cell(3, 5) != 'o' {
		t.Errorf("Expected body at (4,5),(3,5), got %q %q", cell(4, 5), cell(3, 5))
	}
	if cell(7, 2) != '*' {
		t.Errorf("Expected food at (7,2), got %q", cell(7, 2))
	}
	if cell(0, 0) != ' ' {
		t.Errorf("Expected empty cell, got %q", cell(0, 0))
	}
	for y := 1; y <= 10; y++ {
		if lines[y][0] != '#' || lines[y][11] != '#' {
			t.Errorf("Row %d: expected side borders, got %q", y, lines[y])
		}
	}

	status := lines[12]
	if !strings.HasPrefix(status, "Score: 0    Length: 3    Speed(ms/frame): 120") {
		t.Errorf("Unexpected status line %q", status)
	}
	if runewidth.StringWidth(status) != c.TextWidth() {
		t.Errorf("Expected status padded to %d, got %d", c.TextWidth(), runewidth.StringWidth(status))
	}
	if !strings.HasPrefix(lines[13], ControlsLine) || len(lines[13]) != c.TextWidth() {
		t.Errorf("Expected padded controls line, got %q", lines[13])
	}
}

func TestComposeDeterministic(t *testing.T) {
	s := newScenarioState(t)
	c := newTestCompositor(t, s.Config())

	first := bytes.Clone(c.Compose(s))
	second := c.Compose(s)

	if !bytes.Equal(first, second) {
		t.Error("Expected identical frames from an unmodified state")
	}

	other := newTestCompositor(t, s.Config())
	if !bytes.Equal(first, other.Compose(s)) {
		t.Error("Expected identical frames from a second compositor")
	}
}

func TestComposeReusesBuffer(t *testing.T) {
	s := newScenarioState(t)
	c := newTestCompositor(t, s.Config())

	a := c.Compose(s)
	s.Update()
	b := c.Compose(s)

	if &a[0] != &b[0] {
		t.Error("Expected frames to share one backing buffer")
	}
}

func TestComposeOverlays(t *testing.T) {
	tests := []struct {
		name     string
		prepare  func(s *engine.GameState)
		want     string
		controls string
	}{
		{"running", func(s *engine.GameState) {}, "", ControlsLine},
		{"paused", func(s *engine.GameState) { s.TogglePause() }, "[PAUSED]", ControlsLine},
		{"quit", func(s *engine.GameState) { s.Quit() }, "[GAME OVER]", ControlsLine},
		{"crash", func(s *engine.GameState) {
			s.Steer(core.DirUp)
			for s.Running() {
				s.Update()
			}
		}, "[GAME OVER]", ClosingLine},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newScenarioState(t)
			c := newTestCompositor(t, s.Config())
			tt.prepare(s)

			lines := frameLines(c.Compose(s))
			if !strings.HasPrefix(lines[13], tt.controls) {
				t.Errorf("Expected text line %q, got %q", tt.controls, lines[13])
			}
			status := lines[12]
			for _, o := range []string{"[PAUSED]", "[GAME OVER]", "[BOARD CLEARED]"} {
				has := strings.Contains(status, o)
				if has != (o == tt.want) {
					t.Errorf("Overlay %s: expected present=%v in %q", o, o == tt.want, status)
				}
			}
		})
	}
}

func TestComposeBoardCleared(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.Width, cfg.Height, cfg.InitialLength = 3, 1, 2
	s, err := engine.NewGameState(cfg, engine.NewRand(1))
	if err != nil {
		t.Fatalf("NewGameState failed: %v", err)
	}
	s.Update()

	c := newTestCompositor(t, cfg)
	lines := frameLines(c.Compose(s))
	if lines[1] != "#ooO#" {
		t.Errorf("Expected full row of snake, got %q", lines[1])
	}
	if !strings.Contains(lines[3], "[BOARD CLEARED]") {
		t.Errorf("Expected board cleared overlay, got %q", lines[3])
	}
	if !strings.HasPrefix(lines[4], ClosingLine) {
		t.Errorf("Expected closing hint, got %q", lines[4])
	}
}

// fakeState lets tests place food under the snake
type fakeState struct {
	cfg   engine.Config
	snake []core.Point
	food  core.Point
	score int
	over  bool
}

func (f *fakeState) Config() engine.Config { return f.cfg }
func (f *fakeState) Snake() []core.Point   { return f.snake }
func (f *fakeState) Occupied(p core.Point) bool {
	for _, s := range f.snake {
		if s == p {
			return true
		}
	}
	return false
}
func (f *fakeState) Food() (core.Point, bool)    { return f.food, true }
func (f *fakeState) Score() int                  { return f.score }
func (f *fakeState) Length() int                 { return len(f.snake) }
func (f *fakeState) TickInterval() time.Duration { return 100 * time.Millisecond }
func (f *fakeState) Paused() bool                { return false }
func (f *fakeState) Running() bool               { return !f.over }
func (f *fakeState) Outcome() engine.Outcome {
	if f.over {
		return engine.OutcomeCollision
	}
	return engine.OutcomeNone
}

func TestComposePrecedence(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.Width, cfg.Height = 4, 1
	c := newTestCompositor(t, cfg)

	onHead := &fakeState{cfg: cfg, snake: []core.Point{{X: 1, Y: 0}, {X: 0, Y: 0}}, food: core.Point{X: 1, Y: 0}}
	if row := frameLines(c.Compose(onHead))[1]; row != "#oO  #" {
		t.Errorf("Expected head over food, got %q", row)
	}

	onBody := &fakeState{cfg: cfg, snake: []core.Point{{X: 1, Y: 0}, {X: 0, Y: 0}}, food: core.Point{X: 0, Y: 0}}
	if row := frameLines(c.Compose(onBody))[1]; row != "#oO  #" {
		t.Errorf("Expected body over food, got %q", row)
	}
}

func TestComposeStatusNeverWraps(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.Width, cfg.Height, cfg.MaxLength = 4, 1, 2
	c := newTestCompositor(t, cfg)

	// Eating at the length cap keeps scoring past any area-based bound
	s := &fakeState{
		cfg:   cfg,
		snake: []core.Point{{X: 1, Y: 0}, {X: 0, Y: 0}},
		food:  core.Point{X: 3, Y: 0},
		score: 1 << 62,
		over:  true,
	}
	lines := frameLines(c.Compose(s))

	if w := runewidth.StringWidth(lines[3]); w != c.TextWidth() {
		t.Errorf("Expected status width %d, got %d (%q)", c.TextWidth(), w, lines[3])
	}
	if !strings.HasPrefix(lines[3], "Score: 4611686018427387904") {
		t.Errorf("Expected score kept at the start of the line, got %q", lines[3])
	}
}

// screenEmulator tracks cursor rows on a fixed-size terminal with ONLCR and autowrap
type screenEmulator struct {
	rows, cols int
	row, col   int
	scrolls    int
	top        []byte
}

func (e *screenEmulator) down() {
	if e.row == e.rows-1 {
		e.scrolls++
		return
	}
	e.row++
}

// present homes the cursor and writes frame the way the ANSI terminal does
func (e *screenEmulator) present(frame []byte) {
	e.row, e.col = 0, 0
	e.top = e.top[:0]
	for _, r := range string(frame) {
		if r == '\n' {
			e.down()
			e.col = 0
			continue
		}
		if e.col == e.cols {
			e.down()
			e.col = 0
		}
		if e.row == 0 && e.scrolls == 0 {
			e.top = utf8.AppendRune(e.top, r)
		}
		e.col++
	}
}

func TestFrameFitsWithoutScrolling(t *testing.T) {
	cfg := engine.DefaultConfig()
	s, err := engine.NewGameState(cfg, engine.NewRand(1))
	if err != nil {
		t.Fatalf("NewGameState failed: %v", err)
	}
	c := newTestCompositor(t, cfg)

	// The default grid needs exactly the classic 24 rows
	if c.FrameHeight() != 24 {
		t.Fatalf("Expected default frame height 24, got %d", c.FrameHeight())
	}

	e := &screenEmulator{rows: c.FrameHeight(), cols: c.TextWidth()}
	for i := 0; i < 3; i++ {
		e.present(c.Compose(s))
		s.Update()
	}
	e.present(c.ComposeSplash([]string{"SNAKE"}))

	if e.scrolls != 0 {
		t.Errorf("Expected no scrolling at the minimum height, got %d scrolls", e.scrolls)
	}
	if e.row != c.FrameHeight()-1 {
		t.Errorf("Expected cursor on the last row, got row %d", e.row)
	}
	if want := strings.Repeat("#", cfg.Width+2); string(e.top) != want {
		t.Errorf("Expected top border on the first row, got %q", e.top)
	}
}

func TestComposeUnicodeGlyphs(t *testing.T) {
	if err := UnicodeGlyphs.Validate(); err != nil {
		t.Skipf("Unicode glyphs are wide in this locale: %v", err)
	}

	s := newScenarioState(t)
	c, err := NewCompositor(s.Config(), UnicodeGlyphs)
	if err != nil {
		t.Fatalf("NewCompositor failed: %v", err)
	}

	lines := frameLines(c.Compose(s))
	for i := 0; i < 12; i++ {
		if w := runewidth.StringWidth(lines[i]); w != 12 {
			t.Errorf("Row %d: expected display width 12, got %d", i, w)
		}
	}
	if !strings.Contains(lines[6], "●") {
		t.Errorf("Expected head glyph in row 6, got %q", lines[6])
	}
}

func TestGlyphValidation(t *testing.T) {
	wide := ASCIIGlyphs
	wide.Head = '蛇'
	if err := wide.Validate(); !errors.Is(err, ErrWideGlyph) {
		t.Errorf("Expected ErrWideGlyph for a double-width glyph, got %v", err)
	}

	combining := ASCIIGlyphs
	combining.Food = '\u0301'
	if _, err := NewCompositor(engine.DefaultConfig(), combining); !errors.Is(err, ErrWideGlyph) {
		t.Errorf("Expected ErrWideGlyph for a zero-width glyph, got %v", err)
	}

	if _, err := ParseGlyphs("emoji"); err == nil {
		t.Error("Expected error for unknown glyph set")
	}
	if g, err := ParseGlyphs("ascii"); err != nil || g != ASCIIGlyphs {
		t.Errorf("Expected ASCII glyphs, got %v (%v)", g, err)
	}
}

func TestComposeSplash(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.Width, cfg.Height = 20, 6
	c := newTestCompositor(t, cfg)

	lines := frameLines(c.ComposeSplash([]string{"SNAKE", "", "press any key to start the game now"}))

	if len(lines) != 10 {
		t.Fatalf("Expected 8 frame rows + 2 text lines, got %d", len(lines))
	}
	for i := 0; i < 8; i++ {
		if len(lines[i]) != 22 {
			t.Errorf("Row %d: expected width 22, got %d (%q)", i, len(lines[i]), lines[i])
		}
	}
	// Three lines centered in six rows start at row 1 of the interior
	if !strings.Contains(lines[2], "SNAKE") {
		t.Errorf("Expected title on row 2, got %q", lines[2])
	}
	if lines[2] != "#       SNAKE        #" {
		t.Errorf("Expected centered title, got %q", lines[2])
	}
	if strings.TrimSpace(lines[8]) != "" || len(lines[8]) != c.TextWidth() {
		t.Errorf("Expected blank padded text line, got %q", lines[8])
	}
}

func BenchmarkCompose(b *testing.B) {
	cfg := engine.DefaultConfig()
	s, err := engine.NewGameState(cfg, engine.NewRand(1))
	if err != nil {
		b.Fatalf("NewGameState failed: %v", err)
	}
	c, err := NewCompositor(cfg, UnicodeGlyphs)
	if err != nil {
		b.Fatalf("NewCompositor failed: %v", err)
	}
	b.ReportAllocs()
	for b.Loop() {
		c.Compose(s)
	}
}
