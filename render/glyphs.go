package render

import (
	"errors"
	"fmt"

	"github.com/mattn/go-runewidth"
)

// ErrWideGlyph is returned when a glyph does not occupy exactly one terminal column
var ErrWideGlyph = errors.New("glyph is not single-column")

// Glyphs is the character set a frame is drawn with
type Glyphs struct {
	Border rune
	Head   rune
	Body   rune
	Food   rune
	Empty  rune
}

var (
	// ASCIIGlyphs works on any terminal
	ASCIIGlyphs = Glyphs{Border: '#', Head: 'O', Body: 'o', Food: '*', Empty: ' '}

	// UnicodeGlyphs uses block and geometric shapes; needs a UTF-8 terminal
	UnicodeGlyphs = Glyphs{Border: '█', Head: '●', Body: '○', Food: '◆', Empty: ' '}
)

// ParseGlyphs resolves a -glyphs flag value
func ParseGlyphs(name string) (Glyphs, error) {
	switch name {
	case "ascii":
		return ASCIIGlyphs, nil
	case "unicode":
		return UnicodeGlyphs, nil
	}
	return Glyphs{}, fmt.Errorf("unknown glyph set %q (want ascii or unicode)", name)
}

// Validate rejects glyphs that would break column alignment in the current locale
func (g Glyphs) Validate() error {
	for _, r := range []rune{g.Border, g.Head, g.Body, g.Food, g.Empty} {
		if r == '\n' || runewidth.RuneWidth(r) != 1 {
			return fmt.Errorf("%w: %q", ErrWideGlyph, r)
		}
	}
	return nil
}
