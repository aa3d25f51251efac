package gfx

// Glyph geometry.
const (
	GlyphWidth  = 5
	GlyphHeight = 7
	// CharPitch is the cursor advance per character: the glyph plus one
	// blank column.
	CharPitch = GlyphWidth + 1
)

// Glyph is a 5×7 character bitmap, one byte per column from left to right.
// Bit 6 is the top row and bit 0 the bottom row.
type Glyph [GlyphWidth]byte

// Lit reports whether the dot at column col, row row is set.
func (g Glyph) Lit(col, row int) bool {
	return g[col]&(0x40>>uint(row)) != 0
}

// Font maps runes to glyphs. A-Z (case folded), 0-9 and space are defined;
// every other rune maps to the placeholder. A Font is immutable.
type Font struct {
	letters     [26]Glyph
	digits      [10]Glyph
	placeholder Glyph
}

// NewFont returns a font with glyphs for A-Z and 0-9, in order. Runes outside
// the font draw placeholder.
func NewFont(letters [26]Glyph, digits [10]Glyph, placeholder Glyph) *Font {
	return &Font{letters: letters, digits: digits, placeholder: placeholder}
}

// Glyph returns the glyph for r. ok is false when r is not in the font and
// the placeholder was returned.
func (f *Font) Glyph(r rune) (g Glyph, ok bool) {
	switch {
	case r >= 'A' && r <= 'Z':
		return f.letters[r-'A'], true
	case r >= 'a' && r <= 'z':
		return f.letters[r-'a'], true
	case r >= '0' && r <= '9':
		return f.digits[r-'0'], true
	case r == ' ':
		return Glyph{}, true
	}
	return f.placeholder, false
}

// Checkerboard shown for runes outside the font, so they cannot be mistaken
// for spaces.
var placeholder = Glyph{0x2a, 0x55, 0x2a, 0x55, 0x2a}

var letters = [26]Glyph{
	{0x3f, 0x48, 0x48, 0x48, 0x3f}, // A
	{0x7f, 0x49, 0x49, 0x49, 0x36}, // B
	{0x3e, 0x41, 0x41, 0x41, 0x22}, // C
	{0x7f, 0x41, 0x41, 0x22, 0x1c}, // D
	{0x7f, 0x49, 0x49, 0x49, 0x41}, // E
	{0x7f, 0x48, 0x48, 0x48, 0x40}, // F
	{0x3e, 0x41, 0x49, 0x49, 0x2e}, // G
	{0x7f, 0x08, 0x08, 0x08, 0x7f}, // H
	{0x00, 0x41, 0x7f, 0x41, 0x00}, // I
	{0x06, 0x01, 0x01, 0x01, 0x7e}, // J
	{0x7f, 0x08, 0x14, 0x22, 0x41}, // K
	{0x7f, 0x01, 0x01, 0x01, 0x01}, // L
	{0x7f, 0x20, 0x10, 0x20, 0x7f}, // M
	{0x7f, 0x10, 0x08, 0x04, 0x7f}, // N
	{0x3e, 0x41, 0x41, 0x41, 0x3e}, // O
	{0x7f, 0x48, 0x48, 0x48, 0x30}, // P
	{0x3e, 0x41, 0x45, 0x42, 0x3d}, // Q
	{0x7f, 0x48, 0x4c, 0x4a, 0x31}, // R
	{0x31, 0x49, 0x49, 0x49, 0x46}, // S
	{0x40, 0x40, 0x7f, 0x40, 0x40}, // T
	{0x7e, 0x01, 0x01, 0x01, 0x7e}, // U
	{0x7c, 0x02, 0x01, 0x02, 0x7c}, // V
	{0x7f, 0x02, 0x04, 0x02, 0x7f}, // W
	{0x63, 0x14, 0x08, 0x14, 0x63}, // X
	{0x60, 0x10, 0x0f, 0x10, 0x60}, // Y
	{0x43, 0x45, 0x49, 0x51, 0x61}, // Z
}

// DefaultFont has rounded digits with a slashed zero.
var DefaultFont = &Font{
	letters: letters,
	digits: [10]Glyph{
		{0x3e, 0x45, 0x49, 0x51, 0x3e},
		{0x00, 0x10, 0x20, 0x7f, 0x00},
		{0x47, 0x49, 0x49, 0x49, 0x31},
		{0x42, 0x49, 0x59, 0x69, 0x46},
		{0x08, 0x18, 0x28, 0x7f, 0x08},
		{0x71, 0x49, 0x49, 0x49, 0x46},
		{0x3e, 0x49, 0x49, 0x49, 0x06},
		{0x40, 0x47, 0x48, 0x50, 0x60},
		{0x36, 0x49, 0x49, 0x49, 0x36},
		{0x30, 0x49, 0x49, 0x49, 0x3e},
	},
	placeholder: placeholder,
}

// BlockFont has square, seven segment style digits.
var BlockFont = &Font{
	letters: letters,
	digits: [10]Glyph{
		{0x7f, 0x41, 0x41, 0x41, 0x7f},
		{0x00, 0x00, 0x00, 0x00, 0x7f},
		{0x4f, 0x49, 0x49, 0x49, 0x79},
		{0x49, 0x49, 0x49, 0x49, 0x7f},
		{0x78, 0x08, 0x08, 0x08, 0x7f},
		{0x79, 0x49, 0x49, 0x49, 0x4f},
		{0x7f, 0x49, 0x49, 0x49, 0x4f},
		{0x40, 0x40, 0x40, 0x40, 0x7f},
		{0x7f, 0x49, 0x49, 0x49, 0x7f},
		{0x79, 0x49, 0x49, 0x49, 0x7f},
	},
	placeholder: placeholder,
}
