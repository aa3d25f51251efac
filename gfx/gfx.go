// Package gfx draws lines, circles, rectangles and text on a 1-bit pixel
// surface.
//
// The toolbox only talks to the Surface interface; it does not know how many
// panels back the surface or how their pixels are packed. Drawing only
// updates memory; call SyncAll on the canvas to show the result.
//
// Coordinates may be negative or run past the surface. The toolbox drops
// every pixel outside Bounds before it reaches the surface, so shapes are
// clipped on all four edges. This matters at the bottom: a panel wraps rows
// past its height back to the top.
package gfx

import (
	"image"
	"unicode/utf8"
)

// Surface is a 1-bit pixel canvas, as implemented by *ht1632.Array.
type Surface interface {
	SetPixel(x, y int, on, paint bool) error
	GetPixel(x, y int, shadow bool) (bool, error)
	Bounds() image.Rectangle
}

// Toolbox draws on a Surface.
type Toolbox struct {
	s    Surface
	font *Font
}

// Option configures a Toolbox.
type Option func(*Toolbox)

// WithFont selects the font used by DrawChar and DrawString. A nil font
// keeps DefaultFont.
func WithFont(f *Font) Option {
	return func(t *Toolbox) {
		if f != nil {
			t.font = f
		}
	}
}

// New returns a Toolbox drawing on s with DefaultFont.
func New(s Surface, opts ...Option) *Toolbox {
	t := &Toolbox{s: s, font: DefaultFont}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Bounds returns the bounds of the underlying surface.
func (t *Toolbox) Bounds() image.Rectangle {
	return t.s.Bounds()
}

// SetPixel sets one pixel in memory. Pixels outside Bounds are ignored.
func (t *Toolbox) SetPixel(x, y int, on bool) error {
	if !t.inside(x, y) {
		return nil
	}
	return t.s.SetPixel(x, y, on, false)
}

// GetPixel reads one pixel from the primary or the shadow buffer. Pixels
// outside Bounds read as unlit.
func (t *Toolbox) GetPixel(x, y int, fromShadow bool) (bool, error) {
	if !t.inside(x, y) {
		return false, nil
	}
	return t.s.GetPixel(x, y, fromShadow)
}

func (t *Toolbox) inside(x, y int) bool {
	return image.Pt(x, y).In(t.s.Bounds())
}

// DrawLine draws a line from (x1, y1) to (x2, y2), both ends included.
//
// The major axis advances every step and the minor axis when the error
// term overflows, so exactly max(|dx|, |dy|)+1 pixels are set.
func (t *Toolbox) DrawLine(x1, y1, x2, y2 int, on bool) error {
	dx, dy := abs(x2-x1), abs(y2-y1)
	sx, sy := sign(x2-x1), sign(y2-y1)

	// Steps along the major axis; the minor axis steps on overflow.
	major, minor := dx, dy
	mx, my := sx, 0 // major step
	nx, ny := 0, sy // minor step
	if dy > dx {
		major, minor = dy, dx
		mx, my = 0, sy
		nx, ny = sx, 0
	}

	x, y := x1, y1
	num := major / 2
	for i := 0; i <= major; i++ {
		if err := t.SetPixel(x, y, on); err != nil {
			return err
		}
		num += minor
		if num >= major {
			num -= major
			x += nx
			y += ny
		}
		x += mx
		y += my
	}
	return nil
}

// DrawCircle draws a circle outline centered on (cx, cy) with the midpoint
// algorithm. A radius of 0 sets the center pixel; a negative radius draws
// nothing.
func (t *Toolbox) DrawCircle(cx, cy, radius int, on bool) error {
	if radius < 0 {
		return nil
	}
	x, y := 0, radius
	balance := -radius
	for x <= y {
		pts := [8][2]int{
			{cx + x, cy + y}, {cx - x, cy + y},
			{cx - x, cy - y}, {cx + x, cy - y},
			{cx + y, cy + x}, {cx - y, cy + x},
			{cx - y, cy - x}, {cx + y, cy - x},
		}
		for _, p := range pts {
			if err := t.SetPixel(p[0], p[1], on); err != nil {
				return err
			}
		}
		balance += 2*x + 1
		x++
		if balance >= 0 {
			y--
			balance -= 2 * y
		}
	}
	return nil
}

// DrawRectangle draws a w×h rectangle with its top left corner at (x, y).
// The outline covers columns x..x+w-1 and rows y..y+h-1. Empty sizes draw
// nothing.
func (t *Toolbox) DrawRectangle(x, y, w, h int, on, filled bool) error {
	if w <= 0 || h <= 0 {
		return nil
	}
	right, bottom := x+w-1, y+h-1
	if filled {
		for row := y; row <= bottom; row++ {
			if err := t.DrawLine(x, row, right, row, on); err != nil {
				return err
			}
		}
		return nil
	}
	edges := [4][4]int{
		{x, y, right, y},           // top
		{x, bottom, right, bottom}, // bottom
		{x, y, x, bottom},          // left
		{right, y, right, bottom},  // right
	}
	for _, e := range edges {
		if err := t.DrawLine(e[0], e[1], e[2], e[3], on); err != nil {
			return err
		}
	}
	return nil
}

// DrawChar blits the glyph for r with its top left corner at (x, y).
//
// All 5×7 dots are written, lit or not, so the glyph replaces what was
// underneath. The spacing column to the right is left alone.
func (t *Toolbox) DrawChar(x, y int, r rune) error {
	g, _ := t.font.Glyph(r)
	for col := 0; col < GlyphWidth; col++ {
		for row := 0; row < GlyphHeight; row++ {
			if err := t.SetPixel(x+col, y+row, g.Lit(col, row)); err != nil {
				return err
			}
		}
	}
	return nil
}

// DrawString draws s left to right starting at (x, y), advancing CharPitch
// pixels per rune.
func (t *Toolbox) DrawString(x, y int, s string) error {
	for _, r := range s {
		if err := t.DrawChar(x, y, r); err != nil {
			return err
		}
		x += CharPitch
	}
	return nil
}

// TextWidth returns the horizontal advance of s in pixels.
func TextWidth(s string) int {
	return utf8.RuneCountInString(s) * CharPitch
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	if v < 0 {
		return -1
	}
	return 1
}
