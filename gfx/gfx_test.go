package gfx

import (
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memSurface is an in-memory Surface that counts writes per pixel.
type memSurface struct {
	w, h   int
	lit    map[image.Point]bool
	writes map[image.Point]int
	shadow map[image.Point]bool
	err    error
}

func newMemSurface(w, h int) *memSurface {
	return &memSurface{
		w:      w,
		h:      h,
		lit:    map[image.Point]bool{},
		writes: map[image.Point]int{},
		shadow: map[image.Point]bool{},
	}
}

// SetPixel follows the panel array: negative pixels and columns past the
// right edge are dropped, rows past the bottom wrap.
func (m *memSurface) SetPixel(x, y int, on, paint bool) error {
	if m.err != nil {
		return m.err
	}
	if x < 0 || y < 0 || x >= m.w {
		return nil
	}
	p := image.Pt(x, y%m.h)
	m.writes[p]++
	if on {
		m.lit[p] = true
	} else {
		delete(m.lit, p)
	}
	return nil
}

func (m *memSurface) GetPixel(x, y int, shadow bool) (bool, error) {
	y %= m.h
	if shadow {
		return m.shadow[image.Pt(x, y)], nil
	}
	return m.lit[image.Pt(x, y)], nil
}

func (m *memSurface) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.w, m.h)
}

func points(pts ...image.Point) map[image.Point]bool {
	out := make(map[image.Point]bool, len(pts))
	for _, p := range pts {
		out[p] = true
	}
	return out
}

func TestSetGetPixel(t *testing.T) {
	s := newMemSurface(48, 16)
	tb := New(s)

	require.NoError(t, tb.SetPixel(3, 4, true))
	on, err := tb.GetPixel(3, 4, false)
	require.NoError(t, err)
	assert.True(t, on)

	require.NoError(t, tb.SetPixel(-1, 4, true))
	require.NoError(t, tb.SetPixel(3, -4, true))
	assert.Len(t, s.writes, 1, "negative coordinates never reach the surface")

	on, err = tb.GetPixel(-1, 0, false)
	require.NoError(t, err)
	assert.False(t, on)

	s.shadow[image.Pt(9, 9)] = true
	on, err = tb.GetPixel(9, 9, true)
	require.NoError(t, err)
	assert.True(t, on)
	assert.Equal(t, s.Bounds(), tb.Bounds())
}

func TestDrawLineHorizontal(t *testing.T) {
	s := newMemSurface(48, 16)
	require.NoError(t, New(s).DrawLine(0, 0, 5, 0, true))

	want := points(
		image.Pt(0, 0), image.Pt(1, 0), image.Pt(2, 0),
		image.Pt(3, 0), image.Pt(4, 0), image.Pt(5, 0),
	)
	assert.Equal(t, want, s.lit)
}

func TestDrawLineDegenerate(t *testing.T) {
	s := newMemSurface(48, 16)
	require.NoError(t, New(s).DrawLine(7, 3, 7, 3, true))

	assert.Equal(t, points(image.Pt(7, 3)), s.lit)
	assert.Equal(t, 1, s.writes[image.Pt(7, 3)])
}

func TestDrawLineOctants(t *testing.T) {
	tests := []struct {
		name           string
		x1, y1, x2, y2 int
	}{
		{"shallow right down", 2, 2, 12, 6},
		{"steep right down", 2, 2, 6, 12},
		{"shallow left up", 12, 6, 2, 2},
		{"steep left up", 6, 12, 2, 2},
		{"shallow right up", 2, 10, 14, 4},
		{"steep left down", 9, 1, 5, 14},
		{"diagonal", 0, 0, 9, 9},
		{"vertical up", 4, 13, 4, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newMemSurface(48, 16)
			require.NoError(t, New(s).DrawLine(tt.x1, tt.y1, tt.x2, tt.y2, true))

			steps := abs(tt.x2-tt.x1) + 1
			if d := abs(tt.y2-tt.y1) + 1; d > steps {
				steps = d
			}
			assert.Len(t, s.lit, steps, "one pixel per major axis step")
			assert.True(t, s.lit[image.Pt(tt.x1, tt.y1)], "start point")
			assert.True(t, s.lit[image.Pt(tt.x2, tt.y2)], "end point")
			for p, n := range s.writes {
				assert.Equal(t, 1, n, "pixel %v written once", p)
			}
		})
	}
}

func TestDrawLineSymmetric(t *testing.T) {
	a := newMemSurface(48, 16)
	b := newMemSurface(48, 16)
	require.NoError(t, New(a).DrawLine(1, 1, 9, 1, true))
	require.NoError(t, New(b).DrawLine(9, 1, 1, 1, true))
	assert.Equal(t, a.lit, b.lit)
}

func TestDrawLineClipped(t *testing.T) {
	s := newMemSurface(48, 16)
	require.NoError(t, New(s).DrawLine(-3, 0, 2, 0, true))

	assert.Equal(t, points(image.Pt(0, 0), image.Pt(1, 0), image.Pt(2, 0)), s.lit)
}

func TestClippedAtBottom(t *testing.T) {
	s := newMemSurface(24, 16)
	tb := New(s)

	require.NoError(t, tb.DrawLine(0, 16, 5, 16, true))
	require.NoError(t, tb.DrawCircle(10, 14, 3, true))
	require.NoError(t, tb.DrawString(30, 0, "A"))

	for p := range s.lit {
		assert.GreaterOrEqual(t, p.Y, 11, "%v wrapped to the top", p)
	}
	assert.True(t, s.lit[image.Pt(10, 11)])
	assert.False(t, s.lit[image.Pt(10, 1)])

	s.lit[image.Pt(4, 0)] = true
	on, err := tb.GetPixel(4, 16, false)
	require.NoError(t, err)
	assert.False(t, on, "rows past the bottom read as unlit")
}

func TestDrawCircleZeroRadius(t *testing.T) {
	s := newMemSurface(48, 16)
	require.NoError(t, New(s).DrawCircle(10, 10, 0, true))

	assert.Equal(t, points(image.Pt(10, 10)), s.lit)
}

func TestDrawCircleNegativeRadius(t *testing.T) {
	s := newMemSurface(48, 16)
	require.NoError(t, New(s).DrawCircle(10, 10, -2, true))
	assert.Empty(t, s.writes)
}

func TestDrawCircle(t *testing.T) {
	s := newMemSurface(48, 16)
	require.NoError(t, New(s).DrawCircle(8, 8, 3, true))

	want := points(
		image.Pt(8, 11), image.Pt(8, 5), image.Pt(11, 8), image.Pt(5, 8),
		image.Pt(9, 11), image.Pt(7, 11), image.Pt(9, 5), image.Pt(7, 5),
		image.Pt(11, 9), image.Pt(5, 9), image.Pt(11, 7), image.Pt(5, 7),
		image.Pt(10, 10), image.Pt(6, 10), image.Pt(10, 6), image.Pt(6, 6),
	)
	assert.Equal(t, want, s.lit)

	// 8-way symmetry around the center.
	for p := range s.lit {
		dx, dy := p.X-8, p.Y-8
		for _, q := range []image.Point{
			{8 - dx, 8 + dy}, {8 + dx, 8 - dy}, {8 + dy, 8 + dx}, {8 - dy, 8 - dx},
		} {
			assert.True(t, s.lit[q], "%v mirrors %v", q, p)
		}
	}
}

func TestDrawCircleClipped(t *testing.T) {
	s := newMemSurface(48, 16)
	require.NoError(t, New(s).DrawCircle(0, 0, 2, true))

	for p := range s.lit {
		assert.True(t, p.X >= 0 && p.Y >= 0)
	}
	assert.True(t, s.lit[image.Pt(2, 0)])
	assert.True(t, s.lit[image.Pt(0, 2)])
}

func TestDrawRectangle(t *testing.T) {
	s := newMemSurface(48, 16)
	require.NoError(t, New(s).DrawRectangle(1, 1, 4, 3, true, false))

	want := points(
		image.Pt(1, 1), image.Pt(2, 1), image.Pt(3, 1), image.Pt(4, 1),
		image.Pt(1, 2), image.Pt(4, 2),
		image.Pt(1, 3), image.Pt(2, 3), image.Pt(3, 3), image.Pt(4, 3),
	)
	assert.Equal(t, want, s.lit)
}

func TestDrawRectangleFilled(t *testing.T) {
	s := newMemSurface(48, 16)
	require.NoError(t, New(s).DrawRectangle(2, 3, 5, 4, true, true))

	assert.Len(t, s.lit, 5*4)
	for y := 3; y < 7; y++ {
		for x := 2; x < 7; x++ {
			assert.True(t, s.lit[image.Pt(x, y)], "(%d, %d)", x, y)
		}
	}

	require.NoError(t, New(s).DrawRectangle(2, 3, 5, 4, false, true))
	assert.Empty(t, s.lit)
}

func TestDrawRectangleEmpty(t *testing.T) {
	s := newMemSurface(48, 16)
	tb := New(s)
	require.NoError(t, tb.DrawRectangle(1, 1, 0, 3, true, false))
	require.NoError(t, tb.DrawRectangle(1, 1, 3, -1, true, true))
	assert.Empty(t, s.writes)
}

func TestDrawStringA(t *testing.T) {
	s := newMemSurface(48, 16)
	require.NoError(t, New(s).DrawString(0, 0, "A"))

	g, ok := DefaultFont.Glyph('A')
	require.True(t, ok)
	want := map[image.Point]bool{}
	for col := 0; col < GlyphWidth; col++ {
		for row := 0; row < GlyphHeight; row++ {
			if g.Lit(col, row) {
				want[image.Pt(col, row)] = true
			}
		}
	}
	assert.Equal(t, want, s.lit)
	assert.False(t, s.lit[image.Pt(0, 0)], "A has a flat top inset")
	assert.True(t, s.lit[image.Pt(1, 0)])
	for y := 0; y < 16; y++ {
		assert.Zero(t, s.writes[image.Pt(5, y)], "spacing column untouched at row %d", y)
	}
}

func TestDrawStringPitch(t *testing.T) {
	s := newMemSurface(48, 16)
	require.NoError(t, New(s).DrawString(0, 0, "II"))

	// I is a centered vertical bar at glyph column 2.
	for row := 0; row < GlyphHeight; row++ {
		assert.True(t, s.lit[image.Pt(2, row)])
		assert.True(t, s.lit[image.Pt(2+CharPitch, row)])
	}
	assert.Equal(t, 12, TextWidth("II"))
}

func TestDrawStringCaseFolding(t *testing.T) {
	upper := newMemSurface(48, 16)
	lower := newMemSurface(48, 16)
	require.NoError(t, New(upper).DrawString(0, 0, "HELLO"))
	require.NoError(t, New(lower).DrawString(0, 0, "hello"))
	assert.Equal(t, upper.lit, lower.lit)
}

func TestDrawCharErases(t *testing.T) {
	s := newMemSurface(48, 16)
	tb := New(s)
	require.NoError(t, tb.DrawRectangle(0, 0, 5, 7, true, true))
	require.NoError(t, tb.DrawChar(0, 0, ' '))
	assert.Empty(t, s.lit, "space clears its cell")
}

func TestUnknownRuneUsesPlaceholder(t *testing.T) {
	unknown := newMemSurface(48, 16)
	space := newMemSurface(48, 16)
	require.NoError(t, New(unknown).DrawString(0, 0, "#"))
	require.NoError(t, New(space).DrawString(0, 0, " "))

	assert.NotEqual(t, space.lit, unknown.lit, "unknown runes are visible")
	_, ok := DefaultFont.Glyph('#')
	assert.False(t, ok)
	_, ok = DefaultFont.Glyph('é')
	assert.False(t, ok)
}

func TestFonts(t *testing.T) {
	d0, ok := DefaultFont.Glyph('0')
	require.True(t, ok)
	b0, ok := BlockFont.Glyph('0')
	require.True(t, ok)
	assert.NotEqual(t, d0, b0)

	da, _ := DefaultFont.Glyph('a')
	ba, _ := BlockFont.Glyph('A')
	assert.Equal(t, da, ba, "fonts share letters")

	sp, ok := BlockFont.Glyph(' ')
	require.True(t, ok)
	assert.Equal(t, Glyph{}, sp)

	s := newMemSurface(48, 16)
	require.NoError(t, New(s, WithFont(BlockFont)).DrawChar(0, 0, '1'))
	for row := 0; row < GlyphHeight; row++ {
		assert.True(t, s.lit[image.Pt(4, row)], "block 1 is the right column")
		assert.False(t, s.lit[image.Pt(0, row)])
	}
}

func TestWithNilFont(t *testing.T) {
	s := newMemSurface(48, 16)
	tb := New(s, WithFont(nil))
	require.NotPanics(t, func() {
		require.NoError(t, tb.DrawChar(0, 0, 'I'))
	})
	assert.True(t, s.lit[image.Pt(2, 0)])
}

func TestNewFont(t *testing.T) {
	var digits [10]Glyph
	digits[7] = Glyph{0x7f, 0x7f, 0x7f, 0x7f, 0x7f}
	f := NewFont(letters, digits, Glyph{0x41})

	g, ok := f.Glyph('7')
	require.True(t, ok)
	assert.Equal(t, digits[7], g)

	g, ok = f.Glyph('?')
	assert.False(t, ok)
	assert.Equal(t, Glyph{0x41}, g)

	g, _ = DefaultFont.Glyph('?')
	assert.Equal(t, placeholder, g, "built-in fonts keep their placeholder")
}

func TestDrawingStopsOnError(t *testing.T) {
	s := newMemSurface(48, 16)
	s.err = errors.New("not ready")
	tb := New(s)

	assert.ErrorIs(t, tb.DrawLine(0, 0, 5, 5, true), s.err)
	assert.ErrorIs(t, tb.DrawCircle(5, 5, 2, true), s.err)
	assert.ErrorIs(t, tb.DrawRectangle(0, 0, 3, 3, true, false), s.err)
	assert.ErrorIs(t, tb.DrawRectangle(0, 0, 3, 3, true, true), s.err)
	assert.ErrorIs(t, tb.DrawString(0, 0, "AB"), s.err)
}
