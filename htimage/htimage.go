package htimage

import (
	"image"
	"image/color"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// BitIndex returns the bit position of pixel (x, y) in a w×h frame.
//
// x is clamped to [0, w-1]. y is masked with h-1, so rows past the bottom
// wrap like the controller's row address field. h must be 8 or 16.
func BitIndex(w, h, x, y int) int {
	if x < 0 {
		x = 0
	} else if x > w-1 {
		x = w - 1
	}
	y &= h - 1
	bands := h / 8
	col := (x &^ 7) + (7 - x&7)
	elem := y/8 + col*bands
	return elem*8 + y&7
}

// Frame is a packed 1-bit image in HT1632 RAM order.
type Frame struct {
	Pix  []byte          // Bit packed pixels, len(Pix) == W*H/8
	Rect image.Rectangle // Image bounds
}

// NewFrame creates a cleared frame with the specified bounds.
//
// The width must be a multiple of 8 and the height 8 or 16.
func NewFrame(r image.Rectangle) *Frame {
	w, h := r.Dx(), r.Dy()
	if w <= 0 || w%8 != 0 {
		panic("htimage: width must be a positive multiple of 8")
	}
	if h != 8 && h != 16 {
		panic("htimage: height must be 8 or 16")
	}
	return &Frame{
		Pix:  make([]byte, w*h/8),
		Rect: r,
	}
}

// ColorModel returns the 1-bit color model.
func (f *Frame) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds returns the image bounds.
func (f *Frame) Bounds() image.Rectangle {
	return f.Rect
}

// At implements image.Image.
func (f *Frame) At(x, y int) color.Color {
	return f.BitAt(x, y)
}

// BitAt returns the pixel at (x, y). Pixels outside Rect read as Off.
func (f *Frame) BitAt(x, y int) image1bit.Bit {
	if !(image.Point{X: x, Y: y}.In(f.Rect)) {
		return image1bit.Off
	}
	return image1bit.Bit(f.IndexAt(f.BitIndex(x, y)))
}

// Set implements draw.Image.
func (f *Frame) Set(x, y int, c color.Color) {
	f.SetBit(x, y, image1bit.BitModel.Convert(c).(image1bit.Bit))
}

// SetBit sets the pixel at (x, y). Pixels outside Rect are ignored.
func (f *Frame) SetBit(x, y int, b image1bit.Bit) {
	if !(image.Point{X: x, Y: y}.In(f.Rect)) {
		return
	}
	f.SetIndex(f.BitIndex(x, y), bool(b))
}

// BitIndex returns the bit position of (x, y) relative to Rect.Min, with
// the clamping and wrapping of the package level BitIndex.
func (f *Frame) BitIndex(x, y int) int {
	return BitIndex(f.Rect.Dx(), f.Rect.Dy(), x-f.Rect.Min.X, y-f.Rect.Min.Y)
}

// SetIndex sets or clears the bit at position i.
func (f *Frame) SetIndex(i int, on bool) {
	mask := byte(1) << uint(i%8)
	if on {
		f.Pix[i/8] |= mask
	} else {
		f.Pix[i/8] &^= mask
	}
}

// IndexAt reports whether the bit at position i is set.
func (f *Frame) IndexAt(i int) bool {
	return f.Pix[i/8]&(1<<uint(i%8)) != 0
}

// Nibble returns the 4-bit RAM word at controller address addr.
//
// The controller consumes each byte low nibble first, so even addresses map
// to the low half of byte addr/2.
func (f *Frame) Nibble(addr int) byte {
	b := f.Pix[addr/2]
	if addr&1 != 0 {
		b >>= 4
	}
	return b & 0x0F
}

// Clear turns every pixel off.
func (f *Frame) Clear() {
	for i := range f.Pix {
		f.Pix[i] = 0
	}
}

// CopyFrom copies the pixels of src, which must have the same size.
func (f *Frame) CopyFrom(src *Frame) {
	copy(f.Pix, src.Pix)
}
