// Package htimage provides the packed 1-bit framebuffer used by the HT1632
// display controller.
//
// The HT1632 RAM is addressed in 4-bit words. In 16 common mode each column
// of the panel takes 16 bits: the first byte holds rows 0-7, the second rows
// 8-15, and within a group of 8 columns the column order is mirrored.
//
// Memory layout for the first columns of a 24x16 panel:
//
//	Column: 7  7  6  6  5  5 ... 0  0  15 15 ...
//	Rows:   0-7 8-15 ...
//	Byte:   0  1  2  3  4  5 ... 14 15 16 17 ...
//
// The pure function BitIndex maps a pixel to its bit position and is the only
// place that knows this layout:
//
//	i := htimage.BitIndex(24, 16, x, y)
//	frame.Pix[i/8] |= 1 << (i % 8)
//
// Frame implements image.Image and draw.Image with the 1-bit color model
// from periph.io/x/devices/v3/ssd1306/image1bit, so standard image code can
// render into it:
//
//	f := htimage.NewFrame(image.Rect(0, 0, 24, 16))
//	draw.Draw(f, f.Bounds(), image.NewUniform(image1bit.On), image.Point{}, draw.Src)
package htimage
