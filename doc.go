// Package ht1632 controls HT1632 LED matrix controllers over a bit-banged bus.
//
// The HT1632 (and HT1632C) is a 1-bit LED driver found on the popular 24×16
// and 32×8 dot matrix boards. This driver keeps a framebuffer per panel in
// the controller's own RAM layout and implements the display.Drawer interface
// from periph.io.
//
// # Display Characteristics
//
// - 1 bit per pixel, no gray levels
// - 24×16 (16 commons) or 32×8 (8 commons) per controller
// - 16 global brightness levels (PWM duty 0-15)
// - Hardware blink
// - Up to 4 panels tiled horizontally with Array
//
// # Hardware Connection
//
// All panels share the clock and data lines; each one gets its own chip
// select:
//
//	Panel Pin → System Pin
//	GND       → GND
//	VCC       → 5V
//	WR/CLK    → GPIO (clock)
//	DATA      → GPIO (data)
//	CS1..CS4  → GPIO (one per panel)
//
// # Basic Usage
//
//	package main
//
//	import (
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/host/v3"
//		"github.com/flavioheleno/ht1632"
//		"github.com/flavioheleno/ht1632/gfx"
//	)
//
//	func main() {
//		host.Init()
//
//		bus, _ := ht1632.NewBitBang(gpioreg.ByName("GPIO13"), gpioreg.ByName("GPIO12"), 0)
//
//		left, _ := ht1632.New(bus, gpioreg.ByName("GPIO5"), nil)
//		right, _ := ht1632.New(bus, gpioreg.ByName("GPIO6"), nil)
//
//		canvas, _ := ht1632.NewArray(left, right)
//		canvas.Init()
//		defer canvas.Halt()
//
//		tb := gfx.New(canvas)
//		tb.DrawString(0, 4, "HELLO")
//		tb.DrawCircle(40, 8, 6, true)
//		canvas.SyncAll()
//	}
//
// # Lifecycle
//
// New only validates the options and releases the chip select line. Init
// sends the setup sequence (SYS DIS, SYS ON, COM option, LED ON, BLINK OFF,
// PWM 15) and clears the panel. Every other method returns ErrNotReady until
// Init has succeeded. Halt turns the panel off and returns it to the
// uninitialized state.
//
// # Drawing Modes
//
// ## Buffered
//
// SetPixel and Clear only touch memory unless paint is set. Call SyncDisplay
// (or Array.SyncAll) to push the whole frame in one progressive write:
//
//	canvas.SetPixel(10, 3, true, false)
//	canvas.SetPixel(11, 3, true, false)
//	canvas.SyncAll()
//
// ## Immediate
//
// With paint set, SetPixel writes only the 4-bit RAM word holding the pixel:
//
//	canvas.SetPixel(10, 3, true, true)
//
// ## Images
//
// Draw accepts any image.Image and converts it with image1bit.BitModel:
//
//	canvas.Draw(canvas.Bounds(), img, image.Point{})
//
// # Coordinates
//
// Negative coordinates are silently ignored so drawing code needs no clipping
// pass. Past the right edge of a panel x is clamped; past the bottom y wraps
// modulo the row count, like the controller's address field. On an Array,
// columns past the last panel are ignored.
//
// # Shadow Buffer
//
// With Opts.Shadow set, each panel keeps a second framebuffer that is never
// sent to the chip. CopyBuffer snapshots the primary buffer into it, and
// GetPixel(x, y, true) reads it back. Generation based effects (e.g. Conway's
// life) read the previous generation from the shadow while writing the next
// one to the primary buffer.
//
// # Wire Format
//
// Only the bit-banged convention is implemented. Frames are:
//
//	Command: 100 CCCCCCCC X [CCCCCCCC X ...]   (MSB first)
//	Write:   101 AAAAAAA DDDD...               (address MSB first, data LSB first)
//
// A sync streams the framebuffer bytes from address 0, each byte low nibble
// first.
//
// # Concurrency
//
// Dev and Array are not safe for concurrent use. Panels on a shared bus are
// addressed strictly one after the other; guard the Array with a mutex if it
// is shared between goroutines.
//
// # Datasheet
//
// https://www.holtek.com/documents/10179/116711/HT1632Cv170.pdf
package ht1632
