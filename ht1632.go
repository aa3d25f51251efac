package ht1632

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/flavioheleno/ht1632/htimage"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

var (
	// ErrNotReady is returned by operations invoked before Init succeeded.
	ErrNotReady = errors.New("ht1632: not initialized")
	// ErrNoShadow is returned when the shadow buffer was not allocated.
	ErrNoShadow = errors.New("ht1632: no shadow buffer")
	// ErrGeometry is returned for unsupported or mismatched panel sizes.
	ErrGeometry = errors.New("ht1632: invalid geometry")
)

// State is the lifecycle state of a Dev.
type State int

// Possible states.
const (
	Uninitialized State = iota
	Initializing
	Ready
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case Initializing:
		return "Initializing"
	case Ready:
		return "Ready"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Opts is the configuration for one HT1632 panel.
type Opts struct {
	// Panel dimensions in pixels
	W int // Width (default: 24, multiple of 8)
	H int // Height (default: 16, must be 8 or 16)

	// COM driver option (default: PMOS16 for 16 rows, PMOS8 for 8 rows)
	Commons CommonOption

	// Allocate a shadow framebuffer for CopyBuffer and shadow reads
	Shadow bool
}

// Dev is the device handle for one HT1632 panel.
type Dev struct {
	// Communication
	bus Bus         // Shared clock/data bus
	cs  gpio.PinOut // Chip select, active low

	// Display geometry
	rect    image.Rectangle
	commons CommonOption

	// Pixel buffers
	buffer *htimage.Frame // Primary frame, mirrors the chip RAM after a sync
	shadow *htimage.Frame // Snapshot frame, nil unless Opts.Shadow

	// State
	brightness int
	state      State
}

var _ display.Drawer = &Dev{}

// New returns a Dev for the panel selected by cs on bus.
//
// cs is driven high so the panel ignores the bus until it is addressed. The
// controller is not touched; call Init before anything else.
//
// opts can be nil to use defaults (24x16 panel).
func New(bus Bus, cs gpio.PinOut, opts *Opts) (*Dev, error) {
	if bus == nil {
		return nil, errors.New("ht1632: bus is required")
	}
	if cs == nil {
		return nil, errors.New("ht1632: chip select pin is required")
	}
	o := Opts{W: 24, H: 16}
	if opts != nil {
		o = *opts
	}
	if err := o.normalize(); err != nil {
		return nil, err
	}
	if err := cs.Out(gpio.High); err != nil {
		return nil, fmt.Errorf("ht1632: failed to release chip select: %w", err)
	}

	rect := image.Rect(0, 0, o.W, o.H)
	d := &Dev{
		bus:        bus,
		cs:         cs,
		rect:       rect,
		commons:    o.Commons,
		buffer:     htimage.NewFrame(rect),
		brightness: MaxBrightness,
	}
	if o.Shadow {
		d.shadow = htimage.NewFrame(rect)
	}
	return d, nil
}

// normalize applies defaults and validates the geometry.
func (o *Opts) normalize() error {
	if o.W == 0 {
		o.W = 24
	}
	if o.H == 0 {
		o.H = 16
	}
	if o.H != 8 && o.H != 16 {
		return fmt.Errorf("%w: height must be 8 or 16, got %d", ErrGeometry, o.H)
	}
	maxW := 32
	if o.H == 16 {
		maxW = 24
	}
	if o.W < 0 || o.W%8 != 0 || o.W > maxW {
		return fmt.Errorf("%w: width must be a multiple of 8 up to %d, got %d", ErrGeometry, maxW, o.W)
	}
	if o.Commons == 0 {
		o.Commons = PMOS16
		if o.H == 8 {
			o.Commons = PMOS8
		}
	}
	switch o.Commons {
	case NMOS8, NMOS16, PMOS8, PMOS16:
	default:
		return fmt.Errorf("ht1632: invalid common option 0x%02X", byte(o.Commons))
	}
	if o.Commons.commons() != o.H {
		return fmt.Errorf("%w: %s drives %d rows, panel has %d", ErrGeometry, o.Commons, o.Commons.commons(), o.H)
	}
	return nil
}

// Init sends the setup sequence and clears the panel.
//
// The commands go out in a single transaction in successive command mode.
// The order is fixed; the chip does not display correctly otherwise.
func (d *Dev) Init() error {
	d.state = Initializing
	err := d.tx(commandFrame(
		cmdSysDis,
		cmdSysOn,
		byte(d.commons),
		cmdLEDOn,
		cmdBlinkOff,
		cmdPWM|MaxBrightness,
	))
	if err == nil {
		d.buffer.Clear()
		err = d.sync()
	}
	if err != nil {
		d.state = Uninitialized
		return err
	}
	d.brightness = MaxBrightness
	d.state = Ready
	return nil
}

// tx runs one transaction with the panel selected.
func (d *Dev) tx(w Bits) error {
	if err := d.cs.Out(gpio.Low); err != nil {
		return fmt.Errorf("ht1632: failed to select panel: %w", err)
	}
	err := d.bus.Tx(w)
	if rerr := d.cs.Out(gpio.High); err == nil && rerr != nil {
		return fmt.Errorf("ht1632: failed to release panel: %w", rerr)
	}
	if err != nil {
		return fmt.Errorf("ht1632: bus transfer failed: %w", err)
	}
	return nil
}

func (d *Dev) ready() error {
	if d.state != Ready {
		return fmt.Errorf("%w (state %s)", ErrNotReady, d.state)
	}
	return nil
}

// frame returns the primary or the shadow buffer.
func (d *Dev) frame(shadow bool) (*htimage.Frame, error) {
	if !shadow {
		return d.buffer, nil
	}
	if d.shadow == nil {
		return nil, ErrNoShadow
	}
	return d.shadow, nil
}

// SetPixel lights or clears the pixel at (x, y).
//
// Negative coordinates are ignored. x past the right edge is clamped and y
// past the bottom wraps, following the controller's address fields. If paint
// is set and the primary buffer is targeted, the 4-bit RAM word holding the
// pixel is written to the chip right away.
func (d *Dev) SetPixel(x, y int, on, paint, shadow bool) error {
	if err := d.ready(); err != nil {
		return err
	}
	f, err := d.frame(shadow)
	if err != nil {
		return err
	}
	if x < 0 || y < 0 {
		return nil
	}
	i := f.BitIndex(x, y)
	f.SetIndex(i, on)
	if !paint || shadow {
		return nil
	}
	addr := i / 4
	return d.tx(writeNibbleFrame(byte(addr), f.Nibble(addr)))
}

// GetPixel reports whether the pixel at (x, y) is lit in memory. The chip is
// never read.
func (d *Dev) GetPixel(x, y int, shadow bool) (bool, error) {
	if err := d.ready(); err != nil {
		return false, err
	}
	f, err := d.frame(shadow)
	if err != nil {
		return false, err
	}
	if x < 0 || y < 0 {
		return false, nil
	}
	return f.IndexAt(f.BitIndex(x, y)), nil
}

// Clear turns off every pixel of the selected buffer. If paint is set and
// the primary buffer is targeted, the panel is synced.
func (d *Dev) Clear(paint, shadow bool) error {
	if err := d.ready(); err != nil {
		return err
	}
	f, err := d.frame(shadow)
	if err != nil {
		return err
	}
	f.Clear()
	if paint && !shadow {
		return d.sync()
	}
	return nil
}

// SyncDisplay writes the whole primary buffer to the chip in one
// progressive write starting at address 0.
func (d *Dev) SyncDisplay() error {
	if err := d.ready(); err != nil {
		return err
	}
	return d.sync()
}

func (d *Dev) sync() error {
	return d.tx(writeFrame(0, d.buffer.Pix))
}

// SetBrightness sets the PWM duty level, clamped to 0-15.
func (d *Dev) SetBrightness(level int) error {
	if err := d.ready(); err != nil {
		return err
	}
	if level < 0 {
		level = 0
	} else if level > MaxBrightness {
		level = MaxBrightness
	}
	if err := d.tx(commandFrame(cmdPWM | byte(level))); err != nil {
		return err
	}
	d.brightness = level
	return nil
}

// Brightness returns the last PWM duty level sent to the chip.
func (d *Dev) Brightness() int {
	return d.brightness
}

// SetBlink enables or disables the hardware blink.
func (d *Dev) SetBlink(on bool) error {
	if err := d.ready(); err != nil {
		return err
	}
	cmd := cmdBlinkOff
	if on {
		cmd = cmdBlinkOn
	}
	return d.tx(commandFrame(cmd))
}

// CopyBuffer copies the primary buffer into the shadow buffer.
func (d *Dev) CopyBuffer() error {
	if err := d.ready(); err != nil {
		return err
	}
	if d.shadow == nil {
		return ErrNoShadow
	}
	d.shadow.CopyFrom(d.buffer)
	return nil
}

// State returns the lifecycle state.
func (d *Dev) State() State {
	return d.state
}

// ColorModel returns the 1-bit color model.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds returns the pixel bounds of the panel.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Draw renders src into the primary buffer and syncs the panel.
// The dst rectangle is clipped to the panel bounds.
//
// src is converted with image1bit.BitModel.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if err := d.ready(); err != nil {
		return err
	}
	if dst.Intersect(d.rect).Empty() {
		return nil
	}
	// draw.Draw clips dst and shifts sp to match.
	draw.Draw(d.buffer, dst, src, sp, draw.Src)
	return d.sync()
}

// Halt turns the LEDs and the oscillator off. Init must be called again
// before the panel can be used.
func (d *Dev) Halt() error {
	if d.state == Uninitialized {
		return nil
	}
	d.state = Uninitialized
	return d.tx(commandFrame(cmdLEDOff, cmdSysDis))
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("ht1632.Dev{%dx%d, %s}", d.rect.Dx(), d.rect.Dy(), d.cs)
}
