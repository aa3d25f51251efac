package ht1632

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"reflect"

	"periph.io/x/conn/v3/display"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// MaxPanels is the largest number of panels an Array accepts.
const MaxPanels = 4

var (
	// ErrPanelCount is returned when an Array is built with 0 or more than
	// MaxPanels panels.
	ErrPanelCount = errors.New("ht1632: an array needs 1 to 4 panels")
	// ErrPanelIndex is returned for a panel index outside the array.
	ErrPanelIndex = errors.New("ht1632: panel index out of range")
	// ErrDuplicatePanel is returned when a panel, or its chip select pin,
	// appears twice in an Array.
	ErrDuplicatePanel = errors.New("ht1632: panel used twice")
)

// Array tiles panels left to right into one canvas of
// len(panels)*panelWidth × panelHeight pixels.
//
// Panels are updated one after the other; while SyncAll runs, panels already
// written show the new frame and the rest still show the previous one.
//
// Array is not safe for concurrent use.
type Array struct {
	panels []*Dev
	w, h   int
}

var _ display.Drawer = &Array{}

// NewArray returns a canvas made of panels, in left to right order.
//
// All panels must have the same geometry. The Array owns the panels from now
// on; they should not be driven directly.
func NewArray(panels ...*Dev) (*Array, error) {
	if len(panels) < 1 || len(panels) > MaxPanels {
		return nil, fmt.Errorf("%w, got %d", ErrPanelCount, len(panels))
	}
	for i, p := range panels {
		if p == nil {
			return nil, fmt.Errorf("ht1632: panel %d is nil", i)
		}
		if p.rect != panels[0].rect {
			return nil, fmt.Errorf("%w: panel %d is %dx%d, panel 0 is %dx%d", ErrGeometry, i,
				p.rect.Dx(), p.rect.Dy(), panels[0].rect.Dx(), panels[0].rect.Dy())
		}
		for j, q := range panels[:i] {
			if p == q {
				return nil, fmt.Errorf("%w: panels %d and %d are the same Dev", ErrDuplicatePanel, j, i)
			}
			if samePin(p.cs, q.cs) {
				return nil, fmt.Errorf("%w: panels %d and %d share chip select %s", ErrDuplicatePanel, j, i, p.cs)
			}
		}
	}
	a := &Array{
		panels: append([]*Dev(nil), panels...),
		w:      panels[0].rect.Dx(),
		h:      panels[0].rect.Dy(),
	}
	return a, nil
}

// samePin reports whether a and b are the same pin value. Pin types that
// cannot be compared are never reported as equal.
func samePin(a, b interface{}) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || ta == nil || !ta.Comparable() {
		return false
	}
	return a == b
}

// Len returns the number of panels.
func (a *Array) Len() int {
	return len(a.panels)
}

// Panel returns the panel at index i.
func (a *Array) Panel(i int) (*Dev, error) {
	if i < 0 || i >= len(a.panels) {
		return nil, fmt.Errorf("%w: %d", ErrPanelIndex, i)
	}
	return a.panels[i], nil
}

// PanelBounds returns the bounds of a single panel.
func (a *Array) PanelBounds() image.Rectangle {
	return image.Rect(0, 0, a.w, a.h)
}

// Bounds returns the bounds of the whole canvas.
func (a *Array) Bounds() image.Rectangle {
	return image.Rect(0, 0, len(a.panels)*a.w, a.h)
}

// ColorModel returns the 1-bit color model.
func (a *Array) ColorModel() color.Model {
	return image1bit.BitModel
}

// locate splits a canvas column into a panel and a panel column. ok is false
// when gx lies right of the last panel.
func (a *Array) locate(gx int) (p *Dev, x int, ok bool) {
	i := gx / a.w
	if i >= len(a.panels) {
		return nil, 0, false
	}
	return a.panels[i], gx % a.w, true
}

// Init initializes every panel in index order.
func (a *Array) Init() error {
	return a.each(func(p *Dev) error { return p.Init() })
}

// SetPixel lights or clears the canvas pixel at (gx, gy).
//
// Negative coordinates and columns past the last panel are ignored.
func (a *Array) SetPixel(gx, gy int, on, paint bool) error {
	if gx < 0 || gy < 0 {
		return nil
	}
	p, x, ok := a.locate(gx)
	if !ok {
		return nil
	}
	return p.SetPixel(x, gy, on, paint, false)
}

// GetPixel reports whether the canvas pixel at (gx, gy) is lit in the
// primary or the shadow buffer. Pixels outside the canvas read as unlit.
func (a *Array) GetPixel(gx, gy int, shadow bool) (bool, error) {
	if gx < 0 || gy < 0 {
		return false, nil
	}
	p, x, ok := a.locate(gx)
	if !ok {
		return false, nil
	}
	return p.GetPixel(x, gy, shadow)
}

// SyncAll writes every panel's primary buffer to its chip.
func (a *Array) SyncAll() error {
	return a.each(func(p *Dev) error { return p.SyncDisplay() })
}

// Clear clears the selected buffer of every panel.
func (a *Array) Clear(paint, shadow bool) error {
	return a.each(func(p *Dev) error { return p.Clear(paint, shadow) })
}

// SetBrightness sets the PWM duty level of every panel.
func (a *Array) SetBrightness(level int) error {
	return a.each(func(p *Dev) error { return p.SetBrightness(level) })
}

// CopyBuffer snapshots every panel's primary buffer into its shadow buffer.
func (a *Array) CopyBuffer() error {
	return a.each(func(p *Dev) error { return p.CopyBuffer() })
}

// Draw renders src over the canvas and syncs every panel.
func (a *Array) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if dst.Intersect(a.Bounds()).Empty() {
		return nil
	}
	for i, p := range a.panels {
		origin := image.Pt(i*a.w, 0)
		r := dst.Intersect(image.Rectangle{Min: origin, Max: origin.Add(image.Pt(a.w, a.h))})
		if r.Empty() {
			continue
		}
		// Source point matching the top left corner of r.
		psp := sp.Add(r.Min.Sub(dst.Min))
		if err := p.Draw(r.Sub(origin), src, psp); err != nil {
			return fmt.Errorf("ht1632: panel %d: %w", i, err)
		}
	}
	return nil
}

// Halt turns every panel off.
func (a *Array) Halt() error {
	var errs []error
	for _, p := range a.panels {
		if err := p.Halt(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// String returns a string representation of the canvas.
func (a *Array) String() string {
	return fmt.Sprintf("ht1632.Array{%dx%d, %d panels}", len(a.panels)*a.w, a.h, len(a.panels))
}

// each runs fn on the panels in index order and stops at the first error.
func (a *Array) each(fn func(p *Dev) error) error {
	for i, p := range a.panels {
		if err := fn(p); err != nil {
			return fmt.Errorf("ht1632: panel %d: %w", i, err)
		}
	}
	return nil
}
