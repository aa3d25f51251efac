package ht1632

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// Bus carries bit frames to the controllers sharing it.
//
// One call to Tx is one transaction. The caller asserts the select line of
// the target panel before Tx and releases it afterwards.
type Bus interface {
	Tx(w Bits) error
}

// BitBang is a Bus driven by toggling a clock and a data GPIO.
//
// Data is set while the clock is low and latched by the controller on the
// rising edge of WR.
type BitBang struct {
	clk  gpio.PinOut
	data gpio.PinOut
	half time.Duration
}

// NewBitBang returns a Bus over the clk (WR) and data pins.
//
// f is the clock rate. Zero toggles the pins as fast as the host allows,
// which is well below the 3.3MHz the HT1632 accepts on most boards.
func NewBitBang(clk, data gpio.PinOut, f physic.Frequency) (*BitBang, error) {
	if clk == nil || data == nil {
		return nil, errors.New("ht1632: clock and data pins are required")
	}
	if f < 0 {
		return nil, fmt.Errorf("ht1632: invalid clock rate %s", f)
	}
	b := &BitBang{clk: clk, data: data}
	if f > 0 {
		b.half = f.Period() / 2
	}
	if err := clk.Out(gpio.High); err != nil {
		return nil, fmt.Errorf("ht1632: failed to idle clock pin: %w", err)
	}
	if err := data.Out(gpio.High); err != nil {
		return nil, fmt.Errorf("ht1632: failed to idle data pin: %w", err)
	}
	return b, nil
}

// Tx clocks out w one bit at a time.
func (b *BitBang) Tx(w Bits) error {
	for _, l := range w {
		if err := b.clk.Out(gpio.Low); err != nil {
			return err
		}
		if err := b.data.Out(l); err != nil {
			return err
		}
		b.wait()
		if err := b.clk.Out(gpio.High); err != nil {
			return err
		}
		b.wait()
	}
	return nil
}

func (b *BitBang) wait() {
	if b.half > 0 {
		time.Sleep(b.half)
	}
}

// String returns a string representation of the bus.
func (b *BitBang) String() string {
	return fmt.Sprintf("ht1632.BitBang{clk=%s, data=%s}", b.clk, b.data)
}
