package ht1632

import (
	"strings"

	"periph.io/x/conn/v3/gpio"
)

// Frame IDs, sent MSB first at the start of every transaction.
const (
	idCommand byte = 0x4 // 100
	idWrite   byte = 0x5 // 101
	idRead    byte = 0x6 // 110, unused
)

// Command codes, sent MSB first followed by one don't-care bit.
const (
	cmdSysDis   byte = 0x00 // Oscillator and duty cycle generator off
	cmdSysOn    byte = 0x01 // Oscillator on
	cmdLEDOff   byte = 0x02 // Duty cycle generator off
	cmdLEDOn    byte = 0x03 // Duty cycle generator on
	cmdBlinkOff byte = 0x08
	cmdBlinkOn  byte = 0x09
	cmdPWM      byte = 0xA0 // Low nibble is the duty level
)

// CommonOption selects the COM output driver and the number of commons.
type CommonOption byte

// Possible COM options.
const (
	NMOS8  CommonOption = 0x20
	NMOS16 CommonOption = 0x24
	PMOS8  CommonOption = 0x28
	PMOS16 CommonOption = 0x2C
)

func (c CommonOption) String() string {
	switch c {
	case NMOS8:
		return "NMOS8"
	case NMOS16:
		return "NMOS16"
	case PMOS8:
		return "PMOS8"
	case PMOS16:
		return "PMOS16"
	}
	return "CommonOption(?)"
}

func (c CommonOption) commons() int {
	if c&0x04 != 0 {
		return 16
	}
	return 8
}

// MaxBrightness is the highest PWM duty level.
const MaxBrightness = 15

// Bits is a sequence of bits in wire order.
type Bits []gpio.Level

// String returns the bits as a string of 0 and 1.
func (b Bits) String() string {
	var s strings.Builder
	s.Grow(len(b))
	for _, l := range b {
		if l {
			s.WriteByte('1')
		} else {
			s.WriteByte('0')
		}
	}
	return s.String()
}

// appendMSB appends the n low bits of v, most significant first.
func (b Bits) appendMSB(v byte, n int) Bits {
	for i := n - 1; i >= 0; i-- {
		b = append(b, gpio.Level(v>>uint(i)&1 != 0))
	}
	return b
}

// appendLSB appends the n low bits of v, least significant first.
func (b Bits) appendLSB(v byte, n int) Bits {
	for i := 0; i < n; i++ {
		b = append(b, gpio.Level(v>>uint(i)&1 != 0))
	}
	return b
}

// commandFrame encodes one or more commands in successive command mode.
func commandFrame(cmds ...byte) Bits {
	b := make(Bits, 0, 3+9*len(cmds))
	b = b.appendMSB(idCommand, 3)
	for _, c := range cmds {
		b = b.appendMSB(c, 8)
		b = append(b, gpio.Low)
	}
	return b
}

// writeFrame encodes a progressive RAM write of whole bytes starting at
// nibble address addr. Each byte goes out low nibble first.
func writeFrame(addr byte, data []byte) Bits {
	b := make(Bits, 0, 10+8*len(data))
	b = b.appendMSB(idWrite, 3)
	b = b.appendMSB(addr, 7)
	for _, d := range data {
		b = b.appendLSB(d, 8)
	}
	return b
}

// writeNibbleFrame encodes a single 4-bit RAM write at addr.
func writeNibbleFrame(addr, nibble byte) Bits {
	b := make(Bits, 0, 14)
	b = b.appendMSB(idWrite, 3)
	b = b.appendMSB(addr, 7)
	return b.appendLSB(nibble, 4)
}
