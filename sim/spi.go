package sim

import (
	"sync"

	"kinhal/core"
)

// SPI models one KL26 SPI module in master mode. A frame written to DL is
// clocked out at once unless Hold is set; the frame clocked in is produced
// by Responder, which echoes by default. With FIFOMODE set on a module
// that has a FIFO, both directions buffer Depth frames; otherwise one.
type SPI struct {
	mu    sync.Mutex
	regs  [0x10]uint8
	tx    []uint16
	rx    []uint16
	sent  []uint16
	latch uint8

	// Depth is the FIFO depth in frames, 0 for none
	Depth uint8
	// Hold stops the shifter so frames pile up in the transmit buffer
	Hold bool
	// Responder returns the frame received for each frame sent
	Responder func(out uint16) uint16
}

// NewSPI returns a module with a FIFO of depth frames, 0 for none
func NewSPI(depth uint8) *SPI {
	return &SPI{Depth: depth}
}

func (s *SPI) fifoMode() bool {
	return s.Depth > 0 && s.regs[core.SPIC3]&core.SPIC3FIFOMODE != 0
}

func (s *SPI) capacity() int {
	if s.fifoMode() {
		return int(s.Depth)
	}
	return 1
}

func (s *SPI) frame16() bool {
	return s.regs[core.SPIC2]&core.SPIC2SPIMODE != 0
}

func (s *SPI) status() uint8 {
	var st uint8
	c := s.capacity()
	if len(s.tx) == 0 {
		st |= core.SPISSPTEF
	}
	if s.fifoMode() {
		if len(s.tx) >= c {
			st |= core.SPISTXFULLF
		}
		if len(s.rx) == 0 {
			st |= core.SPISRFIFOEF
		}
		if len(s.rx) >= c {
			st |= core.SPISSPRF
		}
	} else if len(s.rx) > 0 {
		st |= core.SPISSPRF
	}
	return st
}

// shift clocks frames while there is room to receive
func (s *SPI) shift() {
	for len(s.tx) > 0 && len(s.rx) < s.capacity() {
		out := s.tx[0]
		s.tx = s.tx[1:]
		in := out
		if s.Responder != nil {
			in = s.Responder(out)
		}
		s.sent = append(s.sent, out)
		s.rx = append(s.rx, in)
	}
}

// Load8 implements core.Window
func (s *SPI) Load8(off uint8) uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch off {
	case core.SPIS:
		return s.status()
	case core.SPIDH:
		if len(s.rx) == 0 {
			return 0
		}
		return uint8(s.rx[0] >> 8)
	case core.SPIDL:
		if len(s.rx) == 0 {
			return 0
		}
		v := s.rx[0]
		s.rx = s.rx[1:]
		if !s.Hold {
			s.shift()
		}
		return uint8(v)
	}
	if int(off) < len(s.regs) {
		return s.regs[off]
	}
	return 0
}

// Store8 implements core.Window
func (s *SPI) Store8(off uint8, v uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch off {
	case core.SPIS:
		// read-only
	case core.SPIDH:
		s.latch = v
	case core.SPIDL:
		c1 := s.regs[core.SPIC1]
		if c1&core.SPIC1SPE == 0 || c1&core.SPIC1MSTR == 0 || len(s.tx) >= s.capacity() {
			return
		}
		f := uint16(v)
		if s.frame16() {
			f |= uint16(s.latch) << 8
		}
		s.tx = append(s.tx, f)
		if !s.Hold {
			s.shift()
		}
	default:
		if int(off) < len(s.regs) {
			s.regs[off] = v
		}
	}
}

// Reg returns the stored value of a plain register without side effects
func (s *SPI) Reg(off uint8) uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.regs[off]
}

// Release lets a held shifter run again
func (s *SPI) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Hold = false
	s.shift()
}

// Sent returns every frame clocked out since the last call
func (s *SPI) Sent() []uint16 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.sent
	s.sent = nil
	return out
}

// Pending returns the number of frames waiting in the transmit buffer
func (s *SPI) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tx)
}

var _ core.Window = (*SPI)(nil)
