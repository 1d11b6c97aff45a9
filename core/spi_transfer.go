package core

import "tinygo.org/x/drivers"

var _ drivers.SPI = (*SPIMaster)(nil)

// txReady reports room for one more frame
func (s *SPIMaster) txReady() bool {
	if s.depth > 0 {
		return !s.regs.S().HasBits(SPISTXFULLF)
	}
	return s.regs.S().HasBits(SPISSPTEF)
}

// rxReady reports at least one received frame
func (s *SPIMaster) rxReady() bool {
	if s.depth > 0 {
		return !s.regs.S().HasBits(SPISRFIFOEF)
	}
	return s.regs.S().HasBits(SPISSPRF)
}

// writeFrame loads one frame. DL is written last; that starts the
// transfer in 16-bit mode.
func (s *SPIMaster) writeFrame(v uint16) {
	if s.frame16 {
		s.regs.DH().Set(uint8(v >> 8))
	}
	s.regs.DL().Set(uint8(v))
}

// readFrame pops one frame. DL is read last; that releases the entry.
func (s *SPIMaster) readFrame() uint16 {
	var v uint16
	if s.frame16 {
		v = uint16(s.regs.DH().Get()) << 8
	}
	return v | uint16(s.regs.DL().Get())
}

// ExchangeData sends one frame and waits for the frame clocked in with it
func (s *SPIMaster) ExchangeData(v uint16) uint16 {
	if !s.Valid() {
		return 0
	}
	for !s.regs.S().HasBits(SPISSPTEF) {
	}
	s.writeFrame(v)
	for !s.rxReady() {
	}
	return s.readFrame()
}

// SendData waits for room and queues one frame
func (s *SPIMaster) SendData(v uint16) {
	if !s.Valid() {
		return
	}
	for !s.txReady() {
	}
	s.writeFrame(v)
}

// GetData waits for a received frame and returns it
func (s *SPIMaster) GetData() uint16 {
	if !s.Valid() {
		return 0
	}
	for !s.rxReady() {
	}
	return s.readFrame()
}

// PutData queues one frame if there is room
func (s *SPIMaster) PutData(v uint16) bool {
	if !s.Valid() || !s.txReady() {
		return false
	}
	s.writeFrame(v)
	return true
}

// PeekData returns a received frame if one is waiting
func (s *SPIMaster) PeekData() (uint16, bool) {
	if !s.Valid() || !s.rxReady() {
		return 0, false
	}
	return s.readFrame(), true
}

// PushData queues as many frames of p as fit now and returns the count.
// Without a FIFO that is at most one frame.
func (s *SPIMaster) PushData(p []uint16) int {
	if !s.Valid() {
		return 0
	}
	if s.depth == 0 {
		if len(p) > 0 && s.txReady() {
			s.writeFrame(p[0])
			return 1
		}
		return 0
	}
	n := 0
	for n < len(p) && s.txReady() {
		s.writeFrame(p[n])
		n++
	}
	return n
}

// PullData reads as many waiting frames as fit in p and returns the count.
// Without a FIFO that is at most one frame.
func (s *SPIMaster) PullData(p []uint16) int {
	if !s.Valid() {
		return 0
	}
	if s.depth == 0 {
		if len(p) > 0 && s.rxReady() {
			p[0] = s.readFrame()
			return 1
		}
		return 0
	}
	n := 0
	for n < len(p) && s.rxReady() {
		p[n] = s.readFrame()
		n++
	}
	return n
}

// SendBlock queues every frame of p, waiting for room as needed
func (s *SPIMaster) SendBlock(p []uint16) {
	for len(p) > 0 && s.Valid() {
		p = p[s.PushData(p):]
	}
}

// GetBlock fills p with received frames, waiting as needed
func (s *SPIMaster) GetBlock(p []uint16) {
	for len(p) > 0 && s.Valid() {
		p = p[s.PullData(p):]
	}
}

// Transfer exchanges a single byte. It satisfies drivers.SPI.
func (s *SPIMaster) Transfer(b byte) (byte, error) {
	if !s.Valid() {
		return 0, ErrInvalidHandle
	}
	return byte(s.ExchangeData(uint16(b))), nil
}

// Tx writes w while reading into r; the shorter side is padded with
// zeros or discarded. In 16-bit mode bytes are paired most significant
// first. It satisfies drivers.SPI.
func (s *SPIMaster) Tx(w, r []byte) error {
	if !s.Valid() {
		return ErrInvalidHandle
	}
	n := max(len(w), len(r))
	step := 1
	if s.frame16 {
		step = 2
	}
	for i := 0; i < n; i += step {
		var out uint16
		for j := 0; j < step; j++ {
			out <<= 8
			if i+j < len(w) {
				out |= uint16(w[i+j])
			}
		}
		in := s.ExchangeData(out)
		for j := step - 1; j >= 0; j-- {
			if i+j < len(r) {
				r[i+j] = byte(in)
			}
			in >>= 8
		}
	}
	return nil
}
