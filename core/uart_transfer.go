package core

// Transfer engine. Blocking calls spin on the status flags with no timeout;
// the non-blocking forms test once and report how much they moved.
//
// Reading S1 and then accessing D is what clears RDRF/TDRE, so block
// transfers move all but the last byte unconditionally and gate the last
// one on a fresh status read.

// rxCount returns the number of bytes waiting in the receiver
func (u *UART) rxCount() int {
	if u.fifo {
		return int(u.regs.RCFIFO().Get())
	}
	if u.regs.S1().HasBits(UARTS1RDRF) {
		return 1
	}
	return 0
}

// txRoom returns the number of bytes the transmitter can take now
func (u *UART) txRoom() int {
	if u.fifo {
		used := int(u.regs.TCFIFO().Get())
		if used >= int(u.txDepth) {
			return 0
		}
		return int(u.txDepth) - used
	}
	if u.regs.S1().HasBits(UARTS1TDRE) {
		return 1
	}
	return 0
}

func (u *UART) rxReady() bool {
	return u.regs.S1().HasBits(UARTS1RDRF) || (u.fifo && u.regs.RCFIFO().Get() > 0)
}

func (u *UART) txReady() bool {
	return u.regs.S1().HasBits(UARTS1TDRE) || (u.fifo && u.regs.TCFIFO().Get() < u.txDepth)
}

// AvailableBytes returns the number of received bytes ready to read
func (u *UART) AvailableBytes() int {
	if !u.Valid() {
		return 0
	}
	return u.rxCount()
}

// GetByte waits for a byte and returns it
func (u *UART) GetByte() byte {
	if !u.Valid() {
		return 0
	}
	for !u.rxReady() {
	}
	return u.regs.D().Get()
}

// PeekByte returns a byte if one is waiting
func (u *UART) PeekByte() (byte, bool) {
	if !u.Valid() || !u.rxReady() {
		return 0, false
	}
	return u.regs.D().Get(), true
}

// PeekBytes reads up to len(p) waiting bytes without blocking and returns
// the count read
func (u *UART) PeekBytes(p []byte) int {
	if !u.Valid() {
		return 0
	}
	n := min(u.rxCount(), len(p))
	if n == 0 {
		return 0
	}
	d := u.regs.D()
	for i := 0; i < n-1; i++ {
		p[i] = d.Get()
	}
	if !u.rxReady() {
		return n - 1
	}
	p[n-1] = d.Get()
	return n
}

// GetBytes waits until at least one byte is waiting, then reads as many
// as fit in p
func (u *UART) GetBytes(p []byte) int {
	if !u.Valid() || len(p) == 0 {
		return 0
	}
	for {
		if n := u.PeekBytes(p); n > 0 {
			return n
		}
	}
}

// SendByte waits for room in the transmitter and writes c
func (u *UART) SendByte(c byte) {
	if !u.Valid() {
		return
	}
	for !u.txReady() {
	}
	u.regs.D().Set(c)
}

// PutByte writes c if the transmitter has room
func (u *UART) PutByte(c byte) bool {
	if !u.Valid() || !u.txReady() {
		return false
	}
	u.regs.D().Set(c)
	return true
}

// PutBytes writes as much of p as the transmitter can take now and
// returns the count written. The caller resends the rest.
func (u *UART) PutBytes(p []byte) int {
	if !u.Valid() {
		return 0
	}
	n := min(u.txRoom(), len(p))
	if n == 0 {
		return 0
	}
	d := u.regs.D()
	for i := 0; i < n-1; i++ {
		d.Set(p[i])
	}
	if !u.txReady() {
		return n - 1
	}
	d.Set(p[n-1])
	return n
}

// SendBytes writes all of p, waiting for room as needed
func (u *UART) SendBytes(p []byte) {
	for len(p) > 0 && u.Valid() {
		p = p[u.PutBytes(p):]
	}
}
