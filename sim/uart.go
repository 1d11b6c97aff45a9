// Package sim provides register-level models of the Kinetis peripherals and
// fakes of their collaborators, so drivers can run on the host.
package sim

import (
	"sync"

	"kinhal/core"
)

// UART models one K60 UART module. Status flags follow buffer occupancy:
// TDRE while the transmit buffer holds no more than TWFIFO bytes, RDRF once
// the receive buffer holds at least RWFIFO bytes. Without FIFO each buffer
// holds a single byte.
type UART struct {
	mu   sync.Mutex
	regs [0x20]uint8
	tx   []byte
	rx   []byte
	sent []byte

	// TxSizeCode and RxSizeCode are reported in PFIFO
	TxSizeCode uint8
	RxSizeCode uint8

	// Dropped counts writes to D that found no room
	Dropped int
	// Overruns counts received bytes lost to a full buffer
	Overruns int
}

// NewUART returns a module reporting the FIFO size code for both buffers
func NewUART(sizeCode uint8) *UART {
	return &UART{TxSizeCode: sizeCode, RxSizeCode: sizeCode}
}

func (u *UART) txFIFO() bool { return u.regs[core.UARTPFIFO]&core.UARTPFIFOTXFE != 0 }
func (u *UART) rxFIFO() bool { return u.regs[core.UARTPFIFO]&core.UARTPFIFORXFE != 0 }

func (u *UART) txCap() int {
	if u.txFIFO() {
		return int(core.FIFODepth(u.TxSizeCode))
	}
	return 1
}

func (u *UART) rxCap() int {
	if u.rxFIFO() {
		return int(core.FIFODepth(u.RxSizeCode))
	}
	return 1
}

func (u *UART) status() uint8 {
	var s uint8
	twfifo, rwfifo := 0, 1
	if u.txFIFO() {
		twfifo = int(u.regs[core.UARTTWFIFO])
	}
	if u.rxFIFO() {
		rwfifo = max(1, int(u.regs[core.UARTRWFIFO]))
	}
	if len(u.tx) <= twfifo {
		s |= core.UARTS1TDRE
	}
	if len(u.tx) == 0 {
		s |= core.UARTS1TC
	}
	if len(u.rx) >= rwfifo {
		s |= core.UARTS1RDRF
	}
	return s
}

// Load8 implements core.Window
func (u *UART) Load8(off uint8) uint8 {
	u.mu.Lock()
	defer u.mu.Unlock()

	switch off {
	case core.UARTS1:
		return u.status()
	case core.UARTD:
		if len(u.rx) == 0 {
			return 0
		}
		c := u.rx[0]
		u.rx = u.rx[1:]
		return c
	case core.UARTTCFIFO:
		return uint8(len(u.tx))
	case core.UARTRCFIFO:
		return uint8(len(u.rx))
	case core.UARTPFIFO:
		enables := u.regs[off] & (core.UARTPFIFOTXFE | core.UARTPFIFORXFE)
		return enables |
			(u.TxSizeCode&core.UARTPFIFOSizeMask)<<core.UARTPFIFOTXSizePos |
			(u.RxSizeCode&core.UARTPFIFOSizeMask)<<core.UARTPFIFORXSizePos
	}
	if int(off) < len(u.regs) {
		return u.regs[off]
	}
	return 0
}

// Store8 implements core.Window
func (u *UART) Store8(off uint8, v uint8) {
	u.mu.Lock()
	defer u.mu.Unlock()

	switch off {
	case core.UARTD:
		if u.regs[core.UARTC2]&core.UARTC2TE == 0 || len(u.tx) >= u.txCap() {
			u.Dropped++
			return
		}
		u.tx = append(u.tx, v)
	case core.UARTCFIFO:
		if v&core.UARTCFIFOTXFLUSH != 0 {
			u.tx = nil
		}
		if v&core.UARTCFIFORXFLUSH != 0 {
			u.rx = nil
		}
		u.regs[off] = v &^ (core.UARTCFIFOTXFLUSH | core.UARTCFIFORXFLUSH)
	case core.UARTS1, core.UARTTCFIFO, core.UARTRCFIFO:
		// read-only
	case core.UARTPFIFO:
		u.regs[off] = v & (core.UARTPFIFOTXFE | core.UARTPFIFORXFE)
	default:
		if int(off) < len(u.regs) {
			u.regs[off] = v
		}
	}
}

// Reg returns the stored value of a plain register without side effects
func (u *UART) Reg(off uint8) uint8 {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.regs[off]
}

// Divisor returns the programmed baud divisor
func (u *UART) Divisor() core.UARTDivisor {
	u.mu.Lock()
	defer u.mu.Unlock()
	return core.UARTDivisor{
		SBR:  uint16(u.regs[core.UARTBDH]&0x1F)<<8 | uint16(u.regs[core.UARTBDL]),
		BRFA: u.regs[core.UARTC4] & 0x1F,
	}
}

// Inject delivers bytes to the receiver and returns how many were taken.
// Bytes arriving with the receiver disabled or the buffer full are lost.
func (u *UART) Inject(p []byte) int {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.regs[core.UARTC2]&core.UARTC2RE == 0 {
		return 0
	}
	n := 0
	for _, c := range p {
		if len(u.rx) >= u.rxCap() {
			u.Overruns += len(p) - n
			break
		}
		u.rx = append(u.rx, c)
		n++
	}
	return n
}

// Shift moves up to n bytes out of the transmitter and returns the count.
// In loop mode they land in the receiver instead of the line.
func (u *UART) Shift(n int) int {
	u.mu.Lock()
	defer u.mu.Unlock()

	moved := 0
	for moved < n && len(u.tx) > 0 {
		c := u.tx[0]
		u.tx = u.tx[1:]
		if u.regs[core.UARTC1]&core.UARTC1LOOPS != 0 {
			if len(u.rx) < u.rxCap() {
				u.rx = append(u.rx, c)
			} else {
				u.Overruns++
			}
		} else {
			u.sent = append(u.sent, c)
		}
		moved++
	}
	return moved
}

// Drain shifts out everything pending and returns all bytes sent on the
// line since the last Drain
func (u *UART) Drain() []byte {
	u.Shift(1 << 16)
	u.mu.Lock()
	defer u.mu.Unlock()
	out := u.sent
	u.sent = nil
	return out
}

// Pending returns the number of bytes waiting in the transmitter
func (u *UART) Pending() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.tx)
}

var _ core.Window = (*UART)(nil)
