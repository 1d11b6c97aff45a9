//go:build tinygo

package kinetis

import (
	"runtime/interrupt"

	"kinhal/core"
	"kinhal/pinout"
)

// PORT_PCR fields
const (
	pcrMuxPos  = 8
	pcrMuxMask = 0x7 << pcrMuxPos
)

// Ports muxes pins through the PORT_PCRn registers and hands out
// exclusive leases
type Ports struct {
	owned [5]uint32 // one bit per pin, ports A..E
}

func pcr(pin core.PinName) uintptr {
	port := uintptr(pinout.Port(pin) - 'A')
	return pinout.PORTABase + port*pinout.PORTStep + 4*uintptr(pinout.Number(pin))
}

// Acquire implements core.PinBinder
func (p *Ports) Acquire(pin core.PinName, mux core.MuxSetting) (core.PinLease, error) {
	port, bit := pinout.Port(pin)-'A', uint32(1)<<pinout.Number(pin)

	state := interrupt.Disable()
	if p.owned[port]&bit != 0 {
		interrupt.Restore(state)
		return nil, core.ErrPinBusy
	}
	p.owned[port] |= bit
	interrupt.Restore(state)

	reg32(pcr(pin)).ReplaceBits(uint32(mux), 0x7, pcrMuxPos)
	return &portLease{ports: p, pin: pin}, nil
}

type portLease struct {
	ports *Ports
	pin   core.PinName
	done  bool
}

// Release returns the pin to the disabled mux setting
func (l *portLease) Release() {
	if l.done {
		return
	}
	l.done = true
	reg32(pcr(l.pin)).ClearBits(pcrMuxMask)

	port, bit := pinout.Port(l.pin)-'A', uint32(1)<<pinout.Number(l.pin)
	state := interrupt.Disable()
	l.ports.owned[port] &^= bit
	interrupt.Restore(state)
}

var _ core.PinBinder = (*Ports)(nil)
