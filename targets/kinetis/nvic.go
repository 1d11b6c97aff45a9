//go:build tinygo

package kinetis

import (
	"device/arm"
	"runtime/interrupt"
	"runtime/volatile"
	"unsafe"

	"kinhal/core"
)

// Interrupt control and state register; VECTACTIVE holds the exception
// number being serviced, which is the IRQ number plus 16
var icsr = (*volatile.Register32)(unsafe.Pointer(uintptr(0xE000ED04)))

const vectActiveMask = 0x1FF

const maxIRQ = 64

// NVIC implements core.InterruptController. The vector table entries are
// fixed at link time, so each target registers one static function per
// line with interrupt.New and has it call Dispatch.
type NVIC struct {
	handlers [maxIRQ]core.Handler
}

// InstallHandler implements core.InterruptController
func (n *NVIC) InstallHandler(irq core.IRQ, h core.Handler) {
	if irq < 0 || irq >= maxIRQ {
		return
	}
	state := interrupt.Disable()
	n.handlers[irq] = h
	interrupt.Restore(state)
}

// SetEnabled implements core.InterruptController
func (n *NVIC) SetEnabled(irq core.IRQ, enabled bool) {
	if irq < 0 {
		return
	}
	if enabled {
		arm.EnableIRQ(uint32(irq))
	} else {
		arm.DisableIRQ(uint32(irq))
	}
}

// ActiveIRQ implements core.InterruptController
func (n *NVIC) ActiveIRQ() core.IRQ {
	return core.IRQ(int(icsr.Get()&vectActiveMask) - 16)
}

// Dispatch runs the handler installed for the active line
func (n *NVIC) Dispatch(interrupt.Interrupt) {
	irq := n.ActiveIRQ()
	if irq < 0 || irq >= maxIRQ {
		return
	}
	if h := n.handlers[irq]; h != nil {
		h()
	}
}

var _ core.InterruptController = (*NVIC)(nil)
