//go:build tinygo

// Package kinetis wires the driver core to real Kinetis hardware: memory
// mapped register windows, SIM clock gates, PORT pin muxing and the NVIC.
package kinetis

import (
	"runtime/volatile"
	"unsafe"

	"kinhal/core"
)

// MMIO is a register window at a fixed peripheral base address
type MMIO uintptr

func (b MMIO) reg(off uint8) *volatile.Register8 {
	return (*volatile.Register8)(unsafe.Pointer(uintptr(b) + uintptr(off)))
}

// Load8 implements core.Window
func (b MMIO) Load8(off uint8) uint8 {
	return b.reg(off).Get()
}

// Store8 implements core.Window
func (b MMIO) Store8(off uint8, v uint8) {
	b.reg(off).Set(v)
}

var _ core.Window = MMIO(0)

func reg32(addr uintptr) *volatile.Register32 {
	return (*volatile.Register32)(unsafe.Pointer(addr))
}
