//go:build tinygo

package kinetis

import (
	"kinhal/core"
	"kinhal/pinout"
)

// Clocks drives the SIM clock gates of one peripheral class. The
// reference frequencies are whatever the startup code configured.
type Clocks struct {
	CoreHz uint32
	BusHz  uint32

	gates map[core.PeripheralClass][]pinout.ModuleInfo
}

// NewClocks returns a clock subsystem for the given module tables
func NewClocks(coreHz, busHz uint32) *Clocks {
	return &Clocks{CoreHz: coreHz, BusHz: busHz, gates: make(map[core.PeripheralClass][]pinout.ModuleInfo)}
}

// AddClass registers the modules of a class so their gates can be found
func (c *Clocks) AddClass(class core.PeripheralClass, mods []pinout.ModuleInfo) {
	c.gates[class] = mods
}

// SetClockGate implements core.Clocks
func (c *Clocks) SetClockGate(class core.PeripheralClass, m core.Module, enabled bool) {
	mods := c.gates[class]
	if m < 0 || int(m) >= len(mods) {
		return
	}
	g := mods[m].Gate
	r := reg32(pinout.SIMBase + uintptr(g.Offset))
	if enabled {
		r.SetBits(1 << g.Bit)
	} else {
		r.ClearBits(1 << g.Bit)
	}
}

// ReferenceClockHz implements core.Clocks
func (c *Clocks) ReferenceClockHz(sel core.ClockSelector) uint32 {
	if sel == core.ClockCore {
		return c.CoreHz
	}
	return c.BusHz
}

var _ core.Clocks = (*Clocks)(nil)
