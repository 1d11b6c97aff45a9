//go:build tinygo

package kinetis

import (
	"kinhal/core"
	"kinhal/pinout"
)

// Modules builds the bank description of a class from its silicon table
func Modules(infos []pinout.ModuleInfo) []core.ModuleDesc {
	mods := make([]core.ModuleDesc, len(infos))
	for i, info := range infos {
		mods[i] = core.ModuleDesc{
			Regs:      MMIO(info.Base),
			Clock:     info.Clock,
			IRQ:       info.IRQ,
			FIFODepth: info.FIFODepth,
		}
	}
	return mods
}

// Chip is the shared hardware plumbing of one part
type Chip struct {
	Clocks *Clocks
	NVIC   NVIC
	Ports  Ports
}

// Platform returns the collaborators a bank needs, using table for pin
// resolution
func (c *Chip) Platform(table core.PinTable) core.Platform {
	return core.Platform{Pins: table, Clocks: c.Clocks, IRQs: &c.NVIC, Binder: &c.Ports}
}
