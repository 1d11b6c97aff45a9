package sim

import (
	"sync"

	"kinhal/core"
)

type gateKey struct {
	class  core.PeripheralClass
	module core.Module
}

// Clocks is a fixed-frequency clock tree with recorded clock gates
type Clocks struct {
	mu     sync.Mutex
	CoreHz uint32
	BusHz  uint32
	gates  map[gateKey]bool
}

// NewClocks returns a clock tree with every gate closed
func NewClocks(coreHz, busHz uint32) *Clocks {
	return &Clocks{CoreHz: coreHz, BusHz: busHz, gates: make(map[gateKey]bool)}
}

// SetClockGate implements core.Clocks
func (c *Clocks) SetClockGate(class core.PeripheralClass, m core.Module, enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gates[gateKey{class, m}] = enabled
}

// ReferenceClockHz implements core.Clocks
func (c *Clocks) ReferenceClockHz(sel core.ClockSelector) uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if sel == core.ClockCore {
		return c.CoreHz
	}
	return c.BusHz
}

// Gated reports whether the clock of module m is running
func (c *Clocks) Gated(class core.PeripheralClass, m core.Module) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gates[gateKey{class, m}]
}

var _ core.Clocks = (*Clocks)(nil)
