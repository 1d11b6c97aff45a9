package sim

import (
	"kinhal/core"
	"kinhal/pinout"
)

// Default clock trees of the simulated parts
const (
	K60CoreHz  = 100000000
	K60BusHz   = 50000000
	KL26CoreHz = 48000000
	KL26BusHz  = 24000000
)

// K60 is a simulated K60 with its six UART modules
type K60 struct {
	Clocks *Clocks
	NVIC   *NVIC
	Binder *Binder
	UART   []*UART
	UARTs  *core.UARTBank
}

// NewK60 assembles a K60 running from the default clocks
func NewK60() *K60 {
	c := &K60{
		Clocks: NewClocks(K60CoreHz, K60BusHz),
		NVIC:   NewNVIC(),
		Binder: NewBinder(),
	}
	mods := make([]core.ModuleDesc, len(pinout.K60UARTs))
	for i, info := range pinout.K60UARTs {
		u := NewUART(info.FIFOCode)
		c.UART = append(c.UART, u)
		mods[i] = core.ModuleDesc{Regs: u, Clock: info.Clock, IRQ: info.IRQ}
	}
	p := core.Platform{Pins: pinout.K60, Clocks: c.Clocks, IRQs: c.NVIC, Binder: c.Binder}
	c.UARTs = core.NewUARTBank(p, mods)
	return c
}

// RaiseUART raises the interrupt of UART module m
func (c *K60) RaiseUART(m core.Module) bool {
	return c.NVIC.Raise(pinout.K60UARTs[m].IRQ)
}

// KL26 is a simulated KL26 with its two SPI modules
type KL26 struct {
	Clocks *Clocks
	NVIC   *NVIC
	Binder *Binder
	SPI    []*SPI
	SPIs   *core.SPIBank
}

// NewKL26 assembles a KL26 running from the default clocks
func NewKL26() *KL26 {
	c := &KL26{
		Clocks: NewClocks(KL26CoreHz, KL26BusHz),
		NVIC:   NewNVIC(),
		Binder: NewBinder(),
	}
	mods := make([]core.ModuleDesc, len(pinout.KL26SPIs))
	for i, info := range pinout.KL26SPIs {
		s := NewSPI(info.FIFODepth)
		c.SPI = append(c.SPI, s)
		mods[i] = core.ModuleDesc{Regs: s, Clock: info.Clock, IRQ: info.IRQ, FIFODepth: info.FIFODepth}
	}
	p := core.Platform{Pins: pinout.KL26, Clocks: c.Clocks, IRQs: c.NVIC, Binder: c.Binder}
	c.SPIs = core.NewSPIBank(p, mods)
	return c
}

// RaiseSPI raises the interrupt of SPI module m
func (c *KL26) RaiseSPI(m core.Module) bool {
	return c.NVIC.Raise(pinout.KL26SPIs[m].IRQ)
}
