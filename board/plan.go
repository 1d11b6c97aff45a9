package board

import (
	"errors"

	"kinhal/core"
	"kinhal/pinout"
	"kinhal/sim"
)

var ErrNotOnChip = errors.New("peripheral_not_on_chip")

// Assignment is the outcome of bringing up one port on the simulated chip
type Assignment struct {
	Port   string
	Class  core.PeripheralClass
	Module core.Module

	// Requested and achieved rates: baud for UARTs, kHz for SPI
	Requested uint32
	Actual    uint32

	UARTDivisor core.UARTDivisor
	SPIDivisor  core.SPIDivisor
	FIFODepth   uint8

	Err error
}

// OK reports whether the port came up
func (a Assignment) OK() bool {
	return a.Err == nil
}

// Plan opens every port of b on a simulated chip, in file order, and
// reports where each one landed. Ports stay open while later ones are
// tried, so two ports fighting over a module or a pin show up as errors.
func Plan(b *Board) []Assignment {
	var out []Assignment
	switch b.Chip {
	case ChipK60:
		c := sim.NewK60()
		c.Clocks.CoreHz, c.Clocks.BusHz = b.CoreHz, b.BusHz
		for _, p := range b.UARTs {
			out = append(out, planUART(c, p))
		}
		for _, p := range b.SPIs {
			out = append(out, Assignment{Port: p.Name, Class: core.ClassSPI, Module: core.NoModule,
				Requested: p.RateKHz, Err: ErrNotOnChip})
		}
	case ChipKL26:
		c := sim.NewKL26()
		c.Clocks.CoreHz, c.Clocks.BusHz = b.CoreHz, b.BusHz
		for _, p := range b.SPIs {
			out = append(out, planSPI(c, p))
		}
		for _, p := range b.UARTs {
			out = append(out, Assignment{Port: p.Name, Class: core.ClassUART, Module: core.NoModule,
				Requested: p.Baud, Err: ErrNotOnChip})
		}
	}
	return out
}

func planUART(c *sim.K60, p UARTPort) Assignment {
	a := Assignment{Port: p.Name, Class: core.ClassUART, Module: core.NoModule, Requested: p.Baud}
	cfg, err := p.Config()
	if err != nil {
		a.Err = err
		return a
	}
	u, err := c.UARTs.Open(cfg)
	if err != nil {
		a.Err = err
		return a
	}
	m := u.Module()
	a.Module = m
	a.UARTDivisor = c.UART[m].Divisor()
	a.Actual = a.UARTDivisor.Rate(c.Clocks.ReferenceClockHz(pinout.K60UARTs[m].Clock))
	a.FIFODepth = u.TxFIFODepth()
	return a
}

func planSPI(c *sim.KL26, p SPIPort) Assignment {
	a := Assignment{Port: p.Name, Class: core.ClassSPI, Module: core.NoModule, Requested: p.RateKHz}
	cfg, err := p.Config()
	if err != nil {
		a.Err = err
		return a
	}
	s, err := c.SPIs.Open(cfg)
	if err != nil {
		a.Err = err
		return a
	}
	m := s.Module()
	a.Module = m
	a.SPIDivisor = core.DecodeSPIDivisor(c.SPI[m].Reg(core.SPIBR))
	a.Actual = a.SPIDivisor.RateKHz(c.Clocks.ReferenceClockHz(pinout.KL26SPIs[m].Clock) / 1000)
	a.FIFODepth = s.FIFODepth()
	return a
}
