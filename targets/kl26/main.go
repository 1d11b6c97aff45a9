//go:build tinygo && kl26

// Firmware for KL26 boards: brings up the serial flash on SPI1 and reads
// its JEDEC identification.
package main

import (
	"runtime/interrupt"

	"tinygo.org/x/drivers"

	"kinhal/core"
	"kinhal/pinout"
	"kinhal/targets/kinetis"
)

// Clock tree set up by the startup code
const (
	coreClockHz = 48000000
	busClockHz  = 24000000
)

const cmdReadJEDECID = 0x9F

var (
	chip = kinetis.Chip{Clocks: kinetis.NewClocks(coreClockHz, busClockHz)}

	// SPIs is the process-wide SPI bank
	SPIs *core.SPIBank

	// jedecID is left for inspection with a debugger
	jedecID [3]byte
	faults  uint32
)

// Vector table entries of the two SPI lines
func spiISR(intr interrupt.Interrupt) { chip.NVIC.Dispatch(intr) }

func init() {
	interrupt.New(10, spiISR)
	interrupt.New(11, spiISR)

	chip.Clocks.AddClass(core.ClassSPI, pinout.KL26SPIs)
	SPIs = core.NewSPIBank(chip.Platform(pinout.KL26), kinetis.Modules(pinout.KL26SPIs))
}

func main() {
	core.SetFaultHandler(func(core.Fault, core.PeripheralClass, core.Module) {
		faults++
	})

	flash, err := SPIs.Open(core.SPIMasterConfig{
		SCKPin:  pinout.Pin('D', 5),
		MOSIPin: pinout.Pin('D', 6),
		MISOPin: pinout.Pin('D', 7),
		PCSPin:  pinout.Pin('D', 4),
		RateKHz: 12000,
	})
	if err != nil {
		for {
		}
	}

	readID(flash)
	for {
	}
}

func readID(bus drivers.SPI) {
	buf := make([]byte, 4)
	if err := bus.Tx([]byte{cmdReadJEDECID}, buf); err != nil {
		return
	}
	copy(jedecID[:], buf[1:])
}
