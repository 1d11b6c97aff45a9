//go:build tinygo && k60

// Firmware for K60 boards: a console on UART5 that echoes what it
// receives and carries the driver debug output.
package main

import (
	"runtime/interrupt"

	"kinhal/core"
	"kinhal/pinout"
	"kinhal/targets/kinetis"
)

// Clock tree set up by the startup code
const (
	coreClockHz = 100000000
	busClockHz  = 50000000
)

var (
	chip = kinetis.Chip{Clocks: kinetis.NewClocks(coreClockHz, busClockHz)}

	// UARTs is the process-wide UART bank
	UARTs *core.UARTBank

	console *core.UART
	echo    ring
)

// Vector table entries of the six UART status lines
func uartISR(intr interrupt.Interrupt) { chip.NVIC.Dispatch(intr) }

func init() {
	interrupt.New(45, uartISR)
	interrupt.New(47, uartISR)
	interrupt.New(49, uartISR)
	interrupt.New(51, uartISR)
	interrupt.New(53, uartISR)
	interrupt.New(55, uartISR)

	chip.Clocks.AddClass(core.ClassUART, pinout.K60UARTs)
	UARTs = core.NewUARTBank(chip.Platform(pinout.K60), kinetis.Modules(pinout.K60UARTs))
}

func main() {
	var err error
	console, err = UARTs.Open(core.UARTConfig{
		TxPin: pinout.Pin('E', 8),
		RxPin: pinout.Pin('E', 9),
		Baud:  core.Baud115200,
		OnRx:  receive,
	})
	if err != nil {
		// nothing to report on; park
		for {
		}
	}

	core.SetDebugWriter(func(s string) {
		console.SendBytes([]byte(s))
		console.SendBytes([]byte("\r\n"))
	})
	core.SetDebugEnabled(true)
	core.SetFaultHandler(func(core.Fault, core.PeripheralClass, core.Module) {
		core.DumpEvents()
	})
	core.DebugPrintln("=== K60 console ===")

	console.SetRxIRQ(true)
	for {
		if c, ok := echo.get(); ok {
			console.SendByte(c)
		}
	}
}

// receive drains the receiver into the echo ring
func receive(u *core.UART) {
	for {
		c, ok := u.PeekByte()
		if !ok {
			return
		}
		echo.put(c)
	}
}
