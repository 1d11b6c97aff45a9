package pinout

import "kinhal/core"

// Gate is a clock gate bit in the SIM block
type Gate struct {
	Offset uint16 // SIM_SCGCn offset from the SIM base
	Bit    uint8
}

// ModuleInfo is the fixed silicon description of one peripheral module
type ModuleInfo struct {
	Base      uintptr
	IRQ       core.IRQ
	Clock     core.ClockSelector
	Gate      Gate
	FIFOCode  uint8 // UART: PFIFO size code of each buffer
	FIFODepth uint8 // SPI: FIFO depth in frames
}

const (
	SIMBase   = 0x40047000
	SIMSCGC1  = 0x1028
	SIMSCGC4  = 0x1034
	PORTABase = 0x40049000
	PORTStep  = 0x1000
)

// K60UARTs describes UART0..UART5 of the K60. UART0 and UART1 run from
// the core clock and carry 8-entry FIFOs.
var K60UARTs = []ModuleInfo{
	{Base: 0x4006A000, IRQ: 45, Clock: core.ClockCore, Gate: Gate{SIMSCGC4, 10}, FIFOCode: 2},
	{Base: 0x4006B000, IRQ: 47, Clock: core.ClockCore, Gate: Gate{SIMSCGC4, 11}, FIFOCode: 2},
	{Base: 0x4006C000, IRQ: 49, Clock: core.ClockBus, Gate: Gate{SIMSCGC4, 12}},
	{Base: 0x4006D000, IRQ: 51, Clock: core.ClockBus, Gate: Gate{SIMSCGC4, 13}},
	{Base: 0x400EA000, IRQ: 53, Clock: core.ClockBus, Gate: Gate{SIMSCGC1, 10}},
	{Base: 0x400EB000, IRQ: 55, Clock: core.ClockBus, Gate: Gate{SIMSCGC1, 11}},
}

// K60 is the UART pin table of the K60 in the 144-pin package
var K60 = NewTable([]Entry{
	{Pin('A', 2), core.RoleTx, 0, Alt2},
	{Pin('A', 14), core.RoleTx, 0, Alt3},
	{Pin('B', 17), core.RoleTx, 0, Alt3},
	{Pin('D', 7), core.RoleTx, 0, Alt3},
	{Pin('A', 1), core.RoleRx, 0, Alt2},
	{Pin('A', 15), core.RoleRx, 0, Alt3},
	{Pin('B', 16), core.RoleRx, 0, Alt3},
	{Pin('D', 6), core.RoleRx, 0, Alt3},

	{Pin('C', 4), core.RoleTx, 1, Alt3},
	{Pin('E', 0), core.RoleTx, 1, Alt3},
	{Pin('C', 3), core.RoleRx, 1, Alt3},
	{Pin('E', 1), core.RoleRx, 1, Alt3},

	{Pin('D', 3), core.RoleTx, 2, Alt3},
	{Pin('D', 2), core.RoleRx, 2, Alt3},

	{Pin('B', 11), core.RoleTx, 3, Alt3},
	{Pin('C', 17), core.RoleTx, 3, Alt3},
	{Pin('E', 4), core.RoleTx, 3, Alt3},
	{Pin('B', 10), core.RoleRx, 3, Alt3},
	{Pin('C', 16), core.RoleRx, 3, Alt3},
	{Pin('E', 5), core.RoleRx, 3, Alt3},

	{Pin('C', 15), core.RoleTx, 4, Alt3},
	{Pin('E', 24), core.RoleTx, 4, Alt3},
	{Pin('C', 14), core.RoleRx, 4, Alt3},
	{Pin('E', 25), core.RoleRx, 4, Alt3},

	{Pin('D', 9), core.RoleTx, 5, Alt3},
	{Pin('E', 8), core.RoleTx, 5, Alt3},
	{Pin('D', 8), core.RoleRx, 5, Alt3},
	{Pin('E', 9), core.RoleRx, 5, Alt3},
})
