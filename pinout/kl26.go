package pinout

import "kinhal/core"

// KL26SPIs describes SPI0 and SPI1 of the KL26. SPI0 runs from the bus
// clock with a plain double buffer; SPI1 runs from the core clock and has
// a 64-bit FIFO, four 16-bit frames.
var KL26SPIs = []ModuleInfo{
	{Base: 0x40076000, IRQ: 10, Clock: core.ClockBus, Gate: Gate{SIMSCGC4, 22}},
	{Base: 0x40077000, IRQ: 11, Clock: core.ClockCore, Gate: Gate{SIMSCGC4, 23}, FIFODepth: 4},
}

// KL26 is the SPI pin table of the KL26. MOSI and MISO can be swapped on
// most pins through the Alt5 setting.
var KL26 = NewTable([]Entry{
	{Pin('A', 15), core.RoleSCK, 0, Alt2},
	{Pin('C', 5), core.RoleSCK, 0, Alt2},
	{Pin('D', 1), core.RoleSCK, 0, Alt2},
	{Pin('E', 17), core.RoleSCK, 0, Alt2},
	{Pin('A', 14), core.RolePCS, 0, Alt2},
	{Pin('C', 4), core.RolePCS, 0, Alt2},
	{Pin('D', 0), core.RolePCS, 0, Alt2},
	{Pin('E', 16), core.RolePCS, 0, Alt2},
	{Pin('A', 16), core.RoleMOSI, 0, Alt2},
	{Pin('C', 6), core.RoleMOSI, 0, Alt2},
	{Pin('D', 2), core.RoleMOSI, 0, Alt2},
	{Pin('E', 18), core.RoleMOSI, 0, Alt2},
	{Pin('A', 17), core.RoleMOSI, 0, Alt5},
	{Pin('C', 7), core.RoleMOSI, 0, Alt5},
	{Pin('D', 3), core.RoleMOSI, 0, Alt5},
	{Pin('E', 19), core.RoleMOSI, 0, Alt5},
	{Pin('A', 17), core.RoleMISO, 0, Alt2},
	{Pin('C', 7), core.RoleMISO, 0, Alt2},
	{Pin('D', 3), core.RoleMISO, 0, Alt2},
	{Pin('E', 19), core.RoleMISO, 0, Alt2},
	{Pin('A', 16), core.RoleMISO, 0, Alt5},
	{Pin('C', 6), core.RoleMISO, 0, Alt5},
	{Pin('D', 2), core.RoleMISO, 0, Alt5},
	{Pin('E', 18), core.RoleMISO, 0, Alt5},

	{Pin('B', 11), core.RoleSCK, 1, Alt2},
	{Pin('D', 5), core.RoleSCK, 1, Alt2},
	{Pin('E', 2), core.RoleSCK, 1, Alt2},
	{Pin('B', 10), core.RolePCS, 1, Alt2},
	{Pin('D', 4), core.RolePCS, 1, Alt2},
	{Pin('E', 4), core.RolePCS, 1, Alt2},
	{Pin('B', 16), core.RoleMOSI, 1, Alt2},
	{Pin('D', 6), core.RoleMOSI, 1, Alt2},
	{Pin('E', 1), core.RoleMOSI, 1, Alt2},
	{Pin('B', 17), core.RoleMOSI, 1, Alt5},
	{Pin('D', 7), core.RoleMOSI, 1, Alt5},
	{Pin('E', 3), core.RoleMOSI, 1, Alt5},
	{Pin('B', 17), core.RoleMISO, 1, Alt2},
	{Pin('D', 7), core.RoleMISO, 1, Alt2},
	{Pin('E', 3), core.RoleMISO, 1, Alt2},
	{Pin('B', 16), core.RoleMISO, 1, Alt5},
	{Pin('D', 6), core.RoleMISO, 1, Alt5},
	{Pin('E', 1), core.RoleMISO, 1, Alt5},
})
