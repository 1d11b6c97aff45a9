package core

// PeripheralClass identifies a family of interchangeable peripheral modules
type PeripheralClass uint8

const (
	ClassUART PeripheralClass = iota
	ClassSPI
)

func (c PeripheralClass) String() string {
	switch c {
	case ClassUART:
		return "uart"
	case ClassSPI:
		return "spi"
	default:
		return "class" + itoa(int(c))
	}
}

// Module is the index of one physical peripheral unit within its class
type Module int

// NoModule is reported when no single module could be resolved
const NoModule Module = -1

// ModuleSet is a bitmask of candidate modules, bit n for Module n
type ModuleSet uint32

// AllModules matches every module index
const AllModules ModuleSet = ^ModuleSet(0)

// ModulesOf builds a set from individual modules
func ModulesOf(mods ...Module) ModuleSet {
	var s ModuleSet
	for _, m := range mods {
		if m >= 0 && m < 32 {
			s |= 1 << uint(m)
		}
	}
	return s
}

// Has reports whether m is in the set
func (s ModuleSet) Has(m Module) bool {
	return m >= 0 && m < 32 && s&(1<<uint(m)) != 0
}

// Only returns the single member of the set.
// ok is false for an empty set or one with more than one member.
func (s ModuleSet) Only() (Module, bool) {
	if s == 0 || s&(s-1) != 0 {
		return NoModule, false
	}
	m := Module(0)
	for s&1 == 0 {
		s >>= 1
		m++
	}
	return m, true
}

// PinName identifies a physical pin. The zero value means "not connected".
type PinName uint16

// NoPin marks an unused signal
const NoPin PinName = 0

// SignalRole is the electrical function a pin serves for a peripheral
type SignalRole uint8

const (
	RoleTx SignalRole = iota
	RoleRx
	RoleSCK
	RoleMOSI
	RoleMISO
	RolePCS
)

var roleNames = [...]string{"tx", "rx", "sck", "mosi", "miso", "pcs"}

func (r SignalRole) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return "role" + itoa(int(r))
}

// MuxSetting is the port multiplexer alternative that routes a signal to a pin
type MuxSetting uint8

// PinTable maps pins to the modules and mux settings that can drive them
type PinTable interface {
	// ModuleCandidates returns every module that can use pin for role
	ModuleCandidates(pin PinName, role SignalRole) ModuleSet

	// MuxSetting returns the mux alternative for pin in role
	MuxSetting(pin PinName, role SignalRole) MuxSetting
}

// ClockSelector picks the reference clock feeding a module
type ClockSelector uint8

const (
	ClockCore ClockSelector = iota
	ClockBus
)

// Clocks is the clock gate and frequency subsystem
type Clocks interface {
	SetClockGate(class PeripheralClass, m Module, enabled bool)
	ReferenceClockHz(sel ClockSelector) uint32
}

// IRQ is an interrupt controller line number
type IRQ int16

// Handler is an interrupt service entry point. It carries no context;
// the owner is found through the module registry.
type Handler func()

// InterruptController installs handlers and masks interrupt lines
type InterruptController interface {
	// InstallHandler binds h to irq. A nil h uninstalls.
	InstallHandler(irq IRQ, h Handler)
	SetEnabled(irq IRQ, enabled bool)
	// ActiveIRQ returns the line currently being serviced
	ActiveIRQ() IRQ
}

// PinLease is exclusive use of a pin, held until Release
type PinLease interface {
	Release()
}

// PinBinder hands out exclusive pin leases and applies the mux setting
type PinBinder interface {
	Acquire(pin PinName, mux MuxSetting) (PinLease, error)
}

// Platform bundles the collaborators a peripheral bank needs
type Platform struct {
	Pins   PinTable
	Clocks Clocks
	IRQs   InterruptController
	Binder PinBinder
}

// ModuleDesc describes one physical module of a bank
type ModuleDesc struct {
	Regs  Window
	Clock ClockSelector
	IRQ   IRQ

	// FIFODepth is the frame depth of an SPI module's FIFO, 0 for none.
	// UART modules report their depth through PFIFO instead.
	FIFODepth uint8
}
