package core

// Fault is an invariant violation detected by a driver. Faults are not
// returned to callers; they go to the fault handler.
type Fault uint8

const (
	// FaultOrphanIRQ: an interrupt fired for a module with no live owner
	FaultOrphanIRQ Fault = iota + 1
	// FaultDivisorOverflow: the baud divisor does not fit its register field
	FaultDivisorOverflow
)

func (f Fault) String() string {
	switch f {
	case FaultOrphanIRQ:
		return "orphan_irq"
	case FaultDivisorOverflow:
		return "divisor_overflow"
	default:
		return "fault" + itoa(int(f))
	}
}

// FaultHandler receives faults. It may run in interrupt context.
type FaultHandler func(f Fault, class PeripheralClass, m Module)

var faultHandler FaultHandler

// SetFaultHandler installs h as the fault hook. A nil h restores the
// default, which only records and prints the fault.
func SetFaultHandler(h FaultHandler) {
	faultHandler = h
}

// raiseFault records f and forwards it to the installed handler
func raiseFault(f Fault, class PeripheralClass, m Module) {
	RecordEvent(EvtFault, class, m, uint32(f))
	DebugPrintln("[HAL] fault " + f.String() + " on " + class.String() + itoa(int(m)))
	if h := faultHandler; h != nil {
		h(f, class, m)
	}
}
