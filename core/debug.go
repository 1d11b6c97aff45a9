package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// Event captures a driver lifecycle or interrupt event for post-mortem analysis
type Event struct {
	Kind   uint8           // Event kind code
	Class  PeripheralClass // Peripheral class of the module
	Module Module          // Module index
	Value  uint32          // Context-dependent value
}

// Event kind codes
const (
	EvtClaim    = 1 // Module claimed by a new handle
	EvtReject   = 2 // Construction rejected
	EvtRelease  = 3 // Module released on Close
	EvtMove     = 4 // Ownership moved to another handle
	EvtArm      = 5 // Dispatcher armed
	EvtDisarm   = 6 // Dispatcher masked
	EvtAutoMask = 7 // Sub-source masked for lack of a callback, Value is the enable bit
	EvtFault    = 8 // Fault raised, Value is the Fault code
)

const (
	EventRingSize = 32 // Keep last 32 events for post-mortem
)

var (
	// debugPrintln is the global debug print function (can be set by platform code)
	debugPrintln DebugWriter = func(s string) {}

	// debugEnabled controls whether debug output is active
	debugEnabled bool = false

	eventRing     [EventRingSize]Event
	eventRingHead uint8
	eventCount    uint32
)

// SetDebugWriter sets the platform-specific debug output function.
// A nil writer silences output.
func SetDebugWriter(writer DebugWriter) {
	if writer == nil {
		writer = func(string) {}
	}
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// IsDebugEnabled returns whether debug output is enabled
func IsDebugEnabled() bool {
	return debugEnabled
}

// DebugPrintln writes a debug message using the platform-specific writer
func DebugPrintln(msg string) {
	if debugEnabled {
		debugPrintln(msg)
	}
}

// RecordEvent captures an event in the ring buffer. Safe from interrupt context.
func RecordEvent(kind uint8, class PeripheralClass, m Module, value uint32) {
	state := enterCritical()
	eventRing[eventRingHead] = Event{Kind: kind, Class: class, Module: m, Value: value}
	eventRingHead = (eventRingHead + 1) % EventRingSize
	eventCount++
	exitCritical(state)
}

// Events returns the recorded events, oldest first
func Events() []Event {
	state := enterCritical()
	defer exitCritical(state)

	n := eventCount
	if n > EventRingSize {
		n = EventRingSize
	}
	out := make([]Event, 0, n)
	start := (int(eventRingHead) + EventRingSize - int(n)) % EventRingSize
	for i := 0; i < int(n); i++ {
		out = append(out, eventRing[(start+i)%EventRingSize])
	}
	return out
}

// EventName returns the short name of an event kind
func EventName(kind uint8) string {
	switch kind {
	case EvtClaim:
		return "CLAIM"
	case EvtReject:
		return "REJECT"
	case EvtRelease:
		return "RELEASE"
	case EvtMove:
		return "MOVE"
	case EvtArm:
		return "ARM"
	case EvtDisarm:
		return "DISARM"
	case EvtAutoMask:
		return "AUTOMASK"
	case EvtFault:
		return "FAULT!"
	default:
		return "UNKNOWN"
	}
}

// DumpEvents writes the event ring through the debug writer, ignoring the
// enabled flag (call on shutdown/error)
func DumpEvents() {
	debugPrintln("[HAL] === Event Ring Dump ===")
	for _, evt := range Events() {
		debugPrintln("[HAL] " + EventName(evt.Kind) +
			" " + evt.Class.String() + itoa(int(evt.Module)) +
			" v=" + itoa(int(evt.Value)))
	}
	debugPrintln("[HAL] === End Dump ===")
}

// ClearEvents clears the event ring
func ClearEvents() {
	state := enterCritical()
	for i := range eventRing {
		eventRing[i] = Event{}
	}
	eventRingHead = 0
	eventCount = 0
	exitCritical(state)
}
