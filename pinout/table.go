package pinout

import (
	"golang.org/x/exp/slices"

	"kinhal/core"
)

// Alternative mux settings of the PORT_PCR MUX field
const (
	AltGPIO core.MuxSetting = 1
	Alt2    core.MuxSetting = 2
	Alt3    core.MuxSetting = 3
	Alt4    core.MuxSetting = 4
	Alt5    core.MuxSetting = 5
)

// Entry routes one pin to one module signal
type Entry struct {
	Pin    core.PinName
	Role   core.SignalRole
	Module core.Module
	Mux    core.MuxSetting
}

// Table is a static pin multiplexing table. It implements core.PinTable.
type Table struct {
	entries []Entry
}

// NewTable wraps entries
func NewTable(entries []Entry) *Table {
	return &Table{entries: entries}
}

// ModuleCandidates returns every module that pin can serve in role
func (t *Table) ModuleCandidates(pin core.PinName, role core.SignalRole) core.ModuleSet {
	var set core.ModuleSet
	for _, e := range t.entries {
		if e.Pin == pin && e.Role == role {
			set |= core.ModulesOf(e.Module)
		}
	}
	return set
}

// MuxSetting returns the mux alternative for pin in role, or AltGPIO if
// the pin cannot serve the role
func (t *Table) MuxSetting(pin core.PinName, role core.SignalRole) core.MuxSetting {
	for _, e := range t.entries {
		if e.Pin == pin && e.Role == role {
			return e.Mux
		}
	}
	return AltGPIO
}

// Pins lists the pins that can serve role on module m, in pin order
func (t *Table) Pins(m core.Module, role core.SignalRole) []core.PinName {
	var out []core.PinName
	for _, e := range t.entries {
		if e.Module == m && e.Role == role && !slices.Contains(out, e.Pin) {
			out = append(out, e.Pin)
		}
	}
	slices.Sort(out)
	return out
}

// Entries returns a copy of the table
func (t *Table) Entries() []Entry {
	return slices.Clone(t.entries)
}

var _ core.PinTable = (*Table)(nil)
