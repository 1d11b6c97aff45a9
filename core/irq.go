package core

// dispatch is the interrupt wiring of one module: its controller line, the
// bank handler, and the register holding the transmit and receive
// sub-source enables.
type dispatch struct {
	ctl    InterruptController
	irq    IRQ
	isr    Handler
	enable Reg8
	txMask uint8
	rxMask uint8
	armed  bool
}

// maskSources clears both sub-source enables
func (d *dispatch) maskSources() {
	d.enable.ClearBits(d.txMask | d.rxMask)
}

// setArmed moves the line between Masked and Armed. Both sub-sources are
// masked first so a pending transmit-empty condition cannot fire into a
// half-configured owner; callers re-enable them explicitly.
func (d *dispatch) setArmed(armed bool, class PeripheralClass, m Module) {
	d.maskSources()
	if armed {
		d.ctl.InstallHandler(d.irq, d.isr)
		d.ctl.SetEnabled(d.irq, true)
		RecordEvent(EvtArm, class, m, uint32(d.irq))
	} else {
		d.ctl.SetEnabled(d.irq, false)
		d.ctl.InstallHandler(d.irq, nil)
		if d.armed {
			RecordEvent(EvtDisarm, class, m, uint32(d.irq))
		}
	}
	d.armed = armed
}

// moduleForIRQ maps an interrupt line back to the module that raises it
func moduleForIRQ(mods []ModuleDesc, irq IRQ) Module {
	for i := range mods {
		if mods[i].IRQ == irq {
			return Module(i)
		}
	}
	return NoModule
}
