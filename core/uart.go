package core

import "sync/atomic"

// Parity selects the UART parity mode. With parity enabled the frame is
// widened to 9 bits so the byte keeps all 8 data bits.
type Parity uint8

const (
	ParityNone Parity = iota
	ParityEven
	ParityOdd
)

// UARTConfig holds the configuration for one UART handle.
// The zero value is 2400 baud, no parity, FIFO off, no callbacks.
type UARTConfig struct {
	TxPin PinName
	RxPin PinName
	Baud  BaudRate

	Parity   Parity
	LoopMode bool // route Tx back into Rx inside the module

	// FIFO enables the hardware buffers; the watermarks set the interrupt
	// thresholds and are ignored when FIFO is false
	FIFO        bool
	TxWatermark Watermark
	RxWatermark Watermark

	// Callbacks run in interrupt context with the owning handle
	OnTx func(*UART)
	OnRx func(*UART)
}

// UARTBank owns every UART module of a chip and their interrupt entry point
type UARTBank struct {
	plat Platform
	mods []ModuleDesc
	reg  *Registry[UART]
	isr  Handler
}

// NewUARTBank creates a bank over mods, indexed by module number
func NewUARTBank(p Platform, mods []ModuleDesc) *UARTBank {
	b := &UARTBank{
		plat: p,
		mods: mods,
		reg:  NewRegistry[UART](len(mods)),
	}
	b.isr = b.handleIRQ
	return b
}

// Modules returns the number of modules in the bank
func (b *UARTBank) Modules() int {
	return len(b.mods)
}

// Owner returns the live handle of m, or nil
func (b *UARTBank) Owner(m Module) *UART {
	return b.reg.Lookup(m)
}

// Owned returns the modules that currently have a handle
func (b *UARTBank) Owned() ModuleSet {
	return b.reg.Owned()
}

// Resolve returns the module that the pin pair selects
func (b *UARTBank) Resolve(tx, rx PinName) (Module, error) {
	m, err := ResolveModule(b.plat.Pins, []SignalRequest{
		{Pin: tx, Role: RoleTx},
		{Pin: rx, Role: RoleRx},
	})
	if err == nil && int(m) >= len(b.mods) {
		return NoModule, ErrNoModule
	}
	return m, err
}

// UART is a handle to one UART module. Handles are created by
// UARTBank.Open and stay usable until Close or until ownership is moved
// away with MoveFrom. Every method is a no-op on an invalid handle.
//
// Ownership transfer moves every field except the two callbacks, which
// are copied: an interrupt taken during the transfer may run either
// handle's callbacks, and both copies stay intact.
type UART struct {
	bank   *UARTBank
	module Module
	regs   uartRegs
	irq    dispatch

	fifo    bool
	txDepth uint8
	rxDepth uint8

	onTx func(*UART)
	onRx func(*UART)

	pins  []PinLease
	gated bool
	valid atomic.Bool
}

// Open claims the UART module selected by cfg's pins and brings it up.
// On failure the returned handle is invalid and the error says why.
func (b *UARTBank) Open(cfg UARTConfig) (*UART, error) {
	u := &UART{bank: b, module: NoModule}

	m, err := b.Resolve(cfg.TxPin, cfg.RxPin)
	if err != nil {
		RecordEvent(EvtReject, ClassUART, NoModule, 0)
		return u, err
	}
	if !b.reg.Reserve(m, u) {
		RecordEvent(EvtReject, ClassUART, m, 0)
		return u, ErrModuleBusy
	}
	u.module = m
	u.regs = uartRegs{w: b.mods[m].Regs}

	if err := u.init(cfg); err != nil {
		u.teardown()
		RecordEvent(EvtReject, ClassUART, m, 0)
		return u, err
	}

	u.valid.Store(true)
	RecordEvent(EvtClaim, ClassUART, m, cfg.Baud.Hz())
	DebugPrintln("[UART] uart" + itoa(int(m)) + " open at " + itoa(int(cfg.Baud.Hz())))
	return u, nil
}

func (u *UART) init(cfg UARTConfig) error {
	b, m := u.bank, u.module
	desc := b.mods[m]

	b.plat.Clocks.SetClockGate(ClassUART, m, true)
	u.gated = true
	u.regs.C2().Set(0)

	div, err := SolveUARTDivisor(b.plat.Clocks.ReferenceClockHz(desc.Clock), cfg.Baud.Hz())
	if err != nil {
		raiseFault(FaultDivisorOverflow, ClassUART, m)
		return err
	}
	u.regs.setDivisor(div)

	if err := u.bindPins(cfg); err != nil {
		return err
	}

	u.initC1(cfg)
	u.initFIFO(cfg)

	u.irq = dispatch{
		ctl:    b.plat.IRQs,
		irq:    desc.IRQ,
		isr:    b.isr,
		enable: u.regs.C2(),
		txMask: UARTC2TIE,
		rxMask: UARTC2RIE,
	}
	u.onTx, u.onRx = cfg.OnTx, cfg.OnRx
	u.irq.setArmed(u.onTx != nil || u.onRx != nil, ClassUART, m)

	u.regs.C2().SetBits(UARTC2TE | UARTC2RE)
	return nil
}

func (u *UART) bindPins(cfg UARTConfig) error {
	pins := u.bank.plat.Pins
	for _, req := range [...]struct {
		pin  PinName
		role SignalRole
	}{{cfg.TxPin, RoleTx}, {cfg.RxPin, RoleRx}} {
		lease, err := u.bank.plat.Binder.Acquire(req.pin, pins.MuxSetting(req.pin, req.role))
		if err != nil {
			return err
		}
		u.pins = append(u.pins, lease)
	}
	return nil
}

func (u *UART) initC1(cfg UARTConfig) {
	c1 := u.regs.C1()
	c1.Set(0)
	c1.SetBit(UARTC1LOOPS, cfg.LoopMode)
	switch cfg.Parity {
	case ParityEven:
		c1.SetBits(UARTC1PE | UARTC1M)
	case ParityOdd:
		c1.SetBits(UARTC1PE | UARTC1M | UARTC1PT)
	}
}

func (u *UART) initFIFO(cfg UARTConfig) {
	r := u.regs
	r.CFIFO().Set(0)
	u.fifo = cfg.FIFO
	if !u.fifo {
		r.PFIFO().ClearBits(UARTPFIFOTXFE | UARTPFIFORXFE)
		u.txDepth, u.rxDepth = 1, 1
		return
	}

	r.PFIFO().SetBits(UARTPFIFOTXFE | UARTPFIFORXFE)
	u.txDepth = FIFODepth(r.PFIFO().Field(UARTPFIFOSizeMask, UARTPFIFOTXSizePos))
	u.rxDepth = FIFODepth(r.PFIFO().Field(UARTPFIFOSizeMask, UARTPFIFORXSizePos))
	r.TWFIFO().Set(TxThreshold(cfg.TxWatermark, u.txDepth))
	r.RWFIFO().Set(RxThreshold(cfg.RxWatermark, u.rxDepth))
	r.CFIFO().Set(UARTCFIFOTXFLUSH | UARTCFIFORXFLUSH)
}

// teardown undoes whatever init reached, in reverse order
func (u *UART) teardown() {
	b, m := u.bank, u.module
	if u.gated {
		// clears TIE and RIE along with TE and RE
		u.regs.C2().Set(0)
		if u.irq.armed {
			u.irq.setArmed(false, ClassUART, m)
		}
		b.plat.Clocks.SetClockGate(ClassUART, m, false)
		u.gated = false
	}
	for _, p := range u.pins {
		p.Release()
	}
	u.pins = nil
	b.reg.Release(m, u)
}

// Valid reports whether the handle owns a module
func (u *UART) Valid() bool {
	return u != nil && u.valid.Load()
}

// Module returns the owned module, or NoModule
func (u *UART) Module() Module {
	if !u.Valid() {
		return NoModule
	}
	return u.module
}

// FIFOEnabled reports whether the hardware buffers are in use
func (u *UART) FIFOEnabled() bool {
	return u.Valid() && u.fifo
}

// TxFIFODepth returns the transmit buffer depth, 1 without FIFO
func (u *UART) TxFIFODepth() uint8 {
	if !u.Valid() {
		return 0
	}
	return u.txDepth
}

// RxFIFODepth returns the receive buffer depth, 1 without FIFO
func (u *UART) RxFIFODepth() uint8 {
	if !u.Valid() {
		return 0
	}
	return u.rxDepth
}

// Close masks the interrupts, disables the module, gates its clock and
// releases the pins and the module. Closing an invalid handle does nothing.
func (u *UART) Close() {
	if !u.Valid() {
		return
	}
	u.irq.setArmed(false, ClassUART, u.module)
	u.valid.Store(false)
	u.teardown()
	RecordEvent(EvtRelease, ClassUART, u.module, 0)
	u.module = NoModule
}

// MoveFrom transfers src's module to u; u's own module, if any, is closed
// first. The callbacks are copied, everything else is moved, and src is
// left invalid. The registry slot is handed over in one step, so an
// interrupt always finds exactly one valid owner.
func (u *UART) MoveFrom(src *UART) error {
	if u == nil || src == nil {
		return ErrInvalidHandle
	}
	if u == src {
		return nil
	}
	u.Close()
	if !src.Valid() {
		return ErrInvalidHandle
	}

	u.onTx = src.onTx
	u.onRx = src.onRx

	u.bank, u.module, u.regs, u.irq = src.bank, src.module, src.regs, src.irq
	u.fifo, u.txDepth, u.rxDepth = src.fifo, src.txDepth, src.rxDepth
	u.pins, u.gated = src.pins, src.gated

	u.valid.Store(true)
	if !u.bank.reg.Transfer(u.module, src, u) {
		u.valid.Store(false)
		u.pins, u.gated, u.module = nil, false, NoModule
		return ErrMoveConflict
	}
	src.valid.Store(false)
	src.pins, src.gated, src.module = nil, false, NoModule
	RecordEvent(EvtMove, ClassUART, u.module, 0)
	return nil
}

// SetHandlers replaces both callbacks and re-arms the dispatcher. Both
// sub-sources are left disabled; enable them with SetTxIRQ and SetRxIRQ.
func (u *UART) SetHandlers(onTx, onRx func(*UART)) {
	if !u.Valid() {
		return
	}
	u.onTx, u.onRx = onTx, onRx
	u.irq.setArmed(onTx != nil || onRx != nil, ClassUART, u.module)
}

// SetTxIRQ enables or disables the transmit-empty interrupt
func (u *UART) SetTxIRQ(enabled bool) {
	if !u.Valid() {
		return
	}
	u.regs.C2().SetBit(UARTC2TIE, enabled)
}

// SetRxIRQ enables or disables the receive-full interrupt
func (u *UART) SetRxIRQ(enabled bool) {
	if !u.Valid() {
		return
	}
	u.regs.C2().SetBit(UARTC2RIE, enabled)
}

// SetLoopMode connects the transmitter to the receiver internally
func (u *UART) SetLoopMode(enabled bool) {
	if !u.Valid() {
		return
	}
	u.regs.C1().SetBit(UARTC1LOOPS, enabled)
}

// handleIRQ is the interrupt entry point shared by every module of the bank
func (b *UARTBank) handleIRQ() {
	m := moduleForIRQ(b.mods, b.plat.IRQs.ActiveIRQ())
	if m == NoModule {
		return
	}
	r := uartRegs{w: b.mods[m].Regs}
	c2, s1 := r.C2(), r.S1()

	u := b.reg.Lookup(m)
	if u == nil || !u.Valid() {
		c2.ClearBits(UARTC2TIE | UARTC2RIE)
		raiseFault(FaultOrphanIRQ, ClassUART, m)
		return
	}

	if c2.HasBits(UARTC2TIE) && s1.HasBits(UARTS1TDRE) {
		if cb := u.onTx; cb != nil {
			cb(u)
		} else {
			c2.ClearBits(UARTC2TIE)
			RecordEvent(EvtAutoMask, ClassUART, m, UARTC2TIE)
		}
	}

	if c2.HasBits(UARTC2RIE) && s1.HasBits(UARTS1RDRF) {
		if cb := u.onRx; cb != nil {
			cb(u)
		} else {
			c2.ClearBits(UARTC2RIE)
			RecordEvent(EvtAutoMask, ClassUART, m, UARTC2RIE)
		}
	}
}
