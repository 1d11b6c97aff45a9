package core

import "sync/atomic"

// SPIMode represents SPI clock polarity and phase (0-3)
// Mode 0: CPOL=0, CPHA=0 (clock idle low, sample on leading edge)
// Mode 1: CPOL=0, CPHA=1 (clock idle low, sample on trailing edge)
// Mode 2: CPOL=1, CPHA=0 (clock idle high, sample on leading edge)
// Mode 3: CPOL=1, CPHA=1 (clock idle high, sample on trailing edge)
type SPIMode uint8

// CPOL reports whether the clock idles high
func (m SPIMode) CPOL() bool { return m&2 != 0 }

// CPHA reports whether data is sampled on the trailing edge
func (m SPIMode) CPHA() bool { return m&1 != 0 }

// SPIMasterConfig holds the configuration for one SPI master handle.
// MISO and MOSI may be left unconnected, but not both.
type SPIMasterConfig struct {
	SCKPin  PinName
	MOSIPin PinName
	MISOPin PinName
	PCSPin  PinName

	RateKHz  uint32
	Mode     SPIMode
	LSBFirst bool
	Frame16  bool // 16-bit frames instead of 8-bit

	// Interrupt thresholds for modules with a FIFO
	TxWatermark Watermark
	RxWatermark Watermark

	// Callbacks run in interrupt context with the owning handle
	OnTx func(*SPIMaster)
	OnRx func(*SPIMaster)
}

// SPIBank owns every SPI module of a chip and their interrupt entry point
type SPIBank struct {
	plat Platform
	mods []ModuleDesc
	reg  *Registry[SPIMaster]
	isr  Handler
}

// NewSPIBank creates a bank over mods, indexed by module number
func NewSPIBank(p Platform, mods []ModuleDesc) *SPIBank {
	b := &SPIBank{
		plat: p,
		mods: mods,
		reg:  NewRegistry[SPIMaster](len(mods)),
	}
	b.isr = b.handleIRQ
	return b
}

// Modules returns the number of modules in the bank
func (b *SPIBank) Modules() int {
	return len(b.mods)
}

// Owner returns the live handle of m, or nil
func (b *SPIBank) Owner(m Module) *SPIMaster {
	return b.reg.Lookup(m)
}

// Owned returns the modules that currently have a handle
func (b *SPIBank) Owned() ModuleSet {
	return b.reg.Owned()
}

// Resolve returns the module that cfg's pins select
func (b *SPIBank) Resolve(cfg SPIMasterConfig) (Module, error) {
	if cfg.MISOPin == NoPin && cfg.MOSIPin == NoPin {
		return NoModule, ErrNoDataPin
	}
	m, err := ResolveModule(b.plat.Pins, spiSignals(cfg))
	if err == nil && int(m) >= len(b.mods) {
		return NoModule, ErrNoModule
	}
	return m, err
}

func spiSignals(cfg SPIMasterConfig) []SignalRequest {
	return []SignalRequest{
		{Pin: cfg.SCKPin, Role: RoleSCK},
		{Pin: cfg.PCSPin, Role: RolePCS},
		{Pin: cfg.MOSIPin, Role: RoleMOSI, Optional: true},
		{Pin: cfg.MISOPin, Role: RoleMISO, Optional: true},
	}
}

// SPIMaster is a handle to one SPI module in master mode, with a single
// hardware-driven chip select. It follows the same ownership rules as UART:
// methods are no-ops on an invalid handle, and MoveFrom copies the
// callbacks while moving everything else.
type SPIMaster struct {
	bank   *SPIBank
	module Module
	regs   spiRegs
	irq    dispatch

	depth   uint8 // FIFO depth in frames, 0 for the plain double buffer
	frame16 bool

	onTx func(*SPIMaster)
	onRx func(*SPIMaster)

	pins  []PinLease
	gated bool
	valid atomic.Bool
}

// Open claims the SPI module selected by cfg's pins and brings it up as a
// master. On failure the returned handle is invalid and the error says why.
func (b *SPIBank) Open(cfg SPIMasterConfig) (*SPIMaster, error) {
	s := &SPIMaster{bank: b, module: NoModule}

	m, err := b.Resolve(cfg)
	if err != nil {
		RecordEvent(EvtReject, ClassSPI, NoModule, 0)
		return s, err
	}
	if !b.reg.Reserve(m, s) {
		RecordEvent(EvtReject, ClassSPI, m, 0)
		return s, ErrModuleBusy
	}
	s.module = m
	s.regs = spiRegs{w: b.mods[m].Regs}

	if err := s.init(cfg); err != nil {
		s.teardown()
		RecordEvent(EvtReject, ClassSPI, m, 0)
		return s, err
	}

	s.valid.Store(true)
	RecordEvent(EvtClaim, ClassSPI, m, cfg.RateKHz)
	DebugPrintln("[SPI] spi" + itoa(int(m)) + " open at " + itoa(int(cfg.RateKHz)) + "kHz")
	return s, nil
}

func (s *SPIMaster) init(cfg SPIMasterConfig) error {
	b, m := s.bank, s.module
	desc := b.mods[m]
	r := s.regs

	b.plat.Clocks.SetClockGate(ClassSPI, m, true)
	s.gated = true
	r.C1().Set(0)

	refKHz := b.plat.Clocks.ReferenceClockHz(desc.Clock) / 1000
	r.BR().Set(SolveSPIDivisor(refKHz, cfg.RateKHz).Register())

	if err := s.bindPins(cfg); err != nil {
		return err
	}

	s.frame16 = cfg.Frame16
	c2 := uint8(SPIC2MODFEN)
	if s.frame16 {
		c2 |= SPIC2SPIMODE
	}
	r.C2().Set(c2)

	c1 := uint8(SPIC1MSTR | SPIC1SSOE)
	if cfg.Mode.CPOL() {
		c1 |= SPIC1CPOL
	}
	if cfg.Mode.CPHA() {
		c1 |= SPIC1CPHA
	}
	if cfg.LSBFirst {
		c1 |= SPIC1LSBFE
	}
	r.C1().Set(c1)

	if desc.FIFODepth > 0 {
		s.initFIFO(cfg, desc.FIFODepth)
	}

	s.irq = dispatch{
		ctl:    b.plat.IRQs,
		irq:    desc.IRQ,
		isr:    b.isr,
		enable: r.C1(),
		txMask: SPIC1SPTIE,
		rxMask: SPIC1SPIE,
	}
	s.onTx, s.onRx = cfg.OnTx, cfg.OnRx
	s.irq.setArmed(s.onTx != nil || s.onRx != nil, ClassSPI, m)

	r.C1().SetBits(SPIC1SPE)
	return nil
}

func (s *SPIMaster) bindPins(cfg SPIMasterConfig) error {
	pins := s.bank.plat.Pins
	for _, req := range spiSignals(cfg) {
		if req.Pin == NoPin {
			continue
		}
		lease, err := s.bank.plat.Binder.Acquire(req.Pin, pins.MuxSetting(req.Pin, req.Role))
		if err != nil {
			return err
		}
		s.pins = append(s.pins, lease)
	}
	return nil
}

// initFIFO turns on FIFO mode and picks the nearest near-empty and
// near-full marks. The FIFO holds 64 bits, and each mark selects one of
// two fill levels.
func (s *SPIMaster) initFIFO(cfg SPIMasterConfig, depth uint8) {
	s.depth = depth
	c3 := uint8(SPIC3FIFOMODE)
	if TxThreshold(cfg.TxWatermark, depth) >= depth/2 {
		c3 |= SPIC3TNEAREFMARK
	}
	if RxThreshold(cfg.RxWatermark, depth) > depth/2 {
		c3 |= SPIC3RNFULLFMARK
	}
	s.regs.C3().Set(c3)
}

func (s *SPIMaster) teardown() {
	b, m := s.bank, s.module
	if s.gated {
		// clears SPIE, SPTIE and SPE
		s.regs.C1().Set(0)
		if s.irq.armed {
			s.irq.setArmed(false, ClassSPI, m)
		}
		b.plat.Clocks.SetClockGate(ClassSPI, m, false)
		s.gated = false
	}
	for _, p := range s.pins {
		p.Release()
	}
	s.pins = nil
	b.reg.Release(m, s)
}

// Valid reports whether the handle owns a module
func (s *SPIMaster) Valid() bool {
	return s != nil && s.valid.Load()
}

// Module returns the owned module, or NoModule
func (s *SPIMaster) Module() Module {
	if !s.Valid() {
		return NoModule
	}
	return s.module
}

// FIFODepth returns the FIFO depth in frames, 0 without FIFO
func (s *SPIMaster) FIFODepth() uint8 {
	if !s.Valid() {
		return 0
	}
	return s.depth
}

// Close masks the interrupts, disables the module, gates its clock and
// releases the pins and the module. Closing an invalid handle does nothing.
func (s *SPIMaster) Close() {
	if !s.Valid() {
		return
	}
	s.irq.setArmed(false, ClassSPI, s.module)
	s.valid.Store(false)
	s.teardown()
	RecordEvent(EvtRelease, ClassSPI, s.module, 0)
	s.module = NoModule
}

// MoveFrom transfers src's module to s; s's own module, if any, is closed
// first. See UART.MoveFrom.
func (s *SPIMaster) MoveFrom(src *SPIMaster) error {
	if s == nil || src == nil {
		return ErrInvalidHandle
	}
	if s == src {
		return nil
	}
	s.Close()
	if !src.Valid() {
		return ErrInvalidHandle
	}

	s.onTx = src.onTx
	s.onRx = src.onRx

	s.bank, s.module, s.regs, s.irq = src.bank, src.module, src.regs, src.irq
	s.depth, s.frame16 = src.depth, src.frame16
	s.pins, s.gated = src.pins, src.gated

	s.valid.Store(true)
	if !s.bank.reg.Transfer(s.module, src, s) {
		s.valid.Store(false)
		s.pins, s.gated, s.module = nil, false, NoModule
		return ErrMoveConflict
	}
	src.valid.Store(false)
	src.pins, src.gated, src.module = nil, false, NoModule
	RecordEvent(EvtMove, ClassSPI, s.module, 0)
	return nil
}

// SetHandlers replaces both callbacks and re-arms the dispatcher with both
// sub-sources disabled
func (s *SPIMaster) SetHandlers(onTx, onRx func(*SPIMaster)) {
	if !s.Valid() {
		return
	}
	s.onTx, s.onRx = onTx, onRx
	s.irq.setArmed(onTx != nil || onRx != nil, ClassSPI, s.module)
}

// SetTxIRQ enables or disables the transmit-empty interrupt
func (s *SPIMaster) SetTxIRQ(enabled bool) {
	if !s.Valid() {
		return
	}
	s.regs.C1().SetBit(SPIC1SPTIE, enabled)
}

// SetRxIRQ enables or disables the receive-full interrupt
func (s *SPIMaster) SetRxIRQ(enabled bool) {
	if !s.Valid() {
		return
	}
	s.regs.C1().SetBit(SPIC1SPIE, enabled)
}

// SetEnable starts or stops the module without releasing it
func (s *SPIMaster) SetEnable(enabled bool) {
	if !s.Valid() {
		return
	}
	s.regs.C1().SetBit(SPIC1SPE, enabled)
}

// handleIRQ is the interrupt entry point shared by every module of the
// bank. Receive is serviced before transmit.
func (b *SPIBank) handleIRQ() {
	m := moduleForIRQ(b.mods, b.plat.IRQs.ActiveIRQ())
	if m == NoModule {
		return
	}
	r := spiRegs{w: b.mods[m].Regs}
	c1, st := r.C1(), r.S()

	s := b.reg.Lookup(m)
	if s == nil || !s.Valid() {
		c1.ClearBits(SPIC1SPIE | SPIC1SPTIE)
		raiseFault(FaultOrphanIRQ, ClassSPI, m)
		return
	}

	if c1.HasBits(SPIC1SPIE) && st.HasBits(SPISSPRF) {
		if cb := s.onRx; cb != nil {
			cb(s)
		} else {
			c1.ClearBits(SPIC1SPIE)
			RecordEvent(EvtAutoMask, ClassSPI, m, SPIC1SPIE)
		}
	}

	if c1.HasBits(SPIC1SPTIE) && st.HasBits(SPISSPTEF) {
		if cb := s.onTx; cb != nil {
			cb(s)
		} else {
			c1.ClearBits(SPIC1SPTIE)
			RecordEvent(EvtAutoMask, ClassSPI, m, SPIC1SPTIE)
		}
	}
}
