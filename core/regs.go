package core

// Window is the byte-addressed register block of one peripheral module.
// On hardware it is backed by memory-mapped I/O; host builds use the
// register models in package sim.
type Window interface {
	Load8(off uint8) uint8
	Store8(off uint8, v uint8)
}

// Reg8 is a single 8-bit register inside a Window.
// The helpers mirror volatile.Register8 so driver code reads the same on
// hardware and on the host.
type Reg8 struct {
	w   Window
	off uint8
}

// RegAt returns the register at byte offset off of w.
func RegAt(w Window, off uint8) Reg8 {
	return Reg8{w: w, off: off}
}

// Get reads the register.
func (r Reg8) Get() uint8 {
	return r.w.Load8(r.off)
}

// Set writes the register.
func (r Reg8) Set(v uint8) {
	r.w.Store8(r.off, v)
}

// SetBits sets the bits in mask with a read-modify-write.
func (r Reg8) SetBits(mask uint8) {
	r.w.Store8(r.off, r.w.Load8(r.off)|mask)
}

// ClearBits clears the bits in mask with a read-modify-write.
func (r Reg8) ClearBits(mask uint8) {
	r.w.Store8(r.off, r.w.Load8(r.off)&^mask)
}

// HasBits reports whether any bit in mask is set.
func (r Reg8) HasBits(mask uint8) bool {
	return r.w.Load8(r.off)&mask != 0
}

// SetBit sets or clears mask depending on on.
func (r Reg8) SetBit(mask uint8, on bool) {
	if on {
		r.SetBits(mask)
	} else {
		r.ClearBits(mask)
	}
}

// ReplaceBits replaces the field mask<<pos with value.
func (r Reg8) ReplaceBits(value, mask, pos uint8) {
	v := r.w.Load8(r.off) &^ (mask << pos)
	r.w.Store8(r.off, v|(value&mask)<<pos)
}

// Field extracts the field mask<<pos.
func (r Reg8) Field(mask, pos uint8) uint8 {
	return (r.w.Load8(r.off) >> pos) & mask
}
