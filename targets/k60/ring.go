//go:build tinygo && k60

package main

import "runtime/interrupt"

// ring is a single-producer byte queue filled from interrupt context.
// Bytes arriving while it is full are dropped.
type ring struct {
	buf        [64]byte
	head, tail uint8
}

func (r *ring) put(c byte) {
	next := (r.head + 1) % uint8(len(r.buf))
	if next == r.tail {
		return
	}
	r.buf[r.head] = c
	r.head = next
}

func (r *ring) get() (byte, bool) {
	state := interrupt.Disable()
	defer interrupt.Restore(state)
	if r.head == r.tail {
		return 0, false
	}
	c := r.buf[r.tail]
	r.tail = (r.tail + 1) % uint8(len(r.buf))
	return c, true
}
