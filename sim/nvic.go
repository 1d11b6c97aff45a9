package sim

import (
	"sync"

	"kinhal/core"
)

// NVIC is a simulated interrupt controller. Raised interrupts run their
// handler synchronously on the raising goroutine.
type NVIC struct {
	mu       sync.Mutex
	handlers map[core.IRQ]core.Handler
	enabled  map[core.IRQ]bool
	active   []core.IRQ

	// Missed counts raises on lines that were masked or had no handler
	Missed int
}

// NewNVIC returns a controller with every line masked
func NewNVIC() *NVIC {
	return &NVIC{
		handlers: make(map[core.IRQ]core.Handler),
		enabled:  make(map[core.IRQ]bool),
	}
}

// InstallHandler implements core.InterruptController
func (n *NVIC) InstallHandler(irq core.IRQ, h core.Handler) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if h == nil {
		delete(n.handlers, irq)
		return
	}
	n.handlers[irq] = h
}

// SetEnabled implements core.InterruptController
func (n *NVIC) SetEnabled(irq core.IRQ, enabled bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.enabled[irq] = enabled
}

// ActiveIRQ implements core.InterruptController. It returns -1 outside
// interrupt context.
func (n *NVIC) ActiveIRQ() core.IRQ {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.active) == 0 {
		return -1
	}
	return n.active[len(n.active)-1]
}

// Enabled reports whether irq is unmasked
func (n *NVIC) Enabled(irq core.IRQ) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.enabled[irq]
}

// Handler returns the handler installed for irq, or nil
func (n *NVIC) Handler(irq core.IRQ) core.Handler {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.handlers[irq]
}

// Raise services irq if it is enabled and has a handler
func (n *NVIC) Raise(irq core.IRQ) bool {
	n.mu.Lock()
	h := n.handlers[irq]
	if h == nil || !n.enabled[irq] {
		n.Missed++
		n.mu.Unlock()
		return false
	}
	n.mu.Unlock()
	n.Invoke(irq, h)
	return true
}

// Invoke runs h as the handler of irq regardless of masking, modelling an
// interrupt that was already pending when the line was reconfigured
func (n *NVIC) Invoke(irq core.IRQ, h core.Handler) {
	n.mu.Lock()
	n.active = append(n.active, irq)
	n.mu.Unlock()

	defer func() {
		n.mu.Lock()
		n.active = n.active[:len(n.active)-1]
		n.mu.Unlock()
	}()
	h()
}

var _ core.InterruptController = (*NVIC)(nil)
