package sim

import (
	"sync"

	"kinhal/core"
)

// Binder hands out exclusive pin leases and remembers each pin's mux
type Binder struct {
	mu    sync.Mutex
	owned map[core.PinName]core.MuxSetting
}

// NewBinder returns a binder with every pin free
func NewBinder() *Binder {
	return &Binder{owned: make(map[core.PinName]core.MuxSetting)}
}

// Acquire implements core.PinBinder
func (b *Binder) Acquire(pin core.PinName, mux core.MuxSetting) (core.PinLease, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, busy := b.owned[pin]; busy {
		return nil, core.ErrPinBusy
	}
	b.owned[pin] = mux
	return &lease{b: b, pin: pin}, nil
}

// Mux returns the mux setting of a leased pin
func (b *Binder) Mux(pin core.PinName) (core.MuxSetting, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	mux, ok := b.owned[pin]
	return mux, ok
}

// InUse returns the number of leased pins
func (b *Binder) InUse() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.owned)
}

type lease struct {
	b    *Binder
	pin  core.PinName
	once sync.Once
}

func (l *lease) Release() {
	l.once.Do(func() {
		l.b.mu.Lock()
		delete(l.b.owned, l.pin)
		l.b.mu.Unlock()
	})
}

var _ core.PinBinder = (*Binder)(nil)
