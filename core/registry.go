package core

import "sync/atomic"

// Registry is the per-class table of live driver handles, one slot per
// module. Interrupt handlers carry no context and find their owner here.
// A slot holds at most one handle; every change is a compare-and-swap, so a
// handler reading a slot sees either the old or the new owner, never a mix.
type Registry[T any] struct {
	slots []atomic.Pointer[T]
}

// NewRegistry returns a registry with n empty slots
func NewRegistry[T any](n int) *Registry[T] {
	return &Registry[T]{slots: make([]atomic.Pointer[T], n)}
}

// Len returns the number of slots
func (r *Registry[T]) Len() int {
	return len(r.slots)
}

func (r *Registry[T]) slot(m Module) *atomic.Pointer[T] {
	if m < 0 || int(m) >= len(r.slots) {
		return nil
	}
	return &r.slots[m]
}

// Reserve claims the empty slot m for h. It fails if m is out of range or
// already owned.
func (r *Registry[T]) Reserve(m Module, h *T) bool {
	s := r.slot(m)
	return s != nil && h != nil && s.CompareAndSwap(nil, h)
}

// Lookup returns the owner of m, or nil
func (r *Registry[T]) Lookup(m Module) *T {
	s := r.slot(m)
	if s == nil {
		return nil
	}
	return s.Load()
}

// Transfer hands slot m from one owner to another in a single step
func (r *Registry[T]) Transfer(m Module, from, to *T) bool {
	s := r.slot(m)
	return s != nil && from != nil && to != nil && s.CompareAndSwap(from, to)
}

// Release empties slot m if h owns it
func (r *Registry[T]) Release(m Module, h *T) bool {
	s := r.slot(m)
	return s != nil && h != nil && s.CompareAndSwap(h, nil)
}

// Owned returns the modules that currently have an owner
func (r *Registry[T]) Owned() ModuleSet {
	var set ModuleSet
	for i := range r.slots {
		if r.slots[i].Load() != nil {
			set |= ModulesOf(Module(i))
		}
	}
	return set
}
