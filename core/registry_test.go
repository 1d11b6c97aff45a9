package core

import "testing"

type owner struct{ id int }

func TestRegistrySingleOwner(t *testing.T) {
	r := NewRegistry[owner](2)
	a, b := &owner{1}, &owner{2}

	if !r.Reserve(0, a) {
		t.Fatal("first Reserve failed")
	}
	if r.Reserve(0, b) {
		t.Fatal("second Reserve of the same slot succeeded")
	}
	if got := r.Lookup(0); got != a {
		t.Errorf("Lookup = %v, want first owner", got)
	}
	if r.Reserve(2, b) || r.Reserve(-1, b) {
		t.Error("Reserve out of range succeeded")
	}
	if r.Reserve(1, nil) {
		t.Error("Reserve of nil succeeded")
	}
	if got := r.Owned(); got != ModulesOf(0) {
		t.Errorf("Owned = %b, want %b", got, ModulesOf(0))
	}
}

func TestRegistryTransfer(t *testing.T) {
	r := NewRegistry[owner](1)
	a, b, c := &owner{1}, &owner{2}, &owner{3}
	r.Reserve(0, a)

	if r.Transfer(0, b, c) {
		t.Error("Transfer from a non-owner succeeded")
	}
	if !r.Transfer(0, a, b) {
		t.Fatal("Transfer from the owner failed")
	}
	if got := r.Lookup(0); got != b {
		t.Errorf("Lookup after Transfer = %v, want new owner", got)
	}
	if r.Release(0, a) {
		t.Error("Release by the old owner succeeded")
	}
	if !r.Release(0, b) {
		t.Error("Release by the owner failed")
	}
	if r.Lookup(0) != nil {
		t.Error("slot not empty after Release")
	}
	if !r.Reserve(0, c) {
		t.Error("Reserve after Release failed")
	}
}

func TestModuleSetOnly(t *testing.T) {
	tests := []struct {
		set    ModuleSet
		want   Module
		wantOK bool
	}{
		{0, NoModule, false},
		{ModulesOf(3), 3, true},
		{ModulesOf(0), 0, true},
		{ModulesOf(1, 2), NoModule, false},
		{AllModules, NoModule, false},
	}
	for _, tt := range tests {
		got, ok := tt.set.Only()
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("%b.Only() = %d, %v, want %d, %v", tt.set, got, ok, tt.want, tt.wantOK)
		}
	}
}
