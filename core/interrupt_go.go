//go:build !tinygo

package core

import "sync"

// State is a placeholder for interrupt state on regular Go
type State uintptr

// critMu stands in for interrupt masking on the host, where simulated
// handlers run on the raising goroutine
var critMu sync.Mutex

// enterCritical serializes access to shared driver state. Not reentrant.
func enterCritical() State {
	critMu.Lock()
	return 0
}

// exitCritical leaves the section entered by enterCritical
func exitCritical(state State) {
	critMu.Unlock()
}
