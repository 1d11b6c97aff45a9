package core

// SignalRequest asks for pin to serve role. Optional roles may be left
// as NoPin and are then excluded from resolution.
type SignalRequest struct {
	Pin      PinName
	Role     SignalRole
	Optional bool
}

// ResolveModule finds the one module that every requested signal can be
// routed to. Each connected pin narrows the candidate set; the result must
// contain exactly one module.
func ResolveModule(table PinTable, reqs []SignalRequest) (Module, error) {
	set := AllModules
	connected := 0
	for _, r := range reqs {
		if r.Pin == NoPin {
			if r.Optional {
				continue
			}
			return NoModule, ErrNoModule
		}
		candidates := table.ModuleCandidates(r.Pin, r.Role)
		if candidates == 0 {
			return NoModule, ErrNoModule
		}
		set &= candidates
		connected++
	}
	if connected == 0 {
		return NoModule, ErrNoModule
	}
	m, ok := set.Only()
	if !ok {
		return NoModule, ErrNoModule
	}
	return m, nil
}
