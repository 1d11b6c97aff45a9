package pinout

import (
	"errors"
	"testing"

	"kinhal/core"
)

func TestParsePin(t *testing.T) {
	tests := []struct {
		in   string
		want core.PinName
		err  error
	}{
		{"PTA2", Pin('A', 2), nil},
		{"pte25", Pin('E', 25), nil},
		{" PTC0 ", Pin('C', 0), nil},
		{"", core.NoPin, nil},
		{"-", core.NoPin, nil},
		{"PTF1", core.NoPin, ErrBadPin},
		{"PTA32", core.NoPin, ErrBadPin},
		{"PA2", core.NoPin, ErrBadPin},
		{"PTAx", core.NoPin, ErrBadPin},
	}
	for _, tt := range tests {
		got, err := ParsePin(tt.in)
		if got != tt.want || !errors.Is(err, tt.err) {
			t.Errorf("ParsePin(%q) = %d, %v; want %d, %v", tt.in, got, err, tt.want, tt.err)
		}
	}
}

func TestPinNameRoundTrip(t *testing.T) {
	for _, e := range K60.Entries() {
		name := Name(e.Pin)
		p, err := ParsePin(name)
		if err != nil || p != e.Pin {
			t.Errorf("%s parsed back to %d, %v", name, p, err)
		}
	}
	if Name(core.NoPin) != "-" {
		t.Errorf("Name(NoPin) = %q", Name(core.NoPin))
	}
	if Port(Pin('D', 7)) != 'D' || Number(Pin('D', 7)) != 7 {
		t.Error("Port/Number disagree with Pin")
	}
}

func TestMustParsePinPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("no panic on a bad name")
		}
	}()
	MustParsePin("PTZ9")
}

func TestTableLookups(t *testing.T) {
	if got := K60.ModuleCandidates(Pin('A', 2), core.RoleTx); got != core.ModulesOf(0) {
		t.Errorf("PTA2 tx candidates = %b", got)
	}
	if got := K60.ModuleCandidates(Pin('A', 2), core.RoleRx); got != 0 {
		t.Errorf("PTA2 rx candidates = %b", got)
	}
	if got := K60.MuxSetting(Pin('A', 2), core.RoleTx); got != Alt2 {
		t.Errorf("PTA2 mux = %d", got)
	}
	if got := K60.MuxSetting(Pin('A', 3), core.RoleTx); got != AltGPIO {
		t.Errorf("unknown pin mux = %d", got)
	}
	if got := KL26.MuxSetting(Pin('D', 3), core.RoleMOSI); got != Alt5 {
		t.Errorf("swapped MOSI mux = %d", got)
	}

	tx := K60.Pins(0, core.RoleTx)
	want := []core.PinName{Pin('A', 2), Pin('A', 14), Pin('B', 17), Pin('D', 7)}
	if len(tx) != len(want) {
		t.Fatalf("UART0 tx pins = %v", tx)
	}
	for i := range want {
		if tx[i] != want[i] {
			t.Errorf("tx[%d] = %s, want %s", i, Name(tx[i]), Name(want[i]))
		}
	}
}

func TestEveryModuleHasPins(t *testing.T) {
	for m := range K60UARTs {
		for _, role := range []core.SignalRole{core.RoleTx, core.RoleRx} {
			if len(K60.Pins(core.Module(m), role)) == 0 {
				t.Errorf("uart%d has no %s pin", m, role)
			}
		}
	}
	for m := range KL26SPIs {
		for _, role := range []core.SignalRole{core.RoleSCK, core.RolePCS, core.RoleMOSI, core.RoleMISO} {
			if len(KL26.Pins(core.Module(m), role)) == 0 {
				t.Errorf("spi%d has no %s pin", m, role)
			}
		}
	}
}
