package core

import "testing"

// uartErrLess reports whether divisor a (in 1/32 steps) lands closer to
// baud than b
func uartErrLess(ref, baud, a, b uint64) bool {
	ea := absDiff64(2*ref, baud*a) * b
	eb := absDiff64(2*ref, baud*b) * a
	return ea < eb
}

func absDiff64(a, b uint64) uint64 {
	if a > b {
		return a - b
	}
	return b - a
}

func TestSolveUARTDivisorKnownValues(t *testing.T) {
	tests := []struct {
		ref  uint32
		baud uint32
		want UARTDivisor
	}{
		{50000000, 115200, UARTDivisor{SBR: 27, BRFA: 4}},
		{100000000, 115200, UARTDivisor{SBR: 54, BRFA: 8}},
		{50000000, 9600, UARTDivisor{SBR: 325, BRFA: 17}},
		{48000000, 460800, UARTDivisor{SBR: 6, BRFA: 16}},
	}
	for _, tt := range tests {
		got, err := SolveUARTDivisor(tt.ref, tt.baud)
		if err != nil {
			t.Fatalf("SolveUARTDivisor(%d, %d) failed: %v", tt.ref, tt.baud, err)
		}
		if got != tt.want {
			t.Errorf("SolveUARTDivisor(%d, %d) = %+v, want %+v", tt.ref, tt.baud, got, tt.want)
		}
	}
}

func TestSolveUARTDivisorIsOptimal(t *testing.T) {
	for _, ref := range []uint32{100000000, 50000000, 48000000, 20971520} {
		for _, br := range BaudRates() {
			baud := br.Hz()
			got, err := SolveUARTDivisor(ref, baud)
			if err != nil {
				t.Fatalf("ref=%d baud=%d: %v", ref, baud, err)
			}
			n := got.steps()
			for cand := uint64(BRFASteps); cand <= MaxSBR*BRFASteps+BRFASteps-1; cand++ {
				if uartErrLess(uint64(ref), uint64(baud), cand, n) {
					t.Fatalf("ref=%d baud=%d: divisor %d beats chosen %d", ref, baud, cand, n)
				}
			}
		}
	}
}

func TestSolveUARTDivisorCarriesIntoSBR(t *testing.T) {
	// 2*639/20 = 63.9 steps, which rounds up to 64 = 2.0 exactly
	got, err := SolveUARTDivisor(639, 20)
	if err != nil {
		t.Fatalf("SolveUARTDivisor failed: %v", err)
	}
	if got.SBR != 2 || got.BRFA != 0 {
		t.Errorf("got %+v, want SBR=2 BRFA=0", got)
	}
}

func TestSolveUARTDivisorRange(t *testing.T) {
	tests := []struct {
		name string
		ref  uint32
		baud uint32
	}{
		{"sbr overflow", 100000000, 300},
		{"sbr zero", 1000, 1000000},
		{"zero baud", 50000000, 0},
		{"zero clock", 0, 9600},
	}
	for _, tt := range tests {
		if _, err := SolveUARTDivisor(tt.ref, tt.baud); err != ErrDivisorRange {
			t.Errorf("%s: err = %v, want ErrDivisorRange", tt.name, err)
		}
	}
}

func TestUARTDivisorRate(t *testing.T) {
	d := UARTDivisor{SBR: 27, BRFA: 4}
	if got := d.Rate(50000000); got != 115207 {
		t.Errorf("Rate = %d, want 115207", got)
	}
	if got := (UARTDivisor{}).Rate(50000000); got != 0 {
		t.Errorf("zero divisor Rate = %d, want 0", got)
	}
}

func TestSolveSPIDivisorIsOptimalAndFirst(t *testing.T) {
	refs := []uint32{24000, 48000, 20971}
	rates := []uint32{1, 50, 100, 375, 1000, 2000, 3000, 4000, 6000, 12000, 30000}
	for _, ref := range refs {
		for _, rate := range rates {
			got := SolveSPIDivisor(ref, rate)
			gotDiff := absDiff(got.RateKHz(ref), rate)
			for p := uint8(0); p <= MaxSPIPrescaler; p++ {
				for e := uint8(0); e <= MaxSPIExponent; e++ {
					d := SPIDivisor{Prescaler: p, Exponent: e}
					diff := absDiff(d.RateKHz(ref), rate)
					if diff < gotDiff {
						t.Fatalf("ref=%d rate=%d: %+v (diff %d) beats %+v (diff %d)",
							ref, rate, d, diff, got, gotDiff)
					}
					before := p < got.Prescaler || (p == got.Prescaler && e < got.Exponent)
					if diff == gotDiff && before {
						t.Fatalf("ref=%d rate=%d: tie %+v comes before %+v", ref, rate, d, got)
					}
				}
			}
		}
	}
}

func TestSolveSPIDivisorExactMatch(t *testing.T) {
	// both 1*2^2 and 2*2^1 divide by four; the lower prescaler is found first
	got := SolveSPIDivisor(24000, 6000)
	if got != (SPIDivisor{Prescaler: 0, Exponent: 1}) {
		t.Errorf("got %+v, want prescaler 0 exponent 1", got)
	}
	if got.Divisor() != 4 {
		t.Errorf("Divisor = %d, want 4", got.Divisor())
	}
}

func TestSPIDivisorRegister(t *testing.T) {
	d := SPIDivisor{Prescaler: 3, Exponent: 5}
	if got := d.Register(); got != 0x35 {
		t.Errorf("Register = %#x, want 0x35", got)
	}
	if got := d.Divisor(); got != 4*64 {
		t.Errorf("Divisor = %d, want 256", got)
	}
}

func TestBaudRateTable(t *testing.T) {
	if got := Baud115200.Hz(); got != 115200 {
		t.Errorf("Baud115200.Hz() = %d", got)
	}
	if got := BaudRate(200).Hz(); got != 0 {
		t.Errorf("unknown rate Hz() = %d, want 0", got)
	}
	br, ok := ParseBaudRate(38400)
	if !ok || br != Baud38400 {
		t.Errorf("ParseBaudRate(38400) = %v, %v", br, ok)
	}
	if _, ok := ParseBaudRate(12345); ok {
		t.Error("ParseBaudRate accepted 12345")
	}
	rates := BaudRates()
	for i := 1; i < len(rates); i++ {
		if rates[i].Hz() <= rates[i-1].Hz() {
			t.Errorf("BaudRates not ascending at %d", i)
		}
	}
}
