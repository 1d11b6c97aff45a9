package core

import "testing"

func TestFIFODepth(t *testing.T) {
	want := map[uint8]uint8{0: 1, 1: 4, 2: 8, 3: 16, 4: 32, 5: 64, 6: 128, 7: 1, 0xFF: 1}
	for code, depth := range want {
		if got := FIFODepth(code); got != depth {
			t.Errorf("FIFODepth(%d) = %d, want %d", code, got, depth)
		}
	}
}

func TestThresholds(t *testing.T) {
	tests := []struct {
		name   string
		w      Watermark
		depth  uint8
		wantTx uint8
		wantRx uint8
	}{
		{"percent over 100 clamps", Percent(150), 16, 15, 16},
		{"percent half", Percent(50), 8, 4, 4},
		{"percent zero", Percent(0), 8, 0, 1},
		{"absolute in range", Entries(3), 8, 3, 3},
		{"absolute zero", Entries(0), 128, 0, 1},
		{"absolute over depth", Entries(200), 128, 127, 128},
		{"no fifo", Percent(100), 1, 0, 1},
		{"percent rounds down", Percent(30), 8, 2, 2},
		{"full percent of 128", Percent(100), 128, 127, 128},
	}
	for _, tt := range tests {
		if got := TxThreshold(tt.w, tt.depth); got != tt.wantTx {
			t.Errorf("%s: TxThreshold = %d, want %d", tt.name, got, tt.wantTx)
		}
		if got := RxThreshold(tt.w, tt.depth); got != tt.wantRx {
			t.Errorf("%s: RxThreshold = %d, want %d", tt.name, got, tt.wantRx)
		}
	}
}
