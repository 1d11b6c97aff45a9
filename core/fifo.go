package core

import "golang.org/x/exp/constraints"

// fifoDepths maps the PFIFO size codes to buffer depth
var fifoDepths = [...]uint8{1, 4, 8, 16, 32, 64, 128}

// FIFODepth decodes a hardware buffer size code. Unknown codes report a
// depth of 1, i.e. a plain double buffer.
func FIFODepth(code uint8) uint8 {
	if int(code) < len(fifoDepths) {
		return fifoDepths[code]
	}
	return 1
}

// Watermark is an interrupt threshold, either an absolute entry count or a
// percentage of the buffer depth
type Watermark struct {
	Value   uint8
	Percent bool
}

// Entries returns an absolute watermark of n entries
func Entries(n uint8) Watermark {
	return Watermark{Value: n}
}

// Percent returns a watermark of p percent of the depth
func Percent(p uint8) Watermark {
	return Watermark{Value: p, Percent: true}
}

// scale resolves w against depth without range clamping
func (w Watermark) scale(depth uint8) int {
	if !w.Percent {
		return int(w.Value)
	}
	p := clamp(int(w.Value), 0, 100)
	return int(depth) * p / 100
}

// TxThreshold resolves a transmit watermark into [0, depth-1]
func TxThreshold(w Watermark, depth uint8) uint8 {
	if depth == 0 {
		return 0
	}
	return uint8(clamp(w.scale(depth), 0, int(depth)-1))
}

// RxThreshold resolves a receive watermark into [1, depth]
func RxThreshold(w Watermark, depth uint8) uint8 {
	if depth == 0 {
		return 1
	}
	return uint8(clamp(w.scale(depth), 1, int(depth)))
}

func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
