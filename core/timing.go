package core

// BaudRate is one of the UART line rates the drivers are tuned for
type BaudRate uint8

const (
	Baud2400 BaudRate = iota
	Baud4800
	Baud9600
	Baud14400
	Baud19200
	Baud28800
	Baud38400
	Baud57600
	Baud76800
	Baud115200
	Baud230400
	Baud460800
)

var baudRates = [...]uint32{
	2400, 4800, 9600, 14400, 19200, 28800,
	38400, 57600, 76800, 115200, 230400, 460800,
}

// Hz returns the line rate in bits per second, or 0 for an unknown value
func (b BaudRate) Hz() uint32 {
	if int(b) < len(baudRates) {
		return baudRates[b]
	}
	return 0
}

// BaudRates lists every supported rate in ascending order
func BaudRates() []BaudRate {
	out := make([]BaudRate, len(baudRates))
	for i := range out {
		out[i] = BaudRate(i)
	}
	return out
}

// ParseBaudRate maps a rate in Hz to its table entry
func ParseBaudRate(hz uint32) (BaudRate, bool) {
	for i, r := range baudRates {
		if r == hz {
			return BaudRate(i), true
		}
	}
	return 0, false
}

const (
	// MaxSBR is the largest coarse divisor the 13-bit SBR field holds
	MaxSBR = 0x1FFF
	// BRFASteps is the number of fine adjust steps per SBR unit
	BRFASteps = 32
)

// UARTDivisor is the coarse/fine baud divisor pair.
// The module clock is divided by 16*(SBR + BRFA/32).
type UARTDivisor struct {
	SBR  uint16 // 13-bit coarse divisor
	BRFA uint8  // 5-bit fine adjust, in 1/32 steps
}

// steps returns the divisor in 1/32 units
func (d UARTDivisor) steps() uint64 {
	return uint64(d.SBR)*BRFASteps + uint64(d.BRFA)
}

// Rate returns the line rate produced from refHz, rounded to the nearest Hz
func (d UARTDivisor) Rate(refHz uint32) uint32 {
	n := d.steps()
	if n == 0 {
		return 0
	}
	// baud = ref / (16 * n/32) = 2*ref / n
	return uint32((2*uint64(refHz) + n/2) / n)
}

// SolveUARTDivisor returns the divisor whose rate is closest to baud.
// The exact divisor 2*ref/baud (in 1/32 steps) falls between two grid
// points; both are compared exactly and the lower one wins a tie. A fine
// part that rounds up to 32/32 carries into SBR.
func SolveUARTDivisor(refHz, baud uint32) (UARTDivisor, error) {
	if refHz == 0 || baud == 0 {
		return UARTDivisor{}, ErrDivisorRange
	}
	num := 2 * uint64(refHz)
	b := uint64(baud)

	n := num / b
	if n == 0 {
		n = 1
	} else if num%b != 0 {
		// |num/n - b| against |b - num/(n+1)|, cross-multiplied
		lo := (num - b*n) * (n + 1)
		hi := (b*(n+1) - num) * n
		if hi < lo {
			n++
		}
	}

	sbr := n / BRFASteps
	if sbr == 0 || sbr > MaxSBR {
		return UARTDivisor{}, ErrDivisorRange
	}
	return UARTDivisor{SBR: uint16(sbr), BRFA: uint8(n % BRFASteps)}, nil
}

const (
	// MaxSPIPrescaler is the largest SPPR value
	MaxSPIPrescaler = 7
	// MaxSPIExponent is the largest SPR value
	MaxSPIExponent = 8
)

// SPIDivisor is the prescaler/exponent pair of the SPI baud register.
// The module clock is divided by (SPPR+1) * 2^(SPR+1).
type SPIDivisor struct {
	Prescaler uint8 // SPPR, 0..7
	Exponent  uint8 // SPR, 0..8
}

// Divisor returns the total clock division
func (d SPIDivisor) Divisor() uint32 {
	return (uint32(d.Prescaler) + 1) << (uint32(d.Exponent) + 1)
}

// RateKHz returns the SCK rate produced from refKHz
func (d SPIDivisor) RateKHz(refKHz uint32) uint32 {
	return refKHz / d.Divisor()
}

// Register returns the BR register encoding
func (d SPIDivisor) Register() uint8 {
	return (d.Prescaler&0x7)<<4 | d.Exponent&0xF
}

// DecodeSPIDivisor unpacks a BR register value
func DecodeSPIDivisor(br uint8) SPIDivisor {
	return SPIDivisor{Prescaler: br >> 4 & 0x7, Exponent: br & 0xF}
}

// SolveSPIDivisor searches the whole prescaler/exponent grid for the rate
// closest to rateKHz. The prescaler is the outer loop; the first minimum
// found is kept, and an exact match ends the search.
func SolveSPIDivisor(refKHz, rateKHz uint32) SPIDivisor {
	var best SPIDivisor
	bestDiff := ^uint32(0)
	for sppr := uint8(0); sppr <= MaxSPIPrescaler; sppr++ {
		for spr := uint8(0); spr <= MaxSPIExponent; spr++ {
			d := SPIDivisor{Prescaler: sppr, Exponent: spr}
			diff := absDiff(d.RateKHz(refKHz), rateKHz)
			if diff < bestDiff {
				best, bestDiff = d, diff
				if diff == 0 {
					return best
				}
			}
		}
	}
	return best
}

func absDiff(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}
