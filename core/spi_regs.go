package core

// SPI register offsets within a module window
const (
	SPIS  = 0x00
	SPIBR = 0x01
	SPIC2 = 0x02
	SPIC1 = 0x03
	SPIML = 0x04
	SPIMH = 0x05
	SPIDL = 0x06
	SPIDH = 0x07
	SPICI = 0x0A
	SPIC3 = 0x0B
)

// C1 bits
const (
	SPIC1LSBFE = 1 << 0
	SPIC1SSOE  = 1 << 1
	SPIC1CPHA  = 1 << 2
	SPIC1CPOL  = 1 << 3
	SPIC1MSTR  = 1 << 4
	SPIC1SPTIE = 1 << 5
	SPIC1SPE   = 1 << 6
	SPIC1SPIE  = 1 << 7
)

// C2 bits
const (
	SPIC2MODFEN  = 1 << 4
	SPIC2SPIMODE = 1 << 6 // 16-bit frames
)

// S bits
const (
	SPISRFIFOEF = 1 << 0 // receive FIFO empty
	SPISTXFULLF = 1 << 1 // transmit FIFO full
	SPISTNEAREF = 1 << 2
	SPISRNFULLF = 1 << 3
	SPISMODF    = 1 << 4
	SPISSPTEF   = 1 << 5
	SPISSPMF    = 1 << 6
	SPISSPRF    = 1 << 7
)

// C3 bits
const (
	SPIC3FIFOMODE    = 1 << 0
	SPIC3RNFULLIEN   = 1 << 1
	SPIC3TNEARIEN    = 1 << 2
	SPIC3INTCLR      = 1 << 3
	SPIC3RNFULLFMARK = 1 << 4 // RNFULLF at 48 bits instead of 32
	SPIC3TNEAREFMARK = 1 << 5 // TNEAREF at 32 bits instead of 16
)

// spiRegs names the registers of one SPI module
type spiRegs struct {
	w Window
}

func (r spiRegs) S() Reg8  { return RegAt(r.w, SPIS) }
func (r spiRegs) BR() Reg8 { return RegAt(r.w, SPIBR) }
func (r spiRegs) C1() Reg8 { return RegAt(r.w, SPIC1) }
func (r spiRegs) C2() Reg8 { return RegAt(r.w, SPIC2) }
func (r spiRegs) C3() Reg8 { return RegAt(r.w, SPIC3) }
func (r spiRegs) DL() Reg8 { return RegAt(r.w, SPIDL) }
func (r spiRegs) DH() Reg8 { return RegAt(r.w, SPIDH) }
