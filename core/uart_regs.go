package core

// UART register offsets within a module window
const (
	UARTBDH    = 0x00
	UARTBDL    = 0x01
	UARTC1     = 0x02
	UARTC2     = 0x03
	UARTS1     = 0x04
	UARTS2     = 0x05
	UARTC3     = 0x06
	UARTD      = 0x07
	UARTC4     = 0x0A
	UARTPFIFO  = 0x10
	UARTCFIFO  = 0x11
	UARTSFIFO  = 0x12
	UARTTWFIFO = 0x13
	UARTTCFIFO = 0x14
	UARTRWFIFO = 0x15
	UARTRCFIFO = 0x16
)

// C1 bits
const (
	UARTC1PT    = 1 << 0 // odd parity
	UARTC1PE    = 1 << 1 // parity enable
	UARTC1M     = 1 << 4 // 9-bit frame
	UARTC1LOOPS = 1 << 7 // internal loopback
)

// C2 bits
const (
	UARTC2RE   = 1 << 2
	UARTC2TE   = 1 << 3
	UARTC2ILIE = 1 << 4
	UARTC2RIE  = 1 << 5
	UARTC2TCIE = 1 << 6
	UARTC2TIE  = 1 << 7
)

// S1 bits
const (
	UARTS1RDRF = 1 << 5
	UARTS1TC   = 1 << 6
	UARTS1TDRE = 1 << 7
)

// PFIFO fields
const (
	UARTPFIFORXSizePos = 0
	UARTPFIFORXFE      = 1 << 3
	UARTPFIFOTXSizePos = 4
	UARTPFIFOTXFE      = 1 << 7
	UARTPFIFOSizeMask  = 0x7
)

// CFIFO bits
const (
	UARTCFIFORXFLUSH = 1 << 6
	UARTCFIFOTXFLUSH = 1 << 7
)

const (
	uartSBRHighMask = 0x1F
	uartBRFAMask    = 0x1F
)

// uartRegs names the registers of one UART module
type uartRegs struct {
	w Window
}

func (r uartRegs) BDH() Reg8    { return RegAt(r.w, UARTBDH) }
func (r uartRegs) BDL() Reg8    { return RegAt(r.w, UARTBDL) }
func (r uartRegs) C1() Reg8     { return RegAt(r.w, UARTC1) }
func (r uartRegs) C2() Reg8     { return RegAt(r.w, UARTC2) }
func (r uartRegs) S1() Reg8     { return RegAt(r.w, UARTS1) }
func (r uartRegs) D() Reg8      { return RegAt(r.w, UARTD) }
func (r uartRegs) C4() Reg8     { return RegAt(r.w, UARTC4) }
func (r uartRegs) PFIFO() Reg8  { return RegAt(r.w, UARTPFIFO) }
func (r uartRegs) CFIFO() Reg8  { return RegAt(r.w, UARTCFIFO) }
func (r uartRegs) TWFIFO() Reg8 { return RegAt(r.w, UARTTWFIFO) }
func (r uartRegs) TCFIFO() Reg8 { return RegAt(r.w, UARTTCFIFO) }
func (r uartRegs) RWFIFO() Reg8 { return RegAt(r.w, UARTRWFIFO) }
func (r uartRegs) RCFIFO() Reg8 { return RegAt(r.w, UARTRCFIFO) }

// setDivisor programs SBR and BRFA. BDH is latched by the BDL write.
func (r uartRegs) setDivisor(d UARTDivisor) {
	r.BDH().ReplaceBits(uint8(d.SBR>>8), uartSBRHighMask, 0)
	r.BDL().Set(uint8(d.SBR))
	r.C4().ReplaceBits(d.BRFA, uartBRFAMask, 0)
}
