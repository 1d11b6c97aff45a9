package core_test

import (
	"errors"
	"slices"
	"testing"

	"tinygo.org/x/drivers"

	"kinhal/core"
	"kinhal/pinout"
	"kinhal/sim"
)

var (
	// SPI0, double buffered, bus clock
	ptd1, ptd0 = pinout.Pin('D', 1), pinout.Pin('D', 0)
	// SPI1, 4-frame FIFO, core clock
	ptd5, ptd4 = pinout.Pin('D', 5), pinout.Pin('D', 4)
)

const spi0IRQ = core.IRQ(10)

func spi0Config() core.SPIMasterConfig {
	return core.SPIMasterConfig{SCKPin: ptd1, PCSPin: ptd0, MOSIPin: ptd2, MISOPin: ptd3, RateKHz: 6000}
}

func spi1Config() core.SPIMasterConfig {
	return core.SPIMasterConfig{SCKPin: ptd5, PCSPin: ptd4, MOSIPin: ptd6, MISOPin: ptd7, RateKHz: 1000}
}

func openSPI(t *testing.T, c *sim.KL26, cfg core.SPIMasterConfig) *core.SPIMaster {
	t.Helper()
	s, err := c.SPIs.Open(cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return s
}

func TestSPIOpenProgramsModule(t *testing.T) {
	c := sim.NewKL26()
	s := openSPI(t, c, spi0Config())

	if s.Module() != 0 || s.FIFODepth() != 0 {
		t.Fatalf("module %d depth %d", s.Module(), s.FIFODepth())
	}
	want := core.SolveSPIDivisor(sim.KL26BusHz/1000, 6000).Register()
	if got := c.SPI[0].Reg(core.SPIBR); got != want {
		t.Errorf("BR = %#x, want %#x", got, want)
	}
	if got := c.SPI[0].Reg(core.SPIC1); got != core.SPIC1MSTR|core.SPIC1SSOE|core.SPIC1SPE {
		t.Errorf("C1 = %#x", got)
	}
	if got := c.SPI[0].Reg(core.SPIC2); got != core.SPIC2MODFEN {
		t.Errorf("C2 = %#x", got)
	}
	if !c.Clocks.Gated(core.ClassSPI, 0) || c.Binder.InUse() != 4 {
		t.Error("clock or pins not claimed")
	}
	if mux, _ := c.Binder.Mux(ptd3); mux != pinout.Alt2 {
		t.Errorf("MISO mux = %d, want Alt2", mux)
	}
}

func TestSPIOpenModeBits(t *testing.T) {
	tests := []struct {
		mode core.SPIMode
		lsb  bool
		want uint8
	}{
		{0, false, 0},
		{1, false, core.SPIC1CPHA},
		{2, false, core.SPIC1CPOL},
		{3, true, core.SPIC1CPOL | core.SPIC1CPHA | core.SPIC1LSBFE},
	}
	mask := uint8(core.SPIC1CPOL | core.SPIC1CPHA | core.SPIC1LSBFE)
	for _, tt := range tests {
		c := sim.NewKL26()
		cfg := spi0Config()
		cfg.Mode, cfg.LSBFirst = tt.mode, tt.lsb
		openSPI(t, c, cfg)
		if got := c.SPI[0].Reg(core.SPIC1) & mask; got != tt.want {
			t.Errorf("mode %d lsb %v: C1 bits = %#x, want %#x", tt.mode, tt.lsb, got, tt.want)
		}
	}
}

func TestSPIOpenPinRules(t *testing.T) {
	tests := []struct {
		name string
		cfg  core.SPIMasterConfig
		err  error
		pins int
	}{
		{"no data pins", core.SPIMasterConfig{SCKPin: ptd1, PCSPin: ptd0}, core.ErrNoDataPin, 0},
		{"no sck", core.SPIMasterConfig{PCSPin: ptd0, MOSIPin: ptd2}, core.ErrNoModule, 0},
		{"mixed modules", core.SPIMasterConfig{SCKPin: ptd1, PCSPin: ptd0, MISOPin: ptd7}, core.ErrNoModule, 0},
		{"mosi only", core.SPIMasterConfig{SCKPin: ptd1, PCSPin: ptd0, MOSIPin: ptd2}, nil, 3},
		{"miso only", core.SPIMasterConfig{SCKPin: ptd1, PCSPin: ptd0, MISOPin: ptd2}, nil, 3},
	}
	for _, tt := range tests {
		c := sim.NewKL26()
		s, err := c.SPIs.Open(tt.cfg)
		if !errors.Is(err, tt.err) {
			t.Errorf("%s: err = %v, want %v", tt.name, err, tt.err)
		}
		if s.Valid() != (tt.err == nil) {
			t.Errorf("%s: Valid = %v", tt.name, s.Valid())
		}
		if c.Binder.InUse() != tt.pins {
			t.Errorf("%s: pins in use = %d, want %d", tt.name, c.Binder.InUse(), tt.pins)
		}
	}
}

func TestSPISwappedDataPinMux(t *testing.T) {
	c := sim.NewKL26()
	openSPI(t, c, core.SPIMasterConfig{SCKPin: ptd1, PCSPin: ptd0, MOSIPin: ptd3, MISOPin: ptd2, RateKHz: 500})
	if mux, _ := c.Binder.Mux(ptd3); mux != pinout.Alt5 {
		t.Errorf("MOSI on PTD3 mux = %d, want Alt5", mux)
	}
}

func TestSPISecondOpenFails(t *testing.T) {
	c := sim.NewKL26()
	first := openSPI(t, c, spi0Config())

	_, err := c.SPIs.Open(core.SPIMasterConfig{
		SCKPin: pinout.Pin('C', 5), PCSPin: pinout.Pin('C', 4), MOSIPin: pinout.Pin('C', 6),
	})
	if !errors.Is(err, core.ErrModuleBusy) {
		t.Fatalf("err = %v, want ErrModuleBusy", err)
	}
	if c.SPIs.Owner(0) != first {
		t.Error("first handle lost ownership")
	}
}

func TestSPIExchange(t *testing.T) {
	c := sim.NewKL26()
	s := openSPI(t, c, spi0Config())
	c.SPI[0].Responder = func(out uint16) uint16 { return ^out & 0xFF }

	if got := s.ExchangeData(0x5A); got != 0xA5 {
		t.Errorf("ExchangeData = %#x, want 0xA5", got)
	}
	if got := c.SPI[0].Sent(); !slices.Equal(got, []uint16{0x5A}) {
		t.Errorf("sent %v", got)
	}

	b, err := s.Transfer(0x0F)
	if err != nil || b != 0xF0 {
		t.Errorf("Transfer = %#x, %v", b, err)
	}
}

func TestSPIDoubleBufferPushPull(t *testing.T) {
	c := sim.NewKL26()
	s := openSPI(t, c, spi0Config())
	c.SPI[0].Hold = true

	if n := s.PushData([]uint16{1, 2, 3}); n != 1 {
		t.Errorf("PushData = %d, want 1", n)
	}
	if n := s.PushData([]uint16{2, 3}); n != 0 {
		t.Errorf("PushData on a full buffer = %d, want 0", n)
	}
	if s.PutData(9) {
		t.Error("PutData on a full buffer succeeded")
	}
	buf := make([]uint16, 4)
	if n := s.PullData(buf); n != 0 {
		t.Errorf("PullData before shifting = %d", n)
	}

	c.SPI[0].Release()
	if n := s.PullData(buf); n != 1 || buf[0] != 1 {
		t.Errorf("PullData = %d %v", n, buf[:n])
	}
	if _, ok := s.PeekData(); ok {
		t.Error("PeekData found a frame in an empty buffer")
	}
}

func TestSPIFIFOMode(t *testing.T) {
	c := sim.NewKL26()
	cfg := spi1Config()
	cfg.TxWatermark = core.Percent(50)
	cfg.RxWatermark = core.Entries(1)
	s := openSPI(t, c, cfg)

	if s.FIFODepth() != 4 {
		t.Fatalf("FIFODepth = %d, want 4", s.FIFODepth())
	}
	if got := c.SPI[1].Reg(core.SPIC3); got != core.SPIC3FIFOMODE|core.SPIC3TNEAREFMARK {
		t.Errorf("C3 = %#x", got)
	}
	want := core.SolveSPIDivisor(sim.KL26CoreHz/1000, 1000).Register()
	if got := c.SPI[1].Reg(core.SPIBR); got != want {
		t.Errorf("BR = %#x, want %#x", got, want)
	}

	c.SPI[1].Hold = true
	frames := []uint16{10, 11, 12, 13, 14, 15}
	if n := s.PushData(frames); n != 4 {
		t.Fatalf("PushData = %d, want 4", n)
	}
	c.SPI[1].Release()

	buf := make([]uint16, 8)
	if n := s.PullData(buf); n != 4 || !slices.Equal(buf[:n], frames[:4]) {
		t.Errorf("PullData = %d %v", n, buf[:n])
	}

	s.SendBlock(frames[4:])
	got := make([]uint16, 2)
	s.GetBlock(got)
	if !slices.Equal(got, frames[4:]) {
		t.Errorf("GetBlock = %v", got)
	}
}

func TestSPIFrame16(t *testing.T) {
	c := sim.NewKL26()
	cfg := spi0Config()
	cfg.Frame16 = true
	s := openSPI(t, c, cfg)

	if c.SPI[0].Reg(core.SPIC2)&core.SPIC2SPIMODE == 0 {
		t.Fatal("SPIMODE not set")
	}
	if got := s.ExchangeData(0xBEEF); got != 0xBEEF {
		t.Errorf("ExchangeData = %#x", got)
	}
	c.SPI[0].Sent()

	var bus drivers.SPI = s
	w := []byte{0x12, 0x34, 0x56}
	r := make([]byte, 3)
	if err := bus.Tx(w, r); err != nil {
		t.Fatalf("Tx: %v", err)
	}
	if !slices.Equal(r, w) {
		t.Errorf("read %x, want %x", r, w)
	}
	if got := c.SPI[0].Sent(); !slices.Equal(got, []uint16{0x1234, 0x5600}) {
		t.Errorf("frames %x", got)
	}
}

func TestSPITxAsymmetric(t *testing.T) {
	c := sim.NewKL26()
	s := openSPI(t, c, spi0Config())
	c.SPI[0].Responder = func(out uint16) uint16 { return out + 1 }

	var bus drivers.SPI = s
	r := make([]byte, 4)
	if err := bus.Tx([]byte{1, 2}, r); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(r, []byte{2, 3, 1, 1}) {
		t.Errorf("read %v", r)
	}
	if err := bus.Tx([]byte{7, 8, 9}, nil); err != nil {
		t.Fatal(err)
	}
	if got := c.SPI[0].Sent(); !slices.Equal(got, []uint16{1, 2, 0, 0, 7, 8, 9}) {
		t.Errorf("sent %v", got)
	}

	s.Close()
	if err := bus.Tx([]byte{1}, nil); !errors.Is(err, core.ErrInvalidHandle) {
		t.Errorf("Tx on a closed handle: %v", err)
	}
}

func TestSPIInterruptOrder(t *testing.T) {
	c := sim.NewKL26()
	var order []string
	cfg := spi0Config()
	cfg.OnTx = func(*core.SPIMaster) { order = append(order, "tx") }
	cfg.OnRx = func(*core.SPIMaster) { order = append(order, "rx") }
	s := openSPI(t, c, cfg)

	if c.SPI[0].Reg(core.SPIC1)&(core.SPIC1SPIE|core.SPIC1SPTIE) != 0 {
		t.Fatal("sub-sources enabled by Open")
	}
	if !s.PutData(0x11) {
		t.Fatal("PutData failed")
	}
	s.SetRxIRQ(true)
	s.SetTxIRQ(true)
	c.RaiseSPI(0)

	if !slices.Equal(order, []string{"rx", "tx"}) {
		t.Errorf("callback order %v, want rx then tx", order)
	}
}

func TestSPIMasksSourceWithoutCallback(t *testing.T) {
	c := sim.NewKL26()
	cfg := spi0Config()
	cfg.OnTx = func(*core.SPIMaster) {}
	s := openSPI(t, c, cfg)

	s.PutData(1)
	s.SetRxIRQ(true)
	c.RaiseSPI(0)
	if c.SPI[0].Reg(core.SPIC1)&core.SPIC1SPIE != 0 {
		t.Error("SPIE left enabled with no rx callback")
	}
}

func TestSPIOrphanInterruptFaults(t *testing.T) {
	c := sim.NewKL26()
	faults := captureFaults(t)
	cfg := spi0Config()
	cfg.OnRx = func(*core.SPIMaster) {}
	s := openSPI(t, c, cfg)
	isr := c.NVIC.Handler(spi0IRQ)

	var dst core.SPIMaster
	if err := dst.MoveFrom(s); err != nil {
		t.Fatal(err)
	}
	dst.Close()

	c.SPI[0].Store8(core.SPIC1, core.SPIC1SPIE|core.SPIC1SPTIE)
	c.NVIC.Invoke(spi0IRQ, isr)

	if len(*faults) != 1 || (*faults)[0] != (faultRecord{core.FaultOrphanIRQ, core.ClassSPI, 0}) {
		t.Errorf("faults = %+v", *faults)
	}
	if c.SPI[0].Reg(core.SPIC1)&(core.SPIC1SPIE|core.SPIC1SPTIE) != 0 {
		t.Error("orphan interrupt sources left enabled")
	}
}

func TestSPIMoveAndClose(t *testing.T) {
	c := sim.NewKL26()
	var seen *core.SPIMaster
	cfg := spi1Config()
	cfg.OnRx = func(s *core.SPIMaster) {
		seen = s
		s.SetRxIRQ(false)
	}
	src := openSPI(t, c, cfg)

	var dst core.SPIMaster
	if err := dst.MoveFrom(src); err != nil {
		t.Fatal(err)
	}
	if src.Valid() || !dst.Valid() || c.SPIs.Owner(1) != &dst {
		t.Fatal("ownership not transferred")
	}
	if c.SPIs.Owned() != core.ModulesOf(1) {
		t.Errorf("Owned = %b", c.SPIs.Owned())
	}
	if dst.FIFODepth() != 4 {
		t.Errorf("moved FIFO depth = %d", dst.FIFODepth())
	}

	// fill the receive FIFO so SPRF is raised
	dst.SendBlock([]uint16{1, 2, 3, 4})
	dst.SetRxIRQ(true)
	c.RaiseSPI(1)
	if seen != &dst {
		t.Error("callback did not receive the new owner")
	}

	dst.SetEnable(false)
	if c.SPI[1].Reg(core.SPIC1)&core.SPIC1SPE != 0 {
		t.Error("SetEnable(false) left SPE set")
	}
	dst.SetEnable(true)

	dst.Close()
	if c.SPIs.Owner(1) != nil || c.Clocks.Gated(core.ClassSPI, 1) || c.Binder.InUse() != 0 {
		t.Error("Close did not release the module")
	}
	if c.SPI[1].Reg(core.SPIC1) != 0 {
		t.Errorf("C1 = %#x after Close", c.SPI[1].Reg(core.SPIC1))
	}
	if dst.PutData(1) || dst.ExchangeData(1) != 0 {
		t.Error("closed handle transferred data")
	}
}
