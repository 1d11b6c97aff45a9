package board

import (
	"errors"
	"strconv"
	"strings"

	"kinhal/core"
	"kinhal/pinout"
)

var (
	ErrBadBaud      = errors.New("unsupported_baud")
	ErrBadParity    = errors.New("bad_parity")
	ErrBadWatermark = errors.New("bad_watermark")
	ErrBadMode      = errors.New("bad_spi_mode")
)

// ParseWatermark accepts an entry count ("4") or a percentage ("50%").
// An empty string is zero entries. Percentages above 100 are clamped.
func ParseWatermark(s string) (core.Watermark, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return core.Entries(0), nil
	}
	if v, ok := strings.CutSuffix(s, "%"); ok {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return core.Watermark{}, ErrBadWatermark
		}
		return core.Percent(uint8(min(n, 100))), nil
	}
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return core.Watermark{}, ErrBadWatermark
	}
	return core.Entries(uint8(n)), nil
}

func parseParity(s string) (core.Parity, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return core.ParityNone, nil
	case "even":
		return core.ParityEven, nil
	case "odd":
		return core.ParityOdd, nil
	}
	return 0, ErrBadParity
}

func parsePins(names ...string) ([]core.PinName, error) {
	out := make([]core.PinName, len(names))
	for i, n := range names {
		p, err := pinout.ParsePin(n)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

// Config converts the port description to a driver configuration
func (u UARTPort) Config() (core.UARTConfig, error) {
	var cfg core.UARTConfig
	pins, err := parsePins(u.Tx, u.Rx)
	if err != nil {
		return cfg, err
	}
	baud, ok := core.ParseBaudRate(u.Baud)
	if !ok {
		return cfg, ErrBadBaud
	}
	parity, err := parseParity(u.Parity)
	if err != nil {
		return cfg, err
	}
	tx, err := ParseWatermark(u.TxWatermark)
	if err != nil {
		return cfg, err
	}
	rx, err := ParseWatermark(u.RxWatermark)
	if err != nil {
		return cfg, err
	}

	cfg = core.UARTConfig{
		TxPin:       pins[0],
		RxPin:       pins[1],
		Baud:        baud,
		Parity:      parity,
		LoopMode:    u.Loop,
		FIFO:        u.FIFO,
		TxWatermark: tx,
		RxWatermark: rx,
	}
	return cfg, nil
}

// Config converts the port description to a driver configuration
func (s SPIPort) Config() (core.SPIMasterConfig, error) {
	var cfg core.SPIMasterConfig
	pins, err := parsePins(s.SCK, s.MOSI, s.MISO, s.PCS)
	if err != nil {
		return cfg, err
	}
	if s.Mode > 3 {
		return cfg, ErrBadMode
	}
	tx, err := ParseWatermark(s.TxWatermark)
	if err != nil {
		return cfg, err
	}
	rx, err := ParseWatermark(s.RxWatermark)
	if err != nil {
		return cfg, err
	}

	cfg = core.SPIMasterConfig{
		SCKPin:      pins[0],
		MOSIPin:     pins[1],
		MISOPin:     pins[2],
		PCSPin:      pins[3],
		RateKHz:     s.RateKHz,
		Mode:        core.SPIMode(s.Mode),
		LSBFirst:    s.LSBFirst,
		Frame16:     s.Frame16,
		TxWatermark: tx,
		RxWatermark: rx,
	}
	return cfg, nil
}
