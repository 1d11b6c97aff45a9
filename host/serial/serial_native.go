//go:build !wasm

package serial

import (
	"fmt"
	"time"

	"github.com/tarm/serial"

	"kinhal/core"
)

// NativePort wraps the tarm/serial implementation
type NativePort struct {
	port *serial.Port
	cfg  *Config
}

// lineSettings maps cfg to tarm's frame settings. A parity bit on the
// board adds a ninth bit, which the host sees as 8 data bits plus parity.
func lineSettings(cfg *Config) (*serial.Config, error) {
	if cfg.Baud.Hz() == 0 {
		return nil, ErrUnsupportedBaud
	}
	sc := &serial.Config{
		Name:        cfg.Device,
		Baud:        int(cfg.Baud.Hz()),
		Size:        8,
		StopBits:    serial.Stop1,
		ReadTimeout: time.Duration(cfg.ReadTimeout) * time.Millisecond,
	}
	switch cfg.Parity {
	case core.ParityEven:
		sc.Parity = serial.ParityEven
	case core.ParityOdd:
		sc.Parity = serial.ParityOdd
	default:
		sc.Parity = serial.ParityNone
	}
	return sc, nil
}

// Open opens a native serial port
func Open(cfg *Config) (Port, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	serialConfig, err := lineSettings(cfg)
	if err != nil {
		return nil, err
	}

	port, err := serial.OpenPort(serialConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", cfg.Device, err)
	}

	return &NativePort{
		port: port,
		cfg:  cfg,
	}, nil
}

// Read reads data from the serial port. On Linux an idle timeout comes
// back from the device as 0, io.EOF.
func (p *NativePort) Read(b []byte) (int, error) {
	return p.port.Read(b)
}

// Write writes data to the serial port
func (p *NativePort) Write(b []byte) (int, error) {
	return p.port.Write(b)
}

// Close closes the serial port
func (p *NativePort) Close() error {
	if p.port != nil {
		return p.port.Close()
	}
	return nil
}

// Flush discards data received but not yet read
func (p *NativePort) Flush() error {
	return p.port.Flush()
}
