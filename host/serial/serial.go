package serial

import (
	"errors"
	"io"

	"kinhal/core"
)

var ErrUnsupportedBaud = errors.New("unsupported_baud")

// Port represents a serial port interface
// This abstraction allows for different implementations:
// - Native serial (using github.com/tarm/serial)
// - Loopback (for testing)
//
// A Read whose timeout expires on an idle line returns 0, io.EOF and the
// port stays usable. Reads and writes after Close fail with os.ErrClosed.
type Port interface {
	io.ReadWriteCloser

	// Flush flushes any buffered data
	Flush() error
}

// Config holds serial port configuration. The line settings must match
// the board UART on the other end.
type Config struct {
	// Device path (e.g., "/dev/ttyUSB0", "COM3")
	Device string

	// Baud is a rate the board drivers can produce
	Baud core.BaudRate

	// Parity widens the frame to 9 bits on the board side
	Parity core.Parity

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultConfig returns 115200 8N1 with a short read timeout
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        core.Baud115200,
		Parity:      core.ParityNone,
		ReadTimeout: 100,
	}
}

// ConfigFor returns the default configuration at a rate in Hz
func ConfigFor(device string, hz uint32) (*Config, error) {
	baud, ok := core.ParseBaudRate(hz)
	if !ok {
		return nil, ErrUnsupportedBaud
	}
	cfg := DefaultConfig(device)
	cfg.Baud = baud
	return cfg, nil
}
