// Package pinout holds the pin multiplexing tables and module descriptions
// of the supported Kinetis parts.
package pinout

import (
	"errors"
	"strconv"
	"strings"

	"kinhal/core"
)

var ErrBadPin = errors.New("bad_pin_name")

const pinsPerPort = 32

// Pin returns the name of pin n on port ('A'..'E')
func Pin(port byte, n uint8) core.PinName {
	return core.PinName(uint16(port-'A')*pinsPerPort+uint16(n)) + 1
}

// Port returns the port letter of p
func Port(p core.PinName) byte {
	return 'A' + byte((uint16(p)-1)/pinsPerPort)
}

// Number returns the bit number of p within its port
func Number(p core.PinName) uint8 {
	return uint8((uint16(p) - 1) % pinsPerPort)
}

// Name formats p as "PTA2", or "-" for NoPin
func Name(p core.PinName) string {
	if p == core.NoPin {
		return "-"
	}
	return "PT" + string(Port(p)) + strconv.Itoa(int(Number(p)))
}

// ParsePin parses names such as "PTA2" or "pte25". An empty string or "-"
// yields NoPin.
func ParsePin(s string) (core.PinName, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" || s == "-" {
		return core.NoPin, nil
	}
	if len(s) < 4 || !strings.HasPrefix(s, "PT") {
		return core.NoPin, ErrBadPin
	}
	port := s[2]
	if port < 'A' || port > 'E' {
		return core.NoPin, ErrBadPin
	}
	n, err := strconv.Atoi(s[3:])
	if err != nil || n < 0 || n >= pinsPerPort {
		return core.NoPin, ErrBadPin
	}
	return Pin(port, uint8(n)), nil
}

// MustParsePin is ParsePin for names known at compile time. It panics on
// a malformed name.
func MustParsePin(s string) core.PinName {
	p, err := ParsePin(s)
	if err != nil {
		panic("pinout: bad pin name " + strconv.Quote(s))
	}
	return p
}
