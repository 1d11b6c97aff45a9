// Package board describes which peripherals a board wires up and on which
// pins. Board files are JSON or YAML.
package board

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownChip   = errors.New("unknown_chip")
	ErrUnknownFormat = errors.New("unknown_board_format")
)

// Supported chips
const (
	ChipK60  = "k60"
	ChipKL26 = "kl26"
)

// Board is the top-level board description
type Board struct {
	Name   string `json:"name" yaml:"name"`
	Chip   string `json:"chip" yaml:"chip"`
	CoreHz uint32 `json:"core_hz" yaml:"core_hz"`
	BusHz  uint32 `json:"bus_hz" yaml:"bus_hz"`

	UARTs []UARTPort `json:"uarts,omitempty" yaml:"uarts,omitempty"`
	SPIs  []SPIPort  `json:"spis,omitempty" yaml:"spis,omitempty"`
}

// UARTPort is one UART wired on the board
type UARTPort struct {
	Name   string `json:"name" yaml:"name"`
	Tx     string `json:"tx" yaml:"tx"`
	Rx     string `json:"rx" yaml:"rx"`
	Baud   uint32 `json:"baud" yaml:"baud"`
	Parity string `json:"parity,omitempty" yaml:"parity,omitempty"` // none, even, odd
	Loop   bool   `json:"loop,omitempty" yaml:"loop,omitempty"`

	FIFO        bool   `json:"fifo,omitempty" yaml:"fifo,omitempty"`
	TxWatermark string `json:"tx_watermark,omitempty" yaml:"tx_watermark,omitempty"` // "4" or "50%"
	RxWatermark string `json:"rx_watermark,omitempty" yaml:"rx_watermark,omitempty"`
}

// SPIPort is one SPI master wired on the board
type SPIPort struct {
	Name     string `json:"name" yaml:"name"`
	SCK      string `json:"sck" yaml:"sck"`
	MOSI     string `json:"mosi,omitempty" yaml:"mosi,omitempty"`
	MISO     string `json:"miso,omitempty" yaml:"miso,omitempty"`
	PCS      string `json:"pcs" yaml:"pcs"`
	RateKHz  uint32 `json:"rate_khz" yaml:"rate_khz"`
	Mode     uint8  `json:"mode,omitempty" yaml:"mode,omitempty"`
	LSBFirst bool   `json:"lsb_first,omitempty" yaml:"lsb_first,omitempty"`
	Frame16  bool   `json:"frame16,omitempty" yaml:"frame16,omitempty"`

	TxWatermark string `json:"tx_watermark,omitempty" yaml:"tx_watermark,omitempty"`
	RxWatermark string `json:"rx_watermark,omitempty" yaml:"rx_watermark,omitempty"`
}

// LoadJSON parses a JSON board description
func LoadJSON(data []byte) (*Board, error) {
	var b Board
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, err
	}
	return finish(&b)
}

// LoadYAML parses a YAML board description
func LoadYAML(data []byte) (*Board, error) {
	var b Board
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, err
	}
	return finish(&b)
}

// Load reads a board file, picking the format from its extension
func Load(path string) (*Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(data)
	case ".yaml", ".yml":
		return LoadYAML(data)
	default:
		return nil, ErrUnknownFormat
	}
}

func finish(b *Board) (*Board, error) {
	applyDefaults(b)
	if b.Chip != ChipK60 && b.Chip != ChipKL26 {
		return nil, ErrUnknownChip
	}
	return b, nil
}

// applyDefaults fills in missing values
func applyDefaults(b *Board) {
	b.Chip = strings.ToLower(b.Chip)
	if b.Chip == "" {
		b.Chip = ChipK60
	}

	// Default clock tree of each chip
	switch b.Chip {
	case ChipK60:
		if b.CoreHz == 0 {
			b.CoreHz = 100000000
		}
		if b.BusHz == 0 {
			b.BusHz = 50000000
		}
	case ChipKL26:
		if b.CoreHz == 0 {
			b.CoreHz = 48000000
		}
		if b.BusHz == 0 {
			b.BusHz = 24000000
		}
	}

	for i := range b.UARTs {
		u := &b.UARTs[i]
		if u.Baud == 0 {
			u.Baud = 115200
		}
		if u.Parity == "" {
			u.Parity = "none"
		}
	}
	for i := range b.SPIs {
		s := &b.SPIs[i]
		if s.RateKHz == 0 {
			s.RateKHz = 1000
		}
	}
}
