package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mattn/go-tty"
	"github.com/spf13/cobra"

	"kinhal/core"
	"kinhal/host/serial"
)

// exitKey ends a terminal session (Ctrl-])
const exitKey = 0x1D

var (
	termOpts = struct {
		device string
		baud   uint32
		parity string
	}{}

	termCmd = &cobra.Command{
		Use:   "term",
		Short: "Serial terminal to a board UART",
		Long:  "Connect the keyboard to a board UART at one of the driver baud rates. Press Ctrl-] to quit.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := serial.ConfigFor(termOpts.device, termOpts.baud)
			if err != nil {
				return fmt.Errorf("%d baud: %w", termOpts.baud, err)
			}
			switch termOpts.parity {
			case "none":
			case "even":
				cfg.Parity = core.ParityEven
			case "odd":
				cfg.Parity = core.ParityOdd
			default:
				return fmt.Errorf("unknown parity %q", termOpts.parity)
			}

			port, err := serial.Open(cfg)
			if err != nil {
				return err
			}
			defer port.Close()

			t, err := tty.Open()
			if err != nil {
				return err
			}
			defer t.Close()
			restore := t.MustRaw()
			defer restore()

			fmt.Fprintf(os.Stderr, "connected to %s at %d baud, Ctrl-] to quit\r\n", cfg.Device, cfg.Baud.Hz())
			go copyPort(os.Stdout, port)
			return forwardKeys(ttyKeys{t}, port)
		},
	}
)

func init() {
	termCmd.Flags().StringVarP(&termOpts.device, "device", "d", "/dev/ttyUSB0", "Serial device path")
	termCmd.Flags().Uint32VarP(&termOpts.baud, "baud", "b", 115200, "Baud rate")
	termCmd.Flags().StringVar(&termOpts.parity, "parity", "none", "Parity: none, even or odd")
}

// keySource yields one keystroke at a time
type keySource interface {
	NextKey() (rune, error)
}

type ttyKeys struct {
	t *tty.TTY
}

func (k ttyKeys) NextKey() (rune, error) {
	return k.t.ReadRune()
}

// forwardKeys sends keystrokes to the port until exitKey
func forwardKeys(keys keySource, port io.Writer) error {
	buf := make([]byte, 0, 4)
	for {
		r, err := keys.NextKey()
		if err != nil {
			return err
		}
		if r == exitKey {
			return nil
		}
		buf = append(buf[:0], string(r)...)
		if _, err := port.Write(buf); err != nil {
			return err
		}
	}
}

// copyPort echoes everything the board sends until the port is closed.
// An idle read timeout shows up as io.EOF and is retried.
func copyPort(out io.Writer, port io.Reader) {
	buf := make([]byte, 256)
	for {
		n, err := port.Read(buf)
		if n > 0 {
			out.Write(buf[:n])
		}
		switch {
		case err == nil, errors.Is(err, io.EOF):
		case errors.Is(err, os.ErrClosed):
			return
		default:
			log.Printf("serial: %v", err)
			return
		}
	}
}
