package main

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"kinhal/core"
)

var (
	uartOpts = struct {
		clockHz uint32
		baud    uint32
	}{}

	uartCmd = &cobra.Command{
		Use:   "uart",
		Short: "Show UART divisors for every supported baud rate",
		Long:  "Solve the SBR/BRFA divisor pair for each supported baud rate at the given module clock and report the rate error.",
		RunE: func(cmd *cobra.Command, args []string) error {
			rates := core.BaudRates()
			if uartOpts.baud != 0 {
				b, ok := core.ParseBaudRate(uartOpts.baud)
				if !ok {
					return fmt.Errorf("%d baud is not a supported rate", uartOpts.baud)
				}
				rates = []core.BaudRate{b}
			}
			rows := uartTable(uartOpts.clockHz, rates)
			printUARTTable(cmd.OutOrStdout(), uartOpts.clockHz, rows)
			return nil
		},
	}
)

func init() {
	uartCmd.Flags().Uint32VarP(&uartOpts.clockHz, "clock", "c", 50000000, "Module clock in Hz")
	uartCmd.Flags().Uint32VarP(&uartOpts.baud, "baud", "b", 0, "Only this baud rate")
}

type uartRow struct {
	Baud    uint32
	Divisor core.UARTDivisor
	Actual  uint32
	ErrPct  float64
	Err     error
}

func uartTable(refHz uint32, rates []core.BaudRate) []uartRow {
	rows := make([]uartRow, 0, len(rates))
	for _, b := range rates {
		r := uartRow{Baud: b.Hz()}
		r.Divisor, r.Err = core.SolveUARTDivisor(refHz, r.Baud)
		if r.Err == nil {
			r.Actual = r.Divisor.Rate(refHz)
			r.ErrPct = 100 * (float64(r.Actual) - float64(r.Baud)) / float64(r.Baud)
		}
		rows = append(rows, r)
	}
	return rows
}

// errorStats returns the mean and worst absolute rate error, in percent,
// over the rows that have a divisor
func errorStats(rows []uartRow) (mean, worst float64, ok bool) {
	var abs []float64
	for _, r := range rows {
		if r.Err == nil {
			abs = append(abs, math.Abs(r.ErrPct))
		}
	}
	if len(abs) == 0 {
		return 0, 0, false
	}
	return stat.Mean(abs, nil), floats.Max(abs), true
}

func printUARTTable(out io.Writer, refHz uint32, rows []uartRow) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "BAUD\tSBR\tBRFA\tACTUAL\tERROR\n")
	for _, r := range rows {
		if r.Err != nil {
			fmt.Fprintf(w, "%d\t-\t-\t-\t%v\n", r.Baud, r.Err)
			continue
		}
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%+.3f%%\n", r.Baud, r.Divisor.SBR, r.Divisor.BRFA, r.Actual, r.ErrPct)
	}
	w.Flush()

	if mean, worst, ok := errorStats(rows); ok {
		fmt.Fprintf(out, "\nclock %d Hz: mean |error| %.3f%%, worst %.3f%%\n", refHz, mean, worst)
	}
}
