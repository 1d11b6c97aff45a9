package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"kinhal/core"
)

var (
	spiOpts = struct {
		clockKHz uint32
		rates    []uint
	}{}

	spiCmd = &cobra.Command{
		Use:   "spi",
		Short: "Show SPI prescaler and exponent settings",
		Long:  "Pick the SPPR/SPR pair giving the SCK rate closest to each requested rate at the given module clock.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if spiOpts.clockKHz == 0 {
				return fmt.Errorf("module clock must be non-zero")
			}
			rates := make([]uint32, len(spiOpts.rates))
			for i, r := range spiOpts.rates {
				rates[i] = uint32(r)
			}
			printSPITable(cmd.OutOrStdout(), spiOpts.clockKHz, rates)
			return nil
		},
	}
)

func init() {
	spiCmd.Flags().Uint32VarP(&spiOpts.clockKHz, "clock", "c", 24000, "Module clock in kHz")
	spiCmd.Flags().UintSliceVarP(&spiOpts.rates, "rate", "r", []uint{100, 400, 1000, 4000, 6000, 12000}, "Requested SCK rates in kHz")
}

func printSPITable(out io.Writer, refKHz uint32, rates []uint32) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "REQUESTED\tSPPR\tSPR\tBR\tDIVISOR\tACTUAL\n")
	for _, rate := range rates {
		d := core.SolveSPIDivisor(refKHz, rate)
		fmt.Fprintf(w, "%d kHz\t%d\t%d\t0x%02x\t%d\t%d kHz\n",
			rate, d.Prescaler, d.Exponent, d.Register(), d.Divisor(), d.RateKHz(refKHz))
	}
	w.Flush()
}
