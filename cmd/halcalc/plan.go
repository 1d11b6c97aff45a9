package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"kinhal/board"
	"kinhal/core"
)

var (
	planPreset string

	planCmd = &cobra.Command{
		Use:   "plan [board-file]",
		Short: "Check a board's pin assignments",
		Long:  "Open every port of a board description on a simulated chip and report the module, divisor and achieved rate of each.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var b *board.Board
			var err error
			switch {
			case len(args) == 1:
				b, err = board.Load(args[0])
			case planPreset != "":
				b, err = board.Preset(planPreset)
			default:
				return listPresets(cmd.OutOrStdout())
			}
			if err != nil {
				return err
			}

			plan := board.Plan(b)
			printPlan(cmd.OutOrStdout(), b, plan)
			for _, a := range plan {
				if !a.OK() {
					return errors.New("board has unusable ports")
				}
			}
			return nil
		},
	}
)

func init() {
	planCmd.Flags().StringVarP(&planPreset, "preset", "p", "", "Use a built-in board")
}

func listPresets(out io.Writer) error {
	all, err := board.Presets()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "built-in boards:")
	for _, b := range all {
		fmt.Fprintf(out, "  %-12s %s, %d UART, %d SPI\n", b.Name, b.Chip, len(b.UARTs), len(b.SPIs))
	}
	return nil
}

func printPlan(out io.Writer, b *board.Board, plan []board.Assignment) {
	fmt.Fprintf(out, "%s (%s, core %d Hz, bus %d Hz)\n", b.Name, b.Chip, b.CoreHz, b.BusHz)
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "PORT\tMODULE\tREQUESTED\tACTUAL\tSETTING\tFIFO\n")
	for _, a := range plan {
		if !a.OK() {
			fmt.Fprintf(w, "%s\t-\t%d\t-\t%v\t-\n", a.Port, a.Requested, a.Err)
			continue
		}
		module := a.Class.String() + fmt.Sprint(int(a.Module))
		var setting string
		if a.Class == core.ClassUART {
			setting = fmt.Sprintf("SBR=%d BRFA=%d", a.UARTDivisor.SBR, a.UARTDivisor.BRFA)
		} else {
			setting = fmt.Sprintf("SPPR=%d SPR=%d", a.SPIDivisor.Prescaler, a.SPIDivisor.Exponent)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%d\n", a.Port, module, a.Requested, a.Actual, setting, a.FIFODepth)
	}
	w.Flush()
}
