// halcalc works out divisor settings for the Kinetis UART and SPI drivers,
// checks board pin assignments against a simulated chip, and opens a
// serial terminal to a board UART.
package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"kinhal/core"
)

var (
	verbose bool

	rootCmd = &cobra.Command{
		Use:   "halcalc",
		Short: "Kinetis UART/SPI driver calculator",
		Long:  "Compute baud and SCK divisors, plan board pin assignments and talk to a board UART.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				core.SetDebugWriter(func(s string) { log.Println(s) })
				core.SetDebugEnabled(true)
			}
		},
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print driver debug output")
	rootCmd.AddCommand(uartCmd, spiCmd, planCmd, termCmd)
}

func main() {
	log.SetFlags(0)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
