package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print every register's current value.",
	Run: func(cmd *cobra.Command, args []string) {
		_, bus, _ := buildDevice(cmd)
		for i, v := range bus.Snapshot() {
			fmt.Printf("reg[%d] = 0x%x\n", i, v)
		}
	},
}
