package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <field>",
	Short: "Read the current value of a named field.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		d, bus, statePath := buildDevice(cmd)

		val, err := d.Get(args[0])
		if err != nil {
			fail("get %s: %v", args[0], err)
		}
		fmt.Printf("%s = 0x%x\n", args[0], val)

		if err := saveState(statePath, bus.Snapshot()); err != nil {
			fail("%v", err)
		}
	},
}
