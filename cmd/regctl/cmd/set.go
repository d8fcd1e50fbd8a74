package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set <field> <value>",
	Short: "Write a value to a named field.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		val, err := strconv.ParseUint(args[1], 0, 64)
		if err != nil {
			fail("invalid value %q: %v", args[1], err)
		}

		d, bus, statePath := buildDevice(cmd)

		if err := d.Set(args[0], val); err != nil {
			fail("set %s: %v", args[0], err)
		}
		fmt.Printf("%s = 0x%x\n", args[0], val)

		if err := saveState(statePath, bus.Snapshot()); err != nil {
			fail("%v", err)
		}
	},
}
