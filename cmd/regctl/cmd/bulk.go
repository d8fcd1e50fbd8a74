package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var bulkCmd = &cobra.Command{
	Use:   "bulk <json-array-file>",
	Short: "Load an entire register image from a JSON array of words.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			fail("read %s: %v", args[0], err)
		}

		var words []uint32
		if err := json.Unmarshal(raw, &words); err != nil {
			fail("parse %s: %v", args[0], err)
		}

		d, bus, statePath := buildDevice(cmd)
		if err := d.Bulk(words); err != nil {
			fail("bulk load: %v", err)
		}
		bus.Load(d.Data)

		if err := saveState(statePath, bus.Snapshot()); err != nil {
			fail("%v", err)
		}
		fmt.Printf("loaded %d registers\n", len(words))
	},
}
