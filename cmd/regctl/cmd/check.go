package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Certify the map: no duplicate names, no overlaps, no partial coverage.",
	Run: func(cmd *cobra.Command, args []string) {
		d, _, _ := buildDevice(cmd)
		if err := d.Check(); err != nil {
			fail("map is inconsistent: %v", err)
		}
		fmt.Println("map ok")
	},
}
