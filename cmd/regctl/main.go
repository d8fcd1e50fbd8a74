// Command regctl drives a register/field map against a simulated device
// from the command line: useful for exploring a map's layout, verifying
// it with Check, and poking at fields without real hardware attached.
package main

import "github.com/js216/fw-utils/cmd/regctl/cmd"

func main() {
	cmd.Execute()
}
