package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/js216/fw-utils/pkg"
)

// rootCmd is the base command when regctl is called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "regctl",
	Short: "Inspect and drive a register/field map against a simulated device.",
	Long: `regctl loads a JSON-described register map and operates on a
simulated in-memory device, so a map can be developed and exercised
without real hardware attached.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if getFlag(cmd, "verbose") {
			pkg.SetLogLevel(logrus.DebugLevel)
		}
	},
}

// Execute runs the root command; called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("map", "m", "", "path to the JSON register map (required)")
	rootCmd.PersistentFlags().StringP("state", "s", "regctl.state.json", "path to the simulated device's persisted register state")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	_ = rootCmd.MarkPersistentFlagRequired("map")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(bulkCmd)
}

func getFlag(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return v
}

func getString(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return v
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "regctl: "+format+"\n", args...)
	os.Exit(1)
}
