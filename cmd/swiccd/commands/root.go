// Package commands implements swiccd's CLI command tree.
package commands

import (
	"github.com/spf13/cobra"
)

// Global persistent flags.
var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "swiccd",
	Short: "swiccd - software ICC/SIM engine",
	Long: `swiccd emulates an ISO/IEC 7816-3/7816-4 Integrated Circuit Card over
a contact-level transport state machine, a filesystem, and an APDU
dispatcher, served to one or more TCP clients speaking the swicc network
message protocol.

Use "swiccd [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called once from main.main.
func Execute() error {
	return rootCmd.Execute()
}

// GetRootCmd returns the root command, for testing.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

// GetConfigFile returns the --config flag's value.
func GetConfigFile() string {
	return cfgFile
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file (default: ./swiccd.yaml)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(diskCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(configCmd)
}
