package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version, Commit, and Date are injected at build time via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.Printf("swiccd %s (commit: %s, built: %s)\n", Version, Commit, Date)
		return nil
	},
}
