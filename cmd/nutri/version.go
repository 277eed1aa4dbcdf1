package nutri

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X github.com/nelsoncalle/nutricion/cmd/nutri.version=...".
var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version/build metadata",
	Run: func(cmd *cobra.Command, args []string) {
		printVersion(cmd)
	},
}

func printVersion(cmd *cobra.Command) {
	fmt.Fprintf(cmd.OutOrStdout(), "nutri %s (commit %s, built %s, %s)\n", version, commit, buildDate, runtime.Version())
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
