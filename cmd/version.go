package cmd

import (
	"runtime"

	"github.com/spf13/cobra"
)

// versionCmd shows the verbose version for diagnostic purposes.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gitwrapped.",
	Long: `Display version information including build details.

Include this output when reporting a bug.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("gitwrapped CLI\n")
		cmd.Printf("  Version:  %s\n", version)
		cmd.Printf("  Commit:   %s\n", commit)
		cmd.Printf("  Built:    %s\n", date)
		cmd.Printf("  Runtime:  %s\n", runtime.Version())
		cmd.Printf("  Platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}
