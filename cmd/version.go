package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version information (injected at build time via -ldflags)
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		detailed, _ := cmd.Flags().GetBool("detailed")
		out := cmd.OutOrStdout()
		if detailed {
			fmt.Fprintf(out, `sds-cli version information:
  Version:    %s
  Git Commit: %s
  Build Date: %s
  Go Version: %s
  OS/Arch:    %s/%s
`, Version, GitCommit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		} else {
			fmt.Fprintf(out, "sds-cli version %s\n", Version)
		}
	},
}

func init() {
	versionCmd.Flags().BoolP("detailed", "d", false, "show detailed version information")
}
