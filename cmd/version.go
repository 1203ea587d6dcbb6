package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information for dbcloner",
	Long:  `Show version information for dbcloner`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf(`dbcloner
  Version:	%v
  Build date:	%v
  OS/Arch:	%v/%v
`, version, buildDate, runtime.GOOS, runtime.GOARCH)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
