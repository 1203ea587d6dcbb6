package cmd

import (
	"fmt"

	"github.com/August-Icekimo/DEV-DB-Cloner/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configure default flag values",
	Long: fmt.Sprintf(`Configure default parameters where:

- Default flag values are stored encrypted in file %q
- Environment variables take priority over stored defaults
- Flags given on the command line take priority over both
`, config.Main.FullPath),
}

func init() {
	rootCmd.AddCommand(configCmd)
}
