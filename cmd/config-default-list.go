package cmd

import (
	"fmt"

	"github.com/August-Icekimo/DEV-DB-Cloner/actions"
	"github.com/August-Icekimo/DEV-DB-Cloner/config"
	"github.com/spf13/cobra"
)

var defaultListCfg = actions.DefaultListConfig{}

var configDefaultListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print all default flag values",
	Long: fmt.Sprintf(`List default flag values stored in config file %q
by printing them all to STDOUT. Passwords are masked unless --show-secrets is given.`,
		config.Main.FullPath),
	RunE: func(cmd *cobra.Command, args []string) error {
		defaultListCfg.ConfigFile = config.Main
		return actions.RunDefaultList(&defaultListCfg)
	},
}

func init() {
	defaultCmd.AddCommand(configDefaultListCmd)
	configDefaultListCmd.Flags().BoolVar(&defaultListCfg.ShowSecrets, "show-secrets", false, switches["show-secrets"].desc)
	configDefaultListCmd.SilenceUsage = true
}
