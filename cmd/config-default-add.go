package cmd

import (
	"fmt"

	"github.com/August-Icekimo/DEV-DB-Cloner/actions"
	"github.com/August-Icekimo/DEV-DB-Cloner/config"
	"github.com/spf13/cobra"
)

var defaultAddCfg = actions.DefaultAddConfig{}

var defaultAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add or set a default flag value",
	Long: fmt.Sprintf(`Add a default flag value to config file %q

Examples:
  dbcloner config defaults add -k src-server -v db01.internal:1433
  dbcloner config defaults add -k src-pwd -v secret`, config.Main.FullPath),
	RunE: func(cmd *cobra.Command, args []string) error {
		defaultAddCfg.ConfigFile = config.Main
		return actions.RunDefaultAdd(&defaultAddCfg)
	},
}

func init() {
	defaultCmd.AddCommand(defaultAddCmd)
	defaultAddCmd.Flags().SortFlags = false
	defaultAddCmd.Flags().StringVarP(&defaultAddCfg.Key, "key", "k", "", "* "+switches["key"].desc)
	defaultAddCmd.Flags().StringVarP(&defaultAddCfg.Value, "value", "v", "", "* "+switches["value"].desc)
	defaultAddCmd.Flags().BoolVarP(&defaultAddCfg.Force, "force", "f", false, switches["force"].desc)
	_ = defaultAddCmd.MarkFlagRequired("key")
	_ = defaultAddCmd.MarkFlagRequired("value")
	defaultAddCmd.SilenceUsage = true
}
