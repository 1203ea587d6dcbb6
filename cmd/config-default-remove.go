package cmd

import (
	"errors"
	"fmt"

	"github.com/August-Icekimo/DEV-DB-Cloner/actions"
	"github.com/August-Icekimo/DEV-DB-Cloner/config"
	"github.com/spf13/cobra"
)

var defaultRemoveKey string

var defaultRemoveCmd = &cobra.Command{
	Use:     "remove [key...]",
	Aliases: []string{"rm", "del", "delete"},
	Short:   "Remove default flag values",
	Long: fmt.Sprintf(`Remove default flag values from config file %q.
Give the keys as arguments or with --key.`, config.Main.FullPath),
	Example: `  dbcloner config defaults remove src-pwd tgt-pwd`,
	RunE: func(cmd *cobra.Command, args []string) error {
		keys := args
		if defaultRemoveKey != "" {
			keys = append(keys, defaultRemoveKey)
		}
		if len(keys) == 0 {
			return errors.New("supply the keys to remove")
		}
		for _, k := range keys { // for each key to remove...
			err := actions.RunDefaultRemove(&actions.DefaultRemoveConfig{ConfigFile: config.Main, Key: k})
			if err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	defaultCmd.AddCommand(defaultRemoveCmd)
	defaultRemoveCmd.Flags().StringVarP(&defaultRemoveKey, "key", "k", "",
		"The key to remove from config")
	defaultRemoveCmd.SilenceUsage = true
}
