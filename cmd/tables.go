package cmd

import (
	"github.com/August-Icekimo/DEV-DB-Cloner/actions"
	"github.com/August-Icekimo/DEV-DB-Cloner/constants"
	"github.com/spf13/cobra"
)

var tablesCfg = actions.ListTablesConfig{}

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the tables at the source and show which are selected in a project",
	Long: `List the candidate tables at the source database.

Selected tables are marked [*]. Tables with a filter or masking rules show them after the name.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tablesCfg.StoreConfig = storeConfig()
		return actions.RunListTables(commandContext(cmd), &tablesCfg)
	},
}

func init() {
	rootCmd.AddCommand(tablesCmd)
	tablesCmd.Flags().SortFlags = false
	switches.addFlag(tablesCmd, &tablesCfg.Project, "project", constants.DefaultProjectName, true, "")
	addConnectionFlags(tablesCmd, &tablesCfg.ConnectionsConfig, false)
	tablesCmd.SilenceUsage = true
}
