package cmd

import (
	"github.com/August-Icekimo/DEV-DB-Cloner/actions"
	"github.com/August-Icekimo/DEV-DB-Cloner/constants"
	"github.com/spf13/cobra"
)

var corpusCfg = actions.CorpusExportConfig{}

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Manage the pool of names used to mask personal names",
}

var corpusExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Save the name pool of a project to a JSON file",
	Long: `Save the name pool of a project to a JSON file.

The pool comes from the project's name source: the built-in list, a table column at the
source database or a file. Runs read ` + constants.ObfuscateNameFile + ` in the working directory
instead of the database when it exists.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		corpusCfg.StoreConfig = storeConfig()
		return actions.RunCorpusExport(commandContext(cmd), &corpusCfg)
	},
}

func init() {
	rootCmd.AddCommand(corpusCmd)
	corpusCmd.AddCommand(corpusExportCmd)
	corpusExportCmd.Flags().SortFlags = false
	switches.addFlag(corpusExportCmd, &corpusCfg.Project, "project", "", false, " (default: the built-in pool)")
	switches.addFlag(corpusExportCmd, &corpusCfg.Output, "output", constants.ObfuscateNameFile, false, "")
	addConnectionFlags(corpusExportCmd, &corpusCfg.ConnectionsConfig, false)
	corpusExportCmd.SilenceUsage = true
}
