package cmd

import (
	"github.com/August-Icekimo/DEV-DB-Cloner/actions"
	"github.com/August-Icekimo/DEV-DB-Cloner/constants"
	"github.com/spf13/cobra"
)

var (
	projectExportCfg = actions.ProjectExportConfig{}
	projectImportCfg = actions.ProjectImportConfig{}
)

var projectExportCmd = &cobra.Command{
	Use:   "export <project>",
	Short: "Write the filters and rules of a project to JSON files",
	Long: `Write the filters and rules of a project to files
{project}` + constants.ExportFiltersSuffix + ` and {project}` + constants.ExportRulesSuffix + `.`,
	Args: getProjectNameArgsFunc(&projectExportCfg.Name),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectExportCfg.StoreConfig = storeConfig()
		return actions.RunProjectExport(commandContext(cmd), &projectExportCfg)
	},
}

var projectImportCmd = &cobra.Command{
	Use:   "import <project>",
	Short: "Load filters and rules from JSON files into a project",
	Long: `Load filters and rules from files {prefix}` + constants.ExportFiltersSuffix + ` and
{prefix}` + constants.ExportRulesSuffix + ` into a project.
Tables named in the files have their filter and rules replaced. Other tables keep theirs.`,
	Args: getProjectNameArgsFunc(&projectImportCfg.Name),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectImportCfg.StoreConfig = storeConfig()
		return actions.RunProjectImport(commandContext(cmd), &projectImportCfg)
	},
}

func init() {
	projectCmd.AddCommand(projectExportCmd, projectImportCmd)
	switches.addFlag(projectExportCmd, &projectExportCfg.Dir, "dir", "", false, "")
	switches.addFlag(projectImportCmd, &projectImportCfg.Dir, "dir", "", false, "")
	switches.addFlag(projectImportCmd, &projectImportCfg.Prefix, "prefix", "", false, "")
	projectExportCmd.SilenceUsage = true
	projectImportCmd.SilenceUsage = true
}
