package cmd

import (
	"github.com/August-Icekimo/DEV-DB-Cloner/actions"
	"github.com/August-Icekimo/DEV-DB-Cloner/constants"
	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:     "project",
	Aliases: []string{"projects"},
	Short:   "Manage projects: table selections, filters and masking rules",
	Long: `Manage projects, where each project holds:

- the tables to copy
- an optional WHERE filter per table
- the masking rule for each sensitive column
- where to find names for the name masking functions

A project called "` + constants.DefaultProjectName + `" is created from the JSON files in the working directory,
or from built-in defaults, the first time the project store is opened.`,
}

var (
	projectListCfg   = actions.ProjectListConfig{}
	projectCreateCfg = actions.ProjectCreateConfig{}
	projectShowCfg   = actions.ProjectNameConfig{}
	projectDeleteCfg = actions.ProjectNameConfig{}
	projectCloneCfg  = actions.ProjectCloneConfig{}
)

var projectListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		projectListCfg.StoreConfig = storeConfig()
		return actions.RunProjectList(commandContext(cmd), &projectListCfg)
	},
}

var projectCreateCmd = &cobra.Command{
	Use:   "create <project>",
	Short: "Create a project",
	Args:  getProjectNameArgsFunc(&projectCreateCfg.Name),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectCreateCfg.StoreConfig = storeConfig()
		return actions.RunProjectCreate(commandContext(cmd), &projectCreateCfg)
	},
}

var projectShowCmd = &cobra.Command{
	Use:   "show <project>",
	Short: "Print the settings, tables, filters and rules of a project",
	Args:  getProjectNameArgsFunc(&projectShowCfg.Name),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectShowCfg.StoreConfig = storeConfig()
		return actions.RunProjectShow(commandContext(cmd), &projectShowCfg)
	},
}

var projectDeleteCmd = &cobra.Command{
	Use:     "delete <project>",
	Aliases: []string{"rm", "del", "remove"},
	Short:   "Delete a project and everything it holds",
	Args:    getProjectNameArgsFunc(&projectDeleteCfg.Name),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectDeleteCfg.StoreConfig = storeConfig()
		return actions.RunProjectDelete(commandContext(cmd), &projectDeleteCfg)
	},
}

var projectCloneCmd = &cobra.Command{
	Use:     "clone <project>",
	Aliases: []string{"copy", "cp"},
	Short:   "Copy a project with its tables, filters and rules to a new name",
	Args:    getProjectNameArgsFunc(&projectCloneCfg.Name),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectCloneCfg.StoreConfig = storeConfig()
		return actions.RunProjectClone(commandContext(cmd), &projectCloneCfg)
	},
}

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(projectListCmd, projectCreateCmd, projectShowCmd, projectDeleteCmd, projectCloneCmd)
	// Create.
	projectCreateCmd.Flags().SortFlags = false
	switches.addFlag(projectCreateCmd, &projectCreateCfg.Description, "description", "", false, "")
	switches.addFlag(projectCreateCmd, &projectCreateCfg.NameSourceType, "name-source", constants.NameSourceDefault, false, "")
	switches.addFlag(projectCreateCmd, &projectCreateCfg.NameSourceValue, "name-source-value", "", false, "")
	switches.addFlag(projectCreateCmd, &projectCreateCfg.WithDefaults, "with-defaults", "", false, "")
	// Clone.
	switches.addFlag(projectCloneCmd, &projectCloneCfg.NewName, "new-name", "", true, "")
	for _, c := range []*cobra.Command{projectListCmd, projectCreateCmd, projectShowCmd, projectDeleteCmd, projectCloneCmd} {
		c.SilenceUsage = true
	}
}
