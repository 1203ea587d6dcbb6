package cmd

import (
	"github.com/August-Icekimo/DEV-DB-Cloner/actions"
	"github.com/spf13/cobra"
)

var (
	projectSettingsCfg = actions.ProjectSettingsConfig{}
	projectSelectCfg   = actions.ProjectSelectConfig{}
	projectFilterCfg   = actions.ProjectFilterConfig{}
	projectRuleCfg     = actions.ProjectRuleConfig{}
	// Settings are only changed when their flag is given.
	settingsNewName, settingsDescription, settingsSourceType, settingsSourceValue string
)

var projectSettingsCmd = &cobra.Command{
	Use:   "settings <project>",
	Short: "Rename a project or change its description or name source",
	Example: `  dbcloner project settings hr --name-source DB --name-source-value EMP_DATA.emp_name
  dbcloner project settings hr --name-source FILE --name-source-value ./names.json
  dbcloner project settings hr -n hr-2026 -d "payroll only"`,
	Args: getProjectNameArgsFunc(&projectSettingsCfg.Name),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectSettingsCfg.StoreConfig = storeConfig()
		projectSettingsCfg.NewName = changedFlag(cmd, "new-name", settingsNewName)
		projectSettingsCfg.Description = changedFlag(cmd, "description", settingsDescription)
		projectSettingsCfg.NameSourceType = changedFlag(cmd, "name-source", settingsSourceType)
		projectSettingsCfg.NameSourceValue = changedFlag(cmd, "name-source-value", settingsSourceValue)
		return actions.RunProjectSettings(commandContext(cmd), &projectSettingsCfg)
	},
}

var projectSelectCmd = &cobra.Command{
	Use:   "select <project>",
	Short: "Choose the tables a project copies",
	Example: `  dbcloner project select hr --set EMP_DATA,DEPT
  dbcloner project select hr -a SALARY -r DEPT
  dbcloner project select hr --clear`,
	Args: getProjectNameArgsFunc(&projectSelectCfg.Name),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectSelectCfg.StoreConfig = storeConfig()
		return actions.RunProjectSelect(commandContext(cmd), &projectSelectCfg)
	},
}

var projectFilterCmd = &cobra.Command{
	Use:   "filter <project>",
	Short: "Set or remove the WHERE filter used when reading a table",
	Example: `  dbcloner project filter hr -t EMP_DATA -w "year >= 113"
  dbcloner project filter hr -t EMP_DATA --remove`,
	Args: getProjectNameArgsFunc(&projectFilterCfg.Name),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectFilterCfg.StoreConfig = storeConfig()
		return actions.RunProjectFilter(commandContext(cmd), &projectFilterCfg)
	},
}

var projectRuleCmd = &cobra.Command{
	Use:   "rule <project>",
	Short: "Set or remove the masking rule of a column",
	Example: `  dbcloner project rule hr -t EMP_DATA -c emp_name -f obfuscateName -s emp_no
  dbcloner project rule hr -t EMP_DATA -c emp_name --remove`,
	Args: getProjectNameArgsFunc(&projectRuleCfg.Name),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectRuleCfg.StoreConfig = storeConfig()
		return actions.RunProjectRule(commandContext(cmd), &projectRuleCfg)
	},
}

func init() {
	projectCmd.AddCommand(projectSettingsCmd, projectSelectCmd, projectFilterCmd, projectRuleCmd)
	// Settings.
	projectSettingsCmd.Flags().SortFlags = false
	switches.addFlag(projectSettingsCmd, &settingsNewName, "new-name", "", false, "")
	switches.addFlag(projectSettingsCmd, &settingsDescription, "description", "", false, "")
	switches.addFlag(projectSettingsCmd, &settingsSourceType, "name-source", "", false, "")
	switches.addFlag(projectSettingsCmd, &settingsSourceValue, "name-source-value", "", false, "")
	// Select.
	projectSelectCmd.Flags().SortFlags = false
	switches.addFlag(projectSelectCmd, &projectSelectCfg.Set, "select-set", "", false, "")
	switches.addFlag(projectSelectCmd, &projectSelectCfg.Add, "select-add", "", false, "")
	switches.addFlag(projectSelectCmd, &projectSelectCfg.Remove, "select-remove", "", false, "")
	switches.addFlag(projectSelectCmd, &projectSelectCfg.Clear, "select-clear", "", false, "")
	// Filter.
	projectFilterCmd.Flags().SortFlags = false
	switches.addFlag(projectFilterCmd, &projectFilterCfg.Table, "table", "", true, "")
	switches.addFlag(projectFilterCmd, &projectFilterCfg.Clause, "clause", "", false, "")
	switches.addFlag(projectFilterCmd, &projectFilterCfg.Remove, "remove", "", false, "")
	// Rule.
	projectRuleCmd.Flags().SortFlags = false
	switches.addFlag(projectRuleCmd, &projectRuleCfg.Table, "table", "", true, "")
	switches.addFlag(projectRuleCmd, &projectRuleCfg.Column, "column", "", true, "")
	switches.addFlag(projectRuleCmd, &projectRuleCfg.Function, "function", "", false, "")
	switches.addFlag(projectRuleCmd, &projectRuleCfg.SeedColumn, "seed-column", "", false, "")
	switches.addFlag(projectRuleCmd, &projectRuleCfg.Remove, "remove", "", false, "")
	for _, c := range []*cobra.Command{projectSettingsCmd, projectSelectCmd, projectFilterCmd, projectRuleCmd} {
		c.SilenceUsage = true
	}
}

// changedFlag returns a pointer to value if flag name was given on the command line, else nil.
func changedFlag(cmd *cobra.Command, name string, value string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v := value
	return &v
}
