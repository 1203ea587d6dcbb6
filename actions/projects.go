package actions

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/August-Icekimo/DEV-DB-Cloner/anonymize"
	"github.com/August-Icekimo/DEV-DB-Cloner/corpus"
	"github.com/August-Icekimo/DEV-DB-Cloner/helper"
	"github.com/August-Icekimo/DEV-DB-Cloner/projects"
)

type ProjectListConfig struct {
	StoreConfig
}

type ProjectCreateConfig struct {
	StoreConfig
	Name            string `errorTxt:"name" mandatory:"yes"`
	Description     string
	NameSourceType  string
	NameSourceValue string
	WithDefaults    bool // start with the built-in filters and rules
}

type ProjectNameConfig struct {
	StoreConfig
	Name string `errorTxt:"name" mandatory:"yes"`
}

type ProjectCloneConfig struct {
	StoreConfig
	Name    string `errorTxt:"name" mandatory:"yes"`
	NewName string `errorTxt:"new-name" mandatory:"yes"`
}

// ProjectSettingsConfig changes only the settings that are not nil.
type ProjectSettingsConfig struct {
	StoreConfig
	Name            string `errorTxt:"name" mandatory:"yes"`
	NewName         *string
	Description     *string
	NameSourceType  *string
	NameSourceValue *string
}

// ProjectSelectConfig changes the table selection. Set replaces the selection before Add and Remove apply.
type ProjectSelectConfig struct {
	StoreConfig
	Name   string `errorTxt:"name" mandatory:"yes"`
	Set    []string
	Add    []string
	Remove []string
	Clear  bool
}

type ProjectFilterConfig struct {
	StoreConfig
	Name   string `errorTxt:"name" mandatory:"yes"`
	Table  string `errorTxt:"table" mandatory:"yes"`
	Clause string
	Remove bool
}

type ProjectRuleConfig struct {
	StoreConfig
	Name       string `errorTxt:"name" mandatory:"yes"`
	Table      string `errorTxt:"table" mandatory:"yes"`
	Column     string `errorTxt:"column" mandatory:"yes"`
	Function   string
	SeedColumn string
	Remove     bool
}

type ProjectExportConfig struct {
	StoreConfig
	Name string `errorTxt:"name" mandatory:"yes"`
	Dir  string // defaults to the working directory
}

type ProjectImportConfig struct {
	StoreConfig
	Name   string `errorTxt:"name" mandatory:"yes"`
	Dir    string // defaults to the working directory
	Prefix string // file name prefix, defaults to the project name
}

// RunProjectList prints every project with its name source and number of selected tables.
func RunProjectList(ctx context.Context, cfg *ProjectListConfig) error {
	if err := helper.ValidateStructIsPopulated(cfg); err != nil { // if the basics were not supplied...
		return err
	}
	s, err := openStore(ctx, &cfg.StoreConfig)
	if err != nil {
		return err
	}
	defer func() {
		_ = s.Close()
	}()
	list, err := s.ListProjects(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(cfg.out(), 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tNAME SOURCE\tSELECTED\tUPDATED\tDESCRIPTION")
	for _, p := range list { // for each project...
		pc, err := s.GetProjectConfig(ctx, p.ID)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "%v\t%v\t%v\t%v\t%v\t%v\n", p.ID, p.Name, formatNameSource(pc.NameSource),
			len(pc.Selected), p.UpdatedAt.Format("2006-01-02 15:04"), p.Description)
	}
	return w.Flush()
}

// RunProjectCreate adds a project, optionally seeded with the built-in filters and rules.
func RunProjectCreate(ctx context.Context, cfg *ProjectCreateConfig) error {
	if err := helper.ValidateStructIsPopulated(cfg); err != nil { // if the basics were not supplied...
		return err
	}
	s, err := openStore(ctx, &cfg.StoreConfig)
	if err != nil {
		return err
	}
	defer func() {
		_ = s.Close()
	}()
	p, err := s.CreateProject(ctx, cfg.Name, cfg.Description, cfg.NameSourceType, cfg.NameSourceValue)
	if err != nil {
		return err
	}
	if cfg.WithDefaults {
		if err = s.SaveProjectState(ctx, p.ID, nil, projects.DefaultFilters(), projects.DefaultRules()); err != nil {
			return err
		}
	}
	_, _ = fmt.Fprintf(cfg.out(), "Project %q created\n", p.Name)
	return nil
}

// RunProjectShow prints the settings, selection, filters and rules of a project.
func RunProjectShow(ctx context.Context, cfg *ProjectNameConfig) error {
	if err := helper.ValidateStructIsPopulated(cfg); err != nil { // if the basics were not supplied...
		return err
	}
	return withProject(ctx, &cfg.StoreConfig, cfg.Name, func(s *projects.Store, p projects.Project) error {
		pc, err := s.GetProjectConfig(ctx, p.ID)
		if err != nil {
			return err
		}
		out := cfg.out()
		_, _ = fmt.Fprintf(out, "Project:      %v\n", p.Name)
		_, _ = fmt.Fprintf(out, "Description:  %v\n", p.Description)
		_, _ = fmt.Fprintf(out, "Name source:  %v\n", formatNameSource(pc.NameSource))
		_, _ = fmt.Fprintf(out, "Selected (%v): %v\n", len(pc.Selected), strings.Join(pc.Selected, ", "))
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "\nTABLE\tFILTER")
		for _, t := range sortedFilterTables(pc.Filters) {
			_, _ = fmt.Fprintf(w, "%v\t%v\n", t, pc.Filters[t])
		}
		_, _ = fmt.Fprintln(w, "\nTABLE\tCOLUMN\tFUNCTION\tSEED COLUMN")
		for _, t := range pc.Rules.Tables() {
			cols := make([]string, 0, len(pc.Rules[t]))
			for c := range pc.Rules[t] {
				cols = append(cols, c)
			}
			sort.Strings(cols)
			for _, c := range cols {
				r := pc.Rules[t][c]
				_, _ = fmt.Fprintf(w, "%v\t%v\t%v\t%v\n", t, c, r.Function, r.SeedColumn)
			}
		}
		return w.Flush()
	})
}

// RunProjectDelete removes a project and everything in it.
func RunProjectDelete(ctx context.Context, cfg *ProjectNameConfig) error {
	if err := helper.ValidateStructIsPopulated(cfg); err != nil { // if the basics were not supplied...
		return err
	}
	return withProject(ctx, &cfg.StoreConfig, cfg.Name, func(s *projects.Store, p projects.Project) error {
		if err := s.DeleteProject(ctx, p.ID); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cfg.out(), "Project %q deleted\n", p.Name)
		return nil
	})
}

// RunProjectClone copies a project under a new name.
func RunProjectClone(ctx context.Context, cfg *ProjectCloneConfig) error {
	if err := helper.ValidateStructIsPopulated(cfg); err != nil { // if the basics were not supplied...
		return err
	}
	return withProject(ctx, &cfg.StoreConfig, cfg.Name, func(s *projects.Store, p projects.Project) error {
		c, err := s.CloneProject(ctx, p.ID, cfg.NewName)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cfg.out(), "Project %q cloned to %q\n", p.Name, c.Name)
		return nil
	})
}

// RunProjectSettings renames a project or changes its description or name source.
func RunProjectSettings(ctx context.Context, cfg *ProjectSettingsConfig) error {
	if err := helper.ValidateStructIsPopulated(cfg); err != nil { // if the basics were not supplied...
		return err
	}
	return withProject(ctx, &cfg.StoreConfig, cfg.Name, func(s *projects.Store, p projects.Project) error {
		settings := projects.ProjectSettings{
			Name:        p.Name,
			Description: p.Description,
			NameSource:  corpus.NameSource{Type: p.NameSourceType},
		}
		if p.NameSourceValue != nil {
			settings.NameSource.Value = *p.NameSourceValue
		}
		if cfg.NewName != nil {
			settings.Name = *cfg.NewName
		}
		if cfg.Description != nil {
			settings.Description = *cfg.Description
		}
		if cfg.NameSourceType != nil {
			settings.NameSource.Type = *cfg.NameSourceType
		}
		if cfg.NameSourceValue != nil {
			settings.NameSource.Value = *cfg.NameSourceValue
		}
		if err := s.UpdateProjectSettings(ctx, p.ID, settings); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cfg.out(), "Project %q updated\n", settings.Name)
		return nil
	})
}

// RunProjectSelect changes which tables the project copies.
func RunProjectSelect(ctx context.Context, cfg *ProjectSelectConfig) error {
	if err := helper.ValidateStructIsPopulated(cfg); err != nil { // if the basics were not supplied...
		return err
	}
	return editProject(ctx, &cfg.StoreConfig, cfg.Name, func(pc *projects.ProjectConfig) error {
		selected := make(map[string]struct{})
		if len(cfg.Set) == 0 && !cfg.Clear {
			for _, t := range pc.Selected {
				selected[t] = struct{}{}
			}
		}
		for _, t := range append(append([]string{}, cfg.Set...), cfg.Add...) {
			selected[knownTableName(pc, t)] = struct{}{}
		}
		for _, t := range cfg.Remove {
			delete(selected, knownTableName(pc, t))
		}
		pc.Selected = make([]string, 0, len(selected))
		for t := range selected {
			pc.Selected = append(pc.Selected, t)
		}
		sort.Strings(pc.Selected)
		_, _ = fmt.Fprintf(cfg.out(), "%v tables selected\n", len(pc.Selected))
		return nil
	})
}

// RunProjectFilter sets or removes the WHERE clause applied to a table.
func RunProjectFilter(ctx context.Context, cfg *ProjectFilterConfig) error {
	if err := helper.ValidateStructIsPopulated(cfg); err != nil { // if the basics were not supplied...
		return err
	}
	if !cfg.Remove && strings.TrimSpace(cfg.Clause) == "" {
		return fmt.Errorf("please supply a filter clause or remove the filter")
	}
	return editProject(ctx, &cfg.StoreConfig, cfg.Name, func(pc *projects.ProjectConfig) error {
		table := knownTableName(pc, cfg.Table)
		if cfg.Remove {
			pc.Filters[table] = ""
		} else {
			pc.Filters[table] = strings.TrimSpace(cfg.Clause)
		}
		return nil
	})
}

// RunProjectRule sets or removes the masking rule of a column.
func RunProjectRule(ctx context.Context, cfg *ProjectRuleConfig) error {
	if err := helper.ValidateStructIsPopulated(cfg); err != nil { // if the basics were not supplied...
		return err
	}
	if !cfg.Remove && !anonymize.IsKnownFunction(cfg.Function) {
		return anonymize.UnknownFunctionError{Function: cfg.Function}
	}
	return editProject(ctx, &cfg.StoreConfig, cfg.Name, func(pc *projects.ProjectConfig) error {
		table := knownTableName(pc, cfg.Table)
		cols := pc.Rules[table]
		if cols == nil {
			cols = make(map[string]anonymize.Rule)
		}
		if cfg.Remove {
			if _, ok := cols[cfg.Column]; !ok {
				return fmt.Errorf("table %v has no rule for column %v", table, cfg.Column)
			}
			delete(cols, cfg.Column)
		} else {
			cols[cfg.Column] = anonymize.Rule{Function: cfg.Function, SeedColumn: cfg.SeedColumn}
		}
		pc.Rules[table] = cols
		return nil
	})
}

// RunProjectExport writes the project's filters and rules as {name}_filters.json and
// {name}_sensitive_columns.json.
func RunProjectExport(ctx context.Context, cfg *ProjectExportConfig) error {
	if err := helper.ValidateStructIsPopulated(cfg); err != nil { // if the basics were not supplied...
		return err
	}
	dir := cfg.Dir
	if dir == "" {
		dir = cfg.workDir()
	}
	return withProject(ctx, &cfg.StoreConfig, cfg.Name, func(s *projects.Store, p projects.Project) error {
		filters, rules, err := s.ExportConfig(ctx, p.ID)
		if err != nil {
			return err
		}
		fp, rp, err := projects.WriteExportFiles(dir, p.Name, filters, rules)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cfg.out(), "Exported %v and %v\n", fp, rp)
		return nil
	})
}

// RunProjectImport overlays {prefix}_filters.json and {prefix}_sensitive_columns.json onto the project.
func RunProjectImport(ctx context.Context, cfg *ProjectImportConfig) error {
	if err := helper.ValidateStructIsPopulated(cfg); err != nil { // if the basics were not supplied...
		return err
	}
	dir := cfg.Dir
	if dir == "" {
		dir = cfg.workDir()
	}
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = cfg.Name
	}
	return withProject(ctx, &cfg.StoreConfig, cfg.Name, func(s *projects.Store, p projects.Project) error {
		filters, rules, err := projects.ReadImportFiles(cfg.Log, dir, prefix)
		if err != nil {
			return err
		}
		if err = s.ImportConfig(ctx, p.ID, filters, rules); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cfg.out(), "Imported %v filters and rules for %v tables into %q\n", len(filters), len(rules), p.Name)
		return nil
	})
}

// editProject reads the project's state, lets fn change it and saves it back.
func editProject(ctx context.Context, cfg *StoreConfig, name string, fn func(pc *projects.ProjectConfig) error) error {
	return withProject(ctx, cfg, name, func(s *projects.Store, p projects.Project) error {
		pc, err := s.GetProjectConfig(ctx, p.ID)
		if err != nil {
			return err
		}
		if err = fn(&pc); err != nil {
			return err
		}
		return s.SaveProjectState(ctx, p.ID, pc.Selected, pc.Filters, pc.Rules)
	})
}

// knownTableName returns the spelling of table already used by the project, if any.
func knownTableName(pc *projects.ProjectConfig, table string) string {
	table = strings.TrimSpace(table)
	for _, t := range pc.Selected {
		if strings.EqualFold(t, table) {
			return t
		}
	}
	for t := range pc.Filters {
		if strings.EqualFold(t, table) {
			return t
		}
	}
	for t := range pc.Rules {
		if strings.EqualFold(t, table) {
			return t
		}
	}
	return table
}

func formatNameSource(src corpus.NameSource) string {
	if src.Value == "" {
		return src.Type
	}
	return src.Type + ":" + src.Value
}
