package actions

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/August-Icekimo/DEV-DB-Cloner/helper"
	"github.com/August-Icekimo/DEV-DB-Cloner/projects"
	"github.com/August-Icekimo/DEV-DB-Cloner/replicate"
)

type ListTablesConfig struct {
	StoreConfig
	ConnectionsConfig
	Project string `errorTxt:"project" mandatory:"yes"`
}

// RunListTables prints the candidate tables at the source, marking those selected in the project.
// Tables with a filter or rules show them after the name.
func RunListTables(ctx context.Context, cfg *ListTablesConfig) error {
	if err := helper.ValidateStructIsPopulated(cfg); err != nil { // if the basics were not supplied...
		return err
	}
	var pc projects.ProjectConfig
	err := withProject(ctx, &cfg.StoreConfig, cfg.Project, func(s *projects.Store, p projects.Project) (err error) {
		pc, err = s.GetProjectConfig(ctx, p.ID)
		return
	})
	if err != nil {
		return err
	}
	ep, err := openEndpoints(cfg.Log, cfg.ConnectionsConfig, false)
	if err != nil {
		return err
	}
	defer ep.Close()
	var tables []string
	if ep.demo {
		tables = replicate.DemoTables(sortedFilterTables(pc.Filters), pc.Rules.Tables())
	} else if tables, err = ep.srcConn.ListTables(ctx); err != nil {
		return err
	}
	selected := make(map[string]struct{}, len(pc.Selected))
	for _, t := range pc.Selected {
		selected[strings.ToUpper(t)] = struct{}{}
	}
	out := cfg.out()
	for _, t := range tables { // for each candidate table...
		mark := " "
		if _, ok := selected[strings.ToUpper(t)]; ok {
			mark = "*"
		}
		var notes []string
		if f := replicate.LookupFilter(pc.Filters, t); f != "" {
			notes = append(notes, "filter: "+f)
		}
		if n := countRules(pc, t); n > 0 {
			notes = append(notes, fmt.Sprintf("%v masked columns", n))
		}
		if len(notes) > 0 {
			_, _ = fmt.Fprintf(out, "[%v] %v (%v)\n", mark, t, strings.Join(notes, "; "))
		} else {
			_, _ = fmt.Fprintf(out, "[%v] %v\n", mark, t)
		}
	}
	_, _ = fmt.Fprintf(out, "%v tables, %v selected\n", len(tables), len(pc.Selected))
	return nil
}

func sortedFilterTables(filters map[string]string) []string {
	retval := make([]string, 0, len(filters))
	for t := range filters {
		retval = append(retval, t)
	}
	sort.Strings(retval)
	return retval
}

func countRules(pc projects.ProjectConfig, table string) int {
	for t, cols := range pc.Rules {
		if strings.EqualFold(t, table) {
			return len(cols)
		}
	}
	return 0
}
