package anonymize

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Rule assigns a function to a column. SeedColumn is empty when the rule has no seed column.
type Rule struct {
	Function   string
	SeedColumn string
}

// Rules maps table name -> column name -> Rule.
type Rules map[string]map[string]Rule

// Copy returns a deep copy of r.
func (r Rules) Copy() Rules {
	retval := make(Rules, len(r))
	for table, cols := range r {
		c := make(map[string]Rule, len(cols))
		for col, rule := range cols {
			c[col] = rule
		}
		retval[table] = c
	}
	return retval
}

// Tables returns the table names in alphabetical order.
func (r Rules) Tables() []string {
	retval := make([]string, 0, len(r))
	for t := range r {
		retval = append(retval, t)
	}
	sort.Strings(retval)
	return retval
}

// ColumnPlan is a resolved rule ready to run against rows.
type ColumnPlan struct {
	Column      string
	SeedColumn  string
	Transformer Transformer
}

// Plan holds the resolved rules of every table, keyed by upper case table name.
type Plan struct {
	tables map[string][]ColumnPlan
}

// NewPlan resolves every function named in rules against reg.
// The first unknown function, in table then column order, is returned as an error.
func NewPlan(rules Rules, reg *Registry) (*Plan, error) {
	p := &Plan{tables: make(map[string][]ColumnPlan, len(rules))}
	for _, table := range rules.Tables() {
		cols := rules[table]
		names := make([]string, 0, len(cols))
		for col := range cols {
			names = append(names, col)
		}
		sort.Strings(names)
		key := strings.ToUpper(table)
		for _, col := range names {
			rule := cols[col]
			t, err := reg.Resolve(rule.Function)
			if err != nil {
				return nil, errors.Wrapf(err, "table %v column %v", table, col)
			}
			p.tables[key] = append(p.tables[key], ColumnPlan{Column: col, SeedColumn: rule.SeedColumn, Transformer: t})
		}
	}
	return p, nil
}

// ForTable returns the column plans of table, matching the name case-insensitively.
func (p *Plan) ForTable(table string) []ColumnPlan {
	if p == nil {
		return nil
	}
	return p.tables[strings.ToUpper(table)]
}

// NumTables is the number of tables with at least one rule.
func (p *Plan) NumTables() int {
	if p == nil {
		return 0
	}
	return len(p.tables)
}
