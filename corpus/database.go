package corpus

import (
	"context"
	"sort"
	"strings"

	"github.com/August-Icekimo/DEV-DB-Cloner/constants"
	"github.com/August-Icekimo/DEV-DB-Cloner/helper"
	"github.com/pkg/errors"
)

// DistinctValuer returns the distinct non-null values of at least 2 characters found in table.column.
type DistinctValuer interface {
	DistinctValues(ctx context.Context, table string, column string) ([]string, error)
}

// ParseColumnRef splits a "Table.Column" reference.
// Missing parts fall back to EMP_DATA.emp_name.
func ParseColumnRef(ref string) (table string, column string) {
	table, column = helper.Split(strings.TrimSpace(ref), ".")
	if table == "" || column == "" {
		return constants.NameSourceDefaultTable, constants.NameSourceDefaultCol
	}
	return table, column
}

// SplitNames splits full names into surname and given-name fragments by code point length:
// 2 -> 1+1, 3 -> 1+2, 4 -> 2+2. Names of any other length are ignored.
// The returned pools are sorted and contain no duplicates.
func SplitNames(names []string) (surnames []string, givenNames []string) {
	s := make(map[string]struct{})
	g := make(map[string]struct{})
	for _, name := range names {
		r := []rune(strings.TrimSpace(name))
		switch len(r) {
		case 2, 3:
			s[string(r[:1])] = struct{}{}
			g[string(r[1:])] = struct{}{}
		case 4: // compound surname
			s[string(r[:2])] = struct{}{}
			g[string(r[2:])] = struct{}{}
		}
	}
	return sortedKeys(s), sortedKeys(g)
}

// FromDatabase builds a corpus from the names found in the column given by ref.
func FromDatabase(ctx context.Context, d DistinctValuer, ref string) (*Corpus, error) {
	if d == nil {
		return nil, errors.New("no database connection available for the name corpus")
	}
	table, column := ParseColumnRef(ref)
	names, err := d.DistinctValues(ctx, table, column)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading names from %v.%v", table, column)
	}
	surnames, givenNames := SplitNames(names)
	if len(surnames) == 0 || len(givenNames) == 0 {
		return nil, errors.Errorf("no usable names found in %v.%v", table, column)
	}
	return New(surnames, givenNames, SourceDb+":"+table+"."+column), nil
}

func sortedKeys(m map[string]struct{}) []string {
	retval := make([]string, 0, len(m))
	for k := range m {
		retval = append(retval, k)
	}
	sort.Strings(retval)
	return retval
}
