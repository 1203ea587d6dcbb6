// Package tabledefinition converts the columns of a source result set into the DDL of a target table.
package tabledefinition

import (
	"errors"
	"fmt"
	"strings"

	"github.com/August-Icekimo/DEV-DB-Cloner/helper"
	"github.com/August-Icekimo/DEV-DB-Cloner/logger"
	"github.com/August-Icekimo/DEV-DB-Cloner/rdbms/shared"
	"github.com/August-Icekimo/DEV-DB-Cloner/stream"
	om "github.com/cevaris/ordered_map"
)

// TableColumn defines a single target table column.
type TableColumn struct {
	ColName  string
	DataType string
	Nullable bool
}

// TableColumns holds the target definition of a table.
type TableColumns struct {
	TableName string         // quoted [schema.]table
	Columns   *om.OrderedMap // ordered map of: key = column name; value = TableColumn
}

// GetTableDefinition maps the source columns onto a definition for a table created through dialect d.
func GetTableDefinition(log logger.Logger, d shared.Dialect, quotedTable string, cols []stream.Column) (tabCols TableColumns, err error) {
	if len(cols) == 0 {
		return tabCols, errors.New("unable to define a table without columns")
	}
	m := NewMapper(d)
	tabCols.TableName = quotedTable
	tabCols.Columns = om.NewOrderedMap()
	for _, c := range cols { // for each source column...
		if _, exists := tabCols.Columns.Get(c.Name); exists {
			return tabCols, fmt.Errorf("duplicate column %q", c.Name)
		}
		colDef := TableColumn{ColName: c.Name, DataType: m.Map(c), Nullable: true} // the target never enforces NOT NULL
		log.Trace("mapped column ", c.Name, " type ", c.DatabaseType, " to ", colDef.DataType)
		tabCols.Columns.Set(c.Name, colDef)
	}
	return tabCols, nil
}

// GetColumnNames returns the column names in their original order.
func (t TableColumns) GetColumnNames() []string {
	retval := make([]string, 0, t.Columns.Len())
	iter := t.Columns.IterFunc()
	for kv, ok := iter(); ok; kv, ok = iter() {
		retval = append(retval, kv.Key.(string))
	}
	return retval
}

// GetCreateTableDdl renders CREATE TABLE for the definition using dialect d to quote column names.
func (t TableColumns) GetCreateTableDdl(d shared.Dialect) string {
	lines := make([]string, 0, t.Columns.Len())
	iter := t.Columns.IterFunc()
	for kv, ok := iter(); ok; kv, ok = iter() {
		c := kv.Value.(TableColumn)
		nullable := "NULL"
		if !c.Nullable {
			nullable = "NOT NULL"
		}
		lines = append(lines, fmt.Sprintf("%v %v %v", d.Quote(c.ColName), c.DataType, nullable))
	}
	return fmt.Sprintf("CREATE TABLE %v (\n\t%v\n)", t.TableName, strings.Join(lines, ",\n\t"))
}

// GetInsertColumns returns an ordered map of column name to column name, as used by the INSERT generator.
func (t TableColumns) GetInsertColumns() *om.OrderedMap {
	return helper.StringSliceToOrderedMap(t.GetColumnNames())
}
