// Package stream holds the rows passed between a table reader, the replication engine and a table writer.
package stream

import (
	"fmt"
	"sort"
	"strings"
)

// Column describes a result set column as reported by the database driver.
type Column struct {
	Name         string
	DatabaseType string // upper case driver type name, e.g. NVARCHAR
	HasLength    bool
	Length       int64
	HasPrecision bool
	Precision    int64
	Scale        int64
	Nullable     bool
}

// Chunk is a block of rows from one table. Row values are in Columns order and nil represents NULL.
type Chunk struct {
	Columns []Column
	Rows    [][]interface{}
}

// NewChunk returns an empty chunk with room for capacity rows.
func NewChunk(cols []Column, capacity int) *Chunk {
	return &Chunk{Columns: cols, Rows: make([][]interface{}, 0, capacity)}
}

// Len is the number of rows in the chunk.
func (c *Chunk) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Rows)
}

// Append adds a row. The row must have one value per column.
func (c *Chunk) Append(row []interface{}) error {
	if len(row) != len(c.Columns) {
		return fmt.Errorf("row has %v values but chunk has %v columns", len(row), len(c.Columns))
	}
	c.Rows = append(c.Rows, row)
	return nil
}

// ColumnNames returns the column names in result set order.
func (c *Chunk) ColumnNames() []string {
	retval := make([]string, len(c.Columns))
	for i, col := range c.Columns {
		retval[i] = col.Name
	}
	return retval
}

// ColumnIndex returns the position of the named column, ignoring case, or -1 if there is no such column.
// An exact match wins over a case-insensitive one.
func (c *Chunk) ColumnIndex(name string) int {
	idx := -1
	for i, col := range c.Columns {
		if col.Name == name {
			return i
		}
		if idx < 0 && strings.EqualFold(col.Name, name) {
			idx = i
		}
	}
	return idx
}

// Value returns the value of column col in row r.
func (c *Chunk) Value(r int, col int) interface{} {
	return c.Rows[r][col]
}

// SetValue replaces the value of column col in row r.
func (c *Chunk) SetValue(r int, col int, v interface{}) {
	c.Rows[r][col] = v
}

// SortedColumnNames returns the column names in alphabetical order.
func (c *Chunk) SortedColumnNames() []string {
	retval := c.ColumnNames()
	sort.Strings(retval)
	return retval
}
