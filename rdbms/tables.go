package rdbms

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/August-Icekimo/DEV-DB-Cloner/helper"
	"github.com/August-Icekimo/DEV-DB-Cloner/stream"
	"github.com/pkg/errors"
)

// ListTables returns the names of the base tables in the database in alphabetical order.
func (c *Connection) ListTables(ctx context.Context) ([]string, error) {
	rows, err := c.DbSql.QueryContext(ctx, c.Dialect.TablesQuery)
	if err != nil {
		return nil, errors.Wrap(err, "error listing tables")
	}
	defer func() {
		_ = rows.Close()
	}()
	retval := make([]string, 0)
	for rows.Next() {
		var name string
		if err = rows.Scan(&name); err != nil {
			return nil, errors.Wrap(err, "error scanning table name")
		}
		retval = append(retval, name)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error listing tables")
	}
	sort.Strings(retval)
	return retval, nil
}

// whereClause returns " WHERE (filter)" or an empty string when there is no filter.
func whereClause(filter string) string {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return ""
	}
	return fmt.Sprintf(" WHERE (%v)", filter)
}

// CountRows returns the number of rows in table that match filter.
func (c *Connection) CountRows(ctx context.Context, table string, filter string) (int64, error) {
	st := SchemaTable{SchemaTable: table}
	q := fmt.Sprintf("SELECT COUNT(*) FROM %v%v", st.Quote(c.Dialect), whereClause(filter))
	var n int64
	if err := c.DbSql.QueryRowContext(ctx, q).Scan(&n); err != nil {
		return 0, errors.Wrapf(err, "error counting rows using SQL: '%v'", q)
	}
	return n, nil
}

// StreamChunks reads the rows of table that match filter and passes them to fn in chunks of at most chunkSize rows.
// Nothing is sent for an empty result.
func (c *Connection) StreamChunks(ctx context.Context, table string, filter string, chunkSize int, fn func(*stream.Chunk) error) error {
	if chunkSize < 1 {
		return fmt.Errorf("invalid chunk size %v", chunkSize)
	}
	st := SchemaTable{SchemaTable: table}
	q := fmt.Sprintf("SELECT * FROM %v%v", st.Quote(c.Dialect), whereClause(filter))
	h := &chunker{size: chunkSize, fn: fn}
	if err := SqlQuery(ctx, c.Log, c.DbSql, q, h); err != nil {
		return err
	}
	if err := h.flush(); err != nil {
		return err
	}
	c.Log.Debug("read ", h.rows, " rows from ", table)
	return nil
}

// DistinctValues returns the distinct non-null values of column that are at least two characters long.
func (c *Connection) DistinctValues(ctx context.Context, table string, column string) ([]string, error) {
	st := SchemaTable{SchemaTable: table}
	col := c.Dialect.Quote(column)
	q := fmt.Sprintf("SELECT DISTINCT %v FROM %v WHERE %v IS NOT NULL AND %v(%v) >= 2",
		col, st.Quote(c.Dialect), col, c.Dialect.LengthFunc, col)
	rows, err := c.DbSql.QueryContext(ctx, q)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading distinct values using SQL: '%v'", q)
	}
	defer func() {
		_ = rows.Close()
	}()
	retval := make([]string, 0)
	for rows.Next() {
		var v interface{}
		if err = rows.Scan(&v); err != nil {
			return nil, errors.Wrap(err, "error scanning distinct value")
		}
		if s, isNull := helper.ValueToString(v); !isNull {
			retval = append(retval, s)
		}
	}
	return retval, rows.Err()
}
