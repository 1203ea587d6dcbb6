package rdbms

import (
	"context"
	"strings"

	"github.com/August-Icekimo/DEV-DB-Cloner/rdbms/shared"
	"github.com/August-Icekimo/DEV-DB-Cloner/stream"
	tabledefinition "github.com/August-Icekimo/DEV-DB-Cloner/table-definition"
	"github.com/pkg/errors"
)

// AppendChunk inserts the rows of chunk into table, creating the table first if it does not exist.
// All rows of the chunk are written in one transaction using multi-row INSERT statements sized to fit the
// dialect's bind variable limit.
func (c *Connection) AppendChunk(ctx context.Context, table string, chunk *stream.Chunk) (err error) {
	if chunk.Len() == 0 {
		return nil
	}
	st := SchemaTable{SchemaTable: table}
	quoted := st.Quote(c.Dialect)
	def, err := tabledefinition.GetTableDefinition(c.Log, c.Dialect, quoted, chunk.Columns)
	if err != nil {
		return errors.Wrapf(err, "error defining target table %v", table)
	}
	if err = c.ensureTable(ctx, st, def); err != nil {
		return err
	}
	gen, err := shared.NewInsertGenerator(&shared.SqlStatementGeneratorConfig{
		Log:         c.Log,
		Dialect:     c.Dialect,
		OutputTable: quoted,
		TargetCols:  def.GetInsertColumns(),
	})
	if err != nil {
		return err
	}
	batchSize := c.Dialect.RowsPerInsert(len(chunk.Columns), chunk.Len())
	tx, err := c.DbSql.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "error starting transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	for start := 0; start < chunk.Len(); start += batchSize { // for each batch of rows...
		end := start + batchSize
		if end > chunk.Len() {
			end = chunk.Len()
		}
		gen.InitBatch(end - start)
		for _, row := range chunk.Rows[start:end] {
			if _, err = gen.AddValuesToBatch(row); err != nil {
				return err
			}
		}
		if _, err = tx.ExecContext(ctx, gen.GetStatement(), gen.GetValues()...); err != nil {
			return errors.Wrapf(err, "error inserting rows %v to %v into %v", start+1, end, table)
		}
	}
	if err = tx.Commit(); err != nil {
		return errors.Wrapf(err, "error committing rows into %v", table)
	}
	return nil
}

// ensureTable creates the target table from def unless it already exists.
func (c *Connection) ensureTable(ctx context.Context, st SchemaTable, def tabledefinition.TableColumns) error {
	key := strings.ToUpper(st.String())
	if _, ok := c.created[key]; ok {
		return nil
	}
	tables, err := c.ListTables(ctx)
	if err != nil {
		return err
	}
	name := st.Unquoted()
	for _, t := range tables {
		if strings.EqualFold(t, name) {
			c.created[key] = struct{}{}
			return nil
		}
	}
	ddl := def.GetCreateTableDdl(c.Dialect)
	c.Log.Info("creating target table ", st.String())
	c.Log.Debug(ddl)
	if _, err = c.DbSql.ExecContext(ctx, ddl); err != nil {
		return errors.Wrapf(err, "error creating target table %v", st.String())
	}
	c.created[key] = struct{}{}
	return nil
}
