package rdbms

import (
	"context"
	"fmt"
	"strings"

	"github.com/August-Icekimo/DEV-DB-Cloner/logger"
	"github.com/August-Icekimo/DEV-DB-Cloner/rdbms/shared"
	"github.com/August-Icekimo/DEV-DB-Cloner/stream"
	tabledefinition "github.com/August-Icekimo/DEV-DB-Cloner/table-definition"
)

// SqlQuery runs sqltext and sends the columns, then every row, to i.
// Byte slices are converted to strings unless the column holds binary data.
func SqlQuery(ctx context.Context, log logger.Logger, db shared.Queryer, sqltext string, i shared.SqlResultHandler, args ...interface{}) error {
	rows, err := db.QueryContext(ctx, sqltext, args...)
	if err != nil {
		return fmt.Errorf("error during database query using SQL: '%v': %w", sqltext, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	// Set up column types for Scan(...)
	log.Debug("fetching column types...")
	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return fmt.Errorf("error fetching column types: %w", err)
	}
	lenColTypes := len(colTypes)
	header := make([]stream.Column, lenColTypes)
	keepBytes := make([]bool, lenColTypes)
	for idx, v := range colTypes {
		col := stream.Column{Name: v.Name(), DatabaseType: strings.ToUpper(v.DatabaseTypeName())}
		col.Length, col.HasLength = v.Length()
		col.Precision, col.Scale, col.HasPrecision = v.DecimalSize()
		nullable, ok := v.Nullable()
		col.Nullable = nullable || !ok
		header[idx] = col
		keepBytes[idx] = tabledefinition.IsBinary(col.DatabaseType)
		log.Trace("column ", col.Name, " type = ", col.DatabaseType)
	}
	if err = i.HandleHeader(header); err != nil {
		return err
	}
	// Scan the values dynamically.
	scanPtrs := make([]interface{}, lenColTypes)
	scanVals := make([]interface{}, lenColTypes)
	for idx := 0; idx < lenColTypes; idx++ { // for each column...
		scanPtrs[idx] = &scanVals[idx]
	}
	// Send the rows via callback interface.
	for rows.Next() {
		select { // quit if asked to, else continue...
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := rows.Scan(scanPtrs...); err != nil {
			return fmt.Errorf("error scanning row: %w", err)
		}
		// Make a new row.
		row := make([]interface{}, lenColTypes)
		for idx := range scanVals { // for each value...
			if b, ok := scanVals[idx].([]byte); ok && !keepBytes[idx] {
				row[idx] = string(b)
			} else {
				row[idx] = scanVals[idx]
			}
		}
		if err := i.HandleRow(row); err != nil {
			return err
		}
	}
	return rows.Err()
}

// chunker collects rows into chunks of a fixed size and passes each full chunk to fn.
type chunker struct {
	size  int
	chunk *stream.Chunk
	fn    func(*stream.Chunk) error
	rows  int64
}

func (c *chunker) HandleHeader(cols []stream.Column) error {
	c.chunk = stream.NewChunk(cols, c.size)
	return nil
}

func (c *chunker) HandleRow(row []interface{}) error {
	if err := c.chunk.Append(row); err != nil {
		return err
	}
	c.rows++
	if c.chunk.Len() >= c.size {
		return c.flush()
	}
	return nil
}

// flush sends the current chunk, if it has any rows, and starts a new one.
func (c *chunker) flush() error {
	if c.chunk == nil || c.chunk.Len() == 0 {
		return nil
	}
	full := c.chunk
	c.chunk = stream.NewChunk(full.Columns, c.size)
	return c.fn(full)
}
