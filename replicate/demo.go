package replicate

import (
	"context"
	"fmt"
	"time"

	"github.com/August-Icekimo/DEV-DB-Cloner/constants"
	"github.com/August-Icekimo/DEV-DB-Cloner/helper"
	"github.com/August-Icekimo/DEV-DB-Cloner/stream"
)

// DemoTables returns the candidate tables used in demo mode: TABLE_001 onwards plus the given names, sorted
// with duplicates removed.
func DemoTables(extra ...[]string) []string {
	t := make([]string, 0, constants.DemoNumTables)
	for i := 1; i <= constants.DemoNumTables; i++ {
		t = append(t, fmt.Sprintf(constants.DemoTableNameFormat, i))
	}
	return helper.UniqueSortedStrings(append([][]string{t}, extra...)...)
}

// DemoSource produces synthetic rows for any table.
type DemoSource struct {
	Rows  int64         // rows per table, defaults to constants.DemoRowsPerTable
	Delay time.Duration // pause before each chunk
}

func (d *DemoSource) rows() int64 {
	if d.Rows <= 0 {
		return constants.DemoRowsPerTable
	}
	return d.Rows
}

func (d *DemoSource) CountRows(ctx context.Context, table string, filter string) (int64, error) {
	return d.rows(), nil
}

func (d *DemoSource) StreamChunks(ctx context.Context, table string, filter string, chunkSize int, fn func(*stream.Chunk) error) error {
	if chunkSize < 1 {
		return fmt.Errorf("invalid chunk size %v", chunkSize)
	}
	cols := []stream.Column{{Name: "id", DatabaseType: "BIGINT"}, {Name: "label", DatabaseType: "NVARCHAR"}}
	total := d.rows()
	for start := int64(0); start < total; start += int64(chunkSize) { // for each chunk...
		if d.Delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(d.Delay):
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
		n := int64(chunkSize)
		if start+n > total {
			n = total - start
		}
		c := stream.NewChunk(cols, int(n))
		for i := start; i < start+n; i++ {
			_ = c.Append([]interface{}{i + 1, fmt.Sprintf("%v row %v", table, i+1)})
		}
		if err := fn(c); err != nil {
			return err
		}
	}
	return nil
}

// DemoTarget discards rows.
type DemoTarget struct{}

func (DemoTarget) AppendChunk(ctx context.Context, table string, chunk *stream.Chunk) error {
	return nil
}
