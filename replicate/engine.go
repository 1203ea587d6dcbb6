// Package replicate copies tables from a source database to a target database, masking sensitive columns on
// the way through.
package replicate

import (
	"context"
	"strings"
	"time"

	"github.com/August-Icekimo/DEV-DB-Cloner/anonymize"
	"github.com/August-Icekimo/DEV-DB-Cloner/constants"
	"github.com/August-Icekimo/DEV-DB-Cloner/helper"
	"github.com/August-Icekimo/DEV-DB-Cloner/logger"
	"github.com/August-Icekimo/DEV-DB-Cloner/stream"
	"github.com/pkg/errors"
	"github.com/rs/xid"
)

//go:generate mockgen -destination=mock_replicate/mock_replicate.go -package=mock_replicate github.com/August-Icekimo/DEV-DB-Cloner/replicate Source,Target

// Source reads the rows of a table.
type Source interface {
	CountRows(ctx context.Context, table string, filter string) (int64, error)
	StreamChunks(ctx context.Context, table string, filter string, chunkSize int, fn func(*stream.Chunk) error) error
}

// Target appends rows to a table, creating it if required.
type Target interface {
	AppendChunk(ctx context.Context, table string, chunk *stream.Chunk) error
}

// Progress is told about each table as it is copied.
type Progress interface {
	Start(table string, total int64)
	Advance(table string, rows int)
	Done(table string, err error)
}

// Engine copies tables one at a time, one chunk at a time.
type Engine struct {
	Log       logger.FieldLogger
	Source    Source
	Target    Target
	Plan      *anonymize.Plan
	Salt      string      // appended to seed column values, see anonymize.DailySalt
	ChunkSize int         // rows per chunk, defaults to constants.ChunkSizeDefault
	Progress  Progress    // optional
	Continue  func() bool // optional; returning false stops the run before the next table
}

// Run copies tables in the order given. A table that fails is logged and skipped and the run carries on with
// the next one. The run stops early, at a table boundary, if ctx is cancelled or Continue returns false.
func (e *Engine) Run(ctx context.Context, tables []string, filters map[string]string) Summary {
	s := Summary{RunID: xid.New().String(), Started: time.Now()}
	log := e.Log.WithField("run", s.RunID)
	progress := e.Progress
	if progress == nil {
		progress = nopProgress{}
	}
	log.Info("selected ", len(tables), " tables, starting copy...")
	for idx, table := range tables {
		if ctx.Err() != nil || (e.Continue != nil && !e.Continue()) { // if we were asked to stop...
			log.Warn("replication stopped before table ", table)
			s.NotStarted = append(s.NotStarted, tables[idx:]...)
			break
		}
		tlog := log.WithField("table", table)
		tlog.Info("processing table ", table)
		filter := LookupFilter(filters, table)
		if filter != "" {
			tlog.Info("applying filter: ", filter)
		}
		rows, err := e.copyTable(ctx, tlog, table, filter, progress)
		progress.Done(table, err)
		if err != nil {
			tlog.Error("error processing table ", table, ": ", err)
			s.Skipped = append(s.Skipped, TableResult{Table: table, Rows: rows, Err: err})
			continue
		}
		s.Succeeded = append(s.Succeeded, TableResult{Table: table, Rows: rows})
	}
	s.Finished = time.Now()
	return s
}

func (e *Engine) copyTable(ctx context.Context, log logger.Logger, table string, filter string, progress Progress) (int64, error) {
	total, err := e.Source.CountRows(ctx, table, filter)
	if err != nil {
		return 0, errors.Wrap(err, "error counting source rows")
	}
	progress.Start(table, total)
	chunkSize := e.ChunkSize
	if chunkSize < 1 {
		chunkSize = constants.ChunkSizeDefault
	}
	plans := e.Plan.ForTable(table)
	var rules []boundRule
	var bound bool
	var rows int64
	err = e.Source.StreamChunks(ctx, table, filter, chunkSize, func(chunk *stream.Chunk) error {
		if !bound { // if this is the first chunk...
			// Every chunk of a table has the same columns.
			rules = bindRules(log, plans, chunk)
			bound = true
		}
		e.maskChunk(rules, chunk)
		if err := e.Target.AppendChunk(ctx, table, chunk); err != nil {
			return errors.Wrap(err, "error writing rows to target")
		}
		rows += int64(chunk.Len())
		progress.Advance(table, chunk.Len())
		return nil
	})
	return rows, err
}

// boundRule is a ColumnPlan resolved to column positions within a chunk.
type boundRule struct {
	column      string
	col         int
	seed        int // -1 when the rule has no seed column
	transformer anonymize.Transformer
}

// bindRules finds the columns used by plans in chunk. Rules whose column or seed column is missing are skipped.
func bindRules(log logger.Logger, plans []anonymize.ColumnPlan, chunk *stream.Chunk) []boundRule {
	retval := make([]boundRule, 0, len(plans))
	for _, p := range plans {
		col := chunk.ColumnIndex(p.Column)
		if col < 0 {
			log.Debug("column ", p.Column, " not found in columns ", strings.Join(chunk.ColumnNames(), ","), "; rule skipped")
			continue
		}
		seed := -1
		if p.SeedColumn != "" {
			if seed = chunk.ColumnIndex(p.SeedColumn); seed < 0 {
				log.Warn("seed column ", p.SeedColumn, " for column ", p.Column, " not found; rule skipped")
				continue
			}
		}
		log.Debug("masking column ", p.Column, " with ", p.Transformer.Name(), " (seed: ", p.SeedColumn, ")")
		retval = append(retval, boundRule{column: p.Column, col: col, seed: seed, transformer: p.Transformer})
	}
	return retval
}

// maskChunk applies rules to every row of chunk in place.
// Seed values are read from the row as it was before masking. NULL values stay NULL.
func (e *Engine) maskChunk(rules []boundRule, chunk *stream.Chunk) {
	if len(rules) == 0 {
		return
	}
	seeds := make([]string, len(rules))
	for r := range chunk.Rows { // for each row...
		for idx, b := range rules { // capture seeds first...
			seeds[idx] = ""
			if b.seed >= 0 {
				v, _ := helper.ValueToString(chunk.Value(r, b.seed)) // NULL seeds render as ""
				seeds[idx] = anonymize.SeedMaterial(v, e.Salt)
			}
		}
		for idx, b := range rules { // then mask.
			v, isNull := helper.ValueToString(chunk.Value(r, b.col))
			if isNull {
				continue
			}
			chunk.SetValue(r, b.col, b.transformer.Apply(v, seeds[idx]))
		}
	}
}

// LookupFilter returns the filter for table, trying an exact match before a case-insensitive one.
func LookupFilter(filters map[string]string, table string) string {
	if f, ok := filters[table]; ok {
		return f
	}
	for k, f := range filters {
		if strings.EqualFold(k, table) {
			return f
		}
	}
	return ""
}

type nopProgress struct{}

func (nopProgress) Start(string, int64) {}

func (nopProgress) Advance(string, int) {}

func (nopProgress) Done(string, error) {}
