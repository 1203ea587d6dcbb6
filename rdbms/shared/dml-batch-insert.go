package shared

import (
	"fmt"
	"strings"

	h "github.com/August-Icekimo/DEV-DB-Cloner/helper"
	"github.com/pkg/errors"
)

// SqlInsertTxtBatch implements interface SqlStmtTxtBatcher
// and is able to generate multi-row INSERT statements for batches of rows supplied.
type SqlInsertTxtBatch struct {
	SqlStatementGeneratorConfig // mandatory to be populated.
	sqlCoreCfg
	ColList []string // list of quoted columns extracted from SqlStatementGeneratorConfig.
}

// NewInsertGenerator creates a new SqlInsertTxtBatch for the table and columns in cfg.
func NewInsertGenerator(cfg *SqlStatementGeneratorConfig) (*SqlInsertTxtBatch, error) {
	if err := FixSqlStatementGeneratorConfig(cfg); err != nil {
		return nil, err
	}
	cfg.Log.Debug("Creating NewInsertGenerator")
	o := &SqlInsertTxtBatch{SqlStatementGeneratorConfig: *cfg}
	o.setupSqlStatement()
	return o, nil
}

func (o *SqlInsertTxtBatch) setupSqlStatement() {
	// Build the list of column names.
	cols := make([]string, o.TargetCols.Len())
	idx := 0
	h.OrderedMapValuesToStringSlice(o.Log, o.TargetCols, &cols, &idx)
	o.ColList = make([]string, len(cols))
	for i, c := range cols {
		o.ColList[i] = o.Dialect.Quote(c)
	}
	// Populate the SQL template.
	o.sqlStmtTemplate = `insert into <SCHEMA><SEPARATOR><TABLE> (<TGT-COLS>) values <VALUES>`
	o.sqlStmtTemplate = strings.Replace(o.sqlStmtTemplate, "<SCHEMA>", o.OutputSchema, 1)
	o.sqlStmtTemplate = strings.Replace(o.sqlStmtTemplate, "<SEPARATOR>", o.SchemaSeparator, 1)
	o.sqlStmtTemplate = strings.Replace(o.sqlStmtTemplate, "<TABLE>", o.OutputTable, 1)
	o.sqlStmtTemplate = strings.Replace(o.sqlStmtTemplate, "<TGT-COLS>", strings.Join(o.ColList, ","), 1)
	o.Log.Debug("setup INSERT generator with SQL (VALUES pending): ", o.sqlStmtTemplate)
}

func (o *SqlInsertTxtBatch) InitBatch(batchSize int) {
	o.batchSize = batchSize
	o.rowsInBatch = 0
	// Allocate a new buffer to hold all values (args) to exec.
	o.sqlValues = make([]interface{}, 0, o.batchSize*len(o.ColList)) // many values per row in a batch.
}

func (o *SqlInsertTxtBatch) AddValuesToBatch(values []interface{}) (batchIsFull bool, err error) {
	if o.rowsInBatch >= o.batchSize {
		err = errors.New("no more rows allowed in INSERT batch")
		batchIsFull = true
		return
	}
	if len(values) != len(o.ColList) {
		err = errors.New("the number of values supplied does not match the number of table columns")
		return
	}
	// Append values to buffer.
	o.sqlValues = append(o.sqlValues, values...)
	o.rowsInBatch++ // keep track of how close we are to the batch limit.
	batchIsFull = o.rowsInBatch >= o.batchSize
	return
}

// RowsInBatch is the number of rows added since InitBatch.
func (o *SqlInsertTxtBatch) RowsInBatch() int {
	return o.rowsInBatch
}

func (o *SqlInsertTxtBatch) GetValues() []interface{} {
	return o.sqlValues
}

// GetStatement returns the INSERT for the rows added so far.
// The statement is cached while successive batches hold the same number of rows.
func (o *SqlInsertTxtBatch) GetStatement() string {
	if o.sqlStmt == "" || o.previousNumRowsInBatch != o.rowsInBatch {
		allRows := strings.Builder{}
		valIdx := 1
		for rowIdx := 1; rowIdx <= o.rowsInBatch; rowIdx++ { // for each row in the batch...
			// Build the current row of bind variables.
			row := make([]string, len(o.ColList))
			for idy := range o.ColList {
				row[idy] = o.Dialect.Placeholder(valIdx)
				valIdx++
			}
			if rowIdx > 1 {
				allRows.WriteString(",")
			}
			allRows.WriteString(fmt.Sprintf("( %v )", strings.Join(row, ",")))
		}
		o.sqlStmt = strings.Replace(o.sqlStmtTemplate, "<VALUES>", allRows.String(), 1)
		o.previousNumRowsInBatch = o.rowsInBatch
	} // else we have the same number of rows and can use cached SQL...
	return o.sqlStmt
}
