package shared

import (
	"github.com/August-Icekimo/DEV-DB-Cloner/logger"
	om "github.com/cevaris/ordered_map"
)

// SqlStatementGeneratorConfig configures a DML generator for one target table.
type SqlStatementGeneratorConfig struct {
	Log             logger.Logger
	Dialect         Dialect
	OutputSchema    string
	SchemaSeparator string
	OutputTable     string
	TargetCols      *om.OrderedMap // ordered map of: key = chunk column name; value = target table column name
}

type sqlCoreCfg struct {
	sqlStmt                string
	sqlStmtTemplate        string
	sqlValues              []interface{} // slice to hold data values for all rows in batch
	batchSize              int
	rowsInBatch            int
	previousNumRowsInBatch int
}
