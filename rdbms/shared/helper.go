package shared

import (
	"errors"
)

// FixSqlStatementGeneratorConfig checks the output table is set and sets the schema separator.
func FixSqlStatementGeneratorConfig(cfg *SqlStatementGeneratorConfig) error {
	if cfg.OutputTable == "" {
		return errors.New("missing output table name")
	}
	if cfg.TargetCols == nil || cfg.TargetCols.Len() == 0 {
		return errors.New("missing output columns")
	}
	if cfg.OutputSchema == "" {
		cfg.SchemaSeparator = ""
		cfg.Log.Debug("No output schema supplied; setting a blank separator.")
	} else {
		cfg.SchemaSeparator = "."
	}
	return nil
}
