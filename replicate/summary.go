package replicate

import (
	"time"

	"github.com/August-Icekimo/DEV-DB-Cloner/logger"
)

// TableResult is the outcome of copying one table.
type TableResult struct {
	Table string
	Rows  int64
	Err   error
}

// Summary reports what a run did.
type Summary struct {
	RunID      string
	Started    time.Time
	Finished   time.Time
	Succeeded  []TableResult
	Skipped    []TableResult
	NotStarted []string
}

// TotalRows returns the number of rows written by the run, including rows of skipped tables that were
// committed before the failure.
func (s Summary) TotalRows() (n int64) {
	for _, r := range s.Succeeded {
		n += r.Rows
	}
	for _, r := range s.Skipped {
		n += r.Rows
	}
	return
}

// Complete is true when every table was copied.
func (s Summary) Complete() bool {
	return len(s.Skipped) == 0 && len(s.NotStarted) == 0
}

// Log prints the report.
func (s Summary) Log(log logger.Logger) {
	log.Info("run ", s.RunID, ": ", len(s.Succeeded), " tables copied, ", len(s.Skipped), " skipped, ",
		len(s.NotStarted), " not started, ", s.TotalRows(), " rows in ", s.Finished.Sub(s.Started).Round(time.Millisecond))
	for _, r := range s.Skipped {
		log.Warn("skipped table ", r.Table, " after ", r.Rows, " rows: ", r.Err)
	}
	for _, t := range s.NotStarted {
		log.Warn("not started: ", t)
	}
	log.Info("all done!")
}
