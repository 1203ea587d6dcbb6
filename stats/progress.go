package stats

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/August-Icekimo/DEV-DB-Cloner/logger"
	"github.com/cevaris/ordered_map"
	"github.com/mattn/go-isatty"
)

type StatsFetcher interface {
	GetStats() []Stats
}

// RunStats reports the progress of a replication run, one TableWatcher per table.
// When out is a terminal a single progress line is redrawn per chunk, otherwise each chunk is logged.
type RunStats struct {
	mu         sync.Mutex
	log        logger.Logger
	out        io.Writer
	isTerminal bool
	tables     *ordered_map.OrderedMap // map of table name to *TableWatcher in the order tables were started.
}

// NewRunStats creates a RunStats that draws progress lines on out.
func NewRunStats(log logger.Logger, out io.Writer) *RunStats {
	return &RunStats{
		log:        log,
		out:        out,
		isTerminal: IsTerminal(out),
		tables:     ordered_map.NewOrderedMap(),
	}
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Start begins watching table, which is expected to hold total rows.
func (t *RunStats) Start(table string, total int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	w := NewTableWatcher(t.log, table)
	t.tables.Set(table, w)
	w.StartWatching(total)
	t.log.Info("copying ", total, " rows from ", table)
}

// Advance records that rows more rows of table were written.
func (t *RunStats) Advance(table string, rows int) {
	w := t.watcher(table)
	if w == nil {
		return
	}
	w.Add(rows)
	s := w.RenderStats()
	if t.isTerminal {
		_, _ = fmt.Fprintf(t.out, "\r%v", s.ProgressLine())
	} else {
		t.log.Debug(s.ProgressLine())
	}
}

// Done stops watching table and logs its final stats.
func (t *RunStats) Done(table string, err error) {
	w := t.watcher(table)
	if w == nil {
		return
	}
	w.StopWatching(err != nil)
	s := w.RenderStats()
	if t.isTerminal {
		_, _ = fmt.Fprintf(t.out, "\r%v\n", s.ProgressLine())
	}
	t.log.Info(s.String())
}

// GetStats implements interface StatsFetcher{}.
func (t *RunStats) GetStats() []Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	statsList := make([]Stats, 0, t.tables.Len())
	iter := t.tables.IterFunc()
	for kv, ok := iter(); ok; kv, ok = iter() { // for each table watched...
		statsList = append(statsList, kv.Value.(*TableWatcher).RenderStats())
	}
	return statsList
}

func (t *RunStats) watcher(table string) *TableWatcher {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.tables.Get(table)
	if !ok {
		return nil
	}
	return v.(*TableWatcher)
}
