package stats

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	c "github.com/August-Icekimo/DEV-DB-Cloner/constants"
	h "github.com/August-Icekimo/DEV-DB-Cloner/helper"
	"github.com/August-Icekimo/DEV-DB-Cloner/logger"
)

// TableWatcher saves stats for the copy of a single table periodically.
// The engine calls StartWatching() before the first chunk and StopWatching() after the last.
type TableWatcher struct {
	log             logger.Logger
	table           string
	totalRows       int64 // expected rows, from the source row count
	rowCount        int64 // rows written so far, updated atomically
	startTime       time.Time
	rowsPerSecDelta int64
	rowsPerSecAvg   int64
	priorRowCount   int64     // allows us to calculate delta rows per sec between ticker timeouts.
	priorTime       time.Time // allows us to calculate delta rows per sec between ticker timeouts.
	ticker          *time.Ticker
	tickerDone      chan struct{}
	isRunning       h.AtomBool
	failed          h.AtomBool
	mu              sync.Mutex
}

// Stats is a point in time snapshot of a TableWatcher.
type Stats struct {
	Table              string `json:"table"`
	StatusText         string `json:"statusText"`
	StatusEmoji        string `json:"statusEmoji"`
	ElapsedTimeSec     int    `json:"elapsedTimeSec"`
	TotalRowsProcessed int64  `json:"totalRowsProcessed"`
	TotalRowsExpected  int64  `json:"totalRowsExpected"`
	RowsPerSecondAvg   int64  `json:"rowsPerSecondAvg"`
	RowsPerSecondDelta int64  `json:"rowsPerSecondDelta"`
}

func NewTableWatcher(log logger.Logger, table string) *TableWatcher {
	return &TableWatcher{log: log, table: table, tickerDone: make(chan struct{})}
}

// StartWatching resets the counters and starts a ticker that recalculates the row rates.
func (n *TableWatcher) StartWatching(totalRows int64) {
	n.mu.Lock()
	atomic.StoreInt64(&n.totalRows, totalRows)
	atomic.StoreInt64(&n.rowCount, 0)
	atomic.StoreInt64(&n.priorRowCount, 0)
	n.startTime = time.Now()
	n.priorTime = n.startTime
	n.mu.Unlock()
	n.isRunning.Set(true)
	n.failed.Set(false)
	n.ticker = time.NewTicker(time.Second * c.StatsCaptureFrequencySeconds)
	go func() {
		for {
			select {
			case <-n.ticker.C:
				n.CalculateStats()
			case <-n.tickerDone:
				return
			}
		}
	}()
}

// Add records that rows more rows were written.
func (n *TableWatcher) Add(rows int) {
	atomic.AddInt64(&n.rowCount, int64(rows))
}

// StopWatching stops the ticker and calculates the final stats.
// Set failed if the table did not complete.
func (n *TableWatcher) StopWatching(failed bool) {
	if !n.isRunning.Get() {
		return
	}
	n.ticker.Stop()
	n.tickerDone <- struct{}{} // stop the goroutine that calculates stats.
	n.CalculateStats()         // force final stats calculation.
	n.failed.Set(failed)
	n.isRunning.Set(false)
}

func (n *TableWatcher) CalculateStats() {
	n.mu.Lock()
	defer n.mu.Unlock()
	deltaTime := int64(time.Since(n.priorTime).Seconds())
	if deltaTime < 1 { // if we will cause divide by 0 error...
		deltaTime = 1
	}
	rowCount := atomic.LoadInt64(&n.rowCount)
	deltaRowCount := rowCount - atomic.LoadInt64(&n.priorRowCount)
	atomic.StoreInt64(&n.rowsPerSecDelta, deltaRowCount/deltaTime)
	atomic.StoreInt64(&n.priorRowCount, rowCount)
	n.priorTime = time.Now()
	atomic.StoreInt64(&n.rowsPerSecAvg, rowCount/getNumSecondsSinceTimeOrOne(n.startTime))
	n.log.Trace("STATS: ", n.table, " processing ", atomic.LoadInt64(&n.rowsPerSecDelta), " rows per sec")
}

// RenderStats gets a struct filled with stats at the point of time it is called.
func (n *TableWatcher) RenderStats() Stats {
	var statusText, statusEmoji string
	switch {
	case n.isRunning.Get():
		statusText = "running"
		statusEmoji = "\U0000231B" // hour glass
	case n.failed.Get():
		statusText = "skipped"
		statusEmoji = c.EmojiBang
	default:
		statusText = "complete"
		statusEmoji = "\U00002705" // green tick
	}
	n.mu.Lock()
	start := n.startTime
	n.mu.Unlock()
	return Stats{
		Table:              n.table,
		StatusText:         statusText,
		StatusEmoji:        statusEmoji,
		ElapsedTimeSec:     int(time.Since(start).Seconds()),
		TotalRowsProcessed: atomic.LoadInt64(&n.rowCount),
		TotalRowsExpected:  atomic.LoadInt64(&n.totalRows),
		RowsPerSecondAvg:   atomic.LoadInt64(&n.rowsPerSecAvg),
		RowsPerSecondDelta: atomic.LoadInt64(&n.rowsPerSecDelta),
	}
}

// PercentComplete returns the share of expected rows processed, capped at 100.
// A table that expects no rows is complete.
func (s Stats) PercentComplete() int {
	if s.TotalRowsExpected <= 0 {
		return 100
	}
	p := int(s.TotalRowsProcessed * 100 / s.TotalRowsExpected)
	if p > 100 {
		p = 100
	}
	return p
}

// ProgressLine formats the stats for a single terminal line.
func (s Stats) ProgressLine() string {
	return fmt.Sprintf("%v %v: %v/%v rows (%v%%) %v rows/s",
		s.StatusEmoji, s.Table, s.TotalRowsProcessed, s.TotalRowsExpected, s.PercentComplete(), s.RowsPerSecondDelta)
}

// String will format the stats for general logging.
func (s Stats) String() string {
	return fmt.Sprintf(
		"Stats for %v %v %v "+
			"elapsedTimeSec=%v "+
			"totalRowsProcessed=%v "+
			"totalRowsExpected=%v "+
			"rowsPerSecondAvg=%v "+
			"rowsPerSecondDelta=%v",
		s.Table, s.StatusText, s.StatusEmoji,
		s.ElapsedTimeSec,
		s.TotalRowsProcessed,
		s.TotalRowsExpected,
		s.RowsPerSecondAvg,
		s.RowsPerSecondDelta,
	)
}

func getNumSecondsSinceTimeOrOne(t time.Time) (seconds int64) {
	seconds = int64(time.Since(t).Seconds())
	if seconds < 1 {
		seconds = 1
	}
	return
}
