package stats

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/August-Icekimo/DEV-DB-Cloner/logger"
)

func TestRunStats(t *testing.T) {
	log := logger.NewLogger("dbcloner", "error", false)
	out := &bytes.Buffer{}
	r := NewRunStats(log, out)
	if r.isTerminal {
		t.Fatal("expected a buffer not to be a terminal")
	}
	r.Start("EMP_DATA", 10)
	r.Advance("EMP_DATA", 4)
	r.Advance("EMP_DATA", 6)
	r.Done("EMP_DATA", nil)
	r.Start("SALARY_DETAIL", 5)
	r.Advance("SALARY_DETAIL", 2)
	r.Done("SALARY_DETAIL", errors.New("boom"))
	r.Advance("UNKNOWN", 1) // ignored
	if out.Len() != 0 {
		t.Fatalf("expected no progress lines without a terminal; got %q", out.String())
	}
	s := r.GetStats()
	if len(s) != 2 {
		t.Fatalf("expected 2 tables; got %v", len(s))
	}
	if s[0].Table != "EMP_DATA" || s[0].StatusText != "complete" || s[0].TotalRowsProcessed != 10 || s[0].PercentComplete() != 100 {
		t.Fatalf("unexpected stats %v", s[0])
	}
	if s[1].StatusText != "skipped" || s[1].PercentComplete() != 40 {
		t.Fatalf("unexpected stats %v", s[1])
	}
}

func TestStatsProgressLine(t *testing.T) {
	s := Stats{Table: "T", StatusEmoji: "x", TotalRowsProcessed: 3, TotalRowsExpected: 0}
	if s.PercentComplete() != 100 {
		t.Fatalf("expected 100; got %v", s.PercentComplete())
	}
	if got := s.ProgressLine(); !strings.HasPrefix(got, "x T: 3/0 rows (100%)") {
		t.Fatalf("unexpected progress line %q", got)
	}
}
