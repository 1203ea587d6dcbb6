package shared

import (
	"regexp"
	"testing"

	"github.com/August-Icekimo/DEV-DB-Cloner/logger"
	"github.com/cevaris/ordered_map"
)

func newTestInsertGenerator(t *testing.T, d Dialect) *SqlInsertTxtBatch {
	log := logger.NewLogger("dbcloner", "info", true)
	omCols := ordered_map.NewOrderedMap()
	omCols.Set("col1", "a")
	omCols.Set("col2", "b")
	omCols.Set("col3", "c")
	o, err := NewInsertGenerator(&SqlStatementGeneratorConfig{
		Log:         log,
		Dialect:     d,
		OutputTable: "t2",
		TargetCols:  omCols,
	})
	if err != nil {
		t.Fatal(err)
	}
	return o
}

func TestSqlInsertTxtBatch(t *testing.T) {
	o := newTestInsertGenerator(t, SqlServerDialect)
	var batchIsFull bool
	var err error

	// Create new batch of values size 2.
	o.InitBatch(2)
	if batchIsFull, err = o.AddValuesToBatch([]interface{}{"x", "y", 123}); err != nil {
		t.Fatal(err)
	}
	if batchIsFull {
		t.Fatal("the batch should not be full after one row")
	}
	if batchIsFull, err = o.AddValuesToBatch([]interface{}{"p", "q", 2}); err != nil {
		t.Fatal(err)
	}
	if !batchIsFull {
		t.Fatal("the batch *should* be full but it is not")
	}
	if _, err = o.AddValuesToBatch([]interface{}{"p", "q", 2}); err == nil {
		t.Fatal("expected error adding a row to a full batch")
	}
	expected := `insert into t2 ([a],[b],[c]) values ( @p1,@p2,@p3 ),( @p4,@p5,@p6 )`
	re := regexp.MustCompile("[\t\r\n\f]")
	if got := re.ReplaceAllString(o.GetStatement(), " "); got != expected {
		t.Fatalf("bad SQL INSERT generated: expected = '%v'; got = '%v'", expected, got)
	}
	if len(o.GetValues()) != 6 {
		t.Fatalf("expected 6 args; got %v", len(o.GetValues()))
	}

	// Incorrect number of values.
	o.InitBatch(1)
	if _, err = o.AddValuesToBatch([]interface{}{"a", "b", 456, 789}); err == nil {
		t.Fatal("there should have been an error: incorrect number of values deliberately supplied in batch")
	}

	// A partial batch only binds the rows added.
	o.InitBatch(5)
	if _, err = o.AddValuesToBatch([]interface{}{"a", "b", 456}); err != nil {
		t.Fatal(err)
	}
	expected = `insert into t2 ([a],[b],[c]) values ( @p1,@p2,@p3 )`
	if got := o.GetStatement(); got != expected {
		t.Fatalf("bad SQL INSERT generated: expected = '%v'; got = '%v'", expected, got)
	}
}

func TestSqlInsertTxtBatchPlaceholders(t *testing.T) {
	cases := []struct {
		dialect  Dialect
		expected string
	}{
		{PostgresDialect, `insert into t2 ("a","b","c") values ( $1,$2,$3 )`},
		{SqliteDialect, `insert into t2 ("a","b","c") values ( ?,?,? )`},
	}
	for _, c := range cases {
		o := newTestInsertGenerator(t, c.dialect)
		o.InitBatch(1)
		if _, err := o.AddValuesToBatch([]interface{}{1, 2, 3}); err != nil {
			t.Fatal(err)
		}
		if got := o.GetStatement(); got != c.expected {
			t.Fatalf("%v: expected = '%v'; got = '%v'", c.dialect.Name, c.expected, got)
		}
	}
}

func TestNewInsertGeneratorRequiresTableAndColumns(t *testing.T) {
	log := logger.NewLogger("dbcloner", "info", true)
	if _, err := NewInsertGenerator(&SqlStatementGeneratorConfig{Log: log, TargetCols: ordered_map.NewOrderedMap()}); err == nil {
		t.Fatal("expected error for missing table name")
	}
	if _, err := NewInsertGenerator(&SqlStatementGeneratorConfig{Log: log, OutputTable: "t"}); err == nil {
		t.Fatal("expected error for missing columns")
	}
}
