package shared

import (
	"testing"
)

func TestDialect_Quote(t *testing.T) {
	if got := SqlServerDialect.Quote("a]b"); got != "[a]]b]" {
		t.Fatalf("expected [a]]b]; got %v", got)
	}
	if got := PostgresDialect.Quote(`a"b`); got != `"a""b"` {
		t.Fatalf(`expected "a""b"; got %v`, got)
	}
	if !SqliteDialect.IsQuoted(`"x"`) || SqliteDialect.IsQuoted("x") {
		t.Fatal("unexpected IsQuoted result")
	}
}

func TestDialect_RowsPerInsert(t *testing.T) {
	cases := []struct {
		dialect  Dialect
		numCols  int
		maxRows  int
		expected int
	}{
		{SqlServerDialect, 10, 5000, 209}, // 2099 bind variables / 10 columns
		{SqlServerDialect, 1, 5000, 1000}, // row limit of a VALUES list
		{PostgresDialect, 10, 5000, 5000}, // capped by the chunk size
		{PostgresDialect, 100, 5000, 655}, // 65534 / 100
		{SqliteDialect, 3000, 5000, 10},   // 32765 / 3000
		{SqlServerDialect, 3000, 5000, 1}, // always at least one row
		{SqliteDialect, 0, 42, 42},
	}
	for _, c := range cases {
		got := c.dialect.RowsPerInsert(c.numCols, c.maxRows)
		if got != c.expected {
			t.Fatalf("%v with %v columns: expected %v rows; got %v", c.dialect.Name, c.numCols, c.expected, got)
		}
		if c.numCols > 0 && got > 1 && got*c.numCols >= c.dialect.MaxBindParams {
			t.Fatalf("%v with %v columns: %v rows exceed the bind limit", c.dialect.Name, c.numCols, got)
		}
	}
}

func TestDialectForDriver(t *testing.T) {
	if DialectForDriver(DriverPgx).Placeholder(3) != "$3" {
		t.Fatal("expected $3 for postgres")
	}
	if DialectForDriver(DriverSqlite).Placeholder(3) != "?" {
		t.Fatal("expected ? for sqlite")
	}
	if DialectForDriver(DriverSqlServer).Placeholder(3) != "@p3" {
		t.Fatal("expected @p3 for sql server")
	}
}
