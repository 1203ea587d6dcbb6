package tabledefinition

import (
	"reflect"
	"testing"

	"github.com/August-Icekimo/DEV-DB-Cloner/logger"
	"github.com/August-Icekimo/DEV-DB-Cloner/rdbms/shared"
	"github.com/August-Icekimo/DEV-DB-Cloner/stream"
)

func TestGetCreateTableDdl(t *testing.T) {
	log := logger.NewLogger("dbcloner", "info", true)
	cols := []stream.Column{
		{Name: "emp_no", DatabaseType: "VARCHAR", Length: 10},
		{Name: "salary", DatabaseType: "DECIMAL", HasPrecision: true, Precision: 12, Scale: 2},
		{Name: "hired", DatabaseType: "DATETIME"},
	}
	def, err := GetTableDefinition(log, shared.SqlServerDialect, "[EMP_DATA]", cols)
	if err != nil {
		t.Fatal(err)
	}
	expected := "CREATE TABLE [EMP_DATA] (\n\t[emp_no] NVARCHAR(MAX) NULL,\n\t[salary] decimal(12,2) NULL,\n\t[hired] datetime NULL\n)"
	if got := def.GetCreateTableDdl(shared.SqlServerDialect); got != expected {
		t.Fatalf("expected:\n%v\ngot:\n%v", expected, got)
	}
	if got := def.GetColumnNames(); !reflect.DeepEqual(got, []string{"emp_no", "salary", "hired"}) {
		t.Fatalf("unexpected column order: %v", got)
	}
	if def.GetInsertColumns().Len() != 3 {
		t.Fatal("expected 3 insert columns")
	}
}

func TestGetTableDefinitionErrors(t *testing.T) {
	log := logger.NewLogger("dbcloner", "info", true)
	if _, err := GetTableDefinition(log, shared.SqliteDialect, `"t"`, nil); err == nil {
		t.Fatal("expected error for a table without columns")
	}
	cols := []stream.Column{{Name: "a"}, {Name: "a"}}
	if _, err := GetTableDefinition(log, shared.SqliteDialect, `"t"`, cols); err == nil {
		t.Fatal("expected error for duplicate columns")
	}
}
