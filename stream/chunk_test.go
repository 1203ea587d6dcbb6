package stream

import (
	"reflect"
	"testing"
)

func newTestChunk() *Chunk {
	return NewChunk([]Column{{Name: "emp_no"}, {Name: "EMP_NAME"}, {Name: "emp_name"}}, 2)
}

func TestChunk_ColumnIndex(t *testing.T) {
	c := newTestChunk()
	if got := c.ColumnIndex("emp_name"); got != 2 {
		t.Fatalf("expected exact match at index 2; got %v", got)
	}
	if got := c.ColumnIndex("Emp_No"); got != 0 {
		t.Fatalf("expected case-insensitive match at index 0; got %v", got)
	}
	if got := c.ColumnIndex("missing"); got != -1 {
		t.Fatalf("expected -1 for a missing column; got %v", got)
	}
}

func TestChunk_Append(t *testing.T) {
	c := newTestChunk()
	if err := c.Append([]interface{}{"1", "a", "b"}); err != nil {
		t.Fatal(err)
	}
	if err := c.Append([]interface{}{"1"}); err == nil {
		t.Fatal("expected error when the row is shorter than the column list")
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 row; got %v", c.Len())
	}
	c.SetValue(0, 1, nil)
	if c.Value(0, 1) != nil {
		t.Fatalf("expected nil value after SetValue; got %v", c.Value(0, 1))
	}
	var nilChunk *Chunk
	if nilChunk.Len() != 0 {
		t.Fatal("expected a nil chunk to have no rows")
	}
}

func TestChunk_SortedColumnNames(t *testing.T) {
	got := newTestChunk().SortedColumnNames()
	expected := []string{"EMP_NAME", "emp_name", "emp_no"}
	if !reflect.DeepEqual(got, expected) {
		t.Fatalf("expected = %v; got = %v", expected, got)
	}
}
