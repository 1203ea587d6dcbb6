package replicate

import (
	"context"
	"reflect"
	"testing"

	"github.com/August-Icekimo/DEV-DB-Cloner/stream"
)

func TestDemoTables(t *testing.T) {
	got := DemoTables([]string{"EMP_DATA", "TABLE_001"}, []string{"EMP_DATA"})
	if len(got) != 251 {
		t.Fatalf("expected 251 tables; got %v", len(got))
	}
	if got[0] != "EMP_DATA" || got[1] != "TABLE_001" || got[250] != "TABLE_250" {
		t.Fatalf("unexpected tables %v %v %v", got[0], got[1], got[250])
	}
}

func TestDemoRun(t *testing.T) {
	src := &DemoSource{}
	var sizes []int
	err := src.StreamChunks(context.Background(), "TABLE_001", "", 5000, func(c *stream.Chunk) error {
		sizes = append(sizes, c.Len())
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(sizes, []int{5000, 5000, 5000}) {
		t.Fatalf("expected three chunks of 5000; got %v", sizes)
	}
	e := &Engine{Log: testLog, Source: &DemoSource{Rows: 7}, Target: DemoTarget{}, ChunkSize: 5}
	s := e.Run(context.Background(), []string{"TABLE_001", "TABLE_002"}, nil)
	if !s.Complete() || s.TotalRows() != 14 {
		t.Fatalf("unexpected summary %+v", s)
	}
}
