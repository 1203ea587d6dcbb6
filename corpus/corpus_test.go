package corpus

import (
	"context"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/August-Icekimo/DEV-DB-Cloner/logger"
)

type fakeDistinct struct {
	names []string
	err   error
	table string
	col   string
}

func (f *fakeDistinct) DistinctValues(ctx context.Context, table string, column string) ([]string, error) {
	f.table, f.col = table, column
	return f.names, f.err
}

func TestBuiltin(t *testing.T) {
	c := Builtin()
	if c.NumSurnames() != 40 || c.NumGivenNames() != 30 {
		t.Fatalf("expected 40 surnames and 30 given names; got %v and %v", c.NumSurnames(), c.NumGivenNames())
	}
	// Callers must not be able to change the snapshot.
	s := c.Surnames()
	s[0] = "X"
	if c.Surname(0) != "陳" {
		t.Fatalf("expected the snapshot to be unchanged; got %v", c.Surname(0))
	}
}

func TestSplitNames(t *testing.T) {
	surnames, given := SplitNames([]string{"王明", " 陳小明 ", "歐陽小華", "林", "司馬相如如", "王明"})
	expectedS := []string{"歐陽", "王", "陳"}
	expectedG := []string{"小明", "小華", "明"}
	if !reflect.DeepEqual(surnames, expectedS) {
		t.Fatalf("expected surnames %v; got %v", expectedS, surnames)
	}
	if !reflect.DeepEqual(given, expectedG) {
		t.Fatalf("expected given names %v; got %v", expectedG, given)
	}
}

func TestParseColumnRef(t *testing.T) {
	table, col := ParseColumnRef("STAFF.full_name")
	if table != "STAFF" || col != "full_name" {
		t.Fatalf("expected STAFF full_name; got %v %v", table, col)
	}
	table, col = ParseColumnRef("STAFF")
	if table != "EMP_DATA" || col != "emp_name" {
		t.Fatalf("expected defaults; got %v %v", table, col)
	}
}

func TestSaveAndLoadFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "corpus")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "names.json")
	now := time.Date(2025, 5, 6, 7, 8, 9, 0, time.UTC)
	if err := SaveFile(path, New([]string{"王"}, []string{"小明"}, SourceDb), now); err != nil {
		t.Fatal(err)
	}
	b, _ := ioutil.ReadFile(path)
	if !strings.Contains(string(b), `"王"`) || !strings.Contains(string(b), `"updated_at": "2025-05-06T07:08:09Z"`) {
		t.Fatalf("expected literal characters and updated_at in file; got %s", b)
	}
	c, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Surname(0) != "王" || c.GivenName(0) != "小明" {
		t.Fatalf("unexpected corpus loaded: %v %v", c.Surnames(), c.GivenNames())
	}
	// A file with an empty pool is rejected.
	if err := ioutil.WriteFile(path, []byte(`{"surnames": ["王"], "given_names": []}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected error for empty given_names")
	}
}

func TestProviderResolve(t *testing.T) {
	log := logger.NewLogger("dbcloner", "error", false)
	dir, err := ioutil.TempDir("", "corpus")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	cache := filepath.Join(dir, "OBFUSCATE_NAME.json")
	ctx := context.Background()

	// No sources at all gives the builtin pool.
	p := &Provider{Log: log, CachePath: cache}
	if got := p.Resolve(ctx, NameSource{Type: "DEFAULT"}); got.Source() != SourceBuiltin {
		t.Fatalf("expected builtin corpus; got %v", got.Source())
	}

	// Database source is used when it yields names.
	d := &fakeDistinct{names: []string{"張三豐", "李四"}}
	p.Distinct = d
	got := p.Resolve(ctx, NameSource{Type: "DB", Value: "STAFF.name"})
	if !strings.HasPrefix(got.Source(), SourceDb) || d.table != "STAFF" || d.col != "name" {
		t.Fatalf("expected database corpus from STAFF.name; got %v (%v.%v)", got.Source(), d.table, d.col)
	}

	// Database failure falls through to the cached file.
	if err := SaveFile(cache, New([]string{"趙"}, []string{"一"}, SourceDb), time.Now()); err != nil {
		t.Fatal(err)
	}
	p.Distinct = &fakeDistinct{err: errors.New("connection refused")}
	got = p.Resolve(ctx, NameSource{Type: "DATABASE"})
	if !strings.HasPrefix(got.Source(), SourceFile) || got.Surname(0) != "趙" {
		t.Fatalf("expected cached file corpus; got %v", got.Source())
	}

	// A missing FILE source also falls through to the cache.
	got = p.Resolve(ctx, NameSource{Type: "FILE", Value: filepath.Join(dir, "missing.json")})
	if got.Surname(0) != "趙" {
		t.Fatalf("expected cached file corpus; got %v", got.Surnames())
	}
}

func TestNormaliseSourceType(t *testing.T) {
	for in, want := range map[string]string{"": "DEFAULT", "database": "DB", "DB": "DB", "file": "FILE"} {
		got, ok := NormaliseSourceType(in)
		if !ok || got != want {
			t.Fatalf("NormaliseSourceType(%q): expected %v; got %v (ok=%v)", in, want, got, ok)
		}
	}
	if _, ok := NormaliseSourceType("S3"); ok {
		t.Fatal("expected S3 to be rejected")
	}
}
