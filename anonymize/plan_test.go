package anonymize

import (
	"errors"
	"testing"

	"github.com/August-Icekimo/DEV-DB-Cloner/corpus"
)

func TestNewPlan(t *testing.T) {
	rules := Rules{
		"EMP_DATA": {
			"emp_name":   {Function: "obfuscate_name", SeedColumn: "emp_no"},
			"license_id": {Function: "idMask"},
		},
	}
	p, err := NewPlan(rules, NewRegistry(corpus.Builtin()))
	if err != nil {
		t.Fatal(err)
	}
	got := p.ForTable("emp_data")
	if len(got) != 2 {
		t.Fatalf("expected 2 column plans for a case-insensitive lookup; got %v", len(got))
	}
	if got[0].Column != "emp_name" || got[0].SeedColumn != "emp_no" || got[0].Transformer.Name() != FuncObfuscateName {
		t.Fatalf("unexpected first column plan: %+v", got[0])
	}
	if got[1].Column != "license_id" || got[1].Transformer.Name() != FuncAnonymizeId {
		t.Fatalf("unexpected second column plan: %+v", got[1])
	}
	if p.ForTable("OTHER") != nil {
		t.Fatal("expected no plan for a table without rules")
	}
	if p.NumTables() != 1 {
		t.Fatalf("expected 1 table; got %v", p.NumTables())
	}
}

func TestNewPlanUnknownFunction(t *testing.T) {
	rules := Rules{"EMP_DATA": {"emp_name": {Function: "shred"}}}
	_, err := NewPlan(rules, NewRegistry(nil))
	var unknown UnknownFunctionError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownFunctionError; got %v", err)
	}
	if unknown.Function != "shred" {
		t.Fatalf("expected function shred; got %v", unknown.Function)
	}
}

func TestRulesCopy(t *testing.T) {
	rules := Rules{"T1": {"c1": {Function: FuncClearContent}}}
	c := rules.Copy()
	c["T1"]["c1"] = Rule{Function: FuncAnonymizeId}
	if rules["T1"]["c1"].Function != FuncClearContent {
		t.Fatal("expected the original rules to be unchanged")
	}
}

func TestSafeMask(t *testing.T) {
	for in, want := range map[string]string{"": "", "a": "*", "王明": "**", "王小明": "王O明", "abcdef": "aOf"} {
		if got := SafeMask(in); got != want {
			t.Fatalf("SafeMask(%q): expected %q; got %q", in, want, got)
		}
	}
}
