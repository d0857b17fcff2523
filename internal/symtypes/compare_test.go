package symtypes

import (
	"strings"
	"testing"
)

func TestCompareNoDifferences(t *testing.T) {
	l := buildCorpus(t, map[string][]string{
		"a.symtypes": {"s#foo struct foo { int a ; }", "bar int bar ( s#foo )"},
	})
	r := buildCorpus(t, map[string][]string{
		"a.symtypes": {"s#foo struct foo { int a ; }", "bar int bar ( s#foo )"},
	})

	report, err := Compare(l, r, nil, 4)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if !report.Empty() {
		t.Errorf("Compare = %+v, want empty report", report)
	}
}

func TestCompareAddedAndRemovedExports(t *testing.T) {
	l := buildCorpus(t, map[string][]string{
		"a.symtypes": {"bar int bar ( )"},
	})
	r := buildCorpus(t, map[string][]string{
		"a.symtypes": {"baz int baz ( )"},
	})

	report, err := Compare(l, r, nil, 2)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if len(report.Removed) != 1 || report.Removed[0] != "bar" {
		t.Errorf("Removed = %v, want [bar]", report.Removed)
	}
	if len(report.Added) != 1 || report.Added[0] != "baz" {
		t.Errorf("Added = %v, want [baz]", report.Added)
	}
}

func TestCompareChangedStruct(t *testing.T) {
	l := buildCorpus(t, map[string][]string{
		"a.symtypes": {"s#foo struct foo { int a ; }", "bar int bar ( s#foo )"},
	})
	r := buildCorpus(t, map[string][]string{
		"a.symtypes": {"s#foo struct foo { long a ; }", "bar int bar ( s#foo )"},
	})

	report, err := Compare(l, r, nil, 2)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if len(report.Changes) != 1 {
		t.Fatalf("Changes = %v, want 1 entry", report.Changes)
	}
	change := report.Changes[0]
	if change.TypeName != "s#foo" {
		t.Errorf("TypeName = %q, want s#foo", change.TypeName)
	}
	if len(change.Exports) != 1 || change.Exports[0] != "bar" {
		t.Errorf("Exports = %v, want [bar]", change.Exports)
	}
}

func TestCompareSharedExportsDedupeOntoOneChange(t *testing.T) {
	l := buildCorpus(t, map[string][]string{
		"a.symtypes": {
			"s#foo struct foo { int a ; }",
			"bar int bar ( s#foo )",
			"qux int qux ( s#foo )",
		},
	})
	r := buildCorpus(t, map[string][]string{
		"a.symtypes": {
			"s#foo struct foo { long a ; }",
			"bar int bar ( s#foo )",
			"qux int qux ( s#foo )",
		},
	})

	report, err := Compare(l, r, nil, 4)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if len(report.Changes) != 1 {
		t.Fatalf("Changes = %v, want 1 entry", report.Changes)
	}
	if got := report.Changes[0].Exports; len(got) != 2 || got[0] != "bar" || got[1] != "qux" {
		t.Errorf("Exports = %v, want [bar qux]", got)
	}
}

func TestCompareFilterRestrictsExports(t *testing.T) {
	l := buildCorpus(t, map[string][]string{
		"a.symtypes": {"bar int bar ( )", "baz int baz ( )"},
	})
	r := buildCorpus(t, map[string][]string{
		"a.symtypes": {"baz int baz ( )"},
	})

	report, err := Compare(l, r, literalFilter{"baz"}, 2)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if len(report.Removed) != 0 {
		t.Errorf("Removed = %v, want none (bar filtered out)", report.Removed)
	}
}

type literalFilter struct{ only string }

func (f literalFilter) Accept(name string) bool { return name == f.only }

func TestRenderChangedStructIncludesDiff(t *testing.T) {
	report := &Report{
		Changes: []Change{
			{
				TypeName: "s#foo",
				TokensL:  tok("struct", "foo", "{", "int", "a", ";", "}"),
				TokensR:  tok("struct", "foo", "{", "long", "a", ";", "}"),
				Exports:  []string{"bar"},
			},
		},
	}

	out := Render(report, 3)
	if !strings.Contains(out, "The following '1' exports are different:") {
		t.Errorf("Render missing header, got:\n%s", out)
	}
	if !strings.Contains(out, " bar\n") {
		t.Errorf("Render missing export line, got:\n%s", out)
	}
	if !strings.Contains(out, "because of a changed 's#foo':") {
		t.Errorf("Render missing change reason, got:\n%s", out)
	}
	if !strings.Contains(out, "-\tint a;") || !strings.Contains(out, "+\tlong a;") {
		t.Errorf("Render missing diff lines, got:\n%s", out)
	}
}

func TestRenderRemovedAndAdded(t *testing.T) {
	report := &Report{Removed: []string{"bar"}, Added: []string{"baz"}}
	out := Render(report, 3)
	want := "Export 'bar' has been removed\nExport 'baz' has been added\n"
	if out != want {
		t.Errorf("Render = %q, want %q", out, want)
	}
}
