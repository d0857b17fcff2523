package symtypes

import (
	"strings"
	"testing"
)

func buildCorpus(t *testing.T, files map[string][]string) *Corpus {
	t.Helper()
	corpus := NewCorpus()
	for path, lines := range files {
		idx := corpus.Files.AppendEmpty(path)
		records := make(FileRecords)
		for _, line := range lines {
			fields := strings.Fields(line)
			name := fields[0]
			variant := corpus.Types.Merge(name, tok(fields[1:]...))
			records[name] = variant
			if IsExportName(name) {
				if err := corpus.Exports.Register(name, idx, path, 1); err != nil {
					t.Fatalf("Register(%s): %v", name, err)
				}
			}
		}
		corpus.Files.SetRecords(idx, records)
	}
	return corpus
}

func TestConsolidateSharedStruct(t *testing.T) {
	corpus := buildCorpus(t, map[string][]string{
		"a.symtypes": {
			"s#foo struct foo { int a ; }",
			"bar int bar ( s#foo )",
		},
		"b.symtypes": {
			"s#foo struct foo { int a ; }",
			"baz int baz ( s#foo )",
		},
	})

	var b strings.Builder
	if err := Consolidate(&b, corpus); err != nil {
		t.Fatalf("Consolidate: %v", err)
	}

	want := "/* a.symtypes */\n" +
		"s#foo struct foo { int a ; }\n" +
		"bar int bar ( s#foo )\n" +
		"\n" +
		"/* b.symtypes */\n" +
		"baz int baz ( s#foo )\n"
	if b.String() != want {
		t.Errorf("Consolidate =\n%s\nwant\n%s", b.String(), want)
	}
}

func TestConsolidateDivergingStruct(t *testing.T) {
	corpus := buildCorpus(t, map[string][]string{
		"a.symtypes": {
			"s#foo struct foo { int a ; }",
			"bar int bar ( s#foo )",
		},
		"b.symtypes": {
			"s#foo struct foo { long a ; }",
			"baz int baz ( s#foo )",
		},
	})

	var b strings.Builder
	if err := Consolidate(&b, corpus); err != nil {
		t.Fatalf("Consolidate: %v", err)
	}

	want := "/* a.symtypes */\n" +
		"s#foo struct foo { int a ; }\n" +
		"bar int bar ( s#foo )\n" +
		"\n" +
		"/* b.symtypes */\n" +
		"s#foo struct foo { long a ; }\n" +
		"baz int baz ( s#foo )\n"
	if b.String() != want {
		t.Errorf("Consolidate =\n%s\nwant\n%s", b.String(), want)
	}
}

func TestConsolidateSkipsEmptyFiles(t *testing.T) {
	corpus := buildCorpus(t, map[string][]string{
		"a.symtypes": {
			"bar int bar ( )",
		},
		"empty.symtypes": {},
	})

	var b strings.Builder
	if err := Consolidate(&b, corpus); err != nil {
		t.Fatalf("Consolidate: %v", err)
	}
	if strings.Contains(b.String(), "empty.symtypes") {
		t.Errorf("Consolidate included an export-less file: %s", b.String())
	}
}

func TestConsolidateUnknownShorthand(t *testing.T) {
	corpus := buildCorpus(t, map[string][]string{
		"a.symtypes": {
			"s#foo struct foo { UNKNOWN }",
			"bar int bar ( s#foo )",
		},
	})

	var b strings.Builder
	if err := Consolidate(&b, corpus); err != nil {
		t.Fatalf("Consolidate: %v", err)
	}

	want := "/* a.symtypes */\n" +
		"s##foo\n" +
		"bar int bar ( s#foo )\n"
	if b.String() != want {
		t.Errorf("Consolidate =\n%s\nwant\n%s", b.String(), want)
	}
}
