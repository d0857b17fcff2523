package symtypes

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Consolidate writes corpus as a single consolidated stream (component F):
// one "/* path */" header per non-empty sub-file (files with at least one
// export), in ascending path order, with an active-declaration compression
// pass that omits any record whose definition is already in force from an
// earlier sub-file, and emits UNKNOWN placeholders via the "x##name"
// shorthand.
func Consolidate(w io.Writer, corpus *Corpus) error {
	files := nonEmptyFilesSortedByPath(corpus)
	active := make(map[string]int)

	for i, file := range files {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "/* %s */\n", file.Path); err != nil {
			return err
		}

		selection := selectFile(corpus, file)
		for _, item := range selection {
			line, isUnknown, err := renderRecord(corpus, item.name, item.variant)
			if err != nil {
				return err
			}

			if !isUnknown {
				if prior, ok := active[item.name]; ok && prior == item.variant {
					continue // inherited from an earlier sub-file; omit
				}
				active[item.name] = item.variant
			}

			if _, err := io.WriteString(w, line+"\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

func nonEmptyFilesSortedByPath(corpus *Corpus) []*SymtypesFile {
	var files []*SymtypesFile
	for _, f := range corpus.Files.All() {
		if hasExport(f) {
			files = append(files, f)
		}
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files
}

func hasExport(f *SymtypesFile) bool {
	for name := range f.Records {
		if IsExportName(name) {
			return true
		}
	}
	return false
}

type selectedItem struct {
	name    string
	variant int
}

// selectFile computes the transitive closure of a file's exports over the
// corpus's type graph, visiting each type at most once, then sorts the
// result with internal types ("x#...") before exports and ascending by name
// within each class (spec.md §4.F "per-file ordering of records").
func selectFile(corpus *Corpus, file *SymtypesFile) []selectedItem {
	var exportNames []string
	for name := range file.Records {
		if IsExportName(name) {
			exportNames = append(exportNames, name)
		}
	}
	sort.Strings(exportNames)

	visited := make(map[string]bool)
	var items []selectedItem

	var visit func(name string)
	visit = func(name string) {
		if visited[name] {
			return
		}
		visited[name] = true
		variant, ok := file.Records[name]
		if !ok {
			return
		}
		items = append(items, selectedItem{name: name, variant: variant})
		tokens, ok := corpus.Types.Variant(name, variant)
		if !ok {
			return
		}
		for _, ref := range tokens.TypeRefs() {
			visit(ref)
		}
	}
	for _, name := range exportNames {
		visit(name)
	}

	sort.Slice(items, func(i, j int) bool {
		ci, cj := sortClass(items[i].name), sortClass(items[j].name)
		if ci != cj {
			return ci < cj
		}
		return items[i].name < items[j].name
	})
	return items
}

func sortClass(name string) int {
	if IsExportName(name) {
		return 1
	}
	return 0
}

// renderRecord formats one selected (name, variant) as it should appear in
// consolidated output: either the "x##base" UNKNOWN shorthand (which never
// updates the active-declaration map), or the full "name tok1 tok2 ..."
// record.
func renderRecord(corpus *Corpus, name string, variant int) (line string, isUnknown bool, err error) {
	tokens, ok := corpus.Types.Variant(name, variant)
	if !ok {
		return "", false, fmt.Errorf("internal error: no interned variant %d for %q", variant, name)
	}

	if isUnknownPlaceholder(name, tokens) {
		shortType, base, _ := ShortType(name)
		return fmt.Sprintf("%c##%s", shortType, base), true, nil
	}

	words := make([]string, 0, len(tokens)+1)
	words = append(words, name)
	for _, t := range tokens {
		words = append(words, t.Text)
	}
	return strings.Join(words, " "), false, nil
}

// isUnknownPlaceholder reports whether tokens is exactly the five-token
// UNKNOWN pattern spec.md §4.F defines for name: {type-word, base, "{",
// "UNKNOWN", "}"}.
func isUnknownPlaceholder(name string, tokens Tokens) bool {
	shortType, base, ok := ShortType(name)
	if !ok {
		return false
	}
	word, ok := expandShortType(shortType)
	if !ok {
		return false
	}
	want := Tokens{NewToken(word), NewToken(base), NewToken("{"), NewToken("UNKNOWN"), NewToken("}")}
	return tokens.Equal(want)
}
