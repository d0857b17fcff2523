package symtypes

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/standardbeagle/symtypes/internal/pathdisplay"
	"github.com/standardbeagle/symtypes/internal/symerr"
	"github.com/standardbeagle/symtypes/internal/workerpool"
)

// Load parses path (a single symtypes file, or a directory of them) into a
// fresh Corpus, using up to workers goroutines to parse files in parallel
// (component E). Order of file processing is not observable: file indices
// are assigned as files are opened, but every emitter downstream sorts by
// display path before writing, so output is deterministic regardless of
// worker count.
func Load(path string, workers int) (*Corpus, error) {
	files, err := discover(path)
	if err != nil {
		return nil, err
	}

	corpus := NewCorpus()
	err = workerpool.Run(len(files), workers, func(idx int) error {
		return loadFile(corpus, files[idx].abs, files[idx].display)
	})
	if err != nil {
		return nil, err
	}
	return corpus, nil
}

type discoveredFile struct {
	abs     string
	display string
}

// discover resolves path to the list of files to parse. A directory is
// walked recursively for entries named "*.symtypes"; symbolic links
// encountered during the walk are skipped, not followed.
func discover(path string) ([]discoveredFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, symerr.NewIOError("stat", path, err)
	}

	if !info.IsDir() {
		return []discoveredFile{{abs: path, display: path}}, nil
	}

	var out []discoveredFile
	walkErr := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return symerr.NewIOError("walk", p, err)
		}
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".symtypes") {
			return nil
		}
		out = append(out, discoveredFile{abs: p, display: pathdisplay.Relative(p, path)})
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return out, nil
}

// loadFile parses one symtypes file (single or consolidated) and installs
// its results into corpus.
func loadFile(corpus *Corpus, absPath, displayPath string) error {
	f, err := os.Open(absPath)
	if err != nil {
		return symerr.NewIOError("open", absPath, err)
	}
	defer f.Close()

	lines, err := readLines(f)
	if err != nil {
		return symerr.NewIOError("read", absPath, err)
	}

	if isConsolidated(lines) {
		return loadConsolidated(corpus, displayPath, lines)
	}
	return loadSingle(corpus, displayPath, lines)
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

func isConsolidated(lines []string) bool {
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		_, ok := parseHeader(trimmed)
		return ok
	}
	return false
}

// parseHeader recognizes a "/* path */" sub-file header.
func parseHeader(trimmed string) (path string, ok bool) {
	if !strings.HasPrefix(trimmed, "/*") || !strings.HasSuffix(trimmed, "*/") {
		return "", false
	}
	inner := strings.TrimSpace(trimmed[2 : len(trimmed)-2])
	if inner == "" {
		return "", false
	}
	return inner, true
}

type rawRecord struct {
	tokens Tokens
	line   int
}

// loadSingle parses a non-consolidated file: every line is a record, empty
// lines are a parse error, and every TypeRef must resolve within the same
// file's explicit records (no active/override carryover is possible outside
// a consolidated stream).
func loadSingle(corpus *Corpus, displayPath string, lines []string) error {
	fileIdx := corpus.Files.AppendEmpty(displayPath)

	raw := make(map[string]rawRecord)
	order := make([]string, 0, len(lines))
	for i, line := range lines {
		lineNum := i + 1
		if strings.TrimSpace(line) == "" {
			return symerr.NewParseError(displayPath, lineNum, fmt.Errorf("empty line"))
		}
		name, tokens, err := parseRecord(line)
		if err != nil {
			return symerr.NewParseError(displayPath, lineNum, err)
		}
		if _, dup := raw[name]; dup {
			return symerr.NewParseError(displayPath, lineNum, fmt.Errorf("duplicate record %q", name))
		}
		raw[name] = rawRecord{tokens: tokens, line: lineNum}
		order = append(order, name)
	}

	for _, name := range order {
		for _, ref := range raw[name].tokens.TypeRefs() {
			if _, ok := raw[ref]; !ok {
				return symerr.NewParseError(displayPath, raw[name].line,
					fmt.Errorf("reference to undefined type %q", ref))
			}
		}
	}

	records := make(FileRecords, len(raw))
	for _, name := range order {
		rec := raw[name]
		records[name] = corpus.Types.Merge(name, rec.tokens)
	}
	corpus.Files.SetRecords(fileIdx, records)

	for _, name := range order {
		if IsExportName(name) {
			if err := corpus.Exports.Register(name, fileIdx, displayPath, raw[name].line); err != nil {
				return err
			}
		}
	}
	return nil
}

// loadConsolidated parses a consolidated stream: a sequence of sub-files,
// each opened by a "/* path */" header and closed by the next header (or
// EOF). See spec.md §4.E for the active-type/local-override discipline this
// implements.
func loadConsolidated(corpus *Corpus, displayPath string, lines []string) error {
	activeTypes := make(map[string]rawRecord)
	seenHeaders := make(map[string]int)

	var (
		subPath    string
		subRecords map[string]rawRecord
		subOrder   []string
		localOver  map[string]rawRecord
		haveSub    bool
	)

	closeSub := func() error {
		if !haveSub {
			return nil
		}
		if err := closeSubFile(corpus, displayPath, subPath, subRecords, subOrder, activeTypes, localOver); err != nil {
			return err
		}
		return nil
	}

	for i, line := range lines {
		lineNum := i + 1
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if headerPath, ok := parseHeader(trimmed); ok {
			if prior, dup := seenHeaders[headerPath]; dup {
				return symerr.NewParseError(displayPath, lineNum,
					fmt.Errorf("duplicate sub-file header %q (already opened at line %d)", headerPath, prior))
			}
			seenHeaders[headerPath] = lineNum
			if err := closeSub(); err != nil {
				return err
			}
			subPath = headerPath
			subRecords = make(map[string]rawRecord)
			subOrder = nil
			localOver = make(map[string]rawRecord)
			haveSub = true
			continue
		}

		if !haveSub {
			return symerr.NewParseError(displayPath, lineNum, fmt.Errorf("record before any sub-file header"))
		}

		name, tokens, shorthandBase, isShorthand, err := parseConsolidatedRecord(line)
		if err != nil {
			return symerr.NewParseError(displayPath, lineNum, err)
		}

		if isShorthand {
			rec := rawRecord{tokens: tokens, line: lineNum}
			if _, dup := subRecords[name]; dup {
				return symerr.NewParseError(displayPath, lineNum, fmt.Errorf("duplicate record %q", name))
			}
			subRecords[name] = rec
			subOrder = append(subOrder, name)
			localOver[shorthandBase] = rec
			continue
		}

		if _, dup := subRecords[name]; dup {
			return symerr.NewParseError(displayPath, lineNum, fmt.Errorf("duplicate record %q", name))
		}
		rec := rawRecord{tokens: tokens, line: lineNum}
		subRecords[name] = rec
		subOrder = append(subOrder, name)
		activeTypes[name] = rec
	}

	return closeSub()
}

// closeSubFile performs the transitive-closure walk and installs the
// resulting FileRecords and exports for one sub-file.
func closeSubFile(
	corpus *Corpus,
	containerPath, subPath string,
	subRecords map[string]rawRecord,
	subOrder []string,
	activeTypes map[string]rawRecord,
	localOverride map[string]rawRecord,
) error {
	// Fold in every TypeRef not already present in the sub-file, resolving
	// against local_override first, then active_types, recursively.
	var fold func(name string) error
	fold = func(name string) error {
		rec, ok := subRecords[name]
		if !ok {
			resolved, ok := localOverride[name]
			if !ok {
				resolved, ok = activeTypes[name]
			}
			if !ok {
				return fmt.Errorf("reference to undefined type %q", name)
			}
			subRecords[name] = resolved
			subOrder = append(subOrder, name)
			rec = resolved
		}
		for _, ref := range rec.tokens.TypeRefs() {
			if _, done := subRecords[ref]; done {
				continue
			}
			if err := fold(ref); err != nil {
				return err
			}
		}
		return nil
	}

	// Walk a fixed snapshot of the explicit records; fold appends to
	// subRecords/subOrder as it discovers references, which is fine because
	// fold itself recurses into everything it adds.
	explicit := append([]string(nil), subOrder...)
	for _, name := range explicit {
		for _, ref := range subRecords[name].tokens.TypeRefs() {
			if _, done := subRecords[ref]; done {
				continue
			}
			if err := fold(ref); err != nil {
				return symerr.NewParseError(containerPath, subRecords[name].line, err)
			}
		}
	}

	fileIdx := corpus.Files.AppendEmpty(subPath)
	records := make(FileRecords, len(subRecords))
	for name, rec := range subRecords {
		records[name] = corpus.Types.Merge(name, rec.tokens)
	}
	corpus.Files.SetRecords(fileIdx, records)

	for name, rec := range subRecords {
		if IsExportName(name) {
			if err := corpus.Exports.Register(name, fileIdx, subPath, rec.line); err != nil {
				return err
			}
		}
	}
	return nil
}

// parseRecord parses a non-consolidated record line: name followed by its
// definition tokens.
func parseRecord(line string) (name string, tokens Tokens, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil, fmt.Errorf("empty line")
	}
	name = fields[0]
	tokens = make(Tokens, 0, len(fields)-1)
	for _, w := range fields[1:] {
		tokens = append(tokens, NewToken(w))
	}
	return name, tokens, nil
}

// parseConsolidatedRecord parses one consolidated-file record line, also
// recognizing the bare "x##name" UNKNOWN shorthand.
func parseConsolidatedRecord(line string) (name string, tokens Tokens, shorthandBase string, isShorthand bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil, "", false, fmt.Errorf("empty line")
	}

	if len(fields) == 1 {
		if x, base, ok := splitShorthand(fields[0]); ok {
			word, ok := expandShortType(x)
			if ok {
				expanded := Tokens{
					NewToken(word),
					NewToken(base),
					NewToken("{"),
					NewToken("UNKNOWN"),
					NewToken("}"),
				}
				fullName := string(x) + "#" + base
				return fullName, expanded, fullName, true, nil
			}
		}
	}

	name = fields[0]
	tokens = make(Tokens, 0, len(fields)-1)
	for _, w := range fields[1:] {
		tokens = append(tokens, NewToken(w))
	}
	return name, tokens, "", false, nil
}

// splitShorthand recognizes "x##base" and returns x and base. ok is false
// for anything else, including ordinary "x#base" internal-type names.
func splitShorthand(word string) (x byte, base string, ok bool) {
	i := strings.Index(word, "##")
	if i != 1 {
		return 0, "", false
	}
	return word[0], word[i+2:], true
}
