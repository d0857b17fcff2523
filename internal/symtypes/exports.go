package symtypes

import (
	"fmt"
	"sync"

	"github.com/standardbeagle/symtypes/internal/symerr"
)

// ExportIndex maps an exported symbol name to the index of the file that
// declares it (component D). Duplicate exports across files are a hard parse
// error, so Register is the index's only mutator and the only place that
// invariant is enforced.
type ExportIndex struct {
	mu      sync.Mutex
	fileOf  map[string]int
	pathOf  map[string]string // export -> declaring file's display path, for error messages
	lineOf  map[string]int
}

// NewExportIndex creates an empty export index.
func NewExportIndex() *ExportIndex {
	return &ExportIndex{
		fileOf: make(map[string]int),
		pathOf: make(map[string]string),
		lineOf: make(map[string]int),
	}
}

// Register inserts name -> fileIndex, failing if name was already registered
// (by any file, including fileIndex itself). line and path are carried only
// for the error message.
func (ei *ExportIndex) Register(name string, fileIndex int, path string, line int) error {
	ei.mu.Lock()
	defer ei.mu.Unlock()

	if priorPath, ok := ei.pathOf[name]; ok {
		return symerr.NewParseError(path, line,
			fmt.Errorf("duplicate export %q (already declared in %s:%d)", name, priorPath, ei.lineOf[name]))
	}

	ei.fileOf[name] = fileIndex
	ei.pathOf[name] = path
	ei.lineOf[name] = line
	return nil
}

// FileOf returns the file index that declares name, and whether name is a
// known export.
func (ei *ExportIndex) FileOf(name string) (int, bool) {
	ei.mu.Lock()
	defer ei.mu.Unlock()
	idx, ok := ei.fileOf[name]
	return idx, ok
}

// Names returns every registered export name. Order is unspecified.
func (ei *ExportIndex) Names() []string {
	ei.mu.Lock()
	defer ei.mu.Unlock()
	names := make([]string, 0, len(ei.fileOf))
	for name := range ei.fileOf {
		names = append(names, name)
	}
	return names
}

// Len returns the number of registered exports.
func (ei *ExportIndex) Len() int {
	ei.mu.Lock()
	defer ei.mu.Unlock()
	return len(ei.fileOf)
}
