package symtypes

import "sync"

// FileRecords maps a type name to the variant index (into the corpus
// Interner) chosen for that name within one file. At close, it is
// transitively closed: every TypeRef reachable from any entry is itself an
// entry.
type FileRecords map[string]int

// SymtypesFile pairs a display path with its FileRecords. The display path
// is the path used in output: for consolidated inputs, the embedded
// "/* path */" header; for single-file inputs, the path as the caller
// presented it (§4.E).
type SymtypesFile struct {
	Path    string
	Records FileRecords
}

// FileTable is the corpus's append-only list of files (component C's outer
// container). A file's position in the slice is its file index, used by the
// export index instead of a pointer so files and exports stay relocation-safe
// during the loader's concurrent append phase.
type FileTable struct {
	mu    sync.Mutex
	files []*SymtypesFile
}

// NewFileTable creates an empty file table.
func NewFileTable() *FileTable {
	return &FileTable{}
}

// AppendEmpty reserves a slot for a file with the given display path, created
// up front so its index is known before parsing produces records, and
// returns its file index. SetRecords, 4.C's other mutator, fills in the
// records once the file is fully parsed.
func (ft *FileTable) AppendEmpty(path string) int {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	ft.files = append(ft.files, &SymtypesFile{Path: path, Records: make(FileRecords)})
	return len(ft.files) - 1
}

// SetRecords installs the final FileRecords for fileIndex. Called once, at
// file close, after the transitive-closure walk has completed.
func (ft *FileTable) SetRecords(fileIndex int, records FileRecords) {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	ft.files[fileIndex].Records = records
}

// Get returns the file at fileIndex. Only safe to call once loading has
// finished appending (the files slice is read-only thereafter).
func (ft *FileTable) Get(fileIndex int) *SymtypesFile {
	return ft.files[fileIndex]
}

// Len returns the number of files in the table.
func (ft *FileTable) Len() int {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	return len(ft.files)
}

// All returns the file slice. Only safe to call once loading has finished;
// the returned slice must not be mutated.
func (ft *FileTable) All() []*SymtypesFile {
	return ft.files
}
