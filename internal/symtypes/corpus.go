package symtypes

// Corpus is the in-memory representation of one ABI snapshot: the interning
// store (B), the file table (C), and the export index (D). It is created
// empty, mutated exclusively by the Loader, and read-only thereafter.
type Corpus struct {
	Types   *Interner
	Files   *FileTable
	Exports *ExportIndex
}

// NewCorpus creates an empty corpus ready for loading.
func NewCorpus() *Corpus {
	return &Corpus{
		Types:   NewInterner(),
		Files:   NewFileTable(),
		Exports: NewExportIndex(),
	}
}

// Variant resolves the tokens for name as recorded in the given file's
// FileRecords. ok is false only if the corpus invariant that a loader-closed
// file is transitively closed has been violated — a programming error for
// any corpus that came from a successful Load, not a condition a well-formed
// comparison should ever observe (spec.md §4.G step 2).
func (c *Corpus) Variant(fileIndex int, name string) (Tokens, bool) {
	file := c.Files.Get(fileIndex)
	variantIdx, ok := file.Records[name]
	if !ok {
		return nil, false
	}
	return c.Types.Variant(name, variantIdx)
}
