package symtypes

import "sync"

// TypeVariants is the ordered sequence of every distinct token sequence
// observed for one type name across the corpus. A variant's position in this
// slice is its variant index, the stable identifier used by FileRecords and
// everywhere else in the corpus.
type TypeVariants []Tokens

// Interner is the corpus's deduplicating type table (component B): a mapping
// from type name to its TypeVariants. Reads are frequent and typically hit;
// writes (new names, new variants) are rare. It follows the same two-phase
// locking discipline as the teacher's StringPool.Intern: an optimistic
// read-locked scan, and on miss a write-locked re-scan before inserting, so a
// second writer racing to intern the identical variant does not create a
// duplicate.
type Interner struct {
	mu    sync.RWMutex
	table map[string]TypeVariants
}

// NewInterner creates an empty interning store.
func NewInterner() *Interner {
	return &Interner{table: make(map[string]TypeVariants)}
}

// Merge interns tokens under name, returning the variant index of an
// existing equal variant if one is present, or the index of a newly appended
// variant otherwise. Safe for concurrent use by multiple loader workers.
func (in *Interner) Merge(name string, tokens Tokens) int {
	// Fast path: most lookups hit an existing variant.
	in.mu.RLock()
	if idx, ok := findVariant(in.table[name], tokens); ok {
		in.mu.RUnlock()
		return idx
	}
	in.mu.RUnlock()

	in.mu.Lock()
	defer in.mu.Unlock()

	// Re-scan: another writer may have interned this exact variant, or the
	// name itself, while we waited for the write lock.
	variants := in.table[name]
	if idx, ok := findVariant(variants, tokens); ok {
		return idx
	}

	variants = append(variants, tokens)
	in.table[name] = variants
	return len(variants) - 1
}

func findVariant(variants TypeVariants, tokens Tokens) (int, bool) {
	for i, v := range variants {
		if v.Equal(tokens) {
			return i, true
		}
	}
	return 0, false
}

// Variants returns the TypeVariants recorded for name, or nil if name has
// never been interned.
func (in *Interner) Variants(name string) TypeVariants {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return in.table[name]
}

// Variant returns the tokens of a specific variant index of name. ok is
// false if name is unknown or index is out of range — per spec.md §4.G step
// 2, this indicates a broken invariant in any corpus the loader has closed,
// and callers that hold such a guarantee should treat a false here as a
// programming error, not a user-facing one.
func (in *Interner) Variant(name string, index int) (Tokens, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	variants := in.table[name]
	if index < 0 || index >= len(variants) {
		return nil, false
	}
	return variants[index], true
}

// Has reports whether name has any interned variant.
func (in *Interner) Has(name string) bool {
	in.mu.RLock()
	defer in.mu.RUnlock()
	_, ok := in.table[name]
	return ok
}

// Names returns every interned type name. Order is unspecified; callers that
// need a deterministic order sort it themselves.
func (in *Interner) Names() []string {
	in.mu.RLock()
	defer in.mu.RUnlock()
	names := make([]string, 0, len(in.table))
	for name := range in.table {
		names = append(names, name)
	}
	return names
}
