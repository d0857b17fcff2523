package symtypes

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/standardbeagle/symtypes/internal/udiff"
	"github.com/standardbeagle/symtypes/internal/wildcard"
	"github.com/standardbeagle/symtypes/internal/workerpool"
)

// Filter accepts or rejects export names; *wildcard.Matcher satisfies it, as
// does wildcard.None for "no filter".
type Filter interface {
	Accept(name string) bool
}

// Change is one structural type difference discovered during comparison,
// together with every export whose traversal reached it (spec.md §4.G
// "change bucket").
type Change struct {
	TypeName string
	TokensL  Tokens
	TokensR  Tokens
	Exports  []string // sorted alphabetically before Report is returned
}

// Report is the full result of comparing two corpora: exports present only
// on one side, and the type-level changes reachable from exports present on
// both.
type Report struct {
	Removed []string
	Added   []string
	Changes []Change
}

// Empty reports whether the comparison found no differences at all — the
// condition the CLI maps to exit code 0.
func (r *Report) Empty() bool {
	return len(r.Removed) == 0 && len(r.Added) == 0 && len(r.Changes) == 0
}

// Compare walks the export graphs of L and R (spec.md §4.G): a sequential
// pre-pass finds exports unique to one side, then up to workers goroutines
// walk the common exports' type graphs in parallel, each with its own
// per-export processed-set, accumulating structural changes into a shared,
// mutex-guarded bucket map keyed by (type name, tokensL, tokensR).
func Compare(l, r *Corpus, filter Filter, workers int) (*Report, error) {
	if filter == nil {
		filter = wildcard.None
	}

	report := &Report{}
	var common []string

	for _, name := range l.Exports.Names() {
		if !filter.Accept(name) {
			continue
		}
		if _, ok := r.Exports.FileOf(name); !ok {
			report.Removed = append(report.Removed, name)
			continue
		}
		common = append(common, name)
	}
	for _, name := range r.Exports.Names() {
		if !filter.Accept(name) {
			continue
		}
		if _, ok := l.Exports.FileOf(name); !ok {
			report.Added = append(report.Added, name)
		}
	}
	sort.Strings(report.Removed)
	sort.Strings(report.Added)
	sort.Strings(common)

	buckets := newChangeSet()
	err := workerpool.Run(len(common), workers, func(idx int) error {
		name := common[idx]
		fileL, _ := l.Exports.FileOf(name)
		fileR, _ := r.Exports.FileOf(name)
		processed := make(map[string]bool)
		compareType(l, r, fileL, fileR, name, name, processed, buckets)
		return nil
	})
	if err != nil {
		return nil, err
	}

	report.Changes = buckets.drain()
	return report, nil
}

// compareType implements the recursive per-export DFS of spec.md §4.G steps
// 1-4, including the pairing heuristic: when the immediate tokens differ,
// only TypeRefs appearing on both sides are followed further.
func compareType(l, r *Corpus, fileL, fileR int, export, name string, processed map[string]bool, buckets *changeSet) {
	if processed[name] {
		return
	}
	processed[name] = true

	tokensL, okL := l.Variant(fileL, name)
	tokensR, okR := r.Variant(fileR, name)
	if !okL || !okR {
		panic(fmt.Sprintf("symtypes: broken corpus invariant: %q missing from a closed file (L ok=%v, R ok=%v)", name, okL, okR))
	}

	if !tokensL.Equal(tokensR) {
		buckets.add(name, tokensL, tokensR, export)

		refsR := make(map[string]bool)
		for _, ref := range tokensR.TypeRefs() {
			refsR[ref] = true
		}
		for _, ref := range tokensL.TypeRefs() {
			if refsR[ref] {
				compareType(l, r, fileL, fileR, export, ref, processed, buckets)
			}
		}
		return
	}

	for _, ref := range tokensL.TypeRefs() {
		compareType(l, r, fileL, fileR, export, ref, processed, buckets)
	}
}

// changeSet is the comparator's shared, mutex-guarded change-bucket map. The
// bucket key is an xxhash digest of the type name plus both token sequences
// — a fast, compact key for the common case, backed by a full token-equality
// check on any hash collision so correctness never depends on the hash being
// collision-free.
type changeSet struct {
	mu      sync.Mutex
	buckets map[uint64][]*Change
}

func newChangeSet() *changeSet {
	return &changeSet{buckets: make(map[uint64][]*Change)}
}

func (cs *changeSet) add(typeName string, tokensL, tokensR Tokens, export string) {
	h := bucketHash(typeName, tokensL, tokensR)

	cs.mu.Lock()
	defer cs.mu.Unlock()

	for _, b := range cs.buckets[h] {
		if b.TypeName == typeName && b.TokensL.Equal(tokensL) && b.TokensR.Equal(tokensR) {
			b.Exports = append(b.Exports, export)
			return
		}
	}
	cs.buckets[h] = append(cs.buckets[h], &Change{
		TypeName: typeName,
		TokensL:  tokensL,
		TokensR:  tokensR,
		Exports:  []string{export},
	})
}

func (cs *changeSet) drain() []Change {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	var out []Change
	for _, chain := range cs.buckets {
		for _, b := range chain {
			sort.Strings(b.Exports)
			out = append(out, *b)
		}
	}
	// Full total order, matching the original's (name, tokens, other_tokens,
	// exports) sort key: two buckets can share a type name and TokensL while
	// differing in TokensR (the same type defined identically in L but
	// differently per-file in R), so TokensL alone is not a stable key.
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.TypeName != b.TypeName {
			return a.TypeName < b.TypeName
		}
		if la, lb := joinTokens(a.TokensL), joinTokens(b.TokensL); la != lb {
			return la < lb
		}
		if ra, rb := joinTokens(a.TokensR), joinTokens(b.TokensR); ra != rb {
			return ra < rb
		}
		return strings.Join(a.Exports, ",") < strings.Join(b.Exports, ",")
	})
	return out
}

func bucketHash(typeName string, tokensL, tokensR Tokens) uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(typeName)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(joinTokens(tokensL))
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(joinTokens(tokensR))
	return h.Sum64()
}

func joinTokens(ts Tokens) string {
	words := make([]string, len(ts))
	for i, t := range ts {
		words[i] = t.Text
	}
	return strings.Join(words, " ")
}

// Render formats a Report as the human-readable comparator output of
// spec.md §4.G, rendering structural diffs with diffContext lines of
// surrounding context (spec.md §4.G default 3).
func Render(report *Report, diffContext int) string {
	var b strings.Builder

	for _, name := range report.Removed {
		fmt.Fprintf(&b, "Export '%s' has been removed\n", name)
	}
	for _, name := range report.Added {
		fmt.Fprintf(&b, "Export '%s' has been added\n", name)
	}

	for i, change := range report.Changes {
		if i > 0 || len(report.Removed) > 0 || len(report.Added) > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "The following '%d' exports are different:\n", len(change.Exports))
		for _, name := range change.Exports {
			fmt.Fprintf(&b, " %s\n", name)
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "because of a changed '%s':\n", change.TypeName)

		left := PrettyPrint(change.TokensL)
		right := PrettyPrint(change.TokensR)
		hunks := udiff.Unified(left, right, diffContext)
		b.WriteString(udiff.Format(hunks))
	}

	return b.String()
}
