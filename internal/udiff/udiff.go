// Package udiff renders a unified diff between two line sequences using the
// textbook Myers O(ND) shortest-edit-script algorithm — the concrete
// implementation behind spec.md §4.G's "unified diff" boundary. No
// speculative heuristics beyond the algorithm itself.
package udiff

import "fmt"

// Hunk is one unified-diff hunk: a contiguous block of context/removed/added
// lines plus the 1-based starting line numbers and counts used in its
// "@@ -a,b +c,d @@" header.
type Hunk struct {
	OldStart, OldCount int
	NewStart, NewCount int
	Lines              []string // each prefixed with ' ', '-', or '+'
}

// opKind tags one step of the Myers edit script.
type opKind uint8

const (
	opEqual opKind = iota
	opDelete
	opInsert
)

type op struct {
	kind opKind
	a, b int // index into old/new of the relevant line (only one is meaningful per kind)
}

// Unified computes the hunks of a unified diff between old and new, with
// context surrounding context lines of context (spec.md default 3).
func Unified(old, new []string, context int) []Hunk {
	ops := myers(old, new)
	return hunksFromOps(ops, old, new, context)
}

// Format renders hunks as unified-diff text, one hunk separated by its
// "@@ ... @@" header.
func Format(hunks []Hunk) string {
	var out string
	for _, h := range hunks {
		out += fmt.Sprintf("@@ -%d,%d +%d,%d @@\n", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
		for _, l := range h.Lines {
			out += l + "\n"
		}
	}
	return out
}

// myers computes the shortest edit script turning old into new via the
// classic O(ND) algorithm (Myers 1986), returning it as a flat op sequence.
func myers(old, new []string) []op {
	n, m := len(old), len(new)
	max := n + m
	if max == 0 {
		return nil
	}

	offset := max
	size := 2*max + 1
	v := make([]int, size)
	trace := make([][]int, 0, max+1)

	var d int
	found := false
	for d = 0; d <= max; d++ {
		snapshot := make([]int, size)
		copy(snapshot, v)
		trace = append(trace, snapshot)

		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
				x = v[offset+k+1]
			} else {
				x = v[offset+k-1] + 1
			}
			y := x - k
			for x < n && y < m && old[x] == new[y] {
				x++
				y++
			}
			v[offset+k] = x
			if x >= n && y >= m {
				found = true
				break
			}
		}
		if found {
			break
		}
	}

	return backtrack(old, new, trace, d, offset)
}

// backtrack walks the recorded V arrays from the end back to the origin to
// recover the actual sequence of equal/delete/insert operations. trace[depth]
// holds the V array exactly as it stood before depth's diagonals were
// explored (i.e. the state left by depth-1), so a single snapshot per depth
// suffices — both the current frontier and its predecessor are read from it.
func backtrack(old, new []string, trace [][]int, d, offset int) []op {
	x, y := len(old), len(new)
	var rev []op

	for depth := d; depth >= 0; depth-- {
		v := trace[depth]
		k := x - y

		var prevK int
		if k == -depth || (k != depth && v[offset+k-1] < v[offset+k+1]) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}

		prevX := v[offset+prevK]
		prevY := prevX - prevK

		for x > prevX && y > prevY {
			x--
			y--
			rev = append(rev, op{kind: opEqual, a: x, b: y})
		}

		if depth > 0 {
			if x == prevX {
				y--
				rev = append(rev, op{kind: opInsert, b: y})
			} else {
				x--
				rev = append(rev, op{kind: opDelete, a: x})
			}
		}
		x, y = prevX, prevY
	}

	ops := make([]op, len(rev))
	for i, o := range rev {
		ops[len(rev)-1-i] = o
	}
	return ops
}

// hunksFromOps groups an edit script into unified-diff hunks, merging
// adjacent changes whose surrounding context overlaps.
func hunksFromOps(ops []op, old, new []string, context int) []Hunk {
	if len(ops) == 0 {
		return nil
	}

	type lineOp struct {
		prefix byte
		text   string
		oldIdx int // -1 if not applicable
		newIdx int
	}

	all := make([]lineOp, 0, len(ops))
	for _, o := range ops {
		switch o.kind {
		case opEqual:
			all = append(all, lineOp{prefix: ' ', text: old[o.a], oldIdx: o.a, newIdx: o.b})
		case opDelete:
			all = append(all, lineOp{prefix: '-', text: old[o.a], oldIdx: o.a, newIdx: -1})
		case opInsert:
			all = append(all, lineOp{prefix: '+', text: new[o.b], oldIdx: -1, newIdx: o.b})
		}
	}

	// Indices (into all) of every non-equal line.
	var changeIdxs []int
	for idx, lo := range all {
		if lo.prefix != ' ' {
			changeIdxs = append(changeIdxs, idx)
		}
	}
	if len(changeIdxs) == 0 {
		return nil
	}

	// Group adjacent changes into hunks: a run of more than 2*context equal
	// lines between two changes splits them into separate hunks; otherwise
	// the equal lines between them are kept as inline context.
	type group struct{ first, last int } // indices into changeIdxs
	var groups []group
	gstart := 0
	for i := 1; i < len(changeIdxs); i++ {
		gapEqualLines := changeIdxs[i] - changeIdxs[i-1] - 1
		if gapEqualLines > 2*context {
			groups = append(groups, group{first: gstart, last: i - 1})
			gstart = i
		}
	}
	groups = append(groups, group{first: gstart, last: len(changeIdxs) - 1})

	hunks := make([]Hunk, 0, len(groups))
	for _, g := range groups {
		start := changeIdxs[g.first] - context
		if start < 0 {
			start = 0
		}
		end := changeIdxs[g.last] + context + 1
		if end > len(all) {
			end = len(all)
		}

		var oldStart, newStart int = -1, -1
		var oldCount, newCount int
		lines := make([]string, 0, end-start)
		for _, lo := range all[start:end] {
			if oldStart == -1 && lo.oldIdx != -1 {
				oldStart = lo.oldIdx
			}
			if newStart == -1 && lo.newIdx != -1 {
				newStart = lo.newIdx
			}
			if lo.prefix != '+' {
				oldCount++
			}
			if lo.prefix != '-' {
				newCount++
			}
			lines = append(lines, string(lo.prefix)+lo.text)
		}
		if oldStart == -1 {
			oldStart = 0
		}
		if newStart == -1 {
			newStart = 0
		}

		hunks = append(hunks, Hunk{
			OldStart: oldStart + 1,
			OldCount: oldCount,
			NewStart: newStart + 1,
			NewCount: newCount,
			Lines:    lines,
		})
	}

	return hunks
}
