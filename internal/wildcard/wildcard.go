// Package wildcard implements the filter matcher boundary spec.md's
// comparator consults (§4.G, §6): one shell-wildcard pattern per line, a
// name is accepted if it matches any pattern or if no filter was loaded at
// all. Concrete matching is delegated to doublestar, which extends the
// classic shell-glob syntax with "**" should a pattern ever need it.
package wildcard

import (
	"bufio"
	"io"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/standardbeagle/symtypes/internal/symerr"
)

// Matcher accepts or rejects export names against a set of patterns. A zero
// Matcher (no patterns loaded) accepts everything.
type Matcher struct {
	patterns []string
}

// None is the no-op matcher that accepts every name, used when the CLI was
// not given a -f filter file.
var None = &Matcher{}

// Load reads one pattern per line from r. Blank lines are ignored.
func Load(r io.Reader) (*Matcher, error) {
	var patterns []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		patterns = append(patterns, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, symerr.NewIOError("read", "filter", err)
	}
	return &Matcher{patterns: patterns}, nil
}

// Accept reports whether name matches at least one loaded pattern, or true
// unconditionally if no patterns were loaded.
func (m *Matcher) Accept(name string) bool {
	if m == nil || len(m.patterns) == 0 {
		return true
	}
	for _, p := range m.patterns {
		if ok, err := doublestar.Match(p, name); err == nil && ok {
			return true
		}
	}
	return false
}

// IsLiteral reports whether pattern contains none of the glob
// metacharacters '*', '?' and '['. Other doublestar syntax ('{a,b}'
// alternation, '\' escapes) is not checked. Used by the CLI to decide
// whether a fuzzy "did you mean" suggestion makes sense for an unmatched -f
// pattern.
func IsLiteral(pattern string) bool {
	return !strings.ContainsAny(pattern, "*?[")
}

// Patterns returns the loaded patterns, for diagnostics.
func (m *Matcher) Patterns() []string {
	if m == nil {
		return nil
	}
	return m.patterns
}
