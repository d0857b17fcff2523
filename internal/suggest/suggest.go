// Package suggest offers a "did you mean" fuzzy match for a literal filter
// pattern that matched nothing, using github.com/hbollon/go-edlib's
// Levenshtein-based fuzzy search.
package suggest

import "github.com/hbollon/go-edlib"

// Nearest returns the candidate string closest to target by edit distance.
// ok is false if candidates is empty. Ties are broken by first occurrence in
// candidates (go-edlib's FuzzySearch already does this internally).
func Nearest(target string, candidates []string) (nearest string, ok bool) {
	if len(candidates) == 0 {
		return "", false
	}
	match, err := edlib.FuzzySearch(target, candidates, edlib.Levenshtein)
	if err != nil {
		return "", false
	}
	return match, true
}
