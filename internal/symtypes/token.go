package symtypes

// TokenKind distinguishes a cross-reference to another type name from an
// opaque lexeme.
type TokenKind uint8

const (
	// Atom is an opaque whitespace-separated lexeme: a keyword, punctuation,
	// or identifier that is not itself a type name.
	Atom TokenKind = iota
	// TypeRef is a cross-reference to another entry in the types table; its
	// resolution depends on which file is being processed.
	TypeRef
)

// Token is an immutable lexeme: either a TypeRef(name) or an Atom(word).
type Token struct {
	Kind TokenKind
	Text string
}

// NewToken classifies a raw word read from a record. A word is a TypeRef iff
// its second character is '#' and at least one character follows it (the
// "x#name" internal-type convention); anything else, including a bare export
// name or a two-character word such as "a#", is an Atom.
func NewToken(word string) Token {
	if isTypeRefWord(word) {
		return Token{Kind: TypeRef, Text: word}
	}
	return Token{Kind: Atom, Text: word}
}

func isTypeRefWord(word string) bool {
	return len(word) > 2 && word[1] == '#'
}

// String returns the underlying lexeme text.
func (t Token) String() string { return t.Text }

// Equal reports structural equality: same kind, same text.
func (t Token) Equal(o Token) bool {
	return t.Kind == o.Kind && t.Text == o.Text
}

// Less defines a total order: by kind first (Atom before TypeRef), then by
// text. None of the core algorithms call it.
func (t Token) Less(o Token) bool {
	if t.Kind != o.Kind {
		return t.Kind < o.Kind
	}
	return t.Text < o.Text
}

// Tokens is an ordered sequence of Token describing one type definition.
// Sequence order is significant (it mirrors C declaration order).
type Tokens []Token

// Equal reports whether two Tokens sequences have the same length and are
// pairwise equal. Comparator change detection (spec.md §4.G step 3) is
// "length then pairwise equality", exactly this.
func (ts Tokens) Equal(o Tokens) bool {
	if len(ts) != len(o) {
		return false
	}
	for i := range ts {
		if !ts[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// TypeRefs returns the TypeRef tokens within the sequence, in order,
// preserving duplicates (the comparator's pairing heuristic needs every
// occurrence, not a deduplicated set).
func (ts Tokens) TypeRefs() []string {
	var out []string
	for _, t := range ts {
		if t.Kind == TypeRef {
			out = append(out, t.Text)
		}
	}
	return out
}
