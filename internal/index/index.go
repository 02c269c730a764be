// Package index provides the inverted word index over book titles and
// authors.
package index

import (
	"strings"
	"unicode"
)

// WordIndex maps a normalized token to the set of book identifiers whose
// title or author text produced that token at registration time. The index
// is append-only: tokens are never removed.
type WordIndex struct {
	postings map[string]map[string]struct{}
}

// New creates an empty index.
func New() *WordIndex {
	return &WordIndex{postings: make(map[string]map[string]struct{})}
}

// Tokenize splits text into lower-cased maximal runs of word characters.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !isWord(r)
	})
}

func isWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Add indexes every token of every text field under isbn. The catalog calls
// this exactly once per newly registered identifier, never on copy-count
// updates.
func (ix *WordIndex) Add(isbn string, fields ...string) {
	for _, field := range fields {
		for _, tok := range Tokenize(field) {
			set, ok := ix.postings[tok]
			if !ok {
				set = make(map[string]struct{})
				ix.postings[tok] = set
			}
			set[isbn] = struct{}{}
		}
	}
}

// Lookup returns a copy of the identifier set indexed under token, or an
// empty set if the token was never indexed.
func (ix *WordIndex) Lookup(token string) map[string]struct{} {
	out := make(map[string]struct{}, len(ix.postings[token]))
	for isbn := range ix.postings[token] {
		out[isbn] = struct{}{}
	}
	return out
}
