// Package textutil holds the word tokenizer shared by the lexical scorers.
package textutil

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// nonWord matches anything that is not a letter, combining mark, digit or space.
var nonWord = regexp.MustCompile(`[^\p{L}\p{M}\p{N}\s]+`)

// Fold returns s in NFC form and lower case, so that precomposed and
// decomposed spellings of the same Vietnamese word compare equal.
func Fold(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}

// Words splits s into lower-case word tokens. Punctuation acts as a separator.
func Words(s string) []string {
	return strings.Fields(nonWord.ReplaceAllString(Fold(s), " "))
}

// WordSet returns the distinct tokens of s.
func WordSet(s string) map[string]struct{} {
	words := Words(s)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
