package utils

import (
	"strings"
	"unicode"
)

// Tokenize splits a line of input into words on whitespace.
func Tokenize(line string) []string {
	return strings.Fields(line)
}

// MatchCase copies the capitalisation of pattern onto word, rune by rune.
// Positions past the end of pattern are left as they are.
func MatchCase(word, pattern string) string {
	p := []rune(pattern)
	w := []rune(word)
	changed := false
	for i := range w {
		if i >= len(p) {
			break
		}
		if unicode.IsUpper(p[i]) && unicode.IsLower(w[i]) {
			w[i] = unicode.ToUpper(w[i])
			changed = true
		}
	}
	if !changed {
		return word
	}
	return string(w)
}
