// Package engine answers word-level queries over a mapped dictionary and
// triple store. It translates words to ids, runs the id-level queries of
// package ngram and translates the results back.
package engine

// Querier is what the server and the interactive shell need from an
// engine.
type Querier interface {
	// WordToID returns the id of word, or 0 if it is not in the dictionary.
	WordToID(word string) uint32
	// IDToWord returns the text of id.
	IDToWord(id uint32) (string, bool)

	Freq(words [3]string) uint32
	Like(words [3]string) []Triple
	Follows(w1, w2 string) []Triple

	// PrefixFreq sums the frequencies of records starting with words.
	PrefixFreq(words ...string) uint64
	// WordFreq sums the frequencies of records containing word.
	WordFreq(word string) uint64

	Complete(prefix string, limit int) []Suggestion
	Suggest(word string, limit int) []Suggestion

	Stats() map[string]int
}

var _ Querier = (*Engine)(nil)
