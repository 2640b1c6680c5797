// Package fuzzy finds dictionary words close to a possibly misspelled input.
package fuzzy

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Matcher handles approximate string matching over a weighted word list.
type Matcher struct {
	words   []string
	lower   []string
	weights map[string]uint64
}

// NewMatcher creates a matcher over words, where the value is the word's
// corpus frequency. Empty words are ignored.
func NewMatcher(words map[string]uint64) *Matcher {
	list := make([]string, 0, len(words))
	for w := range words {
		if w != "" {
			list = append(list, w)
		}
	}
	sort.Strings(list)

	lower := make([]string, len(list))
	for i, w := range list {
		lower[i] = strings.ToLower(w)
	}
	return &Matcher{words: list, lower: lower, weights: words}
}

// Len is the number of candidate words.
func (fm *Matcher) Len() int { return len(fm.words) }

// Alternative is a candidate correction.
type Alternative struct {
	Word     string
	Distance int
	Freq     uint64
}

// Alternatives returns the words within maxDistance edits of input, closest
// first and then most frequent. Comparison ignores case. A limit of zero or
// less means no limit.
func (fm *Matcher) Alternatives(input string, maxDistance, limit int) []Alternative {
	lowerInput := strings.ToLower(input)
	inputLen := utf8.RuneCountInString(lowerInput)

	var out []Alternative
	for i, cand := range fm.lower {
		// length difference is a lower bound on the distance
		if abs(utf8.RuneCountInString(cand)-inputLen) > maxDistance {
			continue
		}
		d := Levenshtein(lowerInput, cand)
		if d > maxDistance {
			continue
		}
		out = append(out, Alternative{Word: fm.words[i], Distance: d, Freq: fm.weights[fm.words[i]]})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		return out[i].Freq > out[j].Freq
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// SuggestCorrection returns the most likely correction for input. The bool
// is false when input is already a known word (the stored spelling is
// returned) or when nothing close enough was found (input is returned).
func (fm *Matcher) SuggestCorrection(input string) (string, bool) {
	if utf8.RuneCountInString(input) < 2 {
		return input, false
	}
	lowerInput := strings.ToLower(input)
	for i, cand := range fm.lower {
		if cand == lowerInput {
			return fm.words[i], false
		}
	}

	if alts := fm.Alternatives(input, maxEditDistance, 1); len(alts) > 0 {
		return alts[0].Word, true
	}
	if matches := fm.Matches(input, 1); len(matches) > 0 {
		return matches[0].Str, true
	}
	return input, false
}

const maxEditDistance = 2

// Constants for scoring
const (
	firstCharMatchBonus            = 15
	adjacentMatchBonus             = 10
	separatorMatchBonus            = 12
	camelCaseMatchBonus            = 12
	unmatchedLeadingCharPenalty    = -3
	maxUnmatchedLeadingCharPenalty = -9
)

// Match is a candidate whose letters contain the pattern in order.
type Match struct {
	Str            string
	Score          int
	MatchedIndexes []int
}

// Matches returns the candidates that contain every rune of pattern in
// order and share its first rune, best score first. Scores reward matches
// at the start, after separators and next to the previous match, plus a
// capped frequency bonus.
func (fm *Matcher) Matches(pattern string, limit int) []Match {
	if pattern == "" {
		return nil
	}
	lowerPattern := strings.ToLower(pattern)
	patternRunes := []rune(lowerPattern)
	patternLen := len(patternRunes)

	var matches []Match
	for i, cand := range fm.lower {
		if len(pattern) > 1 && cand[0] != lowerPattern[0] {
			continue
		}
		match := Match{Str: fm.words[i], MatchedIndexes: make([]int, 0, patternLen)}
		if !runFuzzyMatch(patternRunes, []rune(fm.words[i]), &match) {
			continue
		}
		candLen := utf8.RuneCountInString(cand)
		match.Score += len(match.MatchedIndexes) - candLen
		match.Score += int(min(fm.weights[fm.words[i]]/10, 30))
		match.Score -= abs(candLen-patternLen) * 2
		matches = append(matches, match)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// runFuzzyMatch greedily matches each pattern rune to the next equal rune of
// the candidate and accumulates the score into match.
func runFuzzyMatch(pattern, candidate []rune, match *Match) bool {
	adjacent := 0
	next := 0
	for _, p := range pattern {
		i := next
		for i < len(candidate) && !equalFold(candidate[i], p) {
			i++
		}
		if i == len(candidate) {
			return false
		}

		score := 0
		if i == 0 {
			score += firstCharMatchBonus
		}
		if i > 0 && unicode.IsLower(candidate[i-1]) && unicode.IsUpper(candidate[i]) {
			score += camelCaseMatchBonus
		}
		if i > 0 && isSeparator(candidate[i-1]) {
			score += separatorMatchBonus
		}
		if n := len(match.MatchedIndexes); n > 0 && match.MatchedIndexes[n-1] == i-1 {
			adjacent = adjacent*2 + adjacentMatchBonus
			score += adjacent
		} else {
			adjacent = 0
		}
		if len(match.MatchedIndexes) == 0 {
			score += max(i*unmatchedLeadingCharPenalty, maxUnmatchedLeadingCharPenalty)
		}

		match.Score += score
		match.MatchedIndexes = append(match.MatchedIndexes, i)
		next = i + 1
	}
	return true
}

// Levenshtein returns the edit distance between a and b in runes.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// Helper function to check if a rune is a separator
func isSeparator(r rune) bool {
	return r == ' ' || r == '_' || r == '-' || r == '.' || r == '/' || r == '\''
}

// Helper function for case-insensitive rune equality
func equalFold(a, b rune) bool {
	if a == b {
		return true
	}
	if a < utf8.RuneSelf && b < utf8.RuneSelf {
		if 'A' <= a && a <= 'Z' {
			a += 'a' - 'A'
		}
		if 'A' <= b && b <= 'Z' {
			b += 'a' - 'A'
		}
		return a == b
	}
	return unicode.SimpleFold(a) == b || unicode.SimpleFold(b) == a || strings.EqualFold(string(a), string(b))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
