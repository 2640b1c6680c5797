package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// preference: exact match > smallest edit distance > most frequent word
func newTestMatcher() *Matcher {
	return NewMatcher(map[string]uint64{
		"the":        2000,
		"there":      1000,
		"their":      950,
		"car":        500,
		"cat":        490,
		"apple":      100,
		"banana":     90,
		"strawberry": 50,
		"user-name":  25,
		"":           7,
	})
}

func TestMatcher_SuggestCorrection(t *testing.T) {
	matcher := newTestMatcher()
	require.Equal(t, 9, matcher.Len())

	testCases := []struct {
		input          string
		expectedOutput string
		corrected      bool
		description    string
	}{
		{"apple", "apple", false, "Exact match"},
		{"Apple", "apple", false, "Case insensitive match"},
		{"BANANA", "banana", false, "Uppercase word"},
		{"appl", "apple", true, "Missing character at end"},
		{"bnana", "banana", true, "Missing character in middle"},
		{"teh", "the", true, "Transposition"},
		{"cer", "car", true, "Closest then most frequent"},
		{"strwbry", "strawberry", true, "Subsequence fallback"},
		{"zzzzzz", "zzzzzz", false, "Nothing close"},
		{"a", "a", false, "Too short"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			got, corrected := matcher.SuggestCorrection(tc.input)
			assert.Equal(t, tc.expectedOutput, got)
			assert.Equal(t, tc.corrected, corrected)
		})
	}
}

func TestMatcher_Alternatives(t *testing.T) {
	matcher := newTestMatcher()

	assert.Equal(t, []Alternative{
		{Word: "car", Distance: 1, Freq: 500},
		{Word: "cat", Distance: 2, Freq: 490},
	}, matcher.Alternatives("cer", 2, 0))

	assert.Equal(t, []Alternative{
		{Word: "cat", Distance: 0, Freq: 490},
		{Word: "car", Distance: 1, Freq: 500},
	}, matcher.Alternatives("cat", 1, 0))

	assert.Len(t, matcher.Alternatives("cer", 2, 1), 1)
	assert.Empty(t, matcher.Alternatives("qqqqqq", 2, 0))
}

func TestMatcher_Matches(t *testing.T) {
	matcher := newTestMatcher()

	got := matcher.Matches("usrnm", 0)
	require.Len(t, got, 1)
	assert.Equal(t, "user-name", got[0].Str)
	assert.Equal(t, []int{0, 1, 3, 5, 7}, got[0].MatchedIndexes)

	assert.Empty(t, matcher.Matches("xyz", 0))
	assert.Nil(t, matcher.Matches("", 0))
}

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"kitten", "sitting", 3},
		{"", "abc", 3},
		{"abc", "", 3},
		{"flaw", "lawn", 2},
		{"héllo", "hello", 1},
		{"same", "same", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Levenshtein(tc.a, tc.b), "%q %q", tc.a, tc.b)
		assert.Equal(t, tc.want, Levenshtein(tc.b, tc.a), "%q %q", tc.b, tc.a)
	}
}
