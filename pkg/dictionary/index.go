package dictionary

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

var errStopVisit = errors.New("stop visit")

// Completion is a dictionary word found under a prefix.
type Completion struct {
	Word string
	ID   uint32
}

// WordIndex is a patricia trie over the dictionary texts. It answers exact
// reverse lookups without the linear scan of Table.WordToID and lists
// words by prefix. Empty texts are not indexed.
type WordIndex struct {
	trie *patricia.Trie
	size int
}

// NewWordIndex indexes every non-empty entry of t. When several ids share a
// text the lowest id is kept, matching WordToID.
func NewWordIndex(t *Table) *WordIndex {
	wi := &WordIndex{trie: patricia.NewTrie()}
	t.Each(func(e Entry) bool {
		if len(e.Text) == 0 {
			return true
		}
		if wi.trie.Insert(patricia.Prefix(e.Text), e.ID) {
			wi.size++
		}
		return true
	})
	log.Debugf("Word index built with %d words", wi.size)
	return wi
}

// Lookup returns the id for word. Unlike WordToID, a miss is reported
// through ok rather than by UnknownID.
func (wi *WordIndex) Lookup(word []byte) (id uint32, ok bool) {
	if len(word) == 0 {
		return UnknownID, false
	}
	item := wi.trie.Get(patricia.Prefix(word))
	if item == nil {
		return UnknownID, false
	}
	return item.(uint32), true
}

// Complete returns up to limit words that start with prefix, excluding the
// prefix itself. A limit of zero or less means no limit.
func (wi *WordIndex) Complete(prefix string, limit int) []Completion {
	var out []Completion
	err := wi.trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, item patricia.Item) error {
		if string(p) == prefix {
			return nil
		}
		out = append(out, Completion{Word: string(p), ID: item.(uint32)})
		if limit > 0 && len(out) >= limit {
			return errStopVisit
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStopVisit) {
		log.Errorf("Error visiting word index subtree: %v", err)
	}
	return out
}

// Len is the number of indexed words.
func (wi *WordIndex) Len() int { return wi.size }
