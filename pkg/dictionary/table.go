package dictionary

import "bytes"

// Entry is one dictionary word. Text aliases the source region.
type Entry struct {
	ID   uint32
	Text []byte
}

// Len is the declared text length.
func (e Entry) Len() int { return len(e.Text) }

// String copies the text out of the region.
func (e Entry) String() string { return string(e.Text) }

// Table maps ids to entries. It is immutable once Load returns and safe
// for concurrent readers.
type Table struct {
	entries  map[uint32]Entry
	ids      []uint32
	scanned  int
	capacity uint64
}

// Entry looks up an id. Ids that did not appear in the file (gaps) report
// false.
func (t *Table) Entry(id uint32) (Entry, bool) {
	e, ok := t.entries[id]
	return e, ok
}

// IDToWord returns the stored bytes for id, or false if id is absent.
func (t *Table) IDToWord(id uint32) ([]byte, bool) {
	e, ok := t.entries[id]
	if !ok {
		return nil, false
	}
	return e.Text, true
}

// Word is IDToWord with the text copied into a string.
func (t *Table) Word(id uint32) (string, bool) {
	e, ok := t.entries[id]
	if !ok {
		return "", false
	}
	return string(e.Text), true
}

// WordToID finds the lowest id whose text equals word.
//
// This is a linear scan over every entry, O(n) per call. On a miss it
// returns UnknownID, which cannot be told apart from a real entry with id
// 0. Use WordIndex for repeated lookups.
func (t *Table) WordToID(word []byte) uint32 {
	for _, id := range t.ids {
		e := t.entries[id]
		if len(e.Text) == len(word) && bytes.Equal(e.Text, word) {
			return id
		}
	}
	return UnknownID
}

// Len is the number of distinct ids.
func (t *Table) Len() int { return len(t.ids) }

// Scanned is the number of entries read from the file, duplicates
// included.
func (t *Table) Scanned() int { return t.scanned }

// Capacity is the id bound the table was loaded with.
func (t *Table) Capacity() uint64 { return t.capacity }

// IDs returns the present ids in ascending order.
func (t *Table) IDs() []uint32 {
	out := make([]uint32, len(t.ids))
	copy(out, t.ids)
	return out
}

// Each calls fn for every entry in ascending id order until fn returns
// false.
func (t *Table) Each(fn func(Entry) bool) {
	for _, id := range t.ids {
		if !fn(t.entries[id]) {
			return
		}
	}
}
